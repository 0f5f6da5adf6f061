package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/mmynk/spendwise/internal/apiclient"
)

type fakeBackend struct {
	token    string
	loginErr error
	regErr   error
	calls    int
}

func (f *fakeBackend) Login(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.token, f.loginErr
}

func (f *fakeBackend) Register(_ context.Context, _, _, _ string) error {
	f.calls++
	return f.regErr
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		backend   *fakeBackend
		wantToken string
		wantErr   error
		wantCalls int
	}{
		{"ok", "alice@example.com", "secret1", &fakeBackend{token: "tok"}, "tok", nil, 1},
		{"bad email", "alice", "secret1", &fakeBackend{}, "", ErrInvalidEmail, 0},
		{"short password", "alice@example.com", "12345", &fakeBackend{}, "", ErrShortPassword, 0},
		{
			"backend rejects", "alice@example.com", "secret1",
			&fakeBackend{loginErr: &apiclient.APIError{StatusCode: http.StatusUnauthorized}},
			"", ErrInvalidCredentials, 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewPasswordAuthenticator(tt.backend)
			token, err := a.Authenticate(context.Background(), tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if token != tt.wantToken {
				t.Errorf("token = %q, want %q", token, tt.wantToken)
			}
			if tt.backend.calls != tt.wantCalls {
				t.Errorf("backend calls = %d, want %d", tt.backend.calls, tt.wantCalls)
			}
		})
	}
}

func TestAuthenticate_BackendDown(t *testing.T) {
	a := NewPasswordAuthenticator(&fakeBackend{loginErr: &apiclient.APIError{StatusCode: http.StatusBadGateway}})
	_, err := a.Authenticate(context.Background(), "alice@example.com", "secret1")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want a wrapped backend error", err)
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		display  string
		email    string
		password string
		backend  *fakeBackend
		wantErr  error
	}{
		{"ok", "Alice", "alice@example.com", "longenough", &fakeBackend{}, nil},
		{"missing name", "", "alice@example.com", "longenough", &fakeBackend{}, ErrNameRequired},
		{"weak password", "Alice", "alice@example.com", "short12", &fakeBackend{}, ErrWeakPassword},
		{"bad email", "Alice", "nope", "longenough", &fakeBackend{}, ErrInvalidEmail},
		{"conflict", "Alice", "alice@example.com", "longenough", &fakeBackend{regErr: &apiclient.APIError{StatusCode: http.StatusConflict}}, ErrEmailExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPasswordAuthenticator(tt.backend).Register(context.Background(), tt.email, tt.display, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCredential(t *testing.T) {
	a := NewPasswordAuthenticator(&fakeBackend{})
	if err := a.ValidateCredential("1234567"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("err = %v, want ErrWeakPassword", err)
	}
	if err := a.ValidateCredential("12345678"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
