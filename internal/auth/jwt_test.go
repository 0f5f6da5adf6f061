package auth

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestSessionParser(t *testing.T) {
	now := time.Now()
	valid := &Claims{
		Email: "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	expired := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}

	t.Run("unverified parse reads claims", func(t *testing.T) {
		s, err := NewSessionParser("").Parse(signToken(t, "backend-only", valid))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if s.UserID != "u1" || s.Email != "alice@example.com" {
			t.Errorf("unexpected session: %+v", s)
		}
	})

	t.Run("unverified parse rejects expired", func(t *testing.T) {
		_, err := NewSessionParser("").Parse(signToken(t, "backend-only", expired))
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("verified parse accepts matching secret", func(t *testing.T) {
		if _, err := NewSessionParser("shared").Parse(signToken(t, "shared", valid)); err != nil {
			t.Errorf("Parse failed: %v", err)
		}
	})

	t.Run("verified parse rejects wrong secret", func(t *testing.T) {
		_, err := NewSessionParser("shared").Parse(signToken(t, "other", valid))
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("verified parse rejects expired", func(t *testing.T) {
		_, err := NewSessionParser("shared").Parse(signToken(t, "shared", expired))
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := NewSessionParser("").Parse("not-a-jwt")
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("nameid fallback", func(t *testing.T) {
		token := signToken(t, "k", &Claims{NameID: "u9"})
		s, err := NewSessionParser("").Parse(token)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if s.UserID != "u9" {
			t.Errorf("UserID = %q, want u9", s.UserID)
		}
	})
}

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  http.Header
		want    string
		wantErr error
	}{
		{"bearer", http.Header{"Authorization": {"Bearer abc"}}, "abc", nil},
		{"malformed bearer", http.Header{"Authorization": {"Token abc"}}, "", ErrInvalidToken},
		{"cookie", http.Header{"Cookie": {"theme=dark; token=xyz"}}, "xyz", nil},
		{"header wins over cookie", http.Header{"Authorization": {"Bearer abc"}, "Cookie": {"token=xyz"}}, "abc", nil},
		{"missing", http.Header{}, "", ErrMissingToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TokenFromHeader(tt.header)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSessionCookie(t *testing.T) {
	c := SessionCookie("abc", true)
	if c.MaxAge != 30*24*60*60 || !c.Secure || c.SameSite != http.SameSiteStrictMode {
		t.Errorf("unexpected cookie: %+v", c)
	}
	if ClearSessionCookie(false).MaxAge >= 0 {
		t.Error("cleared cookie should expire immediately")
	}
}
