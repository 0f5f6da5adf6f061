package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/spendwise/internal/apiclient"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrShortPassword      = errors.New("password must be at least 6 characters")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrNameRequired       = errors.New("name is required")
	ErrEmailExists        = errors.New("email already registered")
)

// Backend is the part of the API client the authenticator forwards to.
type Backend interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, name, email, password string) error
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type registerInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// PasswordAuthenticator validates email/password input and forwards it to
// the backend.
type PasswordAuthenticator struct {
	backend  Backend
	validate *validator.Validate
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(backend Backend) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		backend:  backend,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ValidateCredential checks if the password meets the registration minimum.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if err := a.validate.Var(credential, "required,min=8"); err != nil {
		return ErrWeakPassword
	}
	return nil
}

// Register validates the sign-up form and creates the account.
func (a *PasswordAuthenticator) Register(ctx context.Context, email, displayName, credential string) error {
	if err := a.validate.Struct(registerInput{Name: displayName, Email: email, Password: credential}); err != nil {
		return fieldError(err)
	}

	if err := a.backend.Register(ctx, displayName, email, credential); err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to register: %w", err)
	}
	return nil
}

// Authenticate validates the login form and returns the backend's token.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (string, error) {
	if err := a.validate.Struct(loginInput{Email: email, Password: credential}); err != nil {
		return "", fieldError(err)
	}

	token, err := a.backend.Login(ctx, email, credential)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < http.StatusInternalServerError {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to log in: %w", err)
	}
	return token, nil
}

// fieldError maps the first failed validation rule to a sentinel error.
func fieldError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Name":
		return ErrNameRequired
	case "Email":
		return ErrInvalidEmail
	case "Password":
		if strings.HasPrefix(fe.StructNamespace(), "loginInput.") {
			return ErrShortPassword
		}
		return ErrWeakPassword
	}
	return err
}
