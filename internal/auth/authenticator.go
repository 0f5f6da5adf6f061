package auth

import "context"

// Authenticator defines how the front-end signs users in and up.
// The backend issues and owns the credentials; implementations validate
// input locally and forward it.
type Authenticator interface {
	// Register creates a new account. It returns ErrEmailExists when the
	// backend reports a conflict.
	Register(ctx context.Context, email, displayName, credential string) error

	// Authenticate verifies the credentials and returns a session token.
	Authenticate(ctx context.Context, email, credential string) (string, error)

	// ValidateCredential checks the credential before it leaves the process.
	ValidateCredential(credential string) error
}
