package middleware

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/spendwise/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// SessionKey is the context key for the caller's *auth.Session.
const SessionKey contextKey = "session"

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *auth.Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// GetSession extracts the session from the context.
// Returns nil if the request is unauthenticated.
func GetSession(ctx context.Context) *auth.Session {
	s, _ := ctx.Value(SessionKey).(*auth.Session)
	return s
}

// GetUserID extracts the caller's user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	if s := GetSession(ctx); s != nil {
		return s.UserID
	}
	return ""
}

// RequireAuth returns an interceptor that rejects requests without a valid
// session token. The token comes from the Authorization header or the
// session cookie.
func RequireAuth(parser *auth.SessionParser) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			token, err := auth.TokenFromHeader(req.Header())
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			session, err := parser.Parse(token)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithSession(ctx, session), req)
		}
	}
}

// OptionalAuth returns an interceptor that attaches a session when a valid
// token is present and lets the request through either way.
func OptionalAuth(parser *auth.SessionParser) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if token, err := auth.TokenFromHeader(req.Header()); err == nil {
				if session, err := parser.Parse(token); err == nil {
					ctx = WithSession(ctx, session)
				}
			}
			return next(ctx, req)
		}
	}
}
