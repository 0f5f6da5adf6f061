package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/spendwise/internal/auth"
	"github.com/mmynk/spendwise/internal/middleware"
)

var errSessionBackend = errors.New("could not reach the account service")

// SessionService implements the SessionService RPC interface.
type SessionService struct {
	authenticator auth.Authenticator
	api           APIFactory
	secureCookie  bool
	logger        *slog.Logger
}

// NewSessionService creates a new session service. secureCookie marks the
// session cookie Secure and should be set outside development.
func NewSessionService(authenticator auth.Authenticator, api APIFactory, secureCookie bool, logger *slog.Logger) *SessionService {
	return &SessionService{
		authenticator: authenticator,
		api:           api,
		secureCookie:  secureCookie,
		logger:        logger,
	}
}

// Register creates a new user account. The caller signs in afterwards.
func (s *SessionService) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.Name, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Registration failed", "email", req.Msg.Email, "error", err)
		return nil, credentialError(err)
	}

	s.logger.Info("User registered successfully", "email", req.Msg.Email)
	return connect.NewResponse(&RegisterResponse{}), nil
}

// Login authenticates a user against the backend and stores the session
// token in a cookie.
func (s *SessionService) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	token, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		return nil, credentialError(err)
	}

	resp := connect.NewResponse(&LoginResponse{Token: token})
	resp.Header().Add("Set-Cookie", auth.SessionCookie(token, s.secureCookie).String())

	// The profile only decorates the response; the login itself succeeded.
	profile, err := s.api(token).Profile(ctx)
	if err != nil {
		s.logger.Warn("Failed to load profile after login", "email", req.Msg.Email, "error", err)
		return resp, nil
	}
	resp.Msg.User = profile.User

	s.logger.Info("User logged in successfully", "email", req.Msg.Email)
	return resp, nil
}

// Logout clears the session cookie. Tokens are issued by the backend and
// stay valid until they expire.
func (s *SessionService) Logout(ctx context.Context, req *connect.Request[LogoutRequest]) (*connect.Response[LogoutResponse], error) {
	s.logger.Info("Logout request", "user_id", middleware.GetUserID(ctx))
	resp := connect.NewResponse(&LogoutResponse{})
	resp.Header().Add("Set-Cookie", auth.ClearSessionCookie(s.secureCookie).String())
	return resp, nil
}

// CurrentUser returns the signed-in user's profile from the backend.
func (s *SessionService) CurrentUser(ctx context.Context, req *connect.Request[CurrentUserRequest]) (*connect.Response[CurrentUserResponse], error) {
	api, session, err := sessionAPI(ctx, s.api)
	if err != nil {
		return nil, err
	}

	profile, err := api.Profile(ctx)
	if err != nil {
		s.logger.Warn("Failed to load profile", "user_id", session.UserID, "error", err)
		return nil, backendError(err, errSessionBackend)
	}
	if profile.User == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
	}
	return connect.NewResponse(&CurrentUserResponse{User: profile.User}), nil
}

// credentialError maps authenticator failures to Connect codes.
func credentialError(err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, auth.ErrEmailExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrNameRequired),
		errors.Is(err, auth.ErrShortPassword),
		errors.Is(err, auth.ErrWeakPassword):
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return connect.NewError(connect.CodeUnavailable, errSessionBackend)
}
