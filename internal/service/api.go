package service

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/spendwise/internal/apiclient"
	"github.com/mmynk/spendwise/internal/auth"
	"github.com/mmynk/spendwise/internal/calculator"
	"github.com/mmynk/spendwise/internal/middleware"
	"github.com/mmynk/spendwise/internal/models"
)

// API is the part of the backend client the services call on behalf of a
// signed-in user.
type API interface {
	Profile(ctx context.Context) (*models.Profile, error)
	GroupPage(ctx context.Context, groupID string) (*models.GroupPage, error)
	AddExpense(ctx context.Context, req *models.ExpenseRequest) error
	SettleUp(ctx context.Context, req *models.SettleUpRequest) (*models.SettleUpResponse, error)

	Dashboard(ctx context.Context) (*models.Dashboard, error)
	RequestJoin(ctx context.Context, code string) (*models.JoinRequestResult, error)
	CancelJoinRequest(ctx context.Context, joinRequestID string) error
	CreatorCheck(ctx context.Context, groupID string) error
	JoinRequests(ctx context.Context, groupID string) ([]models.JoinRequest, error)
	RespondToJoinRequest(ctx context.Context, joinRequestID string, accept bool) error
	LeaveGroup(ctx context.Context, groupID string) error
	DeleteGroup(ctx context.Context, groupID string) error
}

// APIFactory binds the backend client to a caller's session token.
type APIFactory func(token string) API

// ClientFactory binds c to each caller's token.
func ClientFactory(c *apiclient.Client) APIFactory {
	return func(token string) API {
		return c.WithToken(token)
	}
}

// sessionAPI returns the backend client for the caller in ctx.
func sessionAPI(ctx context.Context, factory APIFactory) (API, *auth.Session, error) {
	session := middleware.GetSession(ctx)
	if session == nil {
		return nil, nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return factory(session.Token), session, nil
}

// backendError maps a backend failure to a Connect error. fallback is the
// message shown for anything other than a rejected session.
func backendError(err error, fallback error) error {
	var ve *calculator.ValidationError
	switch {
	case errors.As(err, &ve):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, apiclient.ErrUnauthorized), errors.Is(err, apiclient.ErrMissingToken):
		return connect.NewError(connect.CodeUnauthenticated, err)
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return connect.NewError(connect.CodeNotFound, fallback)
	}
	return connect.NewError(connect.CodeUnavailable, fallback)
}
