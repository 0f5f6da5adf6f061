package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/spendwise/internal/apiclient"
	"github.com/mmynk/spendwise/internal/calculator"
	"github.com/mmynk/spendwise/internal/metrics"
	"github.com/mmynk/spendwise/internal/models"
)

var (
	errLoadDashboard     = errors.New("error loading groups")
	errJoinGroup         = errors.New("error sending join request")
	errCancelJoin        = errors.New("error cancelling join request")
	errJoinRequests      = errors.New("error loading join requests")
	errRespondJoin       = errors.New("error responding to join request")
	errLeaveGroup        = errors.New("error leaving group")
	errGroupNotFound     = errors.New("group not found")
	errJoinRequestNeeded = errors.New("join_request_id is required")
)

// GroupService implements the GroupService.
type GroupService struct {
	api     APIFactory
	metrics *metrics.Metrics
}

// NewGroupService creates a GroupService backed by api. m may be nil.
func NewGroupService(api APIFactory, m *metrics.Metrics) *GroupService {
	return &GroupService{api: api, metrics: m}
}

// Dashboard lists the caller's groups and outgoing join requests.
func (s *GroupService) Dashboard(ctx context.Context, req *connect.Request[DashboardRequest]) (*connect.Response[DashboardResponse], error) {
	api, _, err := sessionAPI(ctx, s.api)
	if err != nil {
		return nil, err
	}
	d, err := api.Dashboard(ctx)
	if err != nil {
		slog.Error("Failed to load dashboard", "error", err)
		return nil, backendError(err, errLoadDashboard)
	}
	return connect.NewResponse(&DashboardResponse{Dashboard: d}), nil
}

// RequestToJoin asks to join the group with the given code. Codes of groups
// the caller already belongs to are refused without calling the backend.
func (s *GroupService) RequestToJoin(ctx context.Context, req *connect.Request[RequestToJoinRequest]) (*connect.Response[RequestToJoinResponse], error) {
	code, err := calculator.NormalizeGroupCode(req.Msg.GroupCode)
	if err != nil {
		s.metrics.ObserveSubmission("join_request", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	api, session, err := sessionAPI(ctx, s.api)
	if err != nil {
		return nil, err
	}

	d, err := api.Dashboard(ctx)
	if err != nil {
		return nil, backendError(err, errLoadDashboard)
	}
	if err := calculator.CheckNotMember(code, memberships(d)); err != nil {
		s.metrics.ObserveSubmission("join_request", err)
		return nil, connect.NewError(connect.CodeAlreadyExists, err)
	}

	res, err := api.RequestJoin(ctx, code)
	s.metrics.ObserveSubmission("join_request", err)
	if err != nil {
		slog.Warn("Join request failed", "user_id", session.UserID, "error", err)
		return nil, backendError(err, errJoinGroup)
	}

	slog.Info("Join request sent", "user_id", session.UserID, "group_id", res.GroupID)
	return connect.NewResponse(&RequestToJoinResponse{Request: res}), nil
}

// CancelJoinRequest withdraws one of the caller's pending requests.
func (s *GroupService) CancelJoinRequest(ctx context.Context, req *connect.Request[CancelJoinRequestRequest]) (*connect.Response[CancelJoinRequestResponse], error) {
	id := strings.TrimSpace(req.Msg.JoinRequestID)
	if id == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errJoinRequestNeeded)
	}

	api, _, err := sessionAPI(ctx, s.api)
	if err != nil {
		return nil, err
	}
	if err := api.CancelJoinRequest(ctx, id); err != nil {
		return nil, backendError(err, errCancelJoin)
	}
	return connect.NewResponse(&CancelJoinRequestResponse{}), nil
}

// ListJoinRequests returns the pending requests to join a group the caller
// created. Anyone else is told the group does not exist.
func (s *GroupService) ListJoinRequests(ctx context.Context, req *connect.Request[ListJoinRequestsRequest]) (*connect.Response[ListJoinRequestsResponse], error) {
	groupID := strings.TrimSpace(req.Msg.GroupID)
	if groupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errGroupMissing)
	}

	api, _, err := sessionAPI(ctx, s.api)
	if err != nil {
		return nil, err
	}
	if err := checkCreator(ctx, api, groupID); err != nil {
		return nil, err
	}

	reqs, err := api.JoinRequests(ctx, groupID)
	if err != nil {
		return nil, backendError(err, errJoinRequests)
	}
	return connect.NewResponse(&ListJoinRequestsResponse{Requests: reqs}), nil
}

// RespondToJoinRequest accepts or rejects one request and returns what is
// left in the queue.
func (s *GroupService) RespondToJoinRequest(ctx context.Context, req *connect.Request[RespondToJoinRequestRequest]) (*connect.Response[RespondToJoinRequestResponse], error) {
	groupID := strings.TrimSpace(req.Msg.GroupID)
	if groupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errGroupMissing)
	}
	id := strings.TrimSpace(req.Msg.JoinRequestID)
	if id == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errJoinRequestNeeded)
	}

	api, session, err := sessionAPI(ctx, s.api)
	if err != nil {
		return nil, err
	}
	if err := checkCreator(ctx, api, groupID); err != nil {
		return nil, err
	}

	err = api.RespondToJoinRequest(ctx, id, req.Msg.Accept)
	s.metrics.ObserveSubmission("join_response", err)
	if err != nil {
		return nil, backendError(err, errRespondJoin)
	}
	slog.Info("Join request answered", "group_id", groupID, "user_id", session.UserID, "accepted", req.Msg.Accept)

	reqs, err := api.JoinRequests(ctx, groupID)
	if err != nil {
		return nil, backendError(err, errJoinRequests)
	}
	return connect.NewResponse(&RespondToJoinRequestResponse{Requests: reqs}), nil
}

// LeaveGroup takes the caller out of a group once their balance is settled.
// For the group's creator this deletes the group.
func (s *GroupService) LeaveGroup(ctx context.Context, req *connect.Request[LeaveGroupRequest]) (*connect.Response[LeaveGroupResponse], error) {
	groupID := strings.TrimSpace(req.Msg.GroupID)
	if groupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errGroupMissing)
	}

	api, session, err := sessionAPI(ctx, s.api)
	if err != nil {
		return nil, err
	}

	page, err := api.GroupPage(ctx, groupID)
	if err != nil {
		slog.Error("Failed to load group page", "group_id", groupID, "error", err)
		return nil, backendError(err, errLoadGroup)
	}

	userID := page.UserID
	if userID == "" {
		userID = session.UserID
	}
	action, err := calculator.DecideLeave(page, userID)
	if err != nil {
		s.metrics.ObserveSubmission("leave_group", err)
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	}

	switch action {
	case calculator.LeaveActionDelete:
		err = api.DeleteGroup(ctx, groupID)
	default:
		err = api.LeaveGroup(ctx, groupID)
	}
	s.metrics.ObserveSubmission("leave_group", err)
	if err != nil {
		slog.Warn("Leave group failed", "group_id", groupID, "action", action, "error", err)
		return nil, backendError(err, errLeaveGroup)
	}

	slog.Info("Left group", "group_id", groupID, "user_id", userID, "action", action)
	return connect.NewResponse(&LeaveGroupResponse{Action: action.String()}), nil
}

// ListTransactions returns one sorted page of a group's transactions.
func (s *GroupService) ListTransactions(ctx context.Context, req *connect.Request[ListTransactionsRequest]) (*connect.Response[ListTransactionsResponse], error) {
	groupID := strings.TrimSpace(req.Msg.GroupID)
	if groupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errGroupMissing)
	}
	sortBy := calculator.TransactionSort(strings.ToLower(strings.TrimSpace(req.Msg.SortBy)))
	switch sortBy {
	case "":
		sortBy = calculator.SortByDate
	case calculator.SortByDate, calculator.SortByAmount:
	default:
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown sort %q", req.Msg.SortBy))
	}

	api, _, err := sessionAPI(ctx, s.api)
	if err != nil {
		return nil, err
	}
	page, err := api.GroupPage(ctx, groupID)
	if err != nil {
		slog.Error("Failed to load group page", "group_id", groupID, "error", err)
		return nil, backendError(err, errLoadGroup)
	}

	p := calculator.ListTransactions(page.TransactionData, calculator.TransactionQuery{
		SortBy:    sortBy,
		Ascending: req.Msg.Ascending,
		Page:      req.Msg.Page,
		PageSize:  req.Msg.PageSize,
		Detailed:  req.Msg.Detailed,
	})
	rows := make([]TransactionRow, len(p.Items))
	for i, tx := range p.Items {
		rows[i] = TransactionRow{Transaction: tx, StatusLabel: tx.Status.String()}
	}
	return connect.NewResponse(&ListTransactionsResponse{
		Transactions: rows,
		Page:         p.Page,
		TotalPages:   p.TotalPages,
		Total:        p.Total,
	}), nil
}

// checkCreator hides groups the caller did not create behind NotFound.
func checkCreator(ctx context.Context, api API, groupID string) error {
	err := api.CreatorCheck(ctx, groupID)
	if err == nil {
		return nil
	}
	if errors.Is(err, apiclient.ErrUnauthorized) || errors.Is(err, apiclient.ErrMissingToken) {
		return connect.NewError(connect.CodeUnauthenticated, err)
	}
	slog.Debug("Creator check failed", "group_id", groupID, "error", err)
	return connect.NewError(connect.CodeNotFound, errGroupNotFound)
}

// memberships lists every group the caller created or joined.
func memberships(d *models.Dashboard) []models.Group {
	groups := append([]models.Group(nil), d.MemberGroups...)
	for _, g := range d.CreatedGroups {
		groups = append(groups, models.Group{ID: g.ID, Name: g.Name, Code: g.Code})
	}
	return groups
}
