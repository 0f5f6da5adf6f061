package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/spendwise/internal/calculator"
	"github.com/mmynk/spendwise/internal/form"
	"github.com/mmynk/spendwise/internal/metrics"
	"github.com/mmynk/spendwise/internal/models"
)

var (
	errAddExpense   = errors.New("error adding expense")
	errLoadGroup    = errors.New("error loading group")
	errGroupMissing = errors.New("group_id is required")
)

// ExpenseService implements the ExpenseService. It keeps no form state
// between calls: every request carries the full form state and gets the
// next one back.
type ExpenseService struct {
	api     APIFactory
	metrics *metrics.Metrics
}

// NewExpenseService creates an ExpenseService backed by api. m may be nil.
func NewExpenseService(api APIFactory, m *metrics.Metrics) *ExpenseService {
	return &ExpenseService{api: api, metrics: m}
}

// OpenForm loads the group and seeds a fresh form for the caller.
func (s *ExpenseService) OpenForm(ctx context.Context, req *connect.Request[OpenFormRequest]) (*connect.Response[OpenFormResponse], error) {
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

	currentUserID := page.UserID
	if currentUserID == "" {
		currentUserID = session.UserID
	}
	f := form.New(page.GroupMembers, currentUserID)

	slog.Debug("Expense form opened", "group_id", groupID, "members", len(page.GroupMembers))
	return connect.NewResponse(&OpenFormResponse{
		GroupName:  page.GroupName,
		Categories: categoryOptions(),
		State:      f.State(),
	}), nil
}

// Recompute reruns the allocator over the submitted state.
func (s *ExpenseService) Recompute(ctx context.Context, req *connect.Request[RecomputeRequest]) (*connect.Response[FormResponse], error) {
	f, err := resume(req.Msg.State)
	if err != nil {
		return nil, err
	}
	changed := f.Recompute()
	return connect.NewResponse(&FormResponse{State: f.State(), Changed: changed}), nil
}

// ToggleMember includes or excludes one member.
func (s *ExpenseService) ToggleMember(ctx context.Context, req *connect.Request[ToggleMemberRequest]) (*connect.Response[FormResponse], error) {
	f, err := resume(req.Msg.State)
	if err != nil {
		return nil, err
	}
	before := f.Members()
	if err := f.ToggleMember(req.Msg.MemberID, req.Msg.Included); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return connect.NewResponse(&FormResponse{
		State:   f.State(),
		Changed: !slices.Equal(before, f.Members()),
	}), nil
}

// SetMemberAmount overwrites one member's share in manual mode.
func (s *ExpenseService) SetMemberAmount(ctx context.Context, req *connect.Request[SetMemberAmountRequest]) (*connect.Response[FormResponse], error) {
	f, err := resume(req.Msg.State)
	if err != nil {
		return nil, err
	}
	before := f.Members()
	if err := f.SetMemberAmountText(req.Msg.MemberID, req.Msg.Amount); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return connect.NewResponse(&FormResponse{
		State:   f.State(),
		Changed: !slices.Equal(before, f.Members()),
	}), nil
}

// SubmitExpense validates the form and posts the expense to the backend.
// On success the returned state is a fresh form; on failure nothing is
// returned and the caller keeps its state.
func (s *ExpenseService) SubmitExpense(ctx context.Context, req *connect.Request[SubmitExpenseRequest]) (*connect.Response[SubmitExpenseResponse], error) {
	groupID := strings.TrimSpace(req.Msg.GroupID)
	if groupID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errGroupMissing)
	}

	f, err := resume(req.Msg.State)
	if err != nil {
		return nil, err
	}

	api, session, err := sessionAPI(ctx, s.api)
	if err != nil {
		return nil, err
	}

	// Client state may predate its last edit; settle it before validating.
	f.Recompute()

	expense, err := f.Submit(ctx, groupID, api)
	s.metrics.ObserveSubmission("expense", err)
	if err != nil {
		var ve *calculator.ValidationError
		if errors.As(err, &ve) {
			slog.Debug("Expense rejected", "group_id", groupID, "field", ve.Field, "error", ve.Err)
		}
		return nil, backendError(err, errAddExpense)
	}

	slog.Info("Expense added", "group_id", groupID, "user_id", session.UserID, "amount", expense.Amount)
	return connect.NewResponse(&SubmitExpenseResponse{Expense: expense, State: f.State()}), nil
}

// resume rebuilds a form from client state, rejecting unknown split modes.
func resume(state form.State) (*form.ExpenseForm, error) {
	mode, err := models.ParseSplitMode(string(state.Mode))
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	state.Mode = mode
	return form.FromState(state), nil
}

func categoryOptions() []CategoryOption {
	cats := models.Categories()
	out := make([]CategoryOption, len(cats))
	for i, c := range cats {
		out[i] = CategoryOption{Value: int(c), Name: c.String(), Emoji: c.Emoji()}
	}
	return out
}
