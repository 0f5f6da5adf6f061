package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/spendwise/internal/calculator"
	"github.com/mmynk/spendwise/internal/metrics"
	"github.com/mmynk/spendwise/internal/models"
)

var errSettleUp = errors.New("error settling up")

// SettlementService implements the SettlementService.
type SettlementService struct {
	api     APIFactory
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewSettlementService creates a SettlementService backed by api. m may be
// nil.
func NewSettlementService(api APIFactory, m *metrics.Metrics) *SettlementService {
	return &SettlementService{api: api, metrics: m, now: time.Now}
}

// SettleUp pays off the selected debts the caller owes one member. The
// debts are reloaded from the backend so amounts cannot be forged by the
// client.
func (s *SettlementService) SettleUp(ctx context.Context, req *connect.Request[SettleUpRequest]) (*connect.Response[SettleUpResponse], error) {
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

	now := s.now()
	txDate := req.Msg.TransactionDate
	if txDate.IsZero() {
		txDate = now
	}

	sel, err := calculator.SelectDebts(page.UsersYouNeedToPay, req.Msg.RecipientID, req.Msg.ExpenseIDs, txDate, now)
	if err != nil {
		s.metrics.ObserveSubmission("settle_up", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	payerID := page.UserID
	if payerID == "" {
		payerID = session.UserID
	}

	resp, err := api.SettleUp(ctx, &models.SettleUpRequest{
		GroupID:         groupID,
		PayerID:         payerID,
		RecipientID:     sel.RecipientID,
		ExpenseIDs:      sel.Expenses,
		TransactionDate: txDate.UTC(),
	})
	s.metrics.ObserveSubmission("settle_up", err)
	if err != nil {
		slog.Warn("Settle up failed", "group_id", groupID, "recipient_id", sel.RecipientID, "error", err)
		return nil, backendError(err, errSettleUp)
	}

	slog.Info("Settled up",
		"group_id", groupID,
		"payer_id", payerID,
		"recipient_id", sel.RecipientID,
		"expenses", len(sel.Expenses),
		"total", calculator.FormatAmount(sel.Total),
	)
	return connect.NewResponse(&SettleUpResponse{
		Message: resp.Message,
		Total:   sel.Total,
		Settled: len(sel.Expenses),
	}), nil
}
