package calculator

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/mmynk/spendwise/internal/models"
)

func TestSelectDebts(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	debts := []models.Debt{
		{ID: "e1", MemberID: "bob", Description: "Pizza", AmountToPay: 12.5},
		{ID: "e2", MemberID: "bob", Description: "Cab", AmountToPay: 7.25},
		{ID: "e3", MemberID: "carol", Description: "Movie", AmountToPay: 9},
	}

	t.Run("totals selected debts for recipient", func(t *testing.T) {
		sel, err := SelectDebts(debts, "bob", []string{"e1", "e2", "e3"}, now, now)
		if err != nil {
			t.Fatalf("SelectDebts failed: %v", err)
		}
		if len(sel.Expenses) != 2 {
			t.Fatalf("expected 2 expenses, got %d", len(sel.Expenses))
		}
		if math.Abs(sel.Total-19.75) > 0.01 {
			t.Errorf("Total = %v, want 19.75", sel.Total)
		}
		if sel.Expenses[0].ExpenseID != "e1" || sel.Expenses[0].GroupExpenseID != "e1" {
			t.Errorf("unexpected first expense: %+v", sel.Expenses[0])
		}
	})

	tests := []struct {
		name      string
		recipient string
		selected  []string
		txDate    time.Time
		wantErr   error
	}{
		{"no recipient", "", []string{"e1"}, now, ErrMissingSettleTarget},
		{"recipient owed nothing", "dave", []string{"e1"}, now, ErrRecipientNotFound},
		{"future date", "bob", []string{"e1"}, now.Add(time.Hour), ErrFutureTransaction},
		{"nothing selected", "bob", nil, now, ErrNoExpensesSelected},
		{"selection belongs to someone else", "bob", []string{"e3"}, now, ErrNoExpensesSelected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SelectDebts(debts, tt.recipient, tt.selected, tt.txDate, now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SelectDebts() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
