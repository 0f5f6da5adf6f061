package calculator

import (
	"errors"
	"time"

	"github.com/mmynk/spendwise/internal/models"
)

var (
	ErrRecipientNotFound   = errors.New("selected user not found")
	ErrNoExpensesSelected  = errors.New("select at least one expense to settle up")
	ErrFutureTransaction   = errors.New("transaction date cannot be in the future")
	ErrMissingSettleTarget = errors.New("please select a valid recipient")
)

// SettleSelection is the validated result of picking debts to settle.
type SettleSelection struct {
	RecipientID string
	Expenses    []models.SettledExpense

	// Total is the sum of the selected debts' outstanding amounts.
	Total float64
}

// DebtsTo returns the debts owed to one member, in input order.
func DebtsTo(debts []models.Debt, memberID string) []models.Debt {
	var out []models.Debt
	for _, d := range debts {
		if d.MemberID == memberID {
			out = append(out, d)
		}
	}
	return out
}

// SelectDebts validates a settle-up selection.
//
// Only debts owed to recipientID count; selected IDs that belong to another
// member are ignored. now bounds the transaction date.
func SelectDebts(debts []models.Debt, recipientID string, selected []string, txDate, now time.Time) (*SettleSelection, error) {
	if recipientID == "" {
		return nil, &ValidationError{Field: "toUser", Err: ErrMissingSettleTarget}
	}
	owed := DebtsTo(debts, recipientID)
	if len(owed) == 0 {
		return nil, &ValidationError{Field: "toUser", Err: ErrRecipientNotFound}
	}
	if txDate.After(now) {
		return nil, &ValidationError{Field: "transactionDate", Err: ErrFutureTransaction}
	}

	want := make(map[string]bool, len(selected))
	for _, id := range selected {
		want[id] = true
	}

	sel := &SettleSelection{RecipientID: recipientID}
	for _, d := range owed {
		if !want[d.ID] {
			continue
		}
		sel.Expenses = append(sel.Expenses, models.SettledExpense{
			ExpenseID:      d.ID,
			Amount:         d.AmountToPay,
			GroupExpenseID: d.ID,
		})
		sel.Total += d.AmountToPay
	}
	if len(sel.Expenses) == 0 {
		return nil, &ValidationError{Field: "selectedExpenses", Err: ErrNoExpensesSelected}
	}
	return sel, nil
}
