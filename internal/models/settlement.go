package models

import "time"

// Debt is one expense share the caller still owes another member.
type Debt struct {
	// ID is the group expense ID.
	ID string `json:"id"`

	// MemberID is the member who is owed.
	MemberID string `json:"memberId"`

	Description string `json:"description"`

	// AmountToPay is the outstanding amount.
	AmountToPay float64 `json:"amountToPay"`
}

// SettleUpRequest is the body of the backend's SettleUp endpoint.
type SettleUpRequest struct {
	GroupID         string           `json:"GroupID"`
	PayerID         string           `json:"PayerId"`
	RecipientID     string           `json:"RecipientId"`
	ExpenseIDs      []SettledExpense `json:"ExpenseIds"`
	TransactionDate time.Time        `json:"TransactionDate"`
}

// SettledExpense references one debt being cleared.
type SettledExpense struct {
	ExpenseID      string  `json:"ExpenseId"`
	Amount         float64 `json:"Amount"`
	GroupExpenseID string  `json:"GroupExpenseId"`
}

// SettleUpResponse is the backend's reply to SettleUp.
type SettleUpResponse struct {
	Message string `json:"Message"`
}
