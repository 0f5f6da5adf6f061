package models

// TransactionStatus is how much of an expense or split has been paid back.
type TransactionStatus int

const (
	TransactionPending TransactionStatus = iota
	TransactionPartiallyPaid
	TransactionPaid

	// TransactionSettlement marks a settle-up payment rather than an expense.
	// Settlements are hidden unless the detailed view is requested.
	TransactionSettlement
)

func (s TransactionStatus) String() string {
	switch s {
	case TransactionPaid:
		return "Paid"
	case TransactionPartiallyPaid:
		return "Partially Paid"
	case TransactionSettlement:
		return "Settlement"
	default:
		return "Pending"
	}
}

// TransactionSplit is one member's part of a listed transaction.
type TransactionSplit struct {
	UserName string            `json:"userName"`
	Amount   float64           `json:"amount"`
	Status   TransactionStatus `json:"status"`
}

// Transaction is one row of a group's transaction history.
type Transaction struct {
	ID          string  `json:"id"`
	ExpenseID   string  `json:"expenseId"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	PaidBy      string  `json:"paidBy"`
	Description string  `json:"description"`

	// Date is kept as the backend sent it (ISO 8601), which sorts
	// chronologically as a string.
	Date string `json:"date"`

	Status     TransactionStatus  `json:"status"`
	PaidByName string             `json:"PaidByName"`
	Splits     []TransactionSplit `json:"splits"`
}

// Leave statuses reported on the group page.
const (
	LeaveSettledUp = "settled up"
	LeaveGetsBack  = "gets back"
	LeaveOwes      = "owes"
)

// Leave is the caller's standing in a group, used to decide whether they may
// leave it (or, for the creator, delete it).
type Leave struct {
	Status  string  `json:"status"`
	Amount  float64 `json:"amount"`
	UserID  string  `json:"userId"`
	GroupID string  `json:"groupId"`
}
