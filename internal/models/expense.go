package models

import "time"

// ExpenseRequest is the body of the backend's AddExpense endpoint.
type ExpenseRequest struct {
	GroupID  string       `json:"GroupId"`
	PaidByID string       `json:"PaidById"`
	Category Category     `json:"Category"`
	Amount   float64      `json:"Amount"`
	Title    string       `json:"Title"`
	Date     time.Time    `json:"Date"`
	Splits   []SplitShare `json:"Splits"`
}

// SplitShare is one member's share in an ExpenseRequest.
type SplitShare struct {
	UserID string  `json:"UserId"`
	Amount float64 `json:"Amount"`
}
