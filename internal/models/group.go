package models

import "encoding/json"

// GroupMember is one entry of a group's membership list.
type GroupMember struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// GroupPage is the backend's read model for a single group page.
// Everything except the balance graph is typed.
type GroupPage struct {
	GroupName string `json:"groupName"`
	CreatorID string `json:"creatorId"`

	// UserName and UserID identify the caller.
	UserName string `json:"userName"`
	UserID   string `json:"userId"`

	GroupMembers []GroupMember `json:"groupMembers"`

	// UsersYouNeedToPay lists the caller's outstanding debts in this group.
	UsersYouNeedToPay []Debt `json:"usersYouNeedToPay"`

	// Leave is nil when the backend omits it.
	Leave *Leave `json:"leave,omitempty"`

	TransactionData []Transaction `json:"transactionData,omitempty"`

	// Balance is passed through untouched for display.
	Balance json.RawMessage `json:"balance,omitempty"`
}
