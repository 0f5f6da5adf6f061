package service

import (
	"time"

	"github.com/mmynk/spendwise/internal/form"
	"github.com/mmynk/spendwise/internal/models"
)

// CategoryOption is one entry of the category picker. Value is the index
// sent to the backend.
type CategoryOption struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

type OpenFormRequest struct {
	GroupID string `json:"groupId"`
}

type OpenFormResponse struct {
	GroupName  string           `json:"groupName"`
	Categories []CategoryOption `json:"categories"`
	State      form.State       `json:"state"`
}

type RecomputeRequest struct {
	State form.State `json:"state"`
}

type ToggleMemberRequest struct {
	State    form.State `json:"state"`
	MemberID string     `json:"memberId"`
	Included bool       `json:"included"`
}

// SetMemberAmountRequest carries the raw amount input; text that does not
// parse as a number counts as 0.
type SetMemberAmountRequest struct {
	State    form.State `json:"state"`
	MemberID string     `json:"memberId"`
	Amount   string     `json:"amount"`
}

// FormResponse is the form state after a mutation. Changed reports whether
// any member share moved.
type FormResponse struct {
	State   form.State `json:"state"`
	Changed bool       `json:"changed"`
}

type SubmitExpenseRequest struct {
	GroupID string     `json:"groupId"`
	State   form.State `json:"state"`
}

// SubmitExpenseResponse returns the payload that was sent and the reset
// form state.
type SubmitExpenseResponse struct {
	Expense *models.ExpenseRequest `json:"expense"`
	State   form.State             `json:"state"`
}

type SettleUpRequest struct {
	GroupID         string    `json:"groupId"`
	RecipientID     string    `json:"recipientId"`
	ExpenseIDs      []string  `json:"expenseIds"`
	TransactionDate time.Time `json:"transactionDate"`
}

type SettleUpResponse struct {
	Message string  `json:"message"`
	Total   float64 `json:"total"`
	Settled int     `json:"settled"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the token for non-browser callers; browsers get
// it in the session cookie.
type LoginResponse struct {
	User  *models.User `json:"user,omitempty"`
	Token string       `json:"token"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct{}

type CurrentUserRequest struct{}

type CurrentUserResponse struct {
	User *models.User `json:"user"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type DashboardRequest struct{}

type DashboardResponse struct {
	Dashboard *models.Dashboard `json:"dashboard"`
}

type RequestToJoinRequest struct {
	GroupCode string `json:"groupCode"`
}

type RequestToJoinResponse struct {
	Request *models.JoinRequestResult `json:"request"`
}

type CancelJoinRequestRequest struct {
	JoinRequestID string `json:"joinRequestId"`
}

type CancelJoinRequestResponse struct{}

type ListJoinRequestsRequest struct {
	GroupID string `json:"groupId"`
}

type ListJoinRequestsResponse struct {
	Requests []models.JoinRequest `json:"requests"`
}

type RespondToJoinRequestRequest struct {
	GroupID       string `json:"groupId"`
	JoinRequestID string `json:"joinRequestId"`
	Accept        bool   `json:"accept"`
}

// RespondToJoinRequestResponse returns the queue left to review.
type RespondToJoinRequestResponse struct {
	Requests []models.JoinRequest `json:"requests"`
}

type LeaveGroupRequest struct {
	GroupID string `json:"groupId"`
}

// LeaveGroupResponse reports whether the caller left the group or, as its
// creator, deleted it.
type LeaveGroupResponse struct {
	Action string `json:"action"`
}

type ListTransactionsRequest struct {
	GroupID string `json:"groupId"`

	// SortBy is "date" (the default) or "amount".
	SortBy    string `json:"sortBy"`
	Ascending bool   `json:"ascending"`
	Page      int    `json:"page"`
	PageSize  int    `json:"pageSize"`
	Detailed  bool   `json:"detailed"`
}

// TransactionRow is a transaction with its status already labelled.
type TransactionRow struct {
	models.Transaction
	StatusLabel string `json:"statusLabel"`
}

type ListTransactionsResponse struct {
	Transactions []TransactionRow `json:"transactions"`
	Page         int              `json:"page"`
	TotalPages   int              `json:"totalPages"`
	Total        int              `json:"total"`
}
