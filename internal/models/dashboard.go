package models

// Group is a group the caller belongs to.
type Group struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Code is the six-character code others use to ask to join.
	Code string `json:"code"`

	CreatorID string `json:"creatorId"`
}

// CreatedGroup is a group the caller created, with its review queue size.
type CreatedGroup struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Description          string `json:"description,omitempty"`
	Code                 string `json:"code"`
	MembersCount         int    `json:"membersCount"`
	PendingRequestsCount int    `json:"pendingRequestsCount"`
}

// JoinRequestPending is the only status a listed join request has.
const JoinRequestPending = "PENDING"

// PendingRequest is a join request the caller sent and is still waiting on.
type PendingRequest struct {
	ID        string `json:"id"`
	GroupID   string `json:"groupId"`
	UserID    string `json:"userId"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	Group     Group  `json:"group"`
}

// Dashboard is the backend's read model for the groups page.
type Dashboard struct {
	CreatedGroups   []CreatedGroup   `json:"createdGroups"`
	MemberGroups    []Group          `json:"memberGroups"`
	PendingRequests []PendingRequest `json:"pendingRequests"`
}

// JoinRequestResult is the backend's reply to a join request.
type JoinRequestResult struct {
	JoinRequestID    string `json:"joinRequestId"`
	GroupID          string `json:"groupId"`
	UserID           string `json:"userId"`
	GroupName        string `json:"groupName"`
	GroupDescription string `json:"groupDescription"`
	GroupCode        string `json:"groupCode"`
	GroupCreatorID   string `json:"groupCreatorId"`
}

// Requester identifies who sent a join request.
type Requester struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// JoinRequest is a request to join a group, as seen by the group's creator.
type JoinRequest struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"groupID"`
	UserID    string    `json:"userId"`
	Status    string    `json:"status"`
	CreatedAt string    `json:"createdAt"`
	User      Requester `json:"user"`
	Group     Group     `json:"group"`
}
