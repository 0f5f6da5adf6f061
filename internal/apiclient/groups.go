package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mmynk/spendwise/internal/models"
)

const (
	routeDashboard    = "/api/Group/Dashboard"
	routeJoinRequest  = "/api/Group/JoinRequest"
	routeCancelJoin   = "/api/Group/CancelJoinRequest"
	routeCreatorCheck = "/api/Group/CreatorCheck"
	routeJoinRequests = "/api/Group/:id/JoinRequests"
	routeRespondJoin  = "/api/Group/RespondToJoinRequest"
	routeLeaveGroup   = "/api/Group/Leave"
	routeGroup        = "/api/Group/:id"
)

// Dashboard lists the groups the caller created or joined, and the join
// requests they are still waiting on.
func (c *Client) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	var d models.Dashboard
	if err := c.do(ctx, http.MethodGet, routeDashboard, routeDashboard, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// RequestJoin asks to join the group identified by code.
func (c *Client) RequestJoin(ctx context.Context, code string) (*models.JoinRequestResult, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	var res models.JoinRequestResult
	body := map[string]string{"groupCode": code}
	if err := c.do(ctx, http.MethodPost, routeJoinRequest, routeJoinRequest, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CancelJoinRequest withdraws a pending join request.
func (c *Client) CancelJoinRequest(ctx context.Context, joinRequestID string) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	body := map[string]string{"joinRequestId": joinRequestID}
	return c.do(ctx, http.MethodPost, routeCancelJoin, routeCancelJoin, body, nil)
}

// CreatorCheck succeeds only when the caller created groupID.
func (c *Client) CreatorCheck(ctx context.Context, groupID string) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	path := routeCreatorCheck + "?" + url.Values{"id": {groupID}}.Encode()
	return c.do(ctx, http.MethodGet, routeCreatorCheck, path, nil, nil)
}

// JoinRequests lists the pending requests to join groupID.
func (c *Client) JoinRequests(ctx context.Context, groupID string) ([]models.JoinRequest, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	var reqs []models.JoinRequest
	if err := c.do(ctx, http.MethodGet, routeJoinRequests, withID(routeJoinRequests, groupID), nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// RespondToJoinRequest accepts or rejects a join request.
func (c *Client) RespondToJoinRequest(ctx context.Context, joinRequestID string, accept bool) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	body := struct {
		JoinRequestID string `json:"joinRequestId"`
		Accept        bool   `json:"accept"`
	}{joinRequestID, accept}
	return c.do(ctx, http.MethodPost, routeRespondJoin, routeRespondJoin, body, nil)
}

// LeaveGroup removes the caller from groupID.
func (c *Client) LeaveGroup(ctx context.Context, groupID string) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	body := map[string]string{"groupId": groupID}
	return c.do(ctx, http.MethodPost, routeLeaveGroup, routeLeaveGroup, body, nil)
}

// DeleteGroup deletes groupID. Only its creator may do this.
func (c *Client) DeleteGroup(ctx context.Context, groupID string) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, routeGroup, withID(routeGroup, groupID), nil, nil)
}
