package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	ExpenseServiceName    = "spendwise.v1.ExpenseService"
	SettlementServiceName = "spendwise.v1.SettlementService"
	SessionServiceName    = "spendwise.v1.SessionService"
	GroupServiceName      = "spendwise.v1.GroupService"
)

// Fully-qualified procedure names, used as HTTP paths.
const (
	ExpenseServiceOpenFormProcedure        = "/spendwise.v1.ExpenseService/OpenForm"
	ExpenseServiceRecomputeProcedure       = "/spendwise.v1.ExpenseService/Recompute"
	ExpenseServiceToggleMemberProcedure    = "/spendwise.v1.ExpenseService/ToggleMember"
	ExpenseServiceSetMemberAmountProcedure = "/spendwise.v1.ExpenseService/SetMemberAmount"
	ExpenseServiceSubmitExpenseProcedure   = "/spendwise.v1.ExpenseService/SubmitExpense"

	SettlementServiceSettleUpProcedure = "/spendwise.v1.SettlementService/SettleUp"

	SessionServiceLoginProcedure       = "/spendwise.v1.SessionService/Login"
	SessionServiceRegisterProcedure    = "/spendwise.v1.SessionService/Register"
	SessionServiceCurrentUserProcedure = "/spendwise.v1.SessionService/CurrentUser"
	SessionServiceLogoutProcedure      = "/spendwise.v1.SessionService/Logout"

	GroupServiceDashboardProcedure            = "/spendwise.v1.GroupService/Dashboard"
	GroupServiceRequestToJoinProcedure        = "/spendwise.v1.GroupService/RequestToJoin"
	GroupServiceCancelJoinRequestProcedure    = "/spendwise.v1.GroupService/CancelJoinRequest"
	GroupServiceListJoinRequestsProcedure     = "/spendwise.v1.GroupService/ListJoinRequests"
	GroupServiceRespondToJoinRequestProcedure = "/spendwise.v1.GroupService/RespondToJoinRequest"
	GroupServiceLeaveGroupProcedure           = "/spendwise.v1.GroupService/LeaveGroup"
	GroupServiceListTransactionsProcedure     = "/spendwise.v1.GroupService/ListTransactions"
)

// ExpenseServiceHandler drives the add-expense form.
type ExpenseServiceHandler interface {
	OpenForm(context.Context, *connect.Request[OpenFormRequest]) (*connect.Response[OpenFormResponse], error)
	Recompute(context.Context, *connect.Request[RecomputeRequest]) (*connect.Response[FormResponse], error)
	ToggleMember(context.Context, *connect.Request[ToggleMemberRequest]) (*connect.Response[FormResponse], error)
	SetMemberAmount(context.Context, *connect.Request[SetMemberAmountRequest]) (*connect.Response[FormResponse], error)
	SubmitExpense(context.Context, *connect.Request[SubmitExpenseRequest]) (*connect.Response[SubmitExpenseResponse], error)
}

// SettlementServiceHandler records settle-up payments.
type SettlementServiceHandler interface {
	SettleUp(context.Context, *connect.Request[SettleUpRequest]) (*connect.Response[SettleUpResponse], error)
}

// SessionServiceHandler signs users in and out.
type SessionServiceHandler interface {
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	CurrentUser(context.Context, *connect.Request[CurrentUserRequest]) (*connect.Response[CurrentUserResponse], error)
	Logout(context.Context, *connect.Request[LogoutRequest]) (*connect.Response[LogoutResponse], error)
}

// GroupServiceHandler manages group membership and lists transactions.
type GroupServiceHandler interface {
	Dashboard(context.Context, *connect.Request[DashboardRequest]) (*connect.Response[DashboardResponse], error)
	RequestToJoin(context.Context, *connect.Request[RequestToJoinRequest]) (*connect.Response[RequestToJoinResponse], error)
	CancelJoinRequest(context.Context, *connect.Request[CancelJoinRequestRequest]) (*connect.Response[CancelJoinRequestResponse], error)
	ListJoinRequests(context.Context, *connect.Request[ListJoinRequestsRequest]) (*connect.Response[ListJoinRequestsResponse], error)
	RespondToJoinRequest(context.Context, *connect.Request[RespondToJoinRequestRequest]) (*connect.Response[RespondToJoinRequestResponse], error)
	LeaveGroup(context.Context, *connect.Request[LeaveGroupRequest]) (*connect.Response[LeaveGroupResponse], error)
	ListTransactions(context.Context, *connect.Request[ListTransactionsRequest]) (*connect.Response[ListTransactionsResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	return route(ExpenseServiceName, map[string]http.Handler{
		ExpenseServiceOpenFormProcedure:        connect.NewUnaryHandler(ExpenseServiceOpenFormProcedure, svc.OpenForm, opts...),
		ExpenseServiceRecomputeProcedure:       connect.NewUnaryHandler(ExpenseServiceRecomputeProcedure, svc.Recompute, opts...),
		ExpenseServiceToggleMemberProcedure:    connect.NewUnaryHandler(ExpenseServiceToggleMemberProcedure, svc.ToggleMember, opts...),
		ExpenseServiceSetMemberAmountProcedure: connect.NewUnaryHandler(ExpenseServiceSetMemberAmountProcedure, svc.SetMemberAmount, opts...),
		ExpenseServiceSubmitExpenseProcedure:   connect.NewUnaryHandler(ExpenseServiceSubmitExpenseProcedure, svc.SubmitExpense, opts...),
	})
}

// NewSettlementServiceHandler builds an HTTP handler from the service
// implementation.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	return route(SettlementServiceName, map[string]http.Handler{
		SettlementServiceSettleUpProcedure: connect.NewUnaryHandler(SettlementServiceSettleUpProcedure, svc.SettleUp, opts...),
	})
}

// NewSessionServiceHandler builds an HTTP handler from the service
// implementation.
func NewSessionServiceHandler(svc SessionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	return route(SessionServiceName, map[string]http.Handler{
		SessionServiceLoginProcedure:       connect.NewUnaryHandler(SessionServiceLoginProcedure, svc.Login, opts...),
		SessionServiceRegisterProcedure:    connect.NewUnaryHandler(SessionServiceRegisterProcedure, svc.Register, opts...),
		SessionServiceCurrentUserProcedure: connect.NewUnaryHandler(SessionServiceCurrentUserProcedure, svc.CurrentUser, opts...),
		SessionServiceLogoutProcedure:      connect.NewUnaryHandler(SessionServiceLogoutProcedure, svc.Logout, opts...),
	})
}

// NewGroupServiceHandler builds an HTTP handler from the service
// implementation.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	return route(GroupServiceName, map[string]http.Handler{
		GroupServiceDashboardProcedure:            connect.NewUnaryHandler(GroupServiceDashboardProcedure, svc.Dashboard, opts...),
		GroupServiceRequestToJoinProcedure:        connect.NewUnaryHandler(GroupServiceRequestToJoinProcedure, svc.RequestToJoin, opts...),
		GroupServiceCancelJoinRequestProcedure:    connect.NewUnaryHandler(GroupServiceCancelJoinRequestProcedure, svc.CancelJoinRequest, opts...),
		GroupServiceListJoinRequestsProcedure:     connect.NewUnaryHandler(GroupServiceListJoinRequestsProcedure, svc.ListJoinRequests, opts...),
		GroupServiceRespondToJoinRequestProcedure: connect.NewUnaryHandler(GroupServiceRespondToJoinRequestProcedure, svc.RespondToJoinRequest, opts...),
		GroupServiceLeaveGroupProcedure:           connect.NewUnaryHandler(GroupServiceLeaveGroupProcedure, svc.LeaveGroup, opts...),
		GroupServiceListTransactionsProcedure:     connect.NewUnaryHandler(GroupServiceListTransactionsProcedure, svc.ListTransactions, opts...),
	})
}

func route(service string, handlers map[string]http.Handler) (string, http.Handler) {
	return "/" + service + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// ExpenseServiceClient is a client for spendwise.v1.ExpenseService.
type ExpenseServiceClient struct {
	openForm        *connect.Client[OpenFormRequest, OpenFormResponse]
	recompute       *connect.Client[RecomputeRequest, FormResponse]
	toggleMember    *connect.Client[ToggleMemberRequest, FormResponse]
	setMemberAmount *connect.Client[SetMemberAmountRequest, FormResponse]
	submitExpense   *connect.Client[SubmitExpenseRequest, SubmitExpenseResponse]
}

// NewExpenseServiceClient constructs a client for the ExpenseService at
// baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &ExpenseServiceClient{
		openForm:        connect.NewClient[OpenFormRequest, OpenFormResponse](httpClient, baseURL+ExpenseServiceOpenFormProcedure, opts...),
		recompute:       connect.NewClient[RecomputeRequest, FormResponse](httpClient, baseURL+ExpenseServiceRecomputeProcedure, opts...),
		toggleMember:    connect.NewClient[ToggleMemberRequest, FormResponse](httpClient, baseURL+ExpenseServiceToggleMemberProcedure, opts...),
		setMemberAmount: connect.NewClient[SetMemberAmountRequest, FormResponse](httpClient, baseURL+ExpenseServiceSetMemberAmountProcedure, opts...),
		submitExpense:   connect.NewClient[SubmitExpenseRequest, SubmitExpenseResponse](httpClient, baseURL+ExpenseServiceSubmitExpenseProcedure, opts...),
	}
}

func (c *ExpenseServiceClient) OpenForm(ctx context.Context, req *connect.Request[OpenFormRequest]) (*connect.Response[OpenFormResponse], error) {
	return c.openForm.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) Recompute(ctx context.Context, req *connect.Request[RecomputeRequest]) (*connect.Response[FormResponse], error) {
	return c.recompute.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ToggleMember(ctx context.Context, req *connect.Request[ToggleMemberRequest]) (*connect.Response[FormResponse], error) {
	return c.toggleMember.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) SetMemberAmount(ctx context.Context, req *connect.Request[SetMemberAmountRequest]) (*connect.Response[FormResponse], error) {
	return c.setMemberAmount.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) SubmitExpense(ctx context.Context, req *connect.Request[SubmitExpenseRequest]) (*connect.Response[SubmitExpenseResponse], error) {
	return c.submitExpense.CallUnary(ctx, req)
}

// SettlementServiceClient is a client for spendwise.v1.SettlementService.
type SettlementServiceClient struct {
	settleUp *connect.Client[SettleUpRequest, SettleUpResponse]
}

// NewSettlementServiceClient constructs a client for the SettlementService
// at baseURL.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &SettlementServiceClient{
		settleUp: connect.NewClient[SettleUpRequest, SettleUpResponse](httpClient, baseURL+SettlementServiceSettleUpProcedure, opts...),
	}
}

func (c *SettlementServiceClient) SettleUp(ctx context.Context, req *connect.Request[SettleUpRequest]) (*connect.Response[SettleUpResponse], error) {
	return c.settleUp.CallUnary(ctx, req)
}

// SessionServiceClient is a client for spendwise.v1.SessionService.
type SessionServiceClient struct {
	login       *connect.Client[LoginRequest, LoginResponse]
	register    *connect.Client[RegisterRequest, RegisterResponse]
	currentUser *connect.Client[CurrentUserRequest, CurrentUserResponse]
	logout      *connect.Client[LogoutRequest, LogoutResponse]
}

// NewSessionServiceClient constructs a client for the SessionService at
// baseURL.
func NewSessionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SessionServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &SessionServiceClient{
		login:       connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+SessionServiceLoginProcedure, opts...),
		register:    connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+SessionServiceRegisterProcedure, opts...),
		currentUser: connect.NewClient[CurrentUserRequest, CurrentUserResponse](httpClient, baseURL+SessionServiceCurrentUserProcedure, opts...),
		logout:      connect.NewClient[LogoutRequest, LogoutResponse](httpClient, baseURL+SessionServiceLogoutProcedure, opts...),
	}
}

func (c *SessionServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *SessionServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *SessionServiceClient) CurrentUser(ctx context.Context, req *connect.Request[CurrentUserRequest]) (*connect.Response[CurrentUserResponse], error) {
	return c.currentUser.CallUnary(ctx, req)
}

func (c *SessionServiceClient) Logout(ctx context.Context, req *connect.Request[LogoutRequest]) (*connect.Response[LogoutResponse], error) {
	return c.logout.CallUnary(ctx, req)
}

// GroupServiceClient is a client for spendwise.v1.GroupService.
type GroupServiceClient struct {
	dashboard            *connect.Client[DashboardRequest, DashboardResponse]
	requestToJoin        *connect.Client[RequestToJoinRequest, RequestToJoinResponse]
	cancelJoinRequest    *connect.Client[CancelJoinRequestRequest, CancelJoinRequestResponse]
	listJoinRequests     *connect.Client[ListJoinRequestsRequest, ListJoinRequestsResponse]
	respondToJoinRequest *connect.Client[RespondToJoinRequestRequest, RespondToJoinRequestResponse]
	leaveGroup           *connect.Client[LeaveGroupRequest, LeaveGroupResponse]
	listTransactions     *connect.Client[ListTransactionsRequest, ListTransactionsResponse]
}

// NewGroupServiceClient constructs a client for the GroupService at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &GroupServiceClient{
		dashboard:            connect.NewClient[DashboardRequest, DashboardResponse](httpClient, baseURL+GroupServiceDashboardProcedure, opts...),
		requestToJoin:        connect.NewClient[RequestToJoinRequest, RequestToJoinResponse](httpClient, baseURL+GroupServiceRequestToJoinProcedure, opts...),
		cancelJoinRequest:    connect.NewClient[CancelJoinRequestRequest, CancelJoinRequestResponse](httpClient, baseURL+GroupServiceCancelJoinRequestProcedure, opts...),
		listJoinRequests:     connect.NewClient[ListJoinRequestsRequest, ListJoinRequestsResponse](httpClient, baseURL+GroupServiceListJoinRequestsProcedure, opts...),
		respondToJoinRequest: connect.NewClient[RespondToJoinRequestRequest, RespondToJoinRequestResponse](httpClient, baseURL+GroupServiceRespondToJoinRequestProcedure, opts...),
		leaveGroup:           connect.NewClient[LeaveGroupRequest, LeaveGroupResponse](httpClient, baseURL+GroupServiceLeaveGroupProcedure, opts...),
		listTransactions:     connect.NewClient[ListTransactionsRequest, ListTransactionsResponse](httpClient, baseURL+GroupServiceListTransactionsProcedure, opts...),
	}
}

func (c *GroupServiceClient) Dashboard(ctx context.Context, req *connect.Request[DashboardRequest]) (*connect.Response[DashboardResponse], error) {
	return c.dashboard.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RequestToJoin(ctx context.Context, req *connect.Request[RequestToJoinRequest]) (*connect.Response[RequestToJoinResponse], error) {
	return c.requestToJoin.CallUnary(ctx, req)
}

func (c *GroupServiceClient) CancelJoinRequest(ctx context.Context, req *connect.Request[CancelJoinRequestRequest]) (*connect.Response[CancelJoinRequestResponse], error) {
	return c.cancelJoinRequest.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListJoinRequests(ctx context.Context, req *connect.Request[ListJoinRequestsRequest]) (*connect.Response[ListJoinRequestsResponse], error) {
	return c.listJoinRequests.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RespondToJoinRequest(ctx context.Context, req *connect.Request[RespondToJoinRequestRequest]) (*connect.Response[RespondToJoinRequestResponse], error) {
	return c.respondToJoinRequest.CallUnary(ctx, req)
}

func (c *GroupServiceClient) LeaveGroup(ctx context.Context, req *connect.Request[LeaveGroupRequest]) (*connect.Response[LeaveGroupResponse], error) {
	return c.leaveGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListTransactions(ctx context.Context, req *connect.Request[ListTransactionsRequest]) (*connect.Response[ListTransactionsResponse], error) {
	return c.listTransactions.CallUnary(ctx, req)
}
