package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mmynk/spendwise/internal/apiclient"
	"github.com/mmynk/spendwise/internal/auth"
	"github.com/mmynk/spendwise/internal/metrics"
	"github.com/mmynk/spendwise/internal/middleware"
	"github.com/mmynk/spendwise/internal/models"
)

// fakeAPI stands in for the backend. It serves both the per-user API and
// the login/register endpoints.
type fakeAPI struct {
	mu sync.Mutex

	page    *models.GroupPage
	profile *models.Profile
	token   string

	pageErr    error
	addErr     error
	settleErr  error
	profileErr error
	loginErr   error

	dashboard    *models.Dashboard
	joinRequests []models.JoinRequest
	dashErr      error
	joinErr      error
	creatorErr   error
	groupErr     error

	tokens    []string
	added     []*models.ExpenseRequest
	settled   []*models.SettleUpRequest
	joined    []string
	cancelled []string
	responses map[string]bool
	left      []string
	deleted   []string
}

type boundAPI struct {
	*fakeAPI
	token string
}

func (f *fakeAPI) factory(token string) API {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	return boundAPI{fakeAPI: f, token: token}
}

func (b boundAPI) Profile(_ context.Context) (*models.Profile, error) {
	if b.profileErr != nil {
		return nil, b.profileErr
	}
	return b.profile, nil
}

func (b boundAPI) GroupPage(_ context.Context, _ string) (*models.GroupPage, error) {
	if b.pageErr != nil {
		return nil, b.pageErr
	}
	return b.page, nil
}

func (b boundAPI) AddExpense(_ context.Context, req *models.ExpenseRequest) error {
	if b.addErr != nil {
		return b.addErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.added = append(b.added, req)
	return nil
}

func (b boundAPI) SettleUp(_ context.Context, req *models.SettleUpRequest) (*models.SettleUpResponse, error) {
	if b.settleErr != nil {
		return nil, b.settleErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.settled = append(b.settled, req)
	return &models.SettleUpResponse{Message: "Settled"}, nil
}

func (b boundAPI) Dashboard(_ context.Context) (*models.Dashboard, error) {
	if b.dashErr != nil {
		return nil, b.dashErr
	}
	return b.dashboard, nil
}

func (b boundAPI) RequestJoin(_ context.Context, code string) (*models.JoinRequestResult, error) {
	if b.joinErr != nil {
		return nil, b.joinErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.joined = append(b.joined, code)
	return &models.JoinRequestResult{JoinRequestID: "j-new", GroupID: "g9", GroupCode: code}, nil
}

func (b boundAPI) CancelJoinRequest(_ context.Context, id string) error {
	if b.groupErr != nil {
		return b.groupErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cancelled = append(b.cancelled, id)
	return nil
}

func (b boundAPI) CreatorCheck(_ context.Context, _ string) error {
	return b.creatorErr
}

func (b boundAPI) JoinRequests(_ context.Context, _ string) ([]models.JoinRequest, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []models.JoinRequest
	for _, r := range b.joinRequests {
		if _, answered := b.responses[r.ID]; !answered {
			out = append(out, r)
		}
	}
	return out, nil
}

func (b boundAPI) RespondToJoinRequest(_ context.Context, id string, accept bool) error {
	if b.groupErr != nil {
		return b.groupErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.responses == nil {
		b.responses = make(map[string]bool)
	}
	b.responses[id] = accept
	return nil
}

func (b boundAPI) LeaveGroup(_ context.Context, groupID string) error {
	if b.groupErr != nil {
		return b.groupErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.left = append(b.left, groupID)
	return nil
}

func (b boundAPI) DeleteGroup(_ context.Context, groupID string) error {
	if b.groupErr != nil {
		return b.groupErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = append(b.deleted, groupID)
	return nil
}

func (f *fakeAPI) Login(_ context.Context, _, _ string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.token, nil
}

func (f *fakeAPI) Register(_ context.Context, _, _, _ string) error {
	return nil
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	return &fakeAPI{
		token: signedToken(t, "u1"),
		page: &models.GroupPage{
			GroupName: "Flatmates",
			UserID:    "u1",
			UserName:  "Alice",
			GroupMembers: []models.GroupMember{
				{UserID: "u1", Name: "Alice"},
				{UserID: "u2", Name: "Bob"},
				{UserID: "u3", Name: "Carol"},
			},
			UsersYouNeedToPay: []models.Debt{
				{ID: "e1", MemberID: "u2", Description: "Pizza", AmountToPay: 12.5},
				{ID: "e2", MemberID: "u2", Description: "Cab", AmountToPay: 7.5},
				{ID: "e3", MemberID: "u3", Description: "Movie", AmountToPay: 9},
			},
			CreatorID: "u3",
			Leave:     &models.Leave{Status: models.LeaveOwes, Amount: 29, UserID: "u1", GroupID: "g1"},
			TransactionData: []models.Transaction{
				{ID: "t1", Amount: 25, Date: "2026-10-01T18:00:00Z", PaidByName: "Bob", Status: models.TransactionPending},
				{ID: "t2", Amount: 15, Date: "2026-10-03T09:00:00Z", PaidByName: "Carol", Status: models.TransactionPaid},
				{ID: "t3", Amount: 20, Date: "2026-10-02T12:00:00Z", PaidByName: "Alice", Status: models.TransactionSettlement},
			},
		},
		dashboard: &models.Dashboard{
			CreatedGroups: []models.CreatedGroup{{ID: "g5", Name: "Book club", Code: "BOOK01", MembersCount: 4, PendingRequestsCount: 1}},
			MemberGroups:  []models.Group{{ID: "g1", Name: "Flatmates", Code: "FLAT01", CreatorID: "u3"}},
		},
		joinRequests: []models.JoinRequest{
			{ID: "j1", GroupID: "g5", UserID: "u7", Status: models.JoinRequestPending, User: models.Requester{ID: "u7", Name: "Gus"}},
			{ID: "j2", GroupID: "g5", UserID: "u8", Status: models.JoinRequestPending, User: models.Requester{ID: "u8", Name: "Hal"}},
		},
		profile: &models.Profile{User: &models.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}},
	}
}

func signedToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": userID + "@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

type testClients struct {
	expense    *ExpenseServiceClient
	settlement *SettlementServiceClient
	session    *SessionServiceClient
	group      *GroupServiceClient
	metrics    *metrics.Metrics
}

// setupTestServer mounts every service the way the server binary does.
func setupTestServer(t *testing.T, api *fakeAPI) testClients {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	parser := auth.NewSessionParser("")
	m := metrics.New()

	required := connect.WithInterceptors(middleware.RequireAuth(parser), middleware.LoggingInterceptor())
	optional := connect.WithInterceptors(middleware.OptionalAuth(parser), middleware.LoggingInterceptor())

	mux := http.NewServeMux()
	mux.Handle(NewExpenseServiceHandler(NewExpenseService(api.factory, m), required))
	mux.Handle(NewSettlementServiceHandler(NewSettlementService(api.factory, m), required))
	mux.Handle(NewGroupServiceHandler(NewGroupService(api.factory, m), required))
	mux.Handle(NewSessionServiceHandler(
		NewSessionService(auth.NewPasswordAuthenticator(api), api.factory, false, logger),
		optional,
	))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return testClients{
		expense:    NewExpenseServiceClient(server.Client(), server.URL),
		settlement: NewSettlementServiceClient(server.Client(), server.URL),
		session:    NewSessionServiceClient(server.Client(), server.URL),
		group:      NewGroupServiceClient(server.Client(), server.URL),
		metrics:    m,
	}
}

// authed wraps msg in a request carrying the caller's bearer token.
func authed[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func errorCode(t *testing.T, err error) connect.Code {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	var ce *connect.Error
	if !errors.As(err, &ce) {
		t.Fatalf("expected *connect.Error, got %T: %v", err, err)
	}
	return ce.Code()
}

func TestClientFactory(t *testing.T) {
	var gotAuth string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"groupName":"Trip","userId":"u9","groupMembers":[{"userId":"u9","name":"Zed"}]}`)
	}))
	defer backend.Close()

	client, err := apiclient.New(apiclient.Config{BaseURL: backend.URL, Timeout: time.Second})
	if err != nil {
		t.Fatalf("apiclient.New failed: %v", err)
	}

	page, err := ClientFactory(client)("tok-123").GroupPage(context.Background(), "g1")
	if err != nil {
		t.Fatalf("GroupPage failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if page.GroupName != "Trip" || len(page.GroupMembers) != 1 {
		t.Errorf("unexpected page: %+v", page)
	}
}
