package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/spendwise/internal/auth"
)

type ping struct{}

func token(t *testing.T, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

// run calls interceptor with a request carrying header and reports the
// session the next handler saw.
func run(t *testing.T, interceptor connect.UnaryInterceptorFunc, header http.Header) (*auth.Session, error) {
	t.Helper()
	var seen *auth.Session
	next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seen = GetSession(ctx)
		return connect.NewResponse(&ping{}), nil
	})

	req := connect.NewRequest(&ping{})
	for k, v := range header {
		req.Header()[k] = v
	}
	_, err := interceptor(next)(context.Background(), req)
	return seen, err
}

func TestRequireAuth(t *testing.T) {
	parser := auth.NewSessionParser("secret")

	session, err := run(t, RequireAuth(parser), http.Header{
		"Authorization": {"Bearer " + token(t, time.Now().Add(time.Hour))},
	})
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "u1", session.UserID)

	_, err = run(t, RequireAuth(parser), http.Header{})
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	_, err = run(t, RequireAuth(parser), http.Header{
		"Authorization": {"Bearer " + token(t, time.Now().Add(-time.Hour))},
	})
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestOptionalAuth(t *testing.T) {
	parser := auth.NewSessionParser("")

	session, err := run(t, OptionalAuth(parser), http.Header{
		"Cookie": {auth.CookieName + "=" + token(t, time.Now().Add(time.Hour))},
	})
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "u1", session.UserID)

	session, err = run(t, OptionalAuth(parser), http.Header{"Authorization": {"Bearer garbage"}})
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestGetUserID_Empty(t *testing.T) {
	assert.Empty(t, GetUserID(context.Background()))
}

func TestCORS(t *testing.T) {
	called := false
	h := CORS("*")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/spendwise.v1.ExpenseService/Recompute", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, called, "preflight must not reach the handler")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	rec = httptest.NewRecorder()
	RequestLogger(h).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))
	assert.True(t, called)
}
