// Package apiclient is a typed HTTP client for the SpendWise backend API.
//
// The backend owns persistence, balances and authentication. A Client carries
// no ambient session: callers bind a token per request with WithToken.
package apiclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/spendwise/internal/metrics"
	"github.com/mmynk/spendwise/internal/models"
)

const (
	// DefaultBaseURL is the backend address used in local development.
	DefaultBaseURL = "http://localhost:2849"

	// RequestIDHeader carries a fresh UUID on every backend call.
	RequestIDHeader = "X-Request-Id"

	maxErrorBody = 512
)

var (
	ErrUnauthorized = errors.New("backend rejected the session")
	ErrMissingToken = errors.New("no session token bound to client")
)

// APIError is returned for any non-2xx backend response.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Endpoint, e.StatusCode, msg)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Config describes how to reach the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate checks. Only meant for
	// development backends with self-signed certificates.
	InsecureSkipVerify bool

	UserAgent string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithMetrics records backend latency into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// Client talks to the backend API. It is safe for concurrent use; WithToken
// returns a copy that shares the underlying HTTP client.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	token     string
	metrics   *metrics.Metrics
}

// New creates a client for cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL %q: %w", raw, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend URL %q: scheme must be http or https", raw)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: cfg.Timeout, Transport: transport},
		userAgent: cfg.UserAgent,
	}
	if c.userAgent == "" {
		c.userAgent = "spendwise"
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithToken returns a copy of c that authenticates as token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Token returns the bound session token.
func (c *Client) Token() string {
	return c.token
}

// Backend routes. Paths are built from these by filling :id, and metrics are
// labelled with the route itself so ids never reach a label.
const (
	routeLogin    = "/api/Users/Login"
	routeRegister = "/api/Users/Register"
	routeProfile  = "/api/Users/Profile"

	routeGroupPage = "/api/Group/:id/PageData"

	routeAddExpense = "/api/GroupExpense/AddExpense"
	routeSettleUp   = "/api/GroupExpense/SettleUp"
)

// withID fills the :id placeholder of route.
func withID(route, id string) string {
	return strings.Replace(route, ":id", url.PathEscape(id), 1)
}

// do sends one JSON request to path, recording latency under route. body and
// out may be nil.
func (c *Client) do(ctx context.Context, method, route, path string, body, out any) error {
	endpoint := method + " " + path

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", endpoint, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, uuid.New().String())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(route, "error", start)
		return fmt.Errorf("%s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()
	c.observe(route, strconv.Itoa(resp.StatusCode), start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
		if resp.StatusCode == http.StatusUnauthorized {
			apiErr.Err = ErrUnauthorized
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) observe(route, status string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.BackendLatency.WithLabelValues(route, status).Observe(time.Since(start).Seconds())
}

// errorMessage pulls a human-readable message out of an error body.
func errorMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var body struct {
		Message      string `json:"message"`
		MessageUpper string `json:"Message"`
		Title        string `json:"title"`
	}
	if json.Unmarshal(raw, &body) == nil {
		for _, m := range []string{body.Message, body.MessageUpper, body.Title} {
			if m != "" {
				return m
			}
		}
	}
	return strings.TrimSpace(string(raw))
}

func (c *Client) requireToken() error {
	if c.token == "" {
		return ErrMissingToken
	}
	return nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, routeLogin, routeLogin, map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login response carried no token")
	}
	return resp.Token, nil
}

// Register creates a backend account.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.do(ctx, http.MethodPost, routeRegister, routeRegister, map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, nil)
}

// Profile returns the user the bound token belongs to.
func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	var p models.Profile
	if err := c.do(ctx, http.MethodGet, routeProfile, routeProfile, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GroupPage loads the read model of one group.
func (c *Client) GroupPage(ctx context.Context, groupID string) (*models.GroupPage, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	var page models.GroupPage
	if err := c.do(ctx, http.MethodGet, routeGroupPage, withID(routeGroupPage, groupID), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AddExpense records a validated expense.
func (c *Client) AddExpense(ctx context.Context, req *models.ExpenseRequest) error {
	if err := c.requireToken(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, routeAddExpense, routeAddExpense, req, nil)
}

// SettleUp records a payment that clears the selected debts.
func (c *Client) SettleUp(ctx context.Context, req *models.SettleUpRequest) (*models.SettleUpResponse, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	var resp models.SettleUpResponse
	if err := c.do(ctx, http.MethodPost, routeSettleUp, routeSettleUp, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
