// Package api is the single choke point for backend traffic: it
// attaches the bearer credential, classifies failures, and exposes the
// remote operation catalog grouped by resource.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const maxResponseSize = 10 << 20 // 10MB, report downloads included

// Credentials supplies and revokes the bearer token. Satisfied by
// *session.Store.
type Credentials interface {
	Token() (string, error)
	Clear()
}

// Client performs every remote operation. Calls are at-most-once:
// nothing here retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      Credentials

	onUnauthorized func()

	Auth          *AuthService
	Users         *UsersService
	Employees     *EmployeesService
	Risks         *RisksService
	Tasks         *TasksService
	Alerts        *AlertsService
	Notifications *NotificationsService
	Templates     *TemplatesService
	Reports       *ReportsService
	Dashboard     *DashboardService
}

// NewClient creates a client rooted at baseURL (the host part; the
// /api prefix is appended here).
func NewClient(baseURL string, creds Credentials) *Client {
	c := &Client{
		baseURL: baseURL + "/api",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		creds: creds,
	}
	c.Auth = &AuthService{client: c}
	c.Users = &UsersService{client: c}
	c.Employees = &EmployeesService{client: c}
	c.Risks = &RisksService{client: c}
	c.Tasks = &TasksService{client: c}
	c.Alerts = &AlertsService{client: c}
	c.Notifications = &NotificationsService{client: c}
	c.Templates = &TemplatesService{client: c}
	c.Reports = &ReportsService{client: c}
	c.Dashboard = &DashboardService{client: c}
	return c
}

// OnUnauthorized registers the hook fired after an Unauthorized
// response clears the credentials. The hook must be safe to call when
// the login view is already showing.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// do performs an authenticated JSON request. out may be nil for
// operations whose response body is ignored.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.roundTrip(ctx, method, path, body, true)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return newError(ErrServer, 0, "malformed response body", err)
	}
	return nil
}

// doPublic performs an unauthenticated request. A 401 here means the
// submitted credentials were wrong, not that a session expired.
func (c *Client) doPublic(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.roundTrip(ctx, method, path, body, false)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			var apiErr *Error
			errors.As(err, &apiErr)
			return newError(ErrInvalidCredentials, http.StatusUnauthorized, apiErr.Message, nil)
		}
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return newError(ErrServer, 0, "malformed response body", err)
	}
	return nil
}

// doRaw performs an authenticated request returning the body verbatim
// (report downloads).
func (c *Client) doRaw(ctx context.Context, method, path string) ([]byte, error) {
	return c.roundTrip(ctx, method, path, nil, true)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any, authed bool) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if token, err := c.creds.Token(); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, classifyTransport(err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}
	return nil, c.classifyStatus(resp.StatusCode, raw, authed)
}

// classifyStatus maps an HTTP failure status onto the error taxonomy.
// Unauthorized on an authenticated call destroys the session; every
// other class leaves it intact.
func (c *Client) classifyStatus(status int, raw []byte, authed bool) error {
	message := errorMessage(raw)
	switch {
	case status == http.StatusUnauthorized:
		if authed {
			c.creds.Clear()
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
		}
		return newError(ErrUnauthorized, status, message, nil)
	case status == http.StatusForbidden:
		return newError(ErrForbidden, status, message, nil)
	case status == http.StatusNotFound:
		return newError(ErrNotFound, status, message, nil)
	default:
		return newError(ErrServer, status, message, nil)
	}
}

// classifyTransport separates transport timeouts from other network
// failures so callers can decide to reissue idempotent reads.
func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(ErrTimeout, 0, "", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newError(ErrTimeout, 0, "", err)
	}
	return newError(ErrNetwork, 0, "", err)
}

func errorMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}
