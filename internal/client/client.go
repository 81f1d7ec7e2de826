// Package client is the Go front end for the fitness API: an HTTP client
// plus the explicit session state machine the terminal UI runs on.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fittrack/internal/model"
	"fittrack/internal/stats"
)

var ErrUnauthenticated = errors.New("not authenticated, log in first")

// APIError carries the server's envelope message for a non-2xx response.
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (http %d): %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	session    *Session
	httpClient *http.Client
}

func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    session,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Session() *Session { return c.session }

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, authed bool, out interface{}) error {
	if authed && !c.session.Authenticated() {
		return ErrUnauthenticated
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request failed: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.session.Token())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response failed: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{Status: resp.StatusCode, Code: env.Code, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data failed: %w", err)
		}
	}
	return nil
}

type registerPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

func (c *Client) Register(ctx context.Context, username, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", registerPayload{
		Username: username,
		Email:    email,
		Password: password,
	}, false, nil)
}

// Login performs the login call and, on success, drives the session's
// unauthenticated -> authenticated transition.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", loginPayload{
		Email:    email,
		Password: password,
	}, false, &resp); err != nil {
		return err
	}
	return c.session.LoginSucceeded(resp.Token)
}

func (c *Client) Logout() error {
	return c.session.Logout()
}

func (c *Client) ListActivities(ctx context.Context) ([]model.Activity, error) {
	var activities []model.Activity
	if err := c.do(ctx, http.MethodGet, "/api/activities", nil, true, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

type addActivityPayload struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	Notes           string `json:"notes,omitempty"`
}

func (c *Client) AddActivity(ctx context.Context, name string, durationMinutes int, notes string) (*model.Activity, error) {
	var activity model.Activity
	if err := c.do(ctx, http.MethodPost, "/api/activities", addActivityPayload{
		Name:            name,
		DurationMinutes: durationMinutes,
		Notes:           notes,
	}, true, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// DashboardStats fetches the list and aggregates it locally in the
// viewer's zone, recomputed on every call.
func (c *Client) DashboardStats(ctx context.Context) (stats.Summary, []model.Activity, error) {
	activities, err := c.ListActivities(ctx)
	if err != nil {
		return stats.Summary{}, nil, err
	}
	return stats.Summarize(activities, time.Local), activities, nil
}
