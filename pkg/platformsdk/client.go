package platformsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a small Go client for the platform API. Authenticated calls
// take the bearer token explicitly; the client stores no credentials.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a platform API client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/health", "", nil, http.StatusOK, &out)
	return out, err
}

// Login calls POST /api/login and returns the issued token.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/login", "",
		LoginRequest{Username: username, Password: password},
		http.StatusOK, &out)
	return out, err
}

// Status calls GET /api/status with the given bearer token.
func (c *Client) Status(ctx context.Context, token string) (StatusResponse, error) {
	var out StatusResponse
	err := c.do(ctx, http.MethodGet, "/api/status", token, nil, http.StatusOK, &out)
	return out, err
}

// CreateUser calls POST /api/users with the given bearer token.
func (c *Client) CreateUser(
	ctx context.Context,
	token string,
	req CreateUserRequest,
) (CreateUserResponse, error) {
	var out CreateUserResponse
	err := c.do(ctx, http.MethodPost, "/api/users", token, req, http.StatusCreated, &out)
	return out, err
}

// do performs a JSON round-trip. A non-expected status is decoded into an
// *APIError so callers can inspect the code and status.
func (c *Client) do(
	ctx context.Context,
	method, path, token string,
	body any,
	wantStatus int,
	out any,
) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != wantStatus {
		var apiErr ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error == "" {
			return &APIError{
				StatusCode: resp.StatusCode,
				Code:       ErrorCodeServerError,
				Message:    fmt.Sprintf("unexpected status %d", resp.StatusCode),
			}
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       apiErr.Error,
			Message:    apiErr.Message,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
