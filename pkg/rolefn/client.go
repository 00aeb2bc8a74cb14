// Package rolefn calls the privileged grant-role and revoke-role functions.
package rolefn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// GrantRequest is the body of POST /grant-role.
type GrantRequest struct {
	TargetUserID string `json:"targetUserId"`
	Role         string `json:"role"`
}

// RevokeRequest is the body of POST /revoke-role.
type RevokeRequest struct {
	TargetUserID string `json:"targetUserId"`
}

// Response is returned by both functions.
type Response struct {
	OK    bool   `json:"ok,omitempty"`
	Role  string `json:"role,omitempty"`
	Error string `json:"error,omitempty"`
}

// Error is a non-2xx answer from a role function.
type Error struct {
	StatusCode int
	Message    string
}

// Error implements error.
func (e *Error) Error() string {
	return fmt.Sprintf("role function returned %d: %s", e.StatusCode, e.Message)
}

// Client is a minimal HTTP client for the role functions.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient constructs a client rooted at baseURL (for example
// http://localhost:8080/functions/v1).
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Grant assigns role to the target user on behalf of the caller's token.
func (c *Client) Grant(ctx context.Context, callerToken, targetUserID, role string) error {
	return c.doRequest(ctx, "/grant-role", callerToken, GrantRequest{TargetUserID: targetUserID, Role: role})
}

// Revoke removes elevated access from the target user.
func (c *Client) Revoke(ctx context.Context, callerToken, targetUserID string) error {
	return c.doRequest(ctx, "/revoke-role", callerToken, RevokeRequest{TargetUserID: targetUserID})
}

func (c *Client) doRequest(ctx context.Context, endpoint, token string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	log.Debug().
		Str("endpoint", endpoint).
		Int("status_code", resp.StatusCode).
		Msg("[ROLEFN] response")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var out Response
	msg := "Failed"
	if json.Unmarshal(respBody, &out) == nil && out.Error != "" {
		msg = out.Error
	}
	return &Error{StatusCode: resp.StatusCode, Message: msg}
}
