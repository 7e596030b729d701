package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client is a minimal HTTP client for the secure-login API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client for the given base URL using a sane default
// transport.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Register creates a new account and returns its first token pair.
func (c *Client) Register(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", "",
		RegisterRequest{Email: email, Password: password}, http.StatusCreated, &out)
	return out, err
}

// Login authenticates with email/password and returns a fresh token pair.
// Any session active for the account beforehand is invalidated.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "",
		LoginRequest{Email: email, Password: password}, http.StatusOK, &out)
	return out, err
}

// Refresh exchanges a refresh token for a new token pair. The presented
// token is single-use; the returned pair supersedes it.
func (c *Client) Refresh(ctx context.Context, refreshToken, email string) (AuthResponse, error) {
	var out AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/refresh", "",
		RefreshRequest{RefreshToken: refreshToken, Email: email}, http.StatusOK, &out)
	return out, err
}

// Logout invalidates the caller's stored refresh token.
func (c *Client) Logout(ctx context.Context, accessToken string) (MessageResponse, error) {
	var out MessageResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/logout", accessToken,
		nil, http.StatusOK, &out)
	return out, err
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context, accessToken string) (UserResponse, error) {
	var out UserResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/user/me", accessToken,
		nil, http.StatusOK, &out)
	return out, err
}

func (c *Client) doJSON(
	ctx context.Context,
	method, path, bearer string,
	body any,
	wantStatus int,
	out any,
) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var apiErr ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return fmt.Errorf("authsdk: unexpected status %d for %s %s", resp.StatusCode, method, path)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
