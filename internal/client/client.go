// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package client is a small HTTP client for the UniPortal authentication API.
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

	"github.com/taibuivan/uniportal/internal/users/auth"
	"github.com/taibuivan/uniportal/internal/users/bridge"
)

// DefaultTimeout bounds every API call.
const DefaultTimeout = 30 * time.Second

// Client calls the authentication endpoints of one API base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// APIError is a non-2xx answer decoded from the error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("%s (%d %s)", e.Message, e.Status, e.Code)
}

// IsStatus reports whether err is an [APIError] with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Login runs the role-qualified login and returns the session to bridge.
func (c *Client) Login(ctx context.Context, email, password, role string) (*bridge.Session, error) {
	body := map[string]string{"email": email, "password": password, "role": role}

	var session bridge.Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Me returns the principal identified by token.
func (c *Client) Me(ctx context.Context, token string) (*auth.Principal, error) {
	var principal auth.Principal
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil, &principal); err != nil {
		return nil, err
	}
	return &principal, nil
}

// Logout asks the API to clear the token cookie.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", "", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.Canceled):
			return errors.New("request canceled")
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return errors.New("request timed out")
		}
		return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if json.NewDecoder(resp.Body).Decode(&envelope) == nil {
			apiErr.Code = envelope.Code
			apiErr.Message = envelope.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}
