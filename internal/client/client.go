// Package client implements the device-side half of the session lifecycle:
// an HTTP client that speaks the api wire contract, a persisted token
// cache, and the Session state machine tying them together.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openshelf/openshelf/internal/api"
)

const defaultRequestTimeout = 10 * time.Second

// Client calls the OpenShelf API. A non-empty bearer token is attached to
// every request. Every call carries a hard timeout so a stalled network
// call cannot hang the caller.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient swaps the underlying transport, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New builds an API client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path, token string, body any, out any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return resp.StatusCode, ErrUnavailable
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// Register creates an account. Field-level problems come back as a
// *ValidationError.
func (c *Client) Register(ctx context.Context, name, email, password, passwordConfirmation string) error {
	payload := map[string]string{
		"name":                  name,
		"email":                 email,
		"password":              password,
		"password_confirmation": passwordConfirmation,
	}

	var out struct {
		Status bool                `json:"status"`
		Errors map[string][]string `json:"errors"`
	}
	code, err := c.do(ctx, http.MethodPost, "/register", "", payload, &out)
	if err != nil {
		return err
	}
	if code == http.StatusUnprocessableEntity {
		return &ValidationError{Fields: out.Errors}
	}
	if !out.Status {
		return fmt.Errorf("registration declined")
	}
	return nil
}

// Login exchanges credentials for a bearer token. Declined credentials
// return ErrUnauthorized wrapped with the server's message.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}

	var out struct {
		Status  bool                `json:"status"`
		Message string              `json:"message"`
		Token   string              `json:"token"`
		Errors  map[string][]string `json:"errors"`
	}
	code, err := c.do(ctx, http.MethodPost, "/login", "", payload, &out)
	if err != nil {
		return "", err
	}
	if code == http.StatusUnprocessableEntity {
		return "", &ValidationError{Fields: out.Errors}
	}
	if !out.Status || out.Token == "" {
		return "", fmt.Errorf("%w: %s", ErrUnauthorized, out.Message)
	}
	return out.Token, nil
}

// Profile fetches the authenticated user's public fields.
func (c *Client) Profile(ctx context.Context, token string) (api.User, error) {
	var out api.ProfileSuccess
	code, err := c.do(ctx, http.MethodGet, "/profile", token, nil, &out)
	if err != nil {
		return api.User{}, err
	}
	if code == http.StatusUnauthorized || !out.Status {
		return api.User{}, ErrUnauthorized
	}
	return out.User, nil
}

// Logout asks the server to revoke the token. Callers treat failures as
// best-effort; the session clears local state regardless.
func (c *Client) Logout(ctx context.Context, token string) error {
	var out api.Envelope
	if _, err := c.do(ctx, http.MethodPost, "/logout", token, nil, &out); err != nil {
		return err
	}
	return nil
}

// Products fetches the authenticated user's product list.
func (c *Client) Products(ctx context.Context, token string) ([]api.Product, error) {
	var out api.ProductList
	code, err := c.do(ctx, http.MethodGet, "/products", token, nil, &out)
	if err != nil {
		return nil, err
	}
	if code == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	return out.Products, nil
}
