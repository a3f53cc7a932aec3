package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
)

// Signup creates a new account. The response body is passed through
// untouched; signup never establishes a session.
func (c *Client) Signup(ctx context.Context, input SignupInput) (json.RawMessage, error) {
	return c.Do(ctx, Request{
		Endpoint: "/api/v1/auth/signup",
		Method:   http.MethodPost,
		Body:     input,
	})
}

// Login authenticates and stores the backend session cookie in the
// client's jar.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	return call[AuthResponse](ctx, c, Request{
		Endpoint:            "/api/v1/auth/login",
		Method:              http.MethodPost,
		Body:                creds,
		RequiresCredentials: true,
	})
}

// Validate checks the stored session with the backend and returns the
// authenticated identity. Failing validation is the routine anonymous
// path, not an exceptional condition.
func (c *Client) Validate(ctx context.Context) (*AuthResponse, error) {
	return call[AuthResponse](ctx, c, Request{
		Endpoint:            "/api/v1/auth/validate",
		Method:              http.MethodGet,
		RequiresCredentials: true,
	})
}
