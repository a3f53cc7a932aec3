package apiclient

import (
	"context"
	"net/http"
)

const profilePathPrefix = "/api/v1/me/profile"

// MyProfile fetches the authenticated user's profile.
func (c *Client) MyProfile(ctx context.Context) (*User, error) {
	return call[User](ctx, c, Request{
		Endpoint:            profilePathPrefix + "/",
		Method:              http.MethodGet,
		RequiresCredentials: true,
	})
}

// UpdateMyProfile changes profile fields and returns the updated user.
func (c *Client) UpdateMyProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	return call[User](ctx, c, Request{
		Endpoint:            profilePathPrefix + "/",
		Method:              http.MethodPut,
		Body:                update,
		RequiresCredentials: true,
	})
}

// ChangePassword replaces the account password after verifying the
// current one server-side.
func (c *Client) ChangePassword(ctx context.Context, change PasswordChange) (*MessageResponse, error) {
	return call[MessageResponse](ctx, c, Request{
		Endpoint:            profilePathPrefix + "/password",
		Method:              http.MethodPut,
		Body:                change,
		RequiresCredentials: true,
	})
}

// ChangeUsername renames the account after verifying the current
// password server-side.
func (c *Client) ChangeUsername(ctx context.Context, change UsernameChange) (*MessageResponse, error) {
	return call[MessageResponse](ctx, c, Request{
		Endpoint:            profilePathPrefix + "/username",
		Method:              http.MethodPut,
		Body:                change,
		RequiresCredentials: true,
	})
}

// ChangeEmail replaces the account email after verifying the current
// password server-side.
func (c *Client) ChangeEmail(ctx context.Context, change EmailChange) (*MessageResponse, error) {
	return call[MessageResponse](ctx, c, Request{
		Endpoint:            profilePathPrefix + "/email",
		Method:              http.MethodPut,
		Body:                change,
		RequiresCredentials: true,
	})
}
