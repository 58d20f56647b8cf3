package api

import (
	"context"
	"net/http"

	"github.com/Sakurayo-Crispita/saborreal-storefront/internal/domain"
)

// TokenResponse is the login response body.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user,omitempty"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var out TokenResponse
	err := c.do(ctx, request{
		operation: "auth.login",
		method:    http.MethodPost,
		path:      "/api/auth/login",
		body:      body,
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account. It does not establish a session; callers
// follow up with Login.
func (c *Client) Register(ctx context.Context, draft domain.RegisterDraft) error {
	return c.do(ctx, request{
		operation: "auth.register",
		method:    http.MethodPost,
		path:      "/api/auth/register",
		body:      draft,
	})
}

// Me fetches the profile of the current bearer token's owner.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	err := c.do(ctx, request{
		operation: "auth.me",
		method:    http.MethodGet,
		path:      "/api/auth/me",
		authed:    true,
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile applies a partial profile update and returns the server's
// representation of the updated user.
func (c *Client) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) (*domain.User, error) {
	var out domain.User
	err := c.do(ctx, request{
		operation: "auth.update_profile",
		method:    http.MethodPut,
		path:      "/api/auth/me",
		body:      patch,
		authed:    true,
		out:       &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword rotates the account password. Token and cached profile are
// unaffected.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}{CurrentPassword: current, NewPassword: next}

	return c.do(ctx, request{
		operation: "auth.change_password",
		method:    http.MethodPatch,
		path:      "/api/auth/change-password",
		body:      body,
		authed:    true,
	})
}
