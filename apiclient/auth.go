package apiclient

import (
	"context"
	"net/http"

	"github.com/alefdelta/sacco-client/members"
)

// AuthResponse is the grant returned by a successful login.
type AuthResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	Member       *members.Member `json:"member"`
}

// TokenPair is the grant returned by a token refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Login exchanges member credentials for a token grant. The identifier is the
// member's registered phone number.
func (c *Client) Login(ctx context.Context, identifier, secret string) (*AuthResponse, error) {
	body := map[string]string{"phone": identifier, "password": secret}
	var resp AuthResponse
	if err := c.postJSON(ctx, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh mints a new token pair from a refresh token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	body := map[string]string{"refreshToken": refreshToken}
	var resp TokenPair
	if err := c.postJSON(ctx, "/auth/refresh", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RequestPasswordReset starts the OTP-based reset flow and returns the
// backend's OTP request handle.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	body := map[string]string{"email": email}
	var resp struct {
		OTPRequestID string `json:"otp_req_id"`
	}
	if err := c.postJSON(ctx, "/auth/request-reset", body, &resp); err != nil {
		return "", err
	}
	return resp.OTPRequestID, nil
}

// ChangePassword changes the authenticated member's password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{
		"current_password": currentPassword,
		"new_password":     newPassword,
	}
	return c.postJSON(ctx, "/auth/change-password", body, nil)
}

// ProfileWithToken fetches the member profile using an explicit bearer
// credential rather than the client's token source.
func (c *Client) ProfileWithToken(ctx context.Context, accessToken string) (*members.Member, error) {
	var m members.Member
	if err := c.doWithBearer(ctx, http.MethodGet, "/client/me", accessToken, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
