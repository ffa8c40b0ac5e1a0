package session

import (
	"context"

	"github.com/alefdelta/sacco-client/apiclient"
	"github.com/alefdelta/sacco-client/members"
)

// API is the backend surface the Manager depends on: the authentication,
// refresh, and profile collaborators.
type API interface {
	Login(ctx context.Context, identifier, secret string) (*apiclient.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*apiclient.TokenPair, error)
	ProfileWithToken(ctx context.Context, accessToken string) (*members.Member, error)
}

var _ API = (*apiclient.Client)(nil)
