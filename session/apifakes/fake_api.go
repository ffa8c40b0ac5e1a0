package apifakes

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/alefdelta/sacco-client/apiclient"
	"github.com/alefdelta/sacco-client/members"
	"github.com/alefdelta/sacco-client/session"
)

var _ session.API = (*FakeAPI)(nil)

// FakeAPI is a stub of the backend collaborators. Each operation returns the
// configured result and records how often it was called.
type FakeAPI struct {
	lock sync.Mutex

	LoginGrant *apiclient.AuthResponse
	LoginErr   error

	RefreshPair *apiclient.TokenPair
	RefreshErr  error

	Profile    *members.Member
	ProfileErr error

	LoginCalls   int
	RefreshCalls int
	ProfileCalls int
}

func NewFakeAPI() *FakeAPI {
	return &FakeAPI{}
}

func (f *FakeAPI) Login(_ context.Context, identifier, secret string) (*apiclient.AuthResponse, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.LoginCalls++
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	if f.LoginGrant == nil {
		return nil, errors.New("no grant configured")
	}
	return f.LoginGrant, nil
}

func (f *FakeAPI) Refresh(_ context.Context, refreshToken string) (*apiclient.TokenPair, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.RefreshCalls++
	if f.RefreshErr != nil {
		return nil, f.RefreshErr
	}
	if f.RefreshPair == nil {
		return nil, errors.New("no token pair configured")
	}
	return f.RefreshPair, nil
}

func (f *FakeAPI) ProfileWithToken(_ context.Context, accessToken string) (*members.Member, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.ProfileCalls++
	if f.ProfileErr != nil {
		return nil, f.ProfileErr
	}
	if f.Profile == nil {
		return nil, errors.New("no profile configured")
	}
	return f.Profile, nil
}
