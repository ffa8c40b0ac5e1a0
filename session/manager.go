package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/alefdelta/sacco-client/credstore"
	"github.com/alefdelta/sacco-client/members"
)

// Manager holds the session state and synchronizes it with the credential
// store. It is created once at application start and injected into whatever
// consumes it; there is no package-level instance.
//
// The Manager is the only writer of the credential store. Login, Logout, and
// RefreshAuth mutate it; Rehydrate reads it.
type Manager struct {
	api     API
	store   *credstore.Store
	logger  zerolog.Logger
	nowTime func() time.Time

	lock        sync.RWMutex
	current     Session
	subscribers []func(Session)
}

// ManagerOption modifies the Manager at construction time.
type ManagerOption func(*Manager)

// WithLogger sets the logger for state-transition debug output.
func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// NewManager initializes an unauthenticated Manager with required
// dependencies.
func NewManager(api API, store *credstore.Store, options ...ManagerOption) (*Manager, error) {
	if api == nil {
		return nil, errors.New("[NewManager] api is required")
	}
	if store == nil {
		return nil, errors.New("[NewManager] store is required")
	}

	manager := &Manager{
		api:     api,
		store:   store,
		logger:  zerolog.Nop(),
		nowTime: time.Now,
		current: Unauthenticated(),
	}

	for _, opt := range options {
		opt(manager)
	}

	return manager, nil
}

// Current returns a copy of the session state.
func (m *Manager) Current() Session {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.current
}

// Subscribe registers a callback invoked after every state change, with the
// new session value. Callbacks run outside the Manager's lock.
func (m *Manager) Subscribe(fn func(Session)) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// Login authenticates the member and persists the token grant under the
// backend selected by rememberMe. On any failure the store is cleared, the
// state is reset to unauthenticated, and the original error is returned for
// the caller to display.
func (m *Manager) Login(ctx context.Context, identifier, secret string, rememberMe bool) error {
	grant, err := m.api.Login(ctx, identifier, secret)
	if err != nil {
		m.resetToUnauthenticated()
		return err
	}
	if grant.Member == nil || grant.AccessToken == "" {
		// a grant without both parts would leave the session half-built
		m.resetToUnauthenticated()
		return errors.New("[Manager.Login] incomplete grant from backend")
	}

	tok := &oauth2.Token{AccessToken: grant.AccessToken, RefreshToken: grant.RefreshToken}
	if err := m.store.Write(tok, rememberMe); err != nil {
		m.resetToUnauthenticated()
		return errors.Wrap(err, "[Manager.Login] persist tokens")
	}
	if err := m.store.SaveSnapshot(&credstore.Snapshot{
		IsAuthenticated: true,
		Member:          grant.Member,
		RememberMe:      rememberMe,
	}); err != nil {
		m.logger.Debug().Err(err).Msg("session snapshot not saved")
	}

	m.setState(Session{
		IsAuthenticated: true,
		Member:          grant.Member,
		AccessToken:     grant.AccessToken,
		RefreshToken:    grant.RefreshToken,
		RememberMe:      rememberMe,
	})
	m.logger.Debug().Str("member", grant.Member.MemberID).Msg("session established")
	return nil
}

// Logout clears both credential backends and resets the state.
func (m *Manager) Logout() {
	m.resetToUnauthenticated()
	m.logger.Debug().Msg("session cleared")
}

// UpdateMember merges a partial profile change into the current member.
// Local-only; it never synthesizes a member when none is present.
func (m *Manager) UpdateMember(update members.Update) {
	m.lock.Lock()
	if m.current.Member == nil {
		m.lock.Unlock()
		return
	}
	updated := *m.current.Member
	update.Apply(&updated)
	m.current.Member = &updated
	state := m.current
	subs := append([]func(Session){}, m.subscribers...)
	m.lock.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

// RefreshAuth exchanges the current refresh token for a new token pair,
// persisted under the current rememberMe backend. Member and authentication
// status are untouched. On failure the session is logged out before the error
// is returned, so callers observe the unauthenticated state in their error
// handling.
func (m *Manager) RefreshAuth(ctx context.Context) error {
	m.lock.RLock()
	refreshToken := m.current.RefreshToken
	rememberMe := m.current.RememberMe
	m.lock.RUnlock()

	if refreshToken == "" {
		return errors.Wrap(ErrNoRefreshToken, "[Manager.RefreshAuth]")
	}

	pair, err := m.api.Refresh(ctx, refreshToken)
	if err != nil {
		m.Logout()
		return err
	}

	tok := &oauth2.Token{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}
	if err := m.store.Write(tok, rememberMe); err != nil {
		m.Logout()
		return errors.Wrap(err, "[Manager.RefreshAuth] persist tokens")
	}

	m.lock.Lock()
	m.current.AccessToken = pair.AccessToken
	m.current.RefreshToken = pair.RefreshToken
	state := m.current
	subs := append([]func(Session){}, m.subscribers...)
	m.lock.Unlock()

	for _, fn := range subs {
		fn(state)
	}
	return nil
}

// Rehydrate reconciles the in-memory state with persisted credentials. Safe
// to call repeatedly and never returns an error: an invalid or expired token
// at startup is routine, so every failure path ends in a silent logout.
func (m *Manager) Rehydrate(ctx context.Context) {
	tok, fromDurable, err := m.store.Read()
	if err != nil {
		m.logger.Debug().Err(err).Msg("credential read failed during rehydration")
	}
	if tok == nil {
		// self-heal a state that claims authenticated with nothing persisted
		if m.Current().IsAuthenticated {
			m.Logout()
		}
		return
	}

	if m.Current().IsAuthenticated {
		return
	}

	member, err := m.api.ProfileWithToken(ctx, tok.AccessToken)
	if err != nil {
		// expired or tampered token, routine at boot
		m.Logout()
		return
	}

	m.setState(Session{
		IsAuthenticated: true,
		Member:          member,
		AccessToken:     tok.AccessToken,
		RefreshToken:    tok.RefreshToken,
		RememberMe:      fromDurable,
	})
	m.logger.Debug().Str("member", member.MemberID).Bool("rememberMe", fromDurable).Msg("session rehydrated")
}

// Token implements oauth2.TokenSource so the API client can take the Manager
// directly as its bearer source.
func (m *Manager) Token() (*oauth2.Token, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if m.current.AccessToken == "" {
		return nil, errors.New("[Manager.Token] not authenticated")
	}
	return &oauth2.Token{
		AccessToken:  m.current.AccessToken,
		RefreshToken: m.current.RefreshToken,
	}, nil
}

var _ oauth2.TokenSource = (*Manager)(nil)

// TokenExpiry returns the access token's expiry claim, or the zero time when
// there is no token or the token carries no parsable expiry.
func (m *Manager) TokenExpiry() time.Time {
	m.lock.RLock()
	raw := m.current.AccessToken
	m.lock.RUnlock()
	if raw == "" {
		return time.Time{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// TokenExpiresWithin reports whether the access token expires inside the
// given window. Unknown expiry counts as not expiring.
func (m *Manager) TokenExpiresWithin(window time.Duration) bool {
	expiry := m.TokenExpiry()
	if expiry.IsZero() {
		return false
	}
	return m.nowTime().Add(window).After(expiry)
}

func (m *Manager) resetToUnauthenticated() {
	if err := m.store.Clear(); err != nil {
		m.logger.Debug().Err(err).Msg("credential clear failed")
	}
	m.setState(Unauthenticated())
}

func (m *Manager) setState(state Session) {
	m.lock.Lock()
	m.current = state
	subs := append([]func(Session){}, m.subscribers...)
	m.lock.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
