// Package session owns the client-side authentication state: obtaining,
// persisting, rehydrating, refreshing, and discarding credentials. It is the
// single source of truth for whether a member is signed in.
package session

import "github.com/alefdelta/sacco-client/members"

// Session is the observable authentication state. IsAuthenticated holds iff
// both a non-empty access token and a validated member profile are present.
// Treat the Member pointer as read-only; mutations go through the Manager.
type Session struct {
	IsAuthenticated bool
	Member          *members.Member
	AccessToken     string
	RefreshToken    string
	RememberMe      bool
}

// Unauthenticated is the all-null state: no member, no tokens, and the
// "remember me" preference back at its default.
func Unauthenticated() Session {
	return Session{RememberMe: true}
}
