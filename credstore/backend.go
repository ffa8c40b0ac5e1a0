// Package credstore persists authentication credentials across two mutually
// exclusive storage backends: a durable one that survives process restarts and
// a volatile one scoped to the current process. Which backend is live is
// decided per login by the member's "remember me" preference.
package credstore

import (
	"github.com/alefdelta/sacco-client/members"
	"golang.org/x/oauth2"
)

// Backend is the storage strategy for the token pair. LoadTokens returns
// (nil, nil) when no tokens are stored.
type Backend interface {
	SaveTokens(tok *oauth2.Token) error
	LoadTokens() (*oauth2.Token, error)
	ClearTokens() error
}

// SnapshotBackend additionally persists the non-token session metadata.
// Only the durable backend carries a snapshot; tokens are deliberately kept
// out of it so their lifetime is controlled independently.
type SnapshotBackend interface {
	Backend
	SaveSnapshot(snap *Snapshot) error
	LoadSnapshot() (*Snapshot, error)
	ClearSnapshot() error
}

// Snapshot is the durable-only session metadata record.
type Snapshot struct {
	IsAuthenticated bool            `json:"isAuthenticated"`
	Member          *members.Member `json:"member,omitempty"`
	RememberMe      bool            `json:"rememberMe"`
}
