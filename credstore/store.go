package credstore

import (
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Store coordinates the two backends. Exactly one backend holds the live
// token pair at any time; every write actively clears the other backend so a
// later change of the "remember me" preference cannot leak stale credentials.
//
// The store is the only writer of credential storage. Session operations
// mutate it and rehydration reads it; nothing else may touch the backends.
type Store struct {
	durable  SnapshotBackend
	volatile Backend
}

// New validates that both backends are present.
func New(durable SnapshotBackend, volatile Backend) (*Store, error) {
	if durable == nil {
		return nil, errors.New("[credstore.New] durable backend is required")
	}
	if volatile == nil {
		return nil, errors.New("[credstore.New] volatile backend is required")
	}
	return &Store{durable: durable, volatile: volatile}, nil
}

// Write stores the token pair in the selected backend, clearing the other
// backend first so the exclusivity invariant holds even if the save fails.
func (s *Store) Write(tok *oauth2.Token, durable bool) error {
	if tok == nil {
		return errors.New("[Store.Write] nil token")
	}
	if durable {
		if err := s.volatile.ClearTokens(); err != nil {
			return errors.Wrap(err, "[Store.Write] clear volatile")
		}
		return errors.Wrap(s.durable.SaveTokens(tok), "[Store.Write] save durable")
	}
	if err := s.durable.ClearTokens(); err != nil {
		return errors.Wrap(err, "[Store.Write] clear durable")
	}
	return errors.Wrap(s.volatile.SaveTokens(tok), "[Store.Write] save volatile")
}

// Read returns the stored token pair and whether it came from the durable
// backend. The durable backend wins deterministically if both somehow hold
// tokens. Returns (nil, false, nil) when neither backend has tokens.
func (s *Store) Read() (*oauth2.Token, bool, error) {
	tok, err := s.durable.LoadTokens()
	if err != nil {
		return nil, false, errors.Wrap(err, "[Store.Read] durable")
	}
	if tok != nil && tok.AccessToken != "" {
		return tok, true, nil
	}
	tok, err = s.volatile.LoadTokens()
	if err != nil {
		return nil, false, errors.Wrap(err, "[Store.Read] volatile")
	}
	if tok != nil && tok.AccessToken != "" {
		return tok, false, nil
	}
	return nil, false, nil
}

// Clear removes the token pair from both backends unconditionally, along with
// the durable session snapshot.
func (s *Store) Clear() error {
	if err := s.durable.ClearTokens(); err != nil {
		return errors.Wrap(err, "[Store.Clear] durable tokens")
	}
	if err := s.volatile.ClearTokens(); err != nil {
		return errors.Wrap(err, "[Store.Clear] volatile tokens")
	}
	return errors.Wrap(s.durable.ClearSnapshot(), "[Store.Clear] snapshot")
}

// SaveSnapshot persists the non-token session metadata to the durable backend.
func (s *Store) SaveSnapshot(snap *Snapshot) error {
	return errors.Wrap(s.durable.SaveSnapshot(snap), "[Store.SaveSnapshot]")
}

// LoadSnapshot returns nil when no snapshot has been written.
func (s *Store) LoadSnapshot() (*Snapshot, error) {
	snap, err := s.durable.LoadSnapshot()
	return snap, errors.Wrap(err, "[Store.LoadSnapshot]")
}
