package credstore

import (
	"sync"

	"golang.org/x/oauth2"
)

var _ Backend = (*MemoryBackend)(nil)

// MemoryBackend holds tokens for the lifetime of the process only. It is the
// volatile backend used when the member declines "remember me".
type MemoryBackend struct {
	lock   sync.RWMutex
	tokens *oauth2.Token
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) SaveTokens(tok *oauth2.Token) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	cp := *tok
	b.tokens = &cp
	return nil
}

func (b *MemoryBackend) LoadTokens() (*oauth2.Token, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	if b.tokens == nil {
		return nil, nil
	}
	cp := *b.tokens
	return &cp, nil
}

func (b *MemoryBackend) ClearTokens() error {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.tokens = nil
	return nil
}
