package store

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/darmiel/voxauth/internal/core"
)

var _ core.TokenStore = (*InMemoryTokenStore)(nil)

// InMemoryTokenStore records metadata of issued tokens in issue order.
// Every Save adds a record; correlation ids are caller supplied and not unique.
// The tokens themselves are never stored.
type InMemoryTokenStore struct {
	mu     sync.RWMutex
	tokens []core.TokenMetadata
	now    func() time.Time
}

func NewInMemoryTokenStore() *InMemoryTokenStore {
	return &InMemoryTokenStore{now: time.Now}
}

func (s *InMemoryTokenStore) Save(_ context.Context, meta core.TokenMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens = append(s.tokens, meta)
	return nil
}

// ListActive returns all unexpired tokens, newest first.
func (s *InMemoryTokenStore) ListActive(_ context.Context) ([]core.TokenMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	active := make([]core.TokenMetadata, 0, len(s.tokens))
	for _, t := range s.tokens {
		if t.ExpiresAt.After(now) {
			active = append(active, t)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].IssuedAt.After(active[j].IssuedAt)
	})
	return active, nil
}

func (s *InMemoryTokenStore) DeleteExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	before := len(s.tokens)
	s.tokens = slices.DeleteFunc(s.tokens, func(t core.TokenMetadata) bool {
		return !t.ExpiresAt.After(now)
	})
	return int64(before - len(s.tokens)), nil
}
