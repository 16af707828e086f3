package store

import (
	"context"
	"testing"
	"time"

	"github.com/darmiel/voxauth/internal/core"
)

func TestInMemoryTokenStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	s := NewInMemoryTokenStore()
	s.now = func() time.Time { return now }

	_ = s.Save(ctx, core.TokenMetadata{CorrelationID: "old", IssuedAt: now.Add(-2 * time.Minute), ExpiresAt: now.Add(-time.Minute)})
	_ = s.Save(ctx, core.TokenMetadata{CorrelationID: "a", IssuedAt: now.Add(-time.Minute), ExpiresAt: now.Add(time.Minute)})
	_ = s.Save(ctx, core.TokenMetadata{CorrelationID: "b", IssuedAt: now, ExpiresAt: now.Add(time.Minute)})
	_ = s.Save(ctx, core.TokenMetadata{CorrelationID: "edge", IssuedAt: now, ExpiresAt: now})

	active, err := s.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(active) != 2 || active[0].CorrelationID != "b" || active[1].CorrelationID != "a" {
		t.Errorf("ListActive() = %+v, want [b a]", active)
	}

	deleted, err := s.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("DeleteExpired() = %d, want 2", deleted)
	}
	if len(s.tokens) != 2 {
		t.Errorf("store holds %d tokens after cleanup, want 2", len(s.tokens))
	}
}

func TestInMemoryTokenStoreSharedCorrelationID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	s := NewInMemoryTokenStore()
	s.now = func() time.Time { return now }

	for _, fp := range []string{"fp-1", "fp-2"} {
		_ = s.Save(ctx, core.TokenMetadata{
			CorrelationID: "pinned",
			Fingerprint:   fp,
			IssuedAt:      now,
			ExpiresAt:     now.Add(time.Minute),
		})
	}

	active, err := s.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("ListActive() returned %d tokens, want 2", len(active))
	}
	if active[0].Fingerprint != "fp-1" || active[1].Fingerprint != "fp-2" {
		t.Errorf("ListActive() = %+v, want insertion order for equal issue times", active)
	}
}
