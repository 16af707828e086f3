package audit

import (
	"sync"

	"github.com/darmiel/voxauth/internal/core"
)

var (
	_ core.Auditor     = (*InMemoryAuditor)(nil)
	_ core.AuditReader = (*InMemoryAuditor)(nil)
)

// InMemoryAuditor keeps the latest entries in a ring buffer.
// With a capacity of 0 it grows without bound.
type InMemoryAuditor struct {
	mu       sync.RWMutex
	buf      []core.AuditEntry
	next     int
	full     bool
	capacity int
}

func NewInMemoryAuditor(capacity int) *InMemoryAuditor {
	return &InMemoryAuditor{
		buf:      make([]core.AuditEntry, 0, max(capacity, 0)),
		capacity: capacity,
	}
}

func (a *InMemoryAuditor) Log(entry core.AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.capacity <= 0 || len(a.buf) < a.capacity {
		a.buf = append(a.buf, entry)
		return nil
	}
	a.buf[a.next] = entry
	a.next = (a.next + 1) % a.capacity
	a.full = true
	return nil
}

// ordered returns all entries, oldest first. Callers hold the read lock.
func (a *InMemoryAuditor) ordered() []core.AuditEntry {
	out := make([]core.AuditEntry, 0, len(a.buf))
	if a.full {
		out = append(out, a.buf[a.next:]...)
		return append(out, a.buf[:a.next]...)
	}
	return append(out, a.buf...)
}

// GetRecent returns up to limit of the newest entries, oldest first. limit <= 0 returns all.
func (a *InMemoryAuditor) GetRecent(limit int) ([]core.AuditEntry, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	all := a.ordered()
	if limit > 0 && limit < len(all) {
		all = all[len(all)-limit:]
	}
	return all, nil
}

// Find returns up to limit of the newest entries matching filter, oldest first.
func (a *InMemoryAuditor) Find(filter func(entry core.AuditEntry) bool, limit int) ([]core.AuditEntry, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var matches []core.AuditEntry
	for _, entry := range a.ordered() {
		if filter(entry) {
			matches = append(matches, entry)
		}
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[len(matches)-limit:]
	}
	return matches, nil
}

func (a *InMemoryAuditor) Close() error {
	return nil
}
