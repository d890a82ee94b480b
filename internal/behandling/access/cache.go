package access

import (
	"context"
	"sync"
	"time"

	"kabal/internal/behandling/ports"
)

// DecisionCache caches subject access decisions per (subject, ident). It is an
// explicit object handed to the Guard; InvalidateSubject and Flush are the only
// ways entries leave before their TTL.
type DecisionCache interface {
	Get(ctx context.Context, subject, ident string) (ports.AccessDecision, bool, error)
	Put(ctx context.Context, subject, ident string, decision ports.AccessDecision) error
	// InvalidateSubject drops every cached decision about subject, e.g. after a
	// skjerming or address-protection change.
	InvalidateSubject(ctx context.Context, subject string) error
	Flush(ctx context.Context) error
}

const defaultCacheTTL = 10 * time.Minute

type memoryEntry struct {
	decision  ports.AccessDecision
	expiresAt time.Time
}

// MemoryCache is an in-process DecisionCache.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]map[string]memoryEntry
}

// NewMemoryCache returns a MemoryCache with the given TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]map[string]memoryEntry),
	}
}

func (m *MemoryCache) Get(_ context.Context, subject, ident string) (ports.AccessDecision, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[subject][ident]
	if !ok || !m.now().Before(entry.expiresAt) {
		return ports.AccessDecision{}, false, nil
	}
	return entry.decision, true, nil
}

func (m *MemoryCache) Put(_ context.Context, subject, ident string, decision ports.AccessDecision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bySubject, ok := m.entries[subject]
	if !ok {
		bySubject = make(map[string]memoryEntry)
		m.entries[subject] = bySubject
	}
	bySubject[ident] = memoryEntry{decision: decision, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryCache) InvalidateSubject(_ context.Context, subject string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, subject)
	return nil
}

func (m *MemoryCache) Flush(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]map[string]memoryEntry)
	return nil
}
