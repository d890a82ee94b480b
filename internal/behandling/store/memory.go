package store

import (
	"context"
	"slices"
	"sync"

	"kabal/internal/behandling/models"
	id "kabal/pkg/domain"
	"kabal/pkg/platform/sentinel"
)

// Memory is an in-process Store for tests and local runs.
type Memory struct {
	mu    sync.RWMutex
	cases map[id.CaseID]*models.Case
}

func NewMemory() *Memory {
	return &Memory{cases: make(map[id.CaseID]*models.Case)}
}

// Load inserts cases as they are, without the origin-key check. It models cases
// handed over by intake, including legacy data that already breaks the guard.
func (m *Memory) Load(cases ...*models.Case) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range cases {
		m.cases[c.ID] = c.Clone()
	}
}

func (m *Memory) FindByID(_ context.Context, caseID id.CaseID) (*models.Case, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.cases[caseID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return c.Clone(), nil
}

func (m *Memory) FindBySource(_ context.Context, sourceSystem, sourceReference string, caseType models.Type) ([]*models.Case, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter(func(c *models.Case) bool {
		return !c.IsVoided() && sameSource(c, sourceSystem, sourceReference, caseType)
	}), nil
}

func (m *Memory) FindBySubject(_ context.Context, subject models.PartyID) ([]*models.Case, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter(func(c *models.Case) bool {
		return !c.IsVoided() && c.Parties.Subject == subject
	}), nil
}

func (m *Memory) Save(_ context.Context, c *models.Case) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkSource(c); err != nil {
		return err
	}
	m.cases[c.ID] = c.Clone()
	return nil
}

// checkSource enforces at most one non-void case per origin key. Callers hold mu.
func (m *Memory) checkSource(c *models.Case) error {
	if c.IsVoided() {
		return nil
	}
	for otherID, other := range m.cases {
		if otherID == c.ID || other.IsVoided() {
			continue
		}
		if sameSource(other, c.SourceSystem, c.SourceReference, c.Type) {
			return sentinel.ErrConflict
		}
	}
	return nil
}

// filter returns clones of matching cases, oldest first. Callers hold mu.
func (m *Memory) filter(match func(*models.Case) bool) []*models.Case {
	var out []*models.Case
	for _, c := range m.cases {
		if match(c) {
			out = append(out, c.Clone())
		}
	}
	sortByCreated(out)
	return out
}

func sortByCreated(cases []*models.Case) {
	slices.SortStableFunc(cases, func(a, b *models.Case) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
