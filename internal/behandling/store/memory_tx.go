package store

import (
	"context"
	"sync"
	"time"

	"kabal/internal/behandling/models"
	id "kabal/pkg/domain"
	dErrors "kabal/pkg/domain-errors"
	"kabal/pkg/platform/sentinel"
)

// defaultTxTimeout is the maximum duration for a case transaction.
const defaultTxTimeout = 5 * time.Second

// MemoryTx runs transactions against a Memory store under a coarse lock. Writes
// are staged and applied only when fn returns nil, so a failed operation leaves
// no partial state behind.
type MemoryTx struct {
	mu      sync.Mutex
	store   *Memory
	timeout time.Duration
}

func NewMemoryTx(store *Memory) *MemoryTx {
	return &MemoryTx{store: store}
}

func (t *MemoryTx) RunInTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	staged := &stagedStore{base: t.store, writes: make(map[id.CaseID]*models.Case)}
	if err := fn(ctx, staged); err != nil {
		return err
	}
	staged.commit()
	return nil
}

// stagedStore overlays pending writes on the base store.
type stagedStore struct {
	base   *Memory
	writes map[id.CaseID]*models.Case
	order  []id.CaseID
}

func (s *stagedStore) FindByID(ctx context.Context, caseID id.CaseID) (*models.Case, error) {
	if c, ok := s.writes[caseID]; ok {
		return c.Clone(), nil
	}
	return s.base.FindByID(ctx, caseID)
}

func (s *stagedStore) FindBySource(ctx context.Context, sourceSystem, sourceReference string, caseType models.Type) ([]*models.Case, error) {
	return s.overlay(ctx, func(c *models.Case) bool {
		return !c.IsVoided() && sameSource(c, sourceSystem, sourceReference, caseType)
	})
}

func (s *stagedStore) FindBySubject(ctx context.Context, subject models.PartyID) ([]*models.Case, error) {
	return s.overlay(ctx, func(c *models.Case) bool {
		return !c.IsVoided() && c.Parties.Subject == subject
	})
}

func (s *stagedStore) Save(_ context.Context, c *models.Case) error {
	if !c.IsVoided() {
		s.base.mu.RLock()
		for otherID, other := range s.base.cases {
			if staged, ok := s.writes[otherID]; ok {
				other = staged
			}
			if otherID != c.ID && !other.IsVoided() && sameSource(other, c.SourceSystem, c.SourceReference, c.Type) {
				s.base.mu.RUnlock()
				return sentinel.ErrConflict
			}
		}
		s.base.mu.RUnlock()
	}
	if _, ok := s.writes[c.ID]; !ok {
		s.order = append(s.order, c.ID)
	}
	s.writes[c.ID] = c.Clone()
	return nil
}

func (s *stagedStore) overlay(_ context.Context, match func(*models.Case) bool) ([]*models.Case, error) {
	s.base.mu.RLock()
	defer s.base.mu.RUnlock()
	var out []*models.Case
	for caseID, c := range s.base.cases {
		if staged, ok := s.writes[caseID]; ok {
			c = staged
		}
		if match(c) {
			out = append(out, c.Clone())
		}
	}
	for _, caseID := range s.order {
		if _, inBase := s.base.cases[caseID]; inBase {
			continue
		}
		if c := s.writes[caseID]; match(c) {
			out = append(out, c.Clone())
		}
	}
	sortByCreated(out)
	return out, nil
}

func (s *stagedStore) commit() {
	s.base.mu.Lock()
	defer s.base.mu.Unlock()
	for _, caseID := range s.order {
		s.base.cases[caseID] = s.writes[caseID]
	}
}
