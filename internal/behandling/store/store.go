// Package store persists Case aggregates. Implementations return sentinel
// errors; the coordinators translate them.
package store

import (
	"context"

	"kabal/internal/behandling/models"
	id "kabal/pkg/domain"
)

// Store is the CaseStore. Every read returns a copy the caller owns.
type Store interface {
	// FindByID returns sentinel.ErrNotFound when no case has the id.
	FindByID(ctx context.Context, caseID id.CaseID) (*models.Case, error)
	// FindBySource returns the non-void cases with the given origin key.
	FindBySource(ctx context.Context, sourceSystem, sourceReference string, caseType models.Type) ([]*models.Case, error)
	// FindBySubject returns the non-void cases about subject, oldest first.
	FindBySubject(ctx context.Context, subject models.PartyID) ([]*models.Case, error)
	// Save writes the aggregate and appends any new history entries. It returns
	// sentinel.ErrConflict when another non-void case holds the same origin key.
	Save(ctx context.Context, c *models.Case) error
}

// Tx is the transactional boundary of one coordinator operation. fn receives a
// context bound to the transaction; collaborators that write (the outbox) must
// use it.
type Tx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}

func sameSource(c *models.Case, sourceSystem, sourceReference string, caseType models.Type) bool {
	return c.SourceSystem == sourceSystem && c.SourceReference == sourceReference && c.Type == caseType
}
