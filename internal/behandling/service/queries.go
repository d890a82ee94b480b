package service

import (
	"context"

	"kabal/internal/behandling/history"
	"kabal/internal/behandling/models"
	"kabal/internal/behandling/store"
	id "kabal/pkg/domain"
	dErrors "kabal/pkg/domain-errors"
)

// Get returns the case projection.
func (s *Service) Get(ctx context.Context, caseID id.CaseID, actorIdent string) (*models.Case, error) {
	if err := requireActor(actorIdent); err != nil {
		return nil, err
	}
	var out *models.Case
	err := s.read(ctx, "get", caseID, func(ctx context.Context, _ store.Store, c *models.Case) error {
		if err := s.guard.CheckRead(ctx, actorIdent, c.Parties.Subject); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetHistory reconstructs the audit history of every dimension of the case.
func (s *Service) GetHistory(ctx context.Context, caseID id.CaseID, actorIdent string) (history.CaseHistory, error) {
	if err := requireActor(actorIdent); err != nil {
		return history.CaseHistory{}, err
	}
	var out history.CaseHistory
	err := s.read(ctx, "get_history", caseID, func(ctx context.Context, _ store.Store, c *models.Case) error {
		if err := s.guard.CheckRead(ctx, actorIdent, c.Parties.Subject); err != nil {
			return err
		}
		out = history.Reconstruct(c)
		return nil
	})
	if err != nil {
		return history.CaseHistory{}, err
	}
	return out, nil
}

// FindCasesForSubject lists the non-void cases about subject, oldest first.
func (s *Service) FindCasesForSubject(ctx context.Context, subject models.PartyID, actorIdent string) ([]*models.Case, error) {
	if err := requireActor(actorIdent); err != nil {
		return nil, err
	}
	if subject.Value == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "subject is required")
	}
	var out []*models.Case
	err := s.observe(ctx, "find_cases_for_subject", id.CaseID{}, func(ctx context.Context) error {
		if err := s.guard.CheckRead(ctx, actorIdent, subject); err != nil {
			return err
		}
		return s.tx.RunInTx(ctx, func(ctx context.Context, st store.Store) error {
			cases, err := st.FindBySubject(ctx, subject)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to find cases")
			}
			out = cases
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
