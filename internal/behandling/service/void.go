package service

import (
	"context"
	"time"

	"kabal/internal/behandling/models"
	"kabal/internal/behandling/store"
	id "kabal/pkg/domain"
	dErrors "kabal/pkg/domain-errors"
	"kabal/pkg/requestcontext"
)

// voidSourceSystem marks voids requested inside the appeals body.
const voidSourceSystem = "KABAL"

// Void-by-reference outcomes that name why no single candidate could be voided.
var (
	ErrVoidNoCandidate        = dErrors.New(dErrors.CodeBusinessRule, "no active case matches the source reference")
	ErrVoidCandidateCompleted = dErrors.New(dErrors.CodeBusinessRule, "the matching case is already completed")
	ErrVoidCandidateAssigned  = dErrors.New(dErrors.CodeBusinessRule, "the matching case is assigned and must be unassigned first")
)

type VoidInput struct {
	CaseID     id.CaseID
	Reason     string
	ActorIdent string
}

// VoidByID feilregistrerer a case. An assigned case may only be voided by an
// actor with an elevated role; the assignment is then released under the same
// rules as Unassign (no release during co-signer review, legacy mirror).
func (s *Service) VoidByID(ctx context.Context, in VoidInput) (*models.Case, error) {
	if err := requireActor(in.ActorIdent); err != nil {
		return nil, err
	}
	if in.Reason == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "void reason is required")
	}

	return s.mutate(ctx, "void", in.CaseID, func(ctx context.Context, _ store.Store, c *models.Case) ([]models.Event, error) {
		if err := c.EnsureMutable(); err != nil {
			return nil, err
		}
		if err := s.guard.CheckRead(ctx, in.ActorIdent, c.Parties.Subject); err != nil {
			return nil, err
		}
		roles, err := s.guard.Roles(ctx, in.ActorIdent)
		if err != nil {
			return nil, err
		}
		elevated := roles.HasAny(models.RoleSchedulingAllUnits, models.RoleClerical)
		if c.IsAssigned() && !elevated {
			return nil, dErrors.Newf(dErrors.CodeForbidden,
				"case is assigned; voiding it requires %s or %s", models.RoleSchedulingAllUnits, models.RoleClerical)
		}
		if c.IsAssigned() {
			if err := c.CanUnassign(); err != nil {
				return nil, err
			}
		}
		if err := s.ensureDocumentsFinished(ctx, c); err != nil {
			return nil, err
		}

		now := requestcontext.Now(ctx)
		var events []models.Event
		if c.IsAssigned() {
			released, err := s.releaseForVoid(ctx, c, in.ActorIdent, now)
			if err != nil {
				return nil, err
			}
			events = append(events, released...)
		}
		if err := c.CanVoid(); err != nil {
			return nil, err
		}
		c.ApplyVoid(in.ActorIdent, in.Reason, voidSourceSystem, now)
		events = append(events, voidedEvent(c, in.ActorIdent))
		return events, nil
	})
}

type VoidBySourceInput struct {
	SourceSystem    string
	SourceReference string
	Type            models.Type
	Reason          string
	ActorIdent      string
}

// VoidBySource voids the single active case with the given origin key. It is
// the intake correction path and runs as the intake system, without subject
// access checks.
func (s *Service) VoidBySource(ctx context.Context, in VoidBySourceInput) (*models.Case, error) {
	if in.SourceSystem == "" || in.SourceReference == "" || !in.Type.IsValid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "source system, source reference and a valid type are required")
	}
	if err := requireActor(in.ActorIdent); err != nil {
		return nil, err
	}

	var out *models.Case
	err := s.observe(ctx, "void_by_source", id.CaseID{}, func(ctx context.Context) error {
		return s.tx.RunInTx(ctx, func(ctx context.Context, st store.Store) error {
			candidates, err := st.FindBySource(ctx, in.SourceSystem, in.SourceReference, in.Type)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up cases by source reference")
			}
			switch {
			case len(candidates) == 0:
				return ErrVoidNoCandidate
			case len(candidates) > 1:
				return dErrors.Newf(dErrors.CodeInvariantViolation,
					"%d active cases share source reference %s/%s and type %s",
					len(candidates), in.SourceSystem, in.SourceReference, in.Type)
			}

			c := candidates[0]
			if c.IsCompleted() {
				return ErrVoidCandidateCompleted
			}
			if c.IsAssigned() {
				return ErrVoidCandidateAssigned
			}
			if err := s.ensureDocumentsFinished(ctx, c); err != nil {
				return err
			}

			now := requestcontext.Now(ctx)
			c.ApplyVoid(in.ActorIdent, in.Reason, in.SourceSystem, now)
			if err := save(ctx, st, c); err != nil {
				return err
			}
			if err := s.publish(ctx, []models.Event{voidedEvent(c, in.ActorIdent)}); err != nil {
				return err
			}
			out = c
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ensureDocumentsFinished is the hard document check of the void paths.
func (s *Service) ensureDocumentsFinished(ctx context.Context, c *models.Case) error {
	unfinished, err := s.deps.Documents.HasUnfinishedDocuments(ctx, c.ID)
	if err != nil {
		return integration(err, "failed to check document status")
	}
	if unfinished {
		return dErrors.New(dErrors.CodeBusinessRule, "case has unfinished documents")
	}
	return nil
}

// releaseForVoid clears hold and assignment so the void invariant holds. The
// legacy system is told first; a mirror failure leaves the case untouched.
func (s *Service) releaseForVoid(ctx context.Context, c *models.Case, actorIdent string, now time.Time) ([]models.Event, error) {
	if err := s.mirrorUnassignment(ctx, c); err != nil {
		return nil, err
	}
	var events []models.Event
	if c.IsOnHold() {
		c.ApplyHold(nil, actorIdent, now)
		events = append(events, models.NewEvent(models.EventHoldChanged, c, actorIdent, now, map[string]string{"on_hold": "false"}))
	}
	previous := c.AssignedIdent()
	c.ApplyUnassignment("", "", actorIdent, now)
	events = append(events, models.NewEvent(models.EventUnassigned, c, actorIdent, now, map[string]string{
		"previous_caseworker_ident": previous,
	}))
	return events, nil
}

func voidedEvent(c *models.Case, actorIdent string) models.Event {
	return models.NewEvent(models.EventVoided, c, actorIdent, c.Void.Timestamp, map[string]string{
		"reason":        c.Void.Reason,
		"source_system": c.Void.SourceSystem,
	})
}
