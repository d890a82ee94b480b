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

type AssignInput struct {
	CaseID          id.CaseID
	CaseworkerIdent string
	Unit            string
	ActorIdent      string
	// SkipWriteCheck bypasses the assigned-caseworker check for callers that
	// authorized the tildeling themselves (oppgavestyring). Subject read access
	// and the caseworker's category access are still checked.
	SkipWriteCheck bool
}

// Assign sets the caseworker of a case (tildeling).
func (s *Service) Assign(ctx context.Context, in AssignInput) (*models.Case, error) {
	if err := requireActor(in.ActorIdent); err != nil {
		return nil, err
	}
	if in.CaseworkerIdent == "" || in.Unit == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "caseworker ident and unit are required")
	}

	return s.mutate(ctx, "assign", in.CaseID, func(ctx context.Context, _ store.Store, c *models.Case) ([]models.Event, error) {
		if err := c.EnsureMutable(); err != nil {
			return nil, err
		}
		if in.SkipWriteCheck {
			if err := s.guard.CheckRead(ctx, in.ActorIdent, c.Parties.Subject); err != nil {
				return nil, err
			}
		} else {
			roles, err := s.guard.Roles(ctx, in.ActorIdent)
			if err != nil {
				return nil, err
			}
			if err := s.guard.CheckWrite(ctx, in.ActorIdent, roles, c); err != nil {
				return nil, err
			}
		}
		if err := s.guard.CheckCategoryAccess(ctx, in.CaseworkerIdent, c.Category); err != nil {
			return nil, err
		}

		if s.isLegacy(c) {
			if err := s.deps.Mirror.MarkAssigned(ctx, c.SourceReference, in.CaseworkerIdent, in.Unit); err != nil {
				s.metrics.IncMirrorFailure("assigned")
				s.logError(ctx, "legacy mirror of assignment failed", c, err)
				return nil, integration(err, "failed to mirror assignment to "+s.policy.LegacySystem)
			}
		}

		previous := c.AssignedIdent()
		now := requestcontext.Now(ctx)
		c.ApplyAssignment(in.CaseworkerIdent, in.Unit, in.ActorIdent, now)

		return []models.Event{models.NewEvent(models.EventAssigned, c, in.ActorIdent, now, map[string]string{
			"caseworker_ident":          in.CaseworkerIdent,
			"unit":                      in.Unit,
			"previous_caseworker_ident": previous,
		})}, nil
	})
}

type UnassignInput struct {
	CaseID id.CaseID
	// Reason may be empty only for actors with an elevated role.
	Reason models.DeassignReason
	// ChangedLegalGrounds replaces the legal grounds when Reason is FEIL_HJEMMEL.
	ChangedLegalGrounds []string
	ActorIdent          string
}

// Unassign clears the caseworker (fradeling). A hold is cleared first, and a
// FEIL_HJEMMEL reason rewrites the legal grounds in the same transaction.
func (s *Service) Unassign(ctx context.Context, in UnassignInput) (*models.Case, error) {
	if err := requireActor(in.ActorIdent); err != nil {
		return nil, err
	}
	if in.Reason != "" && !in.Reason.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "unknown deassign reason %s", in.Reason)
	}

	return s.mutate(ctx, "unassign", in.CaseID, func(ctx context.Context, _ store.Store, c *models.Case) ([]models.Event, error) {
		if err := c.EnsureMutable(); err != nil {
			return nil, err
		}
		roles, err := s.guard.Roles(ctx, in.ActorIdent)
		if err != nil {
			return nil, err
		}
		elevated := roles.HasAny(models.RoleReadOwnUnit, models.RoleSchedulingAllUnits)
		if elevated {
			err = s.guard.CheckRead(ctx, in.ActorIdent, c.Parties.Subject)
		} else {
			err = s.guard.CheckWrite(ctx, in.ActorIdent, roles, c)
		}
		if err != nil {
			return nil, err
		}
		if !c.IsAssigned() {
			return nil, dErrors.New(dErrors.CodeBusinessRule, "case is not assigned")
		}
		if err := c.CanUnassign(); err != nil {
			return nil, err
		}
		if in.Reason == "" && !elevated {
			return nil, dErrors.New(dErrors.CodeBusinessRule, "a deassign reason is required")
		}

		var newGrounds []string
		if in.Reason == models.DeassignWrongLegalGrounds {
			newGrounds, err = s.validateLegalGrounds(ctx, c, in.ChangedLegalGrounds)
			if err != nil {
				return nil, err
			}
		}

		if err := s.mirrorUnassignment(ctx, c); err != nil {
			return nil, err
		}

		now := requestcontext.Now(ctx)
		var events []models.Event
		if c.IsOnHold() {
			c.ApplyHold(nil, in.ActorIdent, now)
			events = append(events, models.NewEvent(models.EventHoldChanged, c, in.ActorIdent, now, map[string]string{
				"on_hold": "false",
			}))
		}
		changedGrounds := models.JoinLegalGrounds(newGrounds)

		previous := c.AssignedIdent()
		// The first history entry is seeded from the grounds in force before the rewrite.
		c.ApplyUnassignment(in.Reason, changedGrounds, in.ActorIdent, now)
		if in.Reason == models.DeassignWrongLegalGrounds {
			c.SetLegalGrounds(newGrounds)
		}

		attrs := map[string]string{
			"previous_caseworker_ident": previous,
			"deassign_reason":           string(in.Reason),
		}
		if changedGrounds != "" {
			attrs["legal_grounds"] = changedGrounds
		}
		events = append(events, models.NewEvent(models.EventUnassigned, c, in.ActorIdent, now, attrs))
		return events, nil
	})
}

// validateLegalGrounds normalizes a FEIL_HJEMMEL rewrite and checks it against
// the catalog before anything is mutated.
func (s *Service) validateLegalGrounds(ctx context.Context, c *models.Case, grounds []string) ([]string, error) {
	grounds = models.NormalizeLegalGrounds(grounds)
	if len(grounds) == 0 {
		return nil, dErrors.New(dErrors.CodeBusinessRule, "changed legal grounds are required when unassigning for wrong legal grounds")
	}
	for _, g := range grounds {
		ok, err := s.deps.Grounds.IsValidFor(ctx, c.Category, g)
		if err != nil {
			return nil, integration(err, "failed to validate legal grounds")
		}
		if !ok {
			return nil, dErrors.Newf(dErrors.CodeBusinessRule, "legal ground %s is not valid for category %s", g, c.Category)
		}
	}
	return grounds, nil
}

// mirrorUnassignment tells the legacy system the case is no longer assigned.
// Tribunal cases are not tracked there.
func (s *Service) mirrorUnassignment(ctx context.Context, c *models.Case) error {
	if !s.isLegacy(c) || c.Type == models.TypeAppealToTribunal {
		return nil
	}
	if err := s.deps.Mirror.MarkUnassigned(ctx, c.SourceReference, s.legacyDeadline(c)); err != nil {
		s.metrics.IncMirrorFailure("unassigned")
		s.logError(ctx, "legacy mirror of unassignment failed", c, err)
		return integration(err, "failed to mirror unassignment to "+s.policy.LegacySystem)
	}
	return nil
}

func (s *Service) isLegacy(c *models.Case) bool {
	return s.policy.LegacySystem != "" && c.SourceSystem == s.policy.LegacySystem
}

// legacyDeadline is the frist sent back to the legacy system on fradeling.
func (s *Service) legacyDeadline(c *models.Case) time.Time {
	if c.Deadline != nil {
		return *c.Deadline
	}
	return c.ReceivedAt.AddDate(0, 0, 7*s.policy.DefaultDeadlineWeeks)
}
