package service

import (
	"context"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"kabal/internal/behandling/models"
	"kabal/internal/behandling/store"
	id "kabal/pkg/domain"
	dErrors "kabal/pkg/domain-errors"
	"kabal/pkg/requestcontext"
)

type ValidateInput struct {
	CaseID     id.CaseID
	ActorIdent string
	// ReopenAfterTribunalReversal validates for the new-case-after-reversal path.
	ReopenAfterTribunalReversal bool
}

// ValidateBeforeFinalize collects every applicable validation error of the case.
// A non-empty report is returned together with a *ValidationFailedError carrying
// it. Rule violations that make the request itself meaningless (wrong reopen
// path, terminal case) are returned as the error alone.
func (s *Service) ValidateBeforeFinalize(ctx context.Context, in ValidateInput) (models.ValidationReport, error) {
	if err := requireActor(in.ActorIdent); err != nil {
		return models.ValidationReport{}, err
	}
	var report models.ValidationReport
	err := s.read(ctx, "validate_before_finalize", in.CaseID, func(ctx context.Context, _ store.Store, c *models.Case) error {
		if err := s.guard.CheckRead(ctx, in.ActorIdent, c.Parties.Subject); err != nil {
			return err
		}
		r, err := s.validate(ctx, c, in.ReopenAfterTribunalReversal)
		if err != nil {
			return err
		}
		report = r
		return nil
	})
	if err != nil {
		return models.ValidationReport{}, err
	}
	if report.HasErrors() {
		return report, &ValidationFailedError{Report: report}
	}
	return report, nil
}

type FinalizeInput = ValidateInput

// Finalize re-runs validation and either completes the case or, on the reopen
// path, spawns the successor case. A non-empty report is returned as
// *ValidationFailedError and nothing is changed.
func (s *Service) Finalize(ctx context.Context, in FinalizeInput) (*models.Case, error) {
	if err := requireActor(in.ActorIdent); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "finalize", in.CaseID, func(ctx context.Context, _ store.Store, c *models.Case) ([]models.Event, error) {
		if err := ensureFinalizable(c, in.ReopenAfterTribunalReversal); err != nil {
			return nil, err
		}
		roles, err := s.guard.Roles(ctx, in.ActorIdent)
		if err != nil {
			return nil, err
		}
		if err := s.guard.CheckWrite(ctx, in.ActorIdent, roles, c); err != nil {
			return nil, err
		}
		report, err := s.validate(ctx, c, in.ReopenAfterTribunalReversal)
		if err != nil {
			return nil, err
		}
		if report.HasErrors() {
			return nil, &ValidationFailedError{Report: report}
		}

		now := requestcontext.Now(ctx)
		if !in.ReopenAfterTribunalReversal {
			c.ApplyCompletion(in.ActorIdent, now)
			return []models.Event{completedEvent(c, in.ActorIdent)}, nil
		}

		successor, err := s.deps.Successors.CreateAfterTribunalReversal(ctx, c, in.ActorIdent)
		if err != nil {
			s.logError(ctx, "successor case creation failed", c, err)
			return nil, integration(err, "failed to create successor case")
		}
		c.RecordSuccessor(successor)
		events := []models.Event{models.NewEvent(models.EventSuccessorRequested, c, in.ActorIdent, now, map[string]string{
			"successor_case_id": successor.String(),
		})}
		if !c.IsCompleted() {
			c.ApplyCompletion(in.ActorIdent, now)
			events = append(events, completedEvent(c, in.ActorIdent))
		}
		return events, nil
	})
}

func completedEvent(c *models.Case, actorIdent string) models.Event {
	return models.NewEvent(models.EventCompleted, c, actorIdent, c.Completion.CompletedAt, map[string]string{
		"outcome": string(c.Outcome),
	})
}

// ensureFinalizable holds the fail-fast checks.
func ensureFinalizable(c *models.Case, reopen bool) error {
	if reopen {
		if c.Type != models.TypeAppealToTribunal || c.Outcome != models.OutcomeReversed {
			return dErrors.Newf(dErrors.CodeBusinessRule,
				"a new case after reversal requires a %s case with outcome %s", models.TypeAppealToTribunal, models.OutcomeReversed)
		}
		if c.IsVoided() {
			return dErrors.New(dErrors.CodeCaseTerminal, "case is voided")
		}
		if c.SuccessorCaseID != nil {
			return dErrors.Newf(dErrors.CodeBusinessRule, "a new case was already created from this case (%s)", c.SuccessorCaseID)
		}
		return nil
	}
	return c.EnsureMutable()
}

// collaboratorFindings is what the parallel collaborator calls report back.
type collaboratorFindings struct {
	unfinishedDocuments bool
	qualityErrors       []models.FieldError
	representativeOrg   bool
	orgActive           bool
}

func (s *Service) validate(ctx context.Context, c *models.Case, reopen bool) (models.ValidationReport, error) {
	if err := ensureFinalizable(c, reopen); err != nil {
		return models.ValidationReport{}, err
	}
	findings, err := s.consultCollaborators(ctx, c)
	if err != nil {
		return models.ValidationReport{}, err
	}

	var report models.ValidationReport
	if findings.unfinishedDocuments {
		report.Add(models.SectionDocuments, "documents", "the case has unfinished documents")
	}
	s.validateCase(&report, c, requestcontext.Now(ctx))
	if findings.representativeOrg && !findings.orgActive {
		report.Add(models.SectionCase, "representative", "the representative organization is not active")
	}
	for _, fe := range findings.qualityErrors {
		report.Add(models.SectionQualityAssessment, fe.Field, fe.Reason)
	}

	for _, section := range []models.Section{models.SectionDocuments, models.SectionCase, models.SectionQualityAssessment} {
		s.metrics.IncValidationErrors(string(section), len(report.Section(section)))
	}
	return report, nil
}

func (s *Service) consultCollaborators(ctx context.Context, c *models.Case) (collaboratorFindings, error) {
	var f collaboratorFindings
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		unfinished, err := s.deps.Documents.HasUnfinishedDocuments(ctx, c.ID)
		if err != nil {
			return integration(err, "failed to check document status")
		}
		f.unfinishedDocuments = unfinished
		return nil
	})

	if s.needsQualityAssessment(c) {
		g.Go(func() error {
			errs, err := s.deps.Quality.ValidationErrors(ctx, c)
			if err != nil {
				return integration(err, "failed to fetch quality assessment validation")
			}
			f.qualityErrors = errs
			return nil
		})
	}

	if rep := c.Parties.Representative; rep != nil && rep.Kind == models.PartyKindOrganization {
		f.representativeOrg = true
		g.Go(func() error {
			active, err := s.deps.Orgs.IsActive(ctx, rep.Value)
			if err != nil {
				return integration(err, "failed to look up the representative organization")
			}
			f.orgActive = active
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logError(ctx, "finalize collaborator call failed", c, err)
		return collaboratorFindings{}, err
	}
	return f, nil
}

func (s *Service) needsQualityAssessment(c *models.Case) bool {
	if c.Type.IsTribunal() {
		return false
	}
	return !slices.Contains(s.policy.NoQualityOutcomes, c.Outcome)
}

func (s *Service) validateCase(report *models.ValidationReport, c *models.Case, now time.Time) {
	switch {
	case c.Outcome == "":
		report.Add(models.SectionCase, "outcome", "outcome must be set")
	case !c.Outcome.IsLegalFor(c.Type):
		report.Add(models.SectionCase, "outcome", "outcome "+string(c.Outcome)+" is not allowed for "+string(c.Type))
	}
	if len(c.RegisteredLegalGrounds) == 0 && !slices.Contains(s.policy.NoGroundsOutcomes, c.Outcome) {
		report.Add(models.SectionCase, "registeredLegalGrounds", "at least one legal ground must be registered")
	}
	if c.ReceivedAt.After(now) {
		report.Add(models.SectionCase, "receivedAt", "received date cannot be in the future")
	}
	if c.FirstInstanceReceivedAt != nil && c.FirstInstanceReceivedAt.After(now) {
		report.Add(models.SectionCase, "firstInstanceReceivedAt", "first instance received date cannot be in the future")
	}
	if c.Type.IsTribunal() {
		validateTribunal(report, c.Tribunal, now)
	}
}

func validateTribunal(report *models.ValidationReport, t *models.TribunalDetails, now time.Time) {
	if t == nil || t.DecisionReceivedAt == nil {
		report.Add(models.SectionCase, "tribunal.decisionReceivedAt", "the date the tribunal decision was received must be set")
		return
	}
	if t.DecisionReceivedAt.After(now) {
		report.Add(models.SectionCase, "tribunal.decisionReceivedAt", "the tribunal decision date cannot be in the future")
	}
	if t.SentAt != nil && !t.SentAt.Before(*t.DecisionReceivedAt) {
		report.Add(models.SectionCase, "tribunal.sentAt", "the case must be sent to the tribunal before the decision is received")
	}
}
