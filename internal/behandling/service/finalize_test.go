package service

import (
	"errors"
	"time"

	"go.uber.org/mock/gomock"

	"kabal/internal/behandling/models"
	id "kabal/pkg/domain"
	dErrors "kabal/pkg/domain-errors"
)

func (s *ServiceSuite) decidedTribunal() caseOption {
	return func(c *models.Case) {
		sent := s.now.AddDate(0, -6, 0)
		decided := s.now.AddDate(0, 0, -2)
		c.Type = models.TypeAppealToTribunal
		c.Tribunal = &models.TribunalDetails{SentAt: &sent, DecisionReceivedAt: &decided}
	}
}

func completed() caseOption {
	return func(c *models.Case) {
		c.Completion = &models.Completion{CompletedAt: c.CreatedAt.Add(48 * time.Hour), ActorIdent: caseworker}
	}
}

func representativeOrg(orgnr string) caseOption {
	return func(c *models.Case) {
		c.Parties.Representative = &models.PartyID{Kind: models.PartyKindOrganization, Value: orgnr}
	}
}

func (s *ServiceSuite) requireValidationFailed(err error) {
	s.T().Helper()
	var vErr *ValidationFailedError
	s.Require().True(errors.As(err, &vErr), "expected *ValidationFailedError, got %v", err)
}

func (s *ServiceSuite) TestValidateBeforeFinalize() {
	s.Run("clean case has an empty report", func() {
		caseID := s.newCase(assignedTo(caseworker), withOutcome(models.OutcomeAffirmed, "ftrl-8-2"))
		s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), caseID).Return(false, nil)
		s.quality.EXPECT().ValidationErrors(gomock.Any(), gomock.Any()).Return(nil, nil)

		report, err := s.service.ValidateBeforeFinalize(s.ctx, ValidateInput{CaseID: caseID, ActorIdent: caseworker})
		s.Require().NoError(err)
		s.False(report.HasErrors())
	})

	s.Run("every applicable error is collected", func() {
		future := s.now.AddDate(0, 0, 3)
		caseID := s.newCase(assignedTo(caseworker), representativeOrg("999999999"), func(c *models.Case) {
			c.ReceivedAt = future
			c.FirstInstanceReceivedAt = &future
		})
		s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), caseID).Return(true, nil)
		s.quality.EXPECT().ValidationErrors(gomock.Any(), gomock.Any()).
			Return([]models.FieldError{{Field: "vedtaketsKvalitet", Reason: "must be assessed"}}, nil)
		s.orgs.EXPECT().IsActive(gomock.Any(), "999999999").Return(false, nil)

		report, err := s.service.ValidateBeforeFinalize(s.ctx, ValidateInput{CaseID: caseID, ActorIdent: caseworker})
		s.Require().True(report.HasErrors())
		var vErr *ValidationFailedError
		s.Require().True(errors.As(err, &vErr), "a failing report is also raised")
		s.Equal(report.Items(), vErr.Report.Items())
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		s.Len(report.Section(models.SectionDocuments), 1)
		caseFields := fields(report.Section(models.SectionCase))
		s.ElementsMatch([]string{
			"outcome", "registeredLegalGrounds", "receivedAt", "firstInstanceReceivedAt", "representative",
		}, caseFields)
		s.Equal([]models.FieldError{{Field: "vedtaketsKvalitet", Reason: "must be assessed"}}, report.Section(models.SectionQualityAssessment))

		items := report.Items()
		s.Equal(models.SectionDocuments, items[0].Section)
		s.Equal(models.SectionQualityAssessment, items[len(items)-1].Section)
	})

	s.Run("outcome must be legal for the case type", func() {
		caseID := s.newCase(withOutcome(models.OutcomeRecommendAffirm, "ftrl-8-2"))
		s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), caseID).Return(false, nil)
		s.quality.EXPECT().ValidationErrors(gomock.Any(), gomock.Any()).Return(nil, nil)

		report, err := s.service.ValidateBeforeFinalize(s.ctx, ValidateInput{CaseID: caseID, ActorIdent: caseworker})
		s.requireValidationFailed(err)
		s.Equal([]string{"outcome"}, fields(report.Section(models.SectionCase)))
	})

	s.Run("withdrawn needs neither legal grounds nor quality assessment", func() {
		caseID := s.newCase(withOutcome(models.OutcomeWithdrawn))
		s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), caseID).Return(false, nil)

		report, err := s.service.ValidateBeforeFinalize(s.ctx, ValidateInput{CaseID: caseID, ActorIdent: caseworker})
		s.Require().NoError(err)
		s.False(report.HasErrors())
	})

	s.Run("tribunal case needs the decision date", func() {
		caseID := s.newCase(ofType(models.TypeAppealToTribunal), withOutcome(models.OutcomeAffirmed, "ftrl-8-2"))
		s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), caseID).Return(false, nil)

		report, err := s.service.ValidateBeforeFinalize(s.ctx, ValidateInput{CaseID: caseID, ActorIdent: caseworker})
		s.requireValidationFailed(err)
		s.Equal([]string{"tribunal.decisionReceivedAt"}, fields(report.Section(models.SectionCase)))
	})

	s.Run("tribunal case must be sent before the decision", func() {
		caseID := s.newCase(s.decidedTribunal(), withOutcome(models.OutcomeAffirmed, "ftrl-8-2"), func(c *models.Case) {
			late := c.Tribunal.DecisionReceivedAt.Add(time.Hour)
			c.Tribunal.SentAt = &late
		})
		s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), caseID).Return(false, nil)

		report, err := s.service.ValidateBeforeFinalize(s.ctx, ValidateInput{CaseID: caseID, ActorIdent: caseworker})
		s.requireValidationFailed(err)
		s.Equal([]string{"tribunal.sentAt"}, fields(report.Section(models.SectionCase)))
	})

	s.Run("reopen is only for reversed tribunal cases", func() {
		caseID := s.newCase(withOutcome(models.OutcomeReversed, "ftrl-8-2"))

		_, err := s.service.ValidateBeforeFinalize(s.ctx, ValidateInput{CaseID: caseID, ActorIdent: caseworker, ReopenAfterTribunalReversal: true})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBusinessRule))
	})

	s.Run("quality gateway failure is an integration error", func() {
		caseID := s.newCase(withOutcome(models.OutcomeAffirmed, "ftrl-8-2"))
		s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), caseID).Return(false, nil).AnyTimes()
		s.quality.EXPECT().ValidationErrors(gomock.Any(), gomock.Any()).Return(nil, errCollaborator)

		_, err := s.service.ValidateBeforeFinalize(s.ctx, ValidateInput{CaseID: caseID, ActorIdent: caseworker})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeIntegration))
	})
}

func (s *ServiceSuite) TestFinalize() {
	s.Run("unfinished documents block completion", func() {
		caseID := s.newCase(assignedTo(caseworker), withOutcome(models.OutcomeAffirmed, "ftrl-8-2"))
		s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), caseID).Return(true, nil).Times(2)
		s.quality.EXPECT().ValidationErrors(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

		report, err := s.service.ValidateBeforeFinalize(s.ctx, ValidateInput{CaseID: caseID, ActorIdent: caseworker})
		s.requireValidationFailed(err)
		s.Len(report.Section(models.SectionDocuments), 1)

		_, err = s.service.Finalize(s.ctx, FinalizeInput{CaseID: caseID, ActorIdent: caseworker})
		s.Require().Error(err)
		var vErr *ValidationFailedError
		s.Require().True(errors.As(err, &vErr))
		s.Equal(report.Items(), vErr.Report.Items())
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Nil(s.load(caseID).Completion)
	})

	s.Run("valid case is completed", func() {
		caseID := s.newCase(assignedTo(caseworker), withOutcome(models.OutcomeAffirmed, "ftrl-8-2"))
		s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), caseID).Return(false, nil)
		s.quality.EXPECT().ValidationErrors(gomock.Any(), gomock.Any()).Return(nil, nil)
		s.publisher.events = nil

		c, err := s.service.Finalize(s.ctx, FinalizeInput{CaseID: caseID, ActorIdent: caseworker})
		s.Require().NoError(err)
		s.Require().NotNil(c.Completion)
		s.Equal(s.now, c.Completion.CompletedAt)
		s.Equal([]models.EventType{models.EventCompleted}, s.publisher.types())

		stored := s.load(caseID)
		s.True(stored.IsCompleted())
		s.Empty(stored.AssignmentHistory)
	})

	s.Run("already completed case is terminal", func() {
		caseID := s.newCase(assignedTo(caseworker), withOutcome(models.OutcomeAffirmed, "ftrl-8-2"), completed())

		_, err := s.service.Finalize(s.ctx, FinalizeInput{CaseID: caseID, ActorIdent: caseworker})
		s.True(dErrors.HasCode(err, dErrors.CodeCaseTerminal))
	})

	s.Run("only the assigned caseworker finalizes", func() {
		caseID := s.newCase(assignedTo(caseworker), withOutcome(models.OutcomeAffirmed, "ftrl-8-2"))

		_, err := s.service.Finalize(s.ctx, FinalizeInput{CaseID: caseID, ActorIdent: otherWorker})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("reversal spawns one successor from a completed tribunal case", func() {
		caseID := s.newCase(assignedTo(caseworker), s.decidedTribunal(), withOutcome(models.OutcomeReversed, "ftrl-8-2"), completed())
		successor := id.NewCaseID()
		s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), caseID).Return(false, nil)
		s.successors.EXPECT().CreateAfterTribunalReversal(gomock.Any(), gomock.Any(), caseworker).Return(successor, nil)
		s.publisher.events = nil

		c, err := s.service.Finalize(s.ctx, FinalizeInput{CaseID: caseID, ActorIdent: caseworker, ReopenAfterTribunalReversal: true})
		s.Require().NoError(err)
		s.Require().NotNil(c.SuccessorCaseID)
		s.Equal(successor, *c.SuccessorCaseID)
		s.Equal([]models.EventType{models.EventSuccessorRequested}, s.publisher.types())
		s.Equal(successor.String(), s.publisher.events[0].Attributes["successor_case_id"])

		_, err = s.service.Finalize(s.ctx, FinalizeInput{CaseID: caseID, ActorIdent: caseworker, ReopenAfterTribunalReversal: true})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBusinessRule), "a second successor is refused")
	})

	s.Run("reversal on an open tribunal case also completes it", func() {
		caseID := s.newCase(assignedTo(caseworker), s.decidedTribunal(), withOutcome(models.OutcomeReversed, "ftrl-8-2"))
		s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), caseID).Return(false, nil)
		s.successors.EXPECT().CreateAfterTribunalReversal(gomock.Any(), gomock.Any(), caseworker).Return(id.NewCaseID(), nil)
		s.publisher.events = nil

		c, err := s.service.Finalize(s.ctx, FinalizeInput{CaseID: caseID, ActorIdent: caseworker, ReopenAfterTribunalReversal: true})
		s.Require().NoError(err)
		s.True(c.IsCompleted())
		s.Equal([]models.EventType{models.EventSuccessorRequested, models.EventCompleted}, s.publisher.types())
	})

	s.Run("successor creation failure leaves the case unchanged", func() {
		caseID := s.newCase(assignedTo(caseworker), s.decidedTribunal(), withOutcome(models.OutcomeReversed, "ftrl-8-2"))
		s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), caseID).Return(false, nil)
		s.successors.EXPECT().CreateAfterTribunalReversal(gomock.Any(), gomock.Any(), gomock.Any()).Return(id.CaseID{}, errCollaborator)

		_, err := s.service.Finalize(s.ctx, FinalizeInput{CaseID: caseID, ActorIdent: caseworker, ReopenAfterTribunalReversal: true})
		s.True(dErrors.HasCode(err, dErrors.CodeIntegration))
		stored := s.load(caseID)
		s.Nil(stored.SuccessorCaseID)
		s.False(stored.IsCompleted())
	})
}

func fields(errs []models.FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, fe := range errs {
		out = append(out, fe.Field)
	}
	return out
}
