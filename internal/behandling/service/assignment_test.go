package service

import (
	"time"

	"go.uber.org/mock/gomock"

	"kabal/internal/behandling/models"
	dErrors "kabal/pkg/domain-errors"
)

func (s *ServiceSuite) TestAssign() {
	s.Run("first assignment reconstructs into one pair against creation", func() {
		caseID := s.newCase()

		c, err := s.service.Assign(s.ctx, AssignInput{
			CaseID: caseID, CaseworkerIdent: caseworker, Unit: "4100", ActorIdent: scheduler, SkipWriteCheck: true,
		})
		s.Require().NoError(err)
		s.Equal(caseworker, c.AssignedIdent())

		h, err := s.service.GetHistory(s.ctx, caseID, scheduler)
		s.Require().NoError(err)
		s.Require().Len(h.Assignment, 1)
		prev := h.Assignment[0].Previous
		s.Equal(s.load(caseID).CreatedAt, prev.Timestamp)
		s.Empty(prev.CaseworkerIdent)
		s.Equal("ftrl-8-2", prev.LegalGrounds)
		s.Equal(caseworker, h.Assignment[0].Current.CaseworkerIdent)
		s.Equal(scheduler, h.Assignment[0].Current.ActorIdent)
	})

	s.Run("write check applies without the override", func() {
		caseID := s.newCase(assignedTo(caseworker))

		_, err := s.service.Assign(s.ctx, AssignInput{
			CaseID: caseID, CaseworkerIdent: otherWorker, Unit: "4100", ActorIdent: otherWorker,
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.Equal(caseworker, s.load(caseID).AssignedIdent())
	})

	s.Run("assigned caseworker hands the case over", func() {
		caseID := s.newCase(assignedTo(caseworker))
		s.publisher.events = nil

		_, err := s.service.Assign(s.ctx, AssignInput{
			CaseID: caseID, CaseworkerIdent: otherWorker, Unit: "4200", ActorIdent: caseworker,
		})
		s.Require().NoError(err)
		stored := s.load(caseID)
		s.Equal(otherWorker, stored.AssignedIdent())
		s.Equal("4200", stored.Assignment.Unit)
		s.Require().Len(s.publisher.events, 1)
		s.Equal(models.EventAssigned, s.publisher.events[0].Type)
		s.Equal(caseworker, s.publisher.events[0].Attributes["previous_caseworker_ident"])
	})

	s.Run("caseworker without category access is forbidden", func() {
		caseID := s.newCase()
		s.categories.denied[otherWorker] = true
		defer delete(s.categories.denied, otherWorker)

		_, err := s.service.Assign(s.ctx, AssignInput{
			CaseID: caseID, CaseworkerIdent: otherWorker, Unit: "4100", ActorIdent: scheduler, SkipWriteCheck: true,
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.Contains(err.Error(), "category SYK")
		s.False(s.load(caseID).IsAssigned())
	})

	s.Run("legacy cases are mirrored before the local commit", func() {
		caseID := s.newCase(fromLegacy())
		ref := s.load(caseID).SourceReference
		s.mirror.EXPECT().MarkAssigned(gomock.Any(), ref, caseworker, "4100").Return(nil)

		_, err := s.service.Assign(s.ctx, AssignInput{
			CaseID: caseID, CaseworkerIdent: caseworker, Unit: "4100", ActorIdent: scheduler, SkipWriteCheck: true,
		})
		s.Require().NoError(err)
		s.True(s.load(caseID).IsAssigned())
	})

	s.Run("legacy mirror failure aborts without local changes", func() {
		caseID := s.newCase(fromLegacy())
		s.publisher.events = nil
		s.mirror.EXPECT().MarkAssigned(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errCollaborator)

		_, err := s.service.Assign(s.ctx, AssignInput{
			CaseID: caseID, CaseworkerIdent: caseworker, Unit: "4100", ActorIdent: scheduler, SkipWriteCheck: true,
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeIntegration))
		stored := s.load(caseID)
		s.False(stored.IsAssigned())
		s.Empty(stored.AssignmentHistory)
		s.Empty(s.publisher.events)
	})

	s.Run("missing case is not found", func() {
		_, err := s.service.Assign(s.ctx, AssignInput{
			CaseID: s.unknownCase(), CaseworkerIdent: caseworker, Unit: "4100", ActorIdent: scheduler, SkipWriteCheck: true,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("missing caseworker is a bad request", func() {
		_, err := s.service.Assign(s.ctx, AssignInput{CaseID: s.newCase(), Unit: "4100", ActorIdent: scheduler})
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *ServiceSuite) TestUnassign() {
	s.Run("cannot unassign while sent to co-signer", func() {
		caseID := s.newCase(assignedTo(caseworker), coSigner(coSignerIdent, models.FlowSent))

		_, err := s.service.Unassign(s.ctx, UnassignInput{CaseID: caseID, ActorIdent: caseworker})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBusinessRule))
		s.Contains(err.Error(), "cannot unassign while sent to co-signer")
		s.True(s.load(caseID).IsAssigned())
	})

	s.Run("ordinary caseworker must give a reason", func() {
		caseID := s.newCase(assignedTo(caseworker))

		_, err := s.service.Unassign(s.ctx, UnassignInput{CaseID: caseID, ActorIdent: caseworker})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBusinessRule))
		s.Contains(err.Error(), "reason")
	})

	s.Run("scheduling role unassigns without a reason", func() {
		caseID := s.newCase(assignedTo(caseworker))

		c, err := s.service.Unassign(s.ctx, UnassignInput{CaseID: caseID, ActorIdent: scheduler})
		s.Require().NoError(err)
		s.False(c.IsAssigned())
		last := c.AssignmentHistory[len(c.AssignmentHistory)-1]
		s.Empty(last.DeassignReason)
		s.Equal(scheduler, last.ActorIdent)
	})

	s.Run("unassigning clears the hold", func() {
		caseID := s.newCase(assignedTo(caseworker), onHold())
		s.publisher.events = nil

		_, err := s.service.Unassign(s.ctx, UnassignInput{CaseID: caseID, Reason: models.DeassignOther, ActorIdent: caseworker})
		s.Require().NoError(err)
		stored := s.load(caseID)
		s.Nil(stored.Hold)
		s.False(stored.IsAssigned())
		s.Equal([]models.EventType{models.EventHoldChanged, models.EventUnassigned}, s.publisher.types())
		s.Nil(stored.HoldHistory[len(stored.HoldHistory)-1].Hold)
	})

	s.Run("wrong legal grounds without new grounds fails before mutating", func() {
		caseID := s.newCase(assignedTo(caseworker), onHold())
		s.publisher.events = nil

		_, err := s.service.Unassign(s.ctx, UnassignInput{
			CaseID: caseID, Reason: models.DeassignWrongLegalGrounds, ChangedLegalGrounds: []string{}, ActorIdent: caseworker,
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBusinessRule))
		stored := s.load(caseID)
		s.True(stored.IsAssigned())
		s.True(stored.IsOnHold())
		s.Equal([]string{"ftrl-8-2"}, stored.LegalGrounds)
		s.Empty(stored.AssignmentHistory)
		s.Empty(s.publisher.events)
	})

	s.Run("wrong legal grounds that are only blanks count as missing", func() {
		caseID := s.newCase(assignedTo(caseworker))

		_, err := s.service.Unassign(s.ctx, UnassignInput{
			CaseID: caseID, Reason: models.DeassignWrongLegalGrounds, ChangedLegalGrounds: []string{"   ", ""}, ActorIdent: caseworker,
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBusinessRule))
		stored := s.load(caseID)
		s.True(stored.IsAssigned())
		s.Equal([]string{"ftrl-8-2"}, stored.LegalGrounds)
	})

	s.Run("wrong legal grounds are trimmed before the catalog check", func() {
		caseID := s.newCase(assignedTo(caseworker))
		s.grounds.EXPECT().IsValidFor(gomock.Any(), "SYK", "ftrl-22-12").Return(true, nil).Times(1)

		_, err := s.service.Unassign(s.ctx, UnassignInput{
			CaseID: caseID, Reason: models.DeassignWrongLegalGrounds, ChangedLegalGrounds: []string{" ftrl-22-12 ", "ftrl-22-12", "  "}, ActorIdent: caseworker,
		})
		s.Require().NoError(err)
		stored := s.load(caseID)
		s.Equal([]string{"ftrl-22-12"}, stored.LegalGrounds)
		s.Equal("ftrl-22-12", stored.AssignmentHistory[len(stored.AssignmentHistory)-1].LegalGrounds)
	})

	s.Run("wrong legal grounds rejected by the catalog fails before mutating", func() {
		caseID := s.newCase(assignedTo(caseworker))
		s.grounds.EXPECT().IsValidFor(gomock.Any(), "SYK", "ftrl-99").Return(false, nil)

		_, err := s.service.Unassign(s.ctx, UnassignInput{
			CaseID: caseID, Reason: models.DeassignWrongLegalGrounds, ChangedLegalGrounds: []string{"ftrl-99"}, ActorIdent: caseworker,
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBusinessRule))
		s.Equal([]string{"ftrl-8-2"}, s.load(caseID).LegalGrounds)
	})

	s.Run("wrong legal grounds rewrites the grounds with the unassignment", func() {
		caseID := s.newCase(assignedTo(caseworker))
		s.grounds.EXPECT().IsValidFor(gomock.Any(), "SYK", gomock.Any()).Return(true, nil).Times(2)

		_, err := s.service.Unassign(s.ctx, UnassignInput{
			CaseID:              caseID,
			Reason:              models.DeassignWrongLegalGrounds,
			ChangedLegalGrounds: []string{"ftrl-22-12", "ftrl-22-13"},
			ActorIdent:          caseworker,
		})
		s.Require().NoError(err)
		stored := s.load(caseID)
		s.Equal([]string{"ftrl-22-12", "ftrl-22-13"}, stored.LegalGrounds)
		last := stored.AssignmentHistory[len(stored.AssignmentHistory)-1]
		s.Equal(models.DeassignWrongLegalGrounds, last.DeassignReason)
		s.Equal("ftrl-22-12,ftrl-22-13", last.LegalGrounds)
		s.Equal("ftrl-8-2", stored.AssignmentHistory[0].LegalGrounds, "seed keeps the grounds from before the change")
	})

	s.Run("legacy unassignment mirrors the default deadline", func() {
		caseID := s.newCase(assignedTo(caseworker), fromLegacy())
		c := s.load(caseID)
		deadline := c.ReceivedAt.AddDate(0, 0, 7*12)
		s.mirror.EXPECT().MarkUnassigned(gomock.Any(), c.SourceReference, deadline).Return(nil)

		_, err := s.service.Unassign(s.ctx, UnassignInput{CaseID: caseID, Reason: models.DeassignLongTermAbsence, ActorIdent: caseworker})
		s.Require().NoError(err)
	})

	s.Run("legacy unassignment uses the case deadline when set", func() {
		deadline := s.now.AddDate(0, 2, 0)
		caseID := s.newCase(assignedTo(caseworker), fromLegacy(), func(c *models.Case) { c.Deadline = &deadline })
		s.mirror.EXPECT().MarkUnassigned(gomock.Any(), gomock.Any(), deadline).Return(nil)

		_, err := s.service.Unassign(s.ctx, UnassignInput{CaseID: caseID, Reason: models.DeassignOther, ActorIdent: caseworker})
		s.Require().NoError(err)
	})

	s.Run("legacy mirror failure keeps assignment and hold", func() {
		caseID := s.newCase(assignedTo(caseworker), fromLegacy(), onHold())
		s.mirror.EXPECT().MarkUnassigned(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCollaborator)

		_, err := s.service.Unassign(s.ctx, UnassignInput{CaseID: caseID, Reason: models.DeassignOther, ActorIdent: caseworker})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeIntegration))
		stored := s.load(caseID)
		s.True(stored.IsAssigned())
		s.True(stored.IsOnHold())
	})

	s.Run("legacy appeal to tribunal is not mirrored", func() {
		caseID := s.newCase(assignedTo(caseworker), fromLegacy(), ofType(models.TypeAppealToTribunal))

		_, err := s.service.Unassign(s.ctx, UnassignInput{CaseID: caseID, Reason: models.DeassignOther, ActorIdent: caseworker})
		s.Require().NoError(err)
	})

	s.Run("unassigned case cannot be unassigned", func() {
		_, err := s.service.Unassign(s.ctx, UnassignInput{CaseID: s.newCase(), ActorIdent: scheduler})
		s.True(dErrors.HasCode(err, dErrors.CodeBusinessRule))
	})

	s.Run("unknown reason is a bad request", func() {
		_, err := s.service.Unassign(s.ctx, UnassignInput{CaseID: s.newCase(), Reason: "TIRED", ActorIdent: caseworker})
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("publisher failure rolls the change back", func() {
		caseID := s.newCase(assignedTo(caseworker))
		s.publisher.err = errCollaborator
		defer func() { s.publisher.err = nil }()

		_, err := s.service.Unassign(s.ctx, UnassignInput{CaseID: caseID, Reason: models.DeassignOther, ActorIdent: caseworker})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeIntegration))
		s.True(s.load(caseID).IsAssigned())
	})
}

func (s *ServiceSuite) TestHistoryTimestampsAreStrictlyIncreasing() {
	caseID := s.newCase()
	for i, worker := range []string{caseworker, otherWorker, caseworker} {
		_, err := s.service.Assign(s.ctx, AssignInput{
			CaseID: caseID, CaseworkerIdent: worker, Unit: "4100", ActorIdent: scheduler, SkipWriteCheck: true,
		})
		s.Require().NoError(err, "assignment %d", i)
	}

	hist := s.load(caseID).AssignmentHistory
	s.Require().Len(hist, 4)
	for i := 1; i < len(hist); i++ {
		s.True(hist[i].Timestamp.After(hist[i-1].Timestamp))
	}
	s.Equal(s.now.Add(2*time.Microsecond), hist[3].Timestamp)
}
