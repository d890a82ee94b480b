package service

import (
	"go.uber.org/mock/gomock"

	"kabal/internal/behandling/models"
	dErrors "kabal/pkg/domain-errors"
)

func (s *ServiceSuite) TestVoidByID() {
	s.Run("unassigned case is voided by any reader", func() {
		caseID := s.newCase()
		s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), caseID).Return(false, nil)

		c, err := s.service.VoidByID(s.ctx, VoidInput{CaseID: caseID, Reason: "registered twice", ActorIdent: otherWorker})
		s.Require().NoError(err)
		s.Require().NotNil(c.Void)
		s.Equal("KABAL", c.Void.SourceSystem)
		s.Equal(otherWorker, c.Void.ActorIdent)
		s.Equal(s.now, c.Void.Timestamp)
		s.True(s.load(caseID).IsVoided())
	})

	s.Run("assigned case needs an elevated role", func() {
		caseID := s.newCase(assignedTo(caseworker))

		_, err := s.service.VoidByID(s.ctx, VoidInput{CaseID: caseID, Reason: "registered twice", ActorIdent: caseworker})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.Contains(err.Error(), string(models.RoleSchedulingAllUnits))
		s.False(s.load(caseID).IsVoided())
	})

	for _, actor := range []string{scheduler, clerical} {
		s.Run("elevated "+actor+" releases an assigned case before voiding", func() {
			caseID := s.newCase(assignedTo(caseworker), onHold())
			s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), caseID).Return(false, nil)
			s.publisher.events = nil

			_, err := s.service.VoidByID(s.ctx, VoidInput{CaseID: caseID, Reason: "registered twice", ActorIdent: actor})
			s.Require().NoError(err)
			stored := s.load(caseID)
			s.True(stored.IsVoided())
			s.False(stored.IsAssigned())
			s.Nil(stored.Hold)
			s.Equal([]models.EventType{models.EventHoldChanged, models.EventUnassigned, models.EventVoided}, s.publisher.types())
		})
	}

	s.Run("assigned case in co-signer review cannot be voided", func() {
		caseID := s.newCase(assignedTo(caseworker), coSigner(coSignerIdent, models.FlowSent))

		_, err := s.service.VoidByID(s.ctx, VoidInput{CaseID: caseID, Reason: "registered twice", ActorIdent: scheduler})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBusinessRule))
		s.Contains(err.Error(), "co-signer")
		stored := s.load(caseID)
		s.False(stored.IsVoided())
		s.True(stored.IsAssigned())
	})

	s.Run("assigned legacy case is released in the legacy system", func() {
		caseID := s.newCase(assignedTo(caseworker), fromLegacy())
		c := s.load(caseID)
		s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), caseID).Return(false, nil)
		s.mirror.EXPECT().MarkUnassigned(gomock.Any(), c.SourceReference, c.ReceivedAt.AddDate(0, 0, 7*12)).Return(nil)

		_, err := s.service.VoidByID(s.ctx, VoidInput{CaseID: caseID, Reason: "registered twice", ActorIdent: scheduler})
		s.Require().NoError(err)
		stored := s.load(caseID)
		s.True(stored.IsVoided())
		s.False(stored.IsAssigned())
	})

	s.Run("legacy mirror failure aborts the void", func() {
		caseID := s.newCase(assignedTo(caseworker), fromLegacy(), onHold())
		s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), caseID).Return(false, nil)
		s.mirror.EXPECT().MarkUnassigned(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCollaborator)

		_, err := s.service.VoidByID(s.ctx, VoidInput{CaseID: caseID, Reason: "registered twice", ActorIdent: scheduler})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeIntegration))
		stored := s.load(caseID)
		s.False(stored.IsVoided())
		s.True(stored.IsAssigned())
		s.True(stored.IsOnHold())
	})

	s.Run("unfinished documents block the void", func() {
		caseID := s.newCase()
		s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), caseID).Return(true, nil)

		_, err := s.service.VoidByID(s.ctx, VoidInput{CaseID: caseID, Reason: "registered twice", ActorIdent: otherWorker})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBusinessRule))
		s.False(s.load(caseID).IsVoided())
	})

	s.Run("document status failure is an integration error", func() {
		caseID := s.newCase()
		s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), caseID).Return(false, errCollaborator)

		_, err := s.service.VoidByID(s.ctx, VoidInput{CaseID: caseID, Reason: "registered twice", ActorIdent: otherWorker})
		s.True(dErrors.HasCode(err, dErrors.CodeIntegration))
	})

	s.Run("reason is required", func() {
		_, err := s.service.VoidByID(s.ctx, VoidInput{CaseID: s.newCase(), ActorIdent: otherWorker})
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("subject access is required", func() {
		caseID := s.newCase()
		s.access.denied[advisorLead] = true
		defer delete(s.access.denied, advisorLead)

		_, err := s.service.VoidByID(s.ctx, VoidInput{CaseID: caseID, Reason: "registered twice", ActorIdent: advisorLead})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.Contains(err.Error(), "skjermet")
	})
}

func (s *ServiceSuite) TestVoidedCaseIsTerminal() {
	caseID := s.newCase()
	s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), caseID).Return(false, nil)
	_, err := s.service.VoidByID(s.ctx, VoidInput{CaseID: caseID, Reason: "registered twice", ActorIdent: scheduler})
	s.Require().NoError(err)

	_, err = s.service.Assign(s.ctx, AssignInput{CaseID: caseID, CaseworkerIdent: caseworker, Unit: "4100", ActorIdent: scheduler, SkipWriteCheck: true})
	s.True(dErrors.HasCode(err, dErrors.CodeCaseTerminal), "assign")

	_, err = s.service.Unassign(s.ctx, UnassignInput{CaseID: caseID, ActorIdent: scheduler})
	s.True(dErrors.HasCode(err, dErrors.CodeCaseTerminal), "unassign")

	_, err = s.service.SetHold(s.ctx, SetHoldInput{CaseID: caseID, ActorIdent: scheduler})
	s.True(dErrors.HasCode(err, dErrors.CodeCaseTerminal), "set hold")

	_, err = s.service.Finalize(s.ctx, FinalizeInput{CaseID: caseID, ActorIdent: scheduler})
	s.True(dErrors.HasCode(err, dErrors.CodeCaseTerminal), "finalize")

	_, err = s.service.VoidByID(s.ctx, VoidInput{CaseID: caseID, Reason: "again", ActorIdent: scheduler})
	s.True(dErrors.HasCode(err, dErrors.CodeCaseTerminal), "void")
}

func (s *ServiceSuite) TestVoidBySource() {
	input := func(c *models.Case) VoidBySourceInput {
		return VoidBySourceInput{
			SourceSystem:    c.SourceSystem,
			SourceReference: c.SourceReference,
			Type:            c.Type,
			Reason:          "withdrawn in source system",
			ActorIdent:      "srvfs36",
		}
	}

	s.Run("single unassigned candidate is voided", func() {
		c := s.load(s.newCase())
		s.documents.EXPECT().HasUnfinishedDocuments(gomock.Any(), c.ID).Return(false, nil)

		out, err := s.service.VoidBySource(s.ctx, input(c))
		s.Require().NoError(err)
		s.Equal(c.ID, out.ID)
		s.Equal("FS36", out.Void.SourceSystem)
		s.True(s.load(c.ID).IsVoided())

		_, err = s.service.VoidBySource(s.ctx, input(c))
		s.ErrorIs(err, ErrVoidNoCandidate, "a voided case is no longer a candidate")
	})

	s.Run("no candidate", func() {
		c := s.load(s.newCase())
		in := input(c)
		in.Type = models.TypeAppeal

		_, err := s.service.VoidBySource(s.ctx, in)
		s.ErrorIs(err, ErrVoidNoCandidate)
	})

	s.Run("completed candidate", func() {
		c := s.load(s.newCase(func(c *models.Case) {
			c.Completion = &models.Completion{CompletedAt: c.CreatedAt, ActorIdent: caseworker}
		}))

		_, err := s.service.VoidBySource(s.ctx, input(c))
		s.ErrorIs(err, ErrVoidCandidateCompleted)
		s.False(s.load(c.ID).IsVoided())
	})

	s.Run("assigned candidate", func() {
		c := s.load(s.newCase(assignedTo(caseworker)))

		_, err := s.service.VoidBySource(s.ctx, input(c))
		s.ErrorIs(err, ErrVoidCandidateAssigned)
		s.True(dErrors.HasCode(err, dErrors.CodeBusinessRule))
	})

	s.Run("two active candidates breach the duplicate guard", func() {
		first := s.load(s.newCase())
		second := first.Clone()
		second.ID = s.unknownCase()
		s.store.Load(second)

		_, err := s.service.VoidBySource(s.ctx, input(first))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.False(s.load(first.ID).IsVoided())
		s.False(s.load(second.ID).IsVoided())
	})

	s.Run("missing origin key is a bad request", func() {
		_, err := s.service.VoidBySource(s.ctx, VoidBySourceInput{Type: models.TypeComplaint, ActorIdent: "srvfs36"})
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}
