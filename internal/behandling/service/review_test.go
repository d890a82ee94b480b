package service

import (
	"kabal/internal/behandling/models"
	dErrors "kabal/pkg/domain-errors"
)

func (s *ServiceSuite) TestSetCoSignerReviewer() {
	s.Run("assigned caseworker picks a co-signer", func() {
		caseID := s.newCase(assignedTo(caseworker))
		s.publisher.events = nil

		c, err := s.service.SetCoSignerReviewer(s.ctx, ReviewerInput{CaseID: caseID, Ident: coSignerIdent, ActorIdent: caseworker})
		s.Require().NoError(err)
		s.Equal(coSignerIdent, c.CoSigner.Ident)
		s.Equal(models.FlowNotSent, c.CoSigner.State())
		s.Require().Len(s.publisher.events, 1)
		s.Equal(models.EventCoSignerChanged, s.publisher.events[0].Type)
		s.Len(s.load(caseID).CoSignerHistory, 2)
	})

	s.Run("unrelated caseworker is forbidden", func() {
		caseID := s.newCase(assignedTo(caseworker))

		_, err := s.service.SetCoSignerReviewer(s.ctx, ReviewerInput{CaseID: caseID, Ident: otherWorker, ActorIdent: otherWorker})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("scheduling role acts only while sent", func() {
		caseID := s.newCase(assignedTo(caseworker))
		_, err := s.service.SetCoSignerReviewer(s.ctx, ReviewerInput{CaseID: caseID, Ident: otherWorker, ActorIdent: scheduler})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.Contains(err.Error(), string(models.RoleSchedulingAllUnits))

		sent := s.newCase(assignedTo(caseworker), coSigner(coSignerIdent, models.FlowSent))
		c, err := s.service.SetCoSignerReviewer(s.ctx, ReviewerInput{CaseID: sent, Ident: otherWorker, ActorIdent: scheduler})
		s.Require().NoError(err)
		s.Equal(otherWorker, c.CoSigner.Ident)
		s.Equal(models.FlowSent, c.CoSigner.State())
	})

	s.Run("scheduling role may not remove the co-signer", func() {
		caseID := s.newCase(assignedTo(caseworker), coSigner(coSignerIdent, models.FlowSent))

		_, err := s.service.SetCoSignerReviewer(s.ctx, ReviewerInput{CaseID: caseID, ActorIdent: scheduler})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.Equal(coSignerIdent, s.load(caseID).CoSigner.Ident)
	})

	s.Run("current co-signer may pass the case on while sent", func() {
		caseID := s.newCase(assignedTo(caseworker), coSigner(coSignerIdent, models.FlowSent))

		c, err := s.service.SetCoSignerReviewer(s.ctx, ReviewerInput{CaseID: caseID, Ident: otherWorker, ActorIdent: coSignerIdent})
		s.Require().NoError(err)
		s.Equal(otherWorker, c.CoSigner.Ident)
	})

	s.Run("removing the co-signer resets the flow", func() {
		caseID := s.newCase(assignedTo(caseworker), coSigner(coSignerIdent, models.FlowReturned))

		c, err := s.service.SetCoSignerReviewer(s.ctx, ReviewerInput{CaseID: caseID, ActorIdent: caseworker})
		s.Require().NoError(err)
		s.Empty(c.CoSigner.Ident)
		s.Equal(models.FlowNotSent, c.CoSigner.State())
	})
}

func (s *ServiceSuite) TestSetCoSignerFlowState() {
	s.Run("sending requires a co-signer", func() {
		caseID := s.newCase(assignedTo(caseworker))

		_, err := s.service.SetCoSignerFlowState(s.ctx, FlowStateInput{CaseID: caseID, State: models.FlowSent, ActorIdent: caseworker})
		s.True(dErrors.HasCode(err, dErrors.CodeBusinessRule))
	})

	s.Run("send, return and approve", func() {
		caseID := s.newCase(assignedTo(caseworker), coSigner(coSignerIdent, models.FlowNotSent))

		c, err := s.service.SetCoSignerFlowState(s.ctx, FlowStateInput{CaseID: caseID, State: models.FlowSent, ActorIdent: caseworker})
		s.Require().NoError(err)
		s.Equal(models.FlowSent, c.CoSigner.State())

		_, err = s.service.SetCoSignerFlowState(s.ctx, FlowStateInput{CaseID: caseID, State: models.FlowReturned, ActorIdent: caseworker})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden), "only the co-signer returns")

		c, err = s.service.SetCoSignerFlowState(s.ctx, FlowStateInput{CaseID: caseID, State: models.FlowReturned, ActorIdent: coSignerIdent})
		s.Require().NoError(err)
		s.Equal(models.FlowReturned, c.CoSigner.State())

		_, err = s.service.SetCoSignerFlowState(s.ctx, FlowStateInput{CaseID: caseID, State: models.FlowSent, ActorIdent: caseworker})
		s.Require().NoError(err)
		c, err = s.service.SetCoSignerFlowState(s.ctx, FlowStateInput{CaseID: caseID, State: models.FlowNotSent, ActorIdent: coSignerIdent})
		s.Require().NoError(err)
		s.Equal(models.FlowNotSent, c.CoSigner.State())
		s.Equal(coSignerIdent, c.CoSigner.Ident, "approval keeps the reviewer recorded")

		states := []models.FlowState{}
		for _, snap := range s.load(caseID).CoSignerHistory {
			states = append(states, snap.FlowState)
		}
		s.Equal([]models.FlowState{
			models.FlowNotSent, models.FlowSent, models.FlowReturned, models.FlowSent, models.FlowNotSent,
		}, states)
	})

	s.Run("returned is only reachable from sent", func() {
		caseID := s.newCase(assignedTo(caseworker), coSigner(coSignerIdent, models.FlowNotSent))

		_, err := s.service.SetCoSignerFlowState(s.ctx, FlowStateInput{CaseID: caseID, State: models.FlowReturned, ActorIdent: coSignerIdent})
		s.True(dErrors.HasCode(err, dErrors.CodeBusinessRule))
	})

	s.Run("unknown state is a bad request", func() {
		_, err := s.service.SetCoSignerFlowState(s.ctx, FlowStateInput{CaseID: s.newCase(), State: "GODKJENT", ActorIdent: caseworker})
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *ServiceSuite) TestSetLegalAdvisorReviewer() {
	s.Run("unrelated actor is forbidden while not sent", func() {
		caseID := s.newCase(assignedTo(caseworker))

		_, err := s.service.SetLegalAdvisorReviewer(s.ctx, ReviewerInput{CaseID: caseID, Ident: legalAdvisor, ActorIdent: otherWorker})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.Contains(err.Error(), string(models.RoleLegalAdvisor))
		s.Empty(s.load(caseID).LegalAdvisor.Ident)
	})

	s.Run("legal advisor sets themselves", func() {
		caseID := s.newCase(assignedTo(caseworker))

		c, err := s.service.SetLegalAdvisorReviewer(s.ctx, ReviewerInput{CaseID: caseID, Ident: legalAdvisor, ActorIdent: legalAdvisor})
		s.Require().NoError(err)
		s.Equal(legalAdvisor, c.LegalAdvisor.Ident)
	})

	s.Run("legal advisor cannot join a returned flow", func() {
		caseID := s.newCase(assignedTo(caseworker), advisor(advisorLead, models.FlowReturned))

		_, err := s.service.SetLegalAdvisorReviewer(s.ctx, ReviewerInput{CaseID: caseID, Ident: legalAdvisor, ActorIdent: legalAdvisor})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("legal advisor cannot designate someone else while not sent", func() {
		caseID := s.newCase(assignedTo(caseworker))

		_, err := s.service.SetLegalAdvisorReviewer(s.ctx, ReviewerInput{CaseID: caseID, Ident: advisorLead, ActorIdent: legalAdvisor})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("scheduling role acts only while sent", func() {
		caseID := s.newCase(assignedTo(caseworker))
		_, err := s.service.SetLegalAdvisorReviewer(s.ctx, ReviewerInput{CaseID: caseID, Ident: legalAdvisor, ActorIdent: scheduler})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

		sent := s.newCase(assignedTo(caseworker), advisor("", models.FlowSent))
		c, err := s.service.SetLegalAdvisorReviewer(s.ctx, ReviewerInput{CaseID: sent, Ident: legalAdvisor, ActorIdent: scheduler})
		s.Require().NoError(err)
		s.Equal(legalAdvisor, c.LegalAdvisor.Ident)
	})

	s.Run("assigned caseworker designates an advisor", func() {
		caseID := s.newCase(assignedTo(caseworker))

		c, err := s.service.SetLegalAdvisorReviewer(s.ctx, ReviewerInput{CaseID: caseID, Ident: legalAdvisor, ActorIdent: caseworker})
		s.Require().NoError(err)
		s.Equal(legalAdvisor, c.LegalAdvisor.Ident)
	})

	s.Run("advisor lead claims an unclaimed sent flow", func() {
		caseID := s.newCase(assignedTo(caseworker), advisor("", models.FlowSent))

		c, err := s.service.SetLegalAdvisorReviewer(s.ctx, ReviewerInput{CaseID: caseID, Ident: legalAdvisor, ActorIdent: advisorLead})
		s.Require().NoError(err)
		s.Equal(legalAdvisor, c.LegalAdvisor.Ident)
		s.Equal(models.FlowSent, c.LegalAdvisor.State())
	})

	s.Run("removing the advisor keeps the flow state", func() {
		caseID := s.newCase(assignedTo(caseworker), advisor(legalAdvisor, models.FlowSent))

		c, err := s.service.SetLegalAdvisorReviewer(s.ctx, ReviewerInput{CaseID: caseID, ActorIdent: caseworker})
		s.Require().NoError(err)
		s.Empty(c.LegalAdvisor.Ident)
		s.Equal(models.FlowSent, c.LegalAdvisor.State())
	})
}

func (s *ServiceSuite) TestSetLegalAdvisorFlowState() {
	s.Run("returning stamps the return time and leaving clears it", func() {
		caseID := s.newCase(assignedTo(caseworker), advisor(legalAdvisor, models.FlowNotSent))

		_, err := s.service.SetLegalAdvisorFlowState(s.ctx, FlowStateInput{CaseID: caseID, State: models.FlowSent, ActorIdent: caseworker})
		s.Require().NoError(err)

		c, err := s.service.SetLegalAdvisorFlowState(s.ctx, FlowStateInput{CaseID: caseID, State: models.FlowReturned, ActorIdent: legalAdvisor})
		s.Require().NoError(err)
		s.Require().NotNil(c.LegalAdvisor.ReturnedAt)

		c, err = s.service.SetLegalAdvisorFlowState(s.ctx, FlowStateInput{CaseID: caseID, State: models.FlowNotSent, ActorIdent: caseworker})
		s.Require().NoError(err)
		s.Nil(c.LegalAdvisor.ReturnedAt)
		s.Nil(s.load(caseID).LegalAdvisor.ReturnedAt)
	})

	s.Run("scheduling role may send", func() {
		caseID := s.newCase(assignedTo(caseworker))

		c, err := s.service.SetLegalAdvisorFlowState(s.ctx, FlowStateInput{CaseID: caseID, State: models.FlowSent, ActorIdent: scheduler})
		s.Require().NoError(err)
		s.Equal(models.FlowSent, c.LegalAdvisor.State())
	})

	s.Run("unrelated caseworker may not send", func() {
		caseID := s.newCase(assignedTo(caseworker))

		_, err := s.service.SetLegalAdvisorFlowState(s.ctx, FlowStateInput{CaseID: caseID, State: models.FlowSent, ActorIdent: otherWorker})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("returned is only reachable from sent", func() {
		caseID := s.newCase(assignedTo(caseworker), advisor(legalAdvisor, models.FlowNotSent))

		_, err := s.service.SetLegalAdvisorFlowState(s.ctx, FlowStateInput{CaseID: caseID, State: models.FlowReturned, ActorIdent: legalAdvisor})
		s.True(dErrors.HasCode(err, dErrors.CodeBusinessRule))
	})

	s.Run("completed case is terminal", func() {
		caseID := s.newCase(assignedTo(caseworker), advisor(legalAdvisor, models.FlowSent), func(c *models.Case) {
			c.Completion = &models.Completion{CompletedAt: c.CreatedAt, ActorIdent: caseworker}
		})

		_, err := s.service.SetLegalAdvisorFlowState(s.ctx, FlowStateInput{CaseID: caseID, State: models.FlowReturned, ActorIdent: legalAdvisor})
		s.True(dErrors.HasCode(err, dErrors.CodeCaseTerminal))
	})
}
