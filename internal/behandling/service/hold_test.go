package service

import (
	"time"

	"kabal/internal/behandling/models"
	dErrors "kabal/pkg/domain-errors"
)

func (s *ServiceSuite) TestSetHold() {
	s.Run("hold starts today", func() {
		caseID := s.newCase(assignedTo(caseworker))
		to := s.now.AddDate(0, 0, 14)
		s.publisher.events = nil

		c, err := s.service.SetHold(s.ctx, SetHoldInput{CaseID: caseID, To: &to, Reason: "waiting for records", ActorIdent: caseworker})
		s.Require().NoError(err)
		s.Require().NotNil(c.Hold)
		s.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), c.Hold.From)
		s.Equal(to, c.Hold.To)
		s.Equal("waiting for records", c.Hold.Reason)
		s.Require().Len(s.publisher.events, 1)
		s.Equal("true", s.publisher.events[0].Attributes["on_hold"])

		stored := s.load(caseID)
		s.Require().Len(stored.HoldHistory, 2, "seed plus the change")
		s.Nil(stored.HoldHistory[0].Hold)
	})

	s.Run("nil period clears the hold", func() {
		caseID := s.newCase(assignedTo(caseworker), onHold())

		c, err := s.service.SetHold(s.ctx, SetHoldInput{CaseID: caseID, ActorIdent: caseworker})
		s.Require().NoError(err)
		s.Nil(c.Hold)
		s.Nil(s.load(caseID).Hold)
	})

	s.Run("end before start is accepted", func() {
		caseID := s.newCase(assignedTo(caseworker))
		to := s.now.AddDate(0, 0, -3)

		c, err := s.service.SetHold(s.ctx, SetHoldInput{CaseID: caseID, To: &to, ActorIdent: caseworker})
		s.Require().NoError(err)
		s.True(c.Hold.To.Before(c.Hold.From))
	})

	s.Run("only the assigned caseworker may set a hold", func() {
		caseID := s.newCase(assignedTo(caseworker))
		to := s.now.AddDate(0, 0, 14)

		_, err := s.service.SetHold(s.ctx, SetHoldInput{CaseID: caseID, To: &to, ActorIdent: otherWorker})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.Nil(s.load(caseID).Hold)
	})

	s.Run("completed case is terminal", func() {
		caseID := s.newCase(assignedTo(caseworker), func(c *models.Case) {
			c.Completion = &models.Completion{CompletedAt: c.CreatedAt, ActorIdent: caseworker}
		})
		to := s.now.AddDate(0, 0, 14)

		_, err := s.service.SetHold(s.ctx, SetHoldInput{CaseID: caseID, To: &to, ActorIdent: caseworker})
		s.True(dErrors.HasCode(err, dErrors.CodeCaseTerminal))
	})
}
