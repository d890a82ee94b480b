package service

import (
	"context"
	"strconv"
	"time"

	"kabal/internal/behandling/models"
	"kabal/internal/behandling/store"
	id "kabal/pkg/domain"
	"kabal/pkg/requestcontext"
)

type SetHoldInput struct {
	CaseID id.CaseID
	// To is the last day of the hold. Nil clears the hold.
	To         *time.Time
	Reason     string
	ActorIdent string
}

// SetHold puts the case on hold from today, or clears the hold. It does not
// check that To is after today.
func (s *Service) SetHold(ctx context.Context, in SetHoldInput) (*models.Case, error) {
	if err := requireActor(in.ActorIdent); err != nil {
		return nil, err
	}

	return s.mutate(ctx, "set_hold", in.CaseID, func(ctx context.Context, _ store.Store, c *models.Case) ([]models.Event, error) {
		if err := c.EnsureMutable(); err != nil {
			return nil, err
		}
		roles, err := s.guard.Roles(ctx, in.ActorIdent)
		if err != nil {
			return nil, err
		}
		if err := s.guard.CheckWrite(ctx, in.ActorIdent, roles, c); err != nil {
			return nil, err
		}

		now := requestcontext.Now(ctx)
		var hold *models.Hold
		if in.To != nil {
			if err := c.CanHold(); err != nil {
				return nil, err
			}
			hold = &models.Hold{From: startOfDay(now), To: *in.To, Reason: in.Reason}
		}
		c.ApplyHold(hold, in.ActorIdent, now)

		attrs := map[string]string{"on_hold": strconv.FormatBool(hold != nil)}
		if hold != nil {
			attrs["to"] = hold.To.Format(time.DateOnly)
			attrs["reason"] = hold.Reason
		}
		return []models.Event{models.NewEvent(models.EventHoldChanged, c, in.ActorIdent, now, attrs)}, nil
	})
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
