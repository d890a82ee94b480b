package models

import (
	"time"

	id "kabal/pkg/domain"
)

// EventType names a domain event emitted by the coordinators.
type EventType string

const (
	EventAssigned            EventType = "behandling.tildelt"
	EventUnassigned          EventType = "behandling.fradelt"
	EventHoldChanged         EventType = "behandling.satt_paa_vent_endret"
	EventVoided              EventType = "behandling.feilregistrert"
	EventCoSignerChanged     EventType = "behandling.medunderskriver_endret"
	EventLegalAdvisorChanged EventType = "behandling.rol_endret"
	EventCompleted           EventType = "behandling.fullfoert"
	EventSuccessorRequested  EventType = "behandling.ny_behandling_etter_tr_opphevet"
)

// Event is the transport-agnostic domain event. Attributes carry the
// event-specific values as strings so sinks can fan out without type switches.
type Event struct {
	Type            EventType         `json:"type"`
	CaseID          id.CaseID         `json:"case_id"`
	CaseType        Type              `json:"case_type"`
	SourceSystem    string            `json:"source_system"`
	SourceReference string            `json:"source_reference"`
	ActorIdent      string            `json:"actor_ident"`
	OccurredAt      time.Time         `json:"occurred_at"`
	Attributes      map[string]string `json:"attributes,omitempty"`
}

// NewEvent fills the case-derived fields of an event.
func NewEvent(t EventType, c *Case, actorIdent string, at time.Time, attrs map[string]string) Event {
	return Event{
		Type:            t,
		CaseID:          c.ID,
		CaseType:        c.Type,
		SourceSystem:    c.SourceSystem,
		SourceReference: c.SourceReference,
		ActorIdent:      actorIdent,
		OccurredAt:      at,
		Attributes:      attrs,
	}
}
