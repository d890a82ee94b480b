package models

import "time"

// FlowState is the state of a review flow (co-signer or legal advisor).
// RETURNED is only reachable from SENT.
type FlowState string

const (
	FlowNotSent  FlowState = "IKKE_SENDT"
	FlowSent     FlowState = "SENDT"
	FlowReturned FlowState = "RETURNERT"
)

func (s FlowState) IsValid() bool {
	return s == FlowNotSent || s == FlowSent || s == FlowReturned
}

// normalized maps the zero value to NOT_SENT.
func (s FlowState) normalized() FlowState {
	if s == "" {
		return FlowNotSent
	}
	return s
}

// CoSigner is the medunderskriver flow. Ident "" means no co-signer is set.
type CoSigner struct {
	Ident     string    `json:"ident,omitempty"`
	FlowState FlowState `json:"flow_state"`
}

// State returns the flow state, treating the zero value as NOT_SENT.
func (c CoSigner) State() FlowState { return c.FlowState.normalized() }

// LegalAdvisor is the ROL flow. ReturnedAt is derived: set when the flow enters
// RETURNED and cleared when it leaves it.
type LegalAdvisor struct {
	Ident      string     `json:"ident,omitempty"`
	FlowState  FlowState  `json:"flow_state"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

func (l LegalAdvisor) State() FlowState { return l.FlowState.normalized() }

// DeassignReason is the fradelingsgrunn recorded when a case is unassigned.
type DeassignReason string

const (
	DeassignWrongLegalGrounds  DeassignReason = "FEIL_HJEMMEL"
	DeassignMissingCompetence  DeassignReason = "MANGLENDE_KOMPETANSE"
	DeassignConflictOfInterest DeassignReason = "INHABILITET"
	DeassignLongTermAbsence    DeassignReason = "LENGRE_FRAVAER"
	DeassignOther              DeassignReason = "ANNET"
)

var validDeassignReasons = map[DeassignReason]bool{
	DeassignWrongLegalGrounds:  true,
	DeassignMissingCompetence:  true,
	DeassignConflictOfInterest: true,
	DeassignLongTermAbsence:    true,
	DeassignOther:              true,
}

func (r DeassignReason) IsValid() bool { return validDeassignReasons[r] }

// Outcome is the utfall of a case.
type Outcome string

const (
	OutcomeWithdrawn                 Outcome = "TRUKKET"
	OutcomeReturn                    Outcome = "RETUR"
	OutcomeReversed                  Outcome = "OPPHEVET"
	OutcomeGranted                   Outcome = "MEDHOLD"
	OutcomePartlyGranted             Outcome = "DELVIS_MEDHOLD"
	OutcomeAffirmed                  Outcome = "STADFESTELSE"
	OutcomeUnfavourable              Outcome = "UGUNST"
	OutcomeDismissed                 Outcome = "AVVIST"
	OutcomeRecommendAffirm           Outcome = "INNSTILLING_STADFESTELSE"
	OutcomeRecommendDismiss          Outcome = "INNSTILLING_AVVIST"
	OutcomeLifted                    Outcome = "HEVET"
	OutcomeReferred                  Outcome = "HENVIST"
	OutcomeGrantedAfterReconsidering Outcome = "MEDHOLD_ETTER_FVL_35"
	OutcomeDecisionNotToReverse      Outcome = "BESLUTNING_IKKE_OMGJOERE"
)

var tribunalOutcomes = []Outcome{
	OutcomeWithdrawn, OutcomeReversed, OutcomeGranted, OutcomePartlyGranted,
	OutcomeAffirmed, OutcomeDismissed, OutcomeLifted, OutcomeReferred,
}

var appealOutcomes = []Outcome{
	OutcomeWithdrawn, OutcomeReversed, OutcomeGranted, OutcomePartlyGranted,
	OutcomeUnfavourable, OutcomeDismissed, OutcomeRecommendAffirm, OutcomeRecommendDismiss,
}

var legalOutcomes = map[Type][]Outcome{
	TypeComplaint: {
		OutcomeWithdrawn, OutcomeReturn, OutcomeReversed, OutcomeGranted,
		OutcomePartlyGranted, OutcomeAffirmed, OutcomeUnfavourable, OutcomeDismissed,
	},
	TypeAppeal:                     appealOutcomes,
	TypePostTribunalCase:           appealOutcomes,
	TypeAppealToTribunal:           tribunalOutcomes,
	TypeReopeningRequestAtTribunal: tribunalOutcomes,
	TypeReopeningRequest: {
		OutcomeWithdrawn, OutcomeGrantedAfterReconsidering, OutcomeDecisionNotToReverse,
	},
}

// IsLegalFor reports whether the outcome may be registered on a case of type t.
func (o Outcome) IsLegalFor(t Type) bool {
	for _, allowed := range legalOutcomes[t] {
		if allowed == o {
			return true
		}
	}
	return false
}

// LegalOutcomes returns the outcomes allowed for t.
func LegalOutcomes(t Type) []Outcome {
	out := make([]Outcome, len(legalOutcomes[t]))
	copy(out, legalOutcomes[t])
	return out
}
