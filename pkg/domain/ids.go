// Package domain holds identifier primitives shared across bounded contexts.
package domain

import (
	"github.com/google/uuid"

	dErrors "kabal/pkg/domain-errors"
)

// CaseID identifies a Behandling. It is a distinct type so it cannot be mixed up
// with other UUID-valued identifiers.
type CaseID uuid.UUID

// NewCaseID returns a random case identifier.
func NewCaseID() CaseID {
	return CaseID(uuid.New())
}

// ParseCaseID constructs a CaseID from external input.
//
// Errors: returns CodeBadRequest when the value is empty, malformed or the nil UUID.
func ParseCaseID(s string) (CaseID, error) {
	u, err := parseUUID(s, "case id")
	if err != nil {
		return CaseID{}, err
	}
	return CaseID(u), nil
}

func (id CaseID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the id is the zero value.
func (id CaseID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, label+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, label+" cannot be nil")
	}
	return u, nil
}

func (id CaseID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *CaseID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid case id")
	}
	*id = CaseID(u)
	return nil
}
