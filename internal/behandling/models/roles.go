package models

import "slices"

// Role is an application role resolved for a NAV-ident.
type Role string

const (
	RoleAdmin            Role = "KABAL_ADMIN"
	RoleCaseworker       Role = "KABAL_SAKSBEHANDLING"
	RoleClerical         Role = "KABAL_MERKANTIL"
	RoleLegalAdvisor     Role = "KABAL_ROL"
	RoleLegalAdvisorLead Role = "KABAL_KROL"
	// RoleSchedulingAllUnits is cross-unit scheduling (oppgavestyring alle enheter).
	RoleSchedulingAllUnits Role = "KABAL_OPPGAVESTYRING_ALLE_ENHETER"
	// RoleReadOwnUnit is unit-scoped read-all (innsyn egen enhet).
	RoleReadOwnUnit Role = "KABAL_INNSYN_EGEN_ENHET"
)

// Roles is the role set of one actor.
type Roles []Role

func (r Roles) Has(role Role) bool {
	return slices.Contains(r, role)
}

// HasAny reports whether at least one of roles is held.
func (r Roles) HasAny(roles ...Role) bool {
	for _, role := range roles {
		if r.Has(role) {
			return true
		}
	}
	return false
}
