package domain

// Role identifies the position a participant plays.
type Role string

// Fixed role set. Rows with any other role string are rejected during
// normalization rather than guessed.
const (
	RoleQB  Role = "QB"
	RoleRB  Role = "RB"
	RoleWR  Role = "WR"
	RoleTE  Role = "TE"
	RoleDEF Role = "DEF"
)

// AllRoles returns the fixed role set in display order.
func AllRoles() []Role {
	return []Role{RoleQB, RoleRB, RoleWR, RoleTE, RoleDEF}
}

// ValidRole reports whether r is one of the fixed role set.
func ValidRole(r Role) bool {
	switch r {
	case RoleQB, RoleRB, RoleWR, RoleTE, RoleDEF:
		return true
	}
	return false
}
