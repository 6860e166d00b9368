package entity

// Role is a user privilege level. Roles are totally ordered: a route that
// requires Admin also admits SuperAdmin. The wire representation is the
// numeric value (0/1/2) for compatibility with existing clients.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
	RoleSuperAdmin
)

// Valid reports whether r is one of the three enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// AtLeast is the total order over roles: User < Admin < SuperAdmin.
func (r Role) AtLeast(min Role) bool {
	return r >= min
}

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	case RoleSuperAdmin:
		return "super_admin"
	}
	return "unknown"
}
