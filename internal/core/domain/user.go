package domain

import "time"

// Role classifies a user's privilege level. Roles are a flat set, not a
// hierarchy: a Manager in the Human Resources department gains elevated
// privileges over non-Admin users (see the authz package).
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
	RoleInactive Role = "Inactive"
)

// HRDepartment is the department whose Managers receive Admin-like
// privileges over non-Admin users.
const HRDepartment = "Human Resources"

// ParseRole validates a role string submitted by a client. Inactive is not an
// assignable role: users become Inactive only through inactivation.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleEmployee:
		return Role(s), true
	}
	return "", false
}

// User is a persisted account. Users are never hard-deleted; deactivation
// transitions the role to Inactive.
type User struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	NIF        string    `json:"nif"`
	Department string    `json:"department,omitempty"` // empty only for Admins
	Balance    float64   `json:"balance"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsActive reports whether the user may authenticate and be assigned work.
func (u *User) IsActive() bool {
	return u.Role != RoleInactive
}

// IsHRManager reports whether the user is a Manager in Human Resources.
// Department names are stored normalized, so the comparison must be
// case-insensitive.
func (u *User) IsHRManager() bool {
	return u.Role == RoleManager && SameDepartment(u.Department, HRDepartment)
}
