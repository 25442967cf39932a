// Package authz is the authorization engine: pure decision functions over an
// authenticated actor, an action, and the key attributes of a target
// resource. All role and ownership rules live in a single declarative
// capability table so the rule set can be tested without HTTP or storage.
package authz

import "github.com/FelisbertoSilva/RHProjeto/internal/core/domain"

// Actor is the authenticated identity making a request, derived per request
// from verified token claims. It is never persisted.
type Actor struct {
	ID         string
	Username   string
	Role       domain.Role
	Department string
	NIF        string
}

// IsHRManager reports whether the actor is a Manager in Human Resources and
// therefore holds elevated privileges over non-Admin users.
func (a Actor) IsHRManager() bool {
	return a.Role == domain.RoleManager && domain.SameDepartment(a.Department, domain.HRDepartment)
}

// Target carries the attributes of the resource an action is aimed at. Only
// the fields relevant to the action need to be set.
type Target struct {
	// Username of the owning user: the user record itself, a task's
	// assignee, or a department's manager.
	Username string
	// UserID of the owning user, when known.
	UserID string
	// Role of the target user (user-directed actions only).
	Role domain.Role
	// Department the target belongs to.
	Department string
	// NewRole is the role requested for a registration.
	NewRole domain.Role
}

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}
