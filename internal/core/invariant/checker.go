// Package invariant validates domain rules that span entities or depend on
// external state: identifier checksums, password policy, date validity, and
// soft-reference integrity. The storage layer enforces none of these, so the
// checker runs after authorization and before every commit.
package invariant

import (
	"context"
	"time"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/ports"
)

// Checker bundles the cross-entity validation rules. The clock is injected so
// date checks stay deterministic under test.
type Checker struct {
	users       ports.UserRepository
	departments ports.DepartmentRepository
	now         func() time.Time
}

// New returns a Checker. A nil clock defaults to time.Now.
func New(users ports.UserRepository, departments ports.DepartmentRepository, now func() time.Time) *Checker {
	if now == nil {
		now = time.Now
	}
	return &Checker{users: users, departments: departments, now: now}
}

// CheckLimitDate rejects zero dates and dates not strictly in the future.
func (c *Checker) CheckLimitDate(limit time.Time) error {
	if limit.IsZero() || !limit.After(c.now()) {
		return domain.ErrInvalidLimitDate
	}
	return nil
}

// CheckAssignee resolves the assignee and rejects missing or inactive users.
func (c *Checker) CheckAssignee(ctx context.Context, username string) (*domain.User, error) {
	user, err := c.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, domain.ErrAssigneeInactive
	}
	return user, nil
}

// CheckDepartmentExists resolves a department by name (case-insensitive).
func (c *Checker) CheckDepartmentExists(ctx context.Context, name string) (*domain.Department, error) {
	return c.departments.FindByName(ctx, name)
}

// CheckDepartmentNameFree rejects a name already taken by another department.
// Comparison is case-insensitive (collation on the name index).
func (c *Checker) CheckDepartmentNameFree(ctx context.Context, name string) error {
	_, err := c.departments.FindByName(ctx, name)
	switch err {
	case nil:
		return domain.ErrDepartmentExists
	case domain.ErrDepartmentNotFound:
		return nil
	default:
		return err
	}
}

// CheckDepartmentDeletable rejects deletion while any user still references
// the department.
func (c *Checker) CheckDepartmentDeletable(ctx context.Context, name string) error {
	n, err := c.users.CountByDepartment(ctx, name)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrDepartmentInUse
	}
	return nil
}

// CheckManagerExists validates a department's manager reference. An empty
// username is allowed (department without a manager).
func (c *Checker) CheckManagerExists(ctx context.Context, username string) error {
	if username == "" {
		return nil
	}
	_, err := c.users.FindByUsername(ctx, username)
	return err
}

// CheckEmployeesExist validates every username in a department's employee
// list.
func (c *Checker) CheckEmployeesExist(ctx context.Context, usernames []string) error {
	for _, u := range usernames {
		if _, err := c.users.FindByUsername(ctx, u); err != nil {
			return err
		}
	}
	return nil
}
