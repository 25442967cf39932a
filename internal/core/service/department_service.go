package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/authz"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/invariant"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/ports"
)

// DepartmentService implements department CRUD. Every mutation validates
// references through the invariant checker before committing; the rename
// cascade and the delete guard are read-then-write sequences with no
// isolation beyond what the store offers.
type DepartmentService struct {
	departments ports.DepartmentRepository
	users       ports.UserRepository
	checker     *invariant.Checker
	logger      zerolog.Logger
}

func NewDepartmentService(departments ports.DepartmentRepository, users ports.UserRepository, checker *invariant.Checker, logger zerolog.Logger) *DepartmentService {
	return &DepartmentService{departments: departments, users: users, checker: checker, logger: logger}
}

func (s *DepartmentService) Create(ctx context.Context, actor authz.Actor, in ports.CreateDepartmentInput) (*domain.Department, error) {
	if d := authz.Can(actor, authz.ActionDepartmentCreate, authz.Target{}); !d.Allowed {
		return nil, denied(d)
	}
	if !domain.ValidDepartmentName(in.Name) {
		return nil, domain.ErrInvalidName
	}
	if err := invariant.CheckCanteenDiscount(in.CanteenDiscount); err != nil {
		return nil, err
	}
	if err := s.checker.CheckManagerExists(ctx, in.ManagerUsername); err != nil {
		return nil, err
	}
	if err := s.checker.CheckEmployeesExist(ctx, in.Employees); err != nil {
		return nil, err
	}

	name := domain.NormalizeDepartmentName(in.Name)
	if err := s.checker.CheckDepartmentNameFree(ctx, name); err != nil {
		return nil, err
	}

	dept, err := s.departments.Insert(ctx, &domain.Department{
		Name:            name,
		CanteenDiscount: in.CanteenDiscount,
		ManagerUsername: in.ManagerUsername,
		Employees:       in.Employees,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("department", dept.Name).Str("actor", actor.Username).Msg("department created")
	return dept, nil
}

func (s *DepartmentService) Get(ctx context.Context, actor authz.Actor, name string) (*domain.Department, error) {
	dept, err := s.departments.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	target := authz.Target{Username: dept.ManagerUsername, Department: dept.Name}
	if d := authz.Can(actor, authz.ActionDepartmentView, target); !d.Allowed {
		return nil, denied(d)
	}
	return dept, nil
}

// List returns all departments for Admins and only managed departments for
// Managers.
func (s *DepartmentService) List(ctx context.Context, actor authz.Actor) ([]*domain.Department, error) {
	if d := authz.Can(actor, authz.ActionDepartmentList, authz.Target{}); !d.Allowed {
		return nil, denied(d)
	}
	if actor.Role == domain.RoleManager {
		return s.departments.FindByManager(ctx, actor.Username)
	}
	return s.departments.FindAll(ctx)
}

// Update applies a partial update. Renaming validates the new name first,
// commits the department, then cascades the new name to every referencing
// user; a validation failure rejects the rename before anything is written.
func (s *DepartmentService) Update(ctx context.Context, actor authz.Actor, name string, in ports.UpdateDepartmentInput) (*domain.Department, error) {
	if d := authz.Can(actor, authz.ActionDepartmentUpdate, authz.Target{}); !d.Allowed {
		return nil, denied(d)
	}

	dept, err := s.departments.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	oldName := dept.Name

	if in.ManagerUsername != nil && *in.ManagerUsername != "" {
		if err := s.checker.CheckManagerExists(ctx, *in.ManagerUsername); err != nil {
			return nil, err
		}
	}
	if in.Employees != nil {
		if err := s.checker.CheckEmployeesExist(ctx, *in.Employees); err != nil {
			return nil, err
		}
	}
	if in.CanteenDiscount != nil {
		if err := invariant.CheckCanteenDiscount(*in.CanteenDiscount); err != nil {
			return nil, err
		}
		dept.CanteenDiscount = *in.CanteenDiscount
	}
	if in.ManagerUsername != nil {
		dept.ManagerUsername = *in.ManagerUsername
	}
	if in.Employees != nil {
		dept.Employees = *in.Employees
	}

	renamed := false
	if in.Name != nil {
		if !domain.ValidDepartmentName(*in.Name) {
			return nil, domain.ErrInvalidName
		}
		newName := domain.NormalizeDepartmentName(*in.Name)
		if newName != oldName {
			if err := s.checker.CheckDepartmentNameFree(ctx, newName); err != nil {
				return nil, err
			}
			dept.Name = newName
			renamed = true
		}
	}

	updated, err := s.departments.Update(ctx, oldName, dept)
	if err != nil {
		return nil, err
	}

	if renamed {
		n, err := s.users.RenameDepartment(ctx, oldName, dept.Name)
		if err != nil {
			// The department already carries the new name; surface the
			// failure rather than leave it silently half-applied.
			s.logger.Error().Err(err).Str("from", oldName).Str("to", dept.Name).Msg("department rename cascade failed")
			return nil, err
		}
		s.logger.Info().Str("from", oldName).Str("to", dept.Name).Int64("users", n).Msg("department renamed")
	}

	return updated, nil
}

// Delete removes a department, rejected with a conflict while any user still
// references it.
func (s *DepartmentService) Delete(ctx context.Context, actor authz.Actor, name string) error {
	if d := authz.Can(actor, authz.ActionDepartmentDelete, authz.Target{}); !d.Allowed {
		return denied(d)
	}

	dept, err := s.departments.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if err := s.checker.CheckDepartmentDeletable(ctx, dept.Name); err != nil {
		return err
	}
	if err := s.departments.Delete(ctx, dept.Name); err != nil {
		return err
	}

	s.logger.Info().Str("department", dept.Name).Str("actor", actor.Username).Msg("department deleted")
	return nil
}

// CanteenDiscount resolves the actor's own department discount through the
// actor's NIF.
func (s *DepartmentService) CanteenDiscount(ctx context.Context, actor authz.Actor) (*ports.CanteenDiscountResult, error) {
	user, err := s.users.FindByNIF(ctx, actor.NIF)
	if err != nil {
		return nil, err
	}
	dept, err := s.departments.FindByName(ctx, user.Department)
	if err != nil {
		return nil, err
	}
	return &ports.CanteenDiscountResult{
		DepartmentName:  dept.Name,
		CanteenDiscount: dept.CanteenDiscount,
	}, nil
}
