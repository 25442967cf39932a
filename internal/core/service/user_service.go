package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/authz"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/invariant"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/ports"
)

// TokenRevoker invalidates outstanding tokens for a username (Redis-backed).
type TokenRevoker interface {
	Revoke(ctx context.Context, username string) error
}

// UserService implements profile queries and mutations.
type UserService struct {
	users   ports.UserRepository
	checker *invariant.Checker
	revoker TokenRevoker
	logger  zerolog.Logger
}

func NewUserService(users ports.UserRepository, checker *invariant.Checker, revoker TokenRevoker, logger zerolog.Logger) *UserService {
	return &UserService{users: users, checker: checker, revoker: revoker, logger: logger}
}

func userTarget(u *domain.User) authz.Target {
	return authz.Target{Username: u.Username, UserID: u.ID, Role: u.Role, Department: u.Department}
}

func (s *UserService) GetByUsername(ctx context.Context, actor authz.Actor, username string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if d := authz.Can(actor, authz.ActionUserView, userTarget(user)); !d.Allowed {
		return nil, denied(d)
	}
	return user, nil
}

func (s *UserService) GetByNIF(ctx context.Context, actor authz.Actor, nif string) (*domain.User, error) {
	user, err := s.users.FindByNIF(ctx, nif)
	if err != nil {
		return nil, err
	}
	if d := authz.Can(actor, authz.ActionUserView, userTarget(user)); !d.Allowed {
		return nil, denied(d)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, actor authz.Actor) ([]*domain.User, error) {
	if d := authz.Can(actor, authz.ActionUserList, authz.Target{}); !d.Allowed {
		return nil, denied(d)
	}
	return s.users.FindAll(ctx)
}

func (s *UserService) ListByDepartment(ctx context.Context, actor authz.Actor, department string) ([]*domain.User, error) {
	dept, err := s.checker.CheckDepartmentExists(ctx, department)
	if err != nil {
		return nil, err
	}
	if d := authz.Can(actor, authz.ActionUserListByDepartment, authz.Target{Department: dept.Name}); !d.Allowed {
		return nil, denied(d)
	}
	return s.users.FindByDepartment(ctx, dept.Name)
}

// Update applies a field-filtered partial update. Disallowed fields in the
// payload are dropped, except a balance write by an actor who neither owns
// nor administers the record, which denies the whole request before any
// mutation.
func (s *UserService) Update(ctx context.Context, actor authz.Actor, username string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	var submitted []authz.Field
	if in.Name != nil {
		submitted = append(submitted, authz.FieldName)
	}
	if in.NIF != nil {
		submitted = append(submitted, authz.FieldNIF)
	}
	if in.Role != nil {
		submitted = append(submitted, authz.FieldRole)
	}
	if in.Department != nil {
		submitted = append(submitted, authz.FieldDepartment)
	}
	if in.Balance != nil {
		submitted = append(submitted, authz.FieldBalance)
	}

	res, d := authz.FilterUserUpdate(actor, userTarget(user), submitted)
	if !d.Allowed {
		return nil, denied(d)
	}

	if res.Has(authz.FieldRole) {
		role, ok := domain.ParseRole(*in.Role)
		if !ok {
			return nil, domain.ErrInvalidRole
		}
		if role == domain.RoleAdmin && actor.Role != domain.RoleAdmin {
			return nil, denied(authz.Decision{Reason: "only admins can promote to admin"})
		}
		user.Role = role
	}
	if res.Has(authz.FieldDepartment) {
		dept, err := s.checker.CheckDepartmentExists(ctx, *in.Department)
		if err != nil {
			return nil, err
		}
		user.Department = dept.Name
	}
	if res.Has(authz.FieldName) {
		if err := invariant.CheckPersonName(*in.Name); err != nil {
			return nil, err
		}
		user.Name = *in.Name
	}
	if res.Has(authz.FieldNIF) {
		if err := invariant.CheckNIF(*in.NIF); err != nil {
			return nil, err
		}
		user.NIF = *in.NIF
	}
	if res.Has(authz.FieldBalance) {
		if err := invariant.CheckBalance(*in.Balance); err != nil {
			return nil, err
		}
		user.Balance = *in.Balance
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Str("actor", actor.Username).Int("fields", len(res.Accepted)).Msg("user updated")
	return user, nil
}

// Inactivate transitions the target to Inactive and revokes outstanding
// tokens. Revocation failure is logged, not fatal: the token expires on its
// own TTL.
func (s *UserService) Inactivate(ctx context.Context, actor authz.Actor, username string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if d := authz.Can(actor, authz.ActionUserInactivate, userTarget(user)); !d.Allowed {
		return denied(d)
	}

	user.Role = domain.RoleInactive
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	if s.revoker != nil {
		if err := s.revoker.Revoke(ctx, username); err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("failed to revoke tokens")
		}
	}

	s.logger.Info().Str("username", username).Str("actor", actor.Username).Msg("user inactivated")
	return nil
}

func (s *UserService) GetBalanceByNIF(ctx context.Context, actor authz.Actor, nif string) (float64, error) {
	user, err := s.users.FindByNIF(ctx, nif)
	if err != nil {
		return 0, err
	}
	if d := authz.Can(actor, authz.ActionBalanceRead, authz.Target{Username: user.Username}); !d.Allowed {
		return 0, denied(d)
	}
	return user.Balance, nil
}

func (s *UserService) UpdateBalanceByNIF(ctx context.Context, actor authz.Actor, nif string, balance float64) (float64, error) {
	if err := invariant.CheckBalance(balance); err != nil {
		return 0, err
	}
	user, err := s.users.FindByNIF(ctx, nif)
	if err != nil {
		return 0, err
	}
	if d := authz.Can(actor, authz.ActionBalanceUpdate, authz.Target{Username: user.Username}); !d.Allowed {
		return 0, denied(d)
	}

	user.Balance = balance
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return 0, err
	}
	return user.Balance, nil
}
