package ports

import (
	"context"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/authz"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
)

// UpdateUserInput carries a partial user update. Nil pointers mean "not
// submitted"; which submitted fields take effect depends on the actor's
// capabilities (see authz.FilterUserUpdate).
type UpdateUserInput struct {
	Name       *string
	NIF        *string
	Role       *string
	Department *string
	Balance    *float64
}

// UserService covers profile queries and mutations, all authorized against
// the acting identity.
type UserService interface {
	GetByUsername(ctx context.Context, actor authz.Actor, username string) (*domain.User, error)
	GetByNIF(ctx context.Context, actor authz.Actor, nif string) (*domain.User, error)
	List(ctx context.Context, actor authz.Actor) ([]*domain.User, error)
	ListByDepartment(ctx context.Context, actor authz.Actor, department string) ([]*domain.User, error)
	Update(ctx context.Context, actor authz.Actor, username string, in UpdateUserInput) (*domain.User, error)
	// Inactivate transitions the target to the Inactive role and revokes
	// their outstanding tokens. Users are never hard-deleted.
	Inactivate(ctx context.Context, actor authz.Actor, username string) error
	GetBalanceByNIF(ctx context.Context, actor authz.Actor, nif string) (float64, error)
	UpdateBalanceByNIF(ctx context.Context, actor authz.Actor, nif string, balance float64) (float64, error)
}
