package ports

import (
	"context"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/authz"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
)

// CreateDepartmentInput carries a department creation request.
type CreateDepartmentInput struct {
	Name            string
	CanteenDiscount int
	ManagerUsername string
	Employees       []string
}

// UpdateDepartmentInput carries a partial department update. Renaming
// cascades the new name to every referencing user.
type UpdateDepartmentInput struct {
	Name            *string
	CanteenDiscount *int
	ManagerUsername *string
	Employees       *[]string
}

// CanteenDiscountResult is the discount view for the actor's own department.
type CanteenDiscountResult struct {
	DepartmentName  string
	CanteenDiscount int
}

// DepartmentService covers department CRUD. Mutations are Admin-only;
// Managers read only the departments they manage.
type DepartmentService interface {
	Create(ctx context.Context, actor authz.Actor, in CreateDepartmentInput) (*domain.Department, error)
	Get(ctx context.Context, actor authz.Actor, name string) (*domain.Department, error)
	List(ctx context.Context, actor authz.Actor) ([]*domain.Department, error)
	Update(ctx context.Context, actor authz.Actor, name string, in UpdateDepartmentInput) (*domain.Department, error)
	Delete(ctx context.Context, actor authz.Actor, name string) error
	// CanteenDiscount resolves the actor's own department discount via the
	// actor's NIF.
	CanteenDiscount(ctx context.Context, actor authz.Actor) (*CanteenDiscountResult, error)
}
