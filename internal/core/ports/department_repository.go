package ports

import (
	"context"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
)

// DepartmentRepository defines persistence operations on departments. Name
// lookups are case-insensitive (collation-backed in the Mongo implementation).
type DepartmentRepository interface {
	Insert(ctx context.Context, dept *domain.Department) (*domain.Department, error)
	FindByName(ctx context.Context, name string) (*domain.Department, error)
	// FindAll returns every department sorted by name.
	FindAll(ctx context.Context) ([]*domain.Department, error)
	// FindByManager returns the departments managed by the given username,
	// sorted by name.
	FindByManager(ctx context.Context, managerUsername string) ([]*domain.Department, error)
	Update(ctx context.Context, name string, dept *domain.Department) (*domain.Department, error)
	Delete(ctx context.Context, name string) error
}
