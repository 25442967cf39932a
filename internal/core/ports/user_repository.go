package ports

import (
	"context"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
)

// UserRepository defines persistence operations on user profiles.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByNIF(ctx context.Context, nif string) (*domain.User, error)
	// FindAll returns every user sorted by name.
	FindAll(ctx context.Context) ([]*domain.User, error)
	// FindByDepartment returns the users referencing the department name,
	// sorted by name.
	FindByDepartment(ctx context.Context, department string) ([]*domain.User, error)
	CountByDepartment(ctx context.Context, department string) (int64, error)
	Update(ctx context.Context, user *domain.User) error
	// Delete removes a profile document. Used only to compensate a failed
	// credential write during registration; the API never hard-deletes users.
	Delete(ctx context.Context, username string) error
	// RenameDepartment rewrites the department reference on every user at
	// oldName to newName and returns the number of users updated.
	RenameDepartment(ctx context.Context, oldName, newName string) (int64, error)
}

// CredentialRepository stores password digests, keyed by username. Profiles
// and credentials live in separate collections of the same store.
type CredentialRepository interface {
	Store(ctx context.Context, username, passwordHash string) error
	FindHash(ctx context.Context, username string) (string, error)
	UpdateHash(ctx context.Context, username, passwordHash string) error
}
