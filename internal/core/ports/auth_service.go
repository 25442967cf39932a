package ports

import (
	"context"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/authz"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
)

// RegisterUserInput carries a registration request made by an authenticated
// actor (Admin or HR Manager).
type RegisterUserInput struct {
	Username   string
	Password   string
	Name       string
	NIF        string
	Department string
	Role       domain.Role
}

// RegisterAdminInput carries a bootstrap admin registration. SetupKey must
// match the configured admin setup key; the route is otherwise public.
type RegisterAdminInput struct {
	Username string
	Password string
	Name     string
	NIF      string
	SetupKey string
}

// AuthService covers credential handling: login, registration, and password
// changes.
type AuthService interface {
	// Login verifies credentials and returns a signed token plus the user.
	// Inactive users cannot log in.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	RegisterUser(ctx context.Context, actor authz.Actor, in RegisterUserInput) (*domain.User, error)
	RegisterAdmin(ctx context.Context, in RegisterAdminInput) (*domain.User, error)
	// ChangePassword lets a user rotate their own password after proving the
	// current one, and lets an Admin reset an HR Manager's password without
	// it.
	ChangePassword(ctx context.Context, actor authz.Actor, username, currentPassword, newPassword string) error
}
