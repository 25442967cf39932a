package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/authz"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/invariant"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/ports"
)

const bcryptCost = 10

// AuthService implements login, registration, and password changes. Profile
// and credential writes are separate documents; a failed credential write
// during registration is compensated by deleting the freshly inserted
// profile.
type AuthService struct {
	users       ports.UserRepository
	creds       ports.CredentialRepository
	departments ports.DepartmentRepository
	checker     *invariant.Checker
	jwtSecret   string
	tokenTTL    time.Duration
	setupKey    string
	logger      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	creds ports.CredentialRepository,
	departments ports.DepartmentRepository,
	checker *invariant.Checker,
	jwtSecret string,
	tokenTTL time.Duration,
	setupKey string,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{
		users:       users,
		creds:       creds,
		departments: departments,
		checker:     checker,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		setupKey:    setupKey,
		logger:      logger,
	}
}

// Login verifies the password against the stored digest and issues a signed
// token. Inactive users are rejected. A missing credential and a wrong
// password produce the same error so usernames cannot be probed.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := s.creds.FindHash(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if !user.IsActive() {
		return "", nil, domain.ErrUserInactive
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", username).Str("role", string(user.Role)).Msg("login")
	return token, user, nil
}

// RegisterUser creates a new account on behalf of an Admin or HR Manager.
// The target department must already exist; registering a Manager assigns
// them as that department's manager.
func (s *AuthService) RegisterUser(ctx context.Context, actor authz.Actor, in ports.RegisterUserInput) (*domain.User, error) {
	if d := authz.Can(actor, authz.ActionUserRegister, authz.Target{NewRole: in.Role}); !d.Allowed {
		return nil, denied(d)
	}

	dept, err := s.checker.CheckDepartmentExists(ctx, in.Department)
	if err != nil {
		return nil, err
	}

	user, err := s.insertAccount(ctx, in.Username, in.Password, in.Name, in.NIF, dept.Name, in.Role)
	if err != nil {
		return nil, err
	}

	if in.Role == domain.RoleManager {
		dept.ManagerUsername = user.Username
		if _, err := s.departments.Update(ctx, dept.Name, dept); err != nil {
			s.logger.Error().Err(err).Str("department", dept.Name).Msg("failed to record department manager")
		}
	}

	s.logger.Info().Str("username", user.Username).Str("role", string(user.Role)).Str("actor", actor.Username).Msg("user registered")
	return user, nil
}

// RegisterAdmin bootstraps an Admin account. The route is public but gated by
// the configured setup key; Admins carry no department.
func (s *AuthService) RegisterAdmin(ctx context.Context, in ports.RegisterAdminInput) (*domain.User, error) {
	if s.setupKey == "" ||
		subtle.ConstantTimeCompare([]byte(in.SetupKey), []byte(s.setupKey)) != 1 {
		return nil, domain.ErrForbidden
	}

	user, err := s.insertAccount(ctx, in.Username, in.Password, in.Name, in.NIF, "", domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Msg("admin registered")
	return user, nil
}

// insertAccount validates shared invariants, writes the profile, then the
// credential. On a failed credential write the profile is deleted again so
// registration never half-succeeds.
func (s *AuthService) insertAccount(ctx context.Context, username, password, name, nif, department string, role domain.Role) (*domain.User, error) {
	if username == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := invariant.CheckPassword(password); err != nil {
		return nil, err
	}
	if err := invariant.CheckPersonName(name); err != nil {
		return nil, err
	}
	if err := invariant.CheckNIF(nif); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user, err := s.users.Insert(ctx, &domain.User{
		Username:   username,
		Name:       name,
		NIF:        nif,
		Department: department,
		Role:       role,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	if err := s.creds.Store(ctx, username, string(hash)); err != nil {
		if delErr := s.users.Delete(ctx, username); delErr != nil {
			s.logger.Error().Err(delErr).Str("username", username).Msg("failed to roll back profile after credential write failure")
		}
		return nil, fmt.Errorf("store credential: %w", err)
	}

	return user, nil
}

// ChangePassword rotates a password. The owner must prove the current one;
// an Admin may reset an HR Manager's password without it.
func (s *AuthService) ChangePassword(ctx context.Context, actor authz.Actor, username, currentPassword, newPassword string) error {
	if err := invariant.CheckPassword(newPassword); err != nil {
		return err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	target := authz.Target{Username: user.Username, Role: user.Role, Department: user.Department}
	reset := authz.Can(actor, authz.ActionUserResetPassword, target).Allowed

	if !reset {
		if actor.Username != user.Username {
			return domain.ErrForbidden
		}
		hash, err := s.creds.FindHash(ctx, username)
		if err != nil {
			return err
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(currentPassword)) != nil {
			return domain.ErrWrongPassword
		}
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.creds.UpdateHash(ctx, username, string(newHash)); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Str("actor", actor.Username).Bool("reset", reset).Msg("password changed")
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"username":   user.Username,
		"role":       string(user.Role),
		"id":         user.ID,
		"name":       user.Name,
		"nif":        user.NIF,
		"department": user.Department,
		"balance":    user.Balance,
		"exp":        time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// denied wraps an authorization decision into the forbidden sentinel so the
// error handler can map it while keeping the rule's reason visible.
func denied(d authz.Decision) error {
	return fmt.Errorf("%s: %w", d.Reason, domain.ErrForbidden)
}
