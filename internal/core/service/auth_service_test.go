package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/authz"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/invariant"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/ports"
)

var adminActor = authz.Actor{ID: "a1", Username: "root", Role: domain.RoleAdmin}

func newAuthFixture(users *stubUserRepo, creds *stubCredRepo, depts *stubDeptRepo) *AuthService {
	checker := invariant.New(users, depts, nil)
	return NewAuthService(users, creds, depts, checker, "secret", time.Hour, "setup-key", zerolog.Nop())
}

func registerEmployee(t *testing.T, svc *AuthService, username, nif string) *domain.User {
	t.Helper()
	user, err := svc.RegisterUser(context.Background(), adminActor, ports.RegisterUserInput{
		Username:   username,
		Password:   "Abc12345",
		Name:       "Test Person",
		NIF:        nif,
		Department: "sales",
		Role:       domain.RoleEmployee,
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func TestAuthService_RegisterUser_Success(t *testing.T) {
	users := newStubUserRepo()
	creds := newStubCredRepo()
	depts := newStubDeptRepo(&domain.Department{Name: "sales"})
	svc := newAuthFixture(users, creds, depts)

	user := registerEmployee(t, svc, "joana", "123456789")
	if user.Role != domain.RoleEmployee || user.Department != "sales" {
		t.Fatalf("unexpected user: %+v", user)
	}

	hash, err := creds.FindHash(context.Background(), "joana")
	if err != nil {
		t.Fatalf("credential not stored: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("Abc12345")) != nil {
		t.Fatalf("stored hash does not match password")
	}
}

func TestAuthService_RegisterUser_ManagerAssignedToDepartment(t *testing.T) {
	users := newStubUserRepo()
	creds := newStubCredRepo()
	depts := newStubDeptRepo(&domain.Department{Name: "sales"})
	svc := newAuthFixture(users, creds, depts)

	_, err := svc.RegisterUser(context.Background(), adminActor, ports.RegisterUserInput{
		Username:   "mario",
		Password:   "Abc12345",
		Name:       "Mario",
		NIF:        "255863152",
		Department: "Sales",
		Role:       domain.RoleManager,
	})
	if err != nil {
		t.Fatalf("register manager: %v", err)
	}

	dept, err := depts.FindByName(context.Background(), "sales")
	if err != nil {
		t.Fatalf("department lookup: %v", err)
	}
	if dept.ManagerUsername != "mario" {
		t.Fatalf("expected department manager mario, got %q", dept.ManagerUsername)
	}
}

func TestAuthService_RegisterUser_AdminCreatesAnyRole(t *testing.T) {
	users := newStubUserRepo()
	creds := newStubCredRepo()
	depts := newStubDeptRepo(&domain.Department{Name: "sales"})
	svc := newAuthFixture(users, creds, depts)

	user, err := svc.RegisterUser(context.Background(), adminActor, ports.RegisterUserInput{
		Username:   "berta",
		Password:   "Abc12345",
		Name:       "Berta",
		NIF:        "255863152",
		Department: "sales",
		Role:       domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("admin registering an admin: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", user.Role)
	}

	// only manager registrations take over the department
	dept, err := depts.FindByName(context.Background(), "sales")
	if err != nil {
		t.Fatalf("department lookup: %v", err)
	}
	if dept.ManagerUsername != "" {
		t.Fatalf("admin registration set department manager %q", dept.ManagerUsername)
	}

	hr := authz.Actor{Username: "helena", Role: domain.RoleManager, Department: "human resources"}
	if _, err := svc.RegisterUser(context.Background(), hr, ports.RegisterUserInput{
		Username: "x", Password: "Abc12345", Name: "X", NIF: "123456789", Department: "sales", Role: domain.RoleAdmin,
	}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for hr manager creating admin, got %v", err)
	}
}

func TestAuthService_RegisterUser_Validation(t *testing.T) {
	users := newStubUserRepo()
	creds := newStubCredRepo()
	depts := newStubDeptRepo(&domain.Department{Name: "sales"})
	svc := newAuthFixture(users, creds, depts)

	cases := []struct {
		name string
		in   ports.RegisterUserInput
		want error
	}{
		{"missing department", ports.RegisterUserInput{Username: "x", Password: "Abc12345", Name: "X", NIF: "123456789", Department: "nope", Role: domain.RoleEmployee}, domain.ErrDepartmentNotFound},
		{"weak password", ports.RegisterUserInput{Username: "x", Password: "abc12345", Name: "X", NIF: "123456789", Department: "sales", Role: domain.RoleEmployee}, domain.ErrInvalidPassword},
		{"bad nif", ports.RegisterUserInput{Username: "x", Password: "Abc12345", Name: "X", NIF: "123456780", Department: "sales", Role: domain.RoleEmployee}, domain.ErrInvalidNIF},
		{"bad name", ports.RegisterUserInput{Username: "x", Password: "Abc12345", Name: "X99", NIF: "123456789", Department: "sales", Role: domain.RoleEmployee}, domain.ErrInvalidName},
	}
	for _, tc := range cases {
		if _, err := svc.RegisterUser(context.Background(), adminActor, tc.in); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestAuthService_RegisterUser_DeniedForOrdinaryManager(t *testing.T) {
	users := newStubUserRepo()
	depts := newStubDeptRepo(&domain.Department{Name: "sales"})
	svc := newAuthFixture(users, newStubCredRepo(), depts)

	boss := authz.Actor{Username: "mario", Role: domain.RoleManager, Department: "sales"}
	_, err := svc.RegisterUser(context.Background(), boss, ports.RegisterUserInput{
		Username: "x", Password: "Abc12345", Name: "X", NIF: "123456789", Department: "sales", Role: domain.RoleEmployee,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAuthService_RegisterUser_HRManagerRegistersEmployees(t *testing.T) {
	users := newStubUserRepo()
	depts := newStubDeptRepo(
		&domain.Department{Name: "human resources"},
		&domain.Department{Name: "sales"},
	)
	svc := newAuthFixture(users, newStubCredRepo(), depts)

	hr := authz.Actor{Username: "helena", Role: domain.RoleManager, Department: "human resources"}
	if _, err := svc.RegisterUser(context.Background(), hr, ports.RegisterUserInput{
		Username: "joana", Password: "Abc12345", Name: "Joana", NIF: "123456789", Department: "sales", Role: domain.RoleEmployee,
	}); err != nil {
		t.Fatalf("hr manager register employee: %v", err)
	}

	if _, err := svc.RegisterUser(context.Background(), hr, ports.RegisterUserInput{
		Username: "other", Password: "Abc12345", Name: "Other", NIF: "255863152", Department: "sales", Role: domain.RoleManager,
	}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("hr manager registering a manager should be forbidden, got %v", err)
	}
}

func TestAuthService_RegisterUser_CompensatesFailedCredentialWrite(t *testing.T) {
	users := newStubUserRepo()
	creds := newStubCredRepo()
	creds.failNext = true
	depts := newStubDeptRepo(&domain.Department{Name: "sales"})
	svc := newAuthFixture(users, creds, depts)

	_, err := svc.RegisterUser(context.Background(), adminActor, ports.RegisterUserInput{
		Username: "joana", Password: "Abc12345", Name: "Joana", NIF: "123456789", Department: "sales", Role: domain.RoleEmployee,
	})
	if err == nil {
		t.Fatalf("expected error from failed credential write")
	}
	if _, err := users.FindByUsername(context.Background(), "joana"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("profile should have been rolled back, got %v", err)
	}
}

func TestAuthService_RegisterAdmin_SetupKey(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthFixture(users, newStubCredRepo(), newStubDeptRepo())

	user, err := svc.RegisterAdmin(context.Background(), ports.RegisterAdminInput{
		Username: "root2", Password: "Abc12345", Name: "Root", NIF: "123456789", SetupKey: "setup-key",
	})
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}
	if user.Role != domain.RoleAdmin || user.Department != "" {
		t.Fatalf("unexpected admin: %+v", user)
	}

	if _, err := svc.RegisterAdmin(context.Background(), ports.RegisterAdminInput{
		Username: "root3", Password: "Abc12345", Name: "Root", NIF: "255863152", SetupKey: "wrong",
	}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden with wrong key, got %v", err)
	}
}

func TestAuthService_RegisterAdmin_DisabledWithoutKey(t *testing.T) {
	users := newStubUserRepo()
	checker := invariant.New(users, newStubDeptRepo(), nil)
	svc := NewAuthService(users, newStubCredRepo(), newStubDeptRepo(), checker, "secret", time.Hour, "", zerolog.Nop())

	if _, err := svc.RegisterAdmin(context.Background(), ports.RegisterAdminInput{
		Username: "root2", Password: "Abc12345", Name: "Root", NIF: "123456789", SetupKey: "",
	}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden when no key configured, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	users := newStubUserRepo()
	creds := newStubCredRepo()
	depts := newStubDeptRepo(&domain.Department{Name: "sales"})
	svc := newAuthFixture(users, creds, depts)
	registerEmployee(t, svc, "joana", "123456789")

	token, user, err := svc.Login(context.Background(), "joana", "Abc12345")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Username != "joana" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["username"] != "joana" || claims["role"] != string(domain.RoleEmployee) {
		t.Fatalf("unexpected claims: %v", claims)
	}
	if claims["department"] != "sales" {
		t.Fatalf("expected department claim, got %v", claims["department"])
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	users := newStubUserRepo()
	creds := newStubCredRepo()
	depts := newStubDeptRepo(&domain.Department{Name: "sales"})
	svc := newAuthFixture(users, creds, depts)
	registerEmployee(t, svc, "joana", "123456789")

	if _, _, err := svc.Login(context.Background(), "joana", "Wrong1234"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	// Unknown username is indistinguishable from a wrong password.
	if _, _, err := svc.Login(context.Background(), "nobody", "Abc12345"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("empty credentials: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	users := newStubUserRepo()
	creds := newStubCredRepo()
	depts := newStubDeptRepo(&domain.Department{Name: "sales"})
	svc := newAuthFixture(users, creds, depts)
	user := registerEmployee(t, svc, "joana", "123456789")

	user.Role = domain.RoleInactive
	if err := users.Update(context.Background(), user); err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "joana", "Abc12345"); !errors.Is(err, domain.ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}

func TestAuthService_ChangePassword_Self(t *testing.T) {
	users := newStubUserRepo()
	creds := newStubCredRepo()
	depts := newStubDeptRepo(&domain.Department{Name: "sales"})
	svc := newAuthFixture(users, creds, depts)
	registerEmployee(t, svc, "joana", "123456789")

	actor := authz.Actor{Username: "joana", Role: domain.RoleEmployee, Department: "sales"}

	if err := svc.ChangePassword(context.Background(), actor, "joana", "Wrong1234", "New12345"); !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), actor, "joana", "Abc12345", "New12345"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "joana", "New12345"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestAuthService_ChangePassword_AdminResetsHRManager(t *testing.T) {
	users := newStubUserRepo()
	creds := newStubCredRepo()
	depts := newStubDeptRepo(
		&domain.Department{Name: "human resources"},
		&domain.Department{Name: "sales"},
	)
	svc := newAuthFixture(users, creds, depts)

	if _, err := svc.RegisterUser(context.Background(), adminActor, ports.RegisterUserInput{
		Username: "helena", Password: "Abc12345", Name: "Helena", NIF: "123456789", Department: "human resources", Role: domain.RoleManager,
	}); err != nil {
		t.Fatalf("register hr manager: %v", err)
	}
	registerEmployee(t, svc, "joana", "255863152")

	// No current password needed for the HR manager.
	if err := svc.ChangePassword(context.Background(), adminActor, "helena", "", "New12345"); err != nil {
		t.Fatalf("admin reset: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "helena", "New12345"); err != nil {
		t.Fatalf("login after reset: %v", err)
	}

	// An employee is outside the reset scope.
	if err := svc.ChangePassword(context.Background(), adminActor, "joana", "", "New12345"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for employee reset, got %v", err)
	}
}

func TestAuthService_ChangePassword_PolicyApplies(t *testing.T) {
	users := newStubUserRepo()
	creds := newStubCredRepo()
	depts := newStubDeptRepo(&domain.Department{Name: "sales"})
	svc := newAuthFixture(users, creds, depts)
	registerEmployee(t, svc, "joana", "123456789")

	actor := authz.Actor{Username: "joana", Role: domain.RoleEmployee, Department: "sales"}
	if err := svc.ChangePassword(context.Background(), actor, "joana", "Abc12345", "short"); !errors.Is(err, domain.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}
