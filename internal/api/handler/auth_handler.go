package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/FelisbertoSilva/RHProjeto/internal/api/metrics"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerUserRequest struct {
	Username   string `json:"username"   validate:"required,min=3"`
	Password   string `json:"password"   validate:"required"`
	Name       string `json:"name"       validate:"required"`
	NIF        string `json:"nif"        validate:"required,len=9"`
	Department string `json:"department" validate:"required"`
	Role       string `json:"role"       validate:"required,oneof=Admin Manager Employee"`
}

type createAdminRequest struct {
	Username string `json:"username"  validate:"required,min=3"`
	Password string `json:"password"  validate:"required"`
	Name     string `json:"name"      validate:"required"`
	NIF      string `json:"nif"       validate:"required,len=9"`
	SetupKey string `json:"setup_key" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		result := "failure"
		if errors.Is(err, domain.ErrUserInactive) {
			result = "inactive"
		}
		metrics.LoginsTotal.WithLabelValues(result).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// RegisterUser creates an account on behalf of the authenticated actor. Which
// roles the actor may assign is decided by the authorization engine: Admins
// may create any role, HR Managers only Employees.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerUserRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/users/register-user [post]
func (h *AuthHandler) RegisterUser(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return domain.ErrInvalidRole
	}

	user, err := h.authService.RegisterUser(c.Request().Context(), actor, ports.RegisterUserInput{
		Username:   req.Username,
		Password:   req.Password,
		Name:       req.Name,
		NIF:        req.NIF,
		Department: req.Department,
		Role:       role,
	})
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// CreateAdmin bootstraps an Admin account. Public route gated by the
// configured setup key.
//
// @Summary      Create an admin account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      createAdminRequest  true  "Admin details plus setup key"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/users/create-admin [post]
func (h *AuthHandler) CreateAdmin(c echo.Context) error {
	var req createAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.RegisterAdmin(c.Request().Context(), ports.RegisterAdminInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		NIF:      req.NIF,
		SetupKey: req.SetupKey,
	})
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// ChangePassword rotates a user's password. The owner must supply the current
// password; an Admin may reset an HR Manager's without it.
//
// @Summary      Change a user's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string                 true  "Target username"
// @Param        body      body      changePasswordRequest  true  "Current and new password"
// @Success      200       {object}  map[string]string
// @Failure      400       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/users/{username}/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	username := c.Param("username")
	if err := h.authService.ChangePassword(c.Request().Context(), actor, username, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "password updated"})
}
