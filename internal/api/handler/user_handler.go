package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/FelisbertoSilva/RHProjeto/internal/api/metrics"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/ports"
)

// UserHandler handles HTTP requests for user profile operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateUserRequest struct {
	Name       *string  `json:"name"`
	NIF        *string  `json:"nif"`
	Role       *string  `json:"role"`
	Department *string  `json:"department"`
	Balance    *float64 `json:"balance"`
}

type updateBalanceRequest struct {
	Balance float64 `json:"balance" validate:"gte=0"`
}

type balanceResponse struct {
	NIF     string  `json:"nif"`
	Balance float64 `json:"balance"`
}

// List handles GET /api/users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	users, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// GetByUsername handles GET /api/users/username/:username.
//
// @Summary      Get a user by username
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  domain.User
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/users/username/{username} [get]
func (h *UserHandler) GetByUsername(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetByUsername(c.Request().Context(), actor, c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetByNIF handles GET /api/users/by-nif/:nif.
//
// @Summary      Get a user by NIF
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        nif  path      string  true  "Tax identification number"
// @Success      200  {object}  domain.User
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/by-nif/{nif} [get]
func (h *UserHandler) GetByNIF(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetByNIF(c.Request().Context(), actor, c.Param("nif"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// ListByDepartment handles GET /api/users/by-department/:name.
//
// @Summary      List users in a department
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Department name"
// @Success      200   {array}   domain.User
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/users/by-department/{name} [get]
func (h *UserHandler) ListByDepartment(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListByDepartment(c.Request().Context(), actor, c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Update handles PUT /api/users/username/:username. Fields the actor may not
// touch are silently dropped; a balance write on someone else's record is
// rejected outright.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string             true  "Username"
// @Param        body      body      updateUserRequest  true  "Fields to update"
// @Success      200       {object}  domain.User
// @Failure      400       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/users/username/{username} [put]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Update(c.Request().Context(), actor, c.Param("username"), ports.UpdateUserInput{
		Name:       req.Name,
		NIF:        req.NIF,
		Role:       req.Role,
		Department: req.Department,
		Balance:    req.Balance,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Inactivate handles PUT /api/users/inactivate/:username.
//
// @Summary      Inactivate a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/users/inactivate/{username} [put]
func (h *UserHandler) Inactivate(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Inactivate(c.Request().Context(), actor, c.Param("username")); err != nil {
		return err
	}

	metrics.UsersInactivatedTotal.Inc()
	return c.JSON(http.StatusOK, map[string]string{"message": "user inactivated"})
}

// GetBalance handles GET /api/users/balance/:nif.
//
// @Summary      Get a user's balance by NIF
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        nif  path      string  true  "Tax identification number"
// @Success      200  {object}  balanceResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/balance/{nif} [get]
func (h *UserHandler) GetBalance(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	nif := c.Param("nif")
	balance, err := h.service.GetBalanceByNIF(c.Request().Context(), actor, nif)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balanceResponse{NIF: nif, Balance: balance})
}

// UpdateBalance handles PUT /api/users/balance/:nif.
//
// @Summary      Update a user's balance by NIF
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        nif   path      string                true  "Tax identification number"
// @Param        body  body      updateBalanceRequest  true  "New balance"
// @Success      200   {object}  balanceResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/users/balance/{nif} [put]
func (h *UserHandler) UpdateBalance(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateBalanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	nif := c.Param("nif")
	balance, err := h.service.UpdateBalanceByNIF(c.Request().Context(), actor, nif, req.Balance)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balanceResponse{NIF: nif, Balance: balance})
}
