package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/ports"
)

// DepartmentHandler handles HTTP requests for department operations.
type DepartmentHandler struct {
	service ports.DepartmentService
}

func NewDepartmentHandler(service ports.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{service: service}
}

type createDepartmentRequest struct {
	Name            string   `json:"name"             validate:"required"`
	CanteenDiscount int      `json:"canteen_discount" validate:"gte=0,lte=100"`
	ManagerUsername string   `json:"manager_username"`
	Employees       []string `json:"employees"`
}

type updateDepartmentRequest struct {
	Name            *string   `json:"name"`
	CanteenDiscount *int      `json:"canteen_discount"`
	ManagerUsername *string   `json:"manager_username"`
	Employees       *[]string `json:"employees"`
}

type canteenDiscountResponse struct {
	Department      string `json:"department"`
	CanteenDiscount int    `json:"canteen_discount"`
}

// Create handles POST /api/departments.
//
// @Summary      Create a department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDepartmentRequest  true  "Department details"
// @Success      201   {object}  domain.Department
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/departments [post]
func (h *DepartmentHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createDepartmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dept, err := h.service.Create(c.Request().Context(), actor, ports.CreateDepartmentInput{
		Name:            req.Name,
		CanteenDiscount: req.CanteenDiscount,
		ManagerUsername: req.ManagerUsername,
		Employees:       req.Employees,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dept)
}

// List handles GET /api/departments. Managers see only the departments they
// manage.
//
// @Summary      List departments
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Department
// @Failure      403  {object}  map[string]string
// @Router       /api/departments [get]
func (h *DepartmentHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	depts, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, depts)
}

// Get handles GET /api/departments/:name.
//
// @Summary      Get a department by name
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Department name (case-insensitive)"
// @Success      200   {object}  domain.Department
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/departments/{name} [get]
func (h *DepartmentHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	dept, err := h.service.Get(c.Request().Context(), actor, c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dept)
}

// Update handles PUT /api/departments/:name. Renaming cascades the new name
// to every user assigned to the department.
//
// @Summary      Update a department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string                   true  "Department name (case-insensitive)"
// @Param        body  body      updateDepartmentRequest  true  "Fields to update"
// @Success      200   {object}  domain.Department
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/departments/{name} [put]
func (h *DepartmentHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateDepartmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	dept, err := h.service.Update(c.Request().Context(), actor, c.Param("name"), ports.UpdateDepartmentInput{
		Name:            req.Name,
		CanteenDiscount: req.CanteenDiscount,
		ManagerUsername: req.ManagerUsername,
		Employees:       req.Employees,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dept)
}

// Delete handles DELETE /api/departments/:name. A department still referenced
// by users cannot be removed.
//
// @Summary      Delete a department
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string  true  "Department name (case-insensitive)"
// @Success      200   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/departments/{name} [delete]
func (h *DepartmentHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("name")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "department deleted"})
}

// CanteenDiscount handles GET /api/departments/canteen-discount, resolving the
// discount for the actor's own department.
//
// @Summary      Get the canteen discount for the caller's department
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  canteenDiscountResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/departments/canteen-discount [get]
func (h *DepartmentHandler) CanteenDiscount(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.CanteenDiscount(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, canteenDiscountResponse{
		Department:      result.DepartmentName,
		CanteenDiscount: result.CanteenDiscount,
	})
}
