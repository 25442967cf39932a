package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/authz"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
)

// ctxActor rebuilds the acting identity from the claims injected by the Auth
// middleware. A missing role means the middleware never ran (or the token
// carried no identity); fail fast with 401 before any service call.
func ctxActor(c echo.Context) (authz.Actor, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return authz.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	id, _ := c.Get("id").(string)
	username, _ := c.Get("username").(string)
	department, _ := c.Get("department").(string)
	nif, _ := c.Get("nif").(string)

	return authz.Actor{
		ID:         id,
		Username:   username,
		Role:       domain.Role(role),
		Department: department,
		NIF:        nif,
	}, nil
}
