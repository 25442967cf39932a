package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/ports"
)

// AuditHandler exposes the audit trail to administrators.
type AuditHandler struct {
	service ports.AuditService
}

func NewAuditHandler(service ports.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// ListByActor handles GET /api/audit/:username.
//
// @Summary      List a user's audit events
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        username  path   string  true   "Username"
// @Param        from      query  string  false  "RFC3339 lower bound (inclusive)"
// @Param        to        query  string  false  "RFC3339 upper bound (exclusive)"
// @Success      200  {array}   domain.AuditEvent
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/audit/{username} [get]
func (h *AuditHandler) ListByActor(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	from, err := parseTimeParam(c.QueryParam("from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "from must be an RFC3339 timestamp")
	}
	to, err := parseTimeParam(c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "to must be an RFC3339 timestamp")
	}

	events, err := h.service.ListByActor(c.Request().Context(), actor, c.Param("username"), from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

func parseTimeParam(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
