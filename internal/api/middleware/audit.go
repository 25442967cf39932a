package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
	"github.com/FelisbertoSilva/RHProjeto/internal/core/ports"
)

// Audit records mutating requests to the audit trail. The event is captured
// after the response is written so the status reflects what the client
// received, including statuses the central error handler resolved from domain
// errors. Read-only methods pass through untouched. A nil recorder disables
// auditing.
func Audit(recorder ports.AuditRecorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if recorder == nil {
				return next(c)
			}
			switch c.Request().Method {
			case echo.POST, echo.PUT, echo.DELETE:
			default:
				return next(c)
			}

			c.Response().After(func() {
				actor, _ := c.Get("username").(string)
				recorder.Record(domain.AuditEvent{
					Actor:    actor,
					Method:   c.Request().Method,
					Path:     c.Path(),
					Status:   c.Response().Status,
					Occurred: time.Now().UTC(),
				})
			})
			return next(c)
		}
	}
}
