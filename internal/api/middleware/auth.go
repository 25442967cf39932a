package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
)

// RevocationChecker reports whether a username's tokens have been revoked
// (Redis-backed; see infrastructure/db/redis).
type RevocationChecker interface {
	IsRevoked(ctx context.Context, username string) (bool, error)
}

// Auth validates the JWT and injects claims into context. Tokens carrying
// the Inactive role and tokens of revoked users are rejected. A failing
// revocation backend does not block requests; the token's own expiry bounds
// the exposure.
func Auth(jwtSecret string, revoked RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			role, _ := claims["role"].(string)
			if domain.Role(role) == domain.RoleInactive {
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUserInactive.Error())
			}

			username, _ := claims["username"].(string)
			if revoked != nil {
				if isRevoked, err := revoked.IsRevoked(c.Request().Context(), username); err == nil && isRevoked {
					return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrTokenRevoked.Error())
				}
			}

			c.Set("username", claims["username"])
			c.Set("role", claims["role"])
			c.Set("id", claims["id"])
			c.Set("name", claims["name"])
			c.Set("nif", claims["nif"])
			c.Set("department", claims["department"])

			return next(c)
		}
	}
}
