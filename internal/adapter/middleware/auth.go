package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ServiceTokenMiddleware guards service-to-service routes with a static
// bearer token. Comparison is constant-time.
func ServiceTokenMiddleware(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			got := strings.TrimSpace(strings.TrimPrefix(auth, prefix))
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid service token"})
			}
			return next(c)
		}
	}
}
