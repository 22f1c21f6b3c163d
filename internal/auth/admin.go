package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"cultofdrive/internal/errors"
)

// AdminKeyHeader carries the shared admin secret.
const AdminKeyHeader = "x-admin-key"

// AdminKey rejects requests whose x-admin-key header does not match key.
// An empty key rejects everything.
func AdminKey(key string) echo.MiddlewareFunc {
	expected := []byte(key)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := c.Request().Header.Get(AdminKeyHeader)
			if len(expected) == 0 || got == "" || subtle.ConstantTimeCompare([]byte(got), expected) != 1 {
				return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{Error: errors.ErrUnauthorized.Error()})
			}
			return next(c)
		}
	}
}
