package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// RequireSelf lets the request through only when the authenticated user is
// the one named by the path parameter.  It must run after JWTAuth.
func RequireSelf(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := authUserID(c)
			if uid == 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "No token provided"})
			}
			target, err := strconv.ParseUint(c.Param(param), 10, 64)
			if err != nil || target == 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid " + param})
			}
			if target != uid {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Forbidden"})
			}
			return next(c)
		}
	}
}
