package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// Context keys set by JWTAuth and read by handlers.
const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
)

// authUserID returns the authenticated user id, or 0 for anonymous requests.
func authUserID(c echo.Context) uint64 {
	id, _ := c.Get(UserIDKey).(uint64)
	return id
}

// subject names the caller for rate-limit keys: the user id, or "anon".
func subject(c echo.Context) string {
	if id := authUserID(c); id != 0 {
		return strconv.FormatUint(id, 10)
	}
	return "anon"
}
