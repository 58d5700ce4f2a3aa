package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movienight/internal/middleware"
)

// Context keys written by middleware.JWTAuth.
const (
	CtxUserID   = middleware.UserIDKey
	CtxUsername = middleware.UsernameKey
)

var errNoUser = errors.New("invalid user_id in context")

// getUserID returns the user id middleware.JWTAuth stored, which is
// always a non-zero uint64.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get(CtxUserID).(uint64); ok && id != 0 {
		return id, nil
	}
	return 0, errNoUser
}

// viewerID identifies who is looking at a listing: the token user when
// present, otherwise the userId query parameter, otherwise 0.
func viewerID(c echo.Context) uint64 {
	if id, err := getUserID(c); err == nil {
		return id
	}
	if n, err := strconv.ParseUint(strings.TrimSpace(c.QueryParam("userId")), 10, 64); err == nil {
		return n
	}
	return 0
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return n, nil
}

// optionalID is a user id in a request body.  Clients send it either as a
// JSON number or as a numeric string; absent and null leave it unset.
type optionalID struct {
	Set   bool
	Value uint64
}

func (o *optionalID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*o = optionalID{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return errors.New("user id must be a positive integer")
	}
	*o = optionalID{Set: true, Value: n}
	return nil
}

// actingUser returns the token user and rejects a body-supplied id that
// names someone else.
func actingUser(c echo.Context, claimed optionalID) (uint64, error) {
	uid, err := getUserID(c)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
	}
	if claimed.Set && claimed.Value != uid {
		return 0, echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	}
	return uid, nil
}
