package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movienight/internal/service"
)

// TokenValidator resolves a raw bearer token to its user.
type TokenValidator interface {
	ValidateToken(raw string) (service.TokenUser, error)
}

// bearer returns the token in the Authorization header, or "" when the
// header is absent or not a Bearer credential.
func bearer(c echo.Context) string {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(auth) < len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

func setUser(c echo.Context, u service.TokenUser) {
	c.Set(UserIDKey, u.ID)
	c.Set(UsernameKey, u.Username)
}

// JWTAuth rejects requests without a valid access token and stores the
// token's user id (uint64) and username in the context.
func JWTAuth(v TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearer(c)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": service.ErrMissingToken.Error()})
			}
			u, err := v.ValidateToken(raw)
			if err != nil {
				msg := service.ErrInvalidToken.Error()
				if errors.Is(err, service.ErrMissingToken) {
					msg = service.ErrMissingToken.Error()
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
			}
			setUser(c, u)
			return next(c)
		}
	}
}

// OptionalJWTAuth identifies the caller when a valid token is sent and
// lets anonymous requests through.  A bad token is treated as no token.
func OptionalJWTAuth(v TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw := bearer(c); raw != "" {
				if u, err := v.ValidateToken(raw); err == nil {
					setUser(c, u)
				}
			}
			return next(c)
		}
	}
}
