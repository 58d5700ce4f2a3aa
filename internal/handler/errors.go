package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movienight/internal/service"
)

// writeError maps an error from the service layer onto a status code and
// writes {"error": message}.  Unknown errors are logged and answered 500
// without detail.
func writeError(c echo.Context, err error) error {
	var (
		httpErr *echo.HTTPError
		valErr  *service.ValidationError
	)
	switch {
	case errors.As(err, &httpErr):
		return c.JSON(httpErr.Code, echo.Map{"error": httpMessage(httpErr)})
	case errors.As(err, &valErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": valErr.Msg})
	case errors.Is(err, service.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": service.ErrForbidden.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrCapacityExceeded):
		return c.JSON(http.StatusConflict, echo.Map{"error": service.ErrCapacityExceeded.Error()})
	case errors.Is(err, service.ErrAlreadyJoined):
		return c.JSON(http.StatusConflict, echo.Map{"error": service.ErrAlreadyJoined.Error()})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrUpstream):
		c.Logger().Warnf("upstream: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": service.ErrUpstream.Error()})
	default:
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
}

func httpMessage(e *echo.HTTPError) string {
	if s, ok := e.Message.(string); ok {
		return s
	}
	return http.StatusText(e.Code)
}

// ErrorHandler renders errors that escape handlers (unknown routes, bind
// failures, panics recovered by middleware) in the same JSON shape.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if werr := writeError(c, err); werr != nil {
		c.Logger().Error(werr)
	}
}
