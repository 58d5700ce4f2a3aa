package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movienight/internal/tmdb"
)

const lookupTimeout = 10 * time.Second

// MovieFinder is the part of service.LookupService the HTTP layer uses.
type MovieFinder interface {
	Search(ctx context.Context, query string, page int) (tmdb.Page, error)
	Popular(ctx context.Context, page int) (tmdb.Page, error)
}

// LookupHandler proxies movie lookups to TMDB.
type LookupHandler struct {
	Finder MovieFinder
}

func NewLookupHandler(f MovieFinder) *LookupHandler { return &LookupHandler{Finder: f} }

// Search: GET /api/movies/search?query=&page=
func (h *LookupHandler) Search(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), lookupTimeout)
	defer cancel()

	page, err := h.Finder.Search(ctx, c.QueryParam("query"), queryPage(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Popular: GET /api/movies/popular?page=
func (h *LookupHandler) Popular(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), lookupTimeout)
	defer cancel()

	page, err := h.Finder.Popular(ctx, queryPage(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// queryPage reads ?page=, defaulting to 1.
func queryPage(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
