package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movienight/internal/model"
	"github.com/iliyamo/movienight/internal/service"
)

// MovieLibrary is the part of service.MovieService the HTTP layer uses.
type MovieLibrary interface {
	AddMovie(ctx context.Context, userID uint64, title, movieType string) (model.MovieEntry, error)
	RemoveMovie(ctx context.Context, userID, movieID uint64) error
	ListMovies(ctx context.Context, userID uint64) (model.MovieLists, error)
}

// ReviewBook is the part of service.ReviewService the HTTP layer uses.
type ReviewBook interface {
	UpsertReview(ctx context.Context, userID uint64, in service.ReviewInput) (model.Review, error)
	ListReviews(ctx context.Context, userID uint64) ([]model.Review, error)
}

// LibraryHandler serves a user's movie lists and reviews under
// /api/users/:id.  Mutating routes sit behind middleware.RequireSelf.
type LibraryHandler struct {
	Movies  MovieLibrary
	Reviews ReviewBook
}

func NewLibraryHandler(m MovieLibrary, r ReviewBook) *LibraryHandler {
	return &LibraryHandler{Movies: m, Reviews: r}
}

type movieReq struct {
	Title     string `json:"title"`
	MovieType string `json:"movieType"`
}

type reviewReq struct {
	MovieTitle string `json:"movieTitle"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// ListMovies: GET /api/users/:id/movies
func (h *LibraryHandler) ListMovies(c echo.Context) error {
	uid, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	lists, err := h.Movies.ListMovies(ctx, uid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, lists)
}

// AddMovie: POST /api/users/:id/movies
func (h *LibraryHandler) AddMovie(c echo.Context) error {
	uid, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	entry, err := h.Movies.AddMovie(ctx, uid, req.Title, req.MovieType)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// RemoveMovie: DELETE /api/users/:id/movies/:movieId
func (h *LibraryHandler) RemoveMovie(c echo.Context) error {
	uid, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	movieID, err := pathID(c, "movieId")
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Movies.RemoveMovie(ctx, uid, movieID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, success)
}

// ListReviews: GET /api/users/:id/reviews
func (h *LibraryHandler) ListReviews(c echo.Context) error {
	uid, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	reviews, err := h.Reviews.ListReviews(ctx, uid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": reviews})
}

// UpsertReview: POST /api/users/:id/reviews
func (h *LibraryHandler) UpsertReview(c echo.Context) error {
	uid, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rv, err := h.Reviews.UpsertReview(ctx, uid, service.ReviewInput{
		MovieTitle: req.MovieTitle,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rv)
}
