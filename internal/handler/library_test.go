package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movienight/internal/model"
	"github.com/iliyamo/movienight/internal/service"
	"github.com/iliyamo/movienight/internal/tmdb"
)

func TestLibraryHandler_Movies(t *testing.T) {
	movies := new(mockMovies)
	movies.On("AddMovie", mock.Anything, uint64(3), "Heat", "favorite").
		Return(model.MovieEntry{ID: 9, UserID: 3, Title: "Heat", MovieType: model.MovieFavorite}, nil)
	movies.On("ListMovies", mock.Anything, uint64(3)).
		Return(model.MovieLists{Favorites: []model.MovieEntry{{ID: 9}}, ToWatch: []model.MovieEntry{}}, nil)
	movies.On("RemoveMovie", mock.Anything, uint64(3), uint64(9)).Return(nil)
	h := NewLibraryHandler(movies, new(mockReviews))

	c, rec := newCtx(http.MethodPost, "/api/users/3/movies", `{"title":"Heat","movieType":"favorite"}`, 3)
	withParams(c, "id", "3")
	require.NoError(t, h.AddMovie(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "favorite", decode(t, rec)["movie_type"])

	c, rec = newCtx(http.MethodGet, "/api/users/3/movies", "", 0)
	withParams(c, "id", "3")
	require.NoError(t, h.ListMovies(c))
	body := decode(t, rec)
	assert.Len(t, body["favorites"], 1)
	assert.Len(t, body["toWatch"], 0)

	c, rec = newCtx(http.MethodDelete, "/api/users/3/movies/9", "", 3)
	withParams(c, "id", "3", "movieId", "9")
	require.NoError(t, h.RemoveMovie(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	movies.AssertExpectations(t)
}

func TestLibraryHandler_AddDuplicateMovie(t *testing.T) {
	movies := new(mockMovies)
	movies.On("AddMovie", mock.Anything, uint64(3), "Heat", "to_watch").Return(model.MovieEntry{}, service.ErrMovieExists)

	c, rec := newCtx(http.MethodPost, "/api/users/3/movies", `{"title":"Heat","movieType":"to_watch"}`, 3)
	withParams(c, "id", "3")
	require.NoError(t, NewLibraryHandler(movies, nil).AddMovie(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLibraryHandler_Reviews(t *testing.T) {
	reviews := new(mockReviews)
	in := service.ReviewInput{MovieTitle: "Heat", Rating: 5, Comment: "tense"}
	reviews.On("UpsertReview", mock.Anything, uint64(3), in).
		Return(model.Review{ID: 1, UserID: 3, MovieTitle: "Heat", Rating: 5, Comment: "tense"}, nil)
	reviews.On("ListReviews", mock.Anything, uint64(3)).Return([]model.Review{{ID: 1}}, nil)
	h := NewLibraryHandler(nil, reviews)

	c, rec := newCtx(http.MethodPost, "/api/users/3/reviews", `{"movieTitle":"Heat","rating":5,"comment":"tense"}`, 3)
	withParams(c, "id", "3")
	require.NoError(t, h.UpsertReview(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 5, decode(t, rec)["rating"])

	c, rec = newCtx(http.MethodGet, "/api/users/3/reviews", "", 0)
	withParams(c, "id", "3")
	require.NoError(t, h.ListReviews(c))
	assert.Len(t, decode(t, rec)["reviews"], 1)
	reviews.AssertExpectations(t)
}

func TestLookupHandler(t *testing.T) {
	f := new(mockFinder)
	f.On("Search", mock.Anything, "heat", 2).Return(tmdb.Page{Page: 2, Results: []tmdb.Movie{{ID: 949, Title: "Heat"}}}, nil)
	f.On("Popular", mock.Anything, 1).Return(tmdb.Page{}, service.ErrUpstream)
	h := NewLookupHandler(f)

	c, rec := newCtx(http.MethodGet, "/api/movies/search?query=heat&page=2", "", 0)
	require.NoError(t, h.Search(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode(t, rec)["page"])

	c, rec = newCtx(http.MethodGet, "/api/movies/popular?page=zero", "", 0)
	require.NoError(t, h.Popular(c))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Movie lookup unavailable", decode(t, rec)["error"])
	f.AssertExpectations(t)
}
