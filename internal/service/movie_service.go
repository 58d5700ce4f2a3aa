package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iliyamo/movienight/internal/model"
	"github.com/iliyamo/movienight/internal/repository"
)

// MovieService manages per-user favorite and to-watch lists.
type MovieService struct {
	Movies *repository.MovieRepo
	Users  *repository.UserRepo
	Now    func() time.Time
}

func NewMovieService(movies *repository.MovieRepo, users *repository.UserRepo) *MovieService {
	return &MovieService{Movies: movies, Users: users, Now: utcNow}
}

func (s *MovieService) AddMovie(ctx context.Context, userID uint64, title, movieType string) (model.MovieEntry, error) {
	title = strings.TrimSpace(title)
	kind := model.MovieType(strings.TrimSpace(movieType))
	switch {
	case title == "":
		return model.MovieEntry{}, invalidf("title is required")
	case utf8.RuneCountInString(title) > maxTextLen:
		return model.MovieEntry{}, invalidf("title is longer than %d characters", maxTextLen)
	case !kind.Valid():
		return model.MovieEntry{}, invalidf("movieType must be %q or %q", model.MovieFavorite, model.MovieToWatch)
	}
	if err := ensureUser(ctx, s.Users, userID); err != nil {
		return model.MovieEntry{}, err
	}

	m := model.MovieEntry{UserID: userID, Title: title, MovieType: kind, AddedAt: s.Now()}
	if err := s.Movies.Create(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.MovieEntry{}, ErrMovieExists
		}
		return model.MovieEntry{}, err
	}
	return m, nil
}

// RemoveMovie deletes one of the user's entries.  Missing entries and
// entries of other users are left alone without error.
func (s *MovieService) RemoveMovie(ctx context.Context, userID, movieID uint64) error {
	_, err := s.Movies.Delete(ctx, userID, movieID)
	return err
}

func (s *MovieService) ListMovies(ctx context.Context, userID uint64) (model.MovieLists, error) {
	if err := ensureUser(ctx, s.Users, userID); err != nil {
		return model.MovieLists{}, err
	}
	entries, err := s.Movies.ListByUser(ctx, userID)
	if err != nil {
		return model.MovieLists{}, err
	}
	lists := model.MovieLists{Favorites: []model.MovieEntry{}, ToWatch: []model.MovieEntry{}}
	for _, m := range entries {
		switch m.MovieType {
		case model.MovieFavorite:
			lists.Favorites = append(lists.Favorites, m)
		case model.MovieToWatch:
			lists.ToWatch = append(lists.ToWatch, m)
		}
	}
	return lists, nil
}
