package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iliyamo/movienight/internal/database"
	"github.com/iliyamo/movienight/internal/model"
	"github.com/iliyamo/movienight/internal/repository"
)

// ReviewInput is the body of a review upsert.
type ReviewInput struct {
	MovieTitle string
	Rating     int
	Comment    string
}

// ReviewService keeps at most one review per user and movie title.
type ReviewService struct {
	DB      *sql.DB
	Dialect database.Dialect
	Reviews *repository.ReviewRepo
	Users   *repository.UserRepo
	Now     func() time.Time
}

func NewReviewService(db *sql.DB, d database.Dialect, reviews *repository.ReviewRepo, users *repository.UserRepo) *ReviewService {
	return &ReviewService{DB: db, Dialect: d, Reviews: reviews, Users: users, Now: utcNow}
}

// UpsertReview creates the user's review of a title or replaces its rating
// and comment.  created_at is kept on update.
func (s *ReviewService) UpsertReview(ctx context.Context, userID uint64, in ReviewInput) (model.Review, error) {
	rv := model.Review{
		UserID:     userID,
		MovieTitle: strings.TrimSpace(in.MovieTitle),
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
	}
	switch {
	case rv.MovieTitle == "":
		return model.Review{}, invalidf("movieTitle is required")
	case utf8.RuneCountInString(rv.MovieTitle) > maxTextLen:
		return model.Review{}, invalidf("movieTitle is longer than %d characters", maxTextLen)
	case rv.Rating < 1 || rv.Rating > 5:
		return model.Review{}, invalidf("rating must be between 1 and 5")
	}
	if err := ensureUser(ctx, s.Users, userID); err != nil {
		return model.Review{}, err
	}

	// A concurrent first review of the same title can win the insert; one
	// retry then takes the update path.
	var (
		saved model.Review
		err   error
	)
	for attempt := 0; attempt < 2; attempt++ {
		saved, err = s.upsertOnce(ctx, rv)
		if !errors.Is(err, repository.ErrDuplicate) {
			break
		}
	}
	return saved, err
}

func (s *ReviewService) upsertOnce(ctx context.Context, rv model.Review) (model.Review, error) {
	now := s.Now()
	rv.CreatedAt, rv.UpdatedAt = now, now

	var saved model.Review
	err := withTx(ctx, s.DB, s.Dialect.TxOptions(), func(tx *sql.Tx) error {
		updated, err := s.Reviews.UpdateTx(ctx, tx, rv)
		if err != nil {
			return err
		}
		if !updated {
			if err := s.Reviews.InsertTx(ctx, tx, &rv); err != nil {
				return err
			}
		}
		saved, err = s.Reviews.GetTx(ctx, tx, rv.UserID, rv.MovieTitle)
		return err
	})
	return saved, err
}

// ListReviews returns a user's reviews, most recently updated first.
func (s *ReviewService) ListReviews(ctx context.Context, userID uint64) ([]model.Review, error) {
	if err := ensureUser(ctx, s.Users, userID); err != nil {
		return nil, err
	}
	return s.Reviews.ListByUser(ctx, userID)
}
