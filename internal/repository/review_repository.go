package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/movienight/internal/database"
	"github.com/iliyamo/movienight/internal/model"
)

type ReviewRepo struct {
	DB      *sql.DB
	Dialect database.Dialect
}

func NewReviewRepo(db *sql.DB, d database.Dialect) *ReviewRepo { return &ReviewRepo{DB: db, Dialect: d} }

const reviewColumns = "id, user_id, movie_title, rating, comment, created_at, updated_at"

// UpdateTx rewrites rating, comment and updated_at of the (user, title)
// review and reports whether one existed.
func (r *ReviewRepo) UpdateTx(ctx context.Context, tx *sql.Tx, rv model.Review) (bool, error) {
	res, err := tx.ExecContext(ctx,
		"UPDATE movie_reviews SET rating = ?, comment = ?, updated_at = ? WHERE user_id = ? AND movie_title = ?",
		rv.Rating, rv.Comment, rv.UpdatedAt, rv.UserID, rv.MovieTitle)
	if err != nil {
		return false, fmt.Errorf("update review: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update review: %w", err)
	}
	return n > 0, nil
}

// InsertTx adds rv.  An existing (user, title) pair yields ErrDuplicate.
func (r *ReviewRepo) InsertTx(ctx context.Context, tx *sql.Tx, rv *model.Review) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO movie_reviews (user_id, movie_title, rating, comment, created_at, updated_at)
		 VALUES (?,?,?,?,?,?)`,
		rv.UserID, rv.MovieTitle, rv.Rating, rv.Comment, rv.CreatedAt, rv.UpdatedAt)
	if err != nil {
		if r.Dialect.IsDuplicate(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert review: %w", err)
	}
	if rv.ID, err = lastID(res); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// GetTx reads the (user, title) review inside tx.
func (r *ReviewRepo) GetTx(ctx context.Context, tx *sql.Tx, userID uint64, title string) (model.Review, error) {
	return getReview(ctx, tx, userID, title)
}

func getReview(ctx context.Context, q queryer, userID uint64, title string) (model.Review, error) {
	var rv model.Review
	err := q.QueryRowContext(ctx,
		"SELECT "+reviewColumns+" FROM movie_reviews WHERE user_id = ? AND movie_title = ?", userID, title).
		Scan(&rv.ID, &rv.UserID, &rv.MovieTitle, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return model.Review{}, notFound(err)
	}
	return rv, nil
}

// ListByUser returns a user's reviews, most recently touched first.
func (r *ReviewRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Review, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+reviewColumns+" FROM movie_reviews WHERE user_id = ? ORDER BY updated_at DESC, created_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := []model.Review{}
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.MovieTitle, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
