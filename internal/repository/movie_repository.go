package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/movienight/internal/database"
	"github.com/iliyamo/movienight/internal/model"
)

type MovieRepo struct {
	DB      *sql.DB
	Dialect database.Dialect
}

func NewMovieRepo(db *sql.DB, d database.Dialect) *MovieRepo { return &MovieRepo{DB: db, Dialect: d} }

// Create inserts m and sets its ID.  The same title twice in one list yields ErrDuplicate.
func (r *MovieRepo) Create(ctx context.Context, m *model.MovieEntry) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_movies (user_id, title, movie_type, added_at) VALUES (?,?,?,?)",
		m.UserID, m.Title, string(m.MovieType), m.AddedAt)
	if err != nil {
		if r.Dialect.IsDuplicate(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert movie: %w", err)
	}
	if m.ID, err = lastID(res); err != nil {
		return fmt.Errorf("insert movie: %w", err)
	}
	return nil
}

// Delete removes entry id if it belongs to userID and reports whether it did.
func (r *MovieRepo) Delete(ctx context.Context, userID, id uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM user_movies WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return false, fmt.Errorf("delete movie: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete movie: %w", err)
	}
	return n > 0, nil
}

// ListByUser returns all entries of a user, most recently added first.
func (r *MovieRepo) ListByUser(ctx context.Context, userID uint64) ([]model.MovieEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, title, movie_type, added_at FROM user_movies
		 WHERE user_id = ? ORDER BY added_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	out := []model.MovieEntry{}
	for rows.Next() {
		var (
			m    model.MovieEntry
			kind string
		)
		if err := rows.Scan(&m.ID, &m.UserID, &m.Title, &kind, &m.AddedAt); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		m.MovieType = model.MovieType(kind)
		out = append(out, m)
	}
	return out, rows.Err()
}
