package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/movienight/internal/database"
	"github.com/iliyamo/movienight/internal/model"
)

// ParticipantRepo persists event_participants rows.  All writes happen
// inside the event engine's transactions.
type ParticipantRepo struct {
	DB      *sql.DB
	Dialect database.Dialect
}

func NewParticipantRepo(db *sql.DB, d database.Dialect) *ParticipantRepo {
	return &ParticipantRepo{DB: db, Dialect: d}
}

func (r *ParticipantRepo) CountTx(ctx context.Context, tx *sql.Tx, eventID uint64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM event_participants WHERE event_id = ?", eventID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return n, nil
}

func (r *ParticipantRepo) ExistsTx(ctx context.Context, tx *sql.Tx, eventID, userID uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx,
		"SELECT 1 FROM event_participants WHERE event_id = ? AND user_id = ? LIMIT 1", eventID, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check participant: %w", err)
	}
	return true, nil
}

// InsertTx adds p and sets its ID.  An existing (event, user) pair yields ErrDuplicate.
func (r *ParticipantRepo) InsertTx(ctx context.Context, tx *sql.Tx, p *model.Participation) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO event_participants (event_id, user_id, joined_at) VALUES (?,?,?)",
		p.EventID, p.UserID, p.JoinedAt)
	if err != nil {
		if r.Dialect.IsDuplicate(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert participant: %w", err)
	}
	if p.ID, err = lastID(res); err != nil {
		return fmt.Errorf("insert participant: %w", err)
	}
	return nil
}

// DeleteTx removes one participation and reports whether a row existed.
func (r *ParticipantRepo) DeleteTx(ctx context.Context, tx *sql.Tx, eventID, userID uint64) (bool, error) {
	res, err := tx.ExecContext(ctx, "DELETE FROM event_participants WHERE event_id = ? AND user_id = ?", eventID, userID)
	if err != nil {
		return false, fmt.Errorf("delete participant: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete participant: %w", err)
	}
	return n > 0, nil
}

// DeleteByEventTx removes every participation of an event.
func (r *ParticipantRepo) DeleteByEventTx(ctx context.Context, tx *sql.Tx, eventID uint64) (int64, error) {
	res, err := tx.ExecContext(ctx, "DELETE FROM event_participants WHERE event_id = ?", eventID)
	if err != nil {
		return 0, fmt.Errorf("delete participants: %w", err)
	}
	return res.RowsAffected()
}

// ListByEvent returns participants in join order.
func (r *ParticipantRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Participant, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT p.user_id, u.username, u.email, p.joined_at
		 FROM event_participants p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.event_id = ?
		 ORDER BY p.joined_at ASC, p.id ASC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	out := []model.Participant{}
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(&p.UserID, &p.Username, &p.Email, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
