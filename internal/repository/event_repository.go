package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/movienight/internal/database"
	"github.com/iliyamo/movienight/internal/model"
)

// EventRepo persists events.  Methods ending in Tx run inside a caller
// owned transaction; the others read through the pool.
type EventRepo struct {
	DB      *sql.DB
	Dialect database.Dialect
}

func NewEventRepo(db *sql.DB, d database.Dialect) *EventRepo { return &EventRepo{DB: db, Dialect: d} }

// eventView selects an event with its creator name, participant count and
// whether the user bound to the first placeholder takes part.
const eventView = `SELECT e.id, e.created_by, u.username, e.movie_title, e.location, e.event_date,
       e.description, e.max_participants, e.created_at,
       (SELECT COUNT(*) FROM event_participants p WHERE p.event_id = e.id),
       EXISTS (SELECT 1 FROM event_participants v WHERE v.event_id = e.id AND v.user_id = ?)
FROM events e
JOIN users u ON u.id = e.created_by`

const eventOrder = " ORDER BY e.event_date ASC, e.id ASC"

// CreateTx inserts ev and sets its ID.
func (r *EventRepo) CreateTx(ctx context.Context, tx *sql.Tx, ev *model.Event) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO events (created_by, movie_title, location, event_date, description, max_participants, created_at)
		 VALUES (?,?,?,?,?,?,?)`,
		ev.CreatedBy, ev.MovieTitle, ev.Location, ev.EventDate, ev.Description, nullInt(ev.MaxParticipants), ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	if ev.ID, err = lastID(res); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// LockByIDTx loads the bare event row and holds a write lock on it until
// tx ends.  Concurrent participation changes on one event queue up here.
func (r *EventRepo) LockByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Event, error) {
	var (
		ev       model.Event
		capacity sql.NullInt64
	)
	err := tx.QueryRowContext(ctx,
		`SELECT id, created_by, movie_title, location, event_date, description, max_participants, created_at
		 FROM events WHERE id = ?`+r.Dialect.ForUpdate(), id).
		Scan(&ev.ID, &ev.CreatedBy, &ev.MovieTitle, &ev.Location, &ev.EventDate, &ev.Description, &capacity, &ev.CreatedAt)
	if err != nil {
		return model.Event{}, notFound(err)
	}
	ev.MaxParticipants = intPtr(capacity)
	return ev, nil
}

// UpdateTx overwrites the editable fields of ev.
func (r *EventRepo) UpdateTx(ctx context.Context, tx *sql.Tx, ev model.Event) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE events SET movie_title = ?, location = ?, event_date = ?, description = ?, max_participants = ?
		 WHERE id = ?`,
		ev.MovieTitle, ev.Location, ev.EventDate, ev.Description, nullInt(ev.MaxParticipants), ev.ID)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// DeleteTx removes the event row.
func (r *EventRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// GetByID returns one event with derived fields.  viewer 0 means anonymous.
func (r *EventRepo) GetByID(ctx context.Context, id, viewer uint64) (model.Event, error) {
	rows, err := r.DB.QueryContext(ctx, eventView+" WHERE e.id = ?", viewer, id)
	if err != nil {
		return model.Event{}, fmt.Errorf("get event: %w", err)
	}
	events, err := scanEvents(rows, viewer)
	if err != nil {
		return model.Event{}, err
	}
	if len(events) == 0 {
		return model.Event{}, ErrNotFound
	}
	return events[0], nil
}

// List returns all events ordered by date.
func (r *EventRepo) List(ctx context.Context, viewer uint64) ([]model.Event, error) {
	rows, err := r.DB.QueryContext(ctx, eventView+eventOrder, viewer)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return scanEvents(rows, viewer)
}

// ListByCreator returns the events organized by creatorID.
func (r *EventRepo) ListByCreator(ctx context.Context, creatorID, viewer uint64) ([]model.Event, error) {
	rows, err := r.DB.QueryContext(ctx, eventView+" WHERE e.created_by = ?"+eventOrder, viewer, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list events by creator: %w", err)
	}
	return scanEvents(rows, viewer)
}

// ListJoined returns the events userID takes part in.
func (r *EventRepo) ListJoined(ctx context.Context, userID, viewer uint64) ([]model.Event, error) {
	rows, err := r.DB.QueryContext(ctx,
		eventView+" WHERE e.id IN (SELECT j.event_id FROM event_participants j WHERE j.user_id = ?)"+eventOrder,
		viewer, userID)
	if err != nil {
		return nil, fmt.Errorf("list joined events: %w", err)
	}
	return scanEvents(rows, viewer)
}

func scanEvents(rows *sql.Rows, viewer uint64) ([]model.Event, error) {
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		var (
			ev       model.Event
			capacity sql.NullInt64
			joined   bool
		)
		if err := rows.Scan(&ev.ID, &ev.CreatedBy, &ev.CreatorName, &ev.MovieTitle, &ev.Location, &ev.EventDate,
			&ev.Description, &capacity, &ev.CreatedAt, &ev.ParticipantCount, &joined); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.MaxParticipants = intPtr(capacity)
		if viewer != 0 {
			ev.IsParticipant = &joined
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
