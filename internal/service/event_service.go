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
	"github.com/iliyamo/movienight/internal/queue"
	"github.com/iliyamo/movienight/internal/repository"
)

const (
	maxTextLen = 255
	// maxCapacity keeps capacities well inside the INT columns of both stores.
	maxCapacity = 100000
)

// eventDateLayouts are tried in order.  Layouts without a zone are UTC.
var eventDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04"}

// EventInput carries the editable fields of an event as received from a
// client.  MaxParticipants nil means unlimited.
type EventInput struct {
	MovieTitle      string
	Location        string
	EventDate       string
	Description     string
	MaxParticipants *int
}

// EventService is the participation engine.  Every join, leave, update and
// delete locks the event row first, so capacity checks and writes on one
// event never interleave.
type EventService struct {
	DB           *sql.DB
	Dialect      database.Dialect
	Events       *repository.EventRepo
	Participants *repository.ParticipantRepo
	Users        *repository.UserRepo
	Activity     ActivityPublisher
	Now          func() time.Time
}

func NewEventService(db *sql.DB, d database.Dialect, events *repository.EventRepo, parts *repository.ParticipantRepo,
	users *repository.UserRepo, activity ActivityPublisher) *EventService {
	if activity == nil {
		activity = NopPublisher{}
	}
	return &EventService{DB: db, Dialect: d, Events: events, Participants: parts, Users: users, Activity: activity, Now: utcNow}
}

// ParseEventDate accepts RFC 3339 or a zone-less local date-time, which is
// taken as UTC.
func ParseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, invalidf("eventDate is required")
	}
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(time.Microsecond), nil
		}
	}
	return time.Time{}, invalidf("eventDate must be an ISO 8601 date-time, got %q", s)
}

func (in EventInput) validate() (model.Event, error) {
	ev := model.Event{
		MovieTitle:      strings.TrimSpace(in.MovieTitle),
		Location:        strings.TrimSpace(in.Location),
		Description:     strings.TrimSpace(in.Description),
		MaxParticipants: in.MaxParticipants,
	}
	switch {
	case ev.MovieTitle == "":
		return model.Event{}, invalidf("movieTitle is required")
	case utf8.RuneCountInString(ev.MovieTitle) > maxTextLen:
		return model.Event{}, invalidf("movieTitle is longer than %d characters", maxTextLen)
	case ev.Location == "":
		return model.Event{}, invalidf("location is required")
	case utf8.RuneCountInString(ev.Location) > maxTextLen:
		return model.Event{}, invalidf("location is longer than %d characters", maxTextLen)
	case ev.MaxParticipants != nil && *ev.MaxParticipants < 1:
		return model.Event{}, invalidf("maxParticipants must be at least 1")
	case ev.MaxParticipants != nil && *ev.MaxParticipants > maxCapacity:
		return model.Event{}, invalidf("maxParticipants must be at most %d", maxCapacity)
	}
	date, err := ParseEventDate(in.EventDate)
	if err != nil {
		return model.Event{}, err
	}
	ev.EventDate = date
	return ev, nil
}

// CreateEvent stores a new event and enrolls its owner in the same
// transaction.
func (s *EventService) CreateEvent(ctx context.Context, ownerID uint64, in EventInput) (model.Event, error) {
	ev, err := in.validate()
	if err != nil {
		return model.Event{}, err
	}
	if err := ensureUser(ctx, s.Users, ownerID); err != nil {
		return model.Event{}, err
	}
	now := s.Now()
	ev.CreatedBy = ownerID
	ev.CreatedAt = now

	err = withTx(ctx, s.DB, s.Dialect.TxOptions(), func(tx *sql.Tx) error {
		if err := s.Events.CreateTx(ctx, tx, &ev); err != nil {
			return err
		}
		return s.Participants.InsertTx(ctx, tx, &model.Participation{EventID: ev.ID, UserID: ownerID, JoinedAt: now})
	})
	if err != nil {
		return model.Event{}, err
	}

	ev.ParticipantCount = 1
	s.publish(ctx, queue.ActionCreated, ev, ownerID)
	return s.Events.GetByID(ctx, ev.ID, ownerID)
}

// JoinEvent adds userID to the event.  Capacity is checked before
// membership, so a full event reports CapacityExceeded even to members.
func (s *EventService) JoinEvent(ctx context.Context, eventID, userID uint64) (model.Participation, error) {
	if err := ensureUser(ctx, s.Users, userID); err != nil {
		return model.Participation{}, err
	}
	var (
		ev model.Event
		p  = model.Participation{EventID: eventID, UserID: userID}
	)
	err := withTx(ctx, s.DB, s.Dialect.TxOptions(), func(tx *sql.Tx) error {
		var err error
		// Lock first; the count below is stable until commit.
		if ev, err = s.lockEvent(ctx, tx, eventID); err != nil {
			return err
		}
		if ev.ParticipantCount, err = s.Participants.CountTx(ctx, tx, eventID); err != nil {
			return err
		}
		// Nil capacity never fills.
		if ev.Full() {
			return ErrCapacityExceeded
		}
		joined, err := s.Participants.ExistsTx(ctx, tx, eventID, userID)
		if err != nil {
			return err
		}
		if joined {
			return ErrAlreadyJoined
		}
		p.JoinedAt = s.Now()
		if err := s.Participants.InsertTx(ctx, tx, &p); err != nil {
			// UNIQUE(event_id, user_id) backs up the check above.
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrAlreadyJoined
			}
			return err
		}
		ev.ParticipantCount++
		return nil
	})
	if err != nil {
		return model.Participation{}, err
	}

	s.publish(ctx, queue.ActionJoined, ev, userID)
	return p, nil
}

// LeaveEvent removes userID from the event.  Leaving an event one never
// joined succeeds without effect; leaving a deleted event is NotFound.
func (s *EventService) LeaveEvent(ctx context.Context, eventID, userID uint64) error {
	var (
		ev      model.Event
		removed bool
	)
	err := withTx(ctx, s.DB, s.Dialect.TxOptions(), func(tx *sql.Tx) error {
		var err error
		if ev, err = s.lockEvent(ctx, tx, eventID); err != nil {
			return err
		}
		if removed, err = s.Participants.DeleteTx(ctx, tx, eventID, userID); err != nil {
			return err
		}
		ev.ParticipantCount, err = s.Participants.CountTx(ctx, tx, eventID)
		return err
	})
	if err != nil {
		return err
	}

	if removed {
		s.publish(ctx, queue.ActionLeft, ev, userID)
	}
	return nil
}

// UpdateEvent replaces the editable fields of an event owned by requesterID.
func (s *EventService) UpdateEvent(ctx context.Context, eventID, requesterID uint64, in EventInput) (model.Event, error) {
	changes, err := in.validate()
	if err != nil {
		return model.Event{}, err
	}
	var ev model.Event
	err = withTx(ctx, s.DB, s.Dialect.TxOptions(), func(tx *sql.Tx) error {
		var err error
		if ev, err = s.lockEvent(ctx, tx, eventID); err != nil {
			return err
		}
		if ev.CreatedBy != requesterID {
			return ErrForbidden
		}
		if ev.ParticipantCount, err = s.Participants.CountTx(ctx, tx, eventID); err != nil {
			return err
		}
		// capacity may not drop below the current head count
		if changes.MaxParticipants != nil && ev.ParticipantCount > *changes.MaxParticipants {
			return ErrCapacityBelowCount
		}
		ev.MovieTitle = changes.MovieTitle
		ev.Location = changes.Location
		ev.EventDate = changes.EventDate
		ev.Description = changes.Description
		ev.MaxParticipants = changes.MaxParticipants
		return s.Events.UpdateTx(ctx, tx, ev)
	})
	if err != nil {
		return model.Event{}, err
	}

	s.publish(ctx, queue.ActionUpdated, ev, requesterID)
	return s.Events.GetByID(ctx, eventID, requesterID)
}

// DeleteEvent removes an event owned by requesterID and all its
// participations.
func (s *EventService) DeleteEvent(ctx context.Context, eventID, requesterID uint64) error {
	var ev model.Event
	err := withTx(ctx, s.DB, s.Dialect.TxOptions(), func(tx *sql.Tx) error {
		var err error
		if ev, err = s.lockEvent(ctx, tx, eventID); err != nil {
			return err
		}
		if ev.CreatedBy != requesterID {
			return ErrForbidden
		}
		// participations first, then the event row
		if _, err := s.Participants.DeleteByEventTx(ctx, tx, eventID); err != nil {
			return err
		}
		return s.Events.DeleteTx(ctx, tx, eventID)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, queue.ActionDeleted, ev, requesterID)
	return nil
}

// GetEvent returns one event with its participant list.
func (s *EventService) GetEvent(ctx context.Context, eventID, viewerID uint64) (model.Event, error) {
	ev, err := s.Events.GetByID(ctx, eventID, viewerID)
	if err != nil {
		return model.Event{}, eventErr(err)
	}
	if ev.Participants, err = s.Participants.ListByEvent(ctx, eventID); err != nil {
		return model.Event{}, err
	}
	return ev, nil
}

// ListParticipants returns the participants of an event in join order.
func (s *EventService) ListParticipants(ctx context.Context, eventID uint64) ([]model.Participant, error) {
	if _, err := s.Events.GetByID(ctx, eventID, 0); err != nil {
		return nil, eventErr(err)
	}
	return s.Participants.ListByEvent(ctx, eventID)
}

// ListEvents returns every event by date.  viewerID 0 is anonymous.
func (s *EventService) ListEvents(ctx context.Context, viewerID uint64) ([]model.Event, error) {
	return s.Events.List(ctx, viewerID)
}

// ListOrganizedEvents returns the events created by userID.
func (s *EventService) ListOrganizedEvents(ctx context.Context, userID, viewerID uint64) ([]model.Event, error) {
	if err := ensureUser(ctx, s.Users, userID); err != nil {
		return nil, err
	}
	return s.Events.ListByCreator(ctx, userID, viewerID)
}

// ListJoinedEvents returns the events userID takes part in.
func (s *EventService) ListJoinedEvents(ctx context.Context, userID, viewerID uint64) ([]model.Event, error) {
	if err := ensureUser(ctx, s.Users, userID); err != nil {
		return nil, err
	}
	return s.Events.ListJoined(ctx, userID, viewerID)
}

func (s *EventService) lockEvent(ctx context.Context, tx *sql.Tx, id uint64) (model.Event, error) {
	ev, err := s.Events.LockByIDTx(ctx, tx, id)
	if err != nil {
		return model.Event{}, eventErr(err)
	}
	return ev, nil
}

func (s *EventService) publish(ctx context.Context, action queue.Action, ev model.Event, actor uint64) {
	notify(ctx, s.Activity, queue.ActivityEvent{
		Action:           action,
		EventID:          ev.ID,
		UserID:           actor,
		MovieTitle:       ev.MovieTitle,
		EventDate:        ev.EventDate,
		ParticipantCount: ev.ParticipantCount,
		MaxParticipants:  ev.MaxParticipants,
		OccurredAt:       s.Now(),
	})
}

func eventErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrEventNotFound
	}
	return err
}

func ensureUser(ctx context.Context, users *repository.UserRepo, id uint64) error {
	if _, err := users.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
