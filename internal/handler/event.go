package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movienight/internal/model"
	"github.com/iliyamo/movienight/internal/service"
)

// EventManager is the part of service.EventService the HTTP layer uses.
type EventManager interface {
	CreateEvent(ctx context.Context, ownerID uint64, in service.EventInput) (model.Event, error)
	UpdateEvent(ctx context.Context, eventID, requesterID uint64, in service.EventInput) (model.Event, error)
	DeleteEvent(ctx context.Context, eventID, requesterID uint64) error
	JoinEvent(ctx context.Context, eventID, userID uint64) (model.Participation, error)
	LeaveEvent(ctx context.Context, eventID, userID uint64) error
	GetEvent(ctx context.Context, eventID, viewerID uint64) (model.Event, error)
	ListParticipants(ctx context.Context, eventID uint64) ([]model.Participant, error)
	ListEvents(ctx context.Context, viewerID uint64) ([]model.Event, error)
	ListOrganizedEvents(ctx context.Context, userID, viewerID uint64) ([]model.Event, error)
	ListJoinedEvents(ctx context.Context, userID, viewerID uint64) ([]model.Event, error)
}

// EventHandler serves /api/events and the per-user event listings.
type EventHandler struct {
	Events EventManager
}

func NewEventHandler(e EventManager) *EventHandler { return &EventHandler{Events: e} }

type eventReq struct {
	CreatedBy       optionalID `json:"createdBy"`
	MovieTitle      string     `json:"movieTitle"`
	Location        string     `json:"location"`
	EventDate       string     `json:"eventDate"`
	Description     string     `json:"description"`
	MaxParticipants *int       `json:"maxParticipants"`
}

func (r eventReq) input() service.EventInput {
	return service.EventInput{
		MovieTitle:      r.MovieTitle,
		Location:        r.Location,
		EventDate:       r.EventDate,
		Description:     r.Description,
		MaxParticipants: r.MaxParticipants,
	}
}

type participationReq struct {
	UserID optionalID `json:"userId"`
}

var success = echo.Map{"success": true}

// List: GET /api/events?userId=
func (h *EventHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	events, err := h.Events.ListEvents(ctx, viewerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// Get: GET /api/events/:id
func (h *EventHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ev, err := h.Events.GetEvent(ctx, id, viewerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}

// Create: POST /api/events
func (h *EventHandler) Create(c echo.Context) error {
	// Bind the body; createdBy may be a number or a numeric string.
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	// The token decides who creates; a createdBy naming someone else is refused.
	uid, err := actingUser(c, req.CreatedBy)
	if err != nil {
		return writeError(c, err)
	}

	// store work is bounded by dbTimeout
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	// Creates the event and enrolls the owner in one transaction.
	ev, err := h.Events.CreateEvent(ctx, uid, req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, ev)
}

// Update: PUT /api/events/:id, owner only.
func (h *EventHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	uid, err := actingUser(c, req.CreatedBy)
	if err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ev, err := h.Events.UpdateEvent(ctx, id, uid, req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ev)
}

// Delete: DELETE /api/events/:id, owner only.
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	uid, err := actingUser(c, optionalID{})
	if err != nil {
		return writeError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Events.DeleteEvent(ctx, id, uid); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, success)
}

// Join: POST /api/events/:id/join
func (h *EventHandler) Join(c echo.Context) error {
	id, uid, err := h.participationTarget(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Events.JoinEvent(ctx, id, uid); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, success)
}

// Leave: DELETE /api/events/:id/leave
func (h *EventHandler) Leave(c echo.Context) error {
	id, uid, err := h.participationTarget(c)
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Events.LeaveEvent(ctx, id, uid); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, success)
}

// participationTarget resolves the event id and the acting user for join
// and leave.  An empty body is fine; userId, when sent, must be the caller.
func (h *EventHandler) participationTarget(c echo.Context) (uint64, uint64, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	var req participationReq
	if err := c.Bind(&req); err != nil {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	uid, err := actingUser(c, req.UserID)
	if err != nil {
		return 0, 0, err
	}
	return id, uid, nil
}

// Participants: GET /api/events/:id/participants
func (h *EventHandler) Participants(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	ps, err := h.Events.ListParticipants(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"participants": ps})
}

// Organized: GET /api/users/:id/events
func (h *EventHandler) Organized(c echo.Context) error {
	return h.userEvents(c, h.Events.ListOrganizedEvents)
}

// Joined: GET /api/users/:id/joined-events
func (h *EventHandler) Joined(c echo.Context) error {
	return h.userEvents(c, h.Events.ListJoinedEvents)
}

func (h *EventHandler) userEvents(c echo.Context, list func(ctx context.Context, userID, viewerID uint64) ([]model.Event, error)) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	events, err := list(ctx, userID, viewerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}
