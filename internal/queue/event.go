// Package queue defines the activity messages exchanged over RabbitMQ and
// the publisher and consumer that move them.
package queue

import "time"

// Action names what happened to an event.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
	ActionJoined  Action = "joined"
	ActionLeft    Action = "left"
)

// ActivityEvent is published after an event mutation commits.  It carries
// enough for downstream consumers to log or notify without querying the
// primary database.
type ActivityEvent struct {
	Action           Action    `json:"action"`
	EventID          uint64    `json:"event_id"`
	UserID           uint64    `json:"user_id"` // acting user
	MovieTitle       string    `json:"movie_title"`
	EventDate        time.Time `json:"event_date"`
	ParticipantCount int       `json:"participant_count"`
	MaxParticipants  *int      `json:"max_participants,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// RoutingKey is the topic key the event is published under.
func (e ActivityEvent) RoutingKey() string { return "event." + string(e.Action) }

// bindingKey matches every activity routing key.
const bindingKey = "event.#"
