package model

import "time"

// Event is a scheduled movie night.  MaxParticipants nil means unlimited.
// CreatorName and ParticipantCount are joined in by read queries;
// IsParticipant is set only when the request identifies a viewer and
// Participants only on the single-event view.
type Event struct {
	ID               uint64        `json:"id"`
	CreatedBy        uint64        `json:"created_by"`
	CreatorName      string        `json:"creator_name"`
	MovieTitle       string        `json:"movie_title"`
	Location         string        `json:"location"`
	EventDate        time.Time     `json:"event_date"`
	Description      string        `json:"description"`
	MaxParticipants  *int          `json:"max_participants"`
	ParticipantCount int           `json:"participant_count"`
	IsParticipant    *bool         `json:"is_participant,omitempty"`
	Participants     []Participant `json:"participants,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
}

// Full reports whether the event has reached its capacity.
func (e Event) Full() bool {
	return e.MaxParticipants != nil && e.ParticipantCount >= *e.MaxParticipants
}

// Participation mirrors a row of `event_participants`.
type Participation struct {
	ID       uint64    `json:"id"`
	EventID  uint64    `json:"event_id"`
	UserID   uint64    `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

// Participant is a participation joined with the user's public fields.
type Participant struct {
	UserID   uint64    `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joined_at"`
}
