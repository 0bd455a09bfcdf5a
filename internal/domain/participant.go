package domain

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyJoined is returned when a user is already a participant of an event.
var ErrAlreadyJoined = errors.New("already a participant")

// ErrAlreadySigned is returned when a user already signed attendance for an event.
var ErrAlreadySigned = errors.New("attendance already signed")

// EventParticipant records that a user joined an event, unique per
// (event, user) pair.
// swagger:model EventParticipant
type EventParticipant struct {
	EventID  string    `json:"event_id"`
	UserID   string    `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

// UserSignature is an attendance signature for an event, unique per
// (event, user) pair. Collected when the event requires signatures.
// swagger:model UserSignature
type UserSignature struct {
	EventID  string    `json:"event_id"`
	UserID   string    `json:"user_id"`
	SignedAt time.Time `json:"signed_at"`
}

// ParticipantRepository defines storage operations for participants,
// signatures, and attendance logs.
type ParticipantRepository interface {
	Add(ctx context.Context, eventID, userID string, joinedAt time.Time) error
	AddSignature(ctx context.Context, eventID, userID string, signedAt time.Time) error
	LogAttendance(ctx context.Context, eventID, userID string, at time.Time) error
}

// ParticipantService covers joining an event and signing attendance.
type ParticipantService interface {
	// JoinEvent registers the viewer as a participant. Returns created=false
	// when the viewer already joined.
	JoinEvent(ctx context.Context, viewer Viewer, eventID string) (created bool, err error)
	// SignAttendance records the viewer's attendance signature and an
	// attendance log entry. Only valid for events requiring signatures.
	SignAttendance(ctx context.Context, viewer Viewer, eventID string) error
}
