package domain

import (
	"context"
	"time"
)

// EventInvitedUser is an individual invitation of a user to an event,
// unique per (event, user) pair. It grants visibility independent of
// organization membership and the broadcast flag.
// swagger:model EventInvitedUser
type EventInvitedUser struct {
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	InvitedAt time.Time `json:"invited_at"`
}

// InvitationRepository defines storage operations for individual invitations.
type InvitationRepository interface {
	ListUserIDsByEventID(ctx context.Context, eventID string) ([]string, error)
	// AddMany inserts invitations for the given users with invitedAt as the
	// timestamp. Existing (event, user) pairs are left untouched.
	AddMany(ctx context.Context, eventID string, userIDs []string, invitedAt time.Time) error
	RemoveMany(ctx context.Context, eventID string, userIDs []string) error
}
