package domain

import "context"

// HiddenEvent marks an event a user opted to hide from their listings.
// The hidden set is a fixed snapshot: hiding never expires on its own and
// never extends to events created after the hide action.
// swagger:model HiddenEvent
type HiddenEvent struct {
	UserID  string `json:"user_id"`
	EventID string `json:"event_id"`
}

// HiddenEventRepository defines storage operations for hidden-event markers.
type HiddenEventRepository interface {
	// Hide marks a single event hidden for the user. Hiding an already
	// hidden event is a no-op.
	Hide(ctx context.Context, userID, eventID string) error
	// HideMany marks all given events hidden for the user in one statement.
	HideMany(ctx context.Context, userID string, eventIDs []string) error
	ListEventIDsByUserID(ctx context.Context, userID string) ([]string, error)
}
