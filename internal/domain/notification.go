package domain

import (
	"context"
	"time"
)

// Notification is a message delivered to a user. EventID is empty for
// notifications not tied to an event; event-tied rows are removed when the
// event is deleted.
// swagger:model Notification
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	EventID   string    `json:"event_id,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationRepository defines storage operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUserID(ctx context.Context, userID string) ([]*Notification, error)
}
