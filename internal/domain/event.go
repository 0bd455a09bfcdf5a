package domain

import (
	"context"
	"time"
)

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusActive    EventStatus = "active"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// Event represents an organization event. Broadcast events are visible
// platform-wide regardless of the owning organization.
// swagger:model Event
type Event struct {
	ID               string      `json:"id"`
	OrganizationID   string      `json:"organization_id"`
	CreatorID        string      `json:"creator_id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	StartTime        time.Time   `json:"start_time"`
	EndTime          time.Time   `json:"end_time"`
	Status           EventStatus `json:"status"`
	IsBroadcast      bool        `json:"is_broadcast"`
	RequireSignature bool        `json:"require_signature"`
	CreatedAt        time.Time   `json:"created_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(organizationID, creatorID, title, description string, startTime, endTime time.Time, requireSignature, broadcast bool, createdAt time.Time) *Event {
	return &Event{
		OrganizationID:   organizationID,
		CreatorID:        creatorID,
		Title:            title,
		Description:      description,
		StartTime:        startTime,
		EndTime:          endTime,
		Status:           EventStatusActive,
		IsBroadcast:      broadcast,
		RequireSignature: requireSignature,
		CreatedAt:        createdAt,
	}
}

// UpdateEventFields carries the optional fields of an event update.
// Nil fields are left unchanged.
type UpdateEventFields struct {
	Title            *string      `json:"title"`
	Description      *string      `json:"description"`
	StartTime        *time.Time   `json:"start_time"`
	EndTime          *time.Time   `json:"end_time"`
	Status           *EventStatus `json:"status"`
	RequireSignature *bool        `json:"require_signature"`
}

// EventRepository defines the interface for event storage.
// The three List* channel queries back the visibility resolver; each reads
// from the single authoritative store so a created event is observable on
// the next call with no propagation delay.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// FindDuplicate returns an existing event with the same organization,
	// title, start time, and end time, or ErrNotFound.
	FindDuplicate(ctx context.Context, organizationID, title string, startTime, endTime time.Time) (*Event, error)
	Update(ctx context.Context, eventID string, fields UpdateEventFields) (*Event, error)
	// SetBroadcast flags the event as broadcast and returns the updated row.
	SetBroadcast(ctx context.Context, eventID string) (*Event, error)
	// ListByOrganizationID returns non-broadcast events owned by the organization.
	ListByOrganizationID(ctx context.Context, organizationID string) ([]*Event, error)
	// ListBroadcast returns all broadcast events regardless of organization.
	ListBroadcast(ctx context.Context) ([]*Event, error)
	// ListInvitedByUserID returns events the user is individually invited to.
	ListInvitedByUserID(ctx context.Context, userID string) ([]*Event, error)
	// ListAll returns every event; used for the platform-admin channel.
	ListAll(ctx context.Context) ([]*Event, error)
}

// CreateEventInput is the input for EventService.CreateEvent.
// OrganizationID may be empty only for broadcast events, which are attached
// to the fallback organization for storage.
type CreateEventInput struct {
	OrganizationID   string
	CreatorID        string
	Title            string
	Description      string
	StartTime        time.Time
	EndTime          time.Time
	RequireSignature bool
	Broadcast        bool
	InvitedUserIDs   []string
}

// EventService defines the lifecycle façade consumed by the delivery layer.
type EventService interface {
	// CreateEvent creates an event. If an event with the same organization,
	// title, start time, and end time already exists, the existing event is
	// returned and created is false.
	CreateEvent(ctx context.Context, in CreateEventInput) (event *Event, created bool, err error)
	UpdateEvent(ctx context.Context, eventID string, viewer Viewer, fields UpdateEventFields) (*Event, error)
	// BroadcastEvent flags the event as broadcast, making it visible platform-wide.
	BroadcastEvent(ctx context.Context, eventID string, viewer Viewer) (*Event, error)
	HideEvent(ctx context.Context, viewer Viewer, eventID string) error
	// HideAllVisible hides every event currently visible to the viewer and
	// returns the number of events in the snapshot. Events created later are
	// not affected.
	HideAllVisible(ctx context.Context, viewer Viewer) (int, error)
	DeleteEvents(ctx context.Context, viewer Viewer, eventIDs []string) (DeletionResult, error)
	// SyncInvitations reconciles the event's invited users with the desired
	// set. Idempotent: repeating the same desired set is a no-op.
	SyncInvitations(ctx context.Context, eventID string, viewer Viewer, desiredUserIDs []string) error
}
