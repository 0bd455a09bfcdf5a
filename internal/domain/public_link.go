package domain

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidAccessCode is returned when a guest presents a wrong access code.
var ErrInvalidAccessCode = errors.New("invalid access code")

// EventPublicLink is a shareable link to an event, protected by an access
// code stored as a hash.
// swagger:model EventPublicLink
type EventPublicLink struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	Token      string    `json:"token"`
	AccessHash string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// PublicEventGuest is an external guest admitted through a public link.
// swagger:model PublicEventGuest
type PublicEventGuest struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	PublicLinkID string    `json:"public_link_id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

// AccessCodeHasher hashes and verifies public-link access codes.
type AccessCodeHasher interface {
	Hash(code string) (string, error)
	Compare(hash, code string) error
}

// PublicLinkRepository defines storage operations for public links and guests.
type PublicLinkRepository interface {
	Create(ctx context.Context, link *EventPublicLink) error
	GetByToken(ctx context.Context, token string) (*EventPublicLink, error)
	AddGuest(ctx context.Context, guest *PublicEventGuest) error
}

// PublicLinkService creates public links and admits guests through them.
type PublicLinkService interface {
	// CreatePublicLink issues a link for the event with the given access
	// code. The plain code is never stored.
	CreatePublicLink(ctx context.Context, viewer Viewer, eventID, accessCode string) (*EventPublicLink, error)
	// AccessAsGuest verifies the access code for the link token and records
	// the guest. Returns the linked event on success.
	AccessAsGuest(ctx context.Context, token, accessCode, guestName string) (*Event, error)
}
