package domain

import (
	"context"
	"time"
)

// Organization owns users and events.
// swagger:model Organization
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ShortName string    `json:"short_name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// OrganizationRepository defines the interface for organization storage.
type OrganizationRepository interface {
	GetByID(ctx context.Context, id string) (*Organization, error)
	// GetFallback returns the deterministic fallback organization used to
	// store broadcast events created without an organization: the oldest
	// active organization, id ascending on ties.
	GetFallback(ctx context.Context) (*Organization, error)
}
