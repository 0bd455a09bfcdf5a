package domain

import "context"

// VisibilityResolver answers which events a viewer is entitled to see.
//
// An event is visible iff it is reachable through at least one channel
// (organization membership, broadcast, individual invitation; platform
// admins receive every event instead of the organization channel) and the
// viewer has not hidden it. The result is unique by event ID and ordered
// by creation time descending. An empty list is a successful outcome.
type VisibilityResolver interface {
	ListVisibleEvents(ctx context.Context, viewer Viewer) ([]*Event, error)
}
