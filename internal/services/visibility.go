package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"eventdesk/internal/domain"
)

type visibilityResolver struct {
	eventRepo      domain.EventRepository
	hiddenRepo     domain.HiddenEventRepository
	contextTimeout time.Duration
}

func NewVisibilityResolver(eventRepo domain.EventRepository,
	hiddenRepo domain.HiddenEventRepository,
	timeout time.Duration,
) domain.VisibilityResolver {
	return &visibilityResolver{
		eventRepo:      eventRepo,
		hiddenRepo:     hiddenRepo,
		contextTimeout: timeout,
	}
}

// ListVisibleEvents computes the union of the viewer's visibility channels
// and subtracts the viewer's hidden set. Platform admins get every event in
// place of the organization channel; the hidden subtraction applies to them
// the same way to avoid special-casing.
func (r *visibilityResolver) ListVisibleEvents(ctx context.Context, viewer domain.Viewer) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, r.contextTimeout)
	defer cancel()

	var channels [][]*domain.Event

	if viewer.IsPlatformAdmin {
		all, err := r.eventRepo.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list all events: %w", err)
		}
		channels = append(channels, all)
	} else {
		if viewer.OrganizationID != "" {
			orgEvents, err := r.eventRepo.ListByOrganizationID(ctx, viewer.OrganizationID)
			if err != nil {
				return nil, fmt.Errorf("list organization events: %w", err)
			}
			channels = append(channels, orgEvents)
		}
		broadcast, err := r.eventRepo.ListBroadcast(ctx)
		if err != nil {
			return nil, fmt.Errorf("list broadcast events: %w", err)
		}
		channels = append(channels, broadcast)

		invited, err := r.eventRepo.ListInvitedByUserID(ctx, viewer.UserID)
		if err != nil {
			return nil, fmt.Errorf("list invited events: %w", err)
		}
		channels = append(channels, invited)
	}

	hiddenIDs, err := r.hiddenRepo.ListEventIDsByUserID(ctx, viewer.UserID)
	if err != nil {
		return nil, fmt.Errorf("list hidden events: %w", err)
	}

	return mergeVisible(channels, hiddenIDs), nil
}

// mergeVisible deduplicates the channel union by event ID, drops hidden
// events, and orders by creation time descending (ID descending on ties).
func mergeVisible(channels [][]*domain.Event, hiddenIDs []string) []*domain.Event {
	hidden := make(map[string]struct{}, len(hiddenIDs))
	for _, id := range hiddenIDs {
		hidden[id] = struct{}{}
	}

	seen := make(map[string]struct{})
	out := make([]*domain.Event, 0)
	for _, channel := range channels {
		for _, e := range channel {
			if _, ok := seen[e.ID]; ok {
				continue
			}
			seen[e.ID] = struct{}{}
			if _, ok := hidden[e.ID]; ok {
				continue
			}
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
