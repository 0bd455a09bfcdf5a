package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventdesk/internal/domain"
)

type eventService struct {
	eventRepo        domain.EventRepository
	organizationRepo domain.OrganizationRepository
	invitationRepo   domain.InvitationRepository
	hiddenRepo       domain.HiddenEventRepository
	userRepo         domain.UserRepository
	notificationRepo domain.NotificationRepository
	deleter          domain.EventDeleter
	resolver         domain.VisibilityResolver
	emailService     domain.EmailService
	logger           *slog.Logger
	contextTimeout   time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	organizationRepo domain.OrganizationRepository,
	invitationRepo domain.InvitationRepository,
	hiddenRepo domain.HiddenEventRepository,
	userRepo domain.UserRepository,
	notificationRepo domain.NotificationRepository,
	deleter domain.EventDeleter,
	resolver domain.VisibilityResolver,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:        eventRepo,
		organizationRepo: organizationRepo,
		invitationRepo:   invitationRepo,
		hiddenRepo:       hiddenRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		deleter:          deleter,
		resolver:         resolver,
		emailService:     emailService,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

// canManage reports whether the viewer may modify the event: platform
// admins, the event creator, and organizers of the owning organization.
func canManage(viewer domain.Viewer, event *domain.Event) bool {
	if viewer.IsPlatformAdmin {
		return true
	}
	if viewer.UserID == event.CreatorID {
		return true
	}
	return viewer.IsOrganizer && viewer.OrganizationID != "" && viewer.OrganizationID == event.OrganizationID
}

func (s *eventService) CreateEvent(ctx context.Context, in domain.CreateEventInput) (*domain.Event, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in.CreatorID == "" {
		return nil, false, fmt.Errorf("%w: event creator is required", domain.ErrInvalidInput)
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, false, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if !in.EndTime.After(in.StartTime) {
		return nil, false, fmt.Errorf("%w: end time must be after start time", domain.ErrInvalidInput)
	}

	organizationID := in.OrganizationID
	if organizationID == "" {
		if !in.Broadcast {
			return nil, false, fmt.Errorf("%w: organization is required for non-broadcast events", domain.ErrInvalidInput)
		}
		// Broadcast events are visible platform-wide; the fallback
		// organization only anchors the row for storage.
		fallback, err := s.organizationRepo.GetFallback(ctx)
		if err != nil {
			return nil, false, fmt.Errorf("get fallback organization: %w", err)
		}
		organizationID = fallback.ID
	} else {
		if _, err := s.organizationRepo.GetByID(ctx, organizationID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, false, domain.ErrNotFound
			}
			return nil, false, fmt.Errorf("get organization: %w", err)
		}
	}

	// Idempotency by natural key: a resubmitted form returns the existing
	// event instead of creating a duplicate.
	existing, err := s.eventRepo.FindDuplicate(ctx, organizationID, in.Title, in.StartTime, in.EndTime)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("find duplicate event: %w", err)
	}

	event := domain.NewEvent(organizationID, in.CreatorID, in.Title, in.Description,
		in.StartTime, in.EndTime, in.RequireSignature, in.Broadcast, time.Now())
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, false, fmt.Errorf("create event: %w", err)
	}

	if invited := dedupeUserIDs(in.InvitedUserIDs); len(invited) > 0 {
		if err := s.invitationRepo.AddMany(ctx, event.ID, invited, time.Now()); err != nil {
			return nil, false, fmt.Errorf("add invitations: %w", err)
		}
		s.notifyInvited(ctx, event, invited)
	}
	return event, true, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID string, viewer domain.Viewer, fields domain.UpdateEventFields) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !canManage(viewer, event) {
		return nil, domain.ErrForbidden
	}

	newStart := event.StartTime
	if fields.StartTime != nil {
		newStart = *fields.StartTime
	}
	newEnd := event.EndTime
	if fields.EndTime != nil {
		newEnd = *fields.EndTime
	}
	if !newEnd.After(newStart) {
		return nil, fmt.Errorf("%w: end time must be after start time", domain.ErrInvalidInput)
	}
	if fields.Title != nil && strings.TrimSpace(*fields.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
	}

	updated, err := s.eventRepo.Update(ctx, eventID, fields)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) BroadcastEvent(ctx context.Context, eventID string, viewer domain.Viewer) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !canManage(viewer, event) {
		return nil, domain.ErrForbidden
	}
	if event.IsBroadcast {
		return event, nil
	}
	updated, err := s.eventRepo.SetBroadcast(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("set broadcast: %w", err)
	}
	return updated, nil
}

func (s *eventService) HideEvent(ctx context.Context, viewer domain.Viewer, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if err := s.hiddenRepo.Hide(ctx, viewer.UserID, eventID); err != nil {
		return fmt.Errorf("hide event: %w", err)
	}
	return nil
}

// HideAllVisible snapshots the events currently visible to the viewer and
// hides each of them. Events created afterwards are not retroactively hidden.
func (s *eventService) HideAllVisible(ctx context.Context, viewer domain.Viewer) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	visible, err := s.resolver.ListVisibleEvents(ctx, viewer)
	if err != nil {
		return 0, fmt.Errorf("resolve visible events: %w", err)
	}
	if len(visible) == 0 {
		return 0, nil
	}
	ids := make([]string, 0, len(visible))
	for _, e := range visible {
		ids = append(ids, e.ID)
	}
	if err := s.hiddenRepo.HideMany(ctx, viewer.UserID, ids); err != nil {
		return 0, fmt.Errorf("hide events: %w", err)
	}
	return len(ids), nil
}

func (s *eventService) DeleteEvents(ctx context.Context, viewer domain.Viewer, eventIDs []string) (domain.DeletionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Unknown or concurrently deleted IDs are absorbed; bulk-selection UIs
	// may race with other deletions.
	targets := make([]string, 0, len(eventIDs))
	for _, id := range dedupeUserIDs(eventIDs) {
		event, err := s.eventRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return domain.DeletionResult{}, fmt.Errorf("get event: %w", err)
		}
		if !canManage(viewer, event) {
			return domain.DeletionResult{}, domain.ErrForbidden
		}
		targets = append(targets, id)
	}

	result, err := s.deleter.DeleteEvents(ctx, targets)
	if err != nil {
		return domain.DeletionResult{}, err
	}
	return result, nil
}

func (s *eventService) SyncInvitations(ctx context.Context, eventID string, viewer domain.Viewer, desiredUserIDs []string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if !canManage(viewer, event) {
		return domain.ErrForbidden
	}

	desired := dedupeUserIDs(desiredUserIDs)
	existing, err := s.invitationRepo.ListUserIDsByEventID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("list invitations: %w", err)
	}

	toAdd, toRemove := diffSets(desired, existing)
	if len(toAdd) == 0 && len(toRemove) == 0 {
		return nil
	}
	if len(toAdd) > 0 {
		if err := s.invitationRepo.AddMany(ctx, eventID, toAdd, time.Now()); err != nil {
			return fmt.Errorf("add invitations: %w", err)
		}
	}
	if len(toRemove) > 0 {
		if err := s.invitationRepo.RemoveMany(ctx, eventID, toRemove); err != nil {
			return fmt.Errorf("remove invitations: %w", err)
		}
	}
	if len(toAdd) > 0 {
		s.notifyInvited(ctx, event, toAdd)
	}
	return nil
}

// notifyInvited records a notification per newly invited user and emails
// them best-effort. Notification failures never fail the invitation write.
func (s *eventService) notifyInvited(ctx context.Context, event *domain.Event, userIDs []string) {
	users, err := s.userRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		s.logger.WarnContext(ctx, "invited user lookup failed", "event_id", event.ID, "err", err)
		return
	}
	for _, u := range users {
		n := &domain.Notification{
			UserID:    u.ID,
			EventID:   event.ID,
			Message:   fmt.Sprintf("You have been invited to %s", event.Title),
			CreatedAt: time.Now(),
		}
		if err := s.notificationRepo.Create(ctx, n); err != nil {
			s.logger.WarnContext(ctx, "invitation notification failed", "event_id", event.ID, "user_id", u.ID, "err", err)
			continue
		}
		data := &domain.InvitationEmailData{
			Email:      u.Email,
			UserName:   u.Name,
			EventTitle: event.Title,
			EventStart: event.StartTime.Format(time.RFC1123),
		}
		if err := s.emailService.SendEventInvitation(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "invitation email failed", "event_id", event.ID, "user_id", u.ID, "err", err)
		}
	}
}

// dedupeUserIDs drops empty and duplicate IDs, preserving order.
func dedupeUserIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// diffSets returns desired−existing and existing−desired.
func diffSets(desired, existing []string) (toAdd, toRemove []string) {
	existingSet := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		existingSet[id] = struct{}{}
	}
	desiredSet := make(map[string]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
		if _, ok := existingSet[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range existing {
		if _, ok := desiredSet[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}
