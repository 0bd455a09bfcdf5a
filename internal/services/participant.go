package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventdesk/internal/domain"
)

type participantService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	contextTimeout  time.Duration
}

func NewParticipantService(eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	timeout time.Duration,
) domain.ParticipantService {
	return &participantService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		contextTimeout:  timeout,
	}
}

func (s *participantService) JoinEvent(ctx context.Context, viewer domain.Viewer, eventID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("get event: %w", err)
	}
	if err := s.participantRepo.Add(ctx, eventID, viewer.UserID, time.Now()); err != nil {
		if errors.Is(err, domain.ErrAlreadyJoined) {
			return false, nil
		}
		return false, fmt.Errorf("add participant: %w", err)
	}
	return true, nil
}

func (s *participantService) SignAttendance(ctx context.Context, viewer domain.Viewer, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if !event.RequireSignature {
		return fmt.Errorf("%w: event does not collect signatures", domain.ErrInvalidInput)
	}
	now := time.Now()
	if err := s.participantRepo.AddSignature(ctx, eventID, viewer.UserID, now); err != nil {
		if errors.Is(err, domain.ErrAlreadySigned) {
			return domain.ErrAlreadySigned
		}
		return fmt.Errorf("add signature: %w", err)
	}
	if err := s.participantRepo.LogAttendance(ctx, eventID, viewer.UserID, now); err != nil {
		return fmt.Errorf("log attendance: %w", err)
	}
	return nil
}
