package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventdesk/internal/domain"
)

type publicLinkService struct {
	eventRepo      domain.EventRepository
	linkRepo       domain.PublicLinkRepository
	hasher         domain.AccessCodeHasher
	contextTimeout time.Duration
}

func NewPublicLinkService(eventRepo domain.EventRepository,
	linkRepo domain.PublicLinkRepository,
	hasher domain.AccessCodeHasher,
	timeout time.Duration,
) domain.PublicLinkService {
	return &publicLinkService{
		eventRepo:      eventRepo,
		linkRepo:       linkRepo,
		hasher:         hasher,
		contextTimeout: timeout,
	}
}

func (s *publicLinkService) CreatePublicLink(ctx context.Context, viewer domain.Viewer, eventID, accessCode string) (*domain.EventPublicLink, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	accessCode = strings.TrimSpace(accessCode)
	if accessCode == "" {
		return nil, fmt.Errorf("%w: access code is required", domain.ErrInvalidInput)
	}
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

	hash, err := s.hasher.Hash(accessCode)
	if err != nil {
		return nil, fmt.Errorf("hash access code: %w", err)
	}
	link := &domain.EventPublicLink{
		EventID:    eventID,
		Token:      uuid.NewString(),
		AccessHash: hash,
		CreatedAt:  time.Now(),
	}
	if err := s.linkRepo.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("create public link: %w", err)
	}
	return link, nil
}

func (s *publicLinkService) AccessAsGuest(ctx context.Context, token, accessCode, guestName string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	link, err := s.linkRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get public link: %w", err)
	}
	if err := s.hasher.Compare(link.AccessHash, accessCode); err != nil {
		return nil, domain.ErrInvalidAccessCode
	}
	event, err := s.eventRepo.GetByID(ctx, link.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	guestName = strings.TrimSpace(guestName)
	if guestName == "" {
		guestName = "Guest"
	}
	guest := &domain.PublicEventGuest{
		EventID:      link.EventID,
		PublicLinkID: link.ID,
		Name:         guestName,
		CreatedAt:    time.Now(),
	}
	if err := s.linkRepo.AddGuest(ctx, guest); err != nil {
		return nil, fmt.Errorf("add guest: %w", err)
	}
	return event, nil
}
