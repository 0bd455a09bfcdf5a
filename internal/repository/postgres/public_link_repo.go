package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventdesk/internal/domain"
)

type publicLinkRepository struct {
	DB *sql.DB
}

func NewPublicLinkRepository(db *sql.DB) domain.PublicLinkRepository {
	return &publicLinkRepository{
		DB: db,
	}
}

func (r *publicLinkRepository) Create(ctx context.Context, link *domain.EventPublicLink) error {
	query := `
		INSERT INTO event_public_links (event_id, token, access_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, link.EventID, link.Token, link.AccessHash, link.CreatedAt).
		Scan(&link.ID)
}

func (r *publicLinkRepository) GetByToken(ctx context.Context, token string) (*domain.EventPublicLink, error) {
	query := `
		SELECT id, event_id, token, access_hash, created_at
		FROM event_public_links
		WHERE token = $1
	`
	l := &domain.EventPublicLink{}
	err := r.DB.QueryRowContext(ctx, query, token).Scan(&l.ID, &l.EventID, &l.Token, &l.AccessHash, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (r *publicLinkRepository) AddGuest(ctx context.Context, guest *domain.PublicEventGuest) error {
	query := `
		INSERT INTO public_event_guests (event_id, public_link_id, name, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, guest.EventID, guest.PublicLinkID, guest.Name, guest.CreatedAt).
		Scan(&guest.ID)
}
