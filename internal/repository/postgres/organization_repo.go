package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventdesk/internal/domain"
)

type organizationRepository struct {
	DB *sql.DB
}

func NewOrganizationRepository(db *sql.DB) domain.OrganizationRepository {
	return &organizationRepository{
		DB: db,
	}
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	query := `
		SELECT id, name, short_name, active, created_at
		FROM organizations
		WHERE id = $1
	`
	o := &domain.Organization{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.Name, &o.ShortName, &o.Active, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *organizationRepository) GetFallback(ctx context.Context) (*domain.Organization, error) {
	// Deterministic: oldest active organization, id as tiebreak.
	query := `
		SELECT id, name, short_name, active, created_at
		FROM organizations
		WHERE active = TRUE
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`
	o := &domain.Organization{}
	err := r.DB.QueryRowContext(ctx, query).Scan(&o.ID, &o.Name, &o.ShortName, &o.Active, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}
