package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventdesk/internal/domain"
)

const eventColumns = "id, organization_id, creator_id, title, description, start_time, end_time, status, is_broadcast, require_signature, created_at"

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (organization_id, creator_id, title, description, start_time, end_time, status, is_broadcast, require_signature, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.OrganizationID, e.CreatorID, e.Title, e.Description,
		e.StartTime, e.EndTime, e.Status, e.IsBroadcast, e.RequireSignature, e.CreatedAt,
	).Scan(&e.ID)
}

func scanEvent(s interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	err := s.Scan(
		&e.ID, &e.OrganizationID, &e.CreatorID, &e.Title, &e.Description,
		&e.StartTime, &e.EndTime, &e.Status, &e.IsBroadcast, &e.RequireSignature, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) FindDuplicate(ctx context.Context, organizationID, title string, startTime, endTime time.Time) (*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE organization_id = $1 AND title = $2 AND start_time = $3 AND end_time = $4
		ORDER BY created_at ASC
		LIMIT 1
	`, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, organizationID, title, startTime, endTime))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, eventID string, fields domain.UpdateEventFields) (*domain.Event, error) {
	var setClauses []string
	var args []interface{}
	n := 1
	add := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if fields.Title != nil {
		add("title", *fields.Title)
	}
	if fields.Description != nil {
		add("description", *fields.Description)
	}
	if fields.StartTime != nil {
		add("start_time", *fields.StartTime)
	}
	if fields.EndTime != nil {
		add("end_time", *fields.EndTime)
	}
	if fields.Status != nil {
		add("status", *fields.Status)
	}
	if fields.RequireSignature != nil {
		add("require_signature", *fields.RequireSignature)
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, eventID)
	}
	args = append(args, eventID)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) SetBroadcast(ctx context.Context, eventID string) (*domain.Event, error) {
	query := fmt.Sprintf(`
		UPDATE events SET is_broadcast = TRUE
		WHERE id = $1
		RETURNING %s
	`, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, eventID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) listEvents(ctx context.Context, query string, args ...interface{}) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) ListByOrganizationID(ctx context.Context, organizationID string) ([]*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE organization_id = $1 AND is_broadcast = FALSE
		ORDER BY created_at DESC
	`, eventColumns)
	return r.listEvents(ctx, query, organizationID)
}

func (r *eventRepository) ListBroadcast(ctx context.Context) ([]*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE is_broadcast = TRUE
		ORDER BY created_at DESC
	`, eventColumns)
	return r.listEvents(ctx, query)
}

func (r *eventRepository) ListInvitedByUserID(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := `
		SELECT e.id, e.organization_id, e.creator_id, e.title, e.description, e.start_time, e.end_time, e.status, e.is_broadcast, e.require_signature, e.created_at
		FROM events e
		JOIN event_invited_users i ON i.event_id = e.id
		WHERE i.user_id = $1
		ORDER BY e.created_at DESC
	`
	return r.listEvents(ctx, query, userID)
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM events
		ORDER BY created_at DESC
	`, eventColumns)
	return r.listEvents(ctx, query)
}
