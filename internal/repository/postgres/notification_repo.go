package postgres

import (
	"context"
	"database/sql"

	"eventdesk/internal/domain"
)

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) domain.NotificationRepository {
	return &notificationRepository{
		DB: db,
	}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, event_id, message, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var eventID sql.NullString
	if n.EventID != "" {
		eventID = sql.NullString{String: n.EventID, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query, n.UserID, eventID, n.Message, n.CreatedAt).
		Scan(&n.ID)
}

func (r *notificationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Notification, error) {
	query := `
		SELECT id, user_id, event_id, message, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]*domain.Notification, 0)
	for rows.Next() {
		n := &domain.Notification{}
		var eventNull sql.NullString
		if err := rows.Scan(&n.ID, &n.UserID, &eventNull, &n.Message, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.EventID = eventNull.String
		list = append(list, n)
	}
	return list, rows.Err()
}
