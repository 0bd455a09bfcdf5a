package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"eventdesk/internal/domain"
)

type hiddenEventRepository struct {
	DB *sql.DB
}

func NewHiddenEventRepository(db *sql.DB) domain.HiddenEventRepository {
	return &hiddenEventRepository{
		DB: db,
	}
}

func (r *hiddenEventRepository) Hide(ctx context.Context, userID, eventID string) error {
	query := `
		INSERT INTO user_hidden_events (user_id, event_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, event_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, userID, eventID)
	return err
}

func (r *hiddenEventRepository) HideMany(ctx context.Context, userID string, eventIDs []string) error {
	if len(eventIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO user_hidden_events (user_id, event_id)
		SELECT $1, unnest($2::text[])
		ON CONFLICT (user_id, event_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, userID, pq.Array(eventIDs))
	return err
}

func (r *hiddenEventRepository) ListEventIDsByUserID(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT event_id FROM user_hidden_events WHERE user_id = $1`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
