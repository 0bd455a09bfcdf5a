package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"eventdesk/internal/domain"
)

type invitationRepository struct {
	DB *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{
		DB: db,
	}
}

func (r *invitationRepository) ListUserIDsByEventID(ctx context.Context, eventID string) ([]string, error) {
	query := `
		SELECT user_id FROM event_invited_users
		WHERE event_id = $1
		ORDER BY user_id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
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

func (r *invitationRepository) AddMany(ctx context.Context, eventID string, userIDs []string, invitedAt time.Time) error {
	if len(userIDs) == 0 {
		return nil
	}
	query := `
		INSERT INTO event_invited_users (event_id, user_id, invited_at)
		SELECT $1, unnest($2::text[]), $3
		ON CONFLICT (event_id, user_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, eventID, pq.Array(userIDs), invitedAt)
	return err
}

func (r *invitationRepository) RemoveMany(ctx context.Context, eventID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	query := `DELETE FROM event_invited_users WHERE event_id = $1 AND user_id = ANY($2)`
	_, err := r.DB.ExecContext(ctx, query, eventID, pq.Array(userIDs))
	return err
}
