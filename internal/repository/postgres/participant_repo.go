package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"eventdesk/internal/domain"
)

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{
		DB: db,
	}
}

func (r *participantRepository) Add(ctx context.Context, eventID, userID string, joinedAt time.Time) error {
	query := `
		INSERT INTO event_participants (event_id, user_id, joined_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.DB.ExecContext(ctx, query, eventID, userID, joinedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrAlreadyJoined
		}
		return err
	}
	return nil
}

func (r *participantRepository) AddSignature(ctx context.Context, eventID, userID string, signedAt time.Time) error {
	query := `
		INSERT INTO user_signatures (event_id, user_id, signed_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.DB.ExecContext(ctx, query, eventID, userID, signedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrAlreadySigned
		}
		return err
	}
	return nil
}

func (r *participantRepository) LogAttendance(ctx context.Context, eventID, userID string, at time.Time) error {
	query := `
		INSERT INTO attendance_logs (event_id, user_id, logged_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.DB.ExecContext(ctx, query, eventID, userID, at)
	return err
}
