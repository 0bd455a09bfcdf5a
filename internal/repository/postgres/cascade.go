package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"eventdesk/internal/domain"
)

// cascadeStep is one delete statement of the event teardown. Steps run in
// slice order inside a single transaction; leaf tables come before the
// tables they reference. Each query takes the target event IDs as $1.
type cascadeStep struct {
	table string
	query string
}

// cascadeSteps is the full dependency-ordered teardown of an event subtree.
// Relationships are non-cascading at the storage layer, so children must go
// first. User-rooted and organization-rooted rows are never touched.
var cascadeSteps = []cascadeStep{
	{"survey_answer_options", `DELETE FROM survey_answer_options WHERE survey_answer_id IN (SELECT id FROM survey_answers WHERE event_id = ANY($1))`},
	{"survey_answers", `DELETE FROM survey_answers WHERE event_id = ANY($1)`},
	{"discussion_replies", `DELETE FROM discussion_replies WHERE discussion_id IN (SELECT id FROM discussions WHERE event_id = ANY($1))`},
	{"discussion_posts", `DELETE FROM discussion_posts WHERE event_id = ANY($1)`},
	{"discussions", `DELETE FROM discussions WHERE event_id = ANY($1)`},
	{"votes", `DELETE FROM votes WHERE voting_session_id IN (SELECT id FROM voting_sessions WHERE event_id = ANY($1))`},
	{"voting_options", `DELETE FROM voting_options WHERE voting_session_id IN (SELECT id FROM voting_sessions WHERE event_id = ANY($1))`},
	{"voting_sessions", `DELETE FROM voting_sessions WHERE event_id = ANY($1)`},
	{"decision_items", `DELETE FROM decision_items WHERE decision_id IN (SELECT id FROM decisions WHERE section_id IN (SELECT id FROM sections WHERE event_id = ANY($1)))`},
	{"decisions", `DELETE FROM decisions WHERE section_id IN (SELECT id FROM sections WHERE event_id = ANY($1))`},
	{"sections", `DELETE FROM sections WHERE event_id = ANY($1)`},
	{"survey_options", `DELETE FROM survey_options WHERE survey_question_id IN (SELECT id FROM survey_questions WHERE survey_id IN (SELECT id FROM surveys WHERE event_id = ANY($1)))`},
	{"survey_questions", `DELETE FROM survey_questions WHERE survey_id IN (SELECT id FROM surveys WHERE event_id = ANY($1))`},
	{"surveys", `DELETE FROM surveys WHERE event_id = ANY($1)`},
	{"attachments", `DELETE FROM attachments WHERE event_id = ANY($1)`},
	{"table_blocks", `DELETE FROM table_blocks WHERE event_id = ANY($1)`},
	{"event_participants", `DELETE FROM event_participants WHERE event_id = ANY($1)`},
	{"user_signatures", `DELETE FROM user_signatures WHERE event_id = ANY($1)`},
	{"attendance_logs", `DELETE FROM attendance_logs WHERE event_id = ANY($1)`},
	{"agenda_items", `DELETE FROM agenda_items WHERE event_id = ANY($1)`},
	{"documents", `DELETE FROM documents WHERE event_id = ANY($1)`},
	{"proposal_upvotes", `DELETE FROM proposal_upvotes WHERE proposal_id IN (SELECT id FROM proposals WHERE event_id = ANY($1))`},
	{"proposals", `DELETE FROM proposals WHERE event_id = ANY($1)`},
	{"event_public_links", `DELETE FROM event_public_links WHERE event_id = ANY($1)`},
	{"public_event_guests", `DELETE FROM public_event_guests WHERE event_id = ANY($1)`},
	{"user_hidden_events", `DELETE FROM user_hidden_events WHERE event_id = ANY($1)`},
	{"event_invited_users", `DELETE FROM event_invited_users WHERE event_id = ANY($1)`},
	{"notifications", `DELETE FROM notifications WHERE event_id = ANY($1)`},
	{"events", `DELETE FROM events WHERE id = ANY($1)`},
}

type eventDeleter struct {
	DB     *sql.DB
	Logger *slog.Logger
}

// NewEventDeleter returns an EventDeleter that removes events and their full
// dependent subtree in one all-or-nothing transaction.
func NewEventDeleter(db *sql.DB, logger *slog.Logger) domain.EventDeleter {
	return &eventDeleter{
		DB:     db,
		Logger: logger,
	}
}

func (d *eventDeleter) DeleteEvents(ctx context.Context, eventIDs []string) (domain.DeletionResult, error) {
	ids := dedupeIDs(eventIDs)
	if len(ids) == 0 {
		return domain.DeletionResult{}, nil
	}

	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.DeletionResult{}, errors.Join(domain.ErrDeletionFailed, fmt.Errorf("begin: %w", err))
	}

	deleted := 0
	for _, step := range cascadeSteps {
		res, err := tx.ExecContext(ctx, step.query, pq.Array(ids))
		if err != nil {
			_ = tx.Rollback()
			d.Logger.ErrorContext(ctx, "cascade deletion rolled back", "table", step.table, "event_ids", ids, "err", err)
			return domain.DeletionResult{}, errors.Join(domain.ErrDeletionFailed, fmt.Errorf("delete from %s: %w", step.table, err))
		}
		if step.table == "events" {
			// Already-deleted or unknown IDs simply affect zero rows here.
			n, err := res.RowsAffected()
			if err != nil {
				_ = tx.Rollback()
				return domain.DeletionResult{}, errors.Join(domain.ErrDeletionFailed, fmt.Errorf("rows affected: %w", err))
			}
			deleted = int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		d.Logger.ErrorContext(ctx, "cascade deletion commit failed", "event_ids", ids, "err", err)
		return domain.DeletionResult{}, errors.Join(domain.ErrDeletionFailed, fmt.Errorf("commit: %w", err))
	}
	return domain.DeletionResult{DeletedCount: deleted}, nil
}

func dedupeIDs(ids []string) []string {
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
