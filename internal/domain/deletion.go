package domain

import (
	"context"
	"errors"
)

// ErrDeletionFailed is returned when any step of a cascade deletion fails.
// The whole batch is rolled back; callers never observe a partially
// torn-down event.
var ErrDeletionFailed = errors.New("event deletion failed")

// DeletionResult reports the outcome of a cascade deletion batch.
// swagger:model DeletionResult
type DeletionResult struct {
	DeletedCount int `json:"deleted_count"`
}

// EventDeleter tears down events and every dependent record in one
// all-or-nothing transaction. An empty ID set succeeds with a zero count;
// unknown or already-deleted IDs are absorbed silently.
type EventDeleter interface {
	DeleteEvents(ctx context.Context, eventIDs []string) (DeletionResult, error)
}
