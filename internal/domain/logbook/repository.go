package logbook

import (
	"context"
	"time"
)

// LogbookRepository defines data access for logbook entries, owner-scoped.
type LogbookRepository interface {
	Create(ctx context.Context, entry LogbookEntry) (LogbookEntry, error)
	GetByID(ctx context.Context, id string, userID string) (LogbookEntry, error)
	ListByDateRange(ctx context.Context, userID string, start, end time.Time) ([]LogbookEntry, error)
	Update(ctx context.Context, entry LogbookEntry) error
	SetConfirmed(ctx context.Context, id string, userID string, confirmed bool) error
	Delete(ctx context.Context, id string, userID string) error
}
