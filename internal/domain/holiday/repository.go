package holiday

import (
	"context"
	"time"
)

// HolidayRepository defines data access for calendar entries. Uniqueness per
// (date_string, type, user_id) is a database compound constraint; violations
// surface as ErrHolidayExists.
type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)

	// GetByID retrieves any entry visible to userID (own or GLOBAL)
	GetByID(ctx context.Context, id string, userID string) (Holiday, error)

	// ListVisible returns GLOBAL entries plus the user's own, optionally
	// bounded to [start, end)
	ListVisible(ctx context.Context, userID string, start, end *time.Time) ([]Holiday, error)

	Delete(ctx context.Context, id string, userID string) error
}
