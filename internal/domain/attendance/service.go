package attendance

import "context"

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens a session for the authenticated user at the current instant
	CheckIn(ctx context.Context) (AttendanceResponse, error)

	// CheckOut closes today's open session
	CheckOut(ctx context.Context) (AttendanceResponse, error)

	// History lists the user's records for a month, with live minutes on an
	// open session
	History(ctx context.Context, filter HistoryFilter) (HistoryResponse, error)

	// CreateManual records an attendance entry from user-supplied wall-clock fields
	CreateManual(ctx context.Context, req ManualEntryRequest) (AttendanceResponse, error)

	// UpdateManual edits a manual record; non-manual records are rejected
	UpdateManual(ctx context.Context, req ManualEntryRequest) (AttendanceResponse, error)

	// DeleteManual removes a manual record; non-manual records are rejected
	DeleteManual(ctx context.Context, id string) error
}
