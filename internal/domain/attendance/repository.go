package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records. All reads
// and writes are scoped to the owning user.
type AttendanceRepository interface {
	// Create inserts a new record. A storage-level partial unique index on
	// (user_id, day) for open sessions makes concurrent duplicate check-ins
	// surface as ErrAlreadyCheckedIn.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByID retrieves a record owned by userID
	GetByID(ctx context.Context, id string, userID string) (Attendance, error)

	// GetOpenSession retrieves the user's open record with check-in inside
	// [dayStart, dayEnd]; nil when none exists
	GetOpenSession(ctx context.Context, userID string, dayStart, dayEnd time.Time) (*Attendance, error)

	// HasCheckInInRange reports whether any record's check-in falls inside
	// [dayStart, dayEnd]
	HasCheckInInRange(ctx context.Context, userID string, dayStart, dayEnd time.Time) (bool, error)

	// Update persists check-out, duration, status and note changes
	Update(ctx context.Context, att Attendance) error

	// Delete removes a record owned by userID
	Delete(ctx context.Context, id string, userID string) error

	// ListByCheckInRange returns records whose check-in falls inside
	// [start, end], ordered by check-in ascending
	ListByCheckInRange(ctx context.Context, userID string, start, end time.Time) ([]Attendance, error)

	// SumDurationInRange sums duration_minutes over records whose check-in
	// falls inside [start, end]
	SumDurationInRange(ctx context.Context, userID string, start, end time.Time) (int64, error)

	// ListStaleOpenSessions returns open records with check-in before the
	// cutoff, across all users
	ListStaleOpenSessions(ctx context.Context, cutoff time.Time) ([]Attendance, error)
}
