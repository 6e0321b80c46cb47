package attendance

import (
	"time"
)

type Attendance struct {
	ID              string
	UserID          string
	CheckIn         time.Time
	CheckOut        *time.Time
	DurationMinutes int
	Status          string
	IsManual        bool
	Note            *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsOpen reports whether the session has no check-out yet.
func (a *Attendance) IsOpen() bool {
	return a.CheckOut == nil
}
