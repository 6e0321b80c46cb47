package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in/check-out errors
	ErrAlreadyCheckedIn = errors.New("you have already checked in today")
	ErrNoOpenSession    = errors.New("no open session found for today")

	// Manual entry errors
	ErrCheckOutBeforeCheckIn = errors.New("check-out must not precede check-in")
	ErrNotManualRecord       = errors.New("only manual records may be edited or deleted")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
