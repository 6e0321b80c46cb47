package holiday

import "errors"

var (
	ErrHolidayExists   = errors.New("holiday already exists for this date")
	ErrHolidayNotFound = errors.New("holiday not found")
)
