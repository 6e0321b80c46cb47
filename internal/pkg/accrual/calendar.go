package accrual

import "time"

// DayKind classifies a calendar date for working-day counting.
type DayKind int

const (
	// DayRegular means no calendar entry: weekday rules apply.
	DayRegular DayKind = iota
	// DayOff is a GLOBAL or PERSONAL holiday: never a working day.
	DayOff
	// DayPiket converts a normally non-working day into a working day.
	DayPiket
)

// HolidayCalendar maps canonical date strings (YYYY-MM-DD) to their kind.
type HolidayCalendar map[string]DayKind

// Kind returns the calendar entry for date, DayRegular when absent.
func (c HolidayCalendar) Kind(date time.Time) DayKind {
	if c == nil {
		return DayRegular
	}
	return c[date.Format(dateLayout)]
}

// IsWorkingDay is the single authority on whether a date counts toward the
// monthly target denominator: PIKET entries force a working day, holidays
// force a day off, otherwise every day except Sunday works.
func IsWorkingDay(date time.Time, cal HolidayCalendar) bool {
	switch cal.Kind(date) {
	case DayPiket:
		return true
	case DayOff:
		return false
	}
	return date.Weekday() != time.Sunday
}

// WorkingDaysInCalendar counts the month's working days with the holiday
// calendar merged in.
func WorkingDaysInCalendar(year int, month time.Month, cal HolidayCalendar) int {
	days := DaysInMonth(year, month)
	count := 0
	for day := 1; day <= days; day++ {
		if IsWorkingDay(time.Date(year, month, day, 0, 0, 0, 0, time.UTC), cal) {
			count++
		}
	}
	return count
}
