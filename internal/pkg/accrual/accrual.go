package accrual

import (
	"fmt"
	"math"
	"time"
)

// MinValidMinutes is the duration threshold for a full working session (8 hours).
// Sessions closing below it are marked SHORT, at or above it VALID. The rule
// applies to both automatic check-out and manual entries.
const MinValidMinutes = 480

// Status values carried on attendance records.
const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
	StatusAbsent  = "ABSENT"
	StatusValid   = "VALID"
	StatusShort   = "SHORT"
)

const dateLayout = "2006-01-02"

// DurationMinutes returns the whole minutes between check-in and check-out,
// rounded down. Never negative.
func DurationMinutes(checkIn, checkOut time.Time) int {
	if checkOut.Before(checkIn) {
		return 0
	}
	return int(checkOut.Sub(checkIn) / time.Minute)
}

// LiveMinutes returns the elapsed whole minutes of an open session. The value
// is reported, never persisted.
func LiveMinutes(checkIn, now time.Time) int {
	return DurationMinutes(checkIn, now)
}

// StatusForDuration maps a closed session's duration to its status.
func StatusForDuration(minutes int) string {
	if minutes >= MinValidMinutes {
		return StatusValid
	}
	return StatusShort
}

// DayBounds returns the inclusive bounds of t's calendar day in loc:
// [00:00:00.000, 23:59:59.999].
func DayBounds(t time.Time, loc *time.Location) (start, end time.Time) {
	local := t.In(loc)
	start = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end = start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}

// ComposeInstant builds an absolute instant from a manual entry's wall-clock
// fields. date is "YYYY-MM-DD", clock is "HH:MM". When utcOffsetMinutes is
// supplied it is added to the wall-clock time to obtain UTC (the conventional
// timezone-offset sign); otherwise the fields are interpreted in loc.
func ComposeInstant(date string, clock string, utcOffsetMinutes *int, loc *time.Location) (time.Time, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	c, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", clock, err)
	}

	if utcOffsetMinutes != nil {
		wall := time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC)
		return wall.Add(time.Duration(*utcOffsetMinutes) * time.Minute), nil
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, loc), nil
}

// DaysInMonth returns the number of calendar days in the month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WorkingDays counts the days of the month that are not Sunday.
func WorkingDays(year int, month time.Month) int {
	days := DaysInMonth(year, month)
	count := 0
	for day := 1; day <= days; day++ {
		if time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday() != time.Sunday {
			count++
		}
	}
	return count
}

// DailyTarget derives the per-day target from the monthly base. Zero working
// days yields zero, guarding the division.
func DailyTarget(monthlyTargetBase, workingDays int) int {
	if workingDays == 0 {
		return 0
	}
	return int(math.Round(float64(monthlyTargetBase) / float64(workingDays)))
}

// MonthlyTargetToDate returns the pro-rated monthly target at now: the full
// month's share for a past month, the elapsed days' share for the current
// month, zero for a future month.
func MonthlyTargetToDate(monthlyTargetBase int, year int, month time.Month, now time.Time) int {
	nowYM := now.Year()*12 + int(now.Month()) - 1
	targetYM := year*12 + int(month) - 1

	if targetYM > nowYM {
		return 0
	}

	days := DaysInMonth(year, month)
	elapsed := days
	if targetYM == nowYM {
		elapsed = now.Day()
	}
	return int(math.Round(float64(monthlyTargetBase) / float64(days) * float64(elapsed)))
}
