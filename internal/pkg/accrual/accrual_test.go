package accrual

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationMinutes(t *testing.T) {
	in := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		out  time.Time
		want int
	}{
		{"full day shift", in.Add(8*time.Hour + 30*time.Minute), 510},
		{"rounds down", in.Add(59 * time.Second), 0},
		{"rounds down partial minute", in.Add(10*time.Minute + 59*time.Second), 10},
		{"zero duration", in, 0},
		{"checkout before checkin clamps to zero", in.Add(-time.Hour), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, DurationMinutes(in, c.out))
		})
	}
}

func TestStatusForDuration(t *testing.T) {
	assert.Equal(t, StatusValid, StatusForDuration(480))
	assert.Equal(t, StatusValid, StatusForDuration(510))
	assert.Equal(t, StatusShort, StatusForDuration(479))
	assert.Equal(t, StatusShort, StatusForDuration(0))
}

func TestCheckOutExample(t *testing.T) {
	// 09:00 UTC to 17:30 UTC is 510 minutes and a valid session.
	in := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	out := time.Date(2025, 6, 2, 17, 30, 0, 0, time.UTC)
	mins := DurationMinutes(in, out)
	assert.Equal(t, 510, mins)
	assert.Equal(t, StatusValid, StatusForDuration(mins))
}

func TestLiveMinutes(t *testing.T) {
	in := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	now := in.Add(95*time.Minute + 30*time.Second)
	assert.Equal(t, 95, LiveMinutes(in, now))
}

func TestDayBounds(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 01:30 UTC is 08:30 local on the same date.
	at := time.Date(2025, 5, 20, 1, 30, 0, 0, time.UTC)
	start, end := DayBounds(at, loc)

	assert.Equal(t, time.Date(2025, 5, 20, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 5, 20, 23, 59, 59, 999000000, loc), end)
	assert.True(t, start.Before(at) && at.Before(end))
}

func TestDayBoundsCrossesUTCDate(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 20:00 UTC is already 03:00 the next day in UTC+7.
	at := time.Date(2025, 5, 20, 20, 0, 0, 0, time.UTC)
	start, _ := DayBounds(at, loc)
	assert.Equal(t, time.Date(2025, 5, 21, 0, 0, 0, 0, loc), start)
}

func TestComposeInstantWithOffset(t *testing.T) {
	// UTC+7 client reports offset -420 (minutes added to wall clock to reach UTC).
	offset := -420
	got, err := ComposeInstant("2025-04-01", "09:00", &offset, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 1, 2, 0, 0, 0, time.UTC), got)
}

func TestComposeInstantZeroOffsetRoundTrip(t *testing.T) {
	// Zero offset: reading the instant back in UTC yields the same wall clock.
	offset := 0
	got, err := ComposeInstant("2025-04-01", "09:15", &offset, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", got.UTC().Format("2006-01-02"))
	assert.Equal(t, "09:15", got.UTC().Format("15:04"))
}

func TestComposeInstantServerZone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	got, err := ComposeInstant("2025-04-01", "09:00", nil, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 1, 9, 0, 0, 0, loc), got)
}

func TestComposeInstantRejectsMalformedInput(t *testing.T) {
	_, err := ComposeInstant("01-04-2025", "09:00", nil, time.UTC)
	assert.Error(t, err)

	_, err = ComposeInstant("2025-04-01", "9am", nil, time.UTC)
	assert.Error(t, err)
}

func TestWorkingDays(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		// March 2025: 31 days, 5 Sundays.
		{2025, time.March, 26},
		// August 2025: 31 days, 5 Sundays.
		{2025, time.August, 26},
		// June 2025: 30 days, 5 Sundays.
		{2025, time.June, 25},
		// February 2025: 28 days, 4 Sundays.
		{2025, time.February, 24},
		// December 2024: 31 days, 5 Sundays.
		{2024, time.December, 26},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, WorkingDays(c.year, c.month), "%d-%d", c.year, c.month)
	}
}

func TestWorkingDaysEqualsDaysMinusSundays(t *testing.T) {
	for _, month := range []time.Month{time.January, time.April, time.July, time.October} {
		days := DaysInMonth(2025, month)
		sundays := 0
		for day := 1; day <= days; day++ {
			if time.Date(2025, month, day, 0, 0, 0, 0, time.UTC).Weekday() == time.Sunday {
				sundays++
			}
		}
		assert.Equal(t, days-sundays, WorkingDays(2025, month))
	}
}

func TestDailyTarget(t *testing.T) {
	// 31-day month with 4 Sundays: 27 working days, round(11240/27) = 416.
	assert.Equal(t, 416, DailyTarget(11240, 27))
	assert.Equal(t, 0, DailyTarget(11240, 0))
	assert.Equal(t, 500, DailyTarget(13000, 26))
}

func TestMonthlyTargetToDate(t *testing.T) {
	base := 11240
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("future month is zero", func(t *testing.T) {
		assert.Equal(t, 0, MonthlyTargetToDate(base, 2025, time.July, now))
		assert.Equal(t, 0, MonthlyTargetToDate(base, 2026, time.January, now))
	})

	t.Run("past month uses full days", func(t *testing.T) {
		assert.Equal(t, base, MonthlyTargetToDate(base, 2025, time.May, now))
		assert.Equal(t, base, MonthlyTargetToDate(base, 2024, time.December, now))
	})

	t.Run("current month uses elapsed days", func(t *testing.T) {
		// June has 30 days, 15 elapsed: exactly half.
		assert.Equal(t, 5620, MonthlyTargetToDate(base, 2025, time.June, now))
	})
}

func TestIsWorkingDay(t *testing.T) {
	sunday := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	t.Run("weekday rules without calendar", func(t *testing.T) {
		assert.False(t, IsWorkingDay(sunday, nil))
		assert.True(t, IsWorkingDay(monday, nil))
	})

	t.Run("holiday forces day off", func(t *testing.T) {
		cal := HolidayCalendar{"2025-06-02": DayOff}
		assert.False(t, IsWorkingDay(monday, cal))
	})

	t.Run("piket converts sunday into working day", func(t *testing.T) {
		cal := HolidayCalendar{"2025-06-01": DayPiket}
		assert.True(t, IsWorkingDay(sunday, cal))
	})
}

func TestWorkingDaysInCalendar(t *testing.T) {
	// June 2025: 25 working days without a calendar.
	base := WorkingDaysInCalendar(2025, time.June, nil)
	assert.Equal(t, 25, base)

	cal := HolidayCalendar{
		"2025-06-02": DayOff,   // Monday holiday
		"2025-06-03": DayOff,   // Tuesday holiday
		"2025-06-01": DayPiket, // Sunday converted to working day
	}
	assert.Equal(t, base-2+1, WorkingDaysInCalendar(2025, time.June, cal))
}
