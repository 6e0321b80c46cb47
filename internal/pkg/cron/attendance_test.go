package cron

import (
	"context"
	"testing"
	"time"

	"github.com/presensia/timetrack-backend-go/internal/domain/attendance"
	"github.com/presensia/timetrack-backend-go/internal/pkg/accrual"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	f.records[att.ID] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string, userID string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetOpenSession(ctx context.Context, userID string, dayStart, dayEnd time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) HasCheckInInRange(ctx context.Context, userID string, dayStart, dayEnd time.Time) (bool, error) {
	return false, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	f.records[att.ID] = att
	return nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string, userID string) error {
	return nil
}

func (f *fakeAttendanceRepo) ListByCheckInRange(ctx context.Context, userID string, start, end time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) SumDurationInRange(ctx context.Context, userID string, start, end time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeAttendanceRepo) ListStaleOpenSessions(ctx context.Context, cutoff time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.CheckOut == nil && att.CheckIn.Before(cutoff) {
			out = append(out, att)
		}
	}
	return out, nil
}

func TestAutoCloseStaleSessions(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// Check-in at 09:00 two days ago, never checked out
	staleCheckIn := time.Now().In(loc).AddDate(0, 0, -2)
	staleCheckIn = time.Date(staleCheckIn.Year(), staleCheckIn.Month(), staleCheckIn.Day(), 9, 0, 0, 0, loc)

	// Open session from today must stay open
	todayCheckIn := time.Now().In(loc).Add(-time.Hour)

	repo := &fakeAttendanceRepo{records: map[string]attendance.Attendance{
		"stale": {ID: "stale", UserID: "user-1", CheckIn: staleCheckIn, Status: accrual.StatusPresent},
		"today": {ID: "today", UserID: "user-1", CheckIn: todayCheckIn, Status: accrual.StatusPresent},
	}}

	jobs := NewAttendanceJobs(repo, loc)
	require.NoError(t, jobs.AutoCloseStaleSessions(context.Background()))

	closed := repo.records["stale"]
	require.NotNil(t, closed.CheckOut)

	// Closed at the final instant of its check-in day
	_, dayEnd := accrual.DayBounds(staleCheckIn, loc)
	assert.True(t, closed.CheckOut.Equal(dayEnd))

	// 09:00 to 23:59:59.999 floors to 899 minutes, above the 8h threshold
	assert.Equal(t, 899, closed.DurationMinutes)
	assert.Equal(t, accrual.StatusValid, closed.Status)

	stillOpen := repo.records["today"]
	assert.Nil(t, stillOpen.CheckOut)
	assert.Equal(t, accrual.StatusPresent, stillOpen.Status)
}

func TestSchedulerRunOnce(t *testing.T) {
	scheduler := NewScheduler()

	ran := 0
	scheduler.AddJob("count", time.Hour, func(ctx context.Context) error {
		ran++
		return nil
	})

	scheduler.RunOnce(context.Background())
	assert.Equal(t, 1, ran)
}
