package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/presensia/timetrack-backend-go/internal/domain/attendance"
	"github.com/presensia/timetrack-backend-go/internal/pkg/accrual"
)

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	loc            *time.Location
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository, loc *time.Location) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		loc:            loc,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_sessions", 1*time.Hour, j.AutoCloseStaleSessions)
}

// AutoCloseStaleSessions closes open sessions whose check-in day has passed.
// The session is closed at the final instant of its check-in day, so a
// forgotten check-out never leaks minutes into the next day.
func (j *AttendanceJobs) AutoCloseStaleSessions(ctx context.Context) error {
	_, todayStart := yesterdayBounds(time.Now(), j.loc)

	staleSessions, err := j.attendanceRepo.ListStaleOpenSessions(ctx, todayStart)
	if err != nil {
		return fmt.Errorf("failed to get stale sessions: %w", err)
	}

	if len(staleSessions) == 0 {
		return nil
	}

	closedCount := 0
	for _, session := range staleSessions {
		_, dayEnd := accrual.DayBounds(session.CheckIn, j.loc)

		session.CheckOut = &dayEnd
		session.DurationMinutes = accrual.DurationMinutes(session.CheckIn, dayEnd)
		session.Status = accrual.StatusForDuration(session.DurationMinutes)

		if err := j.attendanceRepo.Update(ctx, session); err != nil {
			slog.Error("Cron: Failed to auto-close session",
				"attendance_id", session.ID,
				"user_id", session.UserID,
				"error", err)
			continue
		}
		closedCount++
	}

	slog.Info("Cron: Auto-closed stale open sessions", "count", closedCount)
	return nil
}

func yesterdayBounds(now time.Time, loc *time.Location) (yesterdayStart, todayStart time.Time) {
	local := now.In(loc)
	todayStart = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	yesterdayStart = todayStart.AddDate(0, 0, -1)
	return yesterdayStart, todayStart
}
