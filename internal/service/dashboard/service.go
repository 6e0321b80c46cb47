package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/presensia/timetrack-backend-go/internal/domain/attendance"
	"github.com/presensia/timetrack-backend-go/internal/domain/dashboard"
	"github.com/presensia/timetrack-backend-go/internal/domain/holiday"
	"github.com/presensia/timetrack-backend-go/internal/domain/user"
	"github.com/presensia/timetrack-backend-go/internal/pkg/accrual"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	attendance.AttendanceRepository
	user.UserRepository
	holidayService holiday.HolidayService
	loc            *time.Location

	now func() time.Time
}

func NewDashboardService(attendanceRepository attendance.AttendanceRepository, userRepository user.UserRepository, holidayService holiday.HolidayService, loc *time.Location) dashboard.DashboardService {
	return &DashboardServiceImpl{
		AttendanceRepository: attendanceRepository,
		UserRepository:       userRepository,
		holidayService:       holidayService,
		loc:                  loc,
		now:                  time.Now,
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

func progressPercent(minutes, target int) float64 {
	if target <= 0 {
		return 0
	}
	return float64(minutes) / float64(target) * 100
}

// GetDashboard combines targets, accrued minutes and the working-day calendar
// using parallel goroutines, one query each.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, filter dashboard.DashboardFilter) (dashboard.DashboardResponse, error) {
	if err := filter.Validate(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}

	now := s.now().In(s.loc)
	month := filter.Month
	year := filter.Year
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Millisecond)
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)
	yearEnd := yearStart.AddDate(1, 0, 0).Add(-time.Millisecond)
	dayStart, dayEnd := accrual.DayBounds(now, s.loc)

	var (
		userData    user.User
		monthlySum  int64
		yearlySum   int64
		todaySum    int64
		openSession *attendance.Attendance
		calendar    accrual.HolidayCalendar
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		userData, err = s.UserRepository.GetByID(gCtx, userID)
		return err
	})

	g.Go(func() error {
		var err error
		monthlySum, err = s.AttendanceRepository.SumDurationInRange(gCtx, userID, monthStart, monthEnd)
		return err
	})

	g.Go(func() error {
		var err error
		yearlySum, err = s.AttendanceRepository.SumDurationInRange(gCtx, userID, yearStart, yearEnd)
		return err
	})

	g.Go(func() error {
		var err error
		todaySum, err = s.AttendanceRepository.SumDurationInRange(gCtx, userID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		openSession, err = s.AttendanceRepository.GetOpenSession(gCtx, userID, dayStart, dayEnd)
		return err
	})

	g.Go(func() error {
		var err error
		calendar, err = s.holidayService.CalendarForYear(gCtx, userID, year)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	resp := dashboard.DashboardResponse{
		Month:         month,
		Year:          year,
		TodayMinutes:  int(todaySum),
		MonthlyTarget: userData.MonthlyTargetMinutes,
		YearlyTarget:  userData.YearlyTargetMinutes,
	}

	// An open session has no persisted duration; its elapsed minutes count
	// once in today's, the monthly and the yearly totals.
	live := 0
	if openSession != nil {
		resp.HasOpenSession = true
		live = accrual.LiveMinutes(openSession.CheckIn, s.now())
		resp.LiveMinutes = live
		resp.TodayMinutes += live
	}

	resp.MonthlyMinutes = int(monthlySum)
	if openSession != nil && !openSession.CheckIn.Before(monthStart) && !openSession.CheckIn.After(monthEnd) {
		resp.MonthlyMinutes += live
	}
	resp.YearlyMinutes = int(yearlySum)
	if openSession != nil && !openSession.CheckIn.Before(yearStart) && !openSession.CheckIn.After(yearEnd) {
		resp.YearlyMinutes += live
	}

	resp.WorkingDaysInMonth = accrual.WorkingDaysInCalendar(year, time.Month(month), calendar)
	resp.DailyTarget = accrual.DailyTarget(userData.MonthlyTargetMinutes, resp.WorkingDaysInMonth)
	resp.MonthlyTargetToDate = accrual.MonthlyTargetToDate(userData.MonthlyTargetMinutes, year, time.Month(month), now)
	resp.MonthlyProgress = progressPercent(resp.MonthlyMinutes, resp.MonthlyTarget)
	resp.YearlyProgress = progressPercent(resp.YearlyMinutes, resp.YearlyTarget)

	return resp, nil
}
