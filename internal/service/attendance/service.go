package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/presensia/timetrack-backend-go/internal/domain/attendance"
	"github.com/presensia/timetrack-backend-go/internal/pkg/accrual"
	"github.com/presensia/timetrack-backend-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	loc *time.Location

	// now is swappable for tests
	now func() time.Time
}

func NewAttendanceService(db *database.DB, attendanceRepository attendance.AttendanceRepository, loc *time.Location) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepository,
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

func (a *AttendanceServiceImpl) toResponse(att attendance.Attendance, now time.Time) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:              att.ID,
		Date:            att.CheckIn.In(a.loc).Format("2006-01-02"),
		CheckInTime:     att.CheckIn.In(a.loc).Format("15:04"),
		DurationMinutes: att.DurationMinutes,
		Status:          att.Status,
		IsManual:        att.IsManual,
		Note:            att.Note,
		CreatedAt:       att.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       att.UpdatedAt.Format(time.RFC3339),
	}
	if att.IsOpen() {
		live := accrual.LiveMinutes(att.CheckIn, now)
		resp.LiveMinutes = &live
	} else {
		out := att.CheckOut.In(a.loc).Format("15:04")
		resp.CheckOutTime = &out
	}
	return resp
}

// CheckIn implements attendance.AttendanceService. A day with any existing
// check-in (open or closed) rejects another one; the storage constraint on
// open sessions backstops concurrent requests.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.AttendanceResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.now()
	dayStart, dayEnd := accrual.DayBounds(now, a.loc)

	taken, err := a.AttendanceRepository.HasCheckInInRange(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if taken {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		UserID:  userID,
		CheckIn: now,
		Status:  accrual.StatusPresent,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.toResponse(created, now), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.now()
	dayStart, dayEnd := accrual.DayBounds(now, a.loc)

	open, err := a.AttendanceRepository.GetOpenSession(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if open == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoOpenSession
	}

	checkOut := now
	open.CheckOut = &checkOut
	open.DurationMinutes = accrual.DurationMinutes(open.CheckIn, checkOut)
	open.Status = accrual.StatusForDuration(open.DurationMinutes)

	if err := a.AttendanceRepository.Update(ctx, *open); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.toResponse(*open, now), nil
}

// History implements attendance.AttendanceService. Filter defaults to the
// current month in the server timezone.
func (a *AttendanceServiceImpl) History(ctx context.Context, filter attendance.HistoryFilter) (attendance.HistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.HistoryResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.HistoryResponse{}, err
	}

	now := a.now().In(a.loc)
	month := filter.Month
	year := filter.Year
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, a.loc)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)

	records, err := a.AttendanceRepository.ListByCheckInRange(ctx, userID, start, end)
	if err != nil {
		return attendance.HistoryResponse{}, err
	}

	resp := attendance.HistoryResponse{
		Month:   month,
		Year:    year,
		Records: make([]attendance.AttendanceResponse, 0, len(records)),
	}
	for _, att := range records {
		r := a.toResponse(att, a.now())
		if r.LiveMinutes != nil {
			resp.TotalMinutes += *r.LiveMinutes
		} else {
			resp.TotalMinutes += att.DurationMinutes
		}
		resp.Records = append(resp.Records, r)
	}

	return resp, nil
}

func (a *AttendanceServiceImpl) composeManualTimes(req attendance.ManualEntryRequest) (checkIn time.Time, checkOut *time.Time, err error) {
	checkIn, err = accrual.ComposeInstant(req.Date, req.CheckInTime, req.UTCOffsetMinutes, a.loc)
	if err != nil {
		return time.Time{}, nil, err
	}

	if req.CheckOutTime != nil && *req.CheckOutTime != "" {
		out, err := accrual.ComposeInstant(req.Date, *req.CheckOutTime, req.UTCOffsetMinutes, a.loc)
		if err != nil {
			return time.Time{}, nil, err
		}
		if out.Before(checkIn) {
			return time.Time{}, nil, attendance.ErrCheckOutBeforeCheckIn
		}
		checkOut = &out
	}
	return checkIn, checkOut, nil
}

// CreateManual implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CreateManual(ctx context.Context, req attendance.ManualEntryRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkIn, checkOut, err := a.composeManualTimes(req)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att := attendance.Attendance{
		UserID:   userID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		IsManual: true,
		Note:     req.Note,
		Status:   accrual.StatusPresent,
	}
	if checkOut != nil {
		att.DurationMinutes = accrual.DurationMinutes(checkIn, *checkOut)
		att.Status = accrual.StatusForDuration(att.DurationMinutes)
	}

	created, err := a.AttendanceRepository.Create(ctx, att)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.toResponse(created, a.now()), nil
}

// UpdateManual implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateManual(ctx context.Context, req attendance.ManualEntryRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := a.AttendanceRepository.GetByID(ctx, req.ID, userID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !existing.IsManual {
		return attendance.AttendanceResponse{}, attendance.ErrNotManualRecord
	}

	checkIn, checkOut, err := a.composeManualTimes(req)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing.CheckIn = checkIn
	existing.CheckOut = checkOut
	existing.Note = req.Note
	existing.DurationMinutes = 0
	existing.Status = accrual.StatusPresent
	if checkOut != nil {
		existing.DurationMinutes = accrual.DurationMinutes(checkIn, *checkOut)
		existing.Status = accrual.StatusForDuration(existing.DurationMinutes)
	}

	if err := a.AttendanceRepository.Update(ctx, existing); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.toResponse(existing, a.now()), nil
}

// DeleteManual implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteManual(ctx context.Context, id string) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	existing, err := a.AttendanceRepository.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if !existing.IsManual {
		return attendance.ErrNotManualRecord
	}

	return a.AttendanceRepository.Delete(ctx, id, userID)
}
