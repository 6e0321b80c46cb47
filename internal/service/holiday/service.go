package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/presensia/timetrack-backend-go/internal/domain/holiday"
	"github.com/presensia/timetrack-backend-go/internal/pkg/accrual"
	"github.com/presensia/timetrack-backend-go/internal/pkg/database"
)

type HolidayServiceImpl struct {
	db *database.DB
	holiday.HolidayRepository
	loc *time.Location
}

func NewHolidayService(db *database.DB, holidayRepository holiday.HolidayRepository, loc *time.Location) holiday.HolidayService {
	return &HolidayServiceImpl{
		db:                db,
		HolidayRepository: holidayRepository,
		loc:               loc,
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

func toResponse(h holiday.Holiday) holiday.HolidayResponse {
	return holiday.HolidayResponse{
		ID:     h.ID,
		Date:   h.DateString,
		Name:   h.Name,
		Type:   h.Type,
		UserID: h.UserID,
	}
}

// List implements holiday.HolidayService. With no filter every visible entry
// is returned; month and year bound the range when supplied.
func (s *HolidayServiceImpl) List(ctx context.Context, filter holiday.ListHolidaysFilter) ([]holiday.HolidayResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var start, end *time.Time
	if filter.Year != 0 {
		from := time.Date(filter.Year, time.January, 1, 0, 0, 0, 0, s.loc)
		to := from.AddDate(1, 0, 0)
		if filter.Month != 0 {
			from = time.Date(filter.Year, time.Month(filter.Month), 1, 0, 0, 0, 0, s.loc)
			to = from.AddDate(0, 1, 0)
		}
		start, end = &from, &to
	}

	entries, err := s.HolidayRepository.ListVisible(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	responses := make([]holiday.HolidayResponse, 0, len(entries))
	for _, h := range entries {
		responses = append(responses, toResponse(h))
	}
	return responses, nil
}

// Create implements holiday.HolidayService. GLOBAL entries are shared and
// carry no owner; PERSONAL and PIKET entries belong to the caller.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	if err != nil {
		return holiday.HolidayResponse{}, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}

	entry := holiday.Holiday{
		Date:       date,
		DateString: date.Format("2006-01-02"),
		Name:       req.Name,
		Type:       req.Type,
	}
	if req.Type != holiday.TypeGlobal {
		entry.UserID = &userID
	}

	created, err := s.HolidayRepository.Create(ctx, entry)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	return toResponse(created), nil
}

// Delete implements holiday.HolidayService.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.HolidayRepository.Delete(ctx, id, userID)
}

// CalendarForYear implements holiday.HolidayService. PIKET entries win over
// holidays on the same date so a scheduled duty day stays a working day.
func (s *HolidayServiceImpl) CalendarForYear(ctx context.Context, userID string, year int) (accrual.HolidayCalendar, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)
	to := from.AddDate(1, 0, 0)

	entries, err := s.HolidayRepository.ListVisible(ctx, userID, &from, &to)
	if err != nil {
		return nil, err
	}

	cal := make(accrual.HolidayCalendar, len(entries))
	for _, h := range entries {
		if h.Type == holiday.TypePiket {
			cal[h.DateString] = accrual.DayPiket
			continue
		}
		if cal[h.DateString] != accrual.DayPiket {
			cal[h.DateString] = accrual.DayOff
		}
	}
	return cal, nil
}
