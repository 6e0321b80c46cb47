package holiday

import (
	"context"

	"github.com/presensia/timetrack-backend-go/internal/pkg/accrual"
)

type HolidayService interface {
	List(ctx context.Context, filter ListHolidaysFilter) ([]HolidayResponse, error)
	Create(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error

	// CalendarForYear builds the accrual calendar feeding working-day counts
	CalendarForYear(ctx context.Context, userID string, year int) (accrual.HolidayCalendar, error)
}
