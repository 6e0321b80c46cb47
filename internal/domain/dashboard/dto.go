package dashboard

import "github.com/presensia/timetrack-backend-go/internal/pkg/validator"

type DashboardFilter struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (f *DashboardFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != 0 && !validator.IsValidMonth(f.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if f.Year != 0 && !validator.IsValidYear(f.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DashboardResponse aggregates attendance accrual against targets. Live
// minutes of an open session are included once in today's, the monthly and
// the yearly totals.
type DashboardResponse struct {
	Month int `json:"month"`
	Year  int `json:"year"`

	TodayMinutes   int  `json:"today_minutes"`
	HasOpenSession bool `json:"has_open_session"`
	LiveMinutes    int  `json:"live_minutes"`

	MonthlyMinutes      int     `json:"monthly_minutes"`
	MonthlyTarget       int     `json:"monthly_target"`
	MonthlyTargetToDate int     `json:"monthly_target_to_date"`
	MonthlyProgress     float64 `json:"monthly_progress"`

	YearlyMinutes  int     `json:"yearly_minutes"`
	YearlyTarget   int     `json:"yearly_target"`
	YearlyProgress float64 `json:"yearly_progress"`

	WorkingDaysInMonth int `json:"working_days_in_month"`
	DailyTarget        int `json:"daily_target"`
}
