package attendance

import (
	"github.com/presensia/timetrack-backend-go/internal/pkg/validator"
)

type AttendanceResponse struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	CheckInTime     string  `json:"check_in_time"`
	CheckOutTime    *string `json:"check_out_time,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	LiveMinutes     *int    `json:"live_minutes,omitempty"`
	Status          string  `json:"status"`
	IsManual        bool    `json:"is_manual"`
	Note            *string `json:"note,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// ManualEntryRequest creates or edits a manual attendance record.
// UTCOffsetMinutes follows the conventional timezone-offset sign: minutes
// added to the wall-clock fields to obtain UTC. Absent, the server zone applies.
type ManualEntryRequest struct {
	ID               string  `json:"-"`
	Date             string  `json:"date"`           // YYYY-MM-DD
	CheckInTime      string  `json:"check_in_time"`  // HH:MM
	CheckOutTime     *string `json:"check_out_time"` // HH:MM, optional
	UTCOffsetMinutes *int    `json:"utc_offset_minutes"`
	Note             *string `json:"note"`
}

func (r *ManualEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.CheckInTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_time",
			Message: "check_in_time is required",
		})
	} else if _, valid := validator.IsValidClock(r.CheckInTime); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_time",
			Message: "check_in_time must be in HH:MM format",
		})
	}

	if r.CheckOutTime != nil && *r.CheckOutTime != "" {
		if _, valid := validator.IsValidClock(*r.CheckOutTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: "check_out_time must be in HH:MM format",
			})
		}
	}

	if r.UTCOffsetMinutes != nil && (*r.UTCOffsetMinutes < -840 || *r.UTCOffsetMinutes > 720) {
		errs = append(errs, validator.ValidationError{
			Field:   "utc_offset_minutes",
			Message: "utc_offset_minutes must be between -840 and 720",
		})
	}

	if r.Note != nil && len(*r.Note) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HistoryFilter struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (f *HistoryFilter) Validate() error {
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

type HistoryResponse struct {
	Month        int                  `json:"month"`
	Year         int                  `json:"year"`
	TotalMinutes int                  `json:"total_minutes"`
	Records      []AttendanceResponse `json:"records"`
}
