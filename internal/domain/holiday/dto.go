package holiday

import (
	"github.com/presensia/timetrack-backend-go/internal/pkg/validator"
)

type HolidayResponse struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	UserID *string `json:"user_id,omitempty"`
}

type CreateHolidayRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name"`
	Type string `json:"type"` // GLOBAL, PERSONAL or PIKET
}

func (r *CreateHolidayRequest) Validate() error {
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

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if !validator.IsInSlice(r.Type, []string{TypeGlobal, TypePersonal, TypePiket}) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: GLOBAL, PERSONAL, PIKET",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListHolidaysFilter struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (f *ListHolidaysFilter) Validate() error {
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
