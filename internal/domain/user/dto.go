package user

import "github.com/presensia/timetrack-backend-go/internal/pkg/validator"

type ProfileResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

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

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TargetsResponse struct {
	MonthlyTargetMinutes int `json:"monthly_target_minutes"`
	YearlyTargetMinutes  int `json:"yearly_target_minutes"`
}

type UpdateTargetsRequest struct {
	MonthlyTargetMinutes int `json:"monthly_target_minutes"`
	YearlyTargetMinutes  int `json:"yearly_target_minutes"`
}

func (r *UpdateTargetsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.MonthlyTargetMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "monthly_target_minutes",
			Message: "monthly_target_minutes must not be negative",
		})
	}
	// 31 days of 24h is the hard ceiling for a month of minutes
	if r.MonthlyTargetMinutes > 31*24*60 {
		errs = append(errs, validator.ValidationError{
			Field:   "monthly_target_minutes",
			Message: "monthly_target_minutes exceeds the length of a month",
		})
	}

	if r.YearlyTargetMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "yearly_target_minutes",
			Message: "yearly_target_minutes must not be negative",
		})
	}
	if r.YearlyTargetMinutes > 366*24*60 {
		errs = append(errs, validator.ValidationError{
			Field:   "yearly_target_minutes",
			Message: "yearly_target_minutes exceeds the length of a year",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
