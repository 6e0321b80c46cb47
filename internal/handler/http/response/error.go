package response

import (
	"errors"
	"net/http"

	"github.com/presensia/timetrack-backend-go/internal/domain/attendance"
	"github.com/presensia/timetrack-backend-go/internal/domain/auth"
	"github.com/presensia/timetrack-backend-go/internal/domain/holiday"
	"github.com/presensia/timetrack-backend-go/internal/domain/logbook"
	"github.com/presensia/timetrack-backend-go/internal/domain/user"
	"github.com/presensia/timetrack-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing session token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Session has been logged out")
	case errors.Is(err, auth.ErrEmailNotVerified):
		Forbidden(w, "Google account email not verified")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		BadRequest(w, "OAuth state mismatch", nil)

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNoOpenSession):
		NotFound(w, "No open session found for today")
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, "Check-out must not precede check-in", nil)
	case errors.Is(err, attendance.ErrNotManualRecord):
		Forbidden(w, "Only manual records may be edited or deleted")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "Holiday already exists for this date")
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")

	// Logbook domain errors
	case errors.Is(err, logbook.ErrLogbookEntryNotFound):
		NotFound(w, "Logbook entry not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
