package logbook

import (
	"mime/multipart"
	"strings"

	"github.com/presensia/timetrack-backend-go/internal/pkg/validator"
)

type LogbookEntryResponse struct {
	ID                      string  `json:"id"`
	Date                    string  `json:"date"`
	Activity                string  `json:"activity"`
	CheckInTime             *string `json:"check_in_time,omitempty"`
	CheckOutTime            *string `json:"check_out_time,omitempty"`
	AttachmentURL           *string `json:"attachment_url,omitempty"`
	AttachmentName          *string `json:"attachment_name,omitempty"`
	PhysicalRecordConfirmed bool    `json:"physical_record_confirmed"`
	CreatedAt               string  `json:"created_at"`
	UpdatedAt               string  `json:"updated_at"`
}

type SaveEntryRequest struct {
	ID           string  `json:"-"`
	Date         string  `json:"date"` // YYYY-MM-DD
	Activity     string  `json:"activity"`
	CheckInTime  *string `json:"check_in_time"`  // HH:MM
	CheckOutTime *string `json:"check_out_time"` // HH:MM

	// Optional multipart attachment
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

const maxAttachmentSize = 10 << 20 // 10MB

var allowedAttachmentExts = []string{".jpg", ".jpeg", ".png", ".pdf", ".doc", ".docx", ".xls", ".xlsx"}

func (r *SaveEntryRequest) Validate() error {
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

	if validator.IsEmpty(r.Activity) {
		errs = append(errs, validator.ValidationError{
			Field:   "activity",
			Message: "activity is required",
		})
	}
	if len(r.Activity) > 5000 {
		errs = append(errs, validator.ValidationError{
			Field:   "activity",
			Message: "activity must not exceed 5000 characters",
		})
	}

	if r.CheckInTime != nil && *r.CheckInTime != "" {
		if _, valid := validator.IsValidClock(*r.CheckInTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: "check_in_time must be in HH:MM format",
			})
		}
	}
	if r.CheckOutTime != nil && *r.CheckOutTime != "" {
		if _, valid := validator.IsValidClock(*r.CheckOutTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: "check_out_time must be in HH:MM format",
			})
		}
	}

	if r.FileHeader != nil {
		filename := r.FileHeader.Filename
		idx := strings.LastIndex(filename, ".")
		if idx < 0 || !validator.IsInSlice(strings.ToLower(filename[idx:]), allowedAttachmentExts) {
			errs = append(errs, validator.ValidationError{
				Field:   "file",
				Message: "invalid file type: only jpg, jpeg, png, pdf, doc, docx, xls, xlsx allowed",
			})
		} else if r.FileHeader.Size > maxAttachmentSize {
			errs = append(errs, validator.ValidationError{
				Field:   "file",
				Message: "attachment size must not exceed 10MB",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ConfirmEntryRequest struct {
	ID                      string `json:"-"`
	PhysicalRecordConfirmed bool   `json:"physical_record_confirmed"`
}

type ListEntriesFilter struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (f *ListEntriesFilter) Validate() error {
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
