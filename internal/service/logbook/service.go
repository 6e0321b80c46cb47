package logbook

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/presensia/timetrack-backend-go/internal/domain/logbook"
	"github.com/presensia/timetrack-backend-go/internal/pkg/database"
	"github.com/presensia/timetrack-backend-go/internal/service/file"
)

type LogbookServiceImpl struct {
	db *database.DB
	logbook.LogbookRepository
	fileService file.FileService
	loc         *time.Location
}

func NewLogbookService(db *database.DB, logbookRepository logbook.LogbookRepository, fileService file.FileService, loc *time.Location) logbook.LogbookService {
	return &LogbookServiceImpl{
		db:                db,
		LogbookRepository: logbookRepository,
		fileService:       fileService,
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

func toResponse(e logbook.LogbookEntry) logbook.LogbookEntryResponse {
	return logbook.LogbookEntryResponse{
		ID:                      e.ID,
		Date:                    e.Date.Format("2006-01-02"),
		Activity:                e.Activity,
		CheckInTime:             e.CheckInTime,
		CheckOutTime:            e.CheckOutTime,
		AttachmentURL:           e.AttachmentURL,
		AttachmentName:          e.AttachmentName,
		PhysicalRecordConfirmed: e.PhysicalRecordConfirmed,
		CreatedAt:               e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:               e.UpdatedAt.Format(time.RFC3339),
	}
}

// List implements logbook.LogbookService. Filter defaults to the current month.
func (s *LogbookServiceImpl) List(ctx context.Context, filter logbook.ListEntriesFilter) ([]logbook.LogbookEntryResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(s.loc)
	month := filter.Month
	year := filter.Year
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 1, 0)

	entries, err := s.LogbookRepository.ListByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	responses := make([]logbook.LogbookEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, toResponse(e))
	}
	return responses, nil
}

// Create implements logbook.LogbookService.
func (s *LogbookServiceImpl) Create(ctx context.Context, req logbook.SaveEntryRequest) (logbook.LogbookEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return logbook.LogbookEntryResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return logbook.LogbookEntryResponse{}, err
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	if err != nil {
		return logbook.LogbookEntryResponse{}, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}

	entry := logbook.LogbookEntry{
		UserID:       userID,
		Date:         date,
		Activity:     req.Activity,
		CheckInTime:  req.CheckInTime,
		CheckOutTime: req.CheckOutTime,
	}

	if req.File != nil && req.FileHeader != nil {
		url, err := s.fileService.UploadLogbookAttachment(ctx, userID, req.File, req.FileHeader.Filename)
		if err != nil {
			return logbook.LogbookEntryResponse{}, err
		}
		entry.AttachmentURL = &url
		entry.AttachmentName = &req.FileHeader.Filename
	}

	created, err := s.LogbookRepository.Create(ctx, entry)
	if err != nil {
		return logbook.LogbookEntryResponse{}, err
	}

	return toResponse(created), nil
}

// Update implements logbook.LogbookService. A new attachment replaces the old
// one, which is removed from storage.
func (s *LogbookServiceImpl) Update(ctx context.Context, req logbook.SaveEntryRequest) (logbook.LogbookEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return logbook.LogbookEntryResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return logbook.LogbookEntryResponse{}, err
	}

	existing, err := s.LogbookRepository.GetByID(ctx, req.ID, userID)
	if err != nil {
		return logbook.LogbookEntryResponse{}, err
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	if err != nil {
		return logbook.LogbookEntryResponse{}, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}

	existing.Date = date
	existing.Activity = req.Activity
	existing.CheckInTime = req.CheckInTime
	existing.CheckOutTime = req.CheckOutTime

	if req.File != nil && req.FileHeader != nil {
		url, err := s.fileService.UploadLogbookAttachment(ctx, userID, req.File, req.FileHeader.Filename)
		if err != nil {
			return logbook.LogbookEntryResponse{}, err
		}
		if existing.AttachmentURL != nil {
			if err := s.fileService.DeleteFile(ctx, *existing.AttachmentURL); err != nil {
				return logbook.LogbookEntryResponse{}, fmt.Errorf("failed to remove previous attachment: %w", err)
			}
		}
		existing.AttachmentURL = &url
		existing.AttachmentName = &req.FileHeader.Filename
	}

	if err := s.LogbookRepository.Update(ctx, existing); err != nil {
		return logbook.LogbookEntryResponse{}, err
	}

	return toResponse(existing), nil
}

// SetConfirmed implements logbook.LogbookService.
func (s *LogbookServiceImpl) SetConfirmed(ctx context.Context, req logbook.ConfirmEntryRequest) (logbook.LogbookEntryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return logbook.LogbookEntryResponse{}, err
	}

	if err := s.LogbookRepository.SetConfirmed(ctx, req.ID, userID, req.PhysicalRecordConfirmed); err != nil {
		return logbook.LogbookEntryResponse{}, err
	}

	entry, err := s.LogbookRepository.GetByID(ctx, req.ID, userID)
	if err != nil {
		return logbook.LogbookEntryResponse{}, err
	}
	return toResponse(entry), nil
}

// Delete implements logbook.LogbookService. The stored attachment, if any, is
// removed with the entry.
func (s *LogbookServiceImpl) Delete(ctx context.Context, id string) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	existing, err := s.LogbookRepository.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.LogbookRepository.Delete(ctx, id, userID); err != nil {
		return err
	}

	if existing.AttachmentURL != nil {
		if err := s.fileService.DeleteFile(ctx, *existing.AttachmentURL); err != nil {
			return fmt.Errorf("failed to remove attachment: %w", err)
		}
	}
	return nil
}
