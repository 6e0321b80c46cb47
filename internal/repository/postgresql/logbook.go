package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/presensia/timetrack-backend-go/internal/domain/logbook"
	"github.com/presensia/timetrack-backend-go/internal/pkg/database"
)

type logbookRepository struct {
	db *database.DB
}

func NewLogbookRepository(db *database.DB) logbook.LogbookRepository {
	return &logbookRepository{db: db}
}

const logbookColumns = `id, user_id, date, activity, check_in_time, check_out_time,
	   attachment_url, attachment_name, physical_record_confirmed, created_at, updated_at`

func scanLogbookEntry(row pgx.Row) (logbook.LogbookEntry, error) {
	var e logbook.LogbookEntry
	err := row.Scan(
		&e.ID, &e.UserID, &e.Date, &e.Activity, &e.CheckInTime, &e.CheckOutTime,
		&e.AttachmentURL, &e.AttachmentName, &e.PhysicalRecordConfirmed, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// Create implements logbook.LogbookRepository.
func (r *logbookRepository) Create(ctx context.Context, entry logbook.LogbookEntry) (logbook.LogbookEntry, error) {
	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	query := `
		INSERT INTO logbook_entries (
			id, user_id, date, activity, check_in_time, check_out_time,
			attachment_url, attachment_name, physical_record_confirmed
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Date,
		entry.Activity,
		entry.CheckInTime,
		entry.CheckOutTime,
		entry.AttachmentURL,
		entry.AttachmentName,
		entry.PhysicalRecordConfirmed,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return logbook.LogbookEntry{}, fmt.Errorf("failed to create logbook entry: %w", err)
	}

	return entry, nil
}

// GetByID implements logbook.LogbookRepository.
func (r *logbookRepository) GetByID(ctx context.Context, id string, userID string) (logbook.LogbookEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + logbookColumns + ` FROM logbook_entries WHERE id = $1 AND user_id = $2`

	e, err := scanLogbookEntry(q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return logbook.LogbookEntry{}, logbook.ErrLogbookEntryNotFound
		}
		return logbook.LogbookEntry{}, fmt.Errorf("failed to get logbook entry by id: %w", err)
	}
	return e, nil
}

// ListByDateRange implements logbook.LogbookRepository.
func (r *logbookRepository) ListByDateRange(ctx context.Context, userID string, start, end time.Time) ([]logbook.LogbookEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + logbookColumns + `
		FROM logbook_entries
		WHERE user_id = $1
		  AND date >= $2 AND date < $3
		ORDER BY date ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query logbook entries: %w", err)
	}
	defer rows.Close()

	var entries []logbook.LogbookEntry
	for rows.Next() {
		e, err := scanLogbookEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan logbook entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Update implements logbook.LogbookRepository.
func (r *logbookRepository) Update(ctx context.Context, entry logbook.LogbookEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE logbook_entries
		SET date = $1, activity = $2, check_in_time = $3, check_out_time = $4,
		    attachment_url = $5, attachment_name = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		entry.Date, entry.Activity, entry.CheckInTime, entry.CheckOutTime,
		entry.AttachmentURL, entry.AttachmentName, time.Now(),
		entry.ID, entry.UserID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return logbook.ErrLogbookEntryNotFound
		}
		return fmt.Errorf("failed to update logbook entry: %w", err)
	}
	return nil
}

// SetConfirmed implements logbook.LogbookRepository.
func (r *logbookRepository) SetConfirmed(ctx context.Context, id string, userID string, confirmed bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE logbook_entries
		SET physical_record_confirmed = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, confirmed, time.Now(), id, userID).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return logbook.ErrLogbookEntryNotFound
		}
		return fmt.Errorf("failed to update logbook confirmation: %w", err)
	}
	return nil
}

// Delete implements logbook.LogbookRepository.
func (r *logbookRepository) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM logbook_entries WHERE id = $1 AND user_id = $2`

	commandTag, err := q.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete logbook entry: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return logbook.ErrLogbookEntryNotFound
	}
	return nil
}
