package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/presensia/timetrack-backend-go/internal/domain/holiday"
	"github.com/presensia/timetrack-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

const holidayColumns = `id, date, date_string, name, type, user_id, created_at`

func scanHoliday(row pgx.Row) (holiday.Holiday, error) {
	var h holiday.Holiday
	err := row.Scan(&h.ID, &h.Date, &h.DateString, &h.Name, &h.Type, &h.UserID, &h.CreatedAt)
	return h, err
}

// Create implements holiday.HolidayRepository.
// The holidays table carries a compound unique constraint on
// (date_string, type, user_id); violations surface as ErrHolidayExists.
func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	if h.ID == "" {
		h.ID = uuid.NewString()
	}

	query := `
		INSERT INTO holidays (id, date, date_string, name, type, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, h.ID, h.Date, h.DateString, h.Name, h.Type, h.UserID).Scan(&h.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return h, nil
}

// GetByID implements holiday.HolidayRepository.
func (r *holidayRepository) GetByID(ctx context.Context, id string, userID string) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + holidayColumns + `
		FROM holidays
		WHERE id = $1 AND (user_id = $2 OR user_id IS NULL)
	`

	h, err := scanHoliday(q.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, fmt.Errorf("failed to get holiday by id: %w", err)
	}
	return h, nil
}

// ListVisible implements holiday.HolidayRepository.
func (r *holidayRepository) ListVisible(ctx context.Context, userID string, start, end *time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "(user_id = $1 OR user_id IS NULL)"
	args := []interface{}{userID}
	argIdx := 2

	if start != nil {
		baseWhere += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, *start)
		argIdx++
	}
	if end != nil {
		baseWhere += fmt.Sprintf(" AND date < $%d", argIdx)
		args = append(args, *end)
		argIdx++
	}

	query := `
		SELECT ` + holidayColumns + `
		FROM holidays
		WHERE ` + baseWhere + `
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}

	return holidays, rows.Err()
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepository) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM holidays WHERE id = $1 AND (user_id = $2 OR user_id IS NULL)`

	commandTag, err := q.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}
