package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, start_time, end_time, is_part_time, is_active, created_at, updated_at
		FROM shift_templates
		WHERE id = $1
	`
	var s shift.ShiftTemplate
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.StartTime, &s.EndTime,
		&s.IsPartTime, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftTemplate{}, shift.ErrShiftNotFound
		}
		return shift.ShiftTemplate{}, err
	}
	return s, nil
}

// ListActive implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListActive(ctx context.Context) ([]shift.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, name, start_time, end_time, is_part_time, is_active, created_at, updated_at
		FROM shift_templates
		WHERE is_active = TRUE
		ORDER BY start_time, name
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]shift.ShiftTemplate, 0)
	for rows.Next() {
		var s shift.ShiftTemplate
		if err := rows.Scan(
			&s.ID, &s.Name, &s.StartTime, &s.EndTime,
			&s.IsPartTime, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		templates = append(templates, s)
	}
	return templates, rows.Err()
}
