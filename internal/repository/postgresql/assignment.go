package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/assignment"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
)

type assignmentRepositoryImpl struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) assignment.AssignmentRepository {
	return &assignmentRepositoryImpl{db: db}
}

const assignmentSelect = `
	SELECT sa.id, sa.employee_id, sa.shift_id, sa.date, sa.locked, sa.reminder_sent,
	       sa.created_at, sa.updated_at,
	       st.name AS shift_name, st.start_time, st.end_time,
	       att.id AS attendance_id
	FROM shift_assignments sa
	JOIN shift_templates st ON sa.shift_id = st.id
	LEFT JOIN attendances att ON att.assignment_id = sa.id
`

func scanAssignment(row pgx.Row) (assignment.ShiftAssignment, error) {
	var a assignment.ShiftAssignment
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.ShiftID, &a.Date, &a.Locked, &a.ReminderSent,
		&a.CreatedAt, &a.UpdatedAt,
		&a.ShiftName, &a.ShiftStart, &a.ShiftEnd,
		&a.AttendanceID,
	)
	return a, err
}

// Create implements assignment.AssignmentRepository.
func (r *assignmentRepositoryImpl) Create(ctx context.Context, a assignment.ShiftAssignment) (assignment.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO shift_assignments (id, employee_id, shift_id, date, locked, reminder_sent, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, FALSE, FALSE, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, a.EmployeeID, a.ShiftID, a.Date).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return assignment.ShiftAssignment{}, err
	}
	return a, nil
}

// GetByID implements assignment.AssignmentRepository.
func (r *assignmentRepositoryImpl) GetByID(ctx context.Context, id string) (assignment.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)
	a, err := scanAssignment(q.QueryRow(ctx, assignmentSelect+` WHERE sa.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return assignment.ShiftAssignment{}, assignment.ErrAssignmentNotFound
		}
		return assignment.ShiftAssignment{}, err
	}
	return a, nil
}

// Delete implements assignment.AssignmentRepository.
func (r *assignmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM shift_assignments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return assignment.ErrAssignmentNotFound
	}
	return nil
}

// HasOverlap implements assignment.AssignmentRepository.
// Half-open interval test: an existing assignment conflicts when
// existing.start < new.end AND existing.end > new.start.
func (r *assignmentRepositoryImpl) HasOverlap(ctx context.Context, employeeID string, date time.Time, shiftID string) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM shift_assignments sa
			JOIN shift_templates st ON sa.shift_id = st.id,
			     shift_templates new_st
			WHERE new_st.id = $3
			  AND sa.employee_id = $1
			  AND sa.date = $2
			  AND st.start_time < new_st.end_time
			  AND st.end_time > new_st.start_time
		)
	`
	var exists bool
	err := q.QueryRow(ctx, query, employeeID, date, shiftID).Scan(&exists)
	return exists, err
}

// FindAt implements assignment.AssignmentRepository.
func (r *assignmentRepositoryImpl) FindAt(ctx context.Context, employeeID string, at time.Time) (*assignment.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)
	query := assignmentSelect + `
		WHERE sa.employee_id = $1
		  AND sa.date = $2::date
		  AND st.start_time <= $3::time
		  AND st.end_time > $3::time
	`
	date := at.Format("2006-01-02")
	clock := at.Format("15:04:05")
	a, err := scanAssignment(q.QueryRow(ctx, query, employeeID, date, clock))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// FindByShiftAndDate implements assignment.AssignmentRepository.
func (r *assignmentRepositoryImpl) FindByShiftAndDate(ctx context.Context, employeeID, shiftID string, date time.Time) (*assignment.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)
	query := assignmentSelect + `
		WHERE sa.employee_id = $1 AND sa.shift_id = $2 AND sa.date = $3
	`
	a, err := scanAssignment(q.QueryRow(ctx, query, employeeID, shiftID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// ListForMonth implements assignment.AssignmentRepository.
func (r *assignmentRepositoryImpl) ListForMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]assignment.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)
	query := assignmentSelect + `
		WHERE sa.employee_id = $1
		  AND date_trunc('month', sa.date) = make_date($2, $3, 1)
		ORDER BY sa.date, st.start_time
	`
	rows, err := q.Query(ctx, query, employeeID, year, int(month))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]assignment.ShiftAssignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// LockMonth implements assignment.AssignmentRepository. Locking is monotone:
// already-locked rows are skipped, so re-running the sweep is safe.
func (r *assignmentRepositoryImpl) LockMonth(ctx context.Context, year int, month time.Month) (int64, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE shift_assignments
		SET locked = TRUE, updated_at = NOW()
		WHERE date_trunc('month', date) = make_date($1, $2, 1)
		  AND locked = FALSE
	`
	tag, err := q.Exec(ctx, query, year, int(month))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListUnremindedForDate implements assignment.AssignmentRepository.
func (r *assignmentRepositoryImpl) ListUnremindedForDate(ctx context.Context, date time.Time) ([]assignment.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)
	query := assignmentSelect + `
		WHERE sa.date = $1::date AND sa.reminder_sent = FALSE
		ORDER BY st.start_time
	`
	rows, err := q.Query(ctx, query, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]assignment.ShiftAssignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// MarkReminderSent implements assignment.AssignmentRepository.
func (r *assignmentRepositoryImpl) MarkReminderSent(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE shift_assignments SET reminder_sent = TRUE, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return assignment.ErrAssignmentNotFound
	}
	return nil
}
