package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	id, employee_id, assignment_id, location_id, check_in_time, check_out_time,
	total_hours, late_minutes, status, edited, edited_by, edited_time,
	created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.AssignmentID, &att.LocationID,
		&att.CheckInTime, &att.CheckOutTime,
		&att.TotalHours, &att.LateMinutes, &att.Status,
		&att.Edited, &att.EditedBy, &att.EditedTime,
		&att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository. The UNIQUE constraint
// on assignment_id serializes racing check-ins: the loser gets
// ErrAlreadyCheckedIn.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO attendances (
			id, employee_id, assignment_id, location_id, check_in_time, check_out_time,
			total_hours, late_minutes, status, edited, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5,
			$6, $7, $8, FALSE, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		att.EmployeeID, att.AssignmentID, att.LocationID, att.CheckInTime, att.CheckOutTime,
		att.TotalHours, att.LateMinutes, att.Status,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, err
	}
	return att, nil
}

// GetByIDAndEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByIDAndEmployee(ctx context.Context, id, employeeID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE id = $1 AND employee_id = $2`
	att, err := scanAttendance(q.QueryRow(ctx, query, id, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return att, nil
}

// GetByAssignment implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByAssignment(ctx context.Context, assignmentID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE assignment_id = $1`
	att, err := scanAttendance(q.QueryRow(ctx, query, assignmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &att, nil
}

// SetCheckOut implements attendance.AttendanceRepository. The guard on
// check_out_time makes a second check-out lose cleanly.
func (r *attendanceRepositoryImpl) SetCheckOut(ctx context.Context, id string, at time.Time, totalHours float64) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE attendances
		SET check_out_time = $2, total_hours = $3, updated_at = NOW()
		WHERE id = $1 AND check_out_time IS NULL
	`
	tag, err := q.Exec(ctx, query, id, at, totalHours)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyCheckedOut
	}
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// ListForMonth implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListForMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1
		  AND date_trunc('month', check_in_time) = make_date($2, $3, 1)
		ORDER BY check_in_time
	`
	rows, err := q.Query(ctx, query, employeeID, year, int(month))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, att)
	}
	return records, rows.Err()
}
