package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create inserts a new attendance record. The unique constraint on
	// assignment_id makes a second insert for the same occurrence fail.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByIDAndEmployee scopes the lookup to the owning employee
	GetByIDAndEmployee(ctx context.Context, id, employeeID string) (Attendance, error)

	// GetByAssignment returns the at-most-one record attached to an
	// occurrence, or nil
	GetByAssignment(ctx context.Context, assignmentID string) (*Attendance, error)

	// SetCheckOut stamps the check-out time and derived total hours
	SetCheckOut(ctx context.Context, id string, at time.Time, totalHours float64) error

	// Delete removes the record; used only by the revert-leave flow
	Delete(ctx context.Context, id string) error

	ListForMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]Attendance, error)
}
