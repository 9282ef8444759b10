package assignment

import (
	"context"
	"time"
)

type AssignmentRepository interface {
	// Create inserts a new occurrence
	Create(ctx context.Context, a ShiftAssignment) (ShiftAssignment, error)

	// GetByID retrieves an occurrence with its shift times and attendance
	// back-reference joined in
	GetByID(ctx context.Context, id string) (ShiftAssignment, error)

	Delete(ctx context.Context, id string) error

	// HasOverlap reports whether the employee already holds an assignment on
	// date whose shift window intersects the given template's window
	// (half-open: existing.start < new.end AND existing.end > new.start)
	HasOverlap(ctx context.Context, employeeID string, date time.Time, shiftID string) (bool, error)

	// FindAt returns the at-most-one assignment whose shift window contains
	// the time-of-day of at on its date
	FindAt(ctx context.Context, employeeID string, at time.Time) (*ShiftAssignment, error)

	// FindByShiftAndDate returns the employee's assignment for the exact
	// (shift, date) pair, if any
	FindByShiftAndDate(ctx context.Context, employeeID, shiftID string, date time.Time) (*ShiftAssignment, error)

	// ListForMonth returns every occurrence for the employee in the calendar
	// month, shift times and attendance reference joined
	ListForMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]ShiftAssignment, error)

	// LockMonth sets locked = true on every assignment dated inside the
	// given calendar month. Idempotent; returns the number of rows newly
	// locked.
	LockMonth(ctx context.Context, year int, month time.Month) (int64, error)

	// ListUnremindedForDate returns assignments on date whose reminder has
	// not been sent yet
	ListUnremindedForDate(ctx context.Context, date time.Time) ([]ShiftAssignment, error)

	MarkReminderSent(ctx context.Context, id string) error
}
