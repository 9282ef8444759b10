package assignment

import (
	"context"
	"time"
)

// AssignmentService owns the assignment ledger: conflict-checked creation,
// guarded deletion, current-occurrence lookup for check-in, and the monthly
// lock sweep.
type AssignmentService interface {
	AddAssignment(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error)
	DeleteAssignment(ctx context.Context, employeeID, assignmentID string) error
	FindCurrentAssignment(ctx context.Context, employeeID string, at time.Time) (ShiftAssignment, error)
	ListMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]AssignmentResponse, error)

	// LockPreviousMonth is the cron entry point; it locks every assignment
	// dated in the calendar month preceding now.
	LockPreviousMonth(ctx context.Context, now time.Time) (int64, error)
}
