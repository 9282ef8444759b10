package request

import (
	"context"
	"time"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/assignment"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/employee"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/leave"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/request"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/shift"
)

// Deps bundles the collaborators a policy may touch. Policies run inside the
// engine's transaction; everything they mutate rolls back with it.
type Deps struct {
	RequestRepo    request.RequestRepository
	AssignmentRepo assignment.AssignmentRepository
	AttendanceRepo attendance.AttendanceRepository
	EmployeeRepo   employee.EmployeeRepository
	ShiftRepo      shift.ShiftRepository
	BalanceRepo    leave.LeaveBalanceRepository
	LeaveTypeRepo  leave.LeaveTypeRepository

	Now func() time.Time
}

// Policy is the kind-specific half of the request workflow. The engine owns
// the shared lifecycle (status transitions, stamping, dispatch); a policy
// owns what makes its kind different: extra creation preconditions and the
// ledger side effects of an approval.
type Policy interface {
	Kind() request.Kind

	// ValidateCreate runs after the engine's common date guard, before the
	// request row is inserted.
	ValidateCreate(ctx context.Context, d *Deps, requesterID string, shiftTemplate shift.ShiftTemplate, date time.Time, input request.CreateRequestInput) error

	// Apply performs the approval side effects. It re-validates its
	// preconditions against current row state; the engine calls it inside
	// the same transaction as the status transition.
	Apply(ctx context.Context, d *Deps, req request.Request) error
}

// notStarted fails when the request's shift has already begun: the date is
// in the past, or it is today and the shift's start time-of-day has passed.
func notStarted(req request.Request, shiftStart time.Time, now time.Time) error {
	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return request.ErrShiftAlreadyStarted
	}
	if day.Equal(today) {
		startAt := time.Date(day.Year(), day.Month(), day.Day(),
			shiftStart.Hour(), shiftStart.Minute(), shiftStart.Second(), 0, now.Location())
		if !now.Before(startAt) {
			return request.ErrShiftAlreadyStarted
		}
	}
	return nil
}
