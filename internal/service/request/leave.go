package request

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/assignment"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/leave"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/request"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/validator"
)

// leavePolicy: approval consumes one day from the requester's balance and
// pins a LEAVE attendance onto the assignment, which is what a later
// revert-leave request acts on.
type leavePolicy struct{}

func (p *leavePolicy) Kind() request.Kind { return request.KindLeave }

func (p *leavePolicy) ValidateCreate(ctx context.Context, d *Deps, requesterID string, st shift.ShiftTemplate, date time.Time, input request.CreateRequestInput) error {
	if input.LeaveTypeID == nil || validator.IsEmpty(*input.LeaveTypeID) {
		return validator.ValidationErrors{{Field: "leave_type_id", Message: "is required for leave requests"}}
	}
	if _, err := d.LeaveTypeRepo.GetByID(ctx, *input.LeaveTypeID); err != nil {
		return err
	}
	bal, err := d.BalanceRepo.GetByEmployeeTypeYear(ctx, requesterID, *input.LeaveTypeID, date.Year())
	if err != nil {
		return err
	}
	if bal.RemainingDays < 1 {
		return leave.ErrInsufficientBalance
	}

	held, err := d.AssignmentRepo.FindByShiftAndDate(ctx, requesterID, input.ShiftID, date)
	if err != nil {
		return fmt.Errorf("failed to look up assignment: %w", err)
	}
	if held == nil {
		return assignment.ErrAssignmentNotFound
	}
	if held.HasAttendance() {
		return attendance.ErrAlreadyCheckedIn
	}
	return nil
}

func (p *leavePolicy) Apply(ctx context.Context, d *Deps, req request.Request) error {
	held, err := d.AssignmentRepo.FindByShiftAndDate(ctx, req.EmployeeID, req.ShiftID, req.Date)
	if err != nil {
		return fmt.Errorf("failed to look up assignment: %w", err)
	}
	if held == nil {
		return assignment.ErrAssignmentNotFound
	}
	if held.HasAttendance() {
		return attendance.ErrAlreadyCheckedIn
	}
	if held.Locked {
		return assignment.ErrAssignmentLocked
	}

	if err := d.BalanceRepo.Debit(ctx, req.EmployeeID, *req.LeaveTypeID, req.Date.Year()); err != nil {
		return err
	}

	start, end := pinShiftWindow(*held)
	_, err = d.AttendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID:   req.EmployeeID,
		AssignmentID: held.ID,
		CheckInTime:  start,
		CheckOutTime: &end,
		Status:       attendance.StatusLeave,
	})
	if err != nil {
		return err
	}
	return nil
}

// pinShiftWindow places the assignment's shift window onto its calendar
// date, for synthetic attendance rows.
func pinShiftWindow(a assignment.ShiftAssignment) (start, end time.Time) {
	start = time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(),
		a.ShiftStart.Hour(), a.ShiftStart.Minute(), a.ShiftStart.Second(), 0, a.Date.Location())
	end = time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(),
		a.ShiftEnd.Hour(), a.ShiftEnd.Minute(), a.ShiftEnd.Second(), 0, a.Date.Location())
	return start, end
}
