package request

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/request"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/validator"
)

// revertLeavePolicy: undoes an approved leave day. Approval deletes the
// LEAVE attendance and credits the day back; this is the only place the
// balance ledger is restored.
type revertLeavePolicy struct{}

func (p *revertLeavePolicy) Kind() request.Kind { return request.KindRevertLeave }

func (p *revertLeavePolicy) ValidateCreate(ctx context.Context, d *Deps, requesterID string, st shift.ShiftTemplate, date time.Time, input request.CreateRequestInput) error {
	if input.LeaveTypeID == nil || validator.IsEmpty(*input.LeaveTypeID) {
		return validator.ValidationErrors{{Field: "leave_type_id", Message: "is required for revert-leave requests"}}
	}
	_, err := p.leaveAttendance(ctx, d, requesterID, input.ShiftID, date)
	return err
}

func (p *revertLeavePolicy) Apply(ctx context.Context, d *Deps, req request.Request) error {
	att, err := p.leaveAttendance(ctx, d, req.EmployeeID, req.ShiftID, req.Date)
	if err != nil {
		return err
	}

	if err := d.AttendanceRepo.Delete(ctx, att.ID); err != nil {
		return err
	}
	if err := d.BalanceRepo.Credit(ctx, req.EmployeeID, *req.LeaveTypeID, req.Date.Year()); err != nil {
		return err
	}
	return nil
}

// leaveAttendance locates the LEAVE attendance the request is undoing. It
// must still exist at approval time.
func (p *revertLeavePolicy) leaveAttendance(ctx context.Context, d *Deps, employeeID, shiftID string, date time.Time) (attendance.Attendance, error) {
	held, err := d.AssignmentRepo.FindByShiftAndDate(ctx, employeeID, shiftID, date)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to look up assignment: %w", err)
	}
	if held == nil {
		return attendance.Attendance{}, request.ErrNoLeaveAttendance
	}
	att, err := d.AttendanceRepo.GetByAssignment(ctx, held.ID)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	if att == nil || att.Status != attendance.StatusLeave {
		return attendance.Attendance{}, request.ErrNoLeaveAttendance
	}
	return *att, nil
}
