package request

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/assignment"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/request"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/shift"
)

// remoteWorkPolicy: approval augments an existing assignment with a
// synthetic PRESENT attendance spanning the full shift. It never creates an
// assignment and never overrides a leave day.
type remoteWorkPolicy struct{}

func (p *remoteWorkPolicy) Kind() request.Kind { return request.KindRemoteWork }

func (p *remoteWorkPolicy) ValidateCreate(ctx context.Context, d *Deps, requesterID string, st shift.ShiftTemplate, date time.Time, input request.CreateRequestInput) error {
	held, err := d.AssignmentRepo.FindByShiftAndDate(ctx, requesterID, input.ShiftID, date)
	if err != nil {
		return fmt.Errorf("failed to look up assignment: %w", err)
	}
	if held == nil {
		return assignment.ErrAssignmentNotFound
	}
	return nil
}

func (p *remoteWorkPolicy) Apply(ctx context.Context, d *Deps, req request.Request) error {
	held, err := d.AssignmentRepo.FindByShiftAndDate(ctx, req.EmployeeID, req.ShiftID, req.Date)
	if err != nil {
		return fmt.Errorf("failed to look up assignment: %w", err)
	}
	if held == nil {
		return assignment.ErrAssignmentNotFound
	}
	if held.Locked {
		return assignment.ErrAssignmentLocked
	}
	if err := notStarted(req, *held.ShiftStart, d.Now()); err != nil {
		return err
	}

	if held.HasAttendance() {
		att, err := d.AttendanceRepo.GetByAssignment(ctx, held.ID)
		if err != nil {
			return fmt.Errorf("failed to load attendance: %w", err)
		}
		if att != nil && att.Status == attendance.StatusLeave {
			return attendance.ErrLeaveDay
		}
		return attendance.ErrAlreadyCheckedIn
	}

	start, end := pinShiftWindow(*held)
	_, err = d.AttendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID:   req.EmployeeID,
		AssignmentID: held.ID,
		CheckInTime:  start,
		CheckOutTime: &end,
		TotalHours:   end.Sub(start).Hours(),
		Status:       attendance.StatusPresent,
	})
	if err != nil {
		return err
	}
	return nil
}
