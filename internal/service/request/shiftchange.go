package request

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/assignment"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/request"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/validator"
)

// shiftChangePolicy: the two-employee swap. The peer hop is handled by the
// engine; Apply runs at the administrative approval and swaps the
// assignment from the target employee to the requester in one transaction.
type shiftChangePolicy struct{}

func (p *shiftChangePolicy) Kind() request.Kind { return request.KindShiftChange }

func (p *shiftChangePolicy) ValidateCreate(ctx context.Context, d *Deps, requesterID string, st shift.ShiftTemplate, date time.Time, input request.CreateRequestInput) error {
	if input.TargetEmployeeID == nil || validator.IsEmpty(*input.TargetEmployeeID) {
		return validator.ValidationErrors{{Field: "target_employee_id", Message: "is required for shift-change requests"}}
	}
	if *input.TargetEmployeeID == requesterID {
		return request.ErrSelfSwap
	}
	if _, err := d.EmployeeRepo.GetByID(ctx, *input.TargetEmployeeID); err != nil {
		return err
	}

	held, err := d.AssignmentRepo.FindByShiftAndDate(ctx, *input.TargetEmployeeID, input.ShiftID, date)
	if err != nil {
		return fmt.Errorf("failed to look up target assignment: %w", err)
	}
	if held == nil {
		return request.ErrTargetNotHolding
	}
	return nil
}

func (p *shiftChangePolicy) Apply(ctx context.Context, d *Deps, req request.Request) error {
	st, err := d.ShiftRepo.GetByID(ctx, req.ShiftID)
	if err != nil {
		return err
	}
	if err := notStarted(req, st.StartTime, d.Now()); err != nil {
		return err
	}

	held, err := d.AssignmentRepo.FindByShiftAndDate(ctx, *req.TargetEmployeeID, req.ShiftID, req.Date)
	if err != nil {
		return fmt.Errorf("failed to look up target assignment: %w", err)
	}
	if held == nil {
		return request.ErrTargetNotHolding
	}
	if held.Locked {
		return assignment.ErrAssignmentLocked
	}
	if held.HasAttendance() {
		return assignment.ErrAssignmentHasAttendance
	}

	overlap, err := d.AssignmentRepo.HasOverlap(ctx, req.EmployeeID, req.Date, req.ShiftID)
	if err != nil {
		return fmt.Errorf("failed to check assignment overlap: %w", err)
	}
	if overlap {
		return assignment.ErrAssignmentOverlap
	}

	// Delete and re-create commit together: a crash between the two can
	// never be observed.
	if err := d.AssignmentRepo.Delete(ctx, held.ID); err != nil {
		return fmt.Errorf("failed to delete target assignment: %w", err)
	}
	_, err = d.AssignmentRepo.Create(ctx, assignment.ShiftAssignment{
		EmployeeID: req.EmployeeID,
		ShiftID:    req.ShiftID,
		Date:       req.Date,
	})
	if err != nil {
		return fmt.Errorf("failed to create swapped assignment: %w", err)
	}
	return nil
}
