package request

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/assignment"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/request"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/shift"
)

// partTimePolicy: approval materializes a new assignment for the requester,
// re-running the overlap check so a racing approval loses cleanly.
type partTimePolicy struct{}

func (p *partTimePolicy) Kind() request.Kind { return request.KindPartTime }

func (p *partTimePolicy) ValidateCreate(ctx context.Context, d *Deps, requesterID string, st shift.ShiftTemplate, date time.Time, input request.CreateRequestInput) error {
	if !st.IsPartTime {
		return request.ErrShiftNotPartTime
	}
	return nil
}

func (p *partTimePolicy) Apply(ctx context.Context, d *Deps, req request.Request) error {
	st, err := d.ShiftRepo.GetByID(ctx, req.ShiftID)
	if err != nil {
		return err
	}
	if err := notStarted(req, st.StartTime, d.Now()); err != nil {
		return err
	}

	overlap, err := d.AssignmentRepo.HasOverlap(ctx, req.EmployeeID, req.Date, req.ShiftID)
	if err != nil {
		return fmt.Errorf("failed to check assignment overlap: %w", err)
	}
	if overlap {
		return assignment.ErrAssignmentOverlap
	}

	_, err = d.AssignmentRepo.Create(ctx, assignment.ShiftAssignment{
		EmployeeID: req.EmployeeID,
		ShiftID:    req.ShiftID,
		Date:       req.Date,
	})
	if err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}
	return nil
}
