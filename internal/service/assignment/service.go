package assignment

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/assignment"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/employee"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/validator"
	"github.com/shiftwise-hq/workforce-backend-go/internal/repository/postgresql"
)

type assignmentServiceImpl struct {
	db             *database.DB
	assignmentRepo assignment.AssignmentRepository
	employeeRepo   employee.EmployeeRepository
	shiftRepo      shift.ShiftRepository
	now            func() time.Time
}

func NewAssignmentService(
	db *database.DB,
	assignmentRepo assignment.AssignmentRepository,
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
) assignment.AssignmentService {
	return &assignmentServiceImpl{
		db:             db,
		assignmentRepo: assignmentRepo,
		employeeRepo:   employeeRepo,
		shiftRepo:      shiftRepo,
		now:            time.Now,
	}
}

// AddAssignment implements assignment.AssignmentService.
func (s *assignmentServiceImpl) AddAssignment(ctx context.Context, req assignment.CreateAssignmentRequest) (assignment.AssignmentResponse, error) {
	date, err := validator.ParseDate(req.Date)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	if dayOf(date).Before(dayOf(s.now())) {
		return assignment.AssignmentResponse{}, assignment.ErrPastDate
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return assignment.AssignmentResponse{}, err
	}
	st, err := s.shiftRepo.GetByID(ctx, req.ShiftID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	if !st.IsActive {
		return assignment.AssignmentResponse{}, shift.ErrShiftInactive
	}

	// Serializable so two racing creates cannot both pass the overlap
	// check; the loser reruns, sees the winner and gets the overlap error.
	var created assignment.ShiftAssignment
	err = postgresql.WithSerializableTransaction(ctx, s.db, func(txCtx context.Context) error {
		created = assignment.ShiftAssignment{}
		overlap, err := s.assignmentRepo.HasOverlap(txCtx, req.EmployeeID, date, req.ShiftID)
		if err != nil {
			return fmt.Errorf("failed to check assignment overlap: %w", err)
		}
		if overlap {
			return assignment.ErrAssignmentOverlap
		}

		created, err = s.assignmentRepo.Create(txCtx, assignment.ShiftAssignment{
			EmployeeID: req.EmployeeID,
			ShiftID:    req.ShiftID,
			Date:       date,
		})
		if err != nil {
			return fmt.Errorf("failed to create assignment: %w", err)
		}
		return nil
	})
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	created.ShiftName = &st.Name
	created.ShiftStart = &st.StartTime
	created.ShiftEnd = &st.EndTime
	return assignment.ToResponse(created), nil
}

// DeleteAssignment implements assignment.AssignmentService.
func (s *assignmentServiceImpl) DeleteAssignment(ctx context.Context, employeeID, assignmentID string) error {
	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		a, err := s.assignmentRepo.GetByID(txCtx, assignmentID)
		if err != nil {
			return err
		}
		if a.EmployeeID != employeeID {
			return assignment.ErrNotAssignmentOwner
		}
		if a.Locked {
			return assignment.ErrAssignmentLocked
		}
		if dayOf(a.Date).Before(dayOf(s.now())) {
			return assignment.ErrPastDate
		}
		if a.HasAttendance() {
			return assignment.ErrAssignmentHasAttendance
		}

		if err := s.assignmentRepo.Delete(txCtx, assignmentID); err != nil {
			return fmt.Errorf("failed to delete assignment: %w", err)
		}
		return nil
	})
}

// FindCurrentAssignment implements assignment.AssignmentService.
func (s *assignmentServiceImpl) FindCurrentAssignment(ctx context.Context, employeeID string, at time.Time) (assignment.ShiftAssignment, error) {
	a, err := s.assignmentRepo.FindAt(ctx, employeeID, at)
	if err != nil {
		return assignment.ShiftAssignment{}, fmt.Errorf("failed to find current assignment: %w", err)
	}
	if a == nil {
		return assignment.ShiftAssignment{}, assignment.ErrAssignmentNotFound
	}
	return *a, nil
}

// ListMonth implements assignment.AssignmentService.
func (s *assignmentServiceImpl) ListMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]assignment.AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.ListForMonth(ctx, employeeID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	responses := make([]assignment.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, assignment.ToResponse(a))
	}
	return responses, nil
}

// LockPreviousMonth implements assignment.AssignmentService. Safe to re-run:
// already-locked rows are untouched.
func (s *assignmentServiceImpl) LockPreviousMonth(ctx context.Context, now time.Time) (int64, error) {
	// Last day of the previous month; AddDate on "now" itself would
	// normalize (e.g. Mar 31 minus one month lands in March again).
	prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	locked, err := s.assignmentRepo.LockMonth(ctx, prev.Year(), prev.Month())
	if err != nil {
		return 0, fmt.Errorf("failed to lock assignments for %d-%02d: %w", prev.Year(), int(prev.Month()), err)
	}
	return locked, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
