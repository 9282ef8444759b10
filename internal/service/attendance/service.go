package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/assignment"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/employee"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/location"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/geo"
	"github.com/shiftwise-hq/workforce-backend-go/internal/repository/postgresql"
)

type attendanceServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	assignmentRepo assignment.AssignmentRepository
	employeeRepo   employee.EmployeeRepository
	locationRepo   location.LocationRepository
	now            func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	assignmentRepo assignment.AssignmentRepository,
	employeeRepo employee.EmployeeRepository,
	locationRepo location.LocationRepository,
) attendance.AttendanceService {
	return &attendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		assignmentRepo: assignmentRepo,
		employeeRepo:   employeeRepo,
		locationRepo:   locationRepo,
		now:            time.Now,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *attendanceServiceImpl) CheckIn(ctx context.Context, employeeID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	now := s.now()

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !emp.IsActive {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeInactive
	}

	loc, err := s.locationRepo.GetByID(ctx, req.LocationID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if loc.HasCoordinates() {
		distance := geo.HaversineDistance(req.Latitude, req.Longitude, *loc.Latitude, *loc.Longitude)
		if distance > float64(loc.RadiusMeters) {
			return attendance.AttendanceResponse{}, fmt.Errorf("%.0fm from %s (allowed %dm): %w",
				distance, loc.Name, loc.RadiusMeters, attendance.ErrOutsideAllowedRadius)
		}
	}

	var created attendance.Attendance
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		a, err := s.assignmentRepo.FindAt(txCtx, employeeID, now)
		if err != nil {
			return fmt.Errorf("failed to find current assignment: %w", err)
		}
		if a == nil {
			return attendance.ErrNoCurrentShift
		}
		if a.Locked {
			return assignment.ErrAssignmentLocked
		}
		if a.HasAttendance() {
			return attendance.ErrAlreadyCheckedIn
		}

		shiftStart := time.Date(now.Year(), now.Month(), now.Day(),
			a.ShiftStart.Hour(), a.ShiftStart.Minute(), a.ShiftStart.Second(), 0, now.Location())
		status, lateMinutes := attendance.Classify(shiftStart, now)

		created, err = s.attendanceRepo.Create(txCtx, attendance.Attendance{
			EmployeeID:   employeeID,
			AssignmentID: a.ID,
			LocationID:   &loc.ID,
			CheckInTime:  now,
			Status:       status,
			LateMinutes:  lateMinutes,
		})
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *attendanceServiceImpl) CheckOut(ctx context.Context, employeeID string, attendanceID string) (attendance.AttendanceResponse, error) {
	now := s.now()

	var out attendance.Attendance
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		att, err := s.attendanceRepo.GetByIDAndEmployee(txCtx, attendanceID, employeeID)
		if err != nil {
			return err
		}
		if att.CheckOutTime != nil {
			return attendance.ErrAlreadyCheckedOut
		}

		totalHours := now.Sub(att.CheckInTime).Truncate(time.Minute).Hours()
		if err := s.attendanceRepo.SetCheckOut(txCtx, att.ID, now, totalHours); err != nil {
			return err
		}

		att.CheckOutTime = &now
		att.TotalHours = totalHours
		out = att
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.ToResponse(out), nil
}

// MonthlyView implements attendance.AttendanceService. The ABSENT entries it
// reports for unattended past occurrences are derived against now on every
// call and never written back.
func (s *attendanceServiceImpl) MonthlyView(ctx context.Context, employeeID string, year int, month time.Month) ([]attendance.DayRecord, error) {
	now := s.now()

	assignments, err := s.assignmentRepo.ListForMonth(ctx, employeeID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	// One query for the month's attendances instead of one per assignment.
	attendances, err := s.attendanceRepo.ListForMonth(ctx, employeeID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	byAssignment := make(map[string]attendance.Attendance, len(attendances))
	for _, att := range attendances {
		byAssignment[att.AssignmentID] = att
	}

	records := make([]attendance.DayRecord, 0, len(assignments))
	for _, a := range assignments {
		record := attendance.DayRecord{
			AssignmentID: a.ID,
			Date:         a.Date.Format("2006-01-02"),
			ShiftID:      a.ShiftID,
			ShiftName:    a.ShiftName,
			Locked:       a.Locked,
		}
		if a.ShiftStart != nil {
			start := a.ShiftStart.Format("15:04")
			record.StartTime = &start
		}
		if a.ShiftEnd != nil {
			end := a.ShiftEnd.Format("15:04")
			record.EndTime = &end
		}

		var att *attendance.Attendance
		if found, ok := byAssignment[a.ID]; ok {
			att = &found
			resp := attendance.ToResponse(found)
			record.Attendance = &resp
		}

		var shiftEnd time.Time
		if a.ShiftEnd != nil {
			shiftEnd = *a.ShiftEnd
		}
		record.Status = attendance.DeriveStatus(att, a.Date, shiftEnd, now)

		records = append(records, record)
	}
	return records, nil
}
