package attendance

import (
	"context"
	"time"
)

// AttendanceService records physical presence against shift assignments.
// The acting employee is always an explicit argument; there is no ambient
// identity inside the core.
type AttendanceService interface {
	CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string, attendanceID string) (AttendanceResponse, error)

	// MonthlyView returns one DayRecord per assignment in the month, with
	// virtual ABSENT classification computed against now on every call.
	MonthlyView(ctx context.Context, employeeID string, year int, month time.Month) ([]DayRecord, error)
}
