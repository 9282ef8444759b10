package assignment

import "time"

// ShiftAssignment binds one employee to one shift template on one calendar
// date. Locked is set by the monthly sweep and is never un-set; a locked
// assignment can no longer be deleted or checked in/out against.
type ShiftAssignment struct {
	ID           string
	EmployeeID   string
	ShiftID      string
	Date         time.Time
	Locked       bool
	ReminderSent bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined columns
	ShiftName    *string
	ShiftStart   *time.Time
	ShiftEnd     *time.Time
	AttendanceID *string
}

// HasAttendance reports whether a check-in (or synthetic attendance) is
// already attached to this occurrence.
func (a ShiftAssignment) HasAttendance() bool {
	return a.AttendanceID != nil
}
