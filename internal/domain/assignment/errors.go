package assignment

import "errors"

var (
	ErrAssignmentNotFound      = errors.New("shift assignment not found")
	ErrAssignmentOverlap       = errors.New("employee already has an overlapping shift on this date")
	ErrPastDate                = errors.New("cannot modify assignments on a past date")
	ErrAssignmentLocked        = errors.New("assignment is locked for the closed month")
	ErrAssignmentHasAttendance = errors.New("assignment already has an attendance record")
	ErrNotAssignmentOwner      = errors.New("assignment does not belong to this employee")
)
