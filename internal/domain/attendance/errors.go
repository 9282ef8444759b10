package attendance

import "errors"

var (
	ErrAlreadyCheckedIn     = errors.New("shift has already been checked in")
	ErrAlreadyCheckedOut    = errors.New("attendance has already been checked out")
	ErrNoCurrentShift       = errors.New("no shift assignment covers the current time")
	ErrOutsideAllowedRadius = errors.New("check-in location is outside the allowed radius")
	ErrAttendanceNotFound   = errors.New("attendance record not found")
	ErrLeaveDay             = errors.New("assignment is already covered by an approved leave")
)
