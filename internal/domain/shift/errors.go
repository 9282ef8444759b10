package shift

import "errors"

var (
	ErrShiftNotFound = errors.New("shift template not found")
	ErrShiftInactive = errors.New("shift template is not active")
)
