package request

import "errors"

var (
	ErrRequestNotFound = errors.New("request not found")

	// ErrNotPending guards every transition: once a request left the state
	// the transition fires from, acting on it again is a conflict.
	ErrNotPending = errors.New("cannot act on non-pending request")

	ErrNotRequester      = errors.New("only the requester may recall this request")
	ErrNotTargetEmployee = errors.New("only the targeted employee may answer this request")

	ErrPastDate            = errors.New("request date must be today or later")
	ErrShiftAlreadyStarted = errors.New("shift has already started")
	ErrSelfSwap            = errors.New("shift change target must be a different employee")
	ErrTargetNotHolding    = errors.New("target employee does not hold this shift assignment")
	ErrNoLeaveAttendance   = errors.New("no leave attendance exists for this shift and date")
	ErrShiftNotPartTime    = errors.New("shift template is not a part-time shift")
)
