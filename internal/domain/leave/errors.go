package leave

import "errors"

var (
	ErrLeaveTypeNotFound   = errors.New("leave type not found")
	ErrBalanceNotFound     = errors.New("leave balance not found for employee, type and year")
	ErrInsufficientBalance = errors.New("no remaining leave days for this type and year")
	ErrNothingToCredit     = errors.New("no used leave days to restore")
)
