package leave

import "time"

type LeaveType struct {
	ID          string
	Name        string
	AnnualQuota int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LeaveBalance is the per-employee, per-leave-type, per-year day counter.
// UsedDays + RemainingDays is constant for the lifetime of the row; only
// Debit and Credit move days between the two sides.
type LeaveBalance struct {
	ID            string
	EmployeeID    string
	LeaveTypeID   string
	Year          int
	UsedDays      int
	RemainingDays int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
