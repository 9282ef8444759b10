package leave

import "context"

type LeaveTypeRepository interface {
	GetByID(ctx context.Context, id string) (LeaveType, error)
	ListActive(ctx context.Context) ([]LeaveType, error)
}

// LeaveBalanceRepository mutates the day-balance ledger. Debit and Credit
// are guarded single-row updates; both fail ErrBalanceNotFound when the row
// was never seeded.
type LeaveBalanceRepository interface {
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)

	// Debit moves one day from remaining to used. Fails
	// ErrInsufficientBalance when remaining_days is zero.
	Debit(ctx context.Context, employeeID, leaveTypeID string, year int) error

	// Credit moves one day from used back to remaining. Fails
	// ErrNothingToCredit when used_days is zero.
	Credit(ctx context.Context, employeeID, leaveTypeID string, year int) error

	// Seed creates the balance row for (employee, leaveType, year) from the
	// type's annual quota. No-op if the row already exists.
	Seed(ctx context.Context, employeeID, leaveTypeID string, year, annualQuota int) error

	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
}
