package leave

import "context"

// BalanceService fronts the day-balance ledger. Debit and Credit are called
// only from the request approval flows; SeedEmployee runs at onboarding so
// every balance row exists before any request can touch it.
type BalanceService interface {
	Debit(ctx context.Context, employeeID, leaveTypeID string, year int) error
	Credit(ctx context.Context, employeeID, leaveTypeID string, year int) error

	// SeedEmployee creates a balance row per active leave type for the year,
	// skipping rows that already exist.
	SeedEmployee(ctx context.Context, employeeID string, year int) error

	ListBalances(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error)
}

type BalanceResponse struct {
	LeaveTypeID   string `json:"leave_type_id"`
	Year          int    `json:"year"`
	UsedDays      int    `json:"used_days"`
	RemainingDays int    `json:"remaining_days"`
}
