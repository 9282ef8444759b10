package leave

import (
	"context"
	"fmt"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/employee"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/leave"
)

type balanceServiceImpl struct {
	balanceRepo   leave.LeaveBalanceRepository
	leaveTypeRepo leave.LeaveTypeRepository
	employeeRepo  employee.EmployeeRepository
}

func NewBalanceService(
	balanceRepo leave.LeaveBalanceRepository,
	leaveTypeRepo leave.LeaveTypeRepository,
	employeeRepo employee.EmployeeRepository,
) leave.BalanceService {
	return &balanceServiceImpl{
		balanceRepo:   balanceRepo,
		leaveTypeRepo: leaveTypeRepo,
		employeeRepo:  employeeRepo,
	}
}

// Debit implements leave.BalanceService.
func (s *balanceServiceImpl) Debit(ctx context.Context, employeeID, leaveTypeID string, year int) error {
	return s.balanceRepo.Debit(ctx, employeeID, leaveTypeID, year)
}

// Credit implements leave.BalanceService.
func (s *balanceServiceImpl) Credit(ctx context.Context, employeeID, leaveTypeID string, year int) error {
	return s.balanceRepo.Credit(ctx, employeeID, leaveTypeID, year)
}

// SeedEmployee implements leave.BalanceService.
func (s *balanceServiceImpl) SeedEmployee(ctx context.Context, employeeID string, year int) error {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return err
	}

	types, err := s.leaveTypeRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list leave types: %w", err)
	}
	for _, lt := range types {
		if err := s.balanceRepo.Seed(ctx, employeeID, lt.ID, year, lt.AnnualQuota); err != nil {
			return fmt.Errorf("failed to seed balance for leave type %s: %w", lt.ID, err)
		}
	}
	return nil
}

// ListBalances implements leave.BalanceService.
func (s *balanceServiceImpl) ListBalances(ctx context.Context, employeeID string, year int) ([]leave.BalanceResponse, error) {
	balances, err := s.balanceRepo.ListByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, leave.BalanceResponse{
			LeaveTypeID:   b.LeaveTypeID,
			Year:          b.Year,
			UsedDays:      b.UsedDays,
			RemainingDays: b.RemainingDays,
		})
	}
	return responses, nil
}
