package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/leave"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// GetByEmployeeTypeYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, leave_type_id, year, used_days, remaining_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`
	var b leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.UsedDays, &b.RemainingDays, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}
	return b, nil
}

// Debit implements leave.LeaveBalanceRepository. Both counters move in one
// guarded update so used+remaining stays conserved and a drained balance
// fails cleanly.
func (r *leaveBalanceRepositoryImpl) Debit(ctx context.Context, employeeID, leaveTypeID string, year int) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_balances
		SET used_days = used_days + 1,
		    remaining_days = remaining_days - 1,
		    updated_at = NOW()
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
		  AND remaining_days > 0
	`
	tag, err := q.Exec(ctx, query, employeeID, leaveTypeID, year)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMiss(ctx, employeeID, leaveTypeID, year, leave.ErrInsufficientBalance)
	}
	return nil
}

// Credit implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Credit(ctx context.Context, employeeID, leaveTypeID string, year int) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE leave_balances
		SET used_days = used_days - 1,
		    remaining_days = remaining_days + 1,
		    updated_at = NOW()
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
		  AND used_days > 0
	`
	tag, err := q.Exec(ctx, query, employeeID, leaveTypeID, year)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMiss(ctx, employeeID, leaveTypeID, year, leave.ErrNothingToCredit)
	}
	return nil
}

// classifyMiss distinguishes "row missing" from "guard failed" after a
// zero-row guarded update.
func (r *leaveBalanceRepositoryImpl) classifyMiss(ctx context.Context, employeeID, leaveTypeID string, year int, guardErr error) error {
	q := GetQuerier(ctx, r.db)
	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM leave_balances
			WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
		)
	`, employeeID, leaveTypeID, year).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return leave.ErrBalanceNotFound
	}
	return guardErr
}

// Seed implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Seed(ctx context.Context, employeeID, leaveTypeID string, year, annualQuota int) error {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO leave_balances (id, employee_id, leave_type_id, year, used_days, remaining_days, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, 0, $4, NOW(), NOW())
		ON CONFLICT (employee_id, leave_type_id, year) DO NOTHING
	`
	_, err := q.Exec(ctx, query, employeeID, leaveTypeID, year, annualQuota)
	return err
}

// ListByEmployeeYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, employee_id, leave_type_id, year, used_days, remaining_days, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
		ORDER BY leave_type_id
	`
	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		var b leave.LeaveBalance
		if err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
			&b.UsedDays, &b.RemainingDays, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
