package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/request"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
)

type requestRepositoryImpl struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) request.RequestRepository {
	return &requestRepositoryImpl{db: db}
}

const requestSelect = `
	SELECT r.id, r.kind, r.employee_id, r.target_employee_id, r.shift_id, r.date,
	       r.leave_type_id, r.reason, r.status,
	       r.response_by, r.response_note, r.response_date, r.target_answered_at,
	       r.created_at, r.updated_at,
	       e.full_name AS employee_name, e.email AS employee_email,
	       te.full_name AS target_name,
	       st.name AS shift_name, st.start_time, st.end_time
	FROM requests r
	JOIN employees e ON r.employee_id = e.id
	LEFT JOIN employees te ON r.target_employee_id = te.id
	JOIN shift_templates st ON r.shift_id = st.id
`

func scanRequest(row pgx.Row) (request.Request, error) {
	var req request.Request
	err := row.Scan(
		&req.ID, &req.Kind, &req.EmployeeID, &req.TargetEmployeeID, &req.ShiftID, &req.Date,
		&req.LeaveTypeID, &req.Reason, &req.Status,
		&req.ResponseBy, &req.ResponseNote, &req.ResponseDate, &req.TargetAnsweredAt,
		&req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName, &req.EmployeeEmail,
		&req.TargetName,
		&req.ShiftName, &req.ShiftStart, &req.ShiftEnd,
	)
	return req, err
}

// Create implements request.RequestRepository.
func (r *requestRepositoryImpl) Create(ctx context.Context, req request.Request) (request.Request, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO requests (
			id, kind, employee_id, target_employee_id, shift_id, date,
			leave_type_id, reason, status, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5,
			$6, $7, $8, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		req.Kind, req.EmployeeID, req.TargetEmployeeID, req.ShiftID, req.Date,
		req.LeaveTypeID, req.Reason, req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return request.Request{}, err
	}
	return req, nil
}

// GetByID implements request.RequestRepository.
func (r *requestRepositoryImpl) GetByID(ctx context.Context, id string) (request.Request, error) {
	q := GetQuerier(ctx, r.db)
	req, err := scanRequest(q.QueryRow(ctx, requestSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.Request{}, request.ErrRequestNotFound
		}
		return request.Request{}, err
	}
	return req, nil
}

// Resolve implements request.RequestRepository. The status predicate makes the
// update a compare-and-set: of two racing transitions only one matches the
// row, the other sees zero rows and gets ErrNotPending.
func (r *requestRepositoryImpl) Resolve(ctx context.Context, params request.ResolveParams) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE requests
		SET status = $3,
		    response_by = COALESCE($4, response_by),
		    response_note = COALESCE($5, response_note),
		    response_date = COALESCE($6, response_date),
		    target_answered_at = COALESCE($7, target_answered_at),
		    updated_at = NOW()
		WHERE id = $1 AND status = $2
	`
	tag, err := q.Exec(ctx, query,
		params.ID, params.FromStatus, params.ToStatus,
		params.ResponseBy, params.ResponseNote, params.ResponseDate, params.TargetAnsweredAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return request.ErrNotPending
	}
	return nil
}

// ListByEmployee implements request.RequestRepository.
func (r *requestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, kind *request.Kind) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)
	query := requestSelect + `
		WHERE r.employee_id = $1 AND ($2::text IS NULL OR r.kind = $2)
		ORDER BY r.created_at DESC
	`
	rows, err := q.Query(ctx, query, employeeID, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

// ListByStatus implements request.RequestRepository.
func (r *requestRepositoryImpl) ListByStatus(ctx context.Context, status request.Status, kind *request.Kind) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)
	query := requestSelect + `
		WHERE r.status = $1 AND ($2::text IS NULL OR r.kind = $2)
		ORDER BY r.created_at
	`
	rows, err := q.Query(ctx, query, status, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func collectRequests(rows pgx.Rows) ([]request.Request, error) {
	requests := make([]request.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
