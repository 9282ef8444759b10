package request

import (
	"context"
	"time"
)

// ResolveParams stamps the outcome of a transition. Rows whose status does
// not match FromStatus are left untouched so concurrent transitions lose
// cleanly.
type ResolveParams struct {
	ID               string
	FromStatus       Status
	ToStatus         Status
	ResponseBy       *string
	ResponseNote     *string
	ResponseDate     *time.Time
	TargetAnsweredAt *time.Time
}

type RequestRepository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// Resolve performs the compare-and-set status transition. Returns
	// ErrNotPending when the row is no longer in FromStatus.
	Resolve(ctx context.Context, params ResolveParams) error

	ListByEmployee(ctx context.Context, employeeID string, kind *Kind) ([]Request, error)
	ListByStatus(ctx context.Context, status Status, kind *Kind) ([]Request, error)
}
