package shift

import "context"

// ShiftRepository is the shift catalog. Templates are owned elsewhere; the
// core only reads them.
type ShiftRepository interface {
	GetByID(ctx context.Context, id string) (ShiftTemplate, error)
	ListActive(ctx context.Context) ([]ShiftTemplate, error)
}
