package location

import "context"

type LocationRepository interface {
	GetByID(ctx context.Context, id string) (Location, error)
}
