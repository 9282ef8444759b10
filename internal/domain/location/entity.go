package location

import "time"

// Location is a check-in site with a circular geofence.
type Location struct {
	ID           string
	Name         string
	Latitude     *float64
	Longitude    *float64
	RadiusMeters int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasCoordinates reports whether the location can be geofence-checked.
func (l Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}
