package employee

import "time"

type Employee struct {
	ID        string
	FullName  string
	Email     string
	Phone     *string
	IsActive  bool
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
