package notification

import "time"

type Notification struct {
	ID          string
	RecipientID string
	Title       string
	Message     string
	IsRead      bool
	CreatedAt   time.Time
}
