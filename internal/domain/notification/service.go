package notification

import "context"

// Service is the in-app notification sink. Notify is fire-and-forget: it
// enqueues and returns; persistence happens on background workers and a
// failure there never reaches the caller's transaction.
type Service interface {
	Notify(employeeID, title, message string)

	List(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, recipientID, notificationID string) error
	MarkAllRead(ctx context.Context, recipientID string) error

	// Stop flushes the queue and stops the workers.
	Stop()
}
