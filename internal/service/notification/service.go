package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/notification"
)

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo   notification.Repository
	logger *slog.Logger
	config Config

	queue  chan notification.Notification
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewNotificationService creates a new notification service with background
// workers that batch inserts.
func NewNotificationService(repo notification.Repository, logger *slog.Logger, cfg Config) notification.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:   repo,
		logger: logger,
		config: cfg,
		queue:  make(chan notification.Notification, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	logger.Info("notification service started",
		slog.Int("workers", cfg.WorkerCount),
		slog.Int("batch_size", cfg.BatchSize),
		slog.Duration("flush_interval", cfg.FlushInterval))

	return s
}

// worker drains the queue into batched inserts.
func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]*notification.Notification, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.repo.CreateBatch(ctx, batch); err != nil {
			s.logger.Error("failed to batch insert notifications",
				slog.Int("worker", id),
				slog.Int("count", len(batch)),
				slog.Any("error", err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case n := <-s.queue:
			batch = append(batch, &n)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// Drain whatever is still queued before the final flush.
			for {
				select {
				case n := <-s.queue:
					batch = append(batch, &n)
				default:
					flush()
					return
				}
			}
		}
	}
}

// Notify implements notification.Service. Fire-and-forget: a full queue
// drops the notification with a log line rather than blocking the caller.
func (s *service) Notify(employeeID, title, message string) {
	n := notification.Notification{
		ID:          uuid.New().String(),
		RecipientID: employeeID,
		Title:       title,
		Message:     message,
		IsRead:      false,
		CreatedAt:   time.Now(),
	}
	select {
	case s.queue <- n:
	default:
		s.logger.Warn("notification queue full, dropping",
			slog.String("recipient_id", employeeID),
			slog.String("title", title))
	}
}

// List implements notification.Service.
func (s *service) List(ctx context.Context, recipientID string, unreadOnly bool) ([]notification.Notification, error) {
	return s.repo.ListByRecipient(ctx, recipientID, unreadOnly, 100)
}

// MarkRead implements notification.Service.
func (s *service) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	return s.repo.MarkRead(ctx, recipientID, notificationID)
}

// MarkAllRead implements notification.Service.
func (s *service) MarkAllRead(ctx context.Context, recipientID string) error {
	return s.repo.MarkAllRead(ctx, recipientID)
}

// Stop flushes pending notifications and stops the workers.
func (s *service) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("notification service stopped")
}
