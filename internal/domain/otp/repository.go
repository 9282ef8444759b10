package otp

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, o OTP) (OTP, error)
	GetLatestByEmail(ctx context.Context, email string) (OTP, error)
	Delete(ctx context.Context, id string) error

	// PurgeExpired removes every code whose expiry is before now; invoked
	// by the scheduler on a short fixed interval.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
