package otp

import "context"

// Service issues and checks one-time codes. Token issuance itself lives
// outside this service; callers exchange a verified code for a session at
// the identity boundary.
type Service interface {
	// Issue stores a new hashed code for the email and returns the
	// plaintext code exactly once.
	Issue(ctx context.Context, email string) (string, error)

	// Verify checks the latest unexpired code for the email and consumes
	// it on success.
	Verify(ctx context.Context, email, code string) error
}
