package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/otp"
)

type fakeOTPRepo struct {
	byEmail map[string][]otp.OTP
	nextID  int
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{byEmail: map[string][]otp.OTP{}}
}

func (f *fakeOTPRepo) Create(ctx context.Context, o otp.OTP) (otp.OTP, error) {
	f.nextID++
	o.ID = string(rune('a' + f.nextID))
	o.CreatedAt = time.Now()
	f.byEmail[o.Email] = append(f.byEmail[o.Email], o)
	return o, nil
}

func (f *fakeOTPRepo) GetLatestByEmail(ctx context.Context, email string) (otp.OTP, error) {
	codes := f.byEmail[email]
	if len(codes) == 0 {
		return otp.OTP{}, otp.ErrOTPNotFound
	}
	return codes[len(codes)-1], nil
}

func (f *fakeOTPRepo) Delete(ctx context.Context, id string) error {
	for email, codes := range f.byEmail {
		kept := codes[:0]
		for _, c := range codes {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		f.byEmail[email] = kept
	}
	return nil
}

func (f *fakeOTPRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	var purged int64
	for email, codes := range f.byEmail {
		kept := codes[:0]
		for _, c := range codes {
			if c.ExpiresAt.After(now) {
				kept = append(kept, c)
			} else {
				purged++
			}
		}
		f.byEmail[email] = kept
	}
	return purged, nil
}

func TestIssueAndVerify(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOTPRepo()
	svc := NewOTPService(repo)

	code, err := svc.Issue(ctx, "worker@example.com")
	require.NoError(t, err)
	assert.Len(t, code, 6)

	err = svc.Verify(ctx, "worker@example.com", code)
	assert.NoError(t, err)

	// A code is single use.
	err = svc.Verify(ctx, "worker@example.com", code)
	assert.ErrorIs(t, err, otp.ErrOTPNotFound)
}

func TestVerifyWrongCode(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOTPRepo()
	svc := NewOTPService(repo)

	_, err := svc.Issue(ctx, "worker@example.com")
	require.NoError(t, err)

	err = svc.Verify(ctx, "worker@example.com", "000000")
	assert.ErrorIs(t, err, otp.ErrOTPMismatch)
}

func TestVerifyExpiredCode(t *testing.T) {
	ctx := context.Background()
	repo := newFakeOTPRepo()

	svc := &otpServiceImpl{otpRepo: repo, now: time.Now}
	code, err := svc.Issue(ctx, "worker@example.com")
	require.NoError(t, err)

	// Move the clock past the TTL.
	svc.now = func() time.Time { return time.Now().Add(codeTTL + time.Minute) }
	err = svc.Verify(ctx, "worker@example.com", code)
	assert.ErrorIs(t, err, otp.ErrOTPNotFound)
}

func TestVerifyUnknownEmail(t *testing.T) {
	svc := NewOTPService(newFakeOTPRepo())
	err := svc.Verify(context.Background(), "nobody@example.com", "123456")
	assert.ErrorIs(t, err, otp.ErrOTPNotFound)
}
