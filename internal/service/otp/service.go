package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/otp"
)

const (
	codeDigits = 6
	codeTTL    = 5 * time.Minute
)

type otpServiceImpl struct {
	otpRepo otp.Repository
	now     func() time.Time
}

func NewOTPService(otpRepo otp.Repository) otp.Service {
	return &otpServiceImpl{otpRepo: otpRepo, now: time.Now}
}

// Issue implements otp.Service.
func (s *otpServiceImpl) Issue(ctx context.Context, email string) (string, error) {
	code, err := randomCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate otp code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash otp code: %w", err)
	}

	_, err = s.otpRepo.Create(ctx, otp.OTP{
		Email:     email,
		CodeHash:  string(hash),
		ExpiresAt: s.now().Add(codeTTL),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store otp: %w", err)
	}

	return code, nil
}

// Verify implements otp.Service.
func (s *otpServiceImpl) Verify(ctx context.Context, email, code string) error {
	latest, err := s.otpRepo.GetLatestByEmail(ctx, email)
	if err != nil {
		return err
	}

	if s.now().After(latest.ExpiresAt) {
		return otp.ErrOTPNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(latest.CodeHash), []byte(code)); err != nil {
		return otp.ErrOTPMismatch
	}

	// A code is single use; delete it the moment it matches.
	if err := s.otpRepo.Delete(ctx, latest.ID); err != nil {
		return fmt.Errorf("failed to consume otp: %w", err)
	}

	return nil
}

func randomCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n), nil
}
