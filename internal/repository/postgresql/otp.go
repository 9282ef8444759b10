package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/otp"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
)

type otpRepositoryImpl struct {
	db *database.DB
}

func NewOTPRepository(db *database.DB) otp.Repository {
	return &otpRepositoryImpl{db: db}
}

// Create implements otp.Repository.
func (r *otpRepositoryImpl) Create(ctx context.Context, o otp.OTP) (otp.OTP, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO otps (id, email, code_hash, expires_at, created_at)
		VALUES (uuidv7(), $1, $2, $3, NOW())
		RETURNING id, created_at
	`
	err := q.QueryRow(ctx, query, o.Email, o.CodeHash, o.ExpiresAt).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return otp.OTP{}, err
	}
	return o, nil
}

// GetLatestByEmail implements otp.Repository.
func (r *otpRepositoryImpl) GetLatestByEmail(ctx context.Context, email string) (otp.OTP, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, email, code_hash, expires_at, created_at
		FROM otps
		WHERE email = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var o otp.OTP
	err := q.QueryRow(ctx, query, email).Scan(&o.ID, &o.Email, &o.CodeHash, &o.ExpiresAt, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return otp.OTP{}, otp.ErrOTPNotFound
		}
		return otp.OTP{}, err
	}
	return o, nil
}

// Delete implements otp.Repository.
func (r *otpRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM otps WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return otp.ErrOTPNotFound
	}
	return nil
}

// PurgeExpired implements otp.Repository.
func (r *otpRepositoryImpl) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM otps WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
