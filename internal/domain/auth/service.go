package auth

import "context"

// Service is the passwordless login flow: an employee asks for a one-time
// code on their registered email, then trades it for an access token.
type Service interface {
	// RequestCode issues a fresh code for the employee behind the email
	// and delivers it by mail.
	RequestCode(ctx context.Context, email string) error

	// VerifyCode consumes a valid code and returns a signed access token
	// carrying the employee's identity and role.
	VerifyCode(ctx context.Context, email, code string) (TokenResponse, error)
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}
