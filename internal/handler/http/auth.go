package http

import (
	"encoding/json"
	"net/http"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/auth"
	"github.com/shiftwise-hq/workforce-backend-go/internal/handler/http/response"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/validator"
)

// AuthHandler defines the passwordless login handler interface
type AuthHandler interface {
	RequestOTP(w http.ResponseWriter, r *http.Request)
	VerifyOTP(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) AuthHandler {
	return &authHandlerImpl{authService: authService}
}

type requestOTPRequest struct {
	Email string `json:"email"`
}

// RequestOTP emails a one-time sign-in code to a registered employee.
func (h *authHandlerImpl) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req requestOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if !validator.IsValidEmail(req.Email) {
		response.ValidationError(w, map[string]string{"email": "must be a valid email address"})
		return
	}

	if err := h.authService.RequestCode(r.Context(), req.Email); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Verification code sent", nil)
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// VerifyOTP exchanges a valid code for an access token.
func (h *authHandlerImpl) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	details := map[string]string{}
	if !validator.IsValidEmail(req.Email) {
		details["email"] = "must be a valid email address"
	}
	if validator.IsEmpty(req.Code) {
		details["code"] = "is required"
	}
	if len(details) > 0 {
		response.ValidationError(w, details)
		return
	}

	token, err := h.authService.VerifyCode(r.Context(), req.Email, req.Code)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, token)
}
