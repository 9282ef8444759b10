package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/leave"
	"github.com/shiftwise-hq/workforce-backend-go/internal/handler/http/response"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/validator"
)

// LeaveHandler defines the leave balance handler interface
type LeaveHandler interface {
	ListBalances(w http.ResponseWriter, r *http.Request)
	SeedBalances(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	balanceService leave.BalanceService
}

func NewLeaveHandler(balanceService leave.BalanceService) LeaveHandler {
	return &leaveHandlerImpl{balanceService: balanceService}
}

// ListBalances returns the caller's per-type balances for a year,
// defaulting to the current one.
func (h *leaveHandlerImpl) ListBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)

	year := time.Now().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}

	balances, err := h.balanceService.ListBalances(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

type seedBalancesRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
}

// SeedBalances provisions balance rows for an employee. Admin only,
// typically run once at onboarding and once per new year.
func (h *leaveHandlerImpl) SeedBalances(w http.ResponseWriter, r *http.Request) {
	var req seedBalancesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if !validator.IsValidUUID(req.EmployeeID) {
		response.ValidationError(w, map[string]string{"employee_id": "must be a valid id"})
		return
	}
	if req.Year == 0 {
		req.Year = time.Now().Year()
	}

	if err := h.balanceService.SeedEmployee(r.Context(), req.EmployeeID, req.Year); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave balances seeded", nil)
}
