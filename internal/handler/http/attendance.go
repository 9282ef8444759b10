package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/workforce-backend-go/internal/handler/http/response"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/validator"
)

// AttendanceHandler defines the attendance handler interface
type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	MonthlyView(w http.ResponseWriter, r *http.Request)
	EmployeeMonthlyView(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn records presence against the caller's current shift.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)

	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if !validator.IsValidCoordinates(req.Latitude, req.Longitude) {
		response.ValidationError(w, map[string]string{"coordinates": "latitude/longitude out of range"})
		return
	}

	att, err := h.attendanceService.CheckIn(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", att)
}

// CheckOut closes the caller's open attendance record.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)
	attendanceID := chi.URLParam(r, "id")

	att, err := h.attendanceService.CheckOut(r.Context(), employeeID, attendanceID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", att)
}

// MonthlyView returns the caller's derived month of day records.
func (h *attendanceHandlerImpl) MonthlyView(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)
	year, month := monthFromQuery(r)

	records, err := h.attendanceService.MonthlyView(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// EmployeeMonthlyView is the admin variant scoped to any employee.
func (h *attendanceHandlerImpl) EmployeeMonthlyView(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	year, month := monthFromQuery(r)

	records, err := h.attendanceService.MonthlyView(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
