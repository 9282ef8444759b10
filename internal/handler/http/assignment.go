package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/assignment"
	"github.com/shiftwise-hq/workforce-backend-go/internal/handler/http/response"
)

// AssignmentHandler defines the shift assignment handler interface
type AssignmentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Current(w http.ResponseWriter, r *http.Request)
	ListMonth(w http.ResponseWriter, r *http.Request)
}

type assignmentHandlerImpl struct {
	assignmentService assignment.AssignmentService
}

func NewAssignmentHandler(assignmentService assignment.AssignmentService) AssignmentHandler {
	return &assignmentHandlerImpl{assignmentService: assignmentService}
}

// Create adds a shift assignment for an employee. Admin only.
func (h *assignmentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req assignment.CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.assignmentService.AddAssignment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Assignment created", created)
}

// Delete removes the caller's own unattended, unlocked, future assignment.
func (h *assignmentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)
	assignmentID := chi.URLParam(r, "id")

	if err := h.assignmentService.DeleteAssignment(r.Context(), employeeID, assignmentID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Assignment deleted", nil)
}

// Current returns the assignment whose shift window covers now, if any.
func (h *assignmentHandlerImpl) Current(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)

	a, err := h.assignmentService.FindCurrentAssignment(r.Context(), employeeID, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, assignment.ToResponse(a))
}

// ListMonth returns the caller's assignments for a calendar month.
func (h *assignmentHandlerImpl) ListMonth(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)
	year, month := monthFromQuery(r)

	assignments, err := h.assignmentService.ListMonth(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, assignments)
}
