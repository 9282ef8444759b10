package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/request"
	"github.com/shiftwise-hq/workforce-backend-go/internal/handler/http/response"
)

// RequestHandler defines the request workflow handler interface
type RequestHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Recall(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	EmployeeApprove(w http.ResponseWriter, r *http.Request)
	EmployeeReject(w http.ResponseWriter, r *http.Request)
}

type requestHandlerImpl struct {
	requestService request.RequestService
}

func NewRequestHandler(requestService request.RequestService) RequestHandler {
	return &requestHandlerImpl{requestService: requestService}
}

type resolveRequestBody struct {
	Note string `json:"note"`
}

// Create submits a new request of any kind on behalf of the caller.
func (h *requestHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)

	var input request.CreateRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.requestService.Create(r.Context(), employeeID, input)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Request submitted", created)
}

func (h *requestHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")

	req, err := h.requestService.Get(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, req)
}

// ListMine returns the caller's requests, optionally filtered by kind.
func (h *requestHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)

	requests, err := h.requestService.ListByEmployee(r.Context(), employeeID, kindFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListPending returns requests awaiting an administrative decision. This
// includes shift changes already confirmed by their target. Admin only.
func (h *requestHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.ListPending(r.Context(), kindFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// Recall withdraws the caller's own pending request.
func (h *requestHandlerImpl) Recall(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)
	requestID := chi.URLParam(r, "id")

	req, err := h.requestService.Recall(r.Context(), requestID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request recalled", req)
}

// Approve applies the request's side effects and closes it. Admin only.
func (h *requestHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	approverID := employeeIDFromContext(r)
	requestID := chi.URLParam(r, "id")

	var body resolveRequestBody
	_ = json.NewDecoder(r.Body).Decode(&body)

	req, err := h.requestService.Approve(r.Context(), requestID, approverID, body.Note)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request approved", req)
}

// Reject closes the request without side effects. Admin only.
func (h *requestHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	approverID := employeeIDFromContext(r)
	requestID := chi.URLParam(r, "id")

	var body resolveRequestBody
	_ = json.NewDecoder(r.Body).Decode(&body)

	req, err := h.requestService.Reject(r.Context(), requestID, approverID, body.Note)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request rejected", req)
}

// EmployeeApprove is the shift-change peer confirmation by the targeted
// employee.
func (h *requestHandlerImpl) EmployeeApprove(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)
	requestID := chi.URLParam(r, "id")

	req, err := h.requestService.EmployeeApprove(r.Context(), requestID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift change confirmed", req)
}

// EmployeeReject declines the shift-change on the target's side, which
// closes the request outright.
func (h *requestHandlerImpl) EmployeeReject(w http.ResponseWriter, r *http.Request) {
	employeeID := employeeIDFromContext(r)
	requestID := chi.URLParam(r, "id")

	var body resolveRequestBody
	_ = json.NewDecoder(r.Body).Decode(&body)

	req, err := h.requestService.EmployeeReject(r.Context(), requestID, employeeID, body.Note)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift change declined", req)
}

func kindFromQuery(r *http.Request) *request.Kind {
	v := r.URL.Query().Get("kind")
	if v == "" {
		return nil
	}
	k := request.Kind(v)
	return &k
}
