package request

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/notification"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/request"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/database"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/validator"
	"github.com/shiftwise-hq/workforce-backend-go/internal/repository/postgresql"
)

// EmailSender is the outbound mail contract the engine dispatches terminal
// outcomes through. Failures are logged by the implementation and never
// reach the transaction.
type EmailSender interface {
	SendApprovalResult(to, name, message string, approved bool) error
}

type engineImpl struct {
	db       *database.DB
	deps     *Deps
	policies map[request.Kind]Policy

	notificationService notification.Service
	emailSender         EmailSender
	logger              *slog.Logger
	now                 func() time.Time
}

// NewRequestService assembles the workflow engine with one policy per
// request kind.
func NewRequestService(
	db *database.DB,
	deps *Deps,
	notificationService notification.Service,
	emailSender EmailSender,
	logger *slog.Logger,
) request.RequestService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	policies := map[request.Kind]Policy{}
	for _, p := range []Policy{
		&leavePolicy{},
		&partTimePolicy{},
		&remoteWorkPolicy{},
		&revertLeavePolicy{},
		&shiftChangePolicy{},
	} {
		policies[p.Kind()] = p
	}
	return &engineImpl{
		db:                  db,
		deps:                deps,
		policies:            policies,
		notificationService: notificationService,
		emailSender:         emailSender,
		logger:              logger,
		now:                 deps.Now,
	}
}

// Create implements request.RequestService.
func (s *engineImpl) Create(ctx context.Context, requesterID string, input request.CreateRequestInput) (request.RequestResponse, error) {
	policy, ok := s.policies[input.Kind]
	if !ok {
		return request.RequestResponse{}, validator.ValidationErrors{{Field: "kind", Message: "unknown request kind"}}
	}

	date, err := validator.ParseDate(input.Date)
	if err != nil {
		return request.RequestResponse{}, err
	}

	emp, err := s.deps.EmployeeRepo.GetByID(ctx, requesterID)
	if err != nil {
		return request.RequestResponse{}, err
	}

	st, err := s.deps.ShiftRepo.GetByID(ctx, input.ShiftID)
	if err != nil {
		return request.RequestResponse{}, err
	}
	if !st.IsActive {
		return request.RequestResponse{}, shift.ErrShiftInactive
	}

	now := s.now()
	if err := s.dateUsable(date, st, now); err != nil {
		return request.RequestResponse{}, err
	}

	if err := policy.ValidateCreate(ctx, s.deps, requesterID, st, date, input); err != nil {
		return request.RequestResponse{}, err
	}

	created, err := s.deps.RequestRepo.Create(ctx, request.Request{
		Kind:             input.Kind,
		EmployeeID:       requesterID,
		TargetEmployeeID: input.TargetEmployeeID,
		ShiftID:          input.ShiftID,
		Date:             date,
		LeaveTypeID:      input.LeaveTypeID,
		Reason:           input.Reason,
		Status:           request.StatusPending,
	})
	if err != nil {
		return request.RequestResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	created.EmployeeName = &emp.FullName
	created.ShiftName = &st.Name
	return request.ToResponse(created), nil
}

// Recall implements request.RequestService.
func (s *engineImpl) Recall(ctx context.Context, requestID, actorID string) (request.RequestResponse, error) {
	req, err := s.deps.RequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return request.RequestResponse{}, err
	}
	if req.EmployeeID != actorID {
		return request.RequestResponse{}, request.ErrNotRequester
	}

	err = s.deps.RequestRepo.Resolve(ctx, request.ResolveParams{
		ID:         requestID,
		FromStatus: request.StatusPending,
		ToStatus:   request.StatusRecalled,
	})
	if err != nil {
		return request.RequestResponse{}, err
	}
	return s.Get(ctx, requestID)
}

// Approve implements request.RequestService. The policy's side effects and
// the status transition commit or roll back together.
func (s *engineImpl) Approve(ctx context.Context, requestID, approverID, note string) (request.RequestResponse, error) {
	req, err := s.deps.RequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return request.RequestResponse{}, err
	}
	fromStatus := s.approvalFromStatus(req.Kind)
	if req.Status != fromStatus {
		return request.RequestResponse{}, request.ErrNotPending
	}
	policy := s.policies[req.Kind]

	// Serializable: policies run check-then-write guards (overlap before
	// creating an assignment, holdings before a swap) that two concurrent
	// approvals could otherwise both pass. A rerun after a serialization
	// failure re-executes the guard against the winner's committed rows.
	now := s.now()
	err = postgresql.WithSerializableTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := policy.Apply(txCtx, s.deps, req); err != nil {
			return err
		}
		return s.deps.RequestRepo.Resolve(txCtx, request.ResolveParams{
			ID:           requestID,
			FromStatus:   fromStatus,
			ToStatus:     request.StatusApproved,
			ResponseBy:   &approverID,
			ResponseNote: &note,
			ResponseDate: &now,
		})
	})
	if err != nil {
		return request.RequestResponse{}, err
	}

	s.dispatchOutcome(req, true)
	return s.Get(ctx, requestID)
}

// Reject implements request.RequestService.
func (s *engineImpl) Reject(ctx context.Context, requestID, approverID, note string) (request.RequestResponse, error) {
	req, err := s.deps.RequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return request.RequestResponse{}, err
	}
	fromStatus := s.approvalFromStatus(req.Kind)

	now := s.now()
	err = s.deps.RequestRepo.Resolve(ctx, request.ResolveParams{
		ID:           requestID,
		FromStatus:   fromStatus,
		ToStatus:     request.StatusRejected,
		ResponseBy:   &approverID,
		ResponseNote: &note,
		ResponseDate: &now,
	})
	if err != nil {
		return request.RequestResponse{}, err
	}

	s.dispatchOutcome(req, false)
	return s.Get(ctx, requestID)
}

// EmployeeApprove implements request.RequestService: the shift-change peer
// hop. PENDING -> PENDING_APPROVAL, not terminal, so no outbound dispatch.
func (s *engineImpl) EmployeeApprove(ctx context.Context, requestID, actorID string) (request.RequestResponse, error) {
	req, err := s.peerHopRequest(ctx, requestID, actorID)
	if err != nil {
		return request.RequestResponse{}, err
	}

	now := s.now()
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		held, err := s.deps.AssignmentRepo.FindByShiftAndDate(txCtx, *req.TargetEmployeeID, req.ShiftID, req.Date)
		if err != nil {
			return fmt.Errorf("failed to look up target assignment: %w", err)
		}
		if held == nil {
			return request.ErrTargetNotHolding
		}
		return s.deps.RequestRepo.Resolve(txCtx, request.ResolveParams{
			ID:               requestID,
			FromStatus:       request.StatusPending,
			ToStatus:         request.StatusPendingApproval,
			TargetAnsweredAt: &now,
		})
	})
	if err != nil {
		return request.RequestResponse{}, err
	}
	return s.Get(ctx, requestID)
}

// EmployeeReject implements request.RequestService. REJECTED_APPROVAL is
// terminal; the requester is told their peer declined.
func (s *engineImpl) EmployeeReject(ctx context.Context, requestID, actorID, note string) (request.RequestResponse, error) {
	req, err := s.peerHopRequest(ctx, requestID, actorID)
	if err != nil {
		return request.RequestResponse{}, err
	}

	now := s.now()
	err = s.deps.RequestRepo.Resolve(ctx, request.ResolveParams{
		ID:               requestID,
		FromStatus:       request.StatusPending,
		ToStatus:         request.StatusRejectedApproval,
		ResponseBy:       &actorID,
		ResponseNote:     &note,
		ResponseDate:     &now,
		TargetAnsweredAt: &now,
	})
	if err != nil {
		return request.RequestResponse{}, err
	}

	s.dispatchOutcome(req, false)
	return s.Get(ctx, requestID)
}

// Get implements request.RequestService.
func (s *engineImpl) Get(ctx context.Context, requestID string) (request.RequestResponse, error) {
	req, err := s.deps.RequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return request.RequestResponse{}, err
	}
	return request.ToResponse(req), nil
}

// ListByEmployee implements request.RequestService.
func (s *engineImpl) ListByEmployee(ctx context.Context, employeeID string, kind *request.Kind) ([]request.RequestResponse, error) {
	requests, err := s.deps.RequestRepo.ListByEmployee(ctx, employeeID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return toResponses(requests), nil
}

// ListPending implements request.RequestService. Shift-change requests
// surface for administrative review once the peer hop is done, so both
// pending statuses are collected.
func (s *engineImpl) ListPending(ctx context.Context, kind *request.Kind) ([]request.RequestResponse, error) {
	pending, err := s.deps.RequestRepo.ListByStatus(ctx, request.StatusPending, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	pendingApproval, err := s.deps.RequestRepo.ListByStatus(ctx, request.StatusPendingApproval, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending-approval requests: %w", err)
	}
	return toResponses(append(pending, pendingApproval...)), nil
}

// approvalFromStatus returns the status an administrative approve/reject
// fires from: shift-change waits behind its peer hop.
func (s *engineImpl) approvalFromStatus(kind request.Kind) request.Status {
	if kind == request.KindShiftChange {
		return request.StatusPendingApproval
	}
	return request.StatusPending
}

// peerHopRequest loads and authorizes a shift-change peer transition.
func (s *engineImpl) peerHopRequest(ctx context.Context, requestID, actorID string) (request.Request, error) {
	req, err := s.deps.RequestRepo.GetByID(ctx, requestID)
	if err != nil {
		return request.Request{}, err
	}
	if req.Kind != request.KindShiftChange {
		return request.Request{}, request.ErrNotPending
	}
	if req.TargetEmployeeID == nil || *req.TargetEmployeeID != actorID {
		return request.Request{}, request.ErrNotTargetEmployee
	}
	return req, nil
}

// dateUsable is the common creation guard: the target date must be today or
// later, and a same-day request is only valid before the shift starts.
func (s *engineImpl) dateUsable(date time.Time, st shift.ShiftTemplate, now time.Time) error {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return request.ErrPastDate
	}
	if day.Equal(today) && !now.Before(st.StartOn(day)) {
		return request.ErrShiftAlreadyStarted
	}
	return nil
}

// dispatchOutcome fans a terminal outcome out to the in-app sink and email,
// after the transaction has committed. Best effort on both legs.
func (s *engineImpl) dispatchOutcome(req request.Request, approved bool) {
	outcome := "rejected"
	if approved {
		outcome = "approved"
	}
	title := fmt.Sprintf("%s request %s", kindLabel(req.Kind), outcome)
	message := fmt.Sprintf("Your %s request for %s has been %s.",
		kindLabel(req.Kind), req.Date.Format("2006-01-02"), outcome)

	s.notificationService.Notify(req.EmployeeID, title, message)

	if req.EmployeeEmail == nil {
		return
	}
	name := ""
	if req.EmployeeName != nil {
		name = *req.EmployeeName
	}
	go func() {
		if err := s.emailSender.SendApprovalResult(*req.EmployeeEmail, name, message, approved); err != nil {
			s.logger.Error("failed to send approval email",
				slog.String("request_id", req.ID),
				slog.Any("error", err))
		}
	}()
}

func toResponses(requests []request.Request) []request.RequestResponse {
	responses := make([]request.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, request.ToResponse(r))
	}
	return responses
}

func kindLabel(k request.Kind) string {
	switch k {
	case request.KindLeave:
		return "Leave"
	case request.KindPartTime:
		return "Part-time"
	case request.KindRemoteWork:
		return "Remote work"
	case request.KindRevertLeave:
		return "Revert leave"
	case request.KindShiftChange:
		return "Shift change"
	default:
		return string(k)
	}
}
