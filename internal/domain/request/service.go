package request

import "context"

// RequestService is the workflow engine shared by all five request kinds.
// Every operation takes the acting employee explicitly; ownership and
// peer-confirmation checks are plain argument comparisons.
type RequestService interface {
	Create(ctx context.Context, requesterID string, input CreateRequestInput) (RequestResponse, error)

	// Recall is requester-only and valid from PENDING.
	Recall(ctx context.Context, requestID, actorID string) (RequestResponse, error)

	// Approve and Reject are the administrative transitions. For
	// shift-change they act on PENDING_APPROVAL; for every other kind on
	// PENDING.
	Approve(ctx context.Context, requestID, approverID, note string) (RequestResponse, error)
	Reject(ctx context.Context, requestID, approverID, note string) (RequestResponse, error)

	// EmployeeApprove and EmployeeReject are the shift-change peer hop,
	// answered by the targeted employee from PENDING.
	EmployeeApprove(ctx context.Context, requestID, actorID string) (RequestResponse, error)
	EmployeeReject(ctx context.Context, requestID, actorID, note string) (RequestResponse, error)

	Get(ctx context.Context, requestID string) (RequestResponse, error)
	ListByEmployee(ctx context.Context, employeeID string, kind *Kind) ([]RequestResponse, error)
	ListPending(ctx context.Context, kind *Kind) ([]RequestResponse, error)
}
