package request

import "time"

type Kind string

const (
	KindLeave       Kind = "LEAVE"
	KindPartTime    Kind = "PART_TIME"
	KindRemoteWork  Kind = "REMOTE_WORK"
	KindRevertLeave Kind = "REVERT_LEAVE"
	KindShiftChange Kind = "SHIFT_CHANGE"
)

type Status string

const (
	StatusPending = Status("PENDING")
	// StatusPendingApproval is shift-change only: the target employee has
	// confirmed and the request now waits for an administrative approver.
	StatusPendingApproval  = Status("PENDING_APPROVAL")
	StatusApproved         = Status("APPROVED")
	StatusRejected         = Status("REJECTED")
	StatusRejectedApproval = Status("REJECTED_APPROVAL")
	StatusRecalled         = Status("RECALLED")
)

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s != StatusPending && s != StatusPendingApproval
}

// Request is the shared shape of all five request kinds. A request never
// mutates after reaching a terminal status.
type Request struct {
	ID               string
	Kind             Kind
	EmployeeID       string
	TargetEmployeeID *string // shift-change only
	ShiftID          string
	Date             time.Time
	LeaveTypeID      *string // leave and revert-leave
	Reason           string
	Status           Status
	ResponseBy       *string
	ResponseNote     *string
	ResponseDate     *time.Time
	TargetAnsweredAt *time.Time // shift-change peer hop stamp
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined columns
	EmployeeName  *string
	EmployeeEmail *string
	TargetName    *string
	ShiftName     *string
	ShiftStart    *time.Time
	ShiftEnd      *time.Time
}
