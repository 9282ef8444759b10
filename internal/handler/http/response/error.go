package response

import (
	"errors"
	"net/http"

	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/assignment"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/employee"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/leave"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/location"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/notification"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/otp"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/request"
	"github.com/shiftwise-hq/workforce-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Missing entities
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift template not found")
	case errors.Is(err, location.ErrLocationNotFound):
		NotFound(w, "Location not found")
	case errors.Is(err, assignment.ErrAssignmentNotFound):
		NotFound(w, "Shift assignment not found")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNoCurrentShift):
		NotFound(w, "No shift assignment covers the current time")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, "Request not found")
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Business-rule conflicts
	case errors.Is(err, employee.ErrEmployeeInactive):
		Conflict(w, "Employee is inactive")
	case errors.Is(err, shift.ErrShiftInactive):
		Conflict(w, "Shift template is inactive")
	case errors.Is(err, assignment.ErrAssignmentOverlap):
		Conflict(w, "Employee already has an overlapping shift on this date")
	case errors.Is(err, assignment.ErrPastDate):
		Conflict(w, "Cannot modify assignments on a past date")
	case errors.Is(err, assignment.ErrAssignmentLocked):
		Conflict(w, "Assignment is locked for the closed month")
	case errors.Is(err, assignment.ErrAssignmentHasAttendance):
		Conflict(w, "Assignment already has an attendance record")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Shift has already been checked in")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Attendance has already been checked out")
	case errors.Is(err, attendance.ErrOutsideAllowedRadius):
		// The wrapped message carries the location name and distance.
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrLeaveDay):
		Conflict(w, "Assignment is already covered by an approved leave")
	case errors.Is(err, leave.ErrInsufficientBalance):
		Conflict(w, "Insufficient leave balance")
	case errors.Is(err, leave.ErrNothingToCredit):
		Conflict(w, "No used leave days to restore")
	case errors.Is(err, request.ErrNotPending):
		Conflict(w, "Cannot act on non-pending request")
	case errors.Is(err, request.ErrPastDate):
		Conflict(w, "Request date must be today or later")
	case errors.Is(err, request.ErrShiftAlreadyStarted):
		Conflict(w, "Shift has already started")
	case errors.Is(err, request.ErrSelfSwap):
		Conflict(w, "Shift change target must be a different employee")
	case errors.Is(err, request.ErrTargetNotHolding):
		Conflict(w, "Target employee does not hold this shift assignment")
	case errors.Is(err, request.ErrNoLeaveAttendance):
		Conflict(w, "No leave attendance exists for this shift and date")
	case errors.Is(err, request.ErrShiftNotPartTime):
		Conflict(w, "Shift template is not a part-time shift")

	case errors.Is(err, assignment.ErrNotAssignmentOwner):
		Conflict(w, "Assignment does not belong to this employee")

	// Login failures: both map to 401 so a caller cannot probe which
	// emails have pending codes.
	case errors.Is(err, otp.ErrOTPNotFound):
		Unauthorized(w, "Verification code is invalid or expired")
	case errors.Is(err, otp.ErrOTPMismatch):
		Unauthorized(w, "Verification code is invalid or expired")

	// Ownership violations
	case errors.Is(err, request.ErrNotRequester):
		Forbidden(w, "Only the requester may recall this request")
	case errors.Is(err, request.ErrNotTargetEmployee):
		Forbidden(w, "Only the targeted employee may answer this request")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
