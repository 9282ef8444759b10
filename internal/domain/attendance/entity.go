package attendance

import "time"

const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
	StatusAbsent  = "ABSENT"
	StatusLeave   = "LEAVE"
)

// LateThresholdMinutes is the number of late minutes at which a check-in is
// classified LATE instead of PRESENT.
const LateThresholdMinutes = 10

// Attendance records one check-in/check-out pair against exactly one shift
// assignment. LocationID is nil for synthetic records (remote work, leave).
type Attendance struct {
	ID           string
	EmployeeID   string
	AssignmentID string
	LocationID   *string
	CheckInTime  time.Time
	CheckOutTime *time.Time
	TotalHours   float64
	LateMinutes  int
	Status       string
	Edited       bool
	EditedBy     *string
	EditedTime   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Classify returns the check-in status and late minutes for a shift that
// starts at shiftStart when the employee checks in at checkIn. Minutes are
// truncated.
func Classify(shiftStart, checkIn time.Time) (status string, lateMinutes int) {
	if !checkIn.After(shiftStart) {
		return StatusPresent, 0
	}
	lateMinutes = int(checkIn.Sub(shiftStart).Minutes())
	if lateMinutes >= LateThresholdMinutes {
		return StatusLate, lateMinutes
	}
	return StatusPresent, lateMinutes
}
