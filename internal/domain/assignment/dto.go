package assignment

import "time"

type CreateAssignmentRequest struct {
	EmployeeID string `json:"employee_id"`
	ShiftID    string `json:"shift_id"`
	Date       string `json:"date"` // YYYY-MM-DD
}

type AssignmentResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	ShiftID      string  `json:"shift_id"`
	ShiftName    *string `json:"shift_name,omitempty"`
	Date         string  `json:"date"`
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	Locked       bool    `json:"locked"`
	AttendanceID *string `json:"attendance_id,omitempty"`
}

// ToResponse projects an occurrence into its transport shape.
func ToResponse(a ShiftAssignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		ShiftID:      a.ShiftID,
		ShiftName:    a.ShiftName,
		Date:         a.Date.Format("2006-01-02"),
		Locked:       a.Locked,
		AttendanceID: a.AttendanceID,
	}
	resp.StartTime = formatClock(a.ShiftStart)
	resp.EndTime = formatClock(a.ShiftEnd)
	return resp
}

func formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04")
	return &s
}
