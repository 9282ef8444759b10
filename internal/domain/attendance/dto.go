package attendance

import "time"

type CheckInRequest struct {
	LocationID string  `json:"location_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

type CheckOutRequest struct {
	AttendanceID string `json:"attendance_id"`
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	AssignmentID string  `json:"assignment_id"`
	LocationID   *string `json:"location_id,omitempty"`
	CheckInTime  string  `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	TotalHours   float64 `json:"total_hours"`
	LateMinutes  int     `json:"late_minutes"`
	Status       string  `json:"status"`
	Edited       bool    `json:"edited"`
	EditedBy     *string `json:"edited_by,omitempty"`
}

// DayRecord is one row of the derived monthly view: the occurrence plus its
// attendance, if any, with the lazily derived status.
type DayRecord struct {
	AssignmentID string              `json:"assignment_id"`
	Date         string              `json:"date"`
	ShiftID      string              `json:"shift_id"`
	ShiftName    *string             `json:"shift_name,omitempty"`
	StartTime    *string             `json:"start_time,omitempty"`
	EndTime      *string             `json:"end_time,omitempty"`
	Locked       bool                `json:"locked"`
	Status       string              `json:"status,omitempty"`
	Attendance   *AttendanceResponse `json:"attendance,omitempty"`
}

// ToResponse projects an attendance row into its transport shape.
func ToResponse(att Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           att.ID,
		EmployeeID:   att.EmployeeID,
		AssignmentID: att.AssignmentID,
		LocationID:   att.LocationID,
		CheckInTime:  att.CheckInTime.Format(time.RFC3339),
		TotalHours:   att.TotalHours,
		LateMinutes:  att.LateMinutes,
		Status:       att.Status,
		Edited:       att.Edited,
		EditedBy:     att.EditedBy,
	}
	if att.CheckOutTime != nil {
		s := att.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &s
	}
	return resp
}
