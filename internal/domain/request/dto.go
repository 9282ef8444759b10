package request

import "time"

type CreateRequestInput struct {
	Kind             Kind    `json:"kind"`
	ShiftID          string  `json:"shift_id"`
	Date             string  `json:"date"` // YYYY-MM-DD
	Reason           string  `json:"reason"`
	TargetEmployeeID *string `json:"target_employee_id,omitempty"`
	LeaveTypeID      *string `json:"leave_type_id,omitempty"`
}

type RequestResponse struct {
	ID               string  `json:"id"`
	Kind             Kind    `json:"kind"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     *string `json:"employee_name,omitempty"`
	TargetEmployeeID *string `json:"target_employee_id,omitempty"`
	TargetName       *string `json:"target_name,omitempty"`
	ShiftID          string  `json:"shift_id"`
	ShiftName        *string `json:"shift_name,omitempty"`
	Date             string  `json:"date"`
	LeaveTypeID      *string `json:"leave_type_id,omitempty"`
	Reason           string  `json:"reason"`
	Status           Status  `json:"status"`
	ResponseBy       *string `json:"response_by,omitempty"`
	ResponseNote     *string `json:"response_note,omitempty"`
	ResponseDate     *string `json:"response_date,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

// ToResponse projects a request into its transport shape.
func ToResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:               r.ID,
		Kind:             r.Kind,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		TargetEmployeeID: r.TargetEmployeeID,
		TargetName:       r.TargetName,
		ShiftID:          r.ShiftID,
		ShiftName:        r.ShiftName,
		Date:             r.Date.Format("2006-01-02"),
		LeaveTypeID:      r.LeaveTypeID,
		Reason:           r.Reason,
		Status:           r.Status,
		ResponseBy:       r.ResponseBy,
		ResponseNote:     r.ResponseNote,
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
	}
	if r.ResponseDate != nil {
		s := r.ResponseDate.Format(time.RFC3339)
		resp.ResponseDate = &s
	}
	return resp
}
