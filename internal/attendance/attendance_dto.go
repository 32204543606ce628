package attendance

type Location struct {
	Latitude  float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"required,min=-180,max=180"`
}

type CheckInRequest struct {
	Location Location `json:"location" binding:"required"`
	Notes    *string  `json:"notes" binding:"omitempty,max=500"`
}

type CheckOutRequest struct {
	Location Location `json:"location" binding:"required"`
}

type UpdateAttendanceRequest struct {
	Status *string `json:"status" binding:"omitempty,oneof=present half-day absent leave"`
	Notes  *string `json:"notes" binding:"omitempty,max=500"`
}

type DurationResponse struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

type AttendanceResponse struct {
	ID                string            `json:"id"`
	EmployeeID        string            `json:"employee_id"`
	Date              string            `json:"date"`
	CheckInTime       string            `json:"check_in_time"`
	CheckInLocation   Location          `json:"check_in_location"`
	CheckOutTime      *string           `json:"check_out_time,omitempty"`
	CheckOutLocation  *Location         `json:"check_out_location,omitempty"`
	Duration          *DurationResponse `json:"duration,omitempty"`
	Status            string            `json:"status"`
	Notes             *string           `json:"notes,omitempty"`
}
