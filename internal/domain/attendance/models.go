package attendance

import "time"

type Record struct {
	AttendanceID int64      `json:"attendanceId"`
	EmpID        string     `json:"empId"`
	Date         time.Time  `json:"date"`
	CheckInTime  *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time `json:"checkOutTime,omitempty"`
	WorkHours    float64    `json:"workHours"`
	ExtraHours   float64    `json:"extraHours"`
	Status       string     `json:"status"`
	IsPaid       bool       `json:"isPaid"`
	Remarks      string     `json:"remarks,omitempty"`
}

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusHalfDay = "half_day"
	StatusOnLeave = "on_leave"
)
