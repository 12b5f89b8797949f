package timeoff

import "time"

type Request struct {
	RequestID        int64      `json:"requestId"`
	EmpID            string     `json:"empId"`
	TimeOffType      string     `json:"timeOffType"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          time.Time  `json:"endDate"`
	TotalDays        float64    `json:"totalDays"`
	Reason           string     `json:"reason,omitempty"`
	Status           string     `json:"status"`
	ApprovedBy       string     `json:"approvedBy,omitempty"`
	ApprovalDate     *time.Time `json:"approvalDate,omitempty"`
	ApprovalComments string     `json:"approvalComments,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

const (
	TypePaidTimeOff = "paid_time_off"
	TypeSickLeave   = "sick_leave"
	TypeUnpaid      = "unpaid_leave"

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

func ValidType(timeOffType string) bool {
	switch timeOffType {
	case TypePaidTimeOff, TypeSickLeave, TypeUnpaid:
		return true
	}
	return false
}
