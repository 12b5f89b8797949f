package timeoff

import (
	"errors"
	"time"
)

// CalculateDays returns the inclusive day count between start and end.
func CalculateDays(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, errors.New("end date before start date")
	}
	return end.Sub(start).Hours()/24 + 1, nil
}

// Available returns the remaining balance for the request type; unpaid leave
// is never balance-limited.
func Available(balance Balance, timeOffType string) (float64, bool) {
	switch timeOffType {
	case TypePaidTimeOff:
		return balance.PaidTimeOffTotal - balance.PaidTimeOffUsed, true
	case TypeSickLeave:
		return balance.SickLeaveTotal - balance.SickLeaveUsed, true
	}
	return 0, false
}

type Balance struct {
	EmpID            string
	Year             int
	PaidTimeOffTotal float64
	PaidTimeOffUsed  float64
	SickLeaveTotal   float64
	SickLeaveUsed    float64
}
