package employee

import "time"

type Employee struct {
	EmpID          string    `json:"empId"`
	CompanyCode    string    `json:"companyCode"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	PasswordHash   string    `json:"-"`
	Role           string    `json:"role"`
	Department     string    `json:"department,omitempty"`
	ManagerID      string    `json:"managerId,omitempty"`
	Location       string    `json:"location,omitempty"`
	DateOfJoining  time.Time `json:"dateOfJoining"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type WorkingSchedule struct {
	ScheduleID          int64      `json:"scheduleId"`
	EmpID               string     `json:"empId"`
	TotalWorkingHours   float64    `json:"totalWorkingHours"`
	BreakTimeHours      float64    `json:"breakTimeHours"`
	WorkingDaysPerMonth int        `json:"workingDaysPerMonth"`
	EffectiveFrom       time.Time  `json:"effectiveFrom"`
	EffectiveTo         *time.Time `json:"effectiveTo,omitempty"`
}

type TimeOffBalance struct {
	BalanceID            int64   `json:"balanceId"`
	EmpID                string  `json:"empId"`
	Year                 int     `json:"year"`
	PaidTimeOffTotal     float64 `json:"paidTimeOffTotal"`
	PaidTimeOffUsed      float64 `json:"paidTimeOffUsed"`
	SickLeaveTotal       float64 `json:"sickLeaveTotal"`
	SickLeaveUsed        float64 `json:"sickLeaveUsed"`
	PaidTimeOffAvailable float64 `json:"paidTimeOffAvailable"`
	SickLeaveAvailable   float64 `json:"sickLeaveAvailable"`
}

type StatusTracker struct {
	EmpID           string     `json:"empId"`
	CurrentStatus   string     `json:"currentStatus"`
	StatusIndicator string     `json:"statusIndicator"`
	LastCheckIn     *time.Time `json:"lastCheckIn,omitempty"`
	LastCheckOut    *time.Time `json:"lastCheckOut,omitempty"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Status tracker states and their dashboard indicators.
const (
	StatusInOffice = "in_office"
	StatusOnLeave  = "on_leave"
	StatusAbsent   = "absent"

	IndicatorGreen    = "green"
	IndicatorAirplane = "airplane"
	IndicatorYellow   = "yellow"
)

// Onboarding defaults applied to every new hire.
const (
	DefaultWorkingHours  = 8.0
	DefaultBreakHours    = 1.0
	DefaultWorkingDays   = 22
	DefaultPaidTimeOff   = 12.0
	DefaultSickLeaveDays = 7.0
)

type RegisterInput struct {
	CompanyCode   string    `json:"companyCode"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Role          string    `json:"role"`
	Department    string    `json:"department"`
	ManagerID     string    `json:"managerId"`
	Location      string    `json:"location"`
	DateOfJoining time.Time `json:"dateOfJoining"`
}

// OnboardingBundle is the unit the store persists atomically: the employee row
// and its three mandatory dependent records. Either all four rows commit or
// none do.
type OnboardingBundle struct {
	Employee Employee
	Schedule WorkingSchedule
	Balance  TimeOffBalance
	Tracker  StatusTracker
}

type UpdateInput struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	ManagerID  string `json:"managerId"`
	Location   string `json:"location"`
}
