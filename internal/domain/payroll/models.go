package payroll

import "time"

type SalaryStructure struct {
	SalaryStructureID int64      `json:"salaryStructureId"`
	EmpID             string     `json:"empId"`
	MonthlyWage       float64    `json:"monthlyWage"`
	WorkingDaysInWeek int        `json:"noOfWorkingDaysInWeek"`
	StandardAllowance float64    `json:"standardAllowance"`
	FixedAllowance    float64    `json:"fixedAllowance"`
	EffectiveFrom     time.Time  `json:"effectiveFrom"`
	EffectiveTo       *time.Time `json:"effectiveTo,omitempty"`
	IsActive          bool       `json:"isActive"`
}

type PFContribution struct {
	PFContributionID int64      `json:"pfContributionId"`
	EmpID            string     `json:"empId"`
	Month            int        `json:"month"`
	Year             int        `json:"year"`
	BasicSalary      float64    `json:"basicSalary"`
	Amount           float64    `json:"amount"`
	IsProcessed      bool       `json:"isProcessed"`
	PaymentDate      *time.Time `json:"paymentDate,omitempty"`
}

type TaxDeduction struct {
	TaxDeductionID      int64   `json:"taxDeductionId"`
	EmpID               string  `json:"empId"`
	Month               int     `json:"month"`
	Year                int     `json:"year"`
	MonthlyTaxDeduction float64 `json:"monthlyTaxDeduction"`
	ProfessionalTax     float64 `json:"professionalTax"`
	TDSDeduction        float64 `json:"tdsDeduction"`
	OtherDeductions     float64 `json:"otherDeductions"`
	DeductionRemarks    string  `json:"deductionRemarks,omitempty"`
	IsProcessed         bool    `json:"isProcessed"`
}

// Payslip is the assembled monthly view rendered to PDF.
type Payslip struct {
	EmpID       string
	Name        string
	Email       string
	Month       int
	Year        int
	MonthlyWage float64
	Allowances  float64
	Gross       float64
	PFAmount    float64
	TaxTotal    float64
	Deductions  float64
	Net         float64
}
