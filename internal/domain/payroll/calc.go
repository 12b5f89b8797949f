package payroll

import "math"

// pfRate is the employee provident fund share of the basic salary.
const pfRate = 0.12

func PFAmount(basicSalary float64) float64 {
	return round2(basicSalary * pfRate)
}

func TaxTotal(tax TaxDeduction) float64 {
	return round2(tax.MonthlyTaxDeduction + tax.ProfessionalTax + tax.TDSDeduction + tax.OtherDeductions)
}

// BuildPayslip combines the active salary structure with the month's PF and
// tax records. A missing PF or tax row contributes zero.
func BuildPayslip(salary SalaryStructure, pf *PFContribution, tax *TaxDeduction, month, year int) Payslip {
	slip := Payslip{
		EmpID:       salary.EmpID,
		Month:       month,
		Year:        year,
		MonthlyWage: salary.MonthlyWage,
		Allowances:  round2(salary.StandardAllowance + salary.FixedAllowance),
	}
	slip.Gross = round2(slip.MonthlyWage + slip.Allowances)
	if pf != nil {
		slip.PFAmount = pf.Amount
	}
	if tax != nil {
		slip.TaxTotal = TaxTotal(*tax)
	}
	slip.Deductions = round2(slip.PFAmount + slip.TaxTotal)
	slip.Net = round2(slip.Gross - slip.Deductions)
	return slip
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
