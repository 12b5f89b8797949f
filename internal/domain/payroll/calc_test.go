package payroll

import "testing"

func TestPFAmount(t *testing.T) {
	if got := PFAmount(50000); got != 6000 {
		t.Fatalf("expected 6000, got %v", got)
	}
	if got := PFAmount(33333); got != 4000 {
		t.Fatalf("expected 4000 (rounded), got %v", got)
	}
}

func TestTaxTotal(t *testing.T) {
	tax := TaxDeduction{MonthlyTaxDeduction: 200, ProfessionalTax: 150, TDSDeduction: 1000, OtherDeductions: 49.5}
	if got := TaxTotal(tax); got != 1399.5 {
		t.Fatalf("expected 1399.5, got %v", got)
	}
}

func TestBuildPayslip(t *testing.T) {
	salary := SalaryStructure{
		EmpID:             "ABJODO20240001",
		MonthlyWage:       50000,
		StandardAllowance: 4167,
		FixedAllowance:    833,
	}
	pf := &PFContribution{BasicSalary: 50000, Amount: 6000}
	tax := &TaxDeduction{MonthlyTaxDeduction: 200}

	slip := BuildPayslip(salary, pf, tax, 3, 2024)
	if slip.Gross != 55000 {
		t.Fatalf("expected gross 55000, got %v", slip.Gross)
	}
	if slip.Deductions != 6200 {
		t.Fatalf("expected deductions 6200, got %v", slip.Deductions)
	}
	if slip.Net != 48800 {
		t.Fatalf("expected net 48800, got %v", slip.Net)
	}
}

func TestBuildPayslipMissingRecords(t *testing.T) {
	salary := SalaryStructure{EmpID: "ABJODO20240001", MonthlyWage: 30000}
	slip := BuildPayslip(salary, nil, nil, 1, 2024)
	if slip.Deductions != 0 || slip.Net != 30000 {
		t.Fatalf("expected zero deductions, got %+v", slip)
	}
}
