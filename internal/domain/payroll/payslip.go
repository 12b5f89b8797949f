package payroll

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// RenderPayslipPDF renders a payslip to PDF bytes.
func RenderPayslipPDF(slip Payslip) ([]byte, error) {
	period := time.Date(slip.Year, time.Month(slip.Month), 1, 0, 0, 0, 0, time.UTC)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", slip.Name, slip.EmpID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", slip.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", period.Format("January 2006")))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Monthly wage: %.2f", slip.MonthlyWage))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Allowances: %.2f", slip.Allowances))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %.2f", slip.Gross))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("PF contribution: %.2f", slip.PFAmount))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Tax deductions: %.2f", slip.TaxTotal))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total deductions: %.2f", slip.Deductions))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net pay: %.2f", slip.Net))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
