package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSalaryNotFound = errors.New("no active salary structure")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) GetActiveSalary(ctx context.Context, empID string) (*SalaryStructure, error) {
	var salary SalaryStructure
	err := s.DB.QueryRow(ctx, `
    SELECT salary_structure_id, emp_id, monthly_wage, no_of_working_days_in_week,
           standard_allowance, fixed_allowance, effective_from, effective_to, is_active
    FROM employee_salary_structure
    WHERE emp_id = $1 AND is_active
    ORDER BY effective_from DESC
    LIMIT 1
  `, empID).Scan(
		&salary.SalaryStructureID, &salary.EmpID, &salary.MonthlyWage, &salary.WorkingDaysInWeek,
		&salary.StandardAllowance, &salary.FixedAllowance, &salary.EffectiveFrom, &salary.EffectiveTo, &salary.IsActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSalaryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &salary, nil
}

// CreateSalary retires the previous active structure and installs the new one
// in a single transaction.
func (s *Store) CreateSalary(ctx context.Context, salary SalaryStructure) (*SalaryStructure, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    UPDATE employee_salary_structure
    SET is_active = false, effective_to = $1, updated_at = now()
    WHERE emp_id = $2 AND is_active
  `, salary.EffectiveFrom, salary.EmpID); err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
    INSERT INTO employee_salary_structure (emp_id, monthly_wage, no_of_working_days_in_week,
      standard_allowance, fixed_allowance, effective_from, is_active)
    VALUES ($1,$2,$3,$4,$5,$6,true)
    RETURNING salary_structure_id, is_active
  `, salary.EmpID, salary.MonthlyWage, salary.WorkingDaysInWeek,
		salary.StandardAllowance, salary.FixedAllowance, salary.EffectiveFrom,
	).Scan(&salary.SalaryStructureID, &salary.IsActive)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &salary, nil
}

// ProcessPF creates one provident fund contribution per employee with an
// active salary structure for the given month; already-processed employees
// are left untouched.
func (s *Store) ProcessPF(ctx context.Context, month, year int, paymentDate time.Time) (int, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT emp_id, monthly_wage
    FROM employee_salary_structure
    WHERE is_active
  `)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	type wage struct {
		empID string
		basic float64
	}
	var wages []wage
	for rows.Next() {
		var w wage
		if err := rows.Scan(&w.empID, &w.basic); err != nil {
			return 0, err
		}
		wages = append(wages, w)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	processed := 0
	for _, w := range wages {
		cmd, err := s.DB.Exec(ctx, `
      INSERT INTO employee_pf_contribution (emp_id, month, year, basic_salary, amount, is_processed, payment_date)
      VALUES ($1,$2,$3,$4,$5,true,$6)
      ON CONFLICT (emp_id, month, year) DO NOTHING
    `, w.empID, month, year, w.basic, PFAmount(w.basic), paymentDate)
		if err != nil {
			return processed, err
		}
		processed += int(cmd.RowsAffected())
	}
	return processed, nil
}

func (s *Store) GetPF(ctx context.Context, empID string, month, year int) (*PFContribution, error) {
	var pf PFContribution
	err := s.DB.QueryRow(ctx, `
    SELECT pf_contribution_id, emp_id, month, year, basic_salary, amount, is_processed, payment_date
    FROM employee_pf_contribution
    WHERE emp_id = $1 AND month = $2 AND year = $3
  `, empID, month, year).Scan(
		&pf.PFContributionID, &pf.EmpID, &pf.Month, &pf.Year, &pf.BasicSalary, &pf.Amount, &pf.IsProcessed, &pf.PaymentDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pf, nil
}

func (s *Store) ListPF(ctx context.Context, empID string, limit, offset int) ([]PFContribution, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT pf_contribution_id, emp_id, month, year, basic_salary, amount, is_processed, payment_date
    FROM employee_pf_contribution
    WHERE emp_id = $1
    ORDER BY year DESC, month DESC
    LIMIT $2 OFFSET $3
  `, empID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PFContribution
	for rows.Next() {
		var pf PFContribution
		if err := rows.Scan(&pf.PFContributionID, &pf.EmpID, &pf.Month, &pf.Year, &pf.BasicSalary, &pf.Amount, &pf.IsProcessed, &pf.PaymentDate); err != nil {
			return nil, err
		}
		out = append(out, pf)
	}
	return out, rows.Err()
}

func (s *Store) UpsertTax(ctx context.Context, tax TaxDeduction) (*TaxDeduction, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employee_tax_deductions (emp_id, month, year, monthly_tax_deduction, professional_tax,
      tds_deduction, other_deductions, deduction_remarks)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    ON CONFLICT (emp_id, month, year) DO UPDATE SET
      monthly_tax_deduction = EXCLUDED.monthly_tax_deduction,
      professional_tax = EXCLUDED.professional_tax,
      tds_deduction = EXCLUDED.tds_deduction,
      other_deductions = EXCLUDED.other_deductions,
      deduction_remarks = EXCLUDED.deduction_remarks,
      updated_at = now()
    RETURNING tax_deduction_id, is_processed
  `, tax.EmpID, tax.Month, tax.Year, tax.MonthlyTaxDeduction, tax.ProfessionalTax,
		tax.TDSDeduction, tax.OtherDeductions, tax.DeductionRemarks,
	).Scan(&tax.TaxDeductionID, &tax.IsProcessed)
	if err != nil {
		return nil, err
	}
	return &tax, nil
}

func (s *Store) GetTax(ctx context.Context, empID string, month, year int) (*TaxDeduction, error) {
	var tax TaxDeduction
	err := s.DB.QueryRow(ctx, `
    SELECT tax_deduction_id, emp_id, month, year, monthly_tax_deduction, professional_tax,
           tds_deduction, other_deductions, COALESCE(deduction_remarks, ''), is_processed
    FROM employee_tax_deductions
    WHERE emp_id = $1 AND month = $2 AND year = $3
  `, empID, month, year).Scan(
		&tax.TaxDeductionID, &tax.EmpID, &tax.Month, &tax.Year, &tax.MonthlyTaxDeduction,
		&tax.ProfessionalTax, &tax.TDSDeduction, &tax.OtherDeductions, &tax.DeductionRemarks, &tax.IsProcessed,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tax, nil
}

// GetPayslip assembles the monthly payslip for an employee.
func (s *Store) GetPayslip(ctx context.Context, empID string, month, year int) (*Payslip, error) {
	salary, err := s.GetActiveSalary(ctx, empID)
	if err != nil {
		return nil, err
	}
	pf, err := s.GetPF(ctx, empID, month, year)
	if err != nil {
		return nil, err
	}
	tax, err := s.GetTax(ctx, empID, month, year)
	if err != nil {
		return nil, err
	}

	slip := BuildPayslip(*salary, pf, tax, month, year)

	var firstName, lastName string
	if err := s.DB.QueryRow(ctx,
		"SELECT first_name, last_name, email FROM employees WHERE emp_id = $1",
		empID).Scan(&firstName, &lastName, &slip.Email); err != nil {
		return nil, err
	}
	slip.Name = firstName + " " + lastName
	return &slip, nil
}
