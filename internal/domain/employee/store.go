package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    emp_id, company_code, first_name, last_name, email,
    COALESCE(phone, ''), password_hash, role,
    COALESCE(department, ''), COALESCE(manager_id, ''), COALESCE(location, ''),
    date_of_joining, COALESCE(profile_picture, ''), is_active, created_at, updated_at`

func (s *Store) LastEmployeeIDForPrefix(ctx context.Context, prefix string) (string, error) {
	var lastID string
	err := s.DB.QueryRow(ctx, `
    SELECT emp_id
    FROM employees
    WHERE emp_id LIKE $1 || '%'
    ORDER BY emp_id DESC
    LIMIT 1
  `, prefix).Scan(&lastID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return lastID, nil
}

// CreateOnboarding persists the employee and its dependent records as one
// serializable transaction. A crash or conflict mid-sequence leaves zero new
// rows.
func (s *Store) CreateOnboarding(ctx context.Context, bundle OnboardingBundle) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Re-check inside the transaction so a concurrent registration with the
	// same email cannot slip between check and insert.
	var count int
	if err := tx.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE email = $1", bundle.Employee.Email).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateEmail
	}

	emp := bundle.Employee
	if _, err := tx.Exec(ctx, `
    INSERT INTO employees (emp_id, company_code, first_name, last_name, email, phone,
      password_hash, role, department, manager_id, location, date_of_joining, is_active)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
  `,
		emp.EmpID, emp.CompanyCode, emp.FirstName, emp.LastName, emp.Email, emp.Phone,
		emp.PasswordHash, emp.Role, nullIfEmpty(emp.Department), nullIfEmpty(emp.ManagerID),
		nullIfEmpty(emp.Location), emp.DateOfJoining, emp.IsActive,
	); err != nil {
		return mapEmployeeWriteError(err)
	}

	schedule := bundle.Schedule
	if _, err := tx.Exec(ctx, `
    INSERT INTO schedules (emp_id, total_working_hours, break_time_hours, working_days_per_month, effective_from)
    VALUES ($1,$2,$3,$4,$5)
  `, schedule.EmpID, schedule.TotalWorkingHours, schedule.BreakTimeHours, schedule.WorkingDaysPerMonth, schedule.EffectiveFrom); err != nil {
		return err
	}

	balance := bundle.Balance
	if _, err := tx.Exec(ctx, `
    INSERT INTO time_off_balance (emp_id, year, paid_time_off_total, paid_time_off_used, sick_leave_total, sick_leave_used)
    VALUES ($1,$2,$3,$4,$5,$6)
  `, balance.EmpID, balance.Year, balance.PaidTimeOffTotal, balance.PaidTimeOffUsed, balance.SickLeaveTotal, balance.SickLeaveUsed); err != nil {
		return err
	}

	tracker := bundle.Tracker
	if _, err := tx.Exec(ctx, `
    INSERT INTO employee_status_tracker (emp_id, current_status, status_indicator)
    VALUES ($1,$2,$3)
  `, tracker.EmpID, tracker.CurrentStatus, tracker.StatusIndicator); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) GetEmployee(ctx context.Context, empID string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE emp_id = $1`, empID)
	emp, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *Store) GetActiveByEmail(ctx context.Context, email string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE email = $1 AND is_active`, email)
	emp, err := scanEmployee(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *Store) ListActive(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE is_active
    ORDER BY last_name, first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

func (s *Store) UpdateEmployee(ctx context.Context, empID string, input UpdateInput) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $1,
        last_name = $2,
        phone = $3,
        department = $4,
        manager_id = $5,
        location = $6,
        updated_at = now()
    WHERE emp_id = $7
  `, input.FirstName, input.LastName, input.Phone,
		nullIfEmpty(input.Department), nullIfEmpty(input.ManagerID), nullIfEmpty(input.Location), empID)
	if err != nil {
		return mapEmployeeWriteError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate soft-deletes; employees are never hard-deleted.
func (s *Store) Deactivate(ctx context.Context, empID string) error {
	cmd, err := s.DB.Exec(ctx, "UPDATE employees SET is_active = false, updated_at = now() WHERE emp_id = $1", empID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ActiveRole returns the role of an active employee, or ErrNotFound when the
// employee is absent or deactivated. The auth middleware uses it to verify
// that a token subject still exists.
func (s *Store) ActiveRole(ctx context.Context, empID string) (string, error) {
	var role string
	err := s.DB.QueryRow(ctx, "SELECT role FROM employees WHERE emp_id = $1 AND is_active", empID).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

func scanEmployee(row pgx.Row) (*Employee, error) {
	var emp Employee
	if err := row.Scan(
		&emp.EmpID, &emp.CompanyCode, &emp.FirstName, &emp.LastName, &emp.Email,
		&emp.Phone, &emp.PasswordHash, &emp.Role,
		&emp.Department, &emp.ManagerID, &emp.Location,
		&emp.DateOfJoining, &emp.ProfilePicture, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &emp, nil
}

func mapEmployeeWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505":
		if pgErr.ConstraintName == "employees_email_key" {
			return ErrDuplicateEmail
		}
		return ErrDuplicateID
	case "23503":
		if pgErr.ConstraintName == "employees_manager_id_fkey" {
			return ErrManagerNotFound
		}
	}
	return err
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
