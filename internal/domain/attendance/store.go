package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"dayflow/internal/domain/employee"
)

var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("no open check-in today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// CheckIn opens today's attendance row and flips the status tracker to
// in_office. One row per employee per date is enforced by the store.
func (s *Store) CheckIn(ctx context.Context, empID string, now time.Time) (*Record, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var rec Record
	err = tx.QueryRow(ctx, `
    INSERT INTO attendance (emp_id, attendance_date, check_in_time, status)
    VALUES ($1, $2, $3, $4)
    RETURNING attendance_id, emp_id, attendance_date, check_in_time, work_hours, extra_hours, status, is_paid
  `, empID, now, now, StatusPresent).Scan(
		&rec.AttendanceID, &rec.EmpID, &rec.Date, &rec.CheckInTime, &rec.WorkHours, &rec.ExtraHours, &rec.Status, &rec.IsPaid,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
    UPDATE employee_status_tracker
    SET current_status = $1, status_indicator = $2, last_check_in = $3, updated_at = now()
    WHERE emp_id = $4
  `, employee.StatusInOffice, employee.IndicatorGreen, now, empID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &rec, nil
}

// CheckOut closes today's open attendance row, computing work and extra hours
// against the employee's working schedule, and resets the status tracker.
func (s *Store) CheckOut(ctx context.Context, empID string, now time.Time) (*Record, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var rec Record
	err = tx.QueryRow(ctx, `
    SELECT attendance_id, emp_id, attendance_date, check_in_time, check_out_time, work_hours, extra_hours, status, is_paid
    FROM attendance
    WHERE emp_id = $1 AND attendance_date = $2
  `, empID, now).Scan(
		&rec.AttendanceID, &rec.EmpID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime,
		&rec.WorkHours, &rec.ExtraHours, &rec.Status, &rec.IsPaid,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotCheckedIn
	}
	if err != nil {
		return nil, err
	}
	if rec.CheckInTime == nil {
		return nil, ErrNotCheckedIn
	}
	if rec.CheckOutTime != nil {
		return nil, ErrAlreadyCheckedOut
	}

	breakHours, scheduledHours := 1.0, 8.0
	err = tx.QueryRow(ctx, `
    SELECT break_time_hours, total_working_hours
    FROM schedules
    WHERE emp_id = $1 AND effective_from <= $2 AND (effective_to IS NULL OR effective_to >= $2)
    ORDER BY effective_from DESC
    LIMIT 1
  `, empID, now).Scan(&breakHours, &scheduledHours)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	work, extra, err := SplitWorkHours(*rec.CheckInTime, now, breakHours, scheduledHours)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
    UPDATE attendance
    SET check_out_time = $1, work_hours = $2, extra_hours = $3, updated_at = now()
    WHERE attendance_id = $4
  `, now, work, extra, rec.AttendanceID); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
    UPDATE employee_status_tracker
    SET current_status = $1, status_indicator = $2, last_check_out = $3, updated_at = now()
    WHERE emp_id = $4
  `, employee.StatusAbsent, employee.IndicatorYellow, now, empID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	rec.CheckOutTime = &now
	rec.WorkHours = work
	rec.ExtraHours = extra
	return &rec, nil
}

func (s *Store) ListForEmployee(ctx context.Context, empID string, limit, offset int) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT attendance_id, emp_id, attendance_date, check_in_time, check_out_time,
           work_hours, extra_hours, status, is_paid, COALESCE(remarks, '')
    FROM attendance
    WHERE emp_id = $1
    ORDER BY attendance_date DESC
    LIMIT $2 OFFSET $3
  `, empID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.AttendanceID, &rec.EmpID, &rec.Date, &rec.CheckInTime, &rec.CheckOutTime,
			&rec.WorkHours, &rec.ExtraHours, &rec.Status, &rec.IsPaid, &rec.Remarks,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
