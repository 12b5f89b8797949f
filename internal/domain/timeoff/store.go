package timeoff

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dayflow/internal/domain/employee"
)

var (
	ErrRequestNotFound     = errors.New("time off request not found")
	ErrBalanceNotFound     = errors.New("time off balance not found")
	ErrAlreadyDecided      = errors.New("time off request already decided")
	ErrInsufficientBalance = errors.New("insufficient time off balance")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) GetBalance(ctx context.Context, empID string, year int) (*Balance, error) {
	var balance Balance
	err := s.DB.QueryRow(ctx, `
    SELECT emp_id, year, paid_time_off_total, paid_time_off_used, sick_leave_total, sick_leave_used
    FROM time_off_balance
    WHERE emp_id = $1 AND year = $2
  `, empID, year).Scan(
		&balance.EmpID, &balance.Year,
		&balance.PaidTimeOffTotal, &balance.PaidTimeOffUsed,
		&balance.SickLeaveTotal, &balance.SickLeaveUsed,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBalanceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// CreateRequest validates the remaining balance for the start year and files
// a pending request.
func (s *Store) CreateRequest(ctx context.Context, empID, timeOffType, reason string, start, end time.Time) (*Request, error) {
	days, err := CalculateDays(start, end)
	if err != nil {
		return nil, err
	}

	balance, err := s.GetBalance(ctx, empID, start.Year())
	if err != nil && !errors.Is(err, ErrBalanceNotFound) {
		return nil, err
	}
	if balance != nil {
		if available, limited := Available(*balance, timeOffType); limited && days > available {
			return nil, ErrInsufficientBalance
		}
	} else if timeOffType != TypeUnpaid {
		return nil, ErrBalanceNotFound
	}

	var req Request
	err = s.DB.QueryRow(ctx, `
    INSERT INTO time_off_requests (emp_id, time_off_type, start_date, end_date, total_days, reason, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING request_id, emp_id, time_off_type, start_date, end_date, total_days, COALESCE(reason, ''), status, created_at
  `, empID, timeOffType, start, end, days, reason, StatusPending).Scan(
		&req.RequestID, &req.EmpID, &req.TimeOffType, &req.StartDate, &req.EndDate,
		&req.TotalDays, &req.Reason, &req.Status, &req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Store) ListRequests(ctx context.Context, empID string, limit, offset int) ([]Request, error) {
	return s.list(ctx, `WHERE emp_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, empID, limit, offset)
}

func (s *Store) ListAllRequests(ctx context.Context, limit, offset int) ([]Request, error) {
	return s.list(ctx, `ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (s *Store) list(ctx context.Context, tail string, args ...any) ([]Request, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT request_id, emp_id, time_off_type, start_date, end_date, total_days,
           COALESCE(reason, ''), status, COALESCE(approved_by, ''), approval_date,
           COALESCE(approval_comments, ''), created_at
    FROM time_off_requests `+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(
			&req.RequestID, &req.EmpID, &req.TimeOffType, &req.StartDate, &req.EndDate,
			&req.TotalDays, &req.Reason, &req.Status, &req.ApprovedBy, &req.ApprovalDate,
			&req.ApprovalComments, &req.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// Decide approves or rejects a pending request. Approval deducts the balance
// for limited types and, when the leave covers today, flips the status
// tracker to on_leave. All writes share one transaction.
func (s *Store) Decide(ctx context.Context, requestID int64, approverID, status, comments string) (*Request, error) {
	if status != StatusApproved && status != StatusRejected {
		return nil, errors.New("decision must be approved or rejected")
	}

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var req Request
	err = tx.QueryRow(ctx, `
    SELECT request_id, emp_id, time_off_type, start_date, end_date, total_days, COALESCE(reason, ''), status, created_at
    FROM time_off_requests
    WHERE request_id = $1
    FOR UPDATE
  `, requestID).Scan(
		&req.RequestID, &req.EmpID, &req.TimeOffType, &req.StartDate, &req.EndDate,
		&req.TotalDays, &req.Reason, &req.Status, &req.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPending {
		return nil, ErrAlreadyDecided
	}

	now := time.Now()
	if _, err := tx.Exec(ctx, `
    UPDATE time_off_requests
    SET status = $1, approved_by = $2, approval_date = $3, approval_comments = $4, updated_at = now()
    WHERE request_id = $5
  `, status, approverID, now, comments, requestID); err != nil {
		return nil, err
	}

	if status == StatusApproved {
		if err := s.applyApproval(ctx, tx, &req, now); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	req.Status = status
	req.ApprovedBy = approverID
	req.ApprovalDate = &now
	req.ApprovalComments = comments
	return &req, nil
}

func (s *Store) applyApproval(ctx context.Context, tx pgx.Tx, req *Request, now time.Time) error {
	column := ""
	switch req.TimeOffType {
	case TypePaidTimeOff:
		column = "paid_time_off_used"
	case TypeSickLeave:
		column = "sick_leave_used"
	}
	if column != "" {
		cmd, err := tx.Exec(ctx, `
      UPDATE time_off_balance
      SET `+column+` = `+column+` + $1, updated_at = now()
      WHERE emp_id = $2 AND year = $3
    `, req.TotalDays, req.EmpID, req.StartDate.Year())
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return ErrBalanceNotFound
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !req.StartDate.After(today) && !req.EndDate.Before(today) {
		if _, err := tx.Exec(ctx, `
      UPDATE employee_status_tracker
      SET current_status = $1, status_indicator = $2, updated_at = now()
      WHERE emp_id = $3
    `, employee.StatusOnLeave, employee.IndicatorAirplane, req.EmpID); err != nil {
			return err
		}
	}
	return nil
}
