package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dayflow/internal/domain/auth"
)

// maxIDAttempts bounds the generate-then-insert retry loop. Two concurrent
// registrations sharing a prefix can race to the same serial; the employees
// primary key rejects the loser and we regenerate from the fresh maximum.
const maxIDAttempts = 3

type Service struct {
	store     StoreAPI
	mailer    Mailer
	emailFrom string
}

func NewService(store StoreAPI, mailer Mailer, emailFrom string) *Service {
	return &Service{store: store, mailer: mailer, emailFrom: emailFrom}
}

// RegisterEmployee onboards a new hire: allocates the employee ID, issues a
// temporary credential and persists the employee plus its schedule, time-off
// balance and status tracker in one transaction. Returns the stored employee
// and the one-time plaintext password.
func (s *Service) RegisterEmployee(ctx context.Context, actor auth.Identity, input RegisterInput) (*Employee, string, error) {
	// The transport layer gates this already; re-check so the service is
	// safe to call from other entry points.
	if !auth.Privileged(actor.Role) {
		return nil, "", ErrForbidden
	}

	input.CompanyCode = strings.ToUpper(strings.TrimSpace(input.CompanyCode))
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Role == "" {
		input.Role = auth.RoleEmployee
	}
	if !auth.ValidRole(input.Role) {
		return nil, "", fmt.Errorf("unknown role %q", input.Role)
	}

	tempPassword, err := auth.GenerateTempPassword()
	if err != nil {
		return nil, "", fmt.Errorf("issue temporary credential: %w", err)
	}
	hash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return nil, "", fmt.Errorf("hash temporary credential: %w", err)
	}

	now := time.Now()
	prefix := BuildIDPrefix(input.CompanyCode, input.FirstName, input.LastName, now.Year())

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		lastID, err := s.store.LastEmployeeIDForPrefix(ctx, prefix)
		if err != nil {
			return nil, "", fmt.Errorf("read last employee id: %w", err)
		}
		empID, err := NextEmployeeID(prefix, lastID)
		if err != nil {
			return nil, "", err
		}

		bundle := buildOnboardingBundle(empID, hash, input, now)
		err = s.store.CreateOnboarding(ctx, bundle)
		if errors.Is(err, ErrDuplicateID) {
			continue
		}
		if err != nil {
			return nil, "", err
		}

		s.sendWelcome(ctx, bundle.Employee, tempPassword)
		created := bundle.Employee
		return &created, tempPassword, nil
	}

	return nil, "", ErrContention
}

func buildOnboardingBundle(empID, passwordHash string, input RegisterInput, now time.Time) OnboardingBundle {
	return OnboardingBundle{
		Employee: Employee{
			EmpID:         empID,
			CompanyCode:   input.CompanyCode,
			FirstName:     input.FirstName,
			LastName:      input.LastName,
			Email:         input.Email,
			Phone:         input.Phone,
			PasswordHash:  passwordHash,
			Role:          input.Role,
			Department:    input.Department,
			ManagerID:     input.ManagerID,
			Location:      input.Location,
			DateOfJoining: input.DateOfJoining,
			IsActive:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		Schedule: WorkingSchedule{
			EmpID:               empID,
			TotalWorkingHours:   DefaultWorkingHours,
			BreakTimeHours:      DefaultBreakHours,
			WorkingDaysPerMonth: DefaultWorkingDays,
			EffectiveFrom:       input.DateOfJoining,
		},
		Balance: TimeOffBalance{
			EmpID:            empID,
			Year:             now.Year(),
			PaidTimeOffTotal: DefaultPaidTimeOff,
			SickLeaveTotal:   DefaultSickLeaveDays,
		},
		Tracker: StatusTracker{
			EmpID:           empID,
			CurrentStatus:   StatusAbsent,
			StatusIndicator: IndicatorYellow,
		},
	}
}

func (s *Service) sendWelcome(ctx context.Context, emp Employee, tempPassword string) {
	if s.mailer == nil {
		return
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nYour Dayflow account is ready.\nEmployee ID: %s\nTemporary password: %s\n\nPlease sign in and change your password.",
		emp.FirstName, emp.EmpID, tempPassword,
	)
	if err := s.mailer.Send(ctx, s.emailFrom, emp.Email, "Welcome to Dayflow", body); err != nil {
		slog.Warn("welcome email failed", "empId", emp.EmpID, "err", err)
	}
}
