package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"dayflow/internal/domain/auth"
	"dayflow/internal/domain/employee"
	"dayflow/internal/platform/config"
)

// Seed bootstraps the first admin account so a fresh deployment can sign in
// and register everyone else. It is a no-op when any employee already exists
// or when the seed credentials are not configured.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		slog.Info("seed skipped, no admin credentials configured")
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&count); err != nil {
		return fmt.Errorf("count employees: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	now := time.Now()
	store := employee.NewStore(pool)
	prefix := employee.BuildIDPrefix(cfg.SeedCompanyCode, "System", "Admin", now.Year())
	empID, err := employee.NextEmployeeID(prefix, "")
	if err != nil {
		return fmt.Errorf("seed employee id: %w", err)
	}

	bundle := employee.OnboardingBundle{
		Employee: employee.Employee{
			EmpID:         empID,
			CompanyCode:   cfg.SeedCompanyCode,
			FirstName:     "System",
			LastName:      "Admin",
			Email:         cfg.SeedAdminEmail,
			PasswordHash:  hash,
			Role:          auth.RoleAdmin,
			DateOfJoining: now,
			IsActive:      true,
		},
		Schedule: employee.WorkingSchedule{
			EmpID:               empID,
			TotalWorkingHours:   employee.DefaultWorkingHours,
			BreakTimeHours:      employee.DefaultBreakHours,
			WorkingDaysPerMonth: employee.DefaultWorkingDays,
			EffectiveFrom:       now,
		},
		Balance: employee.TimeOffBalance{
			EmpID:            empID,
			Year:             now.Year(),
			PaidTimeOffTotal: employee.DefaultPaidTimeOff,
			SickLeaveTotal:   employee.DefaultSickLeaveDays,
		},
		Tracker: employee.StatusTracker{
			EmpID:           empID,
			CurrentStatus:   employee.StatusAbsent,
			StatusIndicator: employee.IndicatorYellow,
		},
	}

	if err := store.CreateOnboarding(ctx, bundle); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	slog.Info("seeded admin account", "empId", empID, "email", cfg.SeedAdminEmail)
	return nil
}
