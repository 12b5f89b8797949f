package employee

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"dayflow/internal/domain/auth"
)

type fakeStore struct {
	employees map[string]Employee
	schedules map[string]WorkingSchedule
	balances  map[string]TimeOffBalance
	trackers  map[string]StatusTracker

	failEmployeeInsert error
	failAfterEmployee  error
	duplicateIDOnce    bool
	onboardCalls       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees: map[string]Employee{},
		schedules: map[string]WorkingSchedule{},
		balances:  map[string]TimeOffBalance{},
		trackers:  map[string]StatusTracker{},
	}
}

func (f *fakeStore) LastEmployeeIDForPrefix(ctx context.Context, prefix string) (string, error) {
	last := ""
	for id := range f.employees {
		if len(id) >= len(prefix) && id[:len(prefix)] == prefix && id > last {
			last = id
		}
	}
	return last, nil
}

func (f *fakeStore) CreateOnboarding(ctx context.Context, bundle OnboardingBundle) error {
	f.onboardCalls++
	if f.duplicateIDOnce {
		f.duplicateIDOnce = false
		return ErrDuplicateID
	}
	if f.failEmployeeInsert != nil {
		return f.failEmployeeInsert
	}
	for _, emp := range f.employees {
		if emp.Email == bundle.Employee.Email {
			return ErrDuplicateEmail
		}
	}
	if _, exists := f.employees[bundle.Employee.EmpID]; exists {
		return ErrDuplicateID
	}
	// All-or-nothing: a failure after the employee insert must leave no rows.
	if f.failAfterEmployee != nil {
		return f.failAfterEmployee
	}
	f.employees[bundle.Employee.EmpID] = bundle.Employee
	f.schedules[bundle.Employee.EmpID] = bundle.Schedule
	f.balances[bundle.Employee.EmpID] = bundle.Balance
	f.trackers[bundle.Employee.EmpID] = bundle.Tracker
	return nil
}

func (f *fakeStore) GetEmployee(ctx context.Context, empID string) (*Employee, error) {
	emp, ok := f.employees[empID]
	if !ok {
		return nil, ErrNotFound
	}
	return &emp, nil
}

func (f *fakeStore) ListActive(ctx context.Context) ([]Employee, error) {
	var out []Employee
	for _, emp := range f.employees {
		if emp.IsActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateEmployee(ctx context.Context, empID string, input UpdateInput) error {
	if _, ok := f.employees[empID]; !ok {
		return ErrNotFound
	}
	return nil
}

func (f *fakeStore) Deactivate(ctx context.Context, empID string) error {
	emp, ok := f.employees[empID]
	if !ok {
		return ErrNotFound
	}
	emp.IsActive = false
	f.employees[empID] = emp
	return nil
}

func (f *fakeStore) ActiveRole(ctx context.Context, empID string) (string, error) {
	emp, ok := f.employees[empID]
	if !ok || !emp.IsActive {
		return "", ErrNotFound
	}
	return emp.Role, nil
}

func registerInput(email string) RegisterInput {
	return RegisterInput{
		CompanyCode:   "AB",
		FirstName:     "John",
		LastName:      "Doe",
		Email:         email,
		Phone:         "555-0100",
		Role:          auth.RoleEmployee,
		DateOfJoining: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

var hrActor = auth.Identity{EmployeeID: "ABHRHR20240001", Role: auth.RoleHR}

func TestRegisterEmployeeCreatesBundle(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil, "no-reply@test.local")

	emp, tempPassword, err := svc.RegisterEmployee(context.Background(), hrActor, registerInput("john@example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantID := fmt.Sprintf("ABJODO%d0001", time.Now().Year())
	if emp.EmpID != wantID {
		t.Fatalf("expected %s, got %s", wantID, emp.EmpID)
	}
	if tempPassword == "" {
		t.Fatal("expected a one-time password")
	}
	if emp.PasswordHash == "" || emp.PasswordHash == tempPassword {
		t.Fatal("stored credential must be a hash, never the plaintext")
	}
	if err := auth.CheckPassword(emp.PasswordHash, tempPassword); err != nil {
		t.Fatalf("temp password must verify against stored hash: %v", err)
	}

	schedule := store.schedules[emp.EmpID]
	if schedule.TotalWorkingHours != DefaultWorkingHours || schedule.BreakTimeHours != DefaultBreakHours || schedule.WorkingDaysPerMonth != DefaultWorkingDays {
		t.Fatalf("unexpected default schedule: %+v", schedule)
	}
	if !schedule.EffectiveFrom.Equal(emp.DateOfJoining) {
		t.Fatalf("schedule must be effective from join date, got %v", schedule.EffectiveFrom)
	}

	balance := store.balances[emp.EmpID]
	if balance.Year != time.Now().Year() || balance.PaidTimeOffTotal != DefaultPaidTimeOff || balance.SickLeaveTotal != DefaultSickLeaveDays {
		t.Fatalf("unexpected default balance: %+v", balance)
	}
	if balance.PaidTimeOffUsed != 0 || balance.SickLeaveUsed != 0 {
		t.Fatalf("fresh balance must be fully available: %+v", balance)
	}

	tracker := store.trackers[emp.EmpID]
	if tracker.CurrentStatus != StatusAbsent || tracker.StatusIndicator != IndicatorYellow {
		t.Fatalf("unexpected initial tracker: %+v", tracker)
	}
}

func TestRegisterEmployeeSerialIncrements(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil, "no-reply@test.local")

	first, _, err := svc.RegisterEmployee(context.Background(), hrActor, registerInput("john.1@example.com"))
	if err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	second, _, err := svc.RegisterEmployee(context.Background(), hrActor, registerInput("john.2@example.com"))
	if err != nil {
		t.Fatalf("second registration failed: %v", err)
	}

	year := time.Now().Year()
	if first.EmpID != fmt.Sprintf("ABJODO%d0001", year) || second.EmpID != fmt.Sprintf("ABJODO%d0002", year) {
		t.Fatalf("expected sequential serials, got %s then %s", first.EmpID, second.EmpID)
	}
}

func TestRegisterEmployeeDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil, "no-reply@test.local")

	if _, _, err := svc.RegisterEmployee(context.Background(), hrActor, registerInput("dup@example.com")); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	_, _, err := svc.RegisterEmployee(context.Background(), hrActor, registerInput("dup@example.com"))
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if len(store.employees) != 1 {
		t.Fatalf("expected exactly one persisted employee, got %d", len(store.employees))
	}
}

func TestRegisterEmployeeAtomicOnFailure(t *testing.T) {
	store := newFakeStore()
	store.failAfterEmployee = errors.New("disk full")
	svc := NewService(store, nil, "no-reply@test.local")

	_, _, err := svc.RegisterEmployee(context.Background(), hrActor, registerInput("john@example.com"))
	if err == nil {
		t.Fatal("expected persistence failure")
	}
	if len(store.employees)+len(store.schedules)+len(store.balances)+len(store.trackers) != 0 {
		t.Fatal("partial onboarding rows must not survive a failed transaction")
	}
}

func TestRegisterEmployeeRetriesOnIDCollision(t *testing.T) {
	store := newFakeStore()
	store.duplicateIDOnce = true
	svc := NewService(store, nil, "no-reply@test.local")

	emp, _, err := svc.RegisterEmployee(context.Background(), hrActor, registerInput("race@example.com"))
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if store.onboardCalls != 2 {
		t.Fatalf("expected 2 insert attempts, got %d", store.onboardCalls)
	}
	if emp == nil || emp.EmpID == "" {
		t.Fatal("expected a persisted employee after retry")
	}
}

func TestRegisterEmployeeContentionExhausted(t *testing.T) {
	store := newFakeStore()
	store.failEmployeeInsert = ErrDuplicateID
	svc := NewService(store, nil, "no-reply@test.local")

	_, _, err := svc.RegisterEmployee(context.Background(), hrActor, registerInput("race@example.com"))
	if !errors.Is(err, ErrContention) {
		t.Fatalf("expected ErrContention, got %v", err)
	}
	if store.onboardCalls != maxIDAttempts {
		t.Fatalf("expected %d attempts, got %d", maxIDAttempts, store.onboardCalls)
	}
}

func TestRegisterEmployeeForbiddenActor(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil, "no-reply@test.local")

	actor := auth.Identity{EmployeeID: "ABJODO20240001", Role: auth.RoleEmployee}
	_, _, err := svc.RegisterEmployee(context.Background(), actor, registerInput("john@example.com"))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if store.onboardCalls != 0 {
		t.Fatal("no writes may happen for a forbidden actor")
	}
}

func TestRegisterEmployeeCapacityExhausted(t *testing.T) {
	store := newFakeStore()
	year := time.Now().Year()
	maxed := fmt.Sprintf("ABJODO%d9999", year)
	store.employees[maxed] = Employee{EmpID: maxed, Email: "max@example.com", IsActive: true}
	svc := NewService(store, nil, "no-reply@test.local")

	_, _, err := svc.RegisterEmployee(context.Background(), hrActor, registerInput("overflow@example.com"))
	if !errors.Is(err, ErrIDCapacity) {
		t.Fatalf("expected ErrIDCapacity, got %v", err)
	}
}
