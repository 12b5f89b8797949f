package timeoff

import (
	"testing"
	"time"
)

func TestCalculateDays(t *testing.T) {
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	days, err := CalculateDays(start, start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 1 {
		t.Fatalf("expected 1 day, got %v", days)
	}

	days, err = CalculateDays(start, start.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 3 {
		t.Fatalf("expected 3 days, got %v", days)
	}
}

func TestCalculateDaysInvalid(t *testing.T) {
	start := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	if _, err := CalculateDays(start, start.AddDate(0, 0, -1)); err == nil {
		t.Fatal("expected error for reversed range")
	}
}

func TestAvailable(t *testing.T) {
	balance := Balance{PaidTimeOffTotal: 12, PaidTimeOffUsed: 4.5, SickLeaveTotal: 7, SickLeaveUsed: 7}

	pto, limited := Available(balance, TypePaidTimeOff)
	if !limited || pto != 7.5 {
		t.Fatalf("expected 7.5 limited, got %v %v", pto, limited)
	}

	sick, limited := Available(balance, TypeSickLeave)
	if !limited || sick != 0 {
		t.Fatalf("expected 0 limited, got %v %v", sick, limited)
	}

	if _, limited := Available(balance, TypeUnpaid); limited {
		t.Fatal("unpaid leave must not be balance-limited")
	}
}
