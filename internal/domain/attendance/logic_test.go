package attendance

import (
	"testing"
	"time"
)

func TestSplitWorkHours(t *testing.T) {
	checkIn := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	work, extra, err := SplitWorkHours(checkIn, checkIn.Add(9*time.Hour), 1, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if work != 8 || extra != 0 {
		t.Fatalf("expected 8h/0h, got %v/%v", work, extra)
	}

	work, extra, err = SplitWorkHours(checkIn, checkIn.Add(11*time.Hour), 1, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if work != 8 || extra != 2 {
		t.Fatalf("expected 8h/2h, got %v/%v", work, extra)
	}

	work, extra, err = SplitWorkHours(checkIn, checkIn.Add(4*time.Hour+30*time.Minute), 1, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if work != 3.5 || extra != 0 {
		t.Fatalf("expected 3.5h/0h, got %v/%v", work, extra)
	}
}

func TestSplitWorkHoursShorterThanBreak(t *testing.T) {
	checkIn := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	work, extra, err := SplitWorkHours(checkIn, checkIn.Add(30*time.Minute), 1, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if work != 0 || extra != 0 {
		t.Fatalf("expected 0h/0h, got %v/%v", work, extra)
	}
}

func TestSplitWorkHoursInvalidOrder(t *testing.T) {
	checkIn := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	if _, _, err := SplitWorkHours(checkIn, checkIn.Add(-time.Hour), 1, 8); err == nil {
		t.Fatal("expected error for reversed span")
	}
}
