package employee

import (
	"errors"
	"testing"
)

func TestBuildIDPrefix(t *testing.T) {
	cases := []struct {
		name        string
		companyCode string
		firstName   string
		lastName    string
		year        int
		want        string
	}{
		{"standard", "AB", "John", "Doe", 2024, "ABJODO2024"},
		{"lowercase input", "ab", "john", "doe", 2024, "ABJODO2024"},
		{"short first name padded", "AB", "J", "Doe", 2024, "ABJXDO2024"},
		{"short last name padded", "AB", "John", "D", 2024, "ABJODX2024"},
		{"whitespace trimmed", "AB", " John ", " Doe ", 2024, "ABJODO2024"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildIDPrefix(tc.companyCode, tc.firstName, tc.lastName, tc.year)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNextEmployeeID(t *testing.T) {
	prefix := "ABJODO2024"

	first, err := NextEmployeeID(prefix, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != "ABJODO20240001" {
		t.Fatalf("expected ABJODO20240001, got %s", first)
	}

	second, err := NextEmployeeID(prefix, first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != "ABJODO20240002" {
		t.Fatalf("expected ABJODO20240002, got %s", second)
	}

	jump, err := NextEmployeeID(prefix, "ABJODO20240042")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jump != "ABJODO20240043" {
		t.Fatalf("expected ABJODO20240043, got %s", jump)
	}
}

func TestNextEmployeeIDCapacity(t *testing.T) {
	if _, err := NextEmployeeID("ABJODO2024", "ABJODO20249999"); !errors.Is(err, ErrIDCapacity) {
		t.Fatalf("expected ErrIDCapacity, got %v", err)
	}
}

func TestNextEmployeeIDMalformedLast(t *testing.T) {
	if _, err := NextEmployeeID("ABJODO2024", "XYJODO20240001"); err == nil {
		t.Fatal("expected error for foreign prefix")
	}
	if _, err := NextEmployeeID("ABJODO2024", "ABJODO2024ABCD"); err == nil {
		t.Fatal("expected error for non-numeric serial")
	}
}
