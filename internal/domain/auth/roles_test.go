package auth

import "testing"

func TestCanAccessEmployee(t *testing.T) {
	cases := []struct {
		name     string
		identity Identity
		target   string
		want     bool
	}{
		{"self", Identity{EmployeeID: "e1", Role: RoleEmployee}, "e1", true},
		{"other employee", Identity{EmployeeID: "e1", Role: RoleEmployee}, "e2", false},
		{"hr any", Identity{EmployeeID: "e1", Role: RoleHR}, "e2", true},
		{"admin any", Identity{EmployeeID: "e1", Role: RoleAdmin}, "e2", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanAccessEmployee(tc.identity, tc.target); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleEmployee, RoleHR, RoleAdmin} {
		if !ValidRole(role) {
			t.Fatalf("expected %q to be valid", role)
		}
	}
	if ValidRole("superuser") {
		t.Fatal("unexpected valid role")
	}
}
