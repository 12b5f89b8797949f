package auth

const (
	RoleEmployee = "employee"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
)

var allRoles = []string{RoleEmployee, RoleHR, RoleAdmin}

// Identity is the resolved caller of a request: the subject employee ID and
// its role, re-derived from the bearer token on every request.
type Identity struct {
	EmployeeID string
	Role       string
}

func ValidRole(role string) bool {
	for _, candidate := range allRoles {
		if role == candidate {
			return true
		}
	}
	return false
}

// Privileged reports whether the role may act on records other than its own.
func Privileged(role string) bool {
	return role == RoleAdmin || role == RoleHR
}

func HasRole(identity Identity, allowed ...string) bool {
	for _, role := range allowed {
		if identity.Role == role {
			return true
		}
	}
	return false
}

// CanAccessEmployee is the row-level ownership rule: a caller may always
// reach its own employee record, admin and hr may reach any.
func CanAccessEmployee(identity Identity, employeeID string) bool {
	if Privileged(identity.Role) {
		return true
	}
	return identity.EmployeeID == employeeID
}
