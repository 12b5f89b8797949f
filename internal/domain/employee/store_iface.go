package employee

import "context"

// StoreAPI is the persistence surface the onboarding service and the HTTP
// handlers depend on; the pgx-backed Store implements it, tests use fakes.
type StoreAPI interface {
	LastEmployeeIDForPrefix(ctx context.Context, prefix string) (string, error)
	CreateOnboarding(ctx context.Context, bundle OnboardingBundle) error
	GetEmployee(ctx context.Context, empID string) (*Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	UpdateEmployee(ctx context.Context, empID string, input UpdateInput) error
	Deactivate(ctx context.Context, empID string) error
	ActiveRole(ctx context.Context, empID string) (string, error)
}

// Mailer delivers the out-of-band welcome message carrying the temporary
// password. Delivery failures never fail onboarding.
type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}
