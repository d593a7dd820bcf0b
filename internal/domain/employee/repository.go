package employee

import "context"

// Repository is the read-only view of the employee directory the engine
// depends on.
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByBadgeID resolves an access-control badge number to an employee.
	GetByBadgeID(ctx context.Context, badgeID string) (Employee, error)

	GetActiveByTenant(ctx context.Context, tenantID string) ([]Employee, error)
}
