package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Employee is the slice of the employee directory the engine reads. The
// directory is owned by the CRUD side of the back office; this subsystem
// never writes it. BadgeID is the external access-control badge identifier
// used to resolve device events.
type Employee struct {
	ID         string
	TenantID   string
	FullName   string
	BadgeID    *string
	BaseSalary decimal.Decimal
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
