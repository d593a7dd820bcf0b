package payroll

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/staffhold/hr-backoffice-go/internal/domain/scope"
)

// Repository persists monthly salary records. Upsert is keyed on
// (employee, month, year) and leaves bonus/deduction untouched on conflict;
// UpdateLine is the only write path for the manual overlay.
type Repository interface {
	GetByID(ctx context.Context, id string) (SalaryRecord, error)

	// GetByEmployeePeriod returns nil (not an error) when no record exists
	// for the period yet.
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (*SalaryRecord, error)

	// Upsert inserts or refreshes the derived fields of one record.
	Upsert(ctx context.Context, rec SalaryRecord) (SalaryRecord, error)

	// UpdateLine writes the manual overlay plus the recomputed total of one
	// record.
	UpdateLine(ctx context.Context, id string, bonus, deduction, total decimal.Decimal, note *string) error

	// ListByTenantPeriod returns all records of one tenant for one month,
	// or of all tenants when tenantID is nil.
	ListByTenantPeriod(ctx context.Context, tenantID *string, month, year int) ([]SalaryRecord, error)

	// ListByEmployeeYear returns an employee's records across one year,
	// ordered by month.
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]SalaryRecord, error)
}

// Service is the payroll computation engine.
type Service interface {
	// CalculateMonth derives one month of salary records for every active
	// employee of the resolved tenant. Idempotent on the derived portion;
	// preserves previously entered bonus/deduction. Returns the number of
	// employees processed.
	CalculateMonth(ctx context.Context, caller scope.Caller, req CalculateMonthRequest) (int, error)

	// UpdateLine adjusts bonus/deduction/note on a single record and
	// recomputes its total from the stored snapshot.
	UpdateLine(ctx context.Context, caller scope.Caller, req UpdateLineRequest) (SalaryRecordResponse, error)

	ListForPeriod(ctx context.Context, caller scope.Caller, req ListForPeriodRequest) ([]SalaryRecordResponse, error)

	ListForEmployeeYear(ctx context.Context, caller scope.Caller, employeeID string, year int) ([]SalaryRecordResponse, error)
}
