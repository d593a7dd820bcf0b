package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryRecord is one employee's computed pay for one month: a proportional
// attendance-based base plus a manually maintained bonus/deduction overlay.
// Keyed uniquely by (employee, month, year). Re-running the monthly
// calculation refreshes the derived portion and must preserve bonus and
// deduction.
//
// BaseSalary is a snapshot of the employee's configured salary at
// calculation time, so later salary changes do not silently rewrite history.
type SalaryRecord struct {
	ID            string
	EmployeeID    string
	TenantID      string
	PeriodMonth   int
	PeriodYear    int
	BaseSalary    decimal.Decimal
	WorkedDays    int
	TotalDays     int
	WorkedMinutes int
	Bonus         decimal.Decimal
	Deduction     decimal.Decimal
	TotalAmount   decimal.Decimal
	Note          *string
	CalculatedBy  string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO
	EmployeeName *string
}

// BaseAmount recomputes the proportional part of the record from its own
// stored snapshot, without re-querying attendance.
func (r SalaryRecord) BaseAmount() decimal.Decimal {
	if r.TotalDays <= 0 {
		return decimal.Zero
	}
	return r.BaseSalary.
		Mul(decimal.NewFromInt(int64(r.WorkedDays))).
		Div(decimal.NewFromInt(int64(r.TotalDays))).
		Round(2)
}
