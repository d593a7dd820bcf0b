package summary

import (
	"context"
	"time"

	"github.com/staffhold/hr-backoffice-go/internal/domain/scope"
)

// Repository persists daily summaries. Upsert is keyed on (employee, date)
// and must never touch the correction fields; UpdateCorrection is the only
// write path for those.
type Repository interface {
	// GetByID retrieves one summary row.
	GetByID(ctx context.Context, id string) (DailySummary, error)

	// GetByEmployeeAndDate returns nil (not an error) when the employee has
	// no summary for that date.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*DailySummary, error)

	// Upsert inserts or refreshes the derived fields of one summary row.
	// correction_minutes, corrected_by and correction_note are left
	// untouched on conflict.
	Upsert(ctx context.Context, s DailySummary) (DailySummary, error)

	// UpdateCorrection writes only the correction overlay fields plus the
	// recomputed total.
	UpdateCorrection(ctx context.Context, id string, correctionMinutes, totalMinutes int, correctedBy string, note *string) error

	// ListByDate returns all summaries for one calendar date, optionally
	// narrowed to a tenant.
	ListByDate(ctx context.Context, date time.Time, tenantID *string) ([]DailySummary, error)

	// ListByEmployeeAndRange returns an employee's summaries inside
	// [from, to], ordered by date ascending.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]DailySummary, error)

	// MonthlyTotals aggregates worked days and minutes over present/left
	// summaries inside [from, to]. Payroll input.
	MonthlyTotals(ctx context.Context, employeeID string, from, to time.Time) (workedDays int, workedMinutes int, err error)
}

// Service is the daily derivation engine plus the correction overlay and the
// tenant-scoped read surface over summaries.
type Service interface {
	// RecomputeDay rebuilds the summary of the calendar day containing ref
	// from the employee's event log, carrying any stored correction delta.
	// Idempotent; a day without events is a no-op.
	RecomputeDay(ctx context.Context, employeeID string, ref time.Time) error

	// ApplyCorrection layers an audited minute adjustment on top of the
	// derived total. Corrections accumulate and survive recomputation.
	ApplyCorrection(ctx context.Context, caller scope.Caller, req CorrectionRequest) (SummaryResponse, error)

	// ListForDate returns the summaries of one date within the caller's
	// effective tenant scope.
	ListForDate(ctx context.Context, caller scope.Caller, req ListForDateRequest) ([]SummaryResponse, error)

	// ListForEmployeeMonth returns one employee's summaries for a month.
	ListForEmployeeMonth(ctx context.Context, caller scope.Caller, req ListForEmployeeMonthRequest) ([]SummaryResponse, error)
}
