package summary

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLeft    Status = "left"
	StatusAbsent  Status = "absent"
	StatusExcused Status = "excused"
)

// DailySummary is the derived, correction-aware presence record for one
// employee on one calendar day. It is keyed uniquely by (employee, date) and
// only ever written through the derivation engine's upsert, except for the
// narrow correction fields.
//
// Invariant: TotalMinutes = max(0, derivedMinutes + CorrectionMinutes).
// An absent day has no row at all; reporting treats missing rows as absent.
type DailySummary struct {
	ID                string
	EmployeeID        string
	TenantID          string
	Date              time.Time
	FirstEntry        *time.Time
	LastExit          *time.Time
	Status            Status
	TotalMinutes      int
	CorrectionMinutes int
	CorrectedBy       *string
	CorrectionNote    *string
	OfficeLabel       *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO
	EmployeeName *string
}
