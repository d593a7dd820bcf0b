package summary

import (
	"github.com/staffhold/hr-backoffice-go/internal/pkg/validator"
)

// CorrectionRequest is a manual, signed minute adjustment on one summary.
type CorrectionRequest struct {
	SummaryID    string  `json:"-"`
	DeltaMinutes int     `json:"delta_minutes"`
	Note         *string `json:"note"`
}

func (r *CorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SummaryID) {
		errs = append(errs, validator.ValidationError{
			Field:   "summary_id",
			Message: "summary id is required",
		})
	}

	if r.DeltaMinutes == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "delta_minutes",
			Message: "delta_minutes must be non-zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListForDateRequest struct {
	Date     string
	TenantID *string
}

func (r *ListForDateRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListForEmployeeMonthRequest struct {
	EmployeeID string
	Month      int
	Year       int
}

func (r *ListForEmployeeMonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee id is required",
		})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SummaryResponse struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	EmployeeName      *string `json:"employee_name,omitempty"`
	TenantID          string  `json:"tenant_id"`
	Date              string  `json:"date"`
	FirstEntry        *string `json:"first_entry"`
	LastExit          *string `json:"last_exit"`
	Status            string  `json:"status"`
	TotalMinutes      int     `json:"total_minutes"`
	CorrectionMinutes int     `json:"correction_minutes"`
	CorrectedBy       *string `json:"corrected_by,omitempty"`
	CorrectionNote    *string `json:"correction_note,omitempty"`
	OfficeLabel       *string `json:"office_label,omitempty"`
}
