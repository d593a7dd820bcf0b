package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/staffhold/hr-backoffice-go/internal/pkg/validator"
)

type CalculateMonthRequest struct {
	Month    int     `json:"month"`
	Year     int     `json:"year"`
	TenantID *string `json:"tenant_id"`
}

func (r *CalculateMonthRequest) Validate() error {
	var errs validator.ValidationErrors

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

type UpdateLineRequest struct {
	ID        string           `json:"-"`
	Bonus     *decimal.Decimal `json:"bonus"`
	Deduction *decimal.Decimal `json:"deduction"`
	Note      *string          `json:"note"`
}

func (r *UpdateLineRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "record id is required",
		})
	}
	if r.Bonus == nil && r.Deduction == nil && r.Note == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one of bonus, deduction or note is required",
		})
	}
	if r.Bonus != nil && r.Bonus.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "bonus",
			Message: "bonus must not be negative",
		})
	}
	if r.Deduction != nil && r.Deduction.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "deduction",
			Message: "deduction must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListForPeriodRequest struct {
	Month    int
	Year     int
	TenantID *string
}

func (r *ListForPeriodRequest) Validate() error {
	var errs validator.ValidationErrors

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

type SalaryRecordResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  *string         `json:"employee_name,omitempty"`
	TenantID      string          `json:"tenant_id"`
	PeriodMonth   int             `json:"period_month"`
	PeriodYear    int             `json:"period_year"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	WorkedDays    int             `json:"worked_days"`
	TotalDays     int             `json:"total_days"`
	WorkedMinutes int             `json:"worked_minutes"`
	Bonus         decimal.Decimal `json:"bonus"`
	Deduction     decimal.Decimal `json:"deduction"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Note          *string         `json:"note,omitempty"`
	CalculatedBy  string          `json:"calculated_by"`
}
