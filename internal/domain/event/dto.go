package event

import (
	"github.com/staffhold/hr-backoffice-go/internal/pkg/validator"
)

// RegisterEventRequest is a manual IN/OUT registration from the back office.
type RegisterEventRequest struct {
	EmployeeID  string  `json:"employee_id"`
	Direction   string  `json:"direction"`
	OfficeID    *string `json:"office_id"`
	DeviceLabel *string `json:"device_label"`
}

func (r *RegisterEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Direction != string(DirectionIn) && r.Direction != string(DirectionOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "direction",
			Message: "direction must be IN or OUT",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListEventsRequest struct {
	Date     string
	TenantID *string
}

func (r *ListEventsRequest) Validate() error {
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

type EventResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	TenantID     string  `json:"tenant_id"`
	Timestamp    string  `json:"timestamp"`
	Direction    string  `json:"direction"`
	OfficeID     *string `json:"office_id,omitempty"`
	DeviceLabel  *string `json:"device_label,omitempty"`
}
