package response

import (
	"errors"
	"net/http"

	"github.com/staffhold/hr-backoffice-go/internal/domain/employee"
	"github.com/staffhold/hr-backoffice-go/internal/domain/event"
	"github.com/staffhold/hr-backoffice-go/internal/domain/office"
	"github.com/staffhold/hr-backoffice-go/internal/domain/payroll"
	"github.com/staffhold/hr-backoffice-go/internal/domain/scope"
	"github.com/staffhold/hr-backoffice-go/internal/domain/summary"
	"github.com/staffhold/hr-backoffice-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Everything unmapped is a
// 500 with a generic message; internals never leak to the client.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, scope.ErrAccessDenied):
		Forbidden(w, "Access denied for this tenant")

	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, summary.ErrSummaryNotFound):
		NotFound(w, "Daily summary not found")
	case errors.Is(err, payroll.ErrSalaryRecordNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, event.ErrEventNotFound):
		NotFound(w, "Attendance event not found")
	case errors.Is(err, office.ErrOfficeNotFound):
		NotFound(w, "Office not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
