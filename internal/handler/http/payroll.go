package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/staffhold/hr-backoffice-go/internal/domain/payroll"
	"github.com/staffhold/hr-backoffice-go/internal/domain/scope"
	"github.com/staffhold/hr-backoffice-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	UpdateLine(w http.ResponseWriter, r *http.Request)
	ListForPeriod(w http.ResponseWriter, r *http.Request)
	ListForEmployeeYear(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// Calculate implements PayrollHandler.
func (h *payrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculateMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	caller, err := scope.CallerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	count, err := h.payrollService.CalculateMonth(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll calculated", map[string]int{"processed": count})
}

// UpdateLine implements PayrollHandler.
func (h *payrollHandlerImpl) UpdateLine(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	caller, err := scope.CallerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	result, err := h.payrollService.UpdateLine(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary record updated", result)
}

// ListForPeriod implements PayrollHandler.
func (h *payrollHandlerImpl) ListForPeriod(w http.ResponseWriter, r *http.Request) {
	caller, err := scope.CallerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	req := payroll.ListForPeriodRequest{Month: month, Year: year}
	if tenantID := r.URL.Query().Get("tenant_id"); tenantID != "" {
		req.TenantID = &tenantID
	}

	result, err := h.payrollService.ListForPeriod(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListForEmployeeYear implements PayrollHandler.
func (h *payrollHandlerImpl) ListForEmployeeYear(w http.ResponseWriter, r *http.Request) {
	caller, err := scope.CallerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	result, err := h.payrollService.ListForEmployeeYear(r.Context(), caller, chi.URLParam(r, "id"), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
