package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/staffhold/hr-backoffice-go/internal/domain/event"
	"github.com/staffhold/hr-backoffice-go/internal/domain/scope"
	"github.com/staffhold/hr-backoffice-go/internal/domain/summary"
	"github.com/staffhold/hr-backoffice-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	RegisterEvent(w http.ResponseWriter, r *http.Request)
	ListEventsByDate(w http.ResponseWriter, r *http.Request)
	ListSummariesByDate(w http.ResponseWriter, r *http.Request)
	ListEmployeeMonth(w http.ResponseWriter, r *http.Request)
	ApplyCorrection(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	eventService   event.Service
	summaryService summary.Service
}

func NewAttendanceHandler(eventService event.Service, summaryService summary.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		eventService:   eventService,
		summaryService: summaryService,
	}
}

// RegisterEvent implements AttendanceHandler.
func (h *attendanceHandlerImpl) RegisterEvent(w http.ResponseWriter, r *http.Request) {
	var req event.RegisterEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	caller, err := scope.CallerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	result, err := h.eventService.RegisterManual(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance event registered", result)
}

// ListEventsByDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListEventsByDate(w http.ResponseWriter, r *http.Request) {
	caller, err := scope.CallerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	req := event.ListEventsRequest{Date: r.URL.Query().Get("date")}
	if tenantID := r.URL.Query().Get("tenant_id"); tenantID != "" {
		req.TenantID = &tenantID
	}

	result, err := h.eventService.ListForDate(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListSummariesByDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListSummariesByDate(w http.ResponseWriter, r *http.Request) {
	caller, err := scope.CallerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	req := summary.ListForDateRequest{Date: r.URL.Query().Get("date")}
	if tenantID := r.URL.Query().Get("tenant_id"); tenantID != "" {
		req.TenantID = &tenantID
	}

	result, err := h.summaryService.ListForDate(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListEmployeeMonth implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListEmployeeMonth(w http.ResponseWriter, r *http.Request) {
	caller, err := scope.CallerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	result, err := h.summaryService.ListForEmployeeMonth(r.Context(), caller, summary.ListForEmployeeMonthRequest{
		EmployeeID: chi.URLParam(r, "id"),
		Month:      month,
		Year:       year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ApplyCorrection implements AttendanceHandler.
func (h *attendanceHandlerImpl) ApplyCorrection(w http.ResponseWriter, r *http.Request) {
	var req summary.CorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.SummaryID = chi.URLParam(r, "id")

	caller, err := scope.CallerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Missing or invalid token")
		return
	}

	result, err := h.summaryService.ApplyCorrection(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Correction applied", result)
}
