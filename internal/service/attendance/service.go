package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/staffhold/hr-backoffice-go/internal/domain/employee"
	"github.com/staffhold/hr-backoffice-go/internal/domain/event"
	"github.com/staffhold/hr-backoffice-go/internal/domain/office"
	"github.com/staffhold/hr-backoffice-go/internal/domain/scope"
	"github.com/staffhold/hr-backoffice-go/internal/domain/summary"
)

type AttendanceServiceImpl struct {
	summaryRepo  summary.Repository
	eventRepo    event.Repository
	employeeRepo employee.Repository
	officeRepo   office.Repository
	loc          *time.Location
}

func NewAttendanceService(
	summaryRepo summary.Repository,
	eventRepo event.Repository,
	employeeRepo employee.Repository,
	officeRepo office.Repository,
) summary.Service {
	return &AttendanceServiceImpl{
		summaryRepo:  summaryRepo,
		eventRepo:    eventRepo,
		employeeRepo: employeeRepo,
		officeRepo:   officeRepo,
		loc:          time.Local,
	}
}

// RecomputeDay implements summary.Service.
//
// The day window is the civil calendar day of ref in the service's
// location. Recomputing replaces every derived field but carries the
// stored correction delta forward, so manual adjustments survive late
// events and replays.
func (s *AttendanceServiceImpl) RecomputeDay(ctx context.Context, employeeID string, ref time.Time) error {
	local := ref.In(s.loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Millisecond)

	events, err := s.eventRepo.ListByEmployeeAndRange(ctx, employeeID, dayStart, dayEnd)
	if err != nil {
		return fmt.Errorf("failed to load events for day: %w", err)
	}
	if len(events) == 0 {
		// No events means no summary row. Absence is the lack of a row,
		// not a row with zeros.
		return nil
	}

	derived := deriveDay(events)

	var officeLabel *string
	if derived.FirstInOfficeID != nil {
		off, err := s.officeRepo.GetByID(ctx, *derived.FirstInOfficeID)
		switch {
		case err == nil:
			officeLabel = &off.Label
		case errors.Is(err, office.ErrOfficeNotFound):
			// Stale office reference on the event; leave the label empty.
		default:
			return fmt.Errorf("failed to resolve office label: %w", err)
		}
	}

	correction := 0
	prior, err := s.summaryRepo.GetByEmployeeAndDate(ctx, employeeID, dayStart)
	if err != nil {
		return fmt.Errorf("failed to load existing summary: %w", err)
	}
	if prior != nil {
		correction = prior.CorrectionMinutes
	}

	total := derived.DerivedMinutes + correction
	if total < 0 {
		total = 0
	}

	_, err = s.summaryRepo.Upsert(ctx, summary.DailySummary{
		EmployeeID:   employeeID,
		TenantID:     events[0].TenantID,
		Date:         dayStart,
		FirstEntry:   derived.FirstEntry,
		LastExit:     derived.LastExit,
		Status:       derived.Status,
		TotalMinutes: total,
		OfficeLabel:  officeLabel,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert daily summary: %w", err)
	}

	return nil
}

// ApplyCorrection implements summary.Service.
func (s *AttendanceServiceImpl) ApplyCorrection(ctx context.Context, caller scope.Caller, req summary.CorrectionRequest) (summary.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return summary.SummaryResponse{}, err
	}

	sc, err := scope.Resolve(caller, nil)
	if err != nil {
		return summary.SummaryResponse{}, err
	}

	sum, err := s.summaryRepo.GetByID(ctx, req.SummaryID)
	if err != nil {
		return summary.SummaryResponse{}, err
	}
	if !sc.Allows(sum.TenantID) {
		return summary.SummaryResponse{}, scope.ErrAccessDenied
	}

	correction := sum.CorrectionMinutes + req.DeltaMinutes
	total := sum.TotalMinutes + req.DeltaMinutes
	if total < 0 {
		total = 0
	}

	if err := s.summaryRepo.UpdateCorrection(ctx, sum.ID, correction, total, caller.UserID, req.Note); err != nil {
		return summary.SummaryResponse{}, fmt.Errorf("failed to save correction: %w", err)
	}

	sum.CorrectionMinutes = correction
	sum.TotalMinutes = total
	sum.CorrectedBy = &caller.UserID
	sum.CorrectionNote = req.Note

	return toSummaryResponse(sum), nil
}

// ListForDate implements summary.Service.
func (s *AttendanceServiceImpl) ListForDate(ctx context.Context, caller scope.Caller, req summary.ListForDateRequest) ([]summary.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sc, err := scope.Resolve(caller, req.TenantID)
	if err != nil {
		return nil, err
	}

	date, _ := time.ParseInLocation("2006-01-02", req.Date, s.loc)

	summaries, err := s.summaryRepo.ListByDate(ctx, date, sc.TenantID())
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}

	return toSummaryResponses(summaries), nil
}

// ListForEmployeeMonth implements summary.Service.
func (s *AttendanceServiceImpl) ListForEmployeeMonth(ctx context.Context, caller scope.Caller, req summary.ListForEmployeeMonthRequest) ([]summary.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sc, err := scope.Resolve(caller, nil)
	if err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !sc.Allows(emp.TenantID) {
		return nil, scope.ErrAccessDenied
	}

	from := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, s.loc)
	to := from.AddDate(0, 1, 0).Add(-time.Millisecond)

	summaries, err := s.summaryRepo.ListByEmployeeAndRange(ctx, emp.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}

	return toSummaryResponses(summaries), nil
}

func toSummaryResponse(sum summary.DailySummary) summary.SummaryResponse {
	resp := summary.SummaryResponse{
		ID:                sum.ID,
		EmployeeID:        sum.EmployeeID,
		EmployeeName:      sum.EmployeeName,
		TenantID:          sum.TenantID,
		Date:              sum.Date.Format("2006-01-02"),
		Status:            string(sum.Status),
		TotalMinutes:      sum.TotalMinutes,
		CorrectionMinutes: sum.CorrectionMinutes,
		CorrectedBy:       sum.CorrectedBy,
		CorrectionNote:    sum.CorrectionNote,
		OfficeLabel:       sum.OfficeLabel,
	}
	if sum.FirstEntry != nil {
		v := sum.FirstEntry.Format(time.RFC3339)
		resp.FirstEntry = &v
	}
	if sum.LastExit != nil {
		v := sum.LastExit.Format(time.RFC3339)
		resp.LastExit = &v
	}
	return resp
}

func toSummaryResponses(summaries []summary.DailySummary) []summary.SummaryResponse {
	out := make([]summary.SummaryResponse, 0, len(summaries))
	for _, sum := range summaries {
		out = append(out, toSummaryResponse(sum))
	}
	return out
}
