package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/staffhold/hr-backoffice-go/internal/domain/device"
	"github.com/staffhold/hr-backoffice-go/internal/domain/employee"
	"github.com/staffhold/hr-backoffice-go/internal/domain/event"
	"github.com/staffhold/hr-backoffice-go/internal/domain/scope"
	"github.com/staffhold/hr-backoffice-go/internal/domain/summary"
	"github.com/staffhold/hr-backoffice-go/internal/pkg/clock"
	"github.com/staffhold/hr-backoffice-go/internal/pkg/notify"
)

// EventServiceImpl is the single write path into the attendance event log.
// Both channels converge here: validated manual registrations from the back
// office and translated device payloads.
type EventServiceImpl struct {
	eventRepo    event.Repository
	employeeRepo employee.Repository
	summarySvc   summary.Service
	translator   device.Translator
	notifier     notify.Notifier
	clock        clock.Clock
	loc          *time.Location
}

func NewEventService(
	eventRepo event.Repository,
	employeeRepo employee.Repository,
	summarySvc summary.Service,
	translator device.Translator,
	notifier notify.Notifier,
) event.Service {
	return &EventServiceImpl{
		eventRepo:    eventRepo,
		employeeRepo: employeeRepo,
		summarySvc:   summarySvc,
		translator:   translator,
		notifier:     notifier,
		clock:        clock.System{},
		loc:          time.Local,
	}
}

// RegisterManual implements event.Service.
func (s *EventServiceImpl) RegisterManual(ctx context.Context, caller scope.Caller, req event.RegisterEventRequest) (event.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return event.EventResponse{}, err
	}

	sc, err := scope.Resolve(caller, nil)
	if err != nil {
		return event.EventResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return event.EventResponse{}, err
	}
	if !sc.Allows(emp.TenantID) {
		return event.EventResponse{}, scope.ErrAccessDenied
	}

	created, err := s.eventRepo.Create(ctx, event.AttendanceEvent{
		EmployeeID:  emp.ID,
		TenantID:    emp.TenantID,
		Timestamp:   s.clock.Now(),
		Direction:   event.Direction(req.Direction),
		OfficeID:    req.OfficeID,
		DeviceLabel: req.DeviceLabel,
	})
	if err != nil {
		return event.EventResponse{}, fmt.Errorf("failed to append event: %w", err)
	}

	s.recomputeDay(ctx, created)
	s.notifier.Send(ctx, movementText(emp.FullName, created))

	resp := toEventResponse(created)
	resp.EmployeeName = &emp.FullName
	return resp, nil
}

// RegisterDevice implements event.Service.
//
// This path never returns an error: a payload that cannot be translated is
// logged and dropped so the controller keeps pushing. Severity tracks who
// has to act on the drop.
func (s *EventServiceImpl) RegisterDevice(ctx context.Context, payload []byte) {
	if s.translator == nil {
		slog.DebugContext(ctx, "device ingestion disabled, payload dropped")
		return
	}

	decoded, err := s.translator.Translate(ctx, payload)
	if err != nil {
		switch {
		case errors.Is(err, device.ErrNotAttendanceEvent):
			slog.DebugContext(ctx, "device payload skipped", slog.Any("reason", err))
		case errors.Is(err, device.ErrMalformedPayload),
			errors.Is(err, device.ErrMissingBadge):
			slog.WarnContext(ctx, "device payload dropped", slog.Any("reason", err))
		case errors.Is(err, device.ErrUnmappedDevice),
			errors.Is(err, device.ErrUnknownBadge):
			slog.WarnContext(ctx, "device payload unresolvable", slog.Any("reason", err))
		default:
			slog.ErrorContext(ctx, "device payload translation failed", slog.Any("error", err))
		}
		return
	}

	created, err := s.eventRepo.Create(ctx, event.AttendanceEvent{
		EmployeeID:  decoded.EmployeeID,
		TenantID:    decoded.TenantID,
		Timestamp:   decoded.Timestamp,
		Direction:   decoded.Direction,
		OfficeID:    decoded.OfficeID,
		DeviceLabel: &decoded.DeviceLabel,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to append device event", slog.Any("error", err))
		return
	}

	s.recomputeDay(ctx, created)
	s.notifier.Send(ctx, movementText(decoded.EmployeeName, created))
}

// ListForDate implements event.Service.
func (s *EventServiceImpl) ListForDate(ctx context.Context, caller scope.Caller, req event.ListEventsRequest) ([]event.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sc, err := scope.Resolve(caller, req.TenantID)
	if err != nil {
		return nil, err
	}

	dayStart, _ := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Millisecond)

	events, err := s.eventRepo.ListForDay(ctx, dayStart, dayEnd, sc.TenantID())
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	out := make([]event.EventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, toEventResponse(ev))
	}
	return out, nil
}

// recomputeDay refreshes the daily summary after an append. A derivation
// failure does not undo the append; the summary catches up on the next
// event for that day.
func (s *EventServiceImpl) recomputeDay(ctx context.Context, ev event.AttendanceEvent) {
	if err := s.summarySvc.RecomputeDay(ctx, ev.EmployeeID, ev.Timestamp); err != nil {
		slog.ErrorContext(ctx, "daily summary recompute failed",
			slog.String("employee_id", ev.EmployeeID),
			slog.Time("timestamp", ev.Timestamp),
			slog.Any("error", err),
		)
	}
}

func movementText(name string, ev event.AttendanceEvent) string {
	verb := "entered"
	if ev.Direction == event.DirectionOut {
		verb = "left"
	}
	where := ""
	if ev.DeviceLabel != nil {
		where = " via " + *ev.DeviceLabel
	}
	return fmt.Sprintf("%s %s at %s%s", name, verb, ev.Timestamp.Format("2006-01-02 15:04"), where)
}

func toEventResponse(ev event.AttendanceEvent) event.EventResponse {
	return event.EventResponse{
		ID:           ev.ID,
		EmployeeID:   ev.EmployeeID,
		EmployeeName: ev.EmployeeName,
		TenantID:     ev.TenantID,
		Timestamp:    ev.Timestamp.Format(time.RFC3339),
		Direction:    string(ev.Direction),
		OfficeID:     ev.OfficeID,
		DeviceLabel:  ev.DeviceLabel,
	}
}
