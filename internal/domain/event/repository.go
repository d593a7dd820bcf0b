package event

import (
	"context"
	"time"

	"github.com/staffhold/hr-backoffice-go/internal/domain/scope"
)

// Repository is the append-only store for attendance events. There is no
// update or delete: the event log is the durable source of truth the daily
// summaries are derived from.
type Repository interface {
	// Create appends one event and returns it with its generated id.
	Create(ctx context.Context, ev AttendanceEvent) (AttendanceEvent, error)

	// ListByEmployeeAndRange returns all events for one employee inside
	// [from, to], ordered by timestamp ascending. Derivation input.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]AttendanceEvent, error)

	// ListForDay returns every event of one calendar day, optionally
	// narrowed to a tenant. Reporting surface.
	ListForDay(ctx context.Context, from, to time.Time, tenantID *string) ([]AttendanceEvent, error)
}

// Service is the event store gateway: the only write path into the event
// log, from either the back office or the device channel.
type Service interface {
	// RegisterManual validates tenant scope and appends a manually entered
	// event, then synchronously recomputes the employee's day.
	RegisterManual(ctx context.Context, caller scope.Caller, req RegisterEventRequest) (EventResponse, error)

	// RegisterDevice ingests a raw device payload. Undecodable or
	// unresolvable payloads are dropped; the device channel never sees an
	// error.
	RegisterDevice(ctx context.Context, payload []byte)

	// ListForDate returns one calendar day's raw events within the
	// caller's effective tenant scope.
	ListForDate(ctx context.Context, caller scope.Caller, req ListEventsRequest) ([]EventResponse, error)
}
