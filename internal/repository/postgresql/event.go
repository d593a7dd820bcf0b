package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/staffhold/hr-backoffice-go/internal/domain/event"
	"github.com/staffhold/hr-backoffice-go/internal/pkg/database"
)

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) event.Repository {
	return &eventRepository{db: db}
}

// Create appends one attendance event. The table has no update or delete
// path; rows only ever accumulate.
func (r *eventRepository) Create(ctx context.Context, ev event.AttendanceEvent) (event.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	ev.CreatedAt = time.Now()

	query := `
		INSERT INTO attendance_events (id, employee_id, tenant_id, timestamp, direction, office_id, device_label, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		ev.ID,
		ev.EmployeeID,
		ev.TenantID,
		ev.Timestamp,
		string(ev.Direction),
		ev.OfficeID,
		ev.DeviceLabel,
		ev.CreatedAt,
	)
	if err != nil {
		return event.AttendanceEvent{}, fmt.Errorf("failed to insert attendance event: %w", err)
	}

	return ev, nil
}

// ListByEmployeeAndRange returns one employee's events inside [from, to],
// timestamp ascending.
func (r *eventRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]event.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, tenant_id, timestamp, direction, office_id, device_label, created_at
		FROM attendance_events
		WHERE employee_id = $1 AND timestamp >= $2 AND timestamp <= $3
		ORDER BY timestamp ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListForDay returns every event inside [from, to], optionally narrowed to
// one tenant, joined with the employee name for display.
func (r *eventRepository) ListForDay(ctx context.Context, from, to time.Time, tenantID *string) ([]event.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ae.id, ae.employee_id, ae.tenant_id, ae.timestamp, ae.direction, ae.office_id, ae.device_label, ae.created_at, e.full_name
		FROM attendance_events ae
		JOIN employees e ON e.id = ae.employee_id
		WHERE ae.timestamp >= $1 AND ae.timestamp <= $2
	`
	args := []interface{}{from, to}

	if tenantID != nil {
		query += ` AND ae.tenant_id = $3`
		args = append(args, *tenantID)
	}
	query += ` ORDER BY ae.timestamp ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance events: %w", err)
	}
	defer rows.Close()

	events := []event.AttendanceEvent{}
	for rows.Next() {
		var ev event.AttendanceEvent
		var direction string
		if err := rows.Scan(
			&ev.ID, &ev.EmployeeID, &ev.TenantID, &ev.Timestamp,
			&direction, &ev.OfficeID, &ev.DeviceLabel, &ev.CreatedAt,
			&ev.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		ev.Direction = event.Direction(direction)
		events = append(events, ev)
	}

	return events, rows.Err()
}

func scanEvents(rows pgx.Rows) ([]event.AttendanceEvent, error) {
	events := []event.AttendanceEvent{}
	for rows.Next() {
		var ev event.AttendanceEvent
		var direction string
		if err := rows.Scan(
			&ev.ID, &ev.EmployeeID, &ev.TenantID, &ev.Timestamp,
			&direction, &ev.OfficeID, &ev.DeviceLabel, &ev.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		ev.Direction = event.Direction(direction)
		events = append(events, ev)
	}

	return events, rows.Err()
}
