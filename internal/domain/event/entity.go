package event

import (
	"time"
)

// Direction is the physical movement an access-control signal represents.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// AttendanceEvent is one raw IN/OUT swipe for one employee at one instant.
// Events are immutable facts: created once, never updated or deleted. The
// tenant id is denormalized from the employee so scoped queries never need a
// join.
type AttendanceEvent struct {
	ID          string
	EmployeeID  string
	TenantID    string
	Timestamp   time.Time
	Direction   Direction
	OfficeID    *string
	DeviceLabel *string
	CreatedAt   time.Time

	// DTO
	EmployeeName *string
}
