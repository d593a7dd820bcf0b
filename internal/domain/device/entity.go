package device

import (
	"context"
	"time"

	"github.com/staffhold/hr-backoffice-go/internal/domain/event"
)

// Mapping is one configured access-control device: its source IP, the office
// it guards, and the direction a swipe on it means. The list is static
// configuration loaded at process start.
type Mapping struct {
	IP          string
	OfficeLabel string
	Direction   event.Direction
}

// DecodedEvent is the normalized outcome of translating one device payload.
type DecodedEvent struct {
	EmployeeID   string
	EmployeeName string
	TenantID     string
	Timestamp    time.Time
	Direction    event.Direction
	OfficeID     *string
	DeviceLabel  string
}

// Translator turns an opaque device payload into a normalized attendance
// event. It is the only place that knows the device wire format; every
// failure is a typed drop, never a guess.
type Translator interface {
	Translate(ctx context.Context, payload []byte) (DecodedEvent, error)
}
