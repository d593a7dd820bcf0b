package device

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/staffhold/hr-backoffice-go/internal/domain/device"
	"github.com/staffhold/hr-backoffice-go/internal/domain/employee"
	"github.com/staffhold/hr-backoffice-go/internal/domain/office"
	"github.com/staffhold/hr-backoffice-go/internal/pkg/clock"
	"github.com/staffhold/hr-backoffice-go/internal/pkg/notify"
)

// Remote door release pings arrive on the same channel as swipes and must
// be ignored.
const (
	majorRemoteOpen = 5
	subRemoteOpen   = 21
)

type TranslatorImpl struct {
	mappings     map[string]device.Mapping
	employeeRepo employee.Repository
	officeRepo   office.Repository
	notifier     notify.Notifier
	clock        clock.Clock
}

func NewTranslator(
	mappings []device.Mapping,
	employeeRepo employee.Repository,
	officeRepo office.Repository,
	notifier notify.Notifier,
) device.Translator {
	byIP := make(map[string]device.Mapping, len(mappings))
	for _, m := range mappings {
		byIP[m.IP] = m
	}
	return &TranslatorImpl{
		mappings:     byIP,
		employeeRepo: employeeRepo,
		officeRepo:   officeRepo,
		notifier:     notifier,
		clock:        clock.System{},
	}
}

// accessPayload mirrors the JSON object an access controller pushes inside
// its multipart notification body.
type accessPayload struct {
	IPAddress             string                 `json:"ipAddress"`
	DateTime              string                 `json:"dateTime"`
	AccessControllerEvent *accessControllerEvent `json:"AccessControllerEvent"`
}

type accessControllerEvent struct {
	MajorEventType   int    `json:"majorEventType"`
	SubEventType     int    `json:"subEventType"`
	EmployeeNoString string `json:"employeeNoString"`
}

// Translate implements device.Translator.
//
// The payload is whatever the controller posted, multipart framing and all.
// Translation is fail closed: anything that cannot be resolved to a known
// employee on a mapped device is rejected with a typed error, never stored
// as a guess.
func (t *TranslatorImpl) Translate(ctx context.Context, payload []byte) (device.DecodedEvent, error) {
	raw, err := extractJSON(payload)
	if err != nil {
		return device.DecodedEvent{}, fmt.Errorf("%w: %v", device.ErrMalformedPayload, err)
	}

	var p accessPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return device.DecodedEvent{}, fmt.Errorf("%w: %v", device.ErrMalformedPayload, err)
	}
	if p.AccessControllerEvent == nil || p.IPAddress == "" {
		return device.DecodedEvent{}, device.ErrMalformedPayload
	}

	ace := p.AccessControllerEvent
	if ace.MajorEventType == majorRemoteOpen && ace.SubEventType == subRemoteOpen {
		return device.DecodedEvent{}, device.ErrNotAttendanceEvent
	}
	if ace.EmployeeNoString == "" {
		return device.DecodedEvent{}, device.ErrMissingBadge
	}

	mapping, ok := t.mappings[p.IPAddress]
	if !ok {
		t.notifier.Send(ctx, fmt.Sprintf(
			"Attendance event from unmapped device %s. Add the device to the device map.",
			p.IPAddress,
		))
		return device.DecodedEvent{}, fmt.Errorf("%w: %s", device.ErrUnmappedDevice, p.IPAddress)
	}

	emp, err := t.employeeRepo.GetByBadgeID(ctx, ace.EmployeeNoString)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			t.notifier.Send(ctx, fmt.Sprintf(
				"Unrecognized badge %s swiped on device %s (%s). Assign the badge to an employee.",
				ace.EmployeeNoString, p.IPAddress, mapping.OfficeLabel,
			))
			return device.DecodedEvent{}, fmt.Errorf("%w: %s", device.ErrUnknownBadge, ace.EmployeeNoString)
		}
		return device.DecodedEvent{}, fmt.Errorf("failed to resolve badge: %w", err)
	}

	ts := t.clock.Now()
	if p.DateTime != "" {
		if parsed, err := time.Parse(time.RFC3339, p.DateTime); err == nil {
			ts = parsed
		}
	}

	var officeID *string
	if off, err := t.officeRepo.GetByTenantAndLabel(ctx, emp.TenantID, mapping.OfficeLabel); err == nil {
		officeID = &off.ID
	}

	label := fmt.Sprintf("%s (%s)", p.IPAddress, mapping.OfficeLabel)

	return device.DecodedEvent{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		TenantID:     emp.TenantID,
		Timestamp:    ts,
		Direction:    mapping.Direction,
		OfficeID:     officeID,
		DeviceLabel:  label,
	}, nil
}

// extractJSON slices the first balanced top-level JSON object out of a raw
// body. Access controllers wrap the event JSON in a multipart envelope whose
// boundary and headers vary by firmware, so the boundary is not trusted;
// brace matching is.
func extractJSON(payload []byte) ([]byte, error) {
	start := -1
	for i, b := range payload {
		if b == '{' {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, errors.New("no json object in body")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(payload); i++ {
		b := payload[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}
		switch b {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return payload[start : i+1], nil
			}
		}
	}

	return nil, errors.New("unterminated json object in body")
}
