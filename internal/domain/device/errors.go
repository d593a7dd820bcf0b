package device

import "errors"

// Translation drop reasons. None of these ever reach the device channel as
// an HTTP error; the ingestion side logs and answers 200 regardless.
var (
	ErrMalformedPayload   = errors.New("device payload has no parsable event object")
	ErrNotAttendanceEvent = errors.New("device event is not an attendance signal")
	ErrMissingBadge       = errors.New("device event carries no badge number")
	ErrUnmappedDevice     = errors.New("device ip is not in the configured mapping")
	ErrUnknownBadge       = errors.New("badge number does not match any employee")
)
