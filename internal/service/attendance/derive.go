package attendance

import (
	"math"
	"time"

	"github.com/staffhold/hr-backoffice-go/internal/domain/event"
	"github.com/staffhold/hr-backoffice-go/internal/domain/summary"
)

// derivedDay holds the machine-derived portion of a daily summary.
// Correction fields are layered on top by the caller.
type derivedDay struct {
	FirstEntry      *time.Time
	LastExit        *time.Time
	FirstInOfficeID *string
	DerivedMinutes  int
	Status          summary.Status
}

// deriveDay reduces one employee's events for a single civil day into
// first entry, last exit, worked minutes, and status. Events must be
// sorted by timestamp ascending.
func deriveDay(events []event.AttendanceEvent) derivedDay {
	var out derivedDay
	if len(events) == 0 {
		return out
	}

	var hasIn, hasOut bool
	for i := range events {
		ev := events[i]
		switch ev.Direction {
		case event.DirectionIn:
			if !hasIn {
				ts := ev.Timestamp
				out.FirstEntry = &ts
				out.FirstInOfficeID = ev.OfficeID
				hasIn = true
			}
		case event.DirectionOut:
			ts := ev.Timestamp
			out.LastExit = &ts
			hasOut = true
		}
	}

	if hasIn && hasOut && out.LastExit.After(*out.FirstEntry) {
		out.DerivedMinutes = int(math.Round(out.LastExit.Sub(*out.FirstEntry).Minutes()))
	}

	switch {
	case hasOut && !hasIn:
		out.Status = summary.StatusLeft
	case hasOut && events[len(events)-1].Direction == event.DirectionOut:
		out.Status = summary.StatusLeft
	default:
		out.Status = summary.StatusPresent
	}

	return out
}
