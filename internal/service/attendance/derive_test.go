package attendance

import (
	"testing"
	"time"

	"github.com/staffhold/hr-backoffice-go/internal/domain/event"
	"github.com/staffhold/hr-backoffice-go/internal/domain/summary"
)

func TestDeriveDay(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }
	ev := func(ts time.Time, dir event.Direction) event.AttendanceEvent {
		return event.AttendanceEvent{EmployeeID: "emp-1", TenantID: "tenant-1", Timestamp: ts, Direction: dir}
	}

	tests := []struct {
		name        string
		events      []event.AttendanceEvent
		wantMinutes int
		wantStatus  summary.Status
	}{
		{
			name:        "single pair",
			events:      []event.AttendanceEvent{ev(at(9, 2), event.DirectionIn), ev(at(18, 7), event.DirectionOut)},
			wantMinutes: 545,
			wantStatus:  summary.StatusLeft,
		},
		{
			name: "multiple swipes use first in and last out",
			events: []event.AttendanceEvent{
				ev(at(9, 0), event.DirectionIn),
				ev(at(12, 0), event.DirectionOut),
				ev(at(13, 0), event.DirectionIn),
				ev(at(17, 0), event.DirectionOut),
			},
			wantMinutes: 480,
			wantStatus:  summary.StatusLeft,
		},
		{
			name:        "still inside",
			events:      []event.AttendanceEvent{ev(at(9, 0), event.DirectionIn)},
			wantMinutes: 0,
			wantStatus:  summary.StatusPresent,
		},
		{
			name: "back inside after an exit",
			events: []event.AttendanceEvent{
				ev(at(9, 0), event.DirectionIn),
				ev(at(12, 0), event.DirectionOut),
				ev(at(13, 0), event.DirectionIn),
			},
			wantMinutes: 180,
			wantStatus:  summary.StatusPresent,
		},
		{
			name:        "out without in",
			events:      []event.AttendanceEvent{ev(at(17, 0), event.DirectionOut)},
			wantMinutes: 0,
			wantStatus:  summary.StatusLeft,
		},
		{
			name:        "exit before entry clamps to zero",
			events:      []event.AttendanceEvent{ev(at(7, 0), event.DirectionOut), ev(at(9, 0), event.DirectionIn)},
			wantMinutes: 0,
			wantStatus:  summary.StatusPresent,
		},
		{
			name:        "no events",
			events:      nil,
			wantMinutes: 0,
			wantStatus:  "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := deriveDay(tt.events)
			if got.DerivedMinutes != tt.wantMinutes {
				t.Errorf("DerivedMinutes = %d, want %d", got.DerivedMinutes, tt.wantMinutes)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestDeriveDay_RoundsSeconds(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	events := []event.AttendanceEvent{
		{Timestamp: day.Add(9*time.Hour + 11*time.Second), Direction: event.DirectionIn},
		{Timestamp: day.Add(17*time.Hour + 42*time.Second), Direction: event.DirectionOut},
	}

	got := deriveDay(events)
	if got.DerivedMinutes != 481 {
		t.Errorf("DerivedMinutes = %d, want 481", got.DerivedMinutes)
	}
}
