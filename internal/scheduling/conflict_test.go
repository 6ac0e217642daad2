package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, time.September, 7, hour, minute, 0, 0, time.UTC) // a Monday
}

func appt(start time.Time, minutes int, status AppointmentStatus) Appointment {
	return Appointment{
		ID:              uuid.New(),
		DoctorID:        uuid.New(),
		PatientID:       uuid.New(),
		StartTime:       start,
		DurationMinutes: minutes,
		Status:          status,
	}
}

func TestOverlaps(t *testing.T) {
	half := 30 * time.Minute

	tests := []struct {
		name string
		s1   time.Time
		d1   time.Duration
		s2   time.Time
		d2   time.Duration
		want bool
	}{
		{"identical", at(10, 0), half, at(10, 0), half, true},
		{"partial overlap", at(10, 15), half, at(10, 0), half, true},
		{"contained", at(10, 0), 2 * time.Hour, at(10, 30), half, true},
		{"touching end to start", at(10, 30), half, at(10, 0), half, false},
		{"touching start to end", at(9, 30), half, at(10, 0), half, false},
		{"disjoint", at(8, 0), half, at(14, 0), half, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.s1, tt.d1, tt.s2, tt.d2))
			assert.Equal(t, tt.want, Overlaps(tt.s2, tt.d2, tt.s1, tt.d1), "overlap must be symmetric")
		})
	}
}

func TestFindConflicts(t *testing.T) {
	existing := []Appointment{
		appt(at(10, 0), 30, StatusScheduled),
		appt(at(11, 0), 30, StatusConfirmed),
		appt(at(10, 0), 30, StatusCancelled),
		appt(at(10, 0), 30, StatusRescheduled),
	}

	// 10:15-10:45 overlaps the 10:00-10:30 scheduled appointment only;
	// cancelled and rescheduled ones no longer block.
	conflicts := FindConflicts(at(10, 15), 30*time.Minute, existing)
	require.Len(t, conflicts, 1)
	assert.Equal(t, existing[0].ID, conflicts[0].ID)

	// Starting exactly where the scheduled one ends is fine.
	assert.Empty(t, FindConflicts(at(10, 30), 30*time.Minute, existing))

	// A window spanning both live appointments reports both.
	conflicts = FindConflicts(at(9, 45), 2*time.Hour, existing)
	assert.Len(t, conflicts, 2)

	assert.Empty(t, FindConflicts(at(10, 15), 30*time.Minute, nil))
}

func TestBlocksSlot(t *testing.T) {
	assert.True(t, BlocksSlot(StatusScheduled))
	assert.True(t, BlocksSlot(StatusConfirmed))
	assert.True(t, BlocksSlot(StatusCompleted))
	assert.True(t, BlocksSlot(StatusNoShow))
	assert.False(t, BlocksSlot(StatusCancelled))
	assert.False(t, BlocksSlot(StatusRescheduled))
}
