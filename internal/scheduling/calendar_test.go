package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var weekStart = time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC) // Monday

func TestProjectWeekPixelMath(t *testing.T) {
	a := appt(weekStart.Add(9*time.Hour+30*time.Minute), 60, StatusScheduled)

	days := ProjectWeek([]Appointment{a}, weekStart, 8, 80)
	require.Len(t, days, 1)
	require.Len(t, days[0], 1)

	ev := days[0][0]
	assert.Equal(t, 0, ev.DayIndex)
	assert.InDelta(t, 120, ev.Offset, 1e-9, "09:30 with grid start 08:00 at 80px/h")
	assert.InDelta(t, 80, ev.Height, 1e-9, "60 minutes at 80px/h")
	assert.Equal(t, "blue", ev.ColorTag)
}

func TestProjectWeekDayBucketing(t *testing.T) {
	appointments := []Appointment{
		appt(weekStart.Add(10*time.Hour), 30, StatusScheduled),                   // Monday
		appt(weekStart.AddDate(0, 0, 2).Add(14*time.Hour), 30, StatusConfirmed),  // Wednesday
		appt(weekStart.AddDate(0, 0, 6).Add(11*time.Hour), 30, StatusCompleted),  // Sunday
		appt(weekStart.AddDate(0, 0, 7).Add(10*time.Hour), 30, StatusScheduled),  // next week, dropped
		appt(weekStart.AddDate(0, 0, -1).Add(10*time.Hour), 30, StatusScheduled), // previous week, dropped
	}

	days := ProjectWeek(appointments, weekStart, 8, 80)
	assert.Len(t, days, 3)
	assert.Len(t, days[0], 1)
	assert.Len(t, days[2], 1)
	assert.Len(t, days[6], 1)
	assert.NotContains(t, days, 7)
}

func TestProjectWeekOrdersWithinDay(t *testing.T) {
	appointments := []Appointment{
		appt(weekStart.Add(15*time.Hour), 30, StatusScheduled),
		appt(weekStart.Add(9*time.Hour), 30, StatusScheduled),
		appt(weekStart.Add(12*time.Hour), 30, StatusScheduled),
	}

	days := ProjectWeek(appointments, weekStart, 8, 80)
	require.Len(t, days[0], 3)

	for i := 1; i < len(days[0]); i++ {
		assert.True(t, days[0][i-1].Appointment.StartTime.Before(days[0][i].Appointment.StartTime))
	}
}

func TestProjectWeekDoesNotClip(t *testing.T) {
	early := appt(weekStart.Add(6*time.Hour), 120, StatusScheduled)

	days := ProjectWeek([]Appointment{early}, weekStart, 8, 80)
	require.Len(t, days[0], 1)
	assert.InDelta(t, -160, days[0][0].Offset, 1e-9, "events before the grid start keep a negative offset")
}

func TestProjectWeekEmptyInput(t *testing.T) {
	days := ProjectWeek(nil, weekStart, 8, 80)
	assert.Empty(t, days)
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "blue", StatusColor(StatusScheduled))
	assert.Equal(t, "emerald", StatusColor(StatusConfirmed))
	assert.Equal(t, "emerald", StatusColor(StatusCompleted))
	assert.Equal(t, "rose", StatusColor(StatusCancelled))
	assert.Equal(t, "slate", StatusColor(StatusNoShow))
	assert.Equal(t, "amber", StatusColor(StatusRescheduled))
	assert.Equal(t, "slate", StatusColor(AppointmentStatus("UNKNOWN")))
}
