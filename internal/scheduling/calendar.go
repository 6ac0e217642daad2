package scheduling

import (
	"sort"
	"time"
)

// statusColors mirrors the palette the UI attaches to each status. The tag
// is an opaque string here; rendering decides what to do with it.
var statusColors = map[AppointmentStatus]string{
	StatusScheduled:   "blue",
	StatusConfirmed:   "emerald",
	StatusCompleted:   "emerald",
	StatusCancelled:   "rose",
	StatusNoShow:      "slate",
	StatusRescheduled: "amber",
}

func StatusColor(s AppointmentStatus) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return "slate"
}

// sameDay compares UTC calendar days, not 24h windows, so bucketing stays
// correct across daylight-saving boundaries.
func sameDay(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// ProjectWeek buckets appointments onto a 7-day grid starting at weekStart.
// Vertical placement: dayStartHour is pixel zero, each hour is
// pixelsPerHour tall. Appointments outside the week are dropped; ones
// before dayStartHour or past the grid bottom are positioned anyway
// (possibly with negative offset or overflow), clipping is a rendering
// concern. Events for different doctors may visually overlap; same-doctor
// overlap is already precluded at booking time.
func ProjectWeek(appointments []Appointment, weekStart time.Time, dayStartHour int, pixelsPerHour float64) map[int][]CalendarEvent {
	events := make(map[int][]CalendarEvent)

	days := make([]time.Time, 7)
	for i := range days {
		days[i] = weekStart.UTC().AddDate(0, 0, i)
	}

	for _, appt := range appointments {
		dayIndex := -1
		for i, d := range days {
			if sameDay(d, appt.StartTime) {
				dayIndex = i
				break
			}
		}
		if dayIndex < 0 {
			continue
		}

		start := appt.StartTime.UTC()
		offset := float64(start.Hour()-dayStartHour)*pixelsPerHour + float64(start.Minute())/60*pixelsPerHour
		height := float64(appt.DurationMinutes) / 60 * pixelsPerHour

		events[dayIndex] = append(events[dayIndex], CalendarEvent{
			Appointment: appt,
			DayIndex:    dayIndex,
			Offset:      offset,
			Height:      height,
			ColorTag:    StatusColor(appt.Status),
		})
	}

	for _, dayEvents := range events {
		sort.Slice(dayEvents, func(i, j int) bool {
			return dayEvents[i].Appointment.StartTime.Before(dayEvents[j].Appointment.StartTime)
		})
	}

	return events
}
