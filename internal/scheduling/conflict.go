package scheduling

import "time"

// Overlaps reports whether the half-open intervals [s1, s1+d1) and
// [s2, s2+d2) intersect. Intervals that merely touch at an endpoint do
// not overlap.
func Overlaps(s1 time.Time, d1 time.Duration, s2 time.Time, d2 time.Duration) bool {
	return s1.Before(s2.Add(d2)) && s2.Before(s1.Add(d1))
}

// BlocksSlot reports whether an appointment in the given status still
// occupies its time window. Cancelled and rescheduled appointments free
// their slot for reuse.
func BlocksSlot(status AppointmentStatus) bool {
	return status != StatusCancelled && status != StatusRescheduled
}

// FindConflicts returns the existing appointments whose windows overlap the
// candidate [start, start+d). Appointments that no longer block their slot
// are skipped.
func FindConflicts(start time.Time, d time.Duration, existing []Appointment) []Appointment {
	var conflicts []Appointment
	for _, appt := range existing {
		if !BlocksSlot(appt.Status) {
			continue
		}
		if Overlaps(start, d, appt.StartTime, appt.Duration()) {
			conflicts = append(conflicts, appt)
		}
	}
	return conflicts
}
