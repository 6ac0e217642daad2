package scheduling

import "time"

// GenerateSlots derives the bookable grid for one doctor on one calendar
// day. The doctor's working window for that weekday is partitioned into
// consecutive slots of slotDuration; a trailing window shorter than a full
// slot is dropped. A slot is unavailable when it overlaps an existing
// appointment that still blocks its time.
//
// A day without configured hours yields an empty result, which is distinct
// from a fully booked day (every slot present, none available).
func GenerateSlots(doctor Doctor, date time.Time, slotDuration time.Duration, existing []Appointment) ([]TimeSlot, error) {
	if slotDuration <= 0 {
		return nil, &ValidationError{Field: "slot_duration", Reason: "must be positive"}
	}

	day := date.UTC()
	window, ok := doctor.Availability.RangeFor(day.Weekday())
	if !ok {
		return nil, nil
	}

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	cursor := midnight.Add(window.Start.Duration())
	end := midnight.Add(window.End.Duration())

	var slots []TimeSlot
	for !cursor.Add(slotDuration).After(end) {
		slots = append(slots, TimeSlot{
			Start:     cursor,
			End:       cursor.Add(slotDuration),
			Available: len(FindConflicts(cursor, slotDuration, existing)) == 0,
			DoctorID:  doctor.ID,
		})
		cursor = cursor.Add(slotDuration)
	}

	return slots, nil
}
