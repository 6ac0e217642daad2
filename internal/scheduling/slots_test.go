package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mondayMorningDoctor() Doctor {
	return Doctor{
		ID: uuid.New(),
		Availability: WeeklyAvailability{
			Monday: &TimeRange{Start: 9 * 60, End: 12 * 60},
		},
	}
}

func TestGenerateSlotsEmptyDay(t *testing.T) {
	doctor := mondayMorningDoctor()
	tuesday := time.Date(2026, time.September, 8, 0, 0, 0, 0, time.UTC)

	slots, err := GenerateSlots(doctor, tuesday, 30*time.Minute, nil)
	require.NoError(t, err)
	assert.Empty(t, slots, "a day without hours yields no slots, not an error")
}

func TestGenerateSlotsFullMorning(t *testing.T) {
	doctor := mondayMorningDoctor()
	monday := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

	slots, err := GenerateSlots(doctor, monday, 30*time.Minute, nil)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	wantStarts := []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	for i, slot := range slots {
		assert.Equal(t, wantStarts[i], slot.Start.Format("15:04"))
		assert.True(t, slot.Available, "slot %d should be free", i)
		assert.Equal(t, doctor.ID, slot.DoctorID)
		assert.Equal(t, 30*time.Minute, slot.End.Sub(slot.Start))
	}
}

func TestGenerateSlotsMarksOccupied(t *testing.T) {
	doctor := mondayMorningDoctor()
	monday := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	existing := []Appointment{appt(at(10, 0), 30, StatusScheduled)}

	slots, err := GenerateSlots(doctor, monday, 30*time.Minute, existing)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	for _, slot := range slots {
		if slot.Start.Format("15:04") == "10:00" {
			assert.False(t, slot.Available)
		} else {
			assert.True(t, slot.Available, "slot at %s", slot.Start.Format("15:04"))
		}
	}
}

func TestGenerateSlotsCancelledFreesSlot(t *testing.T) {
	doctor := mondayMorningDoctor()
	monday := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	existing := []Appointment{appt(at(10, 0), 30, StatusCancelled)}

	slots, err := GenerateSlots(doctor, monday, 30*time.Minute, existing)
	require.NoError(t, err)
	for _, slot := range slots {
		assert.True(t, slot.Available)
	}
}

func TestGenerateSlotsDropsTrailingPartial(t *testing.T) {
	doctor := Doctor{
		ID: uuid.New(),
		Availability: WeeklyAvailability{
			Monday: &TimeRange{Start: 9 * 60, End: 10*60 + 45},
		},
	}
	monday := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

	slots, err := GenerateSlots(doctor, monday, 30*time.Minute, nil)
	require.NoError(t, err)
	require.Len(t, slots, 3, "the 10:30-10:45 remainder is not a full slot")
	assert.Equal(t, "10:00", slots[2].Start.Format("15:04"))
}

func TestGenerateSlotsInvalidDuration(t *testing.T) {
	doctor := mondayMorningDoctor()
	monday := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

	var vErr *ValidationError
	_, err := GenerateSlots(doctor, monday, 0, nil)
	require.ErrorAs(t, err, &vErr)

	_, err = GenerateSlots(doctor, monday, -15*time.Minute, nil)
	assert.Error(t, err)
}

func TestGenerateSlotsFullyBookedIsNotEmpty(t *testing.T) {
	doctor := mondayMorningDoctor()
	monday := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

	var existing []Appointment
	for h := 9; h < 12; h++ {
		existing = append(existing, appt(at(h, 0), 60, StatusScheduled))
	}

	slots, err := GenerateSlots(doctor, monday, 30*time.Minute, existing)
	require.NoError(t, err)
	require.Len(t, slots, 6, "a fully booked day still lists its slots")
	for _, slot := range slots {
		assert.False(t, slot.Available)
	}
}

// Slots must always be contiguous, equal-length and ascending.
func TestGenerateSlotsGridProperties(t *testing.T) {
	doctor := Doctor{
		ID: uuid.New(),
		Availability: WeeklyAvailability{
			Monday: &TimeRange{Start: 8*60 + 15, End: 17 * 60},
		},
	}
	monday := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

	for _, minutes := range []int{10, 15, 20, 30, 45, 60} {
		d := time.Duration(minutes) * time.Minute
		slots, err := GenerateSlots(doctor, monday, d, nil)
		require.NoError(t, err)
		require.NotEmpty(t, slots)

		for i, slot := range slots {
			assert.Equal(t, d, slot.End.Sub(slot.Start))
			if i > 0 {
				assert.Equal(t, slots[i-1].End, slot.Start, "slots must be contiguous")
			}
		}
	}
}
