package scheduling

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "SCHEDULED"
	StatusConfirmed   AppointmentStatus = "CONFIRMED"
	StatusCompleted   AppointmentStatus = "COMPLETED"
	StatusCancelled   AppointmentStatus = "CANCELLED"
	StatusNoShow      AppointmentStatus = "NO_SHOW"
	StatusRescheduled AppointmentStatus = "RESCHEDULED"
)

type AppointmentType string

const (
	TypeConsultation AppointmentType = "CONSULTATION"
	TypeFollowUp     AppointmentType = "FOLLOW_UP"
	TypeCheckup      AppointmentType = "CHECKUP"
	TypeEmergency    AppointmentType = "EMERGENCY"
)

type Patient struct {
	ID        uuid.UUID
	Name      string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Doctor struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Specialty    string
	Availability WeeklyAvailability
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Appointment struct {
	ID              uuid.UUID
	DoctorID        uuid.UUID
	PatientID       uuid.UUID
	StartTime       time.Time
	DurationMinutes int
	Status          AppointmentStatus
	Type            AppointmentType
	Reason          string
	Notes           *string
	Location        *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (a Appointment) Duration() time.Duration {
	return time.Duration(a.DurationMinutes) * time.Minute
}

func (a Appointment) EndTime() time.Time {
	return a.StartTime.Add(a.Duration())
}

// TimeSlot is derived by the slot generator for one doctor and one calendar
// day. It is never persisted.
type TimeSlot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
	DoctorID  uuid.UUID `json:"doctor_id"`
}

// CalendarEvent positions one appointment on a weekly time grid. Offset and
// Height are in pixels, DayIndex is 0..6 relative to the week start.
type CalendarEvent struct {
	Appointment Appointment
	DayIndex    int
	Offset      float64
	Height      float64
	ColorTag    string
}
