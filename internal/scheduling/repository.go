package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DateRange is half-open: [From, To).
type DateRange struct {
	From time.Time
	To   time.Time
}

// DayRange returns the UTC calendar day containing t.
func DayRange(t time.Time) DateRange {
	day := t.UTC()
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return DateRange{From: from, To: from.AddDate(0, 0, 1)}
}

// WeekRange returns the 7 days starting at weekStart's UTC calendar day.
func WeekRange(weekStart time.Time) DateRange {
	day := weekStart.UTC()
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return DateRange{From: from, To: from.AddDate(0, 0, 7)}
}

// Repository is the storage collaborator the scheduling service runs
// against. Implementations own persistence, identity assignment and
// timestamps; the service owns every scheduling rule.
type Repository interface {
	GetDoctorByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetPatientByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// ListDoctorAppointments returns the doctor's appointments starting
	// within r, ascending by start time.
	ListDoctorAppointments(ctx context.Context, doctorID uuid.UUID, r DateRange) ([]Appointment, error)

	// ListAppointments returns appointments starting within r, optionally
	// restricted to the given doctors, ascending by start time.
	ListAppointments(ctx context.Context, r DateRange, doctorIDs []uuid.UUID) ([]Appointment, error)

	// CreateAppointment persists a new appointment in status SCHEDULED,
	// assigning its identity and timestamps.
	CreateAppointment(ctx context.Context, a Appointment) (*Appointment, error)

	// UpdateAppointmentStatus is a conditional write: it only succeeds when
	// the stored status still equals from, so a stale transition cannot
	// clobber a concurrent one.
	UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, from, to AppointmentStatus) (*Appointment, error)
}
