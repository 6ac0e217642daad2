package scheduling

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrScheduleContended means the per-doctor booking lock could not be
	// acquired within the configured number of attempts.
	ErrScheduleContended = errors.New("doctor schedule is being modified, please retry")
)

// ValidationError rejects malformed input before any storage access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// SlotConflictError reports a rejected booking: the requested window for
// DoctorID overlaps the listed appointments.
type SlotConflictError struct {
	DoctorID  uuid.UUID
	Start     time.Time
	Duration  time.Duration
	Conflicts []Appointment
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("slot conflict for doctor %s at %s (%s): %d overlapping appointment(s)",
		e.DoctorID, e.Start.Format(time.RFC3339), e.Duration, len(e.Conflicts))
}

// IllegalTransitionError names the current and requested statuses of a
// rejected state machine edge.
type IllegalTransitionError struct {
	From AppointmentStatus
	To   AppointmentStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %s to %s", e.From, e.To)
}
