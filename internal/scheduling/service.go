package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	redisclient "github.com/medicore/clinic-scheduling/internal/redis"
)

const defaultBookingRetries = 3

// ServiceConfig carries the scheduling policies the service needs beyond
// its collaborators.
type ServiceConfig struct {
	// BookingRetries bounds how often a booking retries when the doctor
	// lock is contended. Defaults to 3.
	BookingRetries int
	// DefaultSlotMinutes is used when a slot listing does not name a
	// duration.
	DefaultSlotMinutes int
	// DayStartHour and PixelsPerHour parameterize the weekly calendar
	// grid.
	DayStartHour  int
	PixelsPerHour float64
	// Now is the clock; overridable for deterministic tests. Defaults to
	// time.Now.
	Now func() time.Time
}

// Service is the scheduling facade: it runs the conflict checker, slot
// generator, lifecycle rules and calendar projector against the storage
// collaborator. It holds no state of its own beyond its dependencies.
type Service struct {
	repo   Repository
	locker redisclient.Locker
	log    *zap.Logger
	cfg    ServiceConfig
}

func NewService(repo Repository, locker redisclient.Locker, log *zap.Logger, cfg ServiceConfig) *Service {
	if cfg.BookingRetries <= 0 {
		cfg.BookingRetries = defaultBookingRetries
	}
	if cfg.DefaultSlotMinutes <= 0 {
		cfg.DefaultSlotMinutes = 30
	}
	if cfg.PixelsPerHour <= 0 {
		cfg.PixelsPerHour = 80
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		repo:   repo,
		locker: locker,
		log:    log,
		cfg:    cfg,
	}
}

type BookingRequest struct {
	DoctorID        uuid.UUID
	PatientID       uuid.UUID
	StartTime       time.Time
	DurationMinutes int
	Type            AppointmentType
	Reason          string
	Notes           *string
	Location        *string
}

func (r BookingRequest) validate() error {
	switch {
	case r.DoctorID == uuid.Nil:
		return &ValidationError{Field: "doctor_id", Reason: "required"}
	case r.PatientID == uuid.Nil:
		return &ValidationError{Field: "patient_id", Reason: "required"}
	case r.StartTime.IsZero():
		return &ValidationError{Field: "start_time", Reason: "required"}
	case r.DurationMinutes <= 0:
		return &ValidationError{Field: "duration_minutes", Reason: "must be positive"}
	case r.Reason == "":
		return &ValidationError{Field: "reason", Reason: "required"}
	}
	return nil
}

// BookAppointment reserves a time window with a doctor. The conflict check
// runs against a fresh read inside the per-doctor lock; lock contention is
// retried up to the configured bound.
func (s *Service) BookAppointment(ctx context.Context, req BookingRequest) (*Appointment, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	doctor, err := s.repo.GetDoctorByID(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load doctor: %w", err)
	}

	if _, err := s.repo.GetPatientByID(ctx, req.PatientID); err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load patient: %w", err)
	}

	if err := checkWithinAvailability(*doctor, req.StartTime, time.Duration(req.DurationMinutes)*time.Minute); err != nil {
		return nil, err
	}

	created, err := s.bookLocked(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.Info("appointment booked",
		zap.Stringer("appointment_id", created.ID),
		zap.Stringer("doctor_id", created.DoctorID),
		zap.Stringer("patient_id", created.PatientID),
		zap.Time("start_time", created.StartTime),
	)
	return created, nil
}

// withDoctorLock runs fn inside the per-doctor lock, retrying contended
// acquisitions up to the configured bound.
func (s *Service) withDoctorLock(ctx context.Context, doctorID uuid.UUID, fn func(ctx context.Context) error) error {
	for attempt := 0; attempt < s.cfg.BookingRetries; attempt++ {
		err := s.locker.WithDoctorLock(ctx, doctorID, fn)
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			continue
		}
		return err
	}
	return ErrScheduleContended
}

// insertChecked runs the conflict check against a fresh read and inserts
// the appointment. It must be called while the doctor lock is held.
// excludeIDs are removed from the conflict set (used by reschedule to
// ignore the appointment being retired).
func (s *Service) insertChecked(ctx context.Context, req BookingRequest, excludeIDs []uuid.UUID) (*Appointment, error) {
	duration := time.Duration(req.DurationMinutes) * time.Minute

	existing, err := s.repo.ListDoctorAppointments(ctx, req.DoctorID, conflictWindow(req.StartTime, duration))
	if err != nil {
		return nil, fmt.Errorf("list doctor appointments: %w", err)
	}
	existing = without(existing, excludeIDs)

	if conflicts := FindConflicts(req.StartTime, duration, existing); len(conflicts) > 0 {
		return nil, &SlotConflictError{
			DoctorID:  req.DoctorID,
			Start:     req.StartTime,
			Duration:  duration,
			Conflicts: conflicts,
		}
	}

	appt, err := s.repo.CreateAppointment(ctx, Appointment{
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Type:            req.Type,
		Reason:          req.Reason,
		Notes:           req.Notes,
		Location:        req.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return appt, nil
}

func (s *Service) bookLocked(ctx context.Context, req BookingRequest) (*Appointment, error) {
	var created *Appointment
	err := s.withDoctorLock(ctx, req.DoctorID, func(lockCtx context.Context) error {
		appt, err := s.insertChecked(lockCtx, req, nil)
		if err != nil {
			return err
		}
		created = appt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ChangeStatus moves an appointment along the lifecycle state machine and
// persists the transition with a conditional write.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, to AppointmentStatus) (*Appointment, error) {
	appt, err := s.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	if err := CheckTransition(appt.Status, to); err != nil {
		return nil, err
	}

	if to == StatusCompleted && appt.StartTime.After(s.cfg.Now()) {
		s.log.Warn("appointment completed before its scheduled time",
			zap.Stringer("appointment_id", appt.ID),
			zap.Time("start_time", appt.StartTime),
		)
	}

	updated, err := s.repo.UpdateAppointmentStatus(ctx, id, appt.Status, to)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			// The conditional write lost a race: figure out against what.
			current, loadErr := s.repo.GetAppointmentByID(ctx, id)
			if loadErr != nil {
				return nil, loadErr
			}
			return nil, &IllegalTransitionError{From: current.Status, To: to}
		}
		return nil, fmt.Errorf("update appointment status: %w", err)
	}

	s.log.Info("appointment status changed",
		zap.Stringer("appointment_id", updated.ID),
		zap.String("from", string(appt.Status)),
		zap.String("to", string(to)),
	)
	return updated, nil
}

// RescheduleResult pairs the retired appointment with its replacement.
type RescheduleResult struct {
	Previous    *Appointment
	Replacement *Appointment
}

// Reschedule retires the appointment as RESCHEDULED and books a new
// SCHEDULED one at the requested time, carrying over the booking details.
// The old appointment's window is excluded from the conflict check, so
// moving within or around it is allowed, and its slot is reusable the
// moment the reschedule commits.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, newStart time.Time, newDurationMinutes int) (*RescheduleResult, error) {
	if newStart.IsZero() {
		return nil, &ValidationError{Field: "start_time", Reason: "required"}
	}

	old, err := s.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	if err := CheckTransition(old.Status, StatusRescheduled); err != nil {
		return nil, err
	}

	duration := newDurationMinutes
	if duration == 0 {
		duration = old.DurationMinutes
	}
	if duration < 0 {
		return nil, &ValidationError{Field: "duration_minutes", Reason: "must be positive"}
	}

	doctor, err := s.repo.GetDoctorByID(ctx, old.DoctorID)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load doctor: %w", err)
	}
	if err := checkWithinAvailability(*doctor, newStart, time.Duration(duration)*time.Minute); err != nil {
		return nil, err
	}

	// Insert and retire commit inside the same critical section: the
	// replacement only stays if the old appointment actually moved to
	// RESCHEDULED, so two blocking windows never coexist.
	var result *RescheduleResult
	err = s.withDoctorLock(ctx, old.DoctorID, func(lockCtx context.Context) error {
		replacement, err := s.insertChecked(lockCtx, BookingRequest{
			DoctorID:        old.DoctorID,
			PatientID:       old.PatientID,
			StartTime:       newStart,
			DurationMinutes: duration,
			Type:            old.Type,
			Reason:          old.Reason,
			Notes:           old.Notes,
			Location:        old.Location,
		}, []uuid.UUID{old.ID})
		if err != nil {
			return err
		}

		retired, err := s.repo.UpdateAppointmentStatus(lockCtx, old.ID, old.Status, StatusRescheduled)
		if err != nil {
			if _, cancelErr := s.repo.UpdateAppointmentStatus(lockCtx, replacement.ID, StatusScheduled, StatusCancelled); cancelErr != nil {
				s.log.Error("cancel replacement after failed retire",
					zap.Stringer("replacement_id", replacement.ID),
					zap.Error(cancelErr),
				)
			}
			if errors.Is(err, ErrAppointmentNotFound) {
				// The conditional write lost a race: figure out against what.
				current, loadErr := s.repo.GetAppointmentByID(lockCtx, old.ID)
				if loadErr != nil {
					return loadErr
				}
				return &IllegalTransitionError{From: current.Status, To: StatusRescheduled}
			}
			return fmt.Errorf("retire rescheduled appointment: %w", err)
		}

		result = &RescheduleResult{Previous: retired, Replacement: replacement}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("appointment rescheduled",
		zap.Stringer("old_id", result.Previous.ID),
		zap.Stringer("new_id", result.Replacement.ID),
		zap.Time("new_start", result.Replacement.StartTime),
	)
	return result, nil
}

// AvailableSlotsFor lists the bookable grid for a doctor on a calendar
// day. slotMinutes of 0 falls back to the configured default.
func (s *Service) AvailableSlotsFor(ctx context.Context, doctorID uuid.UUID, date time.Time, slotMinutes int) ([]TimeSlot, error) {
	if slotMinutes == 0 {
		slotMinutes = s.cfg.DefaultSlotMinutes
	}

	doctor, err := s.repo.GetDoctorByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load doctor: %w", err)
	}

	existing, err := s.repo.ListDoctorAppointments(ctx, doctorID, DayRange(date))
	if err != nil {
		return nil, fmt.Errorf("list doctor appointments: %w", err)
	}

	return GenerateSlots(*doctor, date, time.Duration(slotMinutes)*time.Minute, existing)
}

// WeekView loads a week of appointments, optionally filtered to a set of
// doctors, and projects them onto the calendar grid.
func (s *Service) WeekView(ctx context.Context, weekStart time.Time, doctorIDs []uuid.UUID) (map[int][]CalendarEvent, error) {
	appointments, err := s.repo.ListAppointments(ctx, WeekRange(weekStart), doctorIDs)
	if err != nil {
		return nil, fmt.Errorf("list week appointments: %w", err)
	}
	return ProjectWeek(appointments, weekStart, s.cfg.DayStartHour, s.cfg.PixelsPerHour), nil
}

// DoctorAppointments lists a doctor's appointments inside a date range,
// ordered by start time.
func (s *Service) DoctorAppointments(ctx context.Context, doctorID uuid.UUID, r DateRange) ([]Appointment, error) {
	if !r.To.After(r.From) {
		return nil, &ValidationError{Field: "to", Reason: "must be after from"}
	}

	if _, err := s.repo.GetDoctorByID(ctx, doctorID); err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load doctor: %w", err)
	}

	appointments, err := s.repo.ListDoctorAppointments(ctx, doctorID, r)
	if err != nil {
		return nil, fmt.Errorf("list doctor appointments: %w", err)
	}
	return appointments, nil
}

// GetAppointment retrieves one appointment by ID.
func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	appt, err := s.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return appt, nil
}

// checkWithinAvailability rejects times outside the doctor's weekly
// template before any conflict check runs.
func checkWithinAvailability(doctor Doctor, start time.Time, d time.Duration) error {
	day := start.UTC()
	window, ok := doctor.Availability.RangeFor(day.Weekday())
	if !ok {
		return &ValidationError{
			Field:  "start_time",
			Reason: fmt.Sprintf("doctor %s has no working hours on %s", doctor.ID, day.Weekday()),
		}
	}
	minute := MinuteOfDay(day.Hour()*60 + day.Minute())
	if !window.Contains(minute, d) {
		return &ValidationError{
			Field:  "start_time",
			Reason: fmt.Sprintf("doctor %s works %s-%s on %s", doctor.ID, window.Start, window.End, day.Weekday()),
		}
	}
	return nil
}

// conflictWindow pads the candidate's window by a day on each side so
// appointments crossing midnight still enter the conflict set.
func conflictWindow(start time.Time, d time.Duration) DateRange {
	return DateRange{
		From: start.Add(-24 * time.Hour),
		To:   start.Add(d).Add(24 * time.Hour),
	}
}

func without(appointments []Appointment, excludeIDs []uuid.UUID) []Appointment {
	if len(excludeIDs) == 0 {
		return appointments
	}
	filtered := appointments[:0]
	for _, a := range appointments {
		skip := false
		for _, id := range excludeIDs {
			if a.ID == id {
				skip = true
				break
			}
		}
		if !skip {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
