package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	redisclient "github.com/medicore/clinic-scheduling/internal/redis"
	"github.com/medicore/clinic-scheduling/internal/scheduling"
)

const dateLayout = "2006-01-02"

func bookAppointmentHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		doctorID, err := uuid.Parse(req.DoctorID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_doctor_id", "doctor_id must be a valid UUID")
			return
		}
		patientID, err := uuid.Parse(req.PatientID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "patient_id must be a valid UUID")
			return
		}
		startTime, err := time.Parse(time.RFC3339, req.StartTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_start_time", "start_time must be RFC 3339")
			return
		}

		appt, err := svc.BookAppointment(r.Context(), scheduling.BookingRequest{
			DoctorID:        doctorID,
			PatientID:       patientID,
			StartTime:       startTime,
			DurationMinutes: req.DurationMinutes,
			Type:            scheduling.AppointmentType(req.Type),
			Reason:          req.Reason,
			Notes:           req.Notes,
			Location:        req.Location,
		})
		if err != nil {
			handleSchedulingError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(*appt))
	}
}

func getAppointmentHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		appt, err := svc.GetAppointment(r.Context(), id)
		if err != nil {
			handleSchedulingError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(*appt))
	}
}

func changeStatusHandler(svc *scheduling.Service, to scheduling.AppointmentStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		appt, err := svc.ChangeStatus(r.Context(), id, to)
		if err != nil {
			handleSchedulingError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(*appt))
	}
}

func rescheduleHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		var req RescheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		startTime, err := time.Parse(time.RFC3339, req.StartTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_start_time", "start_time must be RFC 3339")
			return
		}

		result, err := svc.Reschedule(r.Context(), id, startTime, req.DurationMinutes)
		if err != nil {
			handleSchedulingError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, RescheduleResponse{
			Previous:    toAppointmentResponse(*result.Previous),
			Replacement: toAppointmentResponse(*result.Replacement),
		})
	}
}

func doctorSlotsHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_doctor_id", "id must be a valid UUID")
			return
		}

		date, err := time.Parse(dateLayout, r.URL.Query().Get("date"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
			return
		}

		slotMinutes := 0
		if v := r.URL.Query().Get("duration"); v != "" {
			slotMinutes, err = strconv.Atoi(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_duration", "duration must be an integer number of minutes")
				return
			}
		}

		slots, err := svc.AvailableSlotsFor(r.Context(), doctorID, date, slotMinutes)
		if err != nil {
			handleSchedulingError(w, err)
			return
		}
		if slots == nil {
			slots = []scheduling.TimeSlot{}
		}

		writeJSON(w, http.StatusOK, slots)
	}
}

// doctorAppointmentsHandler lists a doctor's appointments between two
// inclusive calendar days.
func doctorAppointmentsHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_doctor_id", "id must be a valid UUID")
			return
		}

		from, err := time.Parse(dateLayout, r.URL.Query().Get("from"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_from", "from must be YYYY-MM-DD")
			return
		}
		to, err := time.Parse(dateLayout, r.URL.Query().Get("to"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_to", "to must be YYYY-MM-DD")
			return
		}

		appointments, err := svc.DoctorAppointments(r.Context(), doctorID, scheduling.DateRange{
			From: from,
			To:   to.AddDate(0, 0, 1),
		})
		if err != nil {
			handleSchedulingError(w, err)
			return
		}

		out := make([]AppointmentResponse, 0, len(appointments))
		for _, a := range appointments {
			out = append(out, toAppointmentResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func weekViewHandler(svc *scheduling.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weekStart, err := time.Parse(dateLayout, r.URL.Query().Get("start"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_week_start", "start must be YYYY-MM-DD")
			return
		}

		var doctorIDs []uuid.UUID
		if raw := r.URL.Query().Get("doctors"); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				id, err := uuid.Parse(strings.TrimSpace(part))
				if err != nil {
					writeError(w, http.StatusBadRequest, "invalid_doctor_id", "doctors must be a comma-separated list of UUIDs")
					return
				}
				doctorIDs = append(doctorIDs, id)
			}
		}

		days, err := svc.WeekView(r.Context(), weekStart, doctorIDs)
		if err != nil {
			handleSchedulingError(w, err)
			return
		}

		resp := WeekViewResponse{
			WeekStart: weekStart.Format(dateLayout),
			Days:      make(map[int][]CalendarEventResponse, len(days)),
		}
		for dayIndex, events := range days {
			out := make([]CalendarEventResponse, 0, len(events))
			for _, ev := range events {
				out = append(out, CalendarEventResponse{
					Appointment: toAppointmentResponse(ev.Appointment),
					DayIndex:    ev.DayIndex,
					Offset:      ev.Offset,
					Height:      ev.Height,
					Color:       ev.ColorTag,
				})
			}
			resp.Days[dayIndex] = out
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func handleSchedulingError(w http.ResponseWriter, err error) {
	var validationErr *scheduling.ValidationError
	var conflictErr *scheduling.SlotConflictError
	var transitionErr *scheduling.IllegalTransitionError

	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, "validation_error", validationErr.Error())
	case errors.Is(err, scheduling.ErrDoctorNotFound):
		writeError(w, http.StatusNotFound, "doctor_not_found", err.Error())
	case errors.Is(err, scheduling.ErrPatientNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, scheduling.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.As(err, &conflictErr):
		writeError(w, http.StatusConflict, "slot_conflict", conflictErr.Error())
	case errors.As(err, &transitionErr):
		writeError(w, http.StatusConflict, "illegal_transition", transitionErr.Error())
	case errors.Is(err, scheduling.ErrScheduleContended),
		errors.Is(err, redisclient.ErrLockNotAcquired):
		writeError(w, http.StatusConflict, "schedule_contended", "doctor schedule is being modified, please retry shortly")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
