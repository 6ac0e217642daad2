package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/medicore/clinic-scheduling/internal/scheduling"
)

type BookAppointmentRequest struct {
	DoctorID        string  `json:"doctor_id"`
	PatientID       string  `json:"patient_id"`
	StartTime       string  `json:"start_time"` // RFC 3339
	DurationMinutes int     `json:"duration_minutes"`
	Type            string  `json:"type"`
	Reason          string  `json:"reason"`
	Notes           *string `json:"notes,omitempty"`
	Location        *string `json:"location,omitempty"`
}

type RescheduleRequest struct {
	StartTime       string `json:"start_time"` // RFC 3339
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}

type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	PatientID       uuid.UUID `json:"patient_id"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Type            string    `json:"type"`
	Reason          string    `json:"reason"`
	Notes           *string   `json:"notes,omitempty"`
	Location        *string   `json:"location,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toAppointmentResponse(a scheduling.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:              a.ID,
		DoctorID:        a.DoctorID,
		PatientID:       a.PatientID,
		StartTime:       a.StartTime,
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		Type:            string(a.Type),
		Reason:          a.Reason,
		Notes:           a.Notes,
		Location:        a.Location,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

type RescheduleResponse struct {
	Previous    AppointmentResponse `json:"previous"`
	Replacement AppointmentResponse `json:"replacement"`
}

type CalendarEventResponse struct {
	Appointment AppointmentResponse `json:"appointment"`
	DayIndex    int                 `json:"day_index"`
	Offset      float64             `json:"offset"`
	Height      float64             `json:"height"`
	Color       string              `json:"color"`
}

type WeekViewResponse struct {
	WeekStart string                          `json:"week_start"`
	Days      map[int][]CalendarEventResponse `json:"days"`
}
