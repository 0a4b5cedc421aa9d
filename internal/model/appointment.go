package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// Appointment references a patient by id and carries a denormalized copy of
// the patient's display name for listings.
type Appointment struct {
	ID          uuid.UUID         `json:"id"`
	PatientID   uuid.UUID         `json:"patient_id"`
	PatientName string            `json:"patient_name"`
	Date        time.Time         `json:"date"`
	Time        string            `json:"time"`
	Procedure   string            `json:"procedure"`
	Doctor      string            `json:"doctor"`
	Status      AppointmentStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

type CreateAppointmentRequest struct {
	PatientID uuid.UUID `json:"patient_id" binding:"required"`
	Date      time.Time `json:"date" binding:"required"`
	Time      string    `json:"time" binding:"required"`
	Procedure string    `json:"procedure" binding:"required"`
	Doctor    string    `json:"doctor"`
}

type UpdateAppointmentRequest struct {
	Date      *time.Time         `json:"date"`
	Time      *string            `json:"time"`
	Procedure *string            `json:"procedure"`
	Doctor    *string            `json:"doctor"`
	Status    *AppointmentStatus `json:"status" binding:"omitempty,oneof=scheduled completed cancelled no_show"`
}
