package model

import (
	"time"

	"github.com/google/uuid"
)

type BillingStatus string

const (
	BillingStatusPending BillingStatus = "pending"
	BillingStatusPaid    BillingStatus = "paid"
)

// BillingEntry is owned by a patient. The pending→paid transition is one-way;
// there is no un-pay.
type BillingEntry struct {
	ID          uuid.UUID     `json:"id"`
	Date        time.Time     `json:"date"`
	Description string        `json:"description"`
	Amount      float64       `json:"amount"`
	Status      BillingStatus `json:"status"`
}

type AddBillingEntryRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"gte=0"`
}

type PrescriptionStatus string

const (
	PrescriptionStatusActive       PrescriptionStatus = "active"
	PrescriptionStatusCompleted    PrescriptionStatus = "completed"
	PrescriptionStatusDiscontinued PrescriptionStatus = "discontinued"
)

type Prescription struct {
	ID           uuid.UUID          `json:"id"`
	Medication   string             `json:"medication"`
	Dosage       string             `json:"dosage"`
	Frequency    string             `json:"frequency"`
	Duration     string             `json:"duration"`
	Route        string             `json:"route"`
	Instructions string             `json:"instructions,omitempty"`
	Status       PrescriptionStatus `json:"status"`
	StartDate    time.Time          `json:"start_date"`
	EndDate      *time.Time         `json:"end_date,omitempty"`
}

type AddPrescriptionRequest struct {
	Medication   string     `json:"medication" binding:"required"`
	Dosage       string     `json:"dosage" binding:"required"`
	Frequency    string     `json:"frequency" binding:"required"`
	Duration     string     `json:"duration"`
	Route        string     `json:"route"`
	Instructions string     `json:"instructions"`
	StartDate    time.Time  `json:"start_date" binding:"required"`
	EndDate      *time.Time `json:"end_date"`
}

type UpdatePrescriptionRequest struct {
	Medication   *string             `json:"medication"`
	Dosage       *string             `json:"dosage"`
	Frequency    *string             `json:"frequency"`
	Duration     *string             `json:"duration"`
	Route        *string             `json:"route"`
	Instructions *string             `json:"instructions"`
	Status       *PrescriptionStatus `json:"status" binding:"omitempty,oneof=active completed discontinued"`
	EndDate      *time.Time          `json:"end_date"`
}
