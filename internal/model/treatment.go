package model

import (
	"time"

	"github.com/google/uuid"
)

type TreatmentStatus string

const (
	TreatmentStatusPlanned    TreatmentStatus = "planned"
	TreatmentStatusInProgress TreatmentStatus = "in_progress"
	TreatmentStatusCompleted  TreatmentStatus = "completed"
	TreatmentStatusOnHold     TreatmentStatus = "on_hold"
)

// TreatmentPlanItem is owned by exactly one patient. IsBilled is set once by
// the convert-to-billing transition and never cleared; the reducer refuses a
// second conversion so an item can produce at most one billing entry.
type TreatmentPlanItem struct {
	ID        uuid.UUID       `json:"id"`
	Procedure string          `json:"procedure"`
	Tooth     string          `json:"tooth,omitempty"`
	Cost      float64         `json:"cost"`
	Status    TreatmentStatus `json:"status"`
	IsBilled  bool            `json:"is_billed"`
	CreatedAt time.Time       `json:"created_at"`
}

type AddTreatmentPlanItemRequest struct {
	Procedure string  `json:"procedure" binding:"required"`
	Tooth     string  `json:"tooth"`
	Cost      float64 `json:"cost" binding:"gte=0"`
}

type UpdateTreatmentPlanItemRequest struct {
	Procedure *string          `json:"procedure"`
	Tooth     *string          `json:"tooth"`
	Cost      *float64         `json:"cost" binding:"omitempty,gte=0"`
	Status    *TreatmentStatus `json:"status" binding:"omitempty,oneof=planned in_progress completed on_hold"`
}
