package model

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID             uuid.UUID              `json:"id"`
	Name           string                 `json:"name"`
	DateOfBirth    time.Time              `json:"date_of_birth"`
	Gender         string                 `json:"gender"`
	Contact        string                 `json:"contact"`
	MedicalHistory string                 `json:"medical_history"`
	DentalChart    map[string]ToothRecord `json:"dental_chart"`
	TreatmentPlan  []*TreatmentPlanItem   `json:"treatment_plan"`
	Prescriptions  []*Prescription        `json:"prescriptions"`
	BillingEntries []*BillingEntry        `json:"billing_entries"`
	Notes          []*CaseNote            `json:"notes"`
	Documents      []*Document            `json:"documents"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ToothCondition is the charted state of a single tooth.
type ToothCondition string

const (
	ToothConditionHealthy   ToothCondition = "healthy"
	ToothConditionCaries    ToothCondition = "caries"
	ToothConditionFilled    ToothCondition = "filled"
	ToothConditionCrown     ToothCondition = "crown"
	ToothConditionRootCanal ToothCondition = "root_canal"
	ToothConditionImplant   ToothCondition = "implant"
	ToothConditionMissing   ToothCondition = "missing"
)

// ToothRecord is one cell of a patient's dental chart, keyed by the tooth
// identifier (universal numbering, "1".."32").
type ToothRecord struct {
	Condition ToothCondition `json:"condition"`
	Notes     string         `json:"notes,omitempty"`
}

type CaseNoteCategory string

const (
	CaseNoteCategoryCase    CaseNoteCategory = "case"
	CaseNoteCategoryGeneral CaseNoteCategory = "general"
)

type CaseNote struct {
	ID        uuid.UUID        `json:"id"`
	Category  CaseNoteCategory `json:"category"`
	Text      string           `json:"text"`
	CreatedAt time.Time        `json:"created_at"`
}

// Document is a patient file referenced by an inline data URI; the blob never
// leaves the snapshot.
type Document struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	MimeType  string    `json:"mime_type"`
	DataURI   string    `json:"data_uri"`
	CreatedAt time.Time `json:"created_at"`
}

type CreatePatientRequest struct {
	Name           string    `json:"name" binding:"required"`
	DateOfBirth    time.Time `json:"date_of_birth" binding:"required"`
	Gender         string    `json:"gender" binding:"required,oneof=male female other"`
	Contact        string    `json:"contact"`
	MedicalHistory string    `json:"medical_history"`
}

type UpdatePatientRequest struct {
	Name           *string    `json:"name"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Gender         *string    `json:"gender" binding:"omitempty,oneof=male female other"`
	Contact        *string    `json:"contact"`
	MedicalHistory *string    `json:"medical_history"`
}

type SetToothRecordRequest struct {
	Tooth     string         `json:"tooth" binding:"required,tooth"`
	Condition ToothCondition `json:"condition" binding:"required,oneof=healthy caries filled crown root_canal implant missing"`
	Notes     string         `json:"notes"`
}

type AddCaseNoteRequest struct {
	Category CaseNoteCategory `json:"category" binding:"required,oneof=case general"`
	Text     string           `json:"text" binding:"required"`
}

type AddDocumentRequest struct {
	Name     string `json:"name" binding:"required"`
	MimeType string `json:"mime_type" binding:"required"`
	DataURI  string `json:"data_uri" binding:"required"`
}
