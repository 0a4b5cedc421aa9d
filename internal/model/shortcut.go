package model

import "github.com/google/uuid"

type ShortcutCategory string

const (
	ShortcutCategoryNotes         ShortcutCategory = "notes"
	ShortcutCategoryDoctors       ShortcutCategory = "doctors"
	ShortcutCategoryBilling       ShortcutCategory = "billing"
	ShortcutCategoryPrescriptions ShortcutCategory = "prescriptions"
)

// Shortcut is a clinic-level reusable form template. The value shape depends
// on the category: notes and doctors carry a plain Text, billing and
// prescriptions carry a structured partial record. Exactly one value field is
// populated for a given category.
type Shortcut struct {
	ID           uuid.UUID             `json:"id"`
	Category     ShortcutCategory      `json:"category"`
	Label        string                `json:"label"`
	Text         string                `json:"text,omitempty"`
	Billing      *BillingShortcut      `json:"billing,omitempty"`
	Prescription *PrescriptionShortcut `json:"prescription,omitempty"`
}

type BillingShortcut struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type PrescriptionShortcut struct {
	Medication string `json:"medication"`
	Dosage     string `json:"dosage"`
	Frequency  string `json:"frequency"`
	Duration   string `json:"duration"`
	Route      string `json:"route"`
}

type CreateShortcutRequest struct {
	Category     ShortcutCategory      `json:"category" binding:"required,oneof=notes doctors billing prescriptions"`
	Label        string                `json:"label" binding:"required"`
	Text         string                `json:"text"`
	Billing      *BillingShortcut      `json:"billing"`
	Prescription *PrescriptionShortcut `json:"prescription"`
}

// Valid reports whether the request carries the value shape its category
// requires.
func (r *CreateShortcutRequest) Valid() bool {
	switch r.Category {
	case ShortcutCategoryNotes, ShortcutCategoryDoctors:
		return r.Text != ""
	case ShortcutCategoryBilling:
		return r.Billing != nil
	case ShortcutCategoryPrescriptions:
		return r.Prescription != nil
	}
	return false
}
