package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/dentassist/dentsync/internal/model"
)

// Action is a discrete, typed description of a state change. The set of
// implementations below is closed: the reducer matches every variant and
// returns the state unchanged for anything else.
type Action interface {
	isAction()
}

// Clinic-level actions.

type UpdateClinicSettings struct {
	ClinicName          string
	ClinicContactNumber string
}

type AddPatient struct {
	Patient *model.Patient
}

// UpdatePatient replaces the identity fields of the patient with the matching
// id. Owned collections are untouched; they have their own actions.
type UpdatePatient struct {
	Patient *model.Patient
}

// DeletePatient removes the patient and cascade-deletes the patient's
// appointments. Owned collections go with the patient record itself.
type DeletePatient struct {
	PatientID uuid.UUID
}

type AddAppointment struct {
	Appointment *model.Appointment
}

type UpdateAppointment struct {
	Appointment *model.Appointment
}

type DeleteAppointment struct {
	AppointmentID uuid.UUID
}

type AddTransaction struct {
	Transaction *model.FinancialTransaction
}

type UpdateTransaction struct {
	Transaction *model.FinancialTransaction
}

type DeleteTransaction struct {
	TransactionID uuid.UUID
}

type AddShortcut struct {
	Shortcut *model.Shortcut
}

type DeleteShortcut struct {
	ShortcutID uuid.UUID
}

// Patient-owned collection actions. Each locates the patient by id and
// touches a single owned collection; a missing patient makes the action a
// no-op.

type SetToothRecord struct {
	PatientID uuid.UUID
	Tooth     string
	Record    model.ToothRecord
}

type ClearToothRecord struct {
	PatientID uuid.UUID
	Tooth     string
}

type AddTreatmentPlanItem struct {
	PatientID uuid.UUID
	Item      *model.TreatmentPlanItem
}

type UpdateTreatmentPlanItem struct {
	PatientID uuid.UUID
	Item      *model.TreatmentPlanItem
}

type DeleteTreatmentPlanItem struct {
	PatientID uuid.UUID
	ItemID    uuid.UUID
}

type AddPrescription struct {
	PatientID    uuid.UUID
	Prescription *model.Prescription
}

type UpdatePrescription struct {
	PatientID    uuid.UUID
	Prescription *model.Prescription
}

type DeletePrescription struct {
	PatientID      uuid.UUID
	PrescriptionID uuid.UUID
}

type AddBillingEntry struct {
	PatientID uuid.UUID
	Entry     *model.BillingEntry
}

type DeleteBillingEntry struct {
	PatientID uuid.UUID
	EntryID   uuid.UUID
}

// MarkBillingPaid moves a billing entry from pending to paid. The transition
// is one-way and idempotent; there is no reverse action.
type MarkBillingPaid struct {
	PatientID uuid.UUID
	EntryID   uuid.UUID
}

// ConvertTreatmentToBilling derives a billing entry from an unbilled
// treatment-plan item and sets the item's IsBilled flag. EntryID and Date are
// supplied by the caller so the reducer stays deterministic. Converting an
// already-billed item is a no-op.
type ConvertTreatmentToBilling struct {
	PatientID uuid.UUID
	ItemID    uuid.UUID
	EntryID   uuid.UUID
	Date      time.Time
}

type AddCaseNote struct {
	PatientID uuid.UUID
	Note      *model.CaseNote
}

type DeleteCaseNote struct {
	PatientID uuid.UUID
	NoteID    uuid.UUID
}

type AddDocument struct {
	PatientID uuid.UUID
	Document  *model.Document
}

type DeleteDocument struct {
	PatientID  uuid.UUID
	DocumentID uuid.UUID
}

func (UpdateClinicSettings) isAction()      {}
func (AddPatient) isAction()                {}
func (UpdatePatient) isAction()             {}
func (DeletePatient) isAction()             {}
func (AddAppointment) isAction()            {}
func (UpdateAppointment) isAction()         {}
func (DeleteAppointment) isAction()         {}
func (AddTransaction) isAction()            {}
func (UpdateTransaction) isAction()         {}
func (DeleteTransaction) isAction()         {}
func (AddShortcut) isAction()               {}
func (DeleteShortcut) isAction()            {}
func (SetToothRecord) isAction()            {}
func (ClearToothRecord) isAction()          {}
func (AddTreatmentPlanItem) isAction()      {}
func (UpdateTreatmentPlanItem) isAction()   {}
func (DeleteTreatmentPlanItem) isAction()   {}
func (AddPrescription) isAction()           {}
func (UpdatePrescription) isAction()        {}
func (DeletePrescription) isAction()        {}
func (AddBillingEntry) isAction()           {}
func (DeleteBillingEntry) isAction()        {}
func (MarkBillingPaid) isAction()           {}
func (ConvertTreatmentToBilling) isAction() {}
func (AddCaseNote) isAction()               {}
func (DeleteCaseNote) isAction()            {}
func (AddDocument) isAction()               {}
func (DeleteDocument) isAction()            {}
