// Package clinic exposes the record-store operations behind validated,
// intention-revealing methods. Handlers never build actions themselves; the
// service checks referential preconditions, stamps identities, and
// dispatches.
package clinic

import (
	"time"

	"github.com/google/uuid"

	"github.com/dentassist/dentsync/internal/model"
	"github.com/dentassist/dentsync/internal/store"
	"github.com/dentassist/dentsync/pkg/errors"
	"github.com/dentassist/dentsync/pkg/metrics"
)

type Service struct {
	store   *store.Store
	metrics *metrics.Metrics
}

// NewService wires the record service to the store. metrics may be nil in
// tests.
func NewService(st *store.Store, m *metrics.Metrics) *Service {
	return &Service{store: st, metrics: m}
}

func (s *Service) dispatch(name string, a store.Action) model.AppState {
	if s.metrics != nil {
		s.metrics.ActionsDispatched.WithLabelValues(name).Inc()
	}
	return s.store.Dispatch(a)
}

func (s *Service) State() model.AppState {
	return s.store.State()
}

// Settings

func (s *Service) UpdateSettings(req *model.UpdateClinicSettingsRequest) model.AppState {
	return s.dispatch("update_clinic_settings", store.UpdateClinicSettings{
		ClinicName:          req.ClinicName,
		ClinicContactNumber: req.ClinicContactNumber,
	})
}

// Patients

func (s *Service) ListPatients() []*model.Patient {
	return s.store.State().Patients
}

func (s *Service) GetPatient(id uuid.UUID) (*model.Patient, error) {
	return s.findPatient(s.store.State(), id)
}

func (s *Service) findPatient(state model.AppState, id uuid.UUID) (*model.Patient, error) {
	for _, p := range state.Patients {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errors.NotFound("patient", nil)
}

func (s *Service) CreatePatient(req *model.CreatePatientRequest) *model.Patient {
	now := time.Now().UTC()
	patient := &model.Patient{
		ID:             uuid.New(),
		Name:           req.Name,
		DateOfBirth:    req.DateOfBirth,
		Gender:         req.Gender,
		Contact:        req.Contact,
		MedicalHistory: req.MedicalHistory,
		DentalChart:    map[string]model.ToothRecord{},
		TreatmentPlan:  []*model.TreatmentPlanItem{},
		Prescriptions:  []*model.Prescription{},
		BillingEntries: []*model.BillingEntry{},
		Notes:          []*model.CaseNote{},
		Documents:      []*model.Document{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.dispatch("add_patient", store.AddPatient{Patient: patient})
	return patient
}

func (s *Service) UpdatePatient(id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	current, err := s.GetPatient(id)
	if err != nil {
		return nil, err
	}

	next := *current
	if req.Name != nil {
		next.Name = *req.Name
	}
	if req.DateOfBirth != nil {
		next.DateOfBirth = *req.DateOfBirth
	}
	if req.Gender != nil {
		next.Gender = *req.Gender
	}
	if req.Contact != nil {
		next.Contact = *req.Contact
	}
	if req.MedicalHistory != nil {
		next.MedicalHistory = *req.MedicalHistory
	}
	next.UpdatedAt = time.Now().UTC()

	state := s.dispatch("update_patient", store.UpdatePatient{Patient: &next})
	return s.findPatient(state, id)
}

// DeletePatient removes the patient and, through the reducer, every
// appointment referencing them.
func (s *Service) DeletePatient(id uuid.UUID) error {
	if _, err := s.GetPatient(id); err != nil {
		return err
	}
	s.dispatch("delete_patient", store.DeletePatient{PatientID: id})
	return nil
}

// Appointments

func (s *Service) ListAppointments() []*model.Appointment {
	return s.store.State().Appointments
}

func (s *Service) CreateAppointment(req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	patient, err := s.GetPatient(req.PatientID)
	if err != nil {
		return nil, err
	}

	appt := &model.Appointment{
		ID:          uuid.New(),
		PatientID:   patient.ID,
		PatientName: patient.Name,
		Date:        req.Date,
		Time:        req.Time,
		Procedure:   req.Procedure,
		Doctor:      req.Doctor,
		Status:      model.AppointmentStatusScheduled,
		CreatedAt:   time.Now().UTC(),
	}
	s.dispatch("add_appointment", store.AddAppointment{Appointment: appt})
	return appt, nil
}

func (s *Service) UpdateAppointment(id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	var current *model.Appointment
	for _, a := range s.store.State().Appointments {
		if a.ID == id {
			current = a
			break
		}
	}
	if current == nil {
		return nil, errors.NotFound("appointment", nil)
	}

	next := *current
	if req.Date != nil {
		next.Date = *req.Date
	}
	if req.Time != nil {
		next.Time = *req.Time
	}
	if req.Procedure != nil {
		next.Procedure = *req.Procedure
	}
	if req.Doctor != nil {
		next.Doctor = *req.Doctor
	}
	if req.Status != nil {
		next.Status = *req.Status
	}

	s.dispatch("update_appointment", store.UpdateAppointment{Appointment: &next})
	return &next, nil
}

func (s *Service) DeleteAppointment(id uuid.UUID) error {
	for _, a := range s.store.State().Appointments {
		if a.ID == id {
			s.dispatch("delete_appointment", store.DeleteAppointment{AppointmentID: id})
			return nil
		}
	}
	return errors.NotFound("appointment", nil)
}

// Transactions

func (s *Service) ListTransactions() []*model.FinancialTransaction {
	return s.store.State().Transactions
}

func (s *Service) CreateTransaction(req *model.CreateTransactionRequest) *model.FinancialTransaction {
	txn := &model.FinancialTransaction{
		ID:          uuid.New(),
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
	}
	s.dispatch("add_transaction", store.AddTransaction{Transaction: txn})
	return txn
}

func (s *Service) UpdateTransaction(id uuid.UUID, req *model.UpdateTransactionRequest) (*model.FinancialTransaction, error) {
	var current *model.FinancialTransaction
	for _, t := range s.store.State().Transactions {
		if t.ID == id {
			current = t
			break
		}
	}
	if current == nil {
		return nil, errors.NotFound("transaction", nil)
	}

	next := *current
	if req.Type != nil {
		next.Type = *req.Type
	}
	if req.Category != nil {
		next.Category = *req.Category
	}
	if req.Description != nil {
		next.Description = *req.Description
	}
	if req.Amount != nil {
		next.Amount = *req.Amount
	}
	if req.Date != nil {
		next.Date = *req.Date
	}

	s.dispatch("update_transaction", store.UpdateTransaction{Transaction: &next})
	return &next, nil
}

func (s *Service) DeleteTransaction(id uuid.UUID) error {
	for _, t := range s.store.State().Transactions {
		if t.ID == id {
			s.dispatch("delete_transaction", store.DeleteTransaction{TransactionID: id})
			return nil
		}
	}
	return errors.NotFound("transaction", nil)
}

// Shortcuts

func (s *Service) ListShortcuts() []*model.Shortcut {
	return s.store.State().Shortcuts
}

func (s *Service) CreateShortcut(req *model.CreateShortcutRequest) (*model.Shortcut, error) {
	if !req.Valid() {
		return nil, errors.BadRequest("shortcut value does not match its category", nil)
	}
	sc := &model.Shortcut{
		ID:           uuid.New(),
		Category:     req.Category,
		Label:        req.Label,
		Text:         req.Text,
		Billing:      req.Billing,
		Prescription: req.Prescription,
	}
	s.dispatch("add_shortcut", store.AddShortcut{Shortcut: sc})
	return sc, nil
}

func (s *Service) DeleteShortcut(id uuid.UUID) error {
	for _, sc := range s.store.State().Shortcuts {
		if sc.ID == id {
			s.dispatch("delete_shortcut", store.DeleteShortcut{ShortcutID: id})
			return nil
		}
	}
	return errors.NotFound("shortcut", nil)
}

// Dental chart

func (s *Service) SetToothRecord(patientID uuid.UUID, req *model.SetToothRecordRequest) error {
	if _, err := s.GetPatient(patientID); err != nil {
		return err
	}
	s.dispatch("set_tooth_record", store.SetToothRecord{
		PatientID: patientID,
		Tooth:     req.Tooth,
		Record:    model.ToothRecord{Condition: req.Condition, Notes: req.Notes},
	})
	return nil
}

func (s *Service) ClearToothRecord(patientID uuid.UUID, tooth string) error {
	if _, err := s.GetPatient(patientID); err != nil {
		return err
	}
	s.dispatch("clear_tooth_record", store.ClearToothRecord{PatientID: patientID, Tooth: tooth})
	return nil
}

// Treatment plan

func (s *Service) AddTreatmentPlanItem(patientID uuid.UUID, req *model.AddTreatmentPlanItemRequest) (*model.TreatmentPlanItem, error) {
	if _, err := s.GetPatient(patientID); err != nil {
		return nil, err
	}
	item := &model.TreatmentPlanItem{
		ID:        uuid.New(),
		Procedure: req.Procedure,
		Tooth:     req.Tooth,
		Cost:      req.Cost,
		Status:    model.TreatmentStatusPlanned,
		CreatedAt: time.Now().UTC(),
	}
	s.dispatch("add_treatment_item", store.AddTreatmentPlanItem{PatientID: patientID, Item: item})
	return item, nil
}

func (s *Service) UpdateTreatmentPlanItem(patientID, itemID uuid.UUID, req *model.UpdateTreatmentPlanItemRequest) (*model.TreatmentPlanItem, error) {
	patient, err := s.GetPatient(patientID)
	if err != nil {
		return nil, err
	}
	var current *model.TreatmentPlanItem
	for _, it := range patient.TreatmentPlan {
		if it.ID == itemID {
			current = it
			break
		}
	}
	if current == nil {
		return nil, errors.NotFound("treatment plan item", nil)
	}

	next := *current
	if req.Procedure != nil {
		next.Procedure = *req.Procedure
	}
	if req.Tooth != nil {
		next.Tooth = *req.Tooth
	}
	if req.Cost != nil {
		next.Cost = *req.Cost
	}
	if req.Status != nil {
		next.Status = *req.Status
	}

	s.dispatch("update_treatment_item", store.UpdateTreatmentPlanItem{PatientID: patientID, Item: &next})
	return &next, nil
}

func (s *Service) DeleteTreatmentPlanItem(patientID, itemID uuid.UUID) error {
	if _, err := s.GetPatient(patientID); err != nil {
		return err
	}
	s.dispatch("delete_treatment_item", store.DeleteTreatmentPlanItem{PatientID: patientID, ItemID: itemID})
	return nil
}

// ConvertTreatmentToBilling derives a pending billing entry from a completed,
// unbilled treatment-plan item. The reducer guarantees at most one entry per
// item; the service additionally requires the item to be completed.
func (s *Service) ConvertTreatmentToBilling(patientID, itemID uuid.UUID) (*model.BillingEntry, error) {
	patient, err := s.GetPatient(patientID)
	if err != nil {
		return nil, err
	}
	var item *model.TreatmentPlanItem
	for _, it := range patient.TreatmentPlan {
		if it.ID == itemID {
			item = it
			break
		}
	}
	if item == nil {
		return nil, errors.NotFound("treatment plan item", nil)
	}
	if item.Status != model.TreatmentStatusCompleted {
		return nil, errors.BadRequest("only completed treatment plan items can be billed", nil)
	}
	if item.IsBilled {
		return nil, errors.BadRequest("treatment plan item is already billed", nil)
	}

	entryID := uuid.New()
	state := s.dispatch("convert_treatment_to_billing", store.ConvertTreatmentToBilling{
		PatientID: patientID,
		ItemID:    itemID,
		EntryID:   entryID,
		Date:      time.Now().UTC(),
	})

	updated, err := s.findPatient(state, patientID)
	if err != nil {
		return nil, err
	}
	for _, e := range updated.BillingEntries {
		if e.ID == entryID {
			return e, nil
		}
	}
	return nil, errors.Internal(nil)
}

// Prescriptions

func (s *Service) AddPrescription(patientID uuid.UUID, req *model.AddPrescriptionRequest) (*model.Prescription, error) {
	if _, err := s.GetPatient(patientID); err != nil {
		return nil, err
	}
	rx := &model.Prescription{
		ID:           uuid.New(),
		Medication:   req.Medication,
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		Duration:     req.Duration,
		Route:        req.Route,
		Instructions: req.Instructions,
		Status:       model.PrescriptionStatusActive,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
	}
	s.dispatch("add_prescription", store.AddPrescription{PatientID: patientID, Prescription: rx})
	return rx, nil
}

func (s *Service) UpdatePrescription(patientID, rxID uuid.UUID, req *model.UpdatePrescriptionRequest) (*model.Prescription, error) {
	patient, err := s.GetPatient(patientID)
	if err != nil {
		return nil, err
	}
	var current *model.Prescription
	for _, rx := range patient.Prescriptions {
		if rx.ID == rxID {
			current = rx
			break
		}
	}
	if current == nil {
		return nil, errors.NotFound("prescription", nil)
	}

	next := *current
	if req.Medication != nil {
		next.Medication = *req.Medication
	}
	if req.Dosage != nil {
		next.Dosage = *req.Dosage
	}
	if req.Frequency != nil {
		next.Frequency = *req.Frequency
	}
	if req.Duration != nil {
		next.Duration = *req.Duration
	}
	if req.Route != nil {
		next.Route = *req.Route
	}
	if req.Instructions != nil {
		next.Instructions = *req.Instructions
	}
	if req.Status != nil {
		next.Status = *req.Status
	}
	if req.EndDate != nil {
		next.EndDate = req.EndDate
	}

	s.dispatch("update_prescription", store.UpdatePrescription{PatientID: patientID, Prescription: &next})
	return &next, nil
}

func (s *Service) DeletePrescription(patientID, rxID uuid.UUID) error {
	if _, err := s.GetPatient(patientID); err != nil {
		return err
	}
	s.dispatch("delete_prescription", store.DeletePrescription{PatientID: patientID, PrescriptionID: rxID})
	return nil
}

// Billing

func (s *Service) AddBillingEntry(patientID uuid.UUID, req *model.AddBillingEntryRequest) (*model.BillingEntry, error) {
	if _, err := s.GetPatient(patientID); err != nil {
		return nil, err
	}
	entry := &model.BillingEntry{
		ID:          uuid.New(),
		Date:        time.Now().UTC(),
		Description: req.Description,
		Amount:      req.Amount,
		Status:      model.BillingStatusPending,
	}
	s.dispatch("add_billing_entry", store.AddBillingEntry{PatientID: patientID, Entry: entry})
	return entry, nil
}

// MarkBillingPaid applies the one-way pending→paid transition. Marking an
// already-paid entry is accepted and changes nothing.
func (s *Service) MarkBillingPaid(patientID, entryID uuid.UUID) (*model.BillingEntry, error) {
	patient, err := s.GetPatient(patientID)
	if err != nil {
		return nil, err
	}
	found := false
	for _, e := range patient.BillingEntries {
		if e.ID == entryID {
			found = true
			break
		}
	}
	if !found {
		return nil, errors.NotFound("billing entry", nil)
	}

	state := s.dispatch("mark_billing_paid", store.MarkBillingPaid{PatientID: patientID, EntryID: entryID})
	updated, err := s.findPatient(state, patientID)
	if err != nil {
		return nil, err
	}
	for _, e := range updated.BillingEntries {
		if e.ID == entryID {
			return e, nil
		}
	}
	return nil, errors.NotFound("billing entry", nil)
}

func (s *Service) DeleteBillingEntry(patientID, entryID uuid.UUID) error {
	if _, err := s.GetPatient(patientID); err != nil {
		return err
	}
	s.dispatch("delete_billing_entry", store.DeleteBillingEntry{PatientID: patientID, EntryID: entryID})
	return nil
}

// Notes and documents

func (s *Service) AddCaseNote(patientID uuid.UUID, req *model.AddCaseNoteRequest) (*model.CaseNote, error) {
	if _, err := s.GetPatient(patientID); err != nil {
		return nil, err
	}
	note := &model.CaseNote{
		ID:        uuid.New(),
		Category:  req.Category,
		Text:      req.Text,
		CreatedAt: time.Now().UTC(),
	}
	s.dispatch("add_case_note", store.AddCaseNote{PatientID: patientID, Note: note})
	return note, nil
}

func (s *Service) DeleteCaseNote(patientID, noteID uuid.UUID) error {
	if _, err := s.GetPatient(patientID); err != nil {
		return err
	}
	s.dispatch("delete_case_note", store.DeleteCaseNote{PatientID: patientID, NoteID: noteID})
	return nil
}

func (s *Service) AddDocument(patientID uuid.UUID, req *model.AddDocumentRequest) (*model.Document, error) {
	if _, err := s.GetPatient(patientID); err != nil {
		return nil, err
	}
	doc := &model.Document{
		ID:        uuid.New(),
		Name:      req.Name,
		MimeType:  req.MimeType,
		DataURI:   req.DataURI,
		CreatedAt: time.Now().UTC(),
	}
	s.dispatch("add_document", store.AddDocument{PatientID: patientID, Document: doc})
	return doc, nil
}

func (s *Service) DeleteDocument(patientID, docID uuid.UUID) error {
	if _, err := s.GetPatient(patientID); err != nil {
		return err
	}
	s.dispatch("delete_document", store.DeleteDocument{PatientID: patientID, DocumentID: docID})
	return nil
}
