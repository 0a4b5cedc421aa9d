package store

import (
	"github.com/google/uuid"

	"github.com/dentassist/dentsync/internal/model"
)

// Reduce computes the next state from the current state and an action. It is
// total and pure: every action variant is handled, an unmatched or
// inapplicable action returns the state unchanged, and inputs are never
// mutated. Updates copy only the branches they touch; everything else keeps
// its identity so callers can detect change by shallow comparison.
func Reduce(s model.AppState, a Action) model.AppState {
	switch a := a.(type) {
	case UpdateClinicSettings:
		s.ClinicName = a.ClinicName
		s.ClinicContactNumber = a.ClinicContactNumber
		return s

	case AddPatient:
		s.Patients = appended(s.Patients, a.Patient)
		return s

	case UpdatePatient:
		s.Patients = updatePatient(s.Patients, a.Patient.ID, func(p *model.Patient) bool {
			p.Name = a.Patient.Name
			p.DateOfBirth = a.Patient.DateOfBirth
			p.Gender = a.Patient.Gender
			p.Contact = a.Patient.Contact
			p.MedicalHistory = a.Patient.MedicalHistory
			p.UpdatedAt = a.Patient.UpdatedAt
			return true
		})
		return s

	case DeletePatient:
		before := len(s.Patients)
		s.Patients = removed(s.Patients, func(p *model.Patient) bool { return p.ID == a.PatientID })
		if len(s.Patients) != before {
			s.Appointments = removed(s.Appointments, func(ap *model.Appointment) bool { return ap.PatientID == a.PatientID })
		}
		return s

	case AddAppointment:
		s.Appointments = appended(s.Appointments, a.Appointment)
		return s

	case UpdateAppointment:
		s.Appointments = replaced(s.Appointments, a.Appointment, func(ap *model.Appointment) bool { return ap.ID == a.Appointment.ID })
		return s

	case DeleteAppointment:
		s.Appointments = removed(s.Appointments, func(ap *model.Appointment) bool { return ap.ID == a.AppointmentID })
		return s

	case AddTransaction:
		s.Transactions = appended(s.Transactions, a.Transaction)
		return s

	case UpdateTransaction:
		s.Transactions = replaced(s.Transactions, a.Transaction, func(t *model.FinancialTransaction) bool { return t.ID == a.Transaction.ID })
		return s

	case DeleteTransaction:
		s.Transactions = removed(s.Transactions, func(t *model.FinancialTransaction) bool { return t.ID == a.TransactionID })
		return s

	case AddShortcut:
		s.Shortcuts = appended(s.Shortcuts, a.Shortcut)
		return s

	case DeleteShortcut:
		s.Shortcuts = removed(s.Shortcuts, func(sc *model.Shortcut) bool { return sc.ID == a.ShortcutID })
		return s

	case SetToothRecord:
		s.Patients = updatePatient(s.Patients, a.PatientID, func(p *model.Patient) bool {
			chart := make(map[string]model.ToothRecord, len(p.DentalChart)+1)
			for k, v := range p.DentalChart {
				chart[k] = v
			}
			chart[a.Tooth] = a.Record
			p.DentalChart = chart
			return true
		})
		return s

	case ClearToothRecord:
		s.Patients = updatePatient(s.Patients, a.PatientID, func(p *model.Patient) bool {
			if _, ok := p.DentalChart[a.Tooth]; !ok {
				return false
			}
			chart := make(map[string]model.ToothRecord, len(p.DentalChart)-1)
			for k, v := range p.DentalChart {
				if k != a.Tooth {
					chart[k] = v
				}
			}
			p.DentalChart = chart
			return true
		})
		return s

	case AddTreatmentPlanItem:
		s.Patients = updatePatient(s.Patients, a.PatientID, func(p *model.Patient) bool {
			p.TreatmentPlan = appended(p.TreatmentPlan, a.Item)
			return true
		})
		return s

	case UpdateTreatmentPlanItem:
		s.Patients = updatePatient(s.Patients, a.PatientID, func(p *model.Patient) bool {
			next := replaced(p.TreatmentPlan, a.Item, func(it *model.TreatmentPlanItem) bool { return it.ID == a.Item.ID })
			if sameSlice(next, p.TreatmentPlan) {
				return false
			}
			p.TreatmentPlan = next
			return true
		})
		return s

	case DeleteTreatmentPlanItem:
		s.Patients = updatePatient(s.Patients, a.PatientID, func(p *model.Patient) bool {
			next := removed(p.TreatmentPlan, func(it *model.TreatmentPlanItem) bool { return it.ID == a.ItemID })
			if sameSlice(next, p.TreatmentPlan) {
				return false
			}
			p.TreatmentPlan = next
			return true
		})
		return s

	case AddPrescription:
		s.Patients = updatePatient(s.Patients, a.PatientID, func(p *model.Patient) bool {
			p.Prescriptions = appended(p.Prescriptions, a.Prescription)
			return true
		})
		return s

	case UpdatePrescription:
		s.Patients = updatePatient(s.Patients, a.PatientID, func(p *model.Patient) bool {
			next := replaced(p.Prescriptions, a.Prescription, func(rx *model.Prescription) bool { return rx.ID == a.Prescription.ID })
			if sameSlice(next, p.Prescriptions) {
				return false
			}
			p.Prescriptions = next
			return true
		})
		return s

	case DeletePrescription:
		s.Patients = updatePatient(s.Patients, a.PatientID, func(p *model.Patient) bool {
			next := removed(p.Prescriptions, func(rx *model.Prescription) bool { return rx.ID == a.PrescriptionID })
			if sameSlice(next, p.Prescriptions) {
				return false
			}
			p.Prescriptions = next
			return true
		})
		return s

	case AddBillingEntry:
		s.Patients = updatePatient(s.Patients, a.PatientID, func(p *model.Patient) bool {
			p.BillingEntries = appended(p.BillingEntries, a.Entry)
			return true
		})
		return s

	case DeleteBillingEntry:
		s.Patients = updatePatient(s.Patients, a.PatientID, func(p *model.Patient) bool {
			next := removed(p.BillingEntries, func(b *model.BillingEntry) bool { return b.ID == a.EntryID })
			if sameSlice(next, p.BillingEntries) {
				return false
			}
			p.BillingEntries = next
			return true
		})
		return s

	case MarkBillingPaid:
		s.Patients = updatePatient(s.Patients, a.PatientID, func(p *model.Patient) bool {
			for i, b := range p.BillingEntries {
				if b.ID != a.EntryID {
					continue
				}
				if b.Status == model.BillingStatusPaid {
					return false
				}
				paid := *b
				paid.Status = model.BillingStatusPaid
				entries := make([]*model.BillingEntry, len(p.BillingEntries))
				copy(entries, p.BillingEntries)
				entries[i] = &paid
				p.BillingEntries = entries
				return true
			}
			return false
		})
		return s

	case ConvertTreatmentToBilling:
		s.Patients = updatePatient(s.Patients, a.PatientID, func(p *model.Patient) bool {
			for i, it := range p.TreatmentPlan {
				if it.ID != a.ItemID {
					continue
				}
				if it.IsBilled {
					return false
				}
				billed := *it
				billed.IsBilled = true
				plan := make([]*model.TreatmentPlanItem, len(p.TreatmentPlan))
				copy(plan, p.TreatmentPlan)
				plan[i] = &billed
				p.TreatmentPlan = plan
				p.BillingEntries = appended(p.BillingEntries, &model.BillingEntry{
					ID:          a.EntryID,
					Date:        a.Date,
					Description: it.Procedure,
					Amount:      it.Cost,
					Status:      model.BillingStatusPending,
				})
				return true
			}
			return false
		})
		return s

	case AddCaseNote:
		s.Patients = updatePatient(s.Patients, a.PatientID, func(p *model.Patient) bool {
			p.Notes = appended(p.Notes, a.Note)
			return true
		})
		return s

	case DeleteCaseNote:
		s.Patients = updatePatient(s.Patients, a.PatientID, func(p *model.Patient) bool {
			next := removed(p.Notes, func(n *model.CaseNote) bool { return n.ID == a.NoteID })
			if sameSlice(next, p.Notes) {
				return false
			}
			p.Notes = next
			return true
		})
		return s

	case AddDocument:
		s.Patients = updatePatient(s.Patients, a.PatientID, func(p *model.Patient) bool {
			p.Documents = appended(p.Documents, a.Document)
			return true
		})
		return s

	case DeleteDocument:
		s.Patients = updatePatient(s.Patients, a.PatientID, func(p *model.Patient) bool {
			next := removed(p.Documents, func(d *model.Document) bool { return d.ID == a.DocumentID })
			if sameSlice(next, p.Documents) {
				return false
			}
			p.Documents = next
			return true
		})
		return s

	default:
		return s
	}
}

// appended returns a fresh slice with x at the end; the input is left intact.
func appended[T any](xs []T, x T) []T {
	next := make([]T, len(xs)+1)
	copy(next, xs)
	next[len(xs)] = x
	return next
}

// removed filters out elements matching pred. When nothing matches it returns
// the input slice unchanged.
func removed[T any](xs []T, pred func(T) bool) []T {
	hit := false
	for _, x := range xs {
		if pred(x) {
			hit = true
			break
		}
	}
	if !hit {
		return xs
	}
	next := make([]T, 0, len(xs)-1)
	for _, x := range xs {
		if !pred(x) {
			next = append(next, x)
		}
	}
	return next
}

// replaced swaps the first element matching pred for x. When nothing matches
// it returns the input slice unchanged.
func replaced[T any](xs []T, x T, pred func(T) bool) []T {
	for i, cur := range xs {
		if pred(cur) {
			next := make([]T, len(xs))
			copy(next, xs)
			next[i] = x
			return next
		}
	}
	return xs
}

// updatePatient clones the patient with the given id, hands the clone to fn,
// and splices it into a fresh patients slice. fn mutates the clone's owned
// collections copy-on-write and reports whether anything changed; a missing
// patient or a false return leaves the original slice untouched.
func updatePatient(patients []*model.Patient, id uuid.UUID, fn func(*model.Patient) bool) []*model.Patient {
	for i, p := range patients {
		if p.ID != id {
			continue
		}
		clone := *p
		if !fn(&clone) {
			return patients
		}
		next := make([]*model.Patient, len(patients))
		copy(next, patients)
		next[i] = &clone
		return next
	}
	return patients
}

func sameSlice[T any](a, b []*T) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}
