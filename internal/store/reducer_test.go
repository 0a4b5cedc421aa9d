package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentassist/dentsync/internal/model"
)

func testPatient() *model.Patient {
	return &model.Patient{
		ID:          uuid.New(),
		Name:        "Asha Rao",
		DateOfBirth: time.Date(1988, 4, 2, 0, 0, 0, 0, time.UTC),
		Gender:      "female",
		Contact:     "+15550100",
		DentalChart: map[string]model.ToothRecord{},
	}
}

func TestReduceAddThenDeletePatient(t *testing.T) {
	initial := model.DefaultState()
	p := testPatient()

	withPatient := Reduce(initial, AddPatient{Patient: p})
	require.Len(t, withPatient.Patients, 1)
	assert.Empty(t, initial.Patients, "input state must not be mutated")

	restored := Reduce(withPatient, DeletePatient{PatientID: p.ID})
	assert.Empty(t, restored.Patients)
	assert.Len(t, withPatient.Patients, 1)
}

func TestReduceAddThenDeletePrescriptionRestoresPatient(t *testing.T) {
	p := testPatient()
	p.Prescriptions = []*model.Prescription{
		{ID: uuid.New(), Medication: "Ibuprofen", Dosage: "200mg"},
	}
	s := Reduce(model.DefaultState(), AddPatient{Patient: p})

	rxID := uuid.New()
	withRx := Reduce(s, AddPrescription{
		PatientID:    p.ID,
		Prescription: &model.Prescription{ID: rxID, Medication: "Amoxicillin", Dosage: "500mg"},
	})
	require.Len(t, withRx.Patients[0].Prescriptions, 2)

	restored := Reduce(withRx, DeletePrescription{PatientID: p.ID, PrescriptionID: rxID})
	assert.Equal(t, s.Patients[0], restored.Patients[0])
}

func TestReduceDeletePatientCascadesAppointments(t *testing.T) {
	p := testPatient()
	other := testPatient()
	s := model.DefaultState()
	s = Reduce(s, AddPatient{Patient: p})
	s = Reduce(s, AddPatient{Patient: other})
	s = Reduce(s, AddAppointment{Appointment: &model.Appointment{ID: uuid.New(), PatientID: p.ID}})
	s = Reduce(s, AddAppointment{Appointment: &model.Appointment{ID: uuid.New(), PatientID: other.ID}})

	s = Reduce(s, DeletePatient{PatientID: p.ID})

	require.Len(t, s.Appointments, 1)
	assert.Equal(t, other.ID, s.Appointments[0].PatientID)
}

func TestReduceUnknownTargetsAreNoOps(t *testing.T) {
	p := testPatient()
	s := Reduce(model.DefaultState(), AddPatient{Patient: p})

	next := Reduce(s, DeletePatient{PatientID: uuid.New()})
	assert.True(t, &s.Patients[0] == &next.Patients[0], "untouched slice must keep identity")

	next = Reduce(s, DeleteAppointment{AppointmentID: uuid.New()})
	assert.Empty(t, next.Appointments)

	next = Reduce(s, SetToothRecord{PatientID: uuid.New(), Tooth: "14", Record: model.ToothRecord{Condition: model.ToothConditionCaries}})
	assert.True(t, &s.Patients[0] == &next.Patients[0])
}

func TestReduceIdentityPreservation(t *testing.T) {
	p := testPatient()
	s := model.DefaultState()
	s = Reduce(s, AddPatient{Patient: p})
	s = Reduce(s, AddTransaction{Transaction: &model.FinancialTransaction{ID: uuid.New(), Type: model.TransactionTypeIncome, Amount: 100, Date: "2026-01-10"}})

	next := Reduce(s, SetToothRecord{
		PatientID: p.ID,
		Tooth:     "14",
		Record:    model.ToothRecord{Condition: model.ToothConditionRootCanal},
	})

	// The touched patient is a new value; the transactions branch is shared.
	require.Len(t, next.Patients, 1)
	assert.False(t, next.Patients[0] == s.Patients[0])
	assert.True(t, &next.Transactions[0] == &s.Transactions[0])
	assert.Empty(t, s.Patients[0].DentalChart)
	assert.Equal(t, model.ToothConditionRootCanal, next.Patients[0].DentalChart["14"].Condition)
}

func TestReduceClearToothRecord(t *testing.T) {
	p := testPatient()
	s := Reduce(model.DefaultState(), AddPatient{Patient: p})
	s = Reduce(s, SetToothRecord{PatientID: p.ID, Tooth: "8", Record: model.ToothRecord{Condition: model.ToothConditionFilled}})

	cleared := Reduce(s, ClearToothRecord{PatientID: p.ID, Tooth: "8"})
	assert.NotContains(t, cleared.Patients[0].DentalChart, "8")

	// Clearing an uncharted tooth changes nothing.
	again := Reduce(cleared, ClearToothRecord{PatientID: p.ID, Tooth: "8"})
	assert.True(t, again.Patients[0] == cleared.Patients[0])
}

func TestReduceMarkBillingPaidIdempotent(t *testing.T) {
	p := testPatient()
	entryID := uuid.New()
	s := Reduce(model.DefaultState(), AddPatient{Patient: p})
	s = Reduce(s, AddBillingEntry{PatientID: p.ID, Entry: &model.BillingEntry{
		ID:     entryID,
		Amount: 150,
		Status: model.BillingStatusPending,
	}})

	once := Reduce(s, MarkBillingPaid{PatientID: p.ID, EntryID: entryID})
	require.Equal(t, model.BillingStatusPaid, once.Patients[0].BillingEntries[0].Status)

	twice := Reduce(once, MarkBillingPaid{PatientID: p.ID, EntryID: entryID})
	assert.True(t, twice.Patients[0] == once.Patients[0], "second mark must be a no-op")
}

func TestReduceConvertTreatmentToBillingOnce(t *testing.T) {
	p := testPatient()
	itemID := uuid.New()
	s := Reduce(model.DefaultState(), AddPatient{Patient: p})
	s = Reduce(s, AddTreatmentPlanItem{PatientID: p.ID, Item: &model.TreatmentPlanItem{
		ID:        itemID,
		Procedure: "Root Canal Therapy",
		Tooth:     "14",
		Cost:      480,
		Status:    model.TreatmentStatusCompleted,
	}})

	convert := ConvertTreatmentToBilling{
		PatientID: p.ID,
		ItemID:    itemID,
		EntryID:   uuid.New(),
		Date:      time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}

	once := Reduce(s, convert)
	require.Len(t, once.Patients[0].BillingEntries, 1)
	entry := once.Patients[0].BillingEntries[0]
	assert.Equal(t, "Root Canal Therapy", entry.Description)
	assert.Equal(t, 480.0, entry.Amount)
	assert.Equal(t, model.BillingStatusPending, entry.Status)
	assert.True(t, once.Patients[0].TreatmentPlan[0].IsBilled)

	// A second conversion of the same item must not create another entry.
	convert.EntryID = uuid.New()
	twice := Reduce(once, convert)
	assert.Len(t, twice.Patients[0].BillingEntries, 1)
	assert.True(t, twice.Patients[0] == once.Patients[0])
}

func TestReduceUpdateClinicSettings(t *testing.T) {
	s := Reduce(model.DefaultState(), UpdateClinicSettings{
		ClinicName:          "Smile Studio",
		ClinicContactNumber: "+15550111",
	})
	assert.Equal(t, "Smile Studio", s.ClinicName)
	assert.Equal(t, "+15550111", s.ClinicContactNumber)
}

func TestReduceShortcuts(t *testing.T) {
	sc := &model.Shortcut{
		ID:       uuid.New(),
		Category: model.ShortcutCategoryNotes,
		Text:     "Advised soft diet for 24h.",
	}
	s := Reduce(model.DefaultState(), AddShortcut{Shortcut: sc})
	require.Len(t, s.Shortcuts, 1)

	s = Reduce(s, DeleteShortcut{ShortcutID: sc.ID})
	assert.Empty(t, s.Shortcuts)
}
