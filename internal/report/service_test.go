package report

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentassist/dentsync/internal/model"
	"github.com/dentassist/dentsync/internal/store"
)

func TestServiceOutstandingTracksDispatches(t *testing.T) {
	st := store.New(model.DefaultState())
	svc := NewService(st)

	p := &model.Patient{ID: uuid.New(), Name: "Asha Rao"}
	st.Dispatch(store.AddPatient{Patient: p})
	st.Dispatch(store.AddBillingEntry{PatientID: p.ID, Entry: &model.BillingEntry{
		ID:     uuid.New(),
		Amount: 75,
		Status: model.BillingStatusPending,
	}})

	assert.Equal(t, 75.0, svc.OutstandingBalance())
	// Memoized read of the same version.
	assert.Equal(t, 75.0, svc.OutstandingBalance())

	st.Dispatch(store.AddBillingEntry{PatientID: p.ID, Entry: &model.BillingEntry{
		ID:     uuid.New(),
		Amount: 25,
		Status: model.BillingStatusPending,
	}})
	assert.Equal(t, 100.0, svc.OutstandingBalance(), "new version must invalidate the cached total")
}

func TestServicePatientOutstanding(t *testing.T) {
	st := store.New(model.DefaultState())
	svc := NewService(st)

	p := &model.Patient{ID: uuid.New(), BillingEntries: []*model.BillingEntry{
		{Amount: 30, Status: model.BillingStatusPending},
		{Amount: 99, Status: model.BillingStatusPaid},
	}}
	st.Dispatch(store.AddPatient{Patient: p})

	got, err := svc.PatientOutstandingBalance(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, got)

	_, err = svc.PatientOutstandingBalance(uuid.New())
	assert.Error(t, err)
}
