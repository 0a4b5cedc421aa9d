package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentassist/dentsync/internal/model"
	"github.com/dentassist/dentsync/internal/store"
	"github.com/dentassist/dentsync/pkg/logger"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	fs := NewFileStore(path)

	state := model.DefaultState()
	state.ClinicName = "Smile Studio"
	state.Patients = append(state.Patients, &model.Patient{
		ID:   uuid.New(),
		Name: "Asha Rao",
		DentalChart: map[string]model.ToothRecord{
			"14": {Condition: model.ToothConditionRootCanal, Notes: "post op review"},
		},
	})

	require.NoError(t, fs.Save(context.Background(), state))

	loaded, err := fs.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Smile Studio", loaded.ClinicName)
	require.Len(t, loaded.Patients, 1)
	assert.Equal(t, state.Patients[0].ID, loaded.Patients[0].ID)
	assert.Equal(t, model.ToothConditionRootCanal, loaded.Patients[0].DentalChart["14"].Condition)
}

func TestFileStoreMissingFileYieldsDefaults(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	state, err := fs.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultState().ClinicName, state.ClinicName)
	assert.Empty(t, state.Patients)
}

func TestDecodePartialBlobMergesOntoDefaults(t *testing.T) {
	state, err := Decode([]byte(`{"clinicName":"Partial Clinic"}`))
	require.NoError(t, err)

	assert.Equal(t, "Partial Clinic", state.ClinicName)
	assert.NotNil(t, state.Patients)
	assert.NotNil(t, state.Appointments)
	assert.NotNil(t, state.Transactions)
	assert.NotNil(t, state.Shortcuts)
}

func TestDecodeCorruptBlobFails(t *testing.T) {
	_, err := Decode([]byte(`{"clinicName":`))
	assert.Error(t, err)
}

type failingSnapshotter struct {
	saves int
}

func (f *failingSnapshotter) Load(context.Context) (model.AppState, error) {
	return model.DefaultState(), nil
}

func (f *failingSnapshotter) Save(context.Context, model.AppState) error {
	f.saves++
	return errors.New("disk full")
}

func TestPersisterSwallowsSaveErrors(t *testing.T) {
	snap := &failingSnapshotter{}
	log := logger.NewLogger(&logger.Config{Output: os.Stderr, Level: logger.ErrorLevel, TimeFormat: time.RFC3339})

	st := store.New(model.DefaultState())
	st.Subscribe(NewPersister(snap, log, nil).Listener())

	// Dispatch must succeed even though every save fails.
	next := st.Dispatch(store.UpdateClinicSettings{ClinicName: "Unsaved"})

	assert.Equal(t, "Unsaved", next.ClinicName)
	assert.Equal(t, "Unsaved", st.State().ClinicName)
	assert.Equal(t, 1, snap.saves)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ms := NewMemoryStore()

	state := model.DefaultState()
	state.ClinicName = "In Memory"
	require.NoError(t, ms.Save(context.Background(), state))

	loaded, err := ms.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "In Memory", loaded.ClinicName)
}
