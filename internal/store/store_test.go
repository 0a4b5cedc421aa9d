package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentassist/dentsync/internal/model"
)

func TestStoreDispatchNotifiesSubscribers(t *testing.T) {
	st := New(model.DefaultState())

	var got []model.AppState
	unsubscribe := st.Subscribe(func(s model.AppState) {
		got = append(got, s)
	})

	st.Dispatch(UpdateClinicSettings{ClinicName: "A"})
	st.Dispatch(UpdateClinicSettings{ClinicName: "B"})

	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].ClinicName)
	assert.Equal(t, "B", got[1].ClinicName)
	assert.Equal(t, uint64(2), st.Version())

	unsubscribe()
	st.Dispatch(UpdateClinicSettings{ClinicName: "C"})
	assert.Len(t, got, 2, "unsubscribed listener must not fire")
	assert.Equal(t, "C", st.State().ClinicName)
}

func TestStoreSerializesDispatch(t *testing.T) {
	st := New(model.DefaultState())

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			st.Dispatch(AddPatient{Patient: testPatient()})
		}()
	}
	wg.Wait()

	assert.Len(t, st.State().Patients, n)
	assert.Equal(t, uint64(n), st.Version())
}

func TestStoreStateVersionIsConsistent(t *testing.T) {
	st := New(model.DefaultState())

	// Each dispatch adds exactly one patient, so a consistent read always
	// sees len(patients) == version. Reads racing the dispatches would
	// observe a mismatch if state and version came from separate locks.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			st.Dispatch(AddPatient{Patient: testPatient()})
		}
	}()

	for {
		state, version := st.StateVersion()
		assert.Equal(t, version, uint64(len(state.Patients)))
		select {
		case <-done:
			state, version = st.StateVersion()
			require.Equal(t, uint64(50), version)
			require.Len(t, state.Patients, 50)
			return
		default:
		}
	}
}

func TestStoreReplaceSkipsListeners(t *testing.T) {
	st := New(model.DefaultState())

	fired := false
	st.Subscribe(func(model.AppState) { fired = true })

	st.Replace(model.AppState{ClinicName: "Reloaded"})

	assert.False(t, fired)
	assert.Equal(t, "Reloaded", st.State().ClinicName)
}
