package worker

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentassist/dentsync/internal/model"
	"github.com/dentassist/dentsync/internal/snapshot"
	"github.com/dentassist/dentsync/internal/store"
	"github.com/dentassist/dentsync/pkg/logger"
)

func testWorker(t *testing.T, dir string, keep int) (*SnapshotBackupWorker, *store.Store) {
	t.Helper()
	st := store.New(model.DefaultState())
	log := logger.NewLogger(&logger.Config{Level: logger.FatalLevel})
	return NewSnapshotBackupWorker(st, dir, time.Hour, keep, log), st
}

func TestBackupWritesDecodableState(t *testing.T) {
	dir := t.TempDir()
	w, st := testWorker(t, dir, 5)

	st.Dispatch(store.UpdateClinicSettings{ClinicName: "Smile Studio"})
	require.NoError(t, w.backup())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)

	state, err := snapshot.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "Smile Studio", state.ClinicName)
}

func TestPruneKeepsNewestBackups(t *testing.T) {
	dir := t.TempDir()
	w, _ := testWorker(t, dir, 2)

	names := []string{
		backupPrefix + "20260801T000000.json",
		backupPrefix + "20260802T000000.json",
		backupPrefix + "20260803T000000.json",
		"unrelated.txt",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}

	require.NoError(t, w.prune())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var kept []string
	for _, e := range entries {
		kept = append(kept, e.Name())
	}
	assert.ElementsMatch(t, []string{
		backupPrefix + "20260802T000000.json",
		backupPrefix + "20260803T000000.json",
		"unrelated.txt",
	}, kept)
}
