package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dentassist/dentsync/internal/snapshot"
	"github.com/dentassist/dentsync/internal/store"
	"github.com/dentassist/dentsync/pkg/logger"
)

const backupPrefix = "state-"

// SnapshotBackupWorker periodically writes a timestamped copy of the state to
// the backup directory and prunes the oldest copies beyond the retention
// count. A failing run is logged and the loop continues.
type SnapshotBackupWorker struct {
	store    *store.Store
	dir      string
	interval time.Duration
	keep     int
	logger   *logger.Logger
}

func NewSnapshotBackupWorker(st *store.Store, dir string, interval time.Duration, keep int, log *logger.Logger) *SnapshotBackupWorker {
	return &SnapshotBackupWorker{
		store:    st,
		dir:      dir,
		interval: interval,
		keep:     keep,
		logger:   log,
	}
}

func (w *SnapshotBackupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.backup(); err != nil {
				w.logger.Error(err, "snapshot backup failed")
			}
		}
	}
}

func (w *SnapshotBackupWorker) backup() error {
	data, err := snapshot.Encode(w.store.State())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup dir: %w", err)
	}

	name := backupPrefix + time.Now().UTC().Format("20060102T150405") + ".json"
	if err := os.WriteFile(filepath.Join(w.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	return w.prune()
}

func (w *SnapshotBackupWorker) prune() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	var backups []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), backupPrefix) {
			backups = append(backups, e.Name())
		}
	}
	if len(backups) <= w.keep {
		return nil
	}

	// Timestamped names sort chronologically.
	sort.Strings(backups)
	for _, name := range backups[:len(backups)-w.keep] {
		if err := os.Remove(filepath.Join(w.dir, name)); err != nil {
			return fmt.Errorf("failed to prune backup: %w", err)
		}
	}
	return nil
}
