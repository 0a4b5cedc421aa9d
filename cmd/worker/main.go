package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dentassist/dentsync/config"
	"github.com/dentassist/dentsync/internal/snapshot"
	"github.com/dentassist/dentsync/internal/store"
	"github.com/dentassist/dentsync/internal/worker"
	"github.com/dentassist/dentsync/pkg/logger"
)

// The backup worker runs next to the API against the same snapshot backend.
// It reloads the blob each cycle, so backups reflect whatever the API last
// persisted.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if !cfg.Snapshot.Backup.Enabled {
		log.Fatal().Msg("snapshot backups are disabled in config")
	}

	appLogger := logger.NewLogger(nil)

	snap, err := newSnapshotter(cfg.Snapshot)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open snapshot backend")
	}

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	initial, err := snap.Load(loadCtx)
	cancelLoad()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load state snapshot")
	}

	st := store.New(initial)

	w := worker.NewSnapshotBackupWorker(
		st,
		cfg.Snapshot.Backup.Dir,
		cfg.Snapshot.Backup.Interval,
		cfg.Snapshot.Backup.Keep,
		appLogger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
	}()

	go refreshLoop(ctx, snap, st, cfg.Snapshot.Backup.Interval, appLogger)

	log.Info().
		Str("dir", cfg.Snapshot.Backup.Dir).
		Dur("interval", cfg.Snapshot.Backup.Interval).
		Msg("starting snapshot backup worker")
	w.Start(ctx)
}

// refreshLoop re-reads the persisted blob so the in-memory copy tracks the
// API's writes between backup runs.
func refreshLoop(ctx context.Context, snap snapshot.Snapshotter, st *store.Store, interval time.Duration, appLogger *logger.Logger) {
	ticker := time.NewTicker(interval / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			state, err := snap.Load(ctx)
			if err != nil {
				appLogger.Error(err, "snapshot reload failed")
				continue
			}
			st.Replace(state)
		}
	}
}

func newSnapshotter(cfg config.SnapshotConfig) (snapshot.Snapshotter, error) {
	switch cfg.Backend {
	case "file", "":
		return snapshot.NewFileStore(cfg.Path), nil
	case "redis":
		return snapshot.NewRedisStore(cfg.RedisURL)
	case "postgres":
		return snapshot.NewPostgresStore(cfg.Postgres)
	default:
		return snapshot.NewMemoryStore(), nil
	}
}
