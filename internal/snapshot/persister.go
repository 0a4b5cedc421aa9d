package snapshot

import (
	"context"
	"time"

	"github.com/dentassist/dentsync/internal/model"
	"github.com/dentassist/dentsync/internal/store"
	"github.com/dentassist/dentsync/pkg/logger"
	"github.com/dentassist/dentsync/pkg/metrics"
)

// Persister saves the state after every transition. Persistence is
// best-effort: a failed save is logged and counted, and the session continues
// with the in-memory state as the authority.
type Persister struct {
	snap    Snapshotter
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewPersister(snap Snapshotter, log *logger.Logger, m *metrics.Metrics) *Persister {
	return &Persister{snap: snap, logger: log, metrics: m}
}

// Listener returns the store listener that persists each new state.
func (p *Persister) Listener() store.Listener {
	return func(state model.AppState) {
		start := time.Now()
		err := p.snap.Save(context.Background(), state)
		if p.metrics != nil {
			p.metrics.SnapshotSaveLatency.Observe(time.Since(start).Seconds())
			if err != nil {
				p.metrics.SnapshotSaves.WithLabelValues("error").Inc()
			} else {
				p.metrics.SnapshotSaves.WithLabelValues("ok").Inc()
			}
		}
		if err != nil {
			p.logger.Error(err, "snapshot save failed, continuing with in-memory state")
		}
	}
}
