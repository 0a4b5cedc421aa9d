package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dentassist/dentsync/internal/model"
)

// Key is the fixed storage key the state blob lives under, regardless of
// backend.
const Key = "dentsync_state"

// Snapshotter persists the whole AppState as a single JSON blob. Load is
// called once at startup; Save after every transition. Save errors are
// reported to the caller, who decides whether to ignore them — the in-memory
// state stays authoritative either way.
type Snapshotter interface {
	Load(ctx context.Context) (model.AppState, error)
	Save(ctx context.Context, state model.AppState) error
}

// Decode unmarshals a stored blob onto the default state, so fields absent
// from an older or partial snapshot keep their defaults.
func Decode(data []byte) (model.AppState, error) {
	state := model.DefaultState()
	if len(data) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return model.DefaultState(), fmt.Errorf("failed to decode snapshot: %w", err)
	}
	normalize(&state)
	return state, nil
}

// Encode renders the canonical blob layout.
func Encode(state model.AppState) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// normalize replaces nil collections from sparse snapshots with empty ones so
// downstream code never branches on nil.
func normalize(s *model.AppState) {
	if s.Patients == nil {
		s.Patients = []*model.Patient{}
	}
	if s.Appointments == nil {
		s.Appointments = []*model.Appointment{}
	}
	if s.Transactions == nil {
		s.Transactions = []*model.FinancialTransaction{}
	}
	if s.Shortcuts == nil {
		s.Shortcuts = []*model.Shortcut{}
	}
}
