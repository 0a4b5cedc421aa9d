package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dentassist/dentsync/internal/model"
)

// FileStore keeps the snapshot in a single JSON file. Writes go through a
// temp file and rename so a crash mid-save never leaves a torn blob.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load(_ context.Context) (model.AppState, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return model.DefaultState(), nil
	}
	if err != nil {
		return model.DefaultState(), fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return Decode(data)
}

func (f *FileStore) Save(_ context.Context, state model.AppState) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
