// Package store persists the learned state between runs: bandit parameters,
// per-pitcher beliefs, pickup value history and the in-flight week. One JSON
// file, written atomically so a crash never leaves a torn snapshot.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/kilianp07/pitchstream/core/bandit"
	"github.com/kilianp07/pitchstream/core/horizon"
	"github.com/kilianp07/pitchstream/core/logger"
	"github.com/kilianp07/pitchstream/core/projection"
)

// SchemaVersion is bumped on incompatible layout changes.
const SchemaVersion = 1

// Snapshot is everything worth keeping across process restarts.
type Snapshot struct {
	Version int       `json:"version"`
	SavedAt time.Time `json:"saved_at"`

	Bandit        bandit.Snapshot              `json:"bandit"`
	Beliefs       map[string]projection.Belief `json:"beliefs"`
	PickupHistory []float64                    `json:"pickup_history"`
	// Week is the in-flight horizon state, nil between weeks.
	Week *horizon.State `json:"week,omitempty"`
}

// FileStore reads and writes snapshots at a fixed path.
type FileStore struct {
	path string
	log  logger.Logger
}

// NewFileStore creates a store for the given path. A nil logger is replaced
// with a nop.
func NewFileStore(path string, log logger.Logger) *FileStore {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &FileStore{path: path, log: log}
}

// Save writes the snapshot atomically: temp file in the same directory, fsync,
// rename over the target.
func (s *FileStore) Save(snap Snapshot) error {
	snap.Version = SchemaVersion
	snap.SavedAt = time.Now().UTC()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("store: create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store: sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: rename: %w", err)
	}
	return nil
}

// Load reads the persisted snapshot. A missing, unreadable or corrupt file
// degrades to a fresh snapshot with found=false; persistence problems never
// abort a run. Unknown JSON fields are ignored for forward compatibility.
func (s *FileStore) Load() (Snapshot, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warnf("state file unreadable, starting fresh: %v", err)
		}
		return Snapshot{}, false, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warnf("state file corrupt, starting fresh: %v", err)
		return Snapshot{}, false, nil
	}
	if snap.Version > SchemaVersion {
		s.log.Warnf("state file schema v%d newer than v%d, starting fresh", snap.Version, SchemaVersion)
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }
