// Package app assembles the engine from configuration and owns its persisted
// state.
package app

import (
	"fmt"

	"github.com/kilianp07/pitchstream/config"
	"github.com/kilianp07/pitchstream/core/engine"
	"github.com/kilianp07/pitchstream/core/feed"
	coremetrics "github.com/kilianp07/pitchstream/core/metrics"
	"github.com/kilianp07/pitchstream/core/store"
	"github.com/kilianp07/pitchstream/infra/logger"
	_ "github.com/kilianp07/pitchstream/infra/metrics" // register built-in sinks
)

// Service wires the engine, its metrics sinks and the state store together.
type Service struct {
	Engine *engine.Engine
	Store  *store.FileStore
	log    logger.Logger
}

// New creates a Service from the configuration and restores any persisted
// learned state.
func New(cfg *config.Config, oracle feed.AvailabilityOracle) (*Service, error) {
	logg := logger.New("service")

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sinks: %w", err)
	}

	eng, err := engine.New(cfg.Engine, oracle, sink, logg)
	if err != nil {
		return nil, err
	}

	st := store.NewFileStore(cfg.State.Path, logg)
	snap, found, err := st.Load()
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if found {
		if err := eng.Import(snap); err != nil {
			return nil, fmt.Errorf("import state: %w", err)
		}
		logg.Infof("restored state from %s (saved %s)", st.Path(), snap.SavedAt.Format("2006-01-02 15:04"))
	}

	return &Service{Engine: eng, Store: st, log: logg}, nil
}

// Save persists the current learned state.
func (s *Service) Save() error {
	if err := s.Store.Save(s.Engine.Export()); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// Close persists the state and shuts the engine down.
func (s *Service) Close() error {
	err := s.Save()
	s.Engine.Close()
	return err
}
