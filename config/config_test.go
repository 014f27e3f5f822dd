package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
engine:
  weekly_budget: 4
  horizon_days: 7
  slots_per_day: 3
  base_threshold: 18
state:
  path: /tmp/ps-state.json
metrics:
  sinks:
    - type: nop
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Engine.WeeklyBudget)
	require.Equal(t, 3, cfg.Engine.SlotsPerDay)
	require.Equal(t, 18.0, cfg.Engine.BaseThreshold)
	require.Equal(t, "/tmp/ps-state.json", cfg.State.Path)
	require.Len(t, cfg.Metrics.Sinks, 1)
	// Defaults fill the rest.
	require.Equal(t, 1.0, cfg.Engine.RiskAversion)
	require.Equal(t, 13, cfg.Engine.Bandit.Features)
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"engine":{"weekly_budget":2,"horizon_days":7,"slots_per_day":1}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Engine.WeeklyBudget)
	require.Equal(t, "pitchstream-state.json", cfg.State.Path)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "config.toml", "x = 1")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadInvalidEngine(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
engine:
  horizon_days: 1
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
engine:
  weekly_budget: 4
`)
	t.Setenv("PS_ENGINE__WEEKLY_BUDGET", "6")
	t.Setenv("PS_STATE__PATH", "/tmp/override-state.json")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 6, cfg.Engine.WeeklyBudget)
	require.Equal(t, "/tmp/override-state.json", cfg.State.Path)
}
