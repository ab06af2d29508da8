package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Garsondee/Zone-Sense/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zonesim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	path := writeConfig(t, `
world:
  seed: 99
  zone_width: 60
sim:
  ticks: 250
  weather: rain
  squads:
    avoid_anomalies: true
log:
  level: debug
recorder:
  path: runs.sqlite
`)
	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(99), s.World.Seed)
	assert.Equal(t, 60, s.World.ZoneWidth)
	assert.Equal(t, 100, s.World.ZoneHeight)
	assert.Equal(t, 250, s.Sim.Ticks)
	assert.True(t, s.Sim.Squads.AvoidAnomalies)
	assert.True(t, s.Sim.Squads.Auto)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "runs.sqlite", s.Recorder.Path)
	assert.Equal(t, game.WeatherRain, s.StartWeather())
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, int64(1), s.World.Seed)
	assert.Equal(t, 100, s.World.ZoneWidth)
	assert.Equal(t, 1000, s.Sim.Ticks)
	assert.Equal(t, 1, s.Sim.Runs)
	assert.Equal(t, int64(1), s.Sim.SeedStep)
	assert.Equal(t, "info", s.Log.Level)
	assert.Empty(t, s.Recorder.Path)
	assert.Equal(t, game.WeatherClear, s.StartWeather())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/zonesim.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ZONESIM_SIM_TICKS", "42")
	t.Setenv("ZONESIM_LOG_LEVEL", "warn")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 42, s.Sim.Ticks)
	assert.Equal(t, "warn", s.Log.Level)
}

func TestValidate(t *testing.T) {
	path := writeConfig(t, "world:\n  zone_width: 0\n")
	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalid)

	path = writeConfig(t, "world:\n  zone_width: 4\n")
	_, err = Load(path)
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "minimum")

	path = writeConfig(t, "world:\n  zone_width: 16\n  zone_height: 16\n")
	_, err = Load(path)
	require.NoError(t, err)

	path = writeConfig(t, "sim:\n  ticks: -5\n")
	_, err = Load(path)
	require.ErrorIs(t, err, ErrInvalid)

	path = writeConfig(t, "sim:\n  weather: blizzard\n")
	_, err = Load(path)
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "blizzard")
}
