// Package config loads zonesim settings from defaults, an optional YAML
// file and ZONESIM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Garsondee/Zone-Sense/internal/game"
	"github.com/Garsondee/Zone-Sense/internal/world"
	"github.com/spf13/viper"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// FileName is the config file looked up when no explicit path is given.
const FileName = "zonesim"

// WorldSettings control zone generation.
type WorldSettings struct {
	Seed       int64 `mapstructure:"seed"`
	ZoneWidth  int   `mapstructure:"zone_width"`
	ZoneHeight int   `mapstructure:"zone_height"`
}

// SquadSettings tune squad behaviour.
type SquadSettings struct {
	AvoidAnomalies bool `mapstructure:"avoid_anomalies"`
	Auto           bool `mapstructure:"auto"`
}

// SimSettings control headless runs.
type SimSettings struct {
	Ticks    int           `mapstructure:"ticks"`
	Runs     int           `mapstructure:"runs"`
	SeedStep int64         `mapstructure:"seed_step"`
	Weather  string        `mapstructure:"weather"`
	Player   bool          `mapstructure:"player"`
	Squads   SquadSettings `mapstructure:"squads"`
}

type LogSettings struct {
	Level string `mapstructure:"level"`
}

type RecorderSettings struct {
	Path string `mapstructure:"path"`
}

type DataSettings struct {
	Dir string `mapstructure:"dir"`
}

// Settings is the full zonesim configuration.
type Settings struct {
	World    WorldSettings    `mapstructure:"world"`
	Sim      SimSettings      `mapstructure:"sim"`
	Log      LogSettings      `mapstructure:"log"`
	Recorder RecorderSettings `mapstructure:"recorder"`
	Data     DataSettings     `mapstructure:"data"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("world.seed", 1)
	v.SetDefault("world.zone_width", 100)
	v.SetDefault("world.zone_height", 100)

	v.SetDefault("sim.ticks", 1000)
	v.SetDefault("sim.runs", 1)
	v.SetDefault("sim.seed_step", 1)
	v.SetDefault("sim.weather", "clear")
	v.SetDefault("sim.player", false)
	v.SetDefault("sim.squads.avoid_anomalies", false)
	v.SetDefault("sim.squads.auto", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("recorder.path", "")
	v.SetDefault("data.dir", "")
}

// New returns a viper instance with defaults and environment binding but
// no file read. The CLI binds its flags onto it before calling Decode.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("ZONESIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads settings. An explicit path must exist; with an empty path
// zonesim.yaml is looked up in the working directory and skipped when
// absent.
func Load(path string) (Settings, error) {
	v := New()
	if err := ReadFile(v, path); err != nil {
		return Settings{}, err
	}
	return Decode(v)
}

// ReadFile merges the config file at path (or the default lookup) into v.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
		return nil
	}
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if errors.As(err, &nf) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Decode unmarshals v into Settings and validates the result.
func Decode(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects settings the generator or the sim cannot run with.
func (s Settings) Validate() error {
	switch {
	case s.World.ZoneWidth < world.MinZoneSize || s.World.ZoneHeight < world.MinZoneSize:
		return fmt.Errorf("%w: zone size %dx%d is below the %d tile minimum",
			ErrInvalid, s.World.ZoneWidth, s.World.ZoneHeight, world.MinZoneSize)
	case s.Sim.Ticks <= 0:
		return fmt.Errorf("%w: sim.ticks must be positive, got %d", ErrInvalid, s.Sim.Ticks)
	case s.Sim.Runs <= 0:
		return fmt.Errorf("%w: sim.runs must be positive, got %d", ErrInvalid, s.Sim.Runs)
	}
	if _, ok := game.ParseWeatherType(s.Sim.Weather); !ok {
		return fmt.Errorf("%w: unknown weather %q", ErrInvalid, s.Sim.Weather)
	}
	return nil
}

// StartWeather returns the configured starting weather.
func (s Settings) StartWeather() game.WeatherType {
	w, _ := game.ParseWeatherType(s.Sim.Weather)
	return w
}
