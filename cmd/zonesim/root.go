package main

import (
	"fmt"
	"os"

	"github.com/Garsondee/Zone-Sense/internal/config"
	"github.com/Garsondee/Zone-Sense/internal/data"
	"github.com/Garsondee/Zone-Sense/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	v        = config.New()
	settings config.Settings
	logger   = zerolog.Nop()
	bundle   *data.Bundle
)

var rootCmd = &cobra.Command{
	Use:   "zonesim",
	Short: "Procedural zone generator and tactical AI simulator",
	Long: `zonesim builds tile zones from a world seed and runs the stalker AI,
squads, weather and combat over them without a window.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ReadFile(v, cfgFile); err != nil {
			return err
		}
		s, err := config.Decode(v)
		if err != nil {
			return err
		}
		settings = s
		logger = logging.New(s.Log.Level, os.Stderr)

		b, err := data.Load(s.Data.Dir)
		if err != nil {
			return fmt.Errorf("load data: %w", err)
		}
		bundle = b
		logger.Debug().Int("templates", len(b.Templates)).Str("dir", s.Data.Dir).Msg("data loaded")
		return nil
	},
}

// bindFlag ties a flag to a config key so the flag wins over file and env.
func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind %s: %v", flag, err))
	}
}

func bindPersistent(key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind %s: %v", flag, err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./zonesim.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("data-dir", "", "directory with templates.yaml / spawn_tables.yaml overrides")
	rootCmd.PersistentFlags().Int64("seed", 1, "world seed")
	rootCmd.PersistentFlags().Int("zone-width", 100, "zone width in tiles")
	rootCmd.PersistentFlags().Int("zone-height", 100, "zone height in tiles")
	rootCmd.PersistentFlags().String("record", "", "record results to this SQLite file")

	bindPersistent("log.level", "log-level")
	bindPersistent("data.dir", "data-dir")
	bindPersistent("world.seed", "seed")
	bindPersistent("world.zone_width", "zone-width")
	bindPersistent("world.zone_height", "zone-height")
	bindPersistent("recorder.path", "record")
}

