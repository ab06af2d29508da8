package main

import (
	"fmt"
	"os"

	"github.com/Garsondee/Zone-Sense/internal/config"
	"github.com/Garsondee/Zone-Sense/internal/data"
	"github.com/Garsondee/Zone-Sense/internal/game"
	"github.com/Garsondee/Zone-Sense/internal/logging"
	"github.com/Garsondee/Zone-Sense/internal/viewer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	spectate bool
	zoneX    int
	zoneY    int
	seed     int64
)

var rootCmd = &cobra.Command{
	Use:          "game",
	Short:        "Play a zone, or watch the AI play it with --spectate",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			settings.World.Seed = seed
		}
		log := logging.New(settings.Log.Level, os.Stderr)
		bundle, err := data.Load(settings.Data.Dir)
		if err != nil {
			return fmt.Errorf("load data: %w", err)
		}

		sim, err := game.NewSim(
			game.WithSeed(settings.World.Seed),
			game.WithZoneSize(settings.World.ZoneWidth, settings.World.ZoneHeight),
			game.WithZoneCoord(zoneX, zoneY),
			game.WithTemplates(bundle.Templates),
			game.WithSpawnTables(bundle.SpawnTables),
			game.WithLogger(log),
			game.WithWeather(settings.StartWeather()),
			game.WithAvoidAnomalies(settings.Sim.Squads.AvoidAnomalies),
			game.WithPlayer(spectate),
		)
		if err != nil {
			return err
		}

		v := viewer.New(sim, viewer.WithLogger(log))
		w, h := v.Size()
		ebiten.SetWindowTitle(fmt.Sprintf("Zone Sense - zone (%d,%d) %s", zoneX, zoneY, sim.Zone().Type))
		ebiten.SetWindowSize(w, h)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		return ebiten.RunGame(v)
	},
}

func main() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default ./zonesim.yaml)")
	rootCmd.Flags().BoolVar(&spectate, "spectate", false, "let the AI drive the player")
	rootCmd.Flags().IntVar(&zoneX, "zone-x", 0, "zone grid X")
	rootCmd.Flags().IntVar(&zoneY, "zone-y", 0, "zone grid Y")
	rootCmd.Flags().Int64Var(&seed, "seed", 1, "world seed (overrides config)")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
