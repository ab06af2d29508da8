package main

import (
	"fmt"

	"github.com/Garsondee/Zone-Sense/internal/game"
	"github.com/Garsondee/Zone-Sense/internal/recorder"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless simulations and print run reports",
	Long: `Runs --runs simulations of one zone, each with seed + i*seed-step, for up
to --ticks ticks. A run stops early once at most one faction is left standing.
Per-run reports and an aggregate are printed; --record stores them in SQLite.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		zx, _ := cmd.Flags().GetInt("zone-x")
		zy, _ := cmd.Flags().GetInt("zone-y")
		verbose, _ := cmd.Flags().GetBool("verbose")
		quiet, _ := cmd.Flags().GetBool("quiet")

		var rec *recorder.Recorder
		if settings.Recorder.Path != "" {
			r, err := recorder.Open(settings.Recorder.Path, logger)
			if err != nil {
				return err
			}
			defer r.Close()
			rec = r
		}

		out := cmd.OutOrStdout()
		sc := settings.Sim
		bar := progressbar.NewOptions(sc.Runs,
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("simulating"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		agg := game.NewAggregate()
		for i := 0; i < sc.Runs; i++ {
			seed := settings.World.Seed + int64(i)*sc.SeedStep
			opts := []game.SimOption{
				game.WithSeed(seed),
				game.WithZoneSize(settings.World.ZoneWidth, settings.World.ZoneHeight),
				game.WithZoneCoord(zx, zy),
				game.WithTemplates(bundle.Templates),
				game.WithSpawnTables(bundle.SpawnTables),
				game.WithLogger(logger),
				game.WithVerbose(verbose),
				game.WithWeather(settings.StartWeather()),
				game.WithAvoidAnomalies(sc.Squads.AvoidAnomalies),
				game.WithAutoSquads(sc.Squads.Auto),
				game.WithNotifier(game.LogNotifier{Log: logger}),
			}
			if sc.Player {
				opts = append(opts, game.WithPlayer(true))
			}
			s, err := game.NewSim(opts...)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			s.RunUntil(settled, sc.Ticks)
			rep := s.Report()
			agg.Add(rep)

			if rec != nil {
				if _, err := rec.SaveRun(rep, s.SimLog.Entries()); err != nil {
					return err
				}
			}
			_ = bar.Add(1)
			if !quiet {
				_ = bar.Clear()
				fmt.Fprintln(out, headingStyle.Render(fmt.Sprintf("run %d", i+1)))
				fmt.Fprint(out, rep.String())
				if verbose {
					fmt.Fprint(out, s.SimLog.Summary(s.CurrentTick(), s.Level.Actors, s.Squads))
				}
			}
		}
		_ = bar.Finish()

		fmt.Fprintln(out, headingStyle.Render("aggregate"))
		fmt.Fprint(out, agg.String())
		logger.Info().Int("runs", agg.Runs).Int("kills", agg.Kills).Msg("simulation complete")
		return nil
	},
}

// settled stops a run once fewer than two factions have living members.
func settled(s *game.Sim) bool {
	standing := 0
	for _, f := range s.Factions() {
		if s.Level.Alive(f) > 0 {
			standing++
		}
	}
	return standing < 2
}

func init() {
	simulateCmd.Flags().Int("runs", 1, "number of runs")
	simulateCmd.Flags().Int("ticks", 1000, "maximum ticks per run")
	simulateCmd.Flags().Int64("seed-step", 1, "seed increment between runs")
	simulateCmd.Flags().String("weather", "clear", "starting weather")
	simulateCmd.Flags().Bool("player", false, "add an AI-driven player")
	simulateCmd.Flags().Bool("avoid-anomalies", false, "squads treat nearby anomalies as danger zones")
	simulateCmd.Flags().Int("zone-x", 0, "zone grid X")
	simulateCmd.Flags().Int("zone-y", 0, "zone grid Y")
	simulateCmd.Flags().Bool("verbose", false, "record per-tick positions and print the event summary")
	simulateCmd.Flags().Bool("quiet", false, "print only the aggregate")

	bindFlag(simulateCmd, "sim.runs", "runs")
	bindFlag(simulateCmd, "sim.ticks", "ticks")
	bindFlag(simulateCmd, "sim.seed_step", "seed-step")
	bindFlag(simulateCmd, "sim.weather", "weather")
	bindFlag(simulateCmd, "sim.player", "player")
	bindFlag(simulateCmd, "sim.squads.avoid_anomalies", "avoid-anomalies")
	rootCmd.AddCommand(simulateCmd)
}
