package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Garsondee/Zone-Sense/internal/recorder"
	"github.com/Garsondee/Zone-Sense/internal/world"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#3C5A3C")).
			Padding(0, 1)

	statStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	anomalyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF7814"))

	mapBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#41653F"))
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate zones around the origin and print their stats",
	Long: `Generates every zone within --radius of (0,0) for the world seed and
prints a per-zone summary. --ascii renders each zone as coloured glyphs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		radius, _ := cmd.Flags().GetInt("radius")
		ascii, _ := cmd.Flags().GetBool("ascii")
		copyOut, _ := cmd.Flags().GetBool("copy")
		if radius < 0 {
			return fmt.Errorf("radius must be non-negative, got %d", radius)
		}

		gen := world.NewGenerator(settings.World.Seed,
			world.WithZoneSize(settings.World.ZoneWidth, settings.World.ZoneHeight),
			world.WithSpawnTables(bundle.SpawnTables),
			world.WithLogger(logger))

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
		var dump strings.Builder
		// Stitching a later zone carves into its earlier neighbours, so the
		// whole block is generated before anything is printed or saved.
		var zones []*world.Zone
		for y := -radius; y <= radius; y++ {
			for x := -radius; x <= radius; x++ {
				zones = append(zones, gen.Zone(x, y))
			}
		}
		for _, z := range zones {
			printZone(out, z)
			if ascii {
				fmt.Fprintln(out, mapBoxStyle.Render(colourASCII(z)))
			}
			if copyOut {
				fmt.Fprintf(&dump, "zone (%d,%d) %s\n%s\n", z.Coord.X, z.Coord.Y, z.Type, z.ASCII(nil))
			}
			if rec != nil {
				if err := rec.SaveZone(settings.World.Seed, z); err != nil {
					return err
				}
			}
		}
		logger.Info().Int64("seed", settings.World.Seed).Int("zones", gen.Generated()).Msg("generation complete")

		if copyOut {
			if err := clipboard.WriteAll(dump.String()); err != nil {
				return fmt.Errorf("copy to clipboard: %w", err)
			}
			fmt.Fprintln(out, statStyle.Render("ASCII copied to clipboard"))
		}
		return nil
	},
}

func printZone(w io.Writer, z *world.Zone) {
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("zone (%d,%d)  %s", z.Coord.X, z.Coord.Y, z.Type)))

	total := z.Width * z.Height
	walk := z.WalkableCount()
	fmt.Fprintln(w, statStyle.Render(fmt.Sprintf("  %dx%d  walkable %d (%.0f%%)  anomalies %d  spawns %d",
		z.Width, z.Height, walk, 100*float64(walk)/float64(total), len(z.Anomalies), len(z.Spawns))))

	kinds := map[string]int{}
	for _, s := range z.Structures {
		kinds[s.Kind]++
	}
	if len(kinds) > 0 {
		fmt.Fprintln(w, statStyle.Render("  structures: "+countList(kinds)))
	}
	spawns := map[string]int{}
	for _, s := range z.Spawns {
		spawns[s.Template]++
	}
	if len(spawns) > 0 {
		fmt.Fprintln(w, statStyle.Render("  spawns: "+countList(spawns)))
	}
	var edges []string
	for _, d := range world.Directions {
		if p, ok := z.Connections[d]; ok {
			edges = append(edges, fmt.Sprintf("%s@(%d,%d)", d, p.X, p.Y))
		}
	}
	fmt.Fprintln(w, statStyle.Render("  exits: "+strings.Join(edges, " ")))
}

func countList(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s×%d", k, m[k])
	}
	return strings.Join(parts, " ")
}

// colourASCII renders z one glyph at a time in its terrain colour. Runs of
// the same terrain share one styled span.
func colourASCII(z *world.Zone) string {
	var sb strings.Builder
	for y := 0; y < z.Height; y++ {
		var run strings.Builder
		var cur lipgloss.Style
		curKey := ""
		flush := func() {
			if run.Len() > 0 {
				sb.WriteString(cur.Render(run.String()))
				run.Reset()
			}
		}
		for x := 0; x < z.Width; x++ {
			t := z.Tiles[y*z.Width+x]
			glyph := world.Glyph(t.Terrain)
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(terrainHex(t.Terrain)))
			key := t.Terrain.String()
			if t.Props.Anomaly != world.AnomalyNone {
				glyph, style, key = 'A', anomalyStyle, "anomaly"
			}
			if key != curKey {
				flush()
				cur, curKey = style, key
			}
			run.WriteRune(glyph)
		}
		flush()
		if y < z.Height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// terrainHex brightens the viewer colour so it reads on a dark terminal.
func terrainHex(t world.Terrain) string {
	r, g, b := world.TerrainColour(t)
	lift := func(c uint8) uint8 { return uint8(min(255, int(c)*2+40)) }
	return fmt.Sprintf("#%02X%02X%02X", lift(r), lift(g), lift(b))
}

func init() {
	generateCmd.Flags().Int("radius", 0, "generate zones within this Chebyshev radius of (0,0)")
	generateCmd.Flags().Bool("ascii", false, "print each zone as coloured ASCII")
	generateCmd.Flags().Bool("copy", false, "copy the plain ASCII of every zone to the clipboard")
	rootCmd.AddCommand(generateCmd)
}
