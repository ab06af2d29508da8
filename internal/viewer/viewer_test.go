package viewer

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/Garsondee/Zone-Sense/internal/game"
	"github.com/Garsondee/Zone-Sense/internal/world"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

func testSim(t *testing.T, humanPlayer bool) *game.Sim {
	t.Helper()
	z := world.NewZone(world.Coord{}, world.ZoneWilderness, 12, 8, world.TerrainGrass)
	opts := []game.SimOption{game.WithZone(z)}
	if humanPlayer {
		opts = append(opts, game.WithPlayer(false))
	}
	bandit := game.NewActor("b1", "Bandit", "bandit", "bandits", 2, 2, 80)
	opts = append(opts, game.WithActor(bandit))
	s, err := game.NewSim(opts...)
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	return s
}

// bare builds a viewer without touching the GPU.
func bare(s *game.Sim) *Viewer {
	return &Viewer{sim: s, log: zerolog.Nop(), tileSize: 8, camZoom: 1, mapW: 96, mapH: 64, prevKeys: map[ebiten.Key]bool{}}
}

func TestCopyMap_OverlaysActors(t *testing.T) {
	s := testSim(t, true)
	v := bare(s)
	var got string
	v.copyText = func(text string) error { got = text; return nil }

	v.copyMap()
	rows := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(rows) != 8 || len(rows[0]) != 12 {
		t.Fatalf("dump should be 12x8, got %d rows", len(rows))
	}
	if rows[2][2] != 'b' {
		t.Fatalf("bandit should render as its kind initial, got %q", rows[2][2])
	}
	p := s.Player
	if rows[p.Y][p.X] != '@' {
		t.Fatalf("player should render as @")
	}
	if v.status != "map copied to clipboard" {
		t.Fatalf("status %q", v.status)
	}
}

func TestCopyMap_ClipboardError(t *testing.T) {
	v := bare(testSim(t, false))
	v.copyText = func(string) error { return errors.New("no display") }
	v.copyMap()
	if v.status != "clipboard unavailable" {
		t.Fatalf("status %q", v.status)
	}
}

func TestHumanPlayer(t *testing.T) {
	if !bare(testSim(t, true)).humanPlayer() {
		t.Fatalf("WithPlayer(false) is a human player")
	}
	if bare(testSim(t, false)).humanPlayer() {
		t.Fatalf("no player means spectator mode")
	}
}

func TestHUDLines(t *testing.T) {
	v := bare(testSim(t, true))
	joined := strings.Join(v.hudLines(), "\n")
	for _, want := range []string{"T=0", "weather: clear", "HP 100/100", "ammo 8/8", "bandits", "F fire"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("HUD missing %q:\n%s", want, joined)
		}
	}

	v = bare(testSim(t, false))
	v.simSpeed = 0
	if joined := strings.Join(v.hudLines(), "\n"); !strings.Contains(joined, "SIM PAUSED") {
		t.Fatalf("spectator HUD should show pause state:\n%s", joined)
	}
}

func TestClampCentre(t *testing.T) {
	if got := clampCentre(1, 5, 100); got != 5 {
		t.Fatalf("clamp low: %v", got)
	}
	if got := clampCentre(99, 5, 100); got != 95 {
		t.Fatalf("clamp high: %v", got)
	}
	if got := clampCentre(30, 60, 100); got != 50 {
		t.Fatalf("viewport larger than zone should centre: %v", got)
	}
}

func TestColours(t *testing.T) {
	if factionColour("bandits") == factionColour("no-such-faction") {
		t.Fatalf("known faction should not use the fallback colour")
	}
	c := color.RGBA{R: 100, G: 100, B: 100, A: 255}
	if got := dim(c, 0.5); got.R != 50 || got.A != 255 {
		t.Fatalf("dim: %+v", got)
	}
	if got := radiationTint(c, 0); got != c {
		t.Fatalf("no radiation keeps colour")
	}
	if got := radiationTint(c, 1); got.G <= c.G || got.R >= c.R {
		t.Fatalf("radiation should tint green: %+v", got)
	}
}
