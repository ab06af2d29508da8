// Package viewer renders a running simulation with ebiten. With a
// human player it is a turn-based roguelike view; otherwise it watches
// the AI play out in real time.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/Garsondee/Zone-Sense/internal/game"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
)

// borderWidth is the pixel gap between the window edge and the map.
const borderWidth = 16

const (
	defaultTileSize = 8
	zoomMin         = 0.5
	zoomMax         = 4.0
)

// playerKeys maps movement keys (numpad and vi-keys) to steps.
var playerKeys = map[ebiten.Key][2]int{
	ebiten.KeyArrowUp: {0, -1}, ebiten.KeyArrowDown: {0, 1},
	ebiten.KeyArrowLeft: {-1, 0}, ebiten.KeyArrowRight: {1, 0},
	ebiten.KeyK: {0, -1}, ebiten.KeyJ: {0, 1}, ebiten.KeyH: {-1, 0}, ebiten.KeyL: {1, 0},
	ebiten.KeyY: {-1, -1}, ebiten.KeyU: {1, -1}, ebiten.KeyB: {-1, 1}, ebiten.KeyN: {1, 1},
	ebiten.KeyNumpad8: {0, -1}, ebiten.KeyNumpad2: {0, 1}, ebiten.KeyNumpad4: {-1, 0}, ebiten.KeyNumpad6: {1, 0},
	ebiten.KeyNumpad7: {-1, -1}, ebiten.KeyNumpad9: {1, -1}, ebiten.KeyNumpad1: {-1, 1}, ebiten.KeyNumpad3: {1, 1},
}

var actionKeys = map[ebiten.Key]game.PlayerAction{
	ebiten.KeyF:       game.ActFire,
	ebiten.KeyR:       game.ActReload,
	ebiten.KeyM:       game.ActHeal,
	ebiten.KeyX:       game.ActBandage,
	ebiten.KeyZ:       game.ActAntiRad,
	ebiten.KeyPeriod:  game.ActWait,
	ebiten.KeyNumpad5: game.ActWait,
}

// Viewer is an ebiten.Game over a game.Sim.
type Viewer struct {
	sim *game.Sim
	log zerolog.Logger

	tileSize int
	mapW     int // map viewport in pixels
	mapH     int
	width    int
	height   int

	camX, camY float64 // tile-space centre
	camZoom    float64

	// Spectator speed: ticks per frame, 0 = paused.
	simSpeed  float64
	tickAccum float64

	fog      bool
	showHUD  bool
	prevKeys map[ebiten.Key]bool
	status   string

	worldBuf *ebiten.Image
	copyText func(string) error
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithLogger sets the viewer logger.
func WithLogger(l zerolog.Logger) Option { return func(v *Viewer) { v.log = l } }

// WithTileSize sets the pixel size of one tile.
func WithTileSize(px int) Option { return func(v *Viewer) { v.tileSize = px } }

// WithViewport caps the map viewport in pixels.
func WithViewport(w, h int) Option { return func(v *Viewer) { v.mapW, v.mapH = w, h } }

// New builds a viewer for sim.
func New(sim *game.Sim, opts ...Option) *Viewer {
	v := &Viewer{
		sim:      sim,
		log:      zerolog.Nop(),
		tileSize: defaultTileSize,
		camZoom:  1,
		simSpeed: 1,
		showHUD:  true,
		prevKeys: map[ebiten.Key]bool{},
		copyText: clipboard.WriteAll,
	}
	for _, o := range opts {
		o(v)
	}
	zw, zh := sim.Zone().Size()
	if v.mapW == 0 {
		v.mapW = zw * v.tileSize
	}
	if v.mapH == 0 {
		v.mapH = zh * v.tileSize
	}
	v.width = borderWidth + v.mapW + borderWidth + panelWidth
	v.height = borderWidth + v.mapH + borderWidth
	v.worldBuf = ebiten.NewImage(zw*v.tileSize, zh*v.tileSize)
	v.camX, v.camY = float64(zw)/2, float64(zh)/2
	v.fog = v.humanPlayer()
	if p := sim.Player; p != nil {
		v.camX, v.camY = float64(p.X)+0.5, float64(p.Y)+0.5
	}
	v.updateFOV()
	return v
}

// Size is the window size the viewer wants.
func (v *Viewer) Size() (int, int) { return v.width, v.height }

func (v *Viewer) humanPlayer() bool {
	return v.sim.Player != nil && v.sim.AIFor(v.sim.Player) == nil
}

func (v *Viewer) updateFOV() {
	if !v.fog {
		return
	}
	p := v.sim.Player
	v.sim.Zone().ComputeFOV(p.X, p.Y, v.sim.PlayerView())
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	v.handleInput()
	if v.humanPlayer() {
		return nil
	}
	if v.simSpeed <= 0 {
		return nil
	}
	v.tickAccum += v.simSpeed
	for v.tickAccum >= 1.0 {
		v.tickAccum -= 1.0
		v.sim.Tick()
	}
	return nil
}

// justPressed is edge-triggered on the key state of the previous frame.
func (v *Viewer) justPressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !v.prevKeys[k]
}

func (v *Viewer) handleInput() {
	cur := map[ebiten.Key]bool{}
	defer func() { v.prevKeys = cur }()

	if v.justPressed(cur, ebiten.KeyC) {
		v.copyMap()
	}
	if v.justPressed(cur, ebiten.KeyTab) {
		v.showHUD = !v.showHUD
	}
	if v.justPressed(cur, ebiten.KeyV) && v.sim.Player != nil {
		v.fog = !v.fog
		v.updateFOV()
	}
	if v.justPressed(cur, ebiten.KeyEqual) {
		v.camZoom = min(zoomMax, v.camZoom*1.25)
	}
	if v.justPressed(cur, ebiten.KeyMinus) {
		v.camZoom = max(zoomMin, v.camZoom/1.25)
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		v.camZoom = min(zoomMax, max(zoomMin, v.camZoom*math.Pow(1.12, wy)))
	}

	if v.humanPlayer() {
		v.playerInput(cur)
	} else {
		v.spectatorInput(cur)
	}
	v.clampCamera()
}

func (v *Viewer) playerInput(cur map[ebiten.Key]bool) {
	p := v.sim.Player
	if p.Dead {
		v.status = "You are dead. Press C to copy the map."
		return
	}
	var cmd *game.PlayerCommand
	for k, d := range playerKeys {
		if v.justPressed(cur, k) {
			cmd = &game.PlayerCommand{Action: game.ActMove, DX: d[0], DY: d[1]}
		}
	}
	for k, a := range actionKeys {
		if v.justPressed(cur, k) {
			cmd = &game.PlayerCommand{Action: a}
		}
	}
	if cmd == nil {
		return
	}
	if v.sim.PlayerTurn(*cmd) {
		v.camX, v.camY = float64(p.X)+0.5, float64(p.Y)+0.5
		v.updateFOV()
	}
}

func (v *Viewer) spectatorInput(cur map[ebiten.Key]bool) {
	pan := 0.5 / v.camZoom
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v.camY -= pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.camY += pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		v.camX -= pan
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		v.camX += pan
	}

	// P=pause/resume, ,=slower, .=faster.
	speeds := []float64{0, 0.25, 0.5, 1, 2, 4, 8}
	if v.justPressed(cur, ebiten.KeyP) {
		if v.simSpeed > 0 {
			v.simSpeed = 0
		} else {
			v.simSpeed = 1
		}
	}
	if v.justPressed(cur, ebiten.KeyComma) {
		for i := len(speeds) - 1; i > 0; i-- {
			if speeds[i] < v.simSpeed {
				v.simSpeed = speeds[i]
				break
			}
			if i == 1 {
				v.simSpeed = 0
			}
		}
	}
	if v.justPressed(cur, ebiten.KeyPeriod) {
		for _, s := range speeds {
			if s > v.simSpeed {
				v.simSpeed = s
				break
			}
		}
	}
	if v.justPressed(cur, ebiten.KeySpace) && v.simSpeed == 0 {
		v.sim.Tick()
	}
}

func (v *Viewer) clampCamera() {
	zw, zh := v.sim.Zone().Size()
	ts := float64(v.tileSize) * v.camZoom
	halfW := float64(v.mapW) / 2 / ts
	halfH := float64(v.mapH) / 2 / ts
	v.camX = clampCentre(v.camX, halfW, float64(zw))
	v.camY = clampCentre(v.camY, halfH, float64(zh))
}

func clampCentre(c, half, size float64) float64 {
	if half*2 >= size {
		return size / 2
	}
	return min(size-half, max(half, c))
}

// copyMap puts the ASCII zone dump, with actors, on the clipboard.
func (v *Viewer) copyMap() {
	dump := v.sim.Zone().ASCII(func(x, y int) (rune, bool) {
		a := v.sim.Level.ActorAt(x, y)
		if a == nil {
			return 0, false
		}
		if a == v.sim.Player {
			return '@', true
		}
		return rune(a.Kind[0]), true
	})
	if err := v.copyText(dump); err != nil {
		v.log.Warn().Err(err).Msg("clipboard copy failed")
		v.status = "clipboard unavailable"
		return
	}
	v.status = "map copied to clipboard"
}

// Layout implements ebiten.Game.
func (v *Viewer) Layout(_, _ int) (int, int) { return v.width, v.height }

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})

	v.worldBuf.Clear()
	v.drawZone(v.worldBuf)
	v.drawActors(v.worldBuf)

	// Camera: centre camX/camY in the viewport, then scale.
	ts := float64(v.tileSize)
	var blit ebiten.DrawImageOptions
	blit.GeoM.Translate(-v.camX*ts, -v.camY*ts)
	blit.GeoM.Scale(v.camZoom, v.camZoom)
	blit.GeoM.Translate(float64(v.mapW)/2+borderWidth, float64(v.mapH)/2+borderWidth)
	viewport := screen.SubImage(image.Rect(borderWidth, borderWidth, borderWidth+v.mapW, borderWidth+v.mapH)).(*ebiten.Image)
	viewport.DrawImage(v.worldBuf, &blit)

	vector.StrokeRect(screen, borderWidth-1, borderWidth-1, float32(v.mapW+2), float32(v.mapH+2), 2.0,
		color.RGBA{R: 65, G: 90, B: 65, A: 255}, false)

	drawMessages(screen, v.sim.Messages.Recent(), borderWidth+v.mapW+borderWidth, v.height)
	if v.showHUD {
		v.drawHUD(screen)
	}
}

func (v *Viewer) drawZone(dst *ebiten.Image) {
	z := v.sim.Zone()
	ts := float32(v.tileSize)
	for y := 0; y < z.Height; y++ {
		for x := 0; x < z.Width; x++ {
			i := y*z.Width + x
			if v.fog && !z.Explored[i] {
				continue
			}
			tile := z.Tiles[i]
			c := radiationTint(terrainColour(tile.Terrain), tile.Props.Radiation)
			if v.fog && !z.Visible[i] {
				c = dim(c, 0.45)
			}
			px, py := float32(x)*ts, float32(y)*ts
			vector.FillRect(dst, px, py, ts, ts, c, false)
			if ac, ok := anomalyColours[tile.Props.Anomaly]; ok && (!v.fog || z.Visible[i]) {
				inset := ts / 4
				vector.FillRect(dst, px+inset, py+inset, ts-2*inset, ts-2*inset, ac, false)
			}
		}
	}
}

func (v *Viewer) drawActors(dst *ebiten.Image) {
	z := v.sim.Zone()
	ts := float32(v.tileSize)
	for _, a := range v.sim.Level.Entities() {
		if v.fog && a != v.sim.Player && !z.Visible[a.Y*z.Width+a.X] {
			continue
		}
		c := factionColour(a.Faction)
		px, py := float32(a.X)*ts, float32(a.Y)*ts
		if a.Dead {
			vector.StrokeLine(dst, px+1, py+1, px+ts-1, py+ts-1, 1, dim(c, 0.5), false)
			vector.StrokeLine(dst, px+ts-1, py+1, px+1, py+ts-1, 1, dim(c, 0.5), false)
			continue
		}
		vector.FillCircle(dst, px+ts/2, py+ts/2, ts/2-0.5, c, true)
		if frac := a.Stats.HealthFraction(); frac < 1 {
			vector.FillRect(dst, px, py+ts-1, ts*float32(frac), 1, color.RGBA{R: 220, G: 40, B: 40, A: 255}, false)
		}
	}
}

func (v *Viewer) hudLines() []string {
	s := v.sim
	lines := []string{
		fmt.Sprintf("T=%d  %s  light %.1f", s.CurrentTick(), s.Clock, s.Clock.Light()),
		fmt.Sprintf("weather: %s (%.0f%%)", s.Weather.Type, s.Weather.Intensity*100),
	}
	if p := s.Player; p != nil {
		ammo := "-"
		if w := p.Inventory.Weapon(game.SlotWeaponPrimary); w != nil {
			ammo = fmt.Sprintf("%d/%d", w.Weapon.Ammo, w.Weapon.MaxAmmo)
		}
		lines = append(lines,
			fmt.Sprintf("HP %.0f/%.0f  ST %.0f  ammo %s", p.Stats.Health, p.Stats.MaxHealth, p.Stats.Stamina, ammo),
			fmt.Sprintf("rad %.1f  bleed %.1f", p.Combat.RadiationLevel, p.Combat.BleedingRate))
	}
	for _, f := range s.Factions() {
		lines = append(lines, fmt.Sprintf("%-9s %d alive", f, s.Level.Alive(f)))
	}
	if v.humanPlayer() {
		lines = append(lines, "move: arrows/hjklyubn  F fire  R reload", "M medkit  X bandage  Z antirad  . wait")
	} else {
		speed := "PAUSED"
		if v.simSpeed > 0 {
			speed = fmt.Sprintf("%gx", v.simSpeed)
		}
		lines = append(lines, fmt.Sprintf("SIM %s  P pause  ,/. speed  space step", speed))
	}
	lines = append(lines, "C copy map  V fog  Tab HUD  +/- zoom")
	if v.status != "" {
		lines = append(lines, v.status)
	}
	return lines
}

func (v *Viewer) drawHUD(screen *ebiten.Image) {
	const padX, padY = 5, 4
	lines := v.hudLines()
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bx := float32(borderWidth + 4)
	by := float32(borderWidth+v.mapH) - boxH - 4

	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	for i, line := range lines {
		drawText(screen, line, int(bx)+padX, int(by)+padY+i*lineH, color.RGBA{R: 200, G: 220, B: 200, A: 255})
	}
}
