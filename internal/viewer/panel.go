package viewer

import (
	"image/color"

	"github.com/Garsondee/Zone-Sense/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	panelWidth    = 320
	panelTitleH   = 16
	recentHighlit = 3
)

// drawMessages renders the message log panel on the right side of the screen.
func drawMessages(screen *ebiten.Image, msgs []game.Message, panelX, panelH int) {
	// Panel background.
	vector.FillRect(screen, float32(panelX), 0, panelWidth, float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	// Title bar.
	vector.FillRect(screen, float32(panelX), 0, panelWidth, panelTitleH, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	drawText(screen, "MESSAGES", panelX+8, 2, color.RGBA{R: 180, G: 210, B: 180, A: 255})
	vector.StrokeLine(screen, float32(panelX), panelTitleH, float32(panelX+panelWidth), panelTitleH, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	// Newest at the bottom.
	maxVisible := (panelH - panelTitleH - 8) / lineH
	start := max(0, len(msgs)-maxVisible)
	visible := msgs[start:]
	maxChars := (panelWidth - 16) / charW

	y := panelTitleH + 4
	for i, m := range visible {
		recent := i >= len(visible)-recentHighlit
		if recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), panelWidth-4, lineH, color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		c := m.Colour
		if !recent {
			c = dim(c, 0.6)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 5, m.Colour, false)
		line := m.Text
		if len(line) > maxChars {
			line = line[:maxChars-1] + "~"
		}
		drawText(screen, line, panelX+12, y, c)
		y += lineH
	}
}
