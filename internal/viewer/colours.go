package viewer

import (
	"image/color"

	"github.com/Garsondee/Zone-Sense/internal/game"
	"github.com/Garsondee/Zone-Sense/internal/world"
)

var factionColours = map[string]color.RGBA{
	game.PlayerFaction: {R: 235, G: 235, B: 210, A: 255},
	"bandits":          {R: 210, G: 70, B: 70, A: 255},
	"military":         {R: 90, G: 150, B: 90, A: 255},
	"loners":           {R: 210, G: 180, B: 80, A: 255},
	"mutants":          {R: 170, G: 90, B: 200, A: 255},
	"zombies":          {R: 120, G: 140, B: 110, A: 255},
}

var fallbackFaction = color.RGBA{R: 70, G: 110, B: 210, A: 255}

func factionColour(f string) color.RGBA {
	if c, ok := factionColours[f]; ok {
		return c
	}
	return fallbackFaction
}

var anomalyColours = map[world.AnomalyType]color.RGBA{
	world.AnomalyThermal:  {R: 255, G: 120, B: 20, A: 200},
	world.AnomalyGravity:  {R: 150, G: 110, B: 255, A: 200},
	world.AnomalyChemical: {R: 140, G: 230, B: 40, A: 200},
	world.AnomalyElectric: {R: 90, G: 200, B: 255, A: 200},
}

func terrainColour(t world.Terrain) color.RGBA {
	r, g, b := world.TerrainColour(t)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func dim(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f), A: c.A}
}

// radiationTint shades a tile towards green by its radiation level.
func radiationTint(c color.RGBA, rad float64) color.RGBA {
	if rad <= 0 {
		return c
	}
	k := min(1, rad) * 0.5
	c.R = uint8(float64(c.R) * (1 - k))
	c.G = uint8(float64(c.G) + (200-float64(c.G))*k)
	c.B = uint8(float64(c.B) * (1 - k))
	return c
}
