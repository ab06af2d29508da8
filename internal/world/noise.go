package world

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
	"github.com/cespare/xxhash/v2"
)

// stream returns a random source seeded from the world seed, a zone
// coordinate and a purpose tag. Streams for different purposes or zones are
// independent, so generation order never changes what a zone contains.
func stream(seed int64, c Coord, purpose string) *rand.Rand {
	h := uint64(seed)
	h ^= uint64(int64(c.X)) * 0x517cc1b727220a95
	h ^= uint64(int64(c.Y)) * 0x6c62272e07bb0142
	h ^= xxhash.Sum64String(purpose)
	h = h*0x2545f4914f6cdd1d + 0x14057b7ef767814f
	h ^= h >> 29
	h *= 0xd6e8feb86659fd93
	h ^= h >> 32
	return rand.New(rand.NewSource(int64(h))) // #nosec G404 -- procedural generation, not security
}

// fieldSeed derives a per-field noise seed.
func fieldSeed(seed int64, purpose string) int64 {
	return seed ^ int64(xxhash.Sum64String(purpose)>>1)
}

// noiseField is a coherent Perlin field sampled in world tile coordinates.
type noiseField struct {
	p     *perlin.Perlin
	scale float64
}

func newNoiseField(seed int64, purpose string, scale float64) noiseField {
	return noiseField{
		p:     perlin.NewPerlin(2, 2, 3, fieldSeed(seed, purpose)),
		scale: scale,
	}
}

// At returns the field value in [0, 1] at world tile (wx, wy).
func (f noiseField) At(wx, wy int) float64 {
	n := f.p.Noise2D(float64(wx)/f.scale, float64(wy)/f.scale)
	return clamp01(0.5 + n*0.8)
}

// valueNoise2D returns smooth lattice value noise in [0, 1].
func valueNoise2D(x, y float64, seed int64) float64 {
	xi := int(math.Floor(x))
	yi := int(math.Floor(y))
	xf := x - float64(xi)
	yf := y - float64(yi)

	// Hermite smoothstep.
	u := xf * xf * (3 - 2*xf)
	v := yf * yf * (3 - 2*yf)

	n00 := latticeValue(xi, yi, seed)
	n10 := latticeValue(xi+1, yi, seed)
	n01 := latticeValue(xi, yi+1, seed)
	n11 := latticeValue(xi+1, yi+1, seed)

	nx0 := n00*(1-u) + n10*u
	nx1 := n01*(1-u) + n11*u
	return nx0*(1-v) + nx1*v
}

func latticeValue(x, y int, seed int64) float64 {
	h := uint64(seed)
	h ^= uint64(x) * 0x517cc1b727220a95
	h ^= uint64(y) * 0x6c62272e07bb0142
	h = h*0x2545f4914f6cdd1d + 0x14057b7ef767814f
	h ^= h >> 16
	h *= 0xd6e8feb86659fd93
	h ^= h >> 16
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

// hazardNoise sums two octaves of value noise at world tile (wx, wy).
func hazardNoise(wx, wy int, seed int64, scale float64) float64 {
	x, y := float64(wx)/scale, float64(wy)/scale
	n := valueNoise2D(x, y, seed)*0.65 + valueNoise2D(x*2.1, y*2.1, seed+7919)*0.35
	return clamp01(n)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
