package game

import (
	"fmt"
	"math/rand"
)

// WeatherType is the current weather.
type WeatherType uint8

const (
	WeatherClear WeatherType = iota
	WeatherCloudy
	WeatherRain
	WeatherStorm
	WeatherRadiationStorm
	WeatherAnomalySurge
	weatherTypeCount // sentinel
)

var weatherNames = [weatherTypeCount]string{
	"clear", "cloudy", "rain", "storm", "radiation_storm", "anomaly_surge",
}

func (w WeatherType) String() string {
	if w < weatherTypeCount {
		return weatherNames[w]
	}
	return "unknown"
}

// ParseWeatherType maps a name to its WeatherType.
func ParseWeatherType(s string) (WeatherType, bool) {
	for i, n := range weatherNames {
		if n == s {
			return WeatherType(i), true
		}
	}
	return WeatherClear, false
}

// Dangerous reports whether actors should seek shelter.
func (w WeatherType) Dangerous() bool {
	return w == WeatherStorm || w == WeatherRadiationStorm || w == WeatherAnomalySurge
}

// surge reports whether hazard damage ticks at the faster rate.
func (w WeatherType) surge() bool {
	return w == WeatherRadiationStorm || w == WeatherAnomalySurge
}

// WeatherEffects are multipliers applied by the current weather. Radiation
// is additive damage, not a multiplier.
type WeatherEffects struct {
	Visibility      float64
	Accuracy        float64
	Noise           float64
	Radiation       float64
	AnomalyStrength float64
	Movement        float64
}

// ClearEffects is the neutral weather.
var ClearEffects = WeatherEffects{
	Visibility:      1,
	Accuracy:        1,
	Noise:           1,
	Radiation:       0,
	AnomalyStrength: 1,
	Movement:        1,
}

var weatherEffects = [weatherTypeCount]WeatherEffects{
	WeatherClear:          ClearEffects,
	WeatherCloudy:         {Visibility: 0.8, Accuracy: 0.9, Noise: 1, AnomalyStrength: 1, Movement: 1},
	WeatherRain:           {Visibility: 0.6, Accuracy: 0.7, Noise: 0.5, AnomalyStrength: 1, Movement: 0.9},
	WeatherStorm:          {Visibility: 0.4, Accuracy: 0.5, Noise: 0.2, AnomalyStrength: 1.2, Movement: 0.8},
	WeatherRadiationStorm: {Visibility: 0.5, Accuracy: 0.6, Noise: 1, Radiation: 0.5, AnomalyStrength: 1.5, Movement: 1},
	WeatherAnomalySurge:   {Visibility: 0.7, Accuracy: 1, Noise: 1, Radiation: 0.3, AnomalyStrength: 2.0, Movement: 1},
}

type transition struct {
	to   WeatherType
	prob float64
}

var weatherTransitions = [weatherTypeCount][]transition{
	WeatherClear:          {{WeatherCloudy, 0.3}, {WeatherRadiationStorm, 0.05}},
	WeatherCloudy:         {{WeatherClear, 0.3}, {WeatherRain, 0.4}, {WeatherRadiationStorm, 0.1}},
	WeatherRain:           {{WeatherCloudy, 0.4}, {WeatherStorm, 0.3}},
	WeatherStorm:          {{WeatherRain, 0.5}, {WeatherAnomalySurge, 0.2}},
	WeatherRadiationStorm: {{WeatherClear, 0.4}, {WeatherCloudy, 0.3}},
	WeatherAnomalySurge:   {{WeatherClear, 0.5}, {WeatherCloudy, 0.3}},
}

const (
	weatherCheckInterval = 300
	weatherChangeChance  = 0.2
	weatherRampTicks     = 10
	weatherRampStep      = 0.1
)

// Weather drives weather transitions and the blended effects actors see.
type Weather struct {
	Type      WeatherType
	Intensity float64
	Changes   int

	ramp    int
	rng     *rand.Rand
	sink    Notifier
	effects WeatherEffects
}

// NewWeather starts in start at full intensity.
func NewWeather(start WeatherType, seed int64, sink Notifier) *Weather {
	if sink == nil {
		sink = nopNotifier{}
	}
	w := &Weather{
		Type:      start,
		Intensity: 1,
		rng:       rand.New(rand.NewSource(seed)), // #nosec G404 -- deterministic simulation
		sink:      sink,
	}
	w.blend()
	return w
}

// Effects returns the current blended effects.
func (w *Weather) Effects() WeatherEffects { return w.effects }

// Update advances the weather by one tick.
func (w *Weather) Update(tick int) {
	if tick > 0 && tick%weatherCheckInterval == 0 && w.rng.Float64() < weatherChangeChance {
		w.roll()
	}
	if w.ramp > 0 {
		w.ramp--
		w.Intensity = min(1, w.Intensity+weatherRampStep)
	}
	w.blend()
}

func (w *Weather) roll() {
	opts := weatherTransitions[w.Type]
	total := 0.0
	for _, t := range opts {
		total += t.prob
	}
	if total <= 0 {
		return
	}
	r := w.rng.Float64() * total
	acc := 0.0
	for _, t := range opts {
		acc += t.prob
		if r <= acc {
			w.Set(t.to)
			return
		}
	}
}

// Set switches to t and starts ramping intensity up from zero.
func (w *Weather) Set(t WeatherType) {
	if t == w.Type {
		return
	}
	w.Type = t
	w.Intensity = 0
	w.ramp = weatherRampTicks
	w.Changes++
	w.blend()

	col := ColourWeather
	if t.Dangerous() {
		col = ColourWarning
	}
	w.sink.AddMessage(fmt.Sprintf("The weather turns: %s", t), col)
	w.sink.PlaySound("weather_" + t.String())
	if t == WeatherStorm {
		w.sink.PlaySound("thunder")
	}
}

func (w *Weather) blend() {
	target := weatherEffects[w.Type]
	lerp := func(base, to float64) float64 {
		return min(2, max(0, base+(to-base)*w.Intensity))
	}
	w.effects = WeatherEffects{
		Visibility:      lerp(ClearEffects.Visibility, target.Visibility),
		Accuracy:        lerp(ClearEffects.Accuracy, target.Accuracy),
		Noise:           lerp(ClearEffects.Noise, target.Noise),
		Radiation:       lerp(ClearEffects.Radiation, target.Radiation),
		AnomalyStrength: lerp(ClearEffects.AnomalyStrength, target.AnomalyStrength),
		Movement:        lerp(ClearEffects.Movement, target.Movement),
	}
}
