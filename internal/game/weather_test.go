package game

import "testing"

func TestWeather_SetRampsIntensity(t *testing.T) {
	log := NewMessageLog()
	w := NewWeather(WeatherClear, 1, log)
	w.Set(WeatherStorm)
	if w.Effects() != ClearEffects {
		t.Fatalf("fresh transition should start at clear effects, got %+v", w.Effects())
	}
	if log.SoundCount("weather_storm") != 1 || log.SoundCount("thunder") != 1 || log.Len() != 1 {
		t.Fatalf("storm should announce itself")
	}
	for tick := 1; tick <= 10; tick++ {
		w.Update(tick)
	}
	e := w.Effects()
	if !approx(e.Visibility, 0.4) || !approx(e.Accuracy, 0.5) || !approx(e.AnomalyStrength, 1.2) {
		t.Fatalf("full storm effects expected, got %+v", e)
	}
	if w.Changes != 1 {
		t.Fatalf("changes: %d", w.Changes)
	}
}

func TestWeather_HalfIntensityBlends(t *testing.T) {
	w := NewWeather(WeatherClear, 1, nil)
	w.Set(WeatherAnomalySurge)
	for tick := 1; tick <= 5; tick++ {
		w.Update(tick)
	}
	e := w.Effects()
	if !approx(e.AnomalyStrength, 1.5) || !approx(e.Radiation, 0.15) {
		t.Fatalf("half-way surge: %+v", e)
	}
}

func TestWeather_OnlyChecksOnInterval(t *testing.T) {
	w := NewWeather(WeatherClear, 3, nil)
	for tick := 1; tick < weatherCheckInterval; tick++ {
		w.Update(tick)
	}
	if w.Type != WeatherClear {
		t.Fatalf("weather must not change between checks")
	}
	changed := false
	for tick := weatherCheckInterval; tick <= weatherCheckInterval*100; tick++ {
		w.Update(tick)
		if w.Type != WeatherClear {
			changed = true
		}
	}
	if !changed {
		t.Fatalf("weather never changed over 100 checks")
	}
}

func TestWeather_Dangerous(t *testing.T) {
	for _, wt := range []WeatherType{WeatherStorm, WeatherRadiationStorm, WeatherAnomalySurge} {
		if !wt.Dangerous() {
			t.Fatalf("%s should be dangerous", wt)
		}
	}
	for _, wt := range []WeatherType{WeatherClear, WeatherCloudy, WeatherRain} {
		if wt.Dangerous() {
			t.Fatalf("%s should not be dangerous", wt)
		}
	}
}

func TestClock_Light(t *testing.T) {
	c := NewClock()
	if c.Light() != 0 {
		t.Fatalf("06:00 is the start of dawn, got %.2f", c.Light())
	}
	for i := 0; i < 60; i++ {
		c.Advance()
	}
	if c.Hour != 7 || c.Minute != 0 || !approx(c.Light(), 0.5) {
		t.Fatalf("07:00 light: %s %.2f", c, c.Light())
	}
	cases := []struct {
		hour int
		want float64
	}{{12, 1}, {19, 0.5}, {22, 0.2}, {3, 0.2}}
	for _, tc := range cases {
		c.Hour, c.Minute = tc.hour, 0
		if !approx(c.Light(), tc.want) {
			t.Fatalf("%02d:00: want %.2f, got %.2f", tc.hour, tc.want, c.Light())
		}
	}
	c.Hour, c.Minute = 23, 59
	c.Advance()
	if c.Day != 2 || c.Hour != 0 || c.Minute != 0 {
		t.Fatalf("midnight rollover: %s", c)
	}
}
