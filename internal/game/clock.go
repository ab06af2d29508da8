package game

import "fmt"

const (
	startHour      = 6
	minutesPerTick = 1
)

// Clock is the in-game time of day. One tick is one minute.
type Clock struct {
	Day    int
	Hour   int
	Minute int
}

// NewClock starts on day 1 at 06:00.
func NewClock() *Clock {
	return &Clock{Day: 1, Hour: startHour}
}

// Advance moves time forward one tick.
func (c *Clock) Advance() {
	c.Minute += minutesPerTick
	if c.Minute >= 60 {
		c.Minute -= 60
		c.Hour++
	}
	if c.Hour >= 24 {
		c.Hour = 0
		c.Day++
	}
}

// Hours is the time of day as fractional hours.
func (c *Clock) Hours() float64 {
	return float64(c.Hour) + float64(c.Minute)/60
}

// Light is the ambient light level in [0, 1].
func (c *Clock) Light() float64 {
	h := c.Hours()
	switch {
	case h >= 6 && h < 8:
		return (h - 6) / 2
	case h >= 8 && h < 18:
		return 1
	case h >= 18 && h < 20:
		return 1 - (h-18)/2
	default:
		return 0.2
	}
}

func (c *Clock) String() string {
	return fmt.Sprintf("day %d %02d:%02d", c.Day, c.Hour, c.Minute)
}
