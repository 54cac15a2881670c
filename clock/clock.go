// Package clock tracks virtual game time and the episode deadline.
package clock

import (
	"fmt"
	"math"

	"github.com/pthm-cable/deadroad/events"
)

// startHour is the in-game hour at elapsed time zero.
const startHour = 7

// TimeOfDay is a display decomposition of a virtual time value.
type TimeOfDay struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
	Time    float64 // the virtual seconds that were decomposed
}

// String formats the value as "Day N HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("Day %d %02d:%02d", t.Days, t.Hours, t.Minutes)
}

// Clock advances elapsed virtual time and fires TargetTimePassed while
// elapsed time is beyond the target.
type Clock struct {
	bus           *events.Bus
	secondsPerDay float64

	elapsed float64
	target  float64
}

// New creates a clock publishing on bus. secondsPerDay is the number of
// virtual seconds in one in-game day.
func New(bus *events.Bus, secondsPerDay float64) *Clock {
	return &Clock{bus: bus, secondsPerDay: secondsPerDay}
}

// Tick advances elapsed time by delta. Once elapsed time exceeds the target,
// every tick fires TargetTimePassed with the target as payload.
func (c *Clock) Tick(delta float64) {
	c.elapsed += delta
	if c.elapsed > c.target {
		c.bus.Fire(events.TargetTimePassed, c.target)
	}
}

// SetTime sets elapsed time.
func (c *Clock) SetTime(t float64) { c.elapsed = t }

// SetTargetTime sets the deadline.
func (c *Clock) SetTargetTime(t float64) { c.target = t }

// Elapsed returns elapsed virtual seconds.
func (c *Clock) Elapsed() float64 { return c.elapsed }

// Target returns the deadline in virtual seconds.
func (c *Clock) Target() float64 { return c.target }

// Passed reports whether elapsed time is beyond the deadline.
func (c *Clock) Passed() bool { return c.elapsed > c.target }

// GameTime returns the in-game time of day, starting at 7 AM.
func (c *Clock) GameTime() TimeOfDay {
	return c.convert(c.elapsed + startHour*c.secondsPerDay/24)
}

// Remaining returns the time left until the deadline.
func (c *Clock) Remaining() TimeOfDay {
	return c.convert(c.target - c.elapsed)
}

func (c *Clock) convert(t float64) TimeOfDay {
	fullSeconds := 3600 * 24 * t / c.secondsPerDay
	daySeconds := math.Mod(fullSeconds, 3600*24)

	return TimeOfDay{
		Days:    int(math.Floor(t / c.secondsPerDay)),
		Hours:   int(math.Floor(daySeconds / 3600)),
		Minutes: int(math.Floor(math.Mod(daySeconds, 3600) / 60)),
		Seconds: int(math.Floor(math.Mod(daySeconds, 60))),
		Time:    t,
	}
}
