package actors

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/deadroad/sprite"
)

// Autopilot walks roughly along a goal heading with random drift, for runs
// without a keyboard.
type Autopilot struct {
	rng     *rand.Rand
	goal    float64 // degrees
	heading float64
	steer   float64
}

// NewAutopilot creates an autopilot heading towards goalDeg. steer scales
// the random drift.
func NewAutopilot(rng *rand.Rand, goalDeg, steer float64) *Autopilot {
	return &Autopilot{rng: rng, goal: goalDeg, heading: goalDeg, steer: steer}
}

// Controls drifts the heading and pulls it back towards the goal.
func (a *Autopilot) Controls() Controls {
	a.heading += a.steer * 10 * a.rng.NormFloat64()
	off := math.Remainder(a.goal-a.heading, 360)
	a.heading += 0.05 * off

	dir := sprite.Heading(a.heading)
	return Controls{X: dir.X, Y: dir.Y}
}

// Cruise drives a car at a steady throttle with a little wandering steer.
type Cruise struct {
	rng      *rand.Rand
	throttle float64
	steer    float64
	wheel    float64
}

// NewCruise creates a cruise control. throttle is in [0, 1].
func NewCruise(rng *rand.Rand, throttle, steer float64) *Cruise {
	return &Cruise{rng: rng, throttle: throttle, steer: steer}
}

// Controls returns throttle on the Y axis and steering on the X axis.
func (c *Cruise) Controls() Controls {
	c.wheel = clampUnit(0.9*c.wheel + c.steer*0.1*c.rng.NormFloat64())
	return Controls{X: c.wheel, Y: -c.throttle}
}
