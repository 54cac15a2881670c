package telemetry

import "github.com/pthm-cable/deadroad/sim"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32
	ticks           int

	// Pipeline counters for current window
	contacts int
	soft     int
	rigid    int
	reported int
	skipped  int
	reaped   int
	spawned  int

	// Damage events
	bites   int
	crashes int
	impacts []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordTick adds one pipeline tick to the window.
func (c *Collector) RecordTick(s sim.TickStats) {
	c.ticks++
	c.contacts += s.Contacts
	c.soft += s.Soft
	c.rigid += s.Rigid
	c.reported += s.Reported
	c.skipped += s.Skipped
	c.reaped += s.Reaped
}

// RecordSpawn records an entity joining the game.
func (c *Collector) RecordSpawn() {
	c.spawned++
}

// RecordBite records a zombie biting the dude.
func (c *Collector) RecordBite() {
	c.bites++
}

// RecordCrash records a collision hard enough to damage a car.
func (c *Collector) RecordCrash() {
	c.crashes++
}

// RecordImpact records the closing speed of a reported collision.
func (c *Collector) RecordImpact(speed float64) {
	c.impacts = append(c.impacts, speed)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Sample is the game state observed at the end of a window.
type Sample struct {
	State    string
	GameTime string

	Entities int
	Zombies  int
	Cars     int

	DudeHealth float64
	Miles      float64

	// Distance from each zombie to the dude, in pixels
	ZombieDistances []float64
	SightRange      float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s Sample) WindowStats {
	var perTick float64
	if c.ticks > 0 {
		perTick = float64(c.contacts) / float64(c.ticks)
	}

	impactMean, _, impactP50, impactP90 := ComputeDistribution(c.impacts)
	distMean, distP10, distP50, distP90 := ComputeDistribution(s.ZombieDistances)

	inSight := 0
	for _, d := range s.ZombieDistances {
		if d <= s.SightRange {
			inSight++
		}
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,
		GameTime:        s.GameTime,
		State:           s.State,

		Entities: s.Entities,
		Zombies:  s.Zombies,
		Cars:     s.Cars,

		Contacts:        c.contacts,
		Soft:            c.soft,
		Rigid:           c.rigid,
		Reported:        c.reported,
		Skipped:         c.skipped,
		Spawned:         c.spawned,
		Reaped:          c.reaped,
		ContactsPerTick: perTick,

		Bites:      c.bites,
		Crashes:    c.crashes,
		ImpactMean: impactMean,
		ImpactP50:  impactP50,
		ImpactP90:  impactP90,

		DudeHealth: s.DudeHealth,
		Miles:      s.Miles,

		ZombiesInSight: inSight,
		ZombieDistMean: distMean,
		ZombieDistP10:  distP10,
		ZombieDistP50:  distP50,
		ZombieDistP90:  distP90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.ticks = 0
	c.contacts = 0
	c.soft = 0
	c.rigid = 0
	c.reported = 0
	c.skipped = 0
	c.reaped = 0
	c.spawned = 0
	c.bites = 0
	c.crashes = 0
	c.impacts = c.impacts[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
