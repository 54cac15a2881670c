// Package game is the simulation context: it owns the clock, the event bus,
// the entity registry and the sprite pipeline, and runs the episode state
// machine that decides when a run is won or lost.
package game

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/clock"
	"github.com/pthm-cable/deadroad/collide"
	"github.com/pthm-cable/deadroad/config"
	"github.com/pthm-cable/deadroad/events"
	"github.com/pthm-cable/deadroad/registry"
	"github.com/pthm-cable/deadroad/sim"
	"github.com/pthm-cable/deadroad/sprite"
	"github.com/pthm-cable/deadroad/telemetry"
)

// Player is the entity the episode is about.
type Player interface {
	sprite.Entity
	Health() float64
}

// World runs and draws the static map underneath the sprites.
type World interface {
	Run(dt float64)
	Render(dt float64)
	Clear()
}

// Options configures optional collaborators of a Game.
type Options struct {
	World    World
	Output   *telemetry.OutputManager // nil disables file output
	LogStats bool
	Seed     int64
}

// Game holds the complete game state. Separate instances share nothing.
type Game struct {
	cfg *config.Config

	bus      *events.Bus
	clock    *clock.Clock
	reg      *registry.Registry
	objects  *registry.Objects
	space    *collide.Space
	pipeline *sim.Pipeline
	world    World
	dude     Player

	// Episode state
	state    State
	over     bool
	cleared  bool
	timedOut bool
	reported bool
	episode  int
	waiting  int

	// Telemetry
	tick             int32
	seed             int64
	logStats         bool
	perf             *telemetry.PerfCollector
	collector        *telemetry.Collector
	bookmarkDetector *telemetry.BookmarkDetector
	output           *telemetry.OutputManager
	lastTick         sim.TickStats
	lastEpisode      *telemetry.Episode

	drawList []sprite.Entity
}

// New creates a game in the start state.
func New(cfg *config.Config, opts Options) *Game {
	bus := events.NewBus()
	reg := registry.New()
	space := collide.NewSpace(cfg.Physics.GridCellSize, cfg.Physics.Restitution)

	g := &Game{
		cfg:              cfg,
		bus:              bus,
		clock:            clock.New(bus, cfg.Game.SecondsInADay),
		reg:              reg,
		objects:          registry.NewObjects(),
		space:            space,
		pipeline:         sim.New(reg, space),
		world:            opts.World,
		state:            StateStart,
		episode:          1,
		seed:             opts.Seed,
		logStats:         opts.LogStats,
		perf:             telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector:        telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Physics.DT),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		output:           opts.Output,
	}
	g.pipeline.SetTimer(g.perf)

	// collisions are delivered at the end of the step, not mid-pipeline
	space.OnReport = func(c *sprite.Contact) {
		bus.Post(events.Collision, c)
	}

	bus.Subscribe(events.TargetTimePassed, func(events.Event) {
		g.timedOut = true
		g.state = StateDied
	})
	bus.Subscribe(events.Collision, g.recordCollision)

	return g
}

// Step advances the game by dt seconds: the state machine is evaluated, and
// if it was running the world, the sprites and the registered objects move.
// Queued events are delivered at the end of the step.
func (g *Game) Step(dt float64) {
	g.perf.StartTick()

	prev := g.state
	g.runGameState(dt)
	if g.state != prev {
		slog.Debug("state changed", "from", prev, "to", g.state, "tick", g.tick)
		g.bus.Post(events.StateChanged, g.state)
	}

	if prev == StateRunning {
		g.perf.StartPhase(telemetry.PhaseWorld)
		if g.world != nil {
			g.world.Run(dt)
		}

		g.lastTick = g.pipeline.Tick(dt)
		g.collector.RecordTick(g.lastTick)

		g.perf.StartPhase(telemetry.PhaseObjects)
		g.objects.Tick(dt)
		g.tick++
	}

	g.perf.StartPhase(telemetry.PhaseEvents)
	g.bus.Flush()

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	if prev == StateRunning {
		g.flushTelemetry()
	}
	if g.over && !g.reported {
		g.reportEpisode()
	}

	g.perf.EndTick()
}

// Restart begins a new episode. Sprites stay where they are.
func (g *Game) Restart() {
	g.state = StateStart
	g.episode++
	g.reported = false
	g.bookmarkDetector.Reset()
}

// Over reports whether the current episode has ended.
func (g *Game) Over() bool { return g.over }

// State returns the current state.
func (g *Game) State() State { return g.state }

// Distance returns the dude's distance from the origin in whole miles.
func (g *Game) Distance() float64 {
	if g.dude == nil {
		return 0
	}
	return math.Round(r2.Norm(g.dude.Base().Pos) / g.cfg.Derived.PixelsPerMile)
}

// Config returns the configuration the game was created with.
func (g *Game) Config() *config.Config { return g.cfg }

// Bus returns the game's event bus.
func (g *Game) Bus() *events.Bus { return g.bus }

// Clock returns the game clock.
func (g *Game) Clock() *clock.Clock { return g.clock }

// Registry returns the entity registry.
func (g *Game) Registry() *registry.Registry { return g.reg }

// Space returns the collision space sprites should bind their bodies to.
func (g *Game) Space() *collide.Space { return g.space }

// Dude returns the current player, or nil.
func (g *Game) Dude() Player { return g.dude }

// Tick returns the number of simulated running ticks.
func (g *Game) Tick() int32 { return g.tick }

// TimedOut reports whether the current episode died because the target time
// passed.
func (g *Game) TimedOut() bool { return g.timedOut }

// Episode returns the 1-based episode number.
func (g *Game) Episode() int { return g.episode }

// LastTick returns the pipeline statistics of the most recent step.
func (g *Game) LastTick() sim.TickStats { return g.lastTick }

// LastEpisode returns the report of the most recently finished episode, or
// nil if none has finished.
func (g *Game) LastEpisode() *telemetry.Episode { return g.lastEpisode }

// Perf returns the performance collector.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perf }
