// Package session assembles a playable run: it builds the game, the decal
// map and the actor factory from a config, loads the scenario and keeps a
// dude on the road across restarts.
package session

import (
	"fmt"
	"log/slog"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/actors"
	"github.com/pthm-cable/deadroad/catalog"
	"github.com/pthm-cable/deadroad/collide"
	"github.com/pthm-cable/deadroad/config"
	"github.com/pthm-cable/deadroad/game"
	"github.com/pthm-cable/deadroad/nav"
	"github.com/pthm-cable/deadroad/sprite"
	"github.com/pthm-cable/deadroad/telemetry"
	"github.com/pthm-cable/deadroad/world"
)

// Options configures a session.
type Options struct {
	Seed     int64
	Output   *telemetry.OutputManager // nil disables file output
	LogStats bool

	// Input steers the dude. Nil puts him on autopilot.
	Input actors.Input

	// Traffic gives every scenario car a cruise control.
	Traffic bool
}

// Session is one game plus everything needed to populate it.
type Session struct {
	cfg     *config.Config
	game    *game.Game
	decals  *world.Map
	factory *actors.Factory
	rng     *rand.Rand
	input   actors.Input
}

// New creates a session and loads the configured scenario.
func New(cfg *config.Config, opts Options) (*Session, error) {
	rng := rand.New(rand.NewSource(opts.Seed))
	decals := world.NewMap(cfg.Decals.MaxLife, opts.Seed)

	g := game.New(cfg, game.Options{
		World:    decals,
		Output:   opts.Output,
		LogStats: opts.LogStats,
		Seed:     opts.Seed,
	})

	env := &actors.Env{
		Cfg:     cfg,
		Space:   g.Space(),
		Catalog: catalog.Default(),
		Rand:    rng,
		Spawn:   g.AddSprite,
		Splat:   decals.Splat,
		Target: func() sprite.Entity {
			if d := g.Dude(); d != nil {
				return d
			}
			return nil
		},
	}

	s := &Session{
		cfg:     cfg,
		game:    g,
		decals:  decals,
		factory: &actors.Factory{Env: env},
		rng:     rng,
		input:   opts.Input,
	}
	if opts.Traffic {
		s.factory.Driver = func() actors.Input {
			return actors.NewCruise(rng, 0.3+0.4*rng.Float64(), 0.5)
		}
	}

	offset := r2.Vec{X: cfg.Scenario.OffsetX, Y: cfg.Scenario.OffsetY}
	if err := g.AddSpritesFromStrings(cfg.Scenario.Sprites, offset, s.factory); err != nil {
		return nil, fmt.Errorf("loading scenario: %w", err)
	}
	env.Nav = nav.NewPlanner(s.buildNavGrid())
	if err := s.spawnDude(); err != nil {
		return nil, err
	}

	slog.Info("session ready",
		"seed", opts.Seed,
		"sprites", g.Registry().Len(),
		"nav_cells", env.Nav.Grid().Blocked(),
		"traffic", opts.Traffic,
		"autopilot", opts.Input == nil,
	)
	return s, nil
}

// buildNavGrid blocks the ground under every stationary sprite, inflated by
// a zombie's radius so routes keep bodies clear of props.
func (s *Session) buildNavGrid() *nav.Grid {
	grid := nav.NewGrid(nav.CellSize)
	inflate := 0.0
	if zi, ok := s.factory.Env.Catalog.Lookup(actors.KindZombie); ok {
		inflate = zi.Radius()
	}
	s.game.Registry().Each(func(e sprite.Entity) {
		p, ok := e.(collide.Physical)
		if !ok || !e.Base().Stationary || !e.Base().Collidable {
			return
		}
		b := p.Physics()
		grid.Block(b.Pos, b.Radius+inflate)
	})
	return grid
}

// spawnDude puts a fresh dude at the start position.
func (s *Session) spawnDude() error {
	start := r2.Vec{X: s.cfg.Game.StartX, Y: s.cfg.Game.StartY}

	input := s.input
	if input == nil {
		// head straight away from the origin
		input = actors.NewAutopilot(s.rng, sprite.Bearing(start), s.cfg.Game.AutopilotSteer)
	}

	dude, err := s.factory.NewDude(start, input)
	if err != nil {
		return fmt.Errorf("spawning dude: %w", err)
	}
	s.game.NewDude(dude)
	return nil
}

// Restart replaces the dude and begins a new episode.
func (s *Session) Restart() error {
	if err := s.spawnDude(); err != nil {
		return err
	}
	s.game.Restart()
	return nil
}

// Update advances the game by steps fixed ticks.
func (s *Session) Update(steps int) {
	dt := s.cfg.Physics.DT
	for i := 0; i < steps; i++ {
		s.game.Step(dt)
	}
}

// RunEpisode steps until the episode is over or maxTicks running ticks have
// passed (0 = no cap). It returns the episode report, or nil if the cap was
// hit first.
func (s *Session) RunEpisode(maxTicks int) *telemetry.Episode {
	start := s.game.Tick()
	dt := s.cfg.Physics.DT
	if s.game.State() == game.StateStart {
		s.game.Step(dt)
	}
	for !s.game.Over() {
		if maxTicks > 0 && int(s.game.Tick()-start) >= maxTicks {
			return nil
		}
		s.game.Step(dt)
	}
	return s.game.LastEpisode()
}

// Game returns the session's game.
func (s *Session) Game() *game.Game { return s.game }

// Decals returns the decal map under the game.
func (s *Session) Decals() *world.Map { return s.decals }
