package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/collide"
	"github.com/pthm-cable/deadroad/events"
	"github.com/pthm-cable/deadroad/sprite"
	"github.com/pthm-cable/deadroad/telemetry"
)

// KindZombie is the catalog kind counted as zombie pressure.
const KindZombie = "Zombie"

// recordCollision classifies reported collisions for the stats window.
func (g *Game) recordCollision(ev events.Event) {
	c, ok := ev.Payload.(*sprite.Contact)
	if !ok {
		return
	}
	g.collector.RecordImpact(c.Speed)

	if c.Rigid() && c.Speed > g.cfg.Damage.CrashSpeed {
		g.collector.RecordCrash()
	}
	if g.dude != nil {
		a, b := c.A, c.B
		if b == g.dude {
			a, b = b, a
		}
		if a == g.dude && kindOf(b) == KindZombie {
			g.collector.RecordBite()
		}
	}
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sample())
	perfStats := g.perf.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.output != nil {
			if err := g.output.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
			g.saveSnapshot(&bm)
		}
	}
}

// sample observes the game for the end of a stats window.
func (g *Game) sample() telemetry.Sample {
	s := telemetry.Sample{
		State:      g.state.String(),
		GameTime:   g.clock.GameTime().String(),
		Entities:   g.reg.Len(),
		Miles:      g.Distance(),
		SightRange: g.cfg.Game.ZombieSightPx,
	}

	var dudePos r2.Vec
	if g.dude != nil {
		dudePos = g.dude.Base().Pos
		s.DudeHealth = g.dude.Health()
	}

	g.reg.Each(func(e sprite.Entity) {
		b := e.Base()
		if b.RigidBody {
			s.Cars++
		}
		if kindOf(e) == KindZombie {
			s.Zombies++
			if g.dude != nil {
				s.ZombieDistances = append(s.ZombieDistances, r2.Norm(r2.Sub(b.Pos, dudePos)))
			}
		}
	})
	return s
}

// reportEpisode logs and records the outcome of a finished episode once.
func (g *Game) reportEpisode() {
	g.reported = true

	ep := telemetry.Episode{
		Index:      g.episode,
		Outcome:    g.state.String(),
		EndTick:    g.tick,
		SimTimeSec: g.clock.Elapsed(),
		GameTime:   g.clock.GameTime().String(),
		Miles:      g.Distance(),
		TimedOut:   g.timedOut,
	}
	if g.dude != nil {
		ep.DudeHealth = g.dude.Health()
	}
	ep.LogEpisode()
	g.lastEpisode = &ep

	if g.output != nil {
		if err := g.output.WriteEpisode(ep); err != nil {
			slog.Error("failed to write episode", "error", err)
		}
	}
}

// saveSnapshot writes the current scene to the output directory.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	path, err := g.output.WriteSnapshot(g.Snapshot(bookmark))
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// Snapshot builds a snapshot of every live sprite that has a catalog kind.
func (g *Game) Snapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version:  telemetry.SnapshotVersion,
		Seed:     g.seed,
		Tick:     g.tick,
		State:    g.state.String(),
		Elapsed:  g.clock.Elapsed(),
		Target:   g.clock.Target(),
		Bookmark: bookmark,
	}

	g.reg.Each(func(e sprite.Entity) {
		kind := kindOf(e)
		if kind == "" {
			return
		}
		b := e.Base()
		state := telemetry.SpriteState{
			ID:   uint64(b.ID()),
			Kind: kind,
			X:    b.Pos.X,
			Y:    b.Pos.Y,
			Rot:  b.Rot,
		}
		if p, ok := e.(collide.Physical); ok {
			vel := p.Physics().Vel
			state.VelX, state.VelY = vel.X, vel.Y
		}
		if h, ok := e.(interface{ Health() float64 }); ok {
			state.Health = h.Health()
		}
		snap.Sprites = append(snap.Sprites, state)
	})
	return snap
}
