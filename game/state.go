package game

import (
	"log/slog"

	"github.com/pthm-cable/deadroad/events"
)

// State is a phase of an episode.
type State int

const (
	StateStart State = iota
	StateRunning
	StateWon
	StateDied
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateRunning:
		return "running"
	case StateWon:
		return "won"
	case StateDied:
		return "died"
	default:
		return "unknown"
	}
}

// runGameState evaluates the current state once. State handlers only assign
// g.state when they transition, so a transition forced by an event handler
// during the evaluation survives it.
func (g *Game) runGameState(dt float64) {
	switch g.state {
	case StateStart:
		g.start()
	case StateRunning:
		g.running(dt)
	case StateWon:
		g.won()
	case StateDied:
		g.died()
	}
}

func (g *Game) start() {
	g.bus.Fire(events.GameStart, nil)
	g.over = false
	g.cleared = false
	g.timedOut = false
	g.clock.SetTime(0)
	g.clock.SetTargetTime(g.cfg.Derived.TargetTime)
	g.state = StateRunning
}

func (g *Game) running(dt float64) {
	// may fire TargetTimePassed, which moves us to died
	g.clock.Tick(dt)

	if g.dude == nil {
		return
	}
	if g.Distance() > g.cfg.Game.TargetMiles {
		g.state = StateWon
	} else if g.dude.Health() <= 0 {
		g.state = StateDied
	}
}

func (g *Game) won() {
	g.over = true
	g.bus.Fire(events.GameOver, StateWon)
}

func (g *Game) died() {
	if !g.cleared {
		if g.world != nil {
			g.world.Clear()
		}
		g.cleared = true
		slog.Info("world cleared", "episode", g.episode, "timed_out", g.timedOut)
	}
	g.over = true
	g.bus.Fire(events.GameOver, StateDied)
}
