// Package actors implements the sprites that populate a run: the dude, the
// zombies chasing him, cars, and the props they crash into.
package actors

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/catalog"
	"github.com/pthm-cable/deadroad/collide"
	"github.com/pthm-cable/deadroad/config"
	"github.com/pthm-cable/deadroad/nav"
	"github.com/pthm-cable/deadroad/sprite"
	"github.com/pthm-cable/deadroad/world"
)

// Catalog kinds with dedicated behavior.
const (
	KindDude      = "Dude"
	KindZombie    = "Zombie"
	KindHonda     = "Honda"
	KindPoliceCar = "PoliceCar"
	KindBarrel    = "Barrel"
)

// Env is what actors need from the game around them.
type Env struct {
	Cfg     *config.Config
	Space   *collide.Space
	Catalog *catalog.Catalog
	Rand    *rand.Rand
	Nav     *nav.Planner // routes around stationary props; nil walks straight

	Spawn  func(e sprite.Entity) sprite.ID        // adds a sprite mid-run
	Splat  func(pos r2.Vec, kind world.DecalKind) // marks the ground
	Target func() sprite.Entity                   // what zombies chase
}

func (env *Env) spawn(e sprite.Entity) {
	if env.Spawn != nil {
		env.Spawn(e)
	}
}

func (env *Env) splat(pos r2.Vec, kind world.DecalKind) {
	if env.Splat != nil {
		env.Splat(pos, kind)
	}
}

func (env *Env) target() sprite.Entity {
	if env.Target == nil {
		return nil
	}
	return env.Target()
}

// Controls are axis values in [-1, 1]. X points right, Y points down.
type Controls struct {
	X, Y float64
}

// Input produces controls once per tick.
type Input interface {
	Controls() Controls
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// direction turns controls into a vector no longer than 1.
func (c Controls) direction() r2.Vec {
	v := r2.Vec{X: clampUnit(c.X), Y: clampUnit(c.Y)}
	if n := r2.Norm(v); n > 1 {
		v = r2.Scale(1/n, v)
	}
	return v
}
