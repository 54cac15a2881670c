package actors

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/catalog"
	"github.com/pthm-cable/deadroad/collide"
	"github.com/pthm-cable/deadroad/nav"
	"github.com/pthm-cable/deadroad/sprite"
	"github.com/pthm-cable/deadroad/world"
)

const (
	zombieMass   = 1
	zombieHealth = 10

	wanderChance = 0.5 // heading changes per second when nothing is in sight
	wanderSpeed  = 0.3 // fraction of full speed
	routeMaxAge  = 1.0 // seconds before a detour is replanned
)

var zombieColor = color.RGBA{R: 90, G: 160, B: 70, A: 255}

// Zombie shambles towards the target when it can see it and wanders
// otherwise. Anything rigid that hits it fast enough leaves a splat.
type Zombie struct {
	collide.Body

	env    *Env
	info   catalog.Info
	health float64
	wander r2.Vec
	route  *nav.Route
}

// NewZombie creates a zombie at pos.
func NewZombie(env *Env, info catalog.Info, pos r2.Vec, rot float64) *Zombie {
	z := &Zombie{env: env, info: info, health: zombieHealth}
	z.Init(env.Space, z, info.Radius(), zombieMass)
	z.Pos = pos
	z.Rot = rot
	return z
}

func (z *Zombie) Kind() string    { return z.info.Kind }
func (z *Zombie) Z() int          { return z.info.Z }
func (z *Zombie) Health() float64 { return z.health }

// Alive reports whether the zombie has not been splatted.
func (z *Zombie) Alive() bool { return z.health > 0 }

func (z *Zombie) PreMove(dt float64) {
	game := z.env.Cfg.Game
	if t := z.env.target(); t != nil {
		target := t.Base().Pos
		if dist := r2.Norm(r2.Sub(target, z.Pos)); dist > 0 && dist <= game.ZombieSightPx {
			to := r2.Sub(z.waypoint(target, dt), z.Pos)
			if r2.Norm2(to) == 0 {
				to = r2.Sub(target, z.Pos)
			}
			dir := r2.Unit(to)
			z.Vel = r2.Scale(game.ZombieSpeed, dir)
			z.Rot = sprite.Bearing(dir)
			return
		}
	}
	z.route = nil

	if z.env.Rand != nil && z.env.Rand.Float64() < wanderChance*dt {
		rot := 360 * z.env.Rand.Float64()
		z.wander = r2.Scale(game.ZombieSpeed*wanderSpeed, sprite.Heading(rot))
		z.Rot = rot
	}
	z.Vel = z.wander
}

// waypoint returns where to walk next to reach target, detouring when a
// stationary prop blocks the straight line.
func (z *Zombie) waypoint(target r2.Vec, dt float64) r2.Vec {
	planner := z.env.Nav
	if planner == nil || planner.Grid().HasLineOfSight(z.Pos, target) {
		z.route = nil
		return target
	}

	if z.route != nil {
		z.route.Age += dt
	}
	if !z.route.Valid(planner.Grid(), target, routeMaxAge) {
		if z.route = planner.Plan(z.Pos, target); z.route == nil {
			return target
		}
	}
	if wp, ok := z.route.Next(z.Pos, nav.CellSize); ok {
		return wp
	}
	return target
}

func (z *Zombie) Collided(other sprite.Entity, c *sprite.Contact) {
	if !z.Alive() || !other.Base().RigidBody {
		return
	}
	if c.Speed > z.env.Cfg.Damage.SplatSpeed {
		z.health = 0
		z.env.splat(z.Pos, world.DecalBlood)
		z.Die()
	}
}

func (z *Zombie) Render(c sprite.Canvas, dt float64) {
	c.Circle(z.Pos, z.Radius, zombieColor)
	arms := r2.Add(z.Pos, r2.Scale(z.Radius+4, sprite.Heading(z.Rot)))
	c.Line(z.Pos, arms, 3, zombieColor)
}
