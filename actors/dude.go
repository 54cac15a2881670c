package actors

import (
	"image/color"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/catalog"
	"github.com/pthm-cable/deadroad/collide"
	"github.com/pthm-cable/deadroad/sprite"
	"github.com/pthm-cable/deadroad/world"
)

const dudeMass = 1

var (
	dudeColor = color.RGBA{R: 70, G: 130, B: 230, A: 255}
	deadColor = color.RGBA{R: 110, G: 20, B: 20, A: 255}
)

// Dude is the player. He walks where his input points and loses health to
// zombie bites and crashes.
type Dude struct {
	collide.Body

	env    *Env
	info   catalog.Info
	input  Input
	health float64
	dt     float64
}

// NewDude creates a dude at pos steered by input.
func NewDude(env *Env, info catalog.Info, pos r2.Vec, input Input) *Dude {
	d := &Dude{
		env:    env,
		info:   info,
		input:  input,
		health: env.Cfg.Game.DudeHealth,
	}
	d.Init(env.Space, d, info.Radius(), dudeMass)
	d.Pos = pos
	return d
}

func (d *Dude) Kind() string    { return d.info.Kind }
func (d *Dude) Z() int          { return d.info.Z }
func (d *Dude) Health() float64 { return d.health }

// Alive reports whether the dude has health left.
func (d *Dude) Alive() bool { return d.health > 0 }

// SetInput replaces the dude's controls.
func (d *Dude) SetInput(in Input) { d.input = in }

func (d *Dude) PreMove(dt float64) {
	d.dt = dt
	if !d.Alive() || d.input == nil {
		d.Vel = r2.Vec{}
		return
	}
	dir := d.input.Controls().direction()
	d.Vel = r2.Scale(d.env.Cfg.Game.DudeSpeed, dir)
	if dir != (r2.Vec{}) {
		d.Rot = sprite.Bearing(dir)
	}
}

func (d *Dude) Collided(other sprite.Entity, c *sprite.Contact) {
	dmg := d.env.Cfg.Damage
	if z, ok := other.(*Zombie); ok && z.Alive() {
		d.hurt(dmg.ZombieBite * d.dt)
	}
	if other.Base().RigidBody && c.Speed > dmg.CrashSpeed {
		d.hurt((c.Speed - dmg.CrashSpeed) * dmg.CrashDamage)
	}
}

func (d *Dude) hurt(amount float64) {
	if !d.Alive() {
		return
	}
	d.health -= amount
	if d.health <= 0 {
		d.health = 0
		d.env.splat(d.Pos, world.DecalBlood)
		slog.Debug("dude died", "x", d.Pos.X, "y", d.Pos.Y)
	}
}

func (d *Dude) Render(c sprite.Canvas, dt float64) {
	col := dudeColor
	if !d.Alive() {
		col = deadColor
	}
	c.Circle(d.Pos, d.Radius, col)
	nose := r2.Add(d.Pos, r2.Scale(d.Radius+3, sprite.Heading(d.Rot)))
	c.Line(d.Pos, nose, 2, col)
}
