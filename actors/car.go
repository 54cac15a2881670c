package actors

import (
	"image/color"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/catalog"
	"github.com/pthm-cable/deadroad/collide"
	"github.com/pthm-cable/deadroad/fx"
	"github.com/pthm-cable/deadroad/sprite"
	"github.com/pthm-cable/deadroad/world"
)

const (
	carMass       = 12
	carMaxSpeed   = 440 // 100 mph
	carTurnRate   = 120 // degrees per second at full lock
	carTurnSpeed  = 60  // speed at which steering reaches full effect
	carRollDrag   = 0.4 // fraction of forward speed lost per second
	carGrip       = 8   // lateral slip removed per second
	carTrackSpeed = 50  // tires mark the road above this speed
)

var carColors = map[string]color.RGBA{
	KindHonda:     {R: 170, G: 40, B: 40, A: 255},
	KindPoliceCar: {R: 30, G: 40, B: 110, A: 255},
}

var (
	wreckColor = color.RGBA{R: 50, G: 50, B: 50, A: 255}
	trackColor = color.RGBA{R: 20, G: 20, B: 20, A: 160}
)

// Car is a rigid body. A driver, if any, steers it; without one it rolls to
// a stop. Crashes wear its health down and a wrecked car explodes once.
type Car struct {
	collide.Body

	env     *Env
	info    catalog.Info
	driver  Input
	health  float64
	wrecked bool
	wheels  [2]r2.Vec
	tracks  [2]*fx.TireTracks
}

// NewCar creates a parked car at pos facing rot.
func NewCar(env *Env, info catalog.Info, pos r2.Vec, rot float64) *Car {
	c := &Car{
		env:    env,
		info:   info,
		health: env.Cfg.Game.CarHealth,
	}
	c.Init(env.Space, c, info.Radius(), carMass)
	c.RigidBody = true
	c.Pos = pos
	c.Rot = rot

	// rear wheels, relative to the center with the car facing north
	wx, wy := info.Width/2-3, info.Height/2-8
	c.wheels = [2]r2.Vec{{X: -wx, Y: wy}, {X: wx, Y: wy}}
	return c
}

func (c *Car) Kind() string    { return c.info.Kind }
func (c *Car) Z() int          { return c.info.Z }
func (c *Car) Health() float64 { return c.health }

// Wrecked reports whether the car has exploded.
func (c *Car) Wrecked() bool { return c.wrecked }

// Drive hands the car to a driver. Pass nil to leave it coasting.
func (c *Car) Drive(in Input) { c.driver = in }

// Speed returns the signed speed along the car's heading.
func (c *Car) Speed() float64 {
	return r2.Dot(c.Vel, sprite.Heading(c.Rot))
}

func (c *Car) PreMove(dt float64) {
	fwd := sprite.Heading(c.Rot)
	speed := r2.Dot(c.Vel, fwd)
	lateral := r2.Sub(c.Vel, r2.Scale(speed, fwd))

	if c.driver != nil && !c.wrecked {
		ctl := c.driver.Controls()
		speed += clampUnit(-ctl.Y) * c.env.Cfg.Game.CarAccel * dt
		turn := clampUnit(ctl.X) * carTurnRate * dt * math.Min(1, math.Abs(speed)/carTurnSpeed)
		if speed < 0 {
			turn = -turn
		}
		c.Rot = math.Mod(c.Rot+turn+360, 360)
		fwd = sprite.Heading(c.Rot)
	}

	speed *= math.Max(0, 1-carRollDrag*dt)
	speed = math.Max(-carMaxSpeed, math.Min(carMaxSpeed, speed))
	lateral = r2.Scale(math.Max(0, 1-carGrip*dt), lateral)
	c.Vel = r2.Add(r2.Scale(speed, fwd), lateral)
}

func (c *Car) PostMove(dt float64) {
	if math.Abs(c.Speed()) <= carTrackSpeed {
		return
	}
	for i, wheel := range c.wheels {
		if c.tracks[i] != nil && c.tracks[i].Attached() {
			continue
		}
		c.tracks[i] = fx.NewTireTracks(c, wheel, trackColor, 0)
		c.env.spawn(c.tracks[i])
	}
}

func (c *Car) Collided(other sprite.Entity, contact *sprite.Contact) {
	dmg := c.env.Cfg.Damage
	if c.wrecked || !solid(other) || contact.Speed <= dmg.CrashSpeed {
		return
	}
	c.health -= (contact.Speed - dmg.CrashSpeed) * dmg.CrashDamage
	if c.health <= 0 {
		c.wreck()
	}
}

// solid reports whether a crash into e hurts. Walkers are soft.
func solid(e sprite.Entity) bool {
	b := e.Base()
	return b.RigidBody || b.Stationary
}

func (c *Car) wreck() {
	c.health = 0
	c.wrecked = true
	c.env.spawn(fx.NewExplosion(c.Pos, c.env.Rand))
	c.env.splat(c.Pos, world.DecalScorch)
	slog.Debug("car wrecked", "kind", c.info.Kind, "x", c.Pos.X, "y", c.Pos.Y)
}

func (c *Car) Render(canvas sprite.Canvas, dt float64) {
	col, ok := carColors[c.info.Kind]
	if !ok || c.wrecked {
		col = wreckColor
	}
	canvas.Rect(c.Pos, c.info.Width, c.info.Height, c.Rot, col)
}
