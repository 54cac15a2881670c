// Package fx holds short-lived visual sprites that take no part in collisions.
package fx

import (
	"image/color"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/sprite"
)

const (
	explosionMaxLife = 0.2 // seconds
	explosionGrowth  = 20  // scale per second
	explosionSize    = 40  // pixels at scale 1
	explosionFrames  = 4

	KindExplosion = "Explosion"
)

var explosionColors = [explosionFrames]color.RGBA{
	{R: 255, G: 170, B: 40, A: 255},
	{R: 255, G: 120, B: 20, A: 255},
	{R: 240, G: 80, B: 20, A: 255},
	{R: 255, G: 210, B: 90, A: 255},
}

// Explosion is a flash that grows and fades out quickly.
type Explosion struct {
	sprite.Sprite

	frame   int
	life    float64
	scale   float64
	opacity float64
}

// NewExplosion creates an explosion centered on pos.
func NewExplosion(pos r2.Vec, rng *rand.Rand) *Explosion {
	e := &Explosion{
		frame:   rng.Intn(explosionFrames),
		scale:   0.1,
		opacity: 1,
	}
	e.Pos = pos
	e.Rot = 360 * rng.Float64()
	e.Visible = true
	return e
}

func (e *Explosion) Kind() string { return KindExplosion }
func (e *Explosion) Z() int       { return 150 }

// Scale returns the current size multiplier.
func (e *Explosion) Scale() float64 { return e.scale }

// Opacity returns the current opacity in [0, 1].
func (e *Explosion) Opacity() float64 { return e.opacity }

func (e *Explosion) PreMove(dt float64) {
	e.scale += explosionGrowth * dt
	e.opacity = math.Max(0, e.opacity-dt)
}

func (e *Explosion) PostMove(dt float64) {
	e.life += dt
	if e.life > explosionMaxLife {
		e.Die()
	}
}

func (e *Explosion) Render(c sprite.Canvas, dt float64) {
	col := explosionColors[e.frame]
	col.A = uint8(255 * e.opacity)
	c.Circle(e.Pos, explosionSize/2*e.scale, col)
}
