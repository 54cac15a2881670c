package fx

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/collide"
	"github.com/pthm-cable/deadroad/sprite"
)

const (
	trackWidth       = 4
	trackMaxLife     = 60 // seconds
	trackMaxLength   = 40 // dots
	trackMinVelocity = 10 // pixels per second
)

type dot struct {
	pos r2.Vec
	rot float64
}

// TireTracks leaves dots behind one wheel of a moving car. It detaches from
// the car once full and disappears a minute after the first dot.
type TireTracks struct {
	sprite.Sprite

	car    sprite.Entity
	wheel  r2.Vec // wheel position relative to the car, unrotated
	color  color.RGBA
	length int
	life   float64
	dots   []dot
}

// NewTireTracks creates tracks for the wheel of car. A length of zero uses
// the default.
func NewTireTracks(car sprite.Entity, wheel r2.Vec, col color.RGBA, length int) *TireTracks {
	if length <= 0 {
		length = trackMaxLength
	}
	t := &TireTracks{
		car:    car,
		wheel:  wheel,
		color:  col,
		length: length,
		dots:   make([]dot, 0, length),
	}
	t.Visible = true
	return t
}

func (t *TireTracks) Z() int { return 1 }

// Attached reports whether the tracks still follow their car.
func (t *TireTracks) Attached() bool { return t.car != nil }

// Len returns the number of dots laid so far.
func (t *TireTracks) Len() int { return len(t.dots) }

func (t *TireTracks) PostMove(dt float64) {
	t.layDot()

	// life only counts once something is showing
	if len(t.dots) == 0 {
		return
	}
	t.life += dt
	if t.life > trackMaxLife {
		t.Die()
	}
	if len(t.dots) == t.length {
		t.car = nil
	}
}

func (t *TireTracks) layDot() {
	if t.car == nil || len(t.dots) >= t.length {
		return
	}
	p, ok := t.car.(collide.Physical)
	if !ok || r2.Norm(p.Physics().Vel) <= trackMinVelocity {
		return
	}
	b := t.car.Base()
	pos := r2.Add(b.Pos, sprite.Rotate(t.wheel, b.Rot))
	if n := len(t.dots); n > 0 && r2.Norm(r2.Sub(t.dots[n-1].pos, pos)) <= trackWidth/2 {
		return
	}
	t.dots = append(t.dots, dot{pos: pos, rot: b.Rot})
}

func (t *TireTracks) Render(c sprite.Canvas, dt float64) {
	col := t.color
	col.A = uint8(float64(col.A) * (1 - t.life/trackMaxLife))
	for _, d := range t.dots {
		c.Rect(d.pos, trackWidth, trackWidth, d.rot, col)
	}
}
