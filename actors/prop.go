package actors

import (
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/catalog"
	"github.com/pthm-cable/deadroad/collide"
	"github.com/pthm-cable/deadroad/sprite"
)

const (
	barrelMass = 3
	propDrag   = 3 // fraction of velocity lost per second by loose props
)

var (
	treeColor   = color.RGBA{R: 30, G: 90, B: 40, A: 230}
	barrelColor = color.RGBA{R: 200, G: 110, B: 30, A: 255}
	pumpColor   = color.RGBA{R: 200, G: 200, B: 190, A: 255}
)

// Prop is scenery. Barrels get knocked around; everything else is fixed.
type Prop struct {
	collide.Body

	info catalog.Info
}

// NewProp creates a prop of the given kind at pos.
func NewProp(env *Env, info catalog.Info, pos r2.Vec, rot float64) *Prop {
	p := &Prop{info: info}
	if info.Kind == KindBarrel {
		p.Init(env.Space, p, info.Radius(), barrelMass)
		p.RigidBody = true
	} else {
		p.Init(env.Space, p, info.Radius(), 0)
		p.Stationary = true
	}
	p.Pos = pos
	p.Rot = rot
	return p
}

func (p *Prop) Kind() string { return p.info.Kind }
func (p *Prop) Z() int       { return p.info.Z }

func (p *Prop) PreMove(dt float64) {
	if p.Stationary {
		return
	}
	p.Vel = r2.Scale(math.Max(0, 1-propDrag*dt), p.Vel)
}

func (p *Prop) Render(c sprite.Canvas, dt float64) {
	switch {
	case strings.HasPrefix(p.info.Kind, "Tree"):
		c.Circle(p.Pos, p.info.Width/2, treeColor)
	case p.info.Kind == KindBarrel:
		c.Circle(p.Pos, p.Radius, barrelColor)
	default:
		c.Rect(p.Pos, p.info.Width, p.info.Height, p.Rot, pumpColor)
	}
}
