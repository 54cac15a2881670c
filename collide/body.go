package collide

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/sprite"
)

// Physical is implemented by entities that carry a Body.
type Physical interface {
	Physics() *Body
}

func physics(e sprite.Entity) *Body {
	if p, ok := e.(Physical); ok {
		return p.Physics()
	}
	return nil
}

// Body is an embeddable circle collider. Embedding types call Init with
// themselves as owner so contacts refer to the outer entity.
type Body struct {
	sprite.Sprite

	Vel    r2.Vec  // pixels per second
	Radius float64 // collision radius in pixels
	Mass   float64 // zero means immovable

	space       *Space
	owner       sprite.Entity
	pre         r2.Vec
	speculating bool
	cell        cellKey
	inGrid      bool
}

// Init binds the body to a space and to the entity that embeds it.
func (b *Body) Init(space *Space, owner sprite.Entity, radius, mass float64) {
	b.space = space
	b.owner = owner
	b.Radius = radius
	b.Mass = mass
	b.Visible = true
	b.Collidable = true
}

// Physics returns the body itself.
func (b *Body) Physics() *Body { return b }

func (b *Body) invMass() float64 {
	if b.Mass <= 0 || b.Stationary {
		return 0
	}
	return 1 / b.Mass
}

func (b *Body) prePosition() r2.Vec {
	if b.speculating {
		return b.pre
	}
	return b.Pos
}

// Spawned enters the broad-phase grid.
func (b *Body) Spawned() {
	if b.space != nil && !b.inGrid {
		b.space.insert(b)
	}
}

// Reaped leaves the broad-phase grid.
func (b *Body) Reaped() {
	if b.space != nil {
		b.space.remove(b)
	}
}

// SpeculativeMove saves the current position and moves to where the body
// would be after dt at its current velocity.
func (b *Body) SpeculativeMove(dt float64) {
	if !b.speculating {
		b.pre = b.Pos
	}
	b.speculating = true
	b.Pos = r2.Add(b.pre, r2.Scale(dt, b.Vel))
}

// RestorePreSpeculativePosition rolls back a SpeculativeMove.
func (b *Body) RestorePreSpeculativePosition() {
	if !b.speculating {
		return
	}
	b.Pos = b.pre
	b.speculating = false
}

// Integrate commits movement at the current velocity.
func (b *Body) Integrate(dt float64) {
	b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))
	b.UpdateGrid()
}

// UpdateGrid moves the body to the grid cell of its position.
func (b *Body) UpdateGrid() {
	if b.space != nil {
		b.space.move(b)
	}
}

// QueryCollisions appends contacts with overlapping neighbours. Each pair is
// reported once per tick no matter which side queries first.
func (b *Body) QueryCollisions(dst []sprite.Contact) []sprite.Contact {
	if b.space == nil || b.owner == nil {
		return dst
	}
	reach := b.Radius + b.space.maxRadius + b.space.cellSize
	var near [16]*Body
	for _, other := range b.space.QueryRadiusInto(near[:0], b.Pos, reach, b) {
		o := other.owner
		if o == nil || !other.Visible || !other.Collidable {
			continue
		}
		c, ok := b.contactWith(other)
		if !ok {
			continue
		}
		if !b.space.markPair(b.ID(), other.ID()) {
			continue
		}
		dst = append(dst, c)
	}
	return dst
}

// CheckCollision tests this body against one other entity at their current
// positions.
func (b *Body) CheckCollision(other sprite.Entity) (sprite.Contact, bool) {
	ob := physics(other)
	if ob == nil || b.owner == nil || ob.owner == nil {
		return sprite.Contact{}, false
	}
	return b.contactWith(ob)
}

func (b *Body) contactWith(other *Body) (sprite.Contact, bool) {
	n, dist := normal(b.Pos, other.Pos)
	depth := b.Radius + other.Radius - dist
	if depth <= 0 {
		return sprite.Contact{}, false
	}
	return sprite.Contact{
		A:      b.owner,
		B:      other.owner,
		Normal: n,
		Depth:  depth,
		Speed:  closingSpeed(b, other, n),
	}, true
}

// closingSpeed returns how fast a and b approach along n.
func closingSpeed(a, b *Body, n r2.Vec) float64 {
	vn := r2.Dot(r2.Sub(b.Vel, a.Vel), n)
	if vn > 0 {
		return 0
	}
	return -vn
}
