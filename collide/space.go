// Package collide implements the collision capability set consumed by the
// simulation pipeline: a grid broad phase, the per-tick "currently colliding"
// marker set, and the soft and rigid contact rectifiers.
package collide

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/sprite"
)

// penetrationBias is the fraction of an existing overlap removed per tick by
// the soft rectifier. Gaps that have not closed yet are handled exactly.
const penetrationBias = 0.2

type cellKey struct {
	col, row int
}

type pairKey struct {
	lo, hi sprite.ID
}

func makePair(a, b sprite.ID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Space holds the broad-phase grid and resolves contacts between bodies.
type Space struct {
	cellSize    float64
	restitution float64
	cells       map[cellKey][]*Body
	colliding   map[pairKey]struct{}
	maxRadius   float64
	count       int

	// OnReport is called once per colliding pair per tick, after the
	// participants' Collided hooks.
	OnReport func(c *sprite.Contact)
}

// NewSpace creates a space with square cells of cellSize pixels.
func NewSpace(cellSize, restitution float64) *Space {
	return &Space{
		cellSize:    cellSize,
		restitution: restitution,
		cells:       make(map[cellKey][]*Body),
		colliding:   make(map[pairKey]struct{}),
	}
}

// ClearCollisionMarkers forgets which pairs were seen this tick.
func (s *Space) ClearCollisionMarkers() {
	clear(s.colliding)
}

// markPair records a pair as colliding. Returns false if it already was.
func (s *Space) markPair(a, b sprite.ID) bool {
	k := makePair(a, b)
	if _, ok := s.colliding[k]; ok {
		return false
	}
	s.colliding[k] = struct{}{}
	return true
}

// Colliding reports whether the pair is currently marked.
func (s *Space) Colliding(a, b sprite.ID) bool {
	_, ok := s.colliding[makePair(a, b)]
	return ok
}

// SpeculativeContactRectify removes just enough approaching velocity from a
// soft contact that the pair will not overlap at the end of the step, and
// pushes existing overlaps apart by a fraction per step. Speculative
// positions are refreshed so later iterations see the corrected motion.
func (s *Space) SpeculativeContactRectify(c *sprite.Contact, dt float64) {
	a, b := physics(c.A), physics(c.B)
	if a == nil || b == nil || dt <= 0 {
		return
	}
	ia, ib := a.invMass(), b.invMass()
	sum := ia + ib
	if sum == 0 {
		return
	}

	pa, pb := a.prePosition(), b.prePosition()
	n, dist := normal(pa, pb)
	gap := dist - (a.Radius + b.Radius)

	target := -gap / dt
	if gap < 0 {
		target = -gap * penetrationBias / dt
	}

	vn := r2.Dot(r2.Sub(b.Vel, a.Vel), n)
	if vn >= target {
		return
	}

	j := target - vn
	a.Vel = r2.Sub(a.Vel, r2.Scale(j*ia/sum, n))
	b.Vel = r2.Add(b.Vel, r2.Scale(j*ib/sum, n))

	if a.speculating {
		a.Pos = r2.Add(pa, r2.Scale(dt, a.Vel))
	}
	if b.speculating {
		b.Pos = r2.Add(pb, r2.Scale(dt, b.Vel))
	}
}

// RigidBodyContactRectify applies a momentum-preserving restitution impulse
// to an approaching pair. Separating pairs are left alone.
func (s *Space) RigidBodyContactRectify(c *sprite.Contact) {
	a, b := physics(c.A), physics(c.B)
	if a == nil || b == nil {
		return
	}
	ia, ib := a.invMass(), b.invMass()
	sum := ia + ib
	if sum == 0 {
		return
	}

	n, _ := normal(a.Pos, b.Pos)
	vn := r2.Dot(r2.Sub(b.Vel, a.Vel), n)
	if vn >= 0 {
		return
	}

	j := -(1 + s.restitution) * vn / sum
	a.Vel = r2.Sub(a.Vel, r2.Scale(j*ia, n))
	b.Vel = r2.Add(b.Vel, r2.Scale(j*ib, n))
}

// ReportCollision notifies both participants of a contact once per pair per tick.
func (s *Space) ReportCollision(c *sprite.Contact) {
	if !s.markPair(c.A.Base().ID(), c.B.Base().ID()) {
		return
	}
	sprite.Collided(c.A, c.B, c)
	sprite.Collided(c.B, c.A, c)
	if s.OnReport != nil {
		s.OnReport(c)
	}
}

// Count returns the number of bodies in the grid.
func (s *Space) Count() int {
	return s.count
}

// QueryRadiusInto appends bodies whose centers lie within radius of pos.
func (s *Space) QueryRadiusInto(dst []*Body, pos r2.Vec, radius float64, exclude *Body) []*Body {
	cellRadius := int(math.Ceil(radius / s.cellSize))
	center := s.cellOf(pos)
	radiusSq := radius * radius

	for dc := -cellRadius; dc <= cellRadius; dc++ {
		for dr := -cellRadius; dr <= cellRadius; dr++ {
			for _, other := range s.cells[cellKey{col: center.col + dc, row: center.row + dr}] {
				if other == exclude {
					continue
				}
				if r2.Norm2(r2.Sub(other.Pos, pos)) <= radiusSq {
					dst = append(dst, other)
				}
			}
		}
	}
	return dst
}

func (s *Space) cellOf(p r2.Vec) cellKey {
	return cellKey{
		col: int(math.Floor(p.X / s.cellSize)),
		row: int(math.Floor(p.Y / s.cellSize)),
	}
}

func (s *Space) insert(b *Body) {
	k := s.cellOf(b.Pos)
	s.cells[k] = append(s.cells[k], b)
	b.cell = k
	b.inGrid = true
	s.count++
	if b.Radius > s.maxRadius {
		s.maxRadius = b.Radius
	}
}

func (s *Space) remove(b *Body) {
	if !b.inGrid {
		return
	}
	list := s.cells[b.cell]
	for i, other := range list {
		if other == b {
			list[i] = list[len(list)-1]
			list[len(list)-1] = nil
			list = list[:len(list)-1]
			break
		}
	}
	if len(list) == 0 {
		delete(s.cells, b.cell)
	} else {
		s.cells[b.cell] = list
	}
	b.inGrid = false
	s.count--
}

func (s *Space) move(b *Body) {
	if !b.inGrid {
		return
	}
	if k := s.cellOf(b.Pos); k != b.cell {
		s.remove(b)
		s.insert(b)
	}
}

// normal returns the unit vector from p to q and the distance between them.
// Coincident points get an arbitrary but stable axis.
func normal(p, q r2.Vec) (r2.Vec, float64) {
	d := r2.Sub(q, p)
	dist := r2.Norm(d)
	if dist == 0 {
		return r2.Vec{X: 1}, 0
	}
	return r2.Scale(1/dist, d), dist
}
