// Package world holds the ground layer underneath the sprites: decals such
// as blood splats, oil and scorch marks that fade out over time.
package world

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// DecalKind identifies what a decal looks like.
type DecalKind uint8

const (
	DecalBlood DecalKind = iota
	DecalOil
	DecalScorch
)

func (k DecalKind) String() string {
	switch k {
	case DecalBlood:
		return "blood"
	case DecalOil:
		return "oil"
	case DecalScorch:
		return "scorch"
	default:
		return "unknown"
	}
}

// Position is a decal's world position in pixels.
type Position struct {
	X, Y float64
}

// Decal is a fading mark on the ground.
type Decal struct {
	Kind    DecalKind
	Life    float64 // seconds since the decal was made
	MaxLife float64
	Rot     float64 // degrees
	Size    float64 // pixels
}

// Alpha is 1 for a fresh decal and falls to 0 at MaxLife.
func (d Decal) Alpha() float64 {
	if d.MaxLife <= 0 {
		return 0
	}
	return math.Max(0, 1-d.Life/d.MaxLife)
}

// DrawFunc draws one decal.
type DrawFunc func(pos r2.Vec, d Decal)

// Map stores decals in an ECS world.
type Map struct {
	world  *ecs.World
	mapper *ecs.Map2[Position, Decal]
	filter *ecs.Filter2[Position, Decal]

	maxLife float64
	rng     *rand.Rand
	draw    DrawFunc
	count   int

	expired []ecs.Entity
}

// NewMap creates an empty map whose decals last maxLife seconds.
func NewMap(maxLife float64, seed int64) *Map {
	w := ecs.NewWorld()
	return &Map{
		world:   w,
		mapper:  ecs.NewMap2[Position, Decal](w),
		filter:  ecs.NewFilter2[Position, Decal](w),
		maxLife: maxLife,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// SetDrawer sets the function Render hands decals to.
func (m *Map) SetDrawer(fn DrawFunc) {
	m.draw = fn
}

// Splat leaves a decal at pos with a random orientation.
func (m *Map) Splat(pos r2.Vec, kind DecalKind) {
	p := Position{X: pos.X, Y: pos.Y}
	d := Decal{
		Kind:    kind,
		MaxLife: m.maxLife,
		Rot:     m.rng.Float64() * 360,
		Size:    8 + m.rng.Float64()*8,
	}
	m.mapper.NewEntity(&p, &d)
	m.count++
}

// Run ages every decal and removes the ones past their life.
func (m *Map) Run(dt float64) {
	m.expired = m.expired[:0]

	query := m.filter.Query()
	for query.Next() {
		_, d := query.Get()
		d.Life += dt
		if d.Life >= d.MaxLife {
			m.expired = append(m.expired, query.Entity())
		}
	}

	// remove after the query has finished
	for _, e := range m.expired {
		m.world.RemoveEntity(e)
		m.count--
	}
}

// Render hands every live decal to the drawer.
func (m *Map) Render(dt float64) {
	if m.draw == nil {
		return
	}
	query := m.filter.Query()
	for query.Next() {
		p, d := query.Get()
		m.draw(r2.Vec{X: p.X, Y: p.Y}, *d)
	}
}

// Clear removes every decal.
func (m *Map) Clear() {
	m.world.RemoveEntities(m.filter.Batch(), nil)
	m.count = 0
}

// Count returns the number of live decals.
func (m *Map) Count() int {
	return m.count
}
