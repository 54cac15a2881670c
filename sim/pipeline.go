// Package sim runs the per-tick sprite simulation: a fixed sequence of
// phases over every entity in the registry, with speculative contacts and
// rigid-body correction.
package sim

import (
	"github.com/pthm-cable/deadroad/registry"
	"github.com/pthm-cable/deadroad/sprite"
)

// SoftIterations is the number of passes over the soft contact list.
const SoftIterations = 3

// Phase names reported to a PhaseTimer.
const (
	PhasePreMove     = "pre_move"
	PhaseSpeculative = "speculative"
	PhaseContacts    = "contacts"
	PhaseSoft        = "soft"
	PhaseIntegrate   = "integrate"
	PhaseRigid       = "rigid"
	PhasePostMove    = "post_move"
)

// Phases lists the phase names in execution order.
var Phases = []string{
	PhasePreMove, PhaseSpeculative, PhaseContacts, PhaseSoft,
	PhaseIntegrate, PhaseRigid, PhasePostMove,
}

// Collidable is the collision capability set the pipeline drives.
type Collidable interface {
	ClearCollisionMarkers()
	SpeculativeContactRectify(c *sprite.Contact, dt float64)
	RigidBodyContactRectify(c *sprite.Contact)
	ReportCollision(c *sprite.Contact)
}

// PhaseTimer receives a call at the start of every phase.
type PhaseTimer interface {
	StartPhase(name string)
}

// TickStats summarizes one tick.
type TickStats struct {
	Entities int // live entities at tick start
	Contacts int // contacts generated in the contact phase
	Soft     int // contacts handled by the soft pass
	Rigid    int // contacts handled by the rigid pass
	Reported int // contacts handed to ReportCollision
	Skipped  int // contacts dropped because a participant left the registry
	Reaped   int // entities removed at the end of the tick
}

// Pipeline advances every registered entity by one tick.
type Pipeline struct {
	reg   *registry.Registry
	coll  Collidable
	timer PhaseTimer

	lastContacts int
	rigid        []bool // per-contact resolution path, reused across ticks
}

// New creates a pipeline over reg that resolves contacts through coll.
func New(reg *registry.Registry, coll Collidable) *Pipeline {
	return &Pipeline{reg: reg, coll: coll}
}

// SetTimer attaches an optional phase timer. Pass nil to detach.
func (p *Pipeline) SetTimer(t PhaseTimer) {
	p.timer = t
}

func (p *Pipeline) phase(name string) {
	if p.timer != nil {
		p.timer.StartPhase(name)
	}
}

// Tick runs the seven phases in order. Only the slots present when the tick
// starts take part; entities added mid-tick wait for the next one.
func (p *Pipeline) Tick(dt float64) TickStats {
	if p.reg.Len() == 0 {
		return TickStats{}
	}

	stats := TickStats{Entities: p.reg.Len()}
	n := p.reg.Slots()

	p.phase(PhasePreMove)
	for i := 0; i < n; i++ {
		if e, ok := p.visible(i); ok {
			sprite.PreMove(e, dt)
		}
	}

	p.phase(PhaseSpeculative)
	for i := 0; i < n; i++ {
		if e, ok := p.collidable(i); ok {
			sprite.SpeculativeMove(e, dt)
		}
	}

	p.phase(PhaseContacts)
	p.coll.ClearCollisionMarkers()
	contacts := make([]sprite.Contact, 0, p.lastContacts)
	for i := 0; i < n; i++ {
		if e, ok := p.collidable(i); ok {
			contacts = sprite.QueryCollisions(e, contacts)
		}
	}
	p.lastContacts = len(contacts)
	stats.Contacts = len(contacts)

	// Each contact is soft or rigid for the whole tick, whatever the hooks
	// below do to the body flags.
	rigid := p.rigid[:0]
	for i := range contacts {
		rigid = append(rigid, contacts[i].Rigid())
		if !rigid[i] {
			stats.Soft++
		}
	}
	p.rigid = rigid

	p.phase(PhaseSoft)
	for iter := 0; iter < SoftIterations; iter++ {
		for i := range contacts {
			if rigid[i] {
				continue
			}
			p.coll.SpeculativeContactRectify(&contacts[i], dt)
		}
	}

	p.phase(PhaseIntegrate)
	for i := 0; i < n; i++ {
		e, ok := p.visible(i)
		if !ok {
			continue
		}
		if e.Base().Collidable {
			sprite.Restore(e)
		}
		sprite.Integrate(e, dt)
	}

	p.phase(PhaseRigid)
	p.coll.ClearCollisionMarkers()
	for i := range contacts {
		c := &contacts[i]
		if !p.reg.Contains(c.A) || !p.reg.Contains(c.B) {
			stats.Skipped++
			continue
		}
		if rigid[i] {
			p.rectifyRigid(c, dt)
			stats.Rigid++
		}
		p.coll.ReportCollision(c)
		stats.Reported++
	}

	p.phase(PhasePostMove)
	for i := 0; i < n; i++ {
		e, live := p.reg.At(i)
		if !live {
			continue
		}
		b := e.Base()
		if b.Visible {
			sprite.PostMove(e, dt)
		}
		if b.Reaping() {
			b.ClearReap()
			if p.reg.Remove(b.ID()) {
				stats.Reaped++
			}
		}
	}
	p.reg.Compact()

	return stats
}

// rectifyRigid applies the rigid impulse, then checks whether the corrected
// velocities still drive the pair into each other within dt and softens any
// remaining overlap before rolling both back.
func (p *Pipeline) rectifyRigid(c *sprite.Contact, dt float64) {
	p.coll.RigidBodyContactRectify(c)

	sprite.SpeculativeMove(c.A, dt)
	sprite.SpeculativeMove(c.B, dt)
	if retry, ok := sprite.CheckCollision(c.A, c.B); ok {
		p.coll.SpeculativeContactRectify(&retry, dt)
	}
	sprite.Restore(c.A)
	sprite.Restore(c.B)
}

func (p *Pipeline) visible(i int) (sprite.Entity, bool) {
	e, live := p.reg.At(i)
	if !live || !e.Base().Visible {
		return nil, false
	}
	return e, true
}

func (p *Pipeline) collidable(i int) (sprite.Entity, bool) {
	e, ok := p.visible(i)
	if !ok || !e.Base().Collidable {
		return nil, false
	}
	return e, true
}
