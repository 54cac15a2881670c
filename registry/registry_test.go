package registry

import (
	"testing"

	"github.com/pthm-cable/deadroad/sprite"
)

type testEntity struct {
	sprite.Sprite
	name    string
	spawned int
	reaped  int
}

func (e *testEntity) Spawned() { e.spawned++ }
func (e *testEntity) Reaped()  { e.reaped++ }

func names(r *Registry) []string {
	var out []string
	r.Each(func(e sprite.Entity) {
		out = append(out, e.(*testEntity).name)
	})
	return out
}

func TestAddAssignsIncreasingIDs(t *testing.T) {
	r := New()
	var last sprite.ID
	for i := 0; i < 10; i++ {
		e := &testEntity{}
		id := r.Add(e)
		if e.ID() != id {
			t.Fatalf("entity ID %d != returned ID %d", e.ID(), id)
		}
		if i > 0 && id <= last {
			t.Fatalf("ID %d not greater than previous %d", id, last)
		}
		last = id
	}
}

func TestIDsNeverReused(t *testing.T) {
	r := New()
	seen := make(map[sprite.ID]bool)

	for round := 0; round < 5; round++ {
		var ids []sprite.ID
		for i := 0; i < 4; i++ {
			next := r.NextID()
			id := r.Add(&testEntity{})
			if id != next {
				t.Fatalf("Add assigned %d, NextID said %d", id, next)
			}
			if seen[id] {
				t.Fatalf("ID %d reused", id)
			}
			seen[id] = true
			ids = append(ids, id)
		}
		for _, id := range ids {
			r.Remove(id)
		}
		r.Compact()
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestSpawnAndReapHooks(t *testing.T) {
	r := New()
	e := &testEntity{}
	id := r.Add(e)

	if e.spawned != 1 {
		t.Errorf("spawned = %d, want 1", e.spawned)
	}
	if !r.Remove(id) {
		t.Fatal("Remove returned false for live entity")
	}
	if r.Remove(id) {
		t.Error("second Remove should return false")
	}
	if e.reaped != 1 {
		t.Errorf("reaped = %d, want 1", e.reaped)
	}
}

func TestRemoveDuringIteration(t *testing.T) {
	r := New()
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		r.Add(&testEntity{name: n})
	}

	visited := 0
	n := r.Slots()
	for i := 0; i < n; i++ {
		e, live := r.At(i)
		if !live {
			t.Fatalf("slot %d dead before removal", i)
		}
		visited++
		if i%2 == 0 {
			r.Remove(e.Base().ID())
		}
	}
	if visited != 5 {
		t.Errorf("visited %d slots, want 5", visited)
	}

	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}
	r.Compact()
	if r.Slots() != 2 {
		t.Errorf("Slots after compact = %d, want 2", r.Slots())
	}
	got := names(r)
	if len(got) != 2 || got[0] != "b" || got[1] != "d" {
		t.Errorf("remaining = %v, want [b d]", got)
	}
}

func TestCompactKeepsLookup(t *testing.T) {
	r := New()
	a := &testEntity{name: "a"}
	b := &testEntity{name: "b"}
	c := &testEntity{name: "c"}
	r.Add(a)
	r.Add(b)
	r.Add(c)

	r.Remove(a.ID())
	r.Compact()

	got, ok := r.Get(c.ID())
	if !ok || got != c {
		t.Errorf("Get(c) = %v, %v after compact", got, ok)
	}
	if r.Alive(a.ID()) {
		t.Error("removed entity still alive")
	}
	if !r.Contains(b) || r.Contains(a) {
		t.Error("Contains mismatch after compact")
	}
}

func TestObjectsTickInOrder(t *testing.T) {
	o := NewObjects()
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		o.Register(TickerFunc(func(dt float64) { order = append(order, i) }))
	}

	o.Tick(0.1)

	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("tick order = %v, want [0 1 2]", order)
	}
	if o.Len() != 3 {
		t.Errorf("Len = %d, want 3", o.Len())
	}
}

func TestObjectsRegisteredDuringTickWait(t *testing.T) {
	o := NewObjects()
	late := 0
	o.Register(TickerFunc(func(dt float64) {
		o.Register(TickerFunc(func(dt float64) { late++ }))
	}))

	o.Tick(0.1)
	if late != 0 {
		t.Errorf("object registered mid-tick ran %d times in the same tick", late)
	}
	o.Tick(0.1)
	if late != 1 {
		t.Errorf("late = %d after second tick, want 1", late)
	}
}
