package sprite

import "testing"

type bare struct {
	Sprite
}

type hooked struct {
	Sprite
	pre, post, integrated, grid, spawned int
}

func (h *hooked) PreMove(float64)   { h.pre++ }
func (h *hooked) PostMove(float64)  { h.post++ }
func (h *hooked) Integrate(float64) { h.integrated++ }
func (h *hooked) UpdateGrid()       { h.grid++ }
func (h *hooked) Spawned()          { h.spawned++ }

func TestMissingCapabilitiesAreNoOps(t *testing.T) {
	e := &bare{}

	PreMove(e, 1)
	SpeculativeMove(e, 1)
	Restore(e)
	PostMove(e, 1)
	Spawned(e)
	Reaped(e)
	Collided(e, e, &Contact{A: e, B: e})
	Render(e, nil, 1)

	if got := QueryCollisions(e, nil); len(got) != 0 {
		t.Errorf("QueryCollisions on bare entity returned %d contacts", len(got))
	}
	if _, ok := CheckCollision(e, e); ok {
		t.Error("CheckCollision on bare entity reported a contact")
	}
	if Integrate(e, 1) {
		t.Error("Integrate on bare entity reported integration")
	}
}

func TestCapabilitiesAreCalled(t *testing.T) {
	h := &hooked{}

	PreMove(h, 1)
	PostMove(h, 1)
	Spawned(h)

	if h.pre != 1 || h.post != 1 || h.spawned != 1 {
		t.Errorf("hooks = pre %d post %d spawned %d, want 1 each", h.pre, h.post, h.spawned)
	}
}

func TestIntegrateFallsBackToGridForStationary(t *testing.T) {
	h := &hooked{}

	if !Integrate(h, 1) {
		t.Error("expected integration for moving entity")
	}
	h.Stationary = true
	if Integrate(h, 1) {
		t.Error("stationary entity must not integrate")
	}

	if h.integrated != 1 || h.grid != 1 {
		t.Errorf("integrated=%d grid=%d, want 1 and 1", h.integrated, h.grid)
	}
}

func TestDieMarksForRemoval(t *testing.T) {
	s := &Sprite{}
	if s.Reaping() {
		t.Fatal("new sprite should not be reaping")
	}
	s.Die()
	if !s.Reaping() {
		t.Error("Die should mark for removal")
	}
	s.ClearReap()
	if s.Reaping() {
		t.Error("ClearReap should drop the mark")
	}
}

func TestContactRigid(t *testing.T) {
	soft := &bare{}
	rigid := &bare{}
	rigid.RigidBody = true

	tests := []struct {
		name string
		c    Contact
		want bool
	}{
		{"both soft", Contact{A: soft, B: soft}, false},
		{"first rigid", Contact{A: rigid, B: soft}, true},
		{"second rigid", Contact{A: soft, B: rigid}, true},
		{"both rigid", Contact{A: rigid, B: rigid}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.Rigid(); got != tc.want {
				t.Errorf("Rigid() = %v, want %v", got, tc.want)
			}
		})
	}
}
