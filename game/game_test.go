package game

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/collide"
	"github.com/pthm-cable/deadroad/config"
	"github.com/pthm-cable/deadroad/events"
	"github.com/pthm-cable/deadroad/sprite"
)

const dt = 1.0 / 60.0

type fakeWorld struct {
	runs, renders, clears int
}

func (w *fakeWorld) Run(dt float64)    { w.runs++ }
func (w *fakeWorld) Render(dt float64) { w.renders++ }
func (w *fakeWorld) Clear()            { w.clears++ }

// walker is a soft-bodied player or zombie.
type walker struct {
	collide.Body
	kind   string
	health float64
	z      int
	drawn  *[]string
}

func newWalker(g *Game, kind string, x, y float64) *walker {
	w := &walker{kind: kind, health: 100}
	w.Init(g.Space(), w, 10, 1)
	w.Pos = r2.Vec{X: x, Y: y}
	return w
}

func (w *walker) Kind() string    { return w.kind }
func (w *walker) Health() float64 { return w.health }
func (w *walker) Z() int          { return w.z }

func (w *walker) Render(c sprite.Canvas, dt float64) {
	if w.drawn != nil {
		*w.drawn = append(*w.drawn, w.kind)
	}
}

func newTestGame(t *testing.T, mutate func(*config.Config)) (*Game, *fakeWorld) {
	t.Helper()
	cfg := config.Defaults()
	if mutate != nil {
		mutate(cfg)
	}
	w := &fakeWorld{}
	return New(cfg, Options{World: w}), w
}

func countEvents(g *Game, name string) *int {
	n := new(int)
	g.Bus().Subscribe(name, func(events.Event) { *n++ })
	return n
}

func TestStartEntersRunning(t *testing.T) {
	g, w := newTestGame(t, nil)
	starts := countEvents(g, events.GameStart)

	g.Step(dt)

	if g.State() != StateRunning {
		t.Fatalf("State = %v, want running", g.State())
	}
	if *starts != 1 {
		t.Errorf("game start fired %d times, want 1", *starts)
	}
	if g.Over() {
		t.Error("Over = true after start")
	}
	if g.Clock().Target() != g.Config().Derived.TargetTime {
		t.Errorf("target = %v, want %v", g.Clock().Target(), g.Config().Derived.TargetTime)
	}
	if w.runs != 0 {
		t.Errorf("world ran %d times during start, want 0", w.runs)
	}

	g.Step(dt)
	if w.runs != 1 {
		t.Errorf("world ran %d times in first running step, want 1", w.runs)
	}
	if g.Clock().Elapsed() != dt {
		t.Errorf("elapsed = %v, want %v", g.Clock().Elapsed(), dt)
	}
}

func TestWonFiresGameOverEveryEvaluation(t *testing.T) {
	g, w := newTestGame(t, nil)
	overs := countEvents(g, events.GameOver)
	changes := countEvents(g, events.StateChanged)

	dude := newWalker(g, "Dude", 21*g.Config().Derived.PixelsPerMile, 0)
	g.NewDude(dude)

	g.Step(dt) // start
	g.Step(dt) // running -> won
	if g.State() != StateWon {
		t.Fatalf("State = %v, want won", g.State())
	}
	if g.Distance() != 21 {
		t.Errorf("Distance = %v, want 21", g.Distance())
	}
	if g.Over() {
		t.Error("Over set before the won state ran")
	}

	g.Step(dt)
	g.Step(dt)

	if !g.Over() {
		t.Error("Over = false after won")
	}
	if *overs != 2 {
		t.Errorf("game over fired %d times, want 2", *overs)
	}
	if *changes != 2 {
		t.Errorf("state changed fired %d times, want 2", *changes)
	}
	if w.clears != 0 {
		t.Errorf("world cleared %d times on a win", w.clears)
	}
}

func TestTimeoutForcesDied(t *testing.T) {
	g, w := newTestGame(t, func(c *config.Config) {
		c.Derived.TargetTime = 0.04
	})
	overs := countEvents(g, events.GameOver)
	g.NewDude(newWalker(g, "Dude", 0, 0))

	steps := 0
	for g.State() != StateDied && steps < 10 {
		g.Step(dt)
		steps++
	}
	if g.State() != StateDied {
		t.Fatalf("State = %v after %d steps, want died", g.State(), steps)
	}
	if !g.TimedOut() {
		t.Error("timeout not recorded")
	}
	if w.clears != 0 {
		t.Errorf("world cleared before died ran")
	}

	for i := 0; i < 3; i++ {
		g.Step(dt)
	}

	if w.clears != 1 {
		t.Errorf("world cleared %d times, want 1", w.clears)
	}
	if !g.Over() {
		t.Error("Over = false after died")
	}
	if *overs != 3 {
		t.Errorf("game over fired %d times, want 3", *overs)
	}

	ep := g.LastEpisode()
	if ep == nil {
		t.Fatal("no episode reported")
	}
	if ep.Outcome != "died" || !ep.TimedOut || ep.Index != 1 {
		t.Errorf("episode = %+v", ep)
	}
}

func TestHealthDepletedDies(t *testing.T) {
	g, _ := newTestGame(t, nil)
	dude := newWalker(g, "Dude", 0, 0)
	g.NewDude(dude)

	g.Step(dt)
	dude.health = 0
	g.Step(dt)

	if g.State() != StateDied {
		t.Errorf("State = %v, want died", g.State())
	}
	if g.timedOut {
		t.Error("death by health recorded as timeout")
	}
}

func TestRestartClearsAgain(t *testing.T) {
	g, w := newTestGame(t, nil)
	starts := countEvents(g, events.GameStart)
	dude := newWalker(g, "Dude", 0, 0)
	dude.health = 0
	g.NewDude(dude)

	g.Step(dt) // start
	g.Step(dt) // running -> died
	g.Step(dt) // died
	if w.clears != 1 {
		t.Fatalf("clears = %d, want 1", w.clears)
	}

	g.Restart()
	if g.Episode() != 2 {
		t.Errorf("Episode = %d, want 2", g.Episode())
	}
	g.Step(dt)
	if g.Over() || g.State() != StateRunning {
		t.Errorf("after restart: over %v state %v", g.Over(), g.State())
	}
	g.Step(dt)
	g.Step(dt)

	if *starts != 2 {
		t.Errorf("game start fired %d times, want 2", *starts)
	}
	if w.clears != 2 {
		t.Errorf("clears = %d after second death, want 2", w.clears)
	}
}

func TestRestartResetsClock(t *testing.T) {
	g, _ := newTestGame(t, nil)
	g.NewDude(newWalker(g, "Dude", 0, 0))

	for i := 0; i < 6; i++ {
		g.Step(dt)
	}
	if g.Clock().Elapsed() <= 0 {
		t.Fatalf("Elapsed = %v after running, want > 0", g.Clock().Elapsed())
	}

	g.Restart()
	g.Step(dt)

	if g.State() != StateRunning {
		t.Fatalf("State = %v, want running", g.State())
	}
	if g.Clock().Elapsed() != 0 {
		t.Errorf("Elapsed = %v after restart, want 0", g.Clock().Elapsed())
	}
	if g.Clock().Target() != g.Config().Derived.TargetTime {
		t.Errorf("Target = %v, want %v", g.Clock().Target(), g.Config().Derived.TargetTime)
	}
}

func TestInstancesAreIndependent(t *testing.T) {
	a, _ := newTestGame(t, nil)
	b, _ := newTestGame(t, nil)

	a.Step(dt)
	a.Step(dt)

	if b.State() != StateStart || b.Clock().Elapsed() != 0 {
		t.Errorf("second game changed: state %v elapsed %v", b.State(), b.Clock().Elapsed())
	}
	if a.Bus() == b.Bus() || a.Registry() == b.Registry() {
		t.Error("games share collaborators")
	}
}

func TestNewDudeReplacesPrevious(t *testing.T) {
	g, _ := newTestGame(t, nil)
	var got []sprite.Entity
	g.Bus().Subscribe(events.NewDude, func(ev events.Event) {
		got = append(got, ev.Payload.(sprite.Entity))
	})

	first := newWalker(g, "Dude", 0, 0)
	second := newWalker(g, "Dude", 500, 500)
	g.NewDude(first)
	g.NewDude(second)

	if !first.Reaping() {
		t.Error("previous dude not marked dead")
	}
	if g.Dude() != second {
		t.Error("Dude() is not the new dude")
	}
	if len(got) != 2 || got[1] != second {
		t.Errorf("new dude payloads = %v", got)
	}

	g.Step(dt)
	g.Step(dt)
	if g.Registry().Contains(first) {
		t.Error("previous dude still registered after a running tick")
	}
	if !g.Registry().Contains(second) {
		t.Error("new dude missing from registry")
	}
}

type fakeMarshaler struct{}

func (fakeMarshaler) Marshal(desc string) (sprite.Entity, error) {
	if desc == "bad" {
		return nil, errors.New("unknown kind")
	}
	w := &walker{kind: desc}
	w.Pos = r2.Vec{X: 1, Y: 2}
	return w, nil
}

func TestAddSpritesFromStrings(t *testing.T) {
	g, _ := newTestGame(t, nil)
	loaded := 0
	g.Bus().Subscribe(events.WaitingSpritesLoaded, func(events.Event) {
		loaded++
		if g.WaitingSpriteCount() != 0 {
			t.Errorf("loaded fired with %d sprites waiting", g.WaitingSpriteCount())
		}
	})

	err := g.AddSpritesFromStrings([]string{"Barrel", "bad", "Tree1"}, r2.Vec{X: 10, Y: 10}, fakeMarshaler{})

	if err == nil || !strings.Contains(err.Error(), `"bad"`) {
		t.Errorf("err = %v, want failure naming the bad descriptor", err)
	}
	if loaded != 1 {
		t.Errorf("waiting sprites loaded fired %d times, want 1", loaded)
	}
	if g.Registry().Len() != 2 {
		t.Fatalf("registry has %d sprites, want 2", g.Registry().Len())
	}
	e, _ := g.Registry().At(0)
	if e.Base().Pos != (r2.Vec{X: 11, Y: 12}) {
		t.Errorf("offset not applied: %v", e.Base().Pos)
	}
}

func TestCollisionsDeliveredAfterPipeline(t *testing.T) {
	g, _ := newTestGame(t, nil)
	dude := newWalker(g, "Dude", 100, 100)
	zombie := newWalker(g, KindZombie, 115, 100)
	g.NewDude(dude)
	g.AddSprite(zombie)

	var contacts []*sprite.Contact
	g.Bus().Subscribe(events.Collision, func(ev events.Event) {
		contacts = append(contacts, ev.Payload.(*sprite.Contact))
	})

	g.Step(dt) // start
	g.Step(dt) // running

	if len(contacts) != 1 {
		t.Fatalf("got %d collision events, want 1", len(contacts))
	}
	c := contacts[0]
	if c.A != dude || c.B != zombie {
		t.Errorf("contact participants = %v, %v", c.A, c.B)
	}
	if g.LastTick().Reported != 1 {
		t.Errorf("LastTick = %+v", g.LastTick())
	}
}

type recordingCanvas struct{}

func (recordingCanvas) Circle(center r2.Vec, radius float64, col color.RGBA)     {}
func (recordingCanvas) Rect(center r2.Vec, w, h, rotDeg float64, col color.RGBA) {}
func (recordingCanvas) Line(from, to r2.Vec, thickness float64, col color.RGBA)  {}

func TestRenderSpritesInLayerOrder(t *testing.T) {
	g, w := newTestGame(t, nil)
	var drawn []string

	add := func(kind string, z int, visible bool) {
		s := newWalker(g, kind, 0, 0)
		s.z = z
		s.drawn = &drawn
		s.Visible = visible
		g.AddSprite(s)
	}
	add("car", 10, true)
	add("tracks", 1, true)
	add("hidden", 0, false)
	add("dude", 10, true)
	add("smoke", 100, true)

	g.RenderMap(dt)
	g.RenderSprites(recordingCanvas{}, dt)

	if w.renders != 1 {
		t.Errorf("world rendered %d times, want 1", w.renders)
	}
	want := "tracks car dude smoke"
	if got := strings.Join(drawn, " "); got != want {
		t.Errorf("draw order = %q, want %q", got, want)
	}
}

func TestSnapshotCapturesKindedSprites(t *testing.T) {
	g, _ := newTestGame(t, nil)
	dude := newWalker(g, "Dude", 3, 4)
	dude.Vel = r2.Vec{X: 5}
	dude.health = 42
	g.NewDude(dude)

	snap := g.Snapshot(nil)

	if len(snap.Sprites) != 1 {
		t.Fatalf("snapshot has %d sprites, want 1", len(snap.Sprites))
	}
	s := snap.Sprites[0]
	if s.Kind != "Dude" || s.X != 3 || s.Y != 4 || s.VelX != 5 || s.Health != 42 {
		t.Errorf("sprite state = %+v", s)
	}
}
