package fx

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/collide"
	"github.com/pthm-cable/deadroad/sprite"
)

const dt = 1.0 / 60.0

func TestExplosionGrowsFadesAndDies(t *testing.T) {
	e := NewExplosion(r2.Vec{X: 5, Y: 5}, rand.New(rand.NewSource(1)))

	e.PreMove(0.1)
	if math.Abs(e.Scale()-2.1) > 1e-9 {
		t.Errorf("Scale = %v, want 2.1", e.Scale())
	}
	if math.Abs(e.Opacity()-0.9) > 1e-9 {
		t.Errorf("Opacity = %v, want 0.9", e.Opacity())
	}

	e.PostMove(0.1)
	e.PostMove(0.1)
	if e.Reaping() {
		t.Fatal("explosion died at its max life, want strictly after")
	}
	e.PostMove(0.01)
	if !e.Reaping() {
		t.Error("explosion still alive after 0.21s")
	}
}

func TestExplosionOpacityFloorsAtZero(t *testing.T) {
	e := NewExplosion(r2.Vec{}, rand.New(rand.NewSource(2)))
	e.PreMove(5)
	if e.Opacity() != 0 {
		t.Errorf("Opacity = %v, want 0", e.Opacity())
	}
}

type car struct {
	collide.Body
}

type dotCanvas struct {
	rects []r2.Vec
	alpha uint8
}

func (c *dotCanvas) Circle(center r2.Vec, radius float64, col color.RGBA)    {}
func (c *dotCanvas) Line(from, to r2.Vec, thickness float64, col color.RGBA) {}
func (c *dotCanvas) Rect(center r2.Vec, w, h, rotDeg float64, col color.RGBA) {
	c.rects = append(c.rects, center)
	c.alpha = col.A
}

func TestTireTracksFollowMovingCar(t *testing.T) {
	c := &car{}
	c.Pos = r2.Vec{X: 100, Y: 100}
	c.Rot = 90
	tracks := NewTireTracks(c, r2.Vec{X: -8, Y: 12}, color.RGBA{A: 200}, 3)

	tracks.PostMove(dt)
	if tracks.Len() != 0 {
		t.Fatalf("parked car laid %d dots", tracks.Len())
	}

	c.Vel = r2.Vec{X: 120}
	tracks.PostMove(dt)
	if tracks.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tracks.Len())
	}
	// wheel (-8, 12) turned to heading 90 sits at (-12, -8) from the car
	canvas := &dotCanvas{}
	tracks.Render(canvas, dt)
	got := canvas.rects[0]
	if math.Abs(got.X-88) > 1e-9 || math.Abs(got.Y-92) > 1e-9 {
		t.Errorf("dot at %v, want (88, 92)", got)
	}

	// too close to the previous dot
	tracks.PostMove(dt)
	if tracks.Len() != 1 {
		t.Errorf("Len = %d after standing still, want 1", tracks.Len())
	}

	for i := 0; i < 2; i++ {
		c.Pos = r2.Add(c.Pos, r2.Vec{X: 10})
		tracks.PostMove(dt)
	}
	if tracks.Len() != 3 {
		t.Fatalf("Len = %d, want 3", tracks.Len())
	}
	if tracks.Attached() {
		t.Error("full tracks still attached to the car")
	}
}

func TestTireTracksFadeAndDie(t *testing.T) {
	c := &car{}
	c.Vel = r2.Vec{Y: 50}
	tracks := NewTireTracks(c, r2.Vec{}, color.RGBA{A: 200}, 0)
	tracks.PostMove(dt)

	tracks.PostMove(30)
	canvas := &dotCanvas{}
	tracks.Render(canvas, dt)
	if canvas.alpha >= 101 || canvas.alpha < 99 {
		t.Errorf("alpha at half life = %d, want about 100", canvas.alpha)
	}

	tracks.PostMove(31)
	if !tracks.Reaping() {
		t.Error("tracks alive after a minute")
	}
}

func TestFxIsNotCollidable(t *testing.T) {
	var entities = []sprite.Entity{
		NewExplosion(r2.Vec{}, rand.New(rand.NewSource(3))),
		NewTireTracks(&car{}, r2.Vec{}, color.RGBA{}, 0),
	}
	for _, e := range entities {
		if e.Base().Collidable {
			t.Errorf("%T is collidable", e)
		}
		if !e.Base().Visible {
			t.Errorf("%T is not visible", e)
		}
	}
}
