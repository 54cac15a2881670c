// Package render draws the game with raylib: a sprite canvas that maps
// world pixels through the camera, keyboard input, and the scene itself.
package render

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/camera"
)

// Canvas implements sprite.Canvas on the raylib screen.
type Canvas struct {
	cam *camera.Camera
}

// NewCanvas creates a canvas viewed through cam.
func NewCanvas(cam *camera.Camera) *Canvas {
	return &Canvas{cam: cam}
}

func toRL(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (c *Canvas) vec(p r2.Vec) rl.Vector2 {
	x, y := c.cam.WorldToScreen(p)
	return rl.Vector2{X: x, Y: y}
}

// Circle draws a filled circle.
func (c *Canvas) Circle(center r2.Vec, radius float64, col color.RGBA) {
	if !c.cam.IsVisible(center, radius) {
		return
	}
	rl.DrawCircleV(c.vec(center), c.cam.ToScreen(radius), toRL(col))
}

// CircleLines draws a circle outline.
func (c *Canvas) CircleLines(center r2.Vec, radius float64, col color.RGBA) {
	if !c.cam.IsVisible(center, radius) {
		return
	}
	x, y := c.cam.WorldToScreen(center)
	rl.DrawCircleLines(int32(x), int32(y), c.cam.ToScreen(radius), toRL(col))
}

// Rect draws a filled rectangle of w by h centered on center and rotated by
// rotDeg.
func (c *Canvas) Rect(center r2.Vec, w, h, rotDeg float64, col color.RGBA) {
	if !c.cam.IsVisible(center, max(w, h)) {
		return
	}
	p := c.vec(center)
	sw, sh := c.cam.ToScreen(w), c.cam.ToScreen(h)
	rl.DrawRectanglePro(
		rl.Rectangle{X: p.X, Y: p.Y, Width: sw, Height: sh},
		rl.Vector2{X: sw / 2, Y: sh / 2},
		float32(rotDeg),
		toRL(col),
	)
}

// Line draws a line segment.
func (c *Canvas) Line(from, to r2.Vec, thickness float64, col color.RGBA) {
	mid := r2.Scale(0.5, r2.Add(from, to))
	if !c.cam.IsVisible(mid, r2.Norm(r2.Sub(to, from))/2) {
		return
	}
	rl.DrawLineEx(c.vec(from), c.vec(to), max(1, c.cam.ToScreen(thickness)), toRL(col))
}
