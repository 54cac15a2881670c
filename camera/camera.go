// Package camera provides a 2D camera that follows the player around an
// unbounded world.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Camera controls the viewport into the world.
type Camera struct {
	// Center of the view in world pixels
	Center r2.Vec

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Zoom constraints
	MinZoom, MaxZoom float64

	// FollowRate is the fraction of the distance to the target closed per
	// second. Zero snaps to the target.
	FollowRate float64
}

// New creates a camera centered on center with 1:1 zoom.
func New(viewportW, viewportH float64, center r2.Vec) *Camera {
	return &Camera{
		Center:     center,
		Zoom:       1.0,
		ViewportW:  viewportW,
		ViewportH:  viewportH,
		MinZoom:    0.25,
		MaxZoom:    4.0,
		FollowRate: 4.0,
	}
}

// WorldToScreen converts a world position to screen coordinates.
func (c *Camera) WorldToScreen(p r2.Vec) (sx, sy float32) {
	d := r2.Scale(c.Zoom, r2.Sub(p, c.Center))
	return float32(c.ViewportW/2 + d.X), float32(c.ViewportH/2 + d.Y)
}

// ScreenToWorld converts screen coordinates to a world position.
func (c *Camera) ScreenToWorld(sx, sy float32) r2.Vec {
	d := r2.Vec{
		X: (float64(sx) - c.ViewportW/2) / c.Zoom,
		Y: (float64(sy) - c.ViewportH/2) / c.Zoom,
	}
	return r2.Add(c.Center, d)
}

// ToScreen scales a world length to screen pixels.
func (c *Camera) ToScreen(length float64) float32 {
	return float32(length * c.Zoom)
}

// VisibleBounds returns the world area covered by the viewport.
func (c *Camera) VisibleBounds() r2.Box {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return r2.Box{
		Min: r2.Vec{X: c.Center.X - halfW, Y: c.Center.Y - halfH},
		Max: r2.Vec{X: c.Center.X + halfW, Y: c.Center.Y + halfH},
	}
}

// IsVisible returns true if a circle at p with the given radius could be
// visible on screen (conservative check for culling).
func (c *Camera) IsVisible(p r2.Vec, radius float64) bool {
	b := c.VisibleBounds()
	b.Min = r2.Sub(b.Min, r2.Vec{X: radius, Y: radius})
	b.Max = r2.Add(b.Max, r2.Vec{X: radius, Y: radius})
	return b.Contains(p)
}

// Follow moves the view towards target.
func (c *Camera) Follow(target r2.Vec, dt float64) {
	if c.FollowRate <= 0 {
		c.Center = target
		return
	}
	t := 1 - math.Exp(-c.FollowRate*dt)
	c.Center = r2.Add(c.Center, r2.Scale(t, r2.Sub(target, c.Center)))
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.Center = r2.Add(c.Center, r2.Vec{X: dx / c.Zoom, Y: dy / c.Zoom})
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, zoom))
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}
