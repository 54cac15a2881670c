package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/deadroad/actors"
)

// Keyboard steers with the arrow keys or WASD.
type Keyboard struct{}

// Controls reads the keys held this frame.
func (Keyboard) Controls() actors.Controls {
	var c actors.Controls
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		c.X++
	}
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		c.X--
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		c.Y++
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		c.Y--
	}
	return c
}
