// Catalog viewer - inspect sprite metrics: image bounds, pivot, collision
// box and the body radius the simulation uses.
//
// Usage: go run ./cmd/catalogview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/deadroad/catalog"
)

const (
	windowWidth  = 900
	windowHeight = 600
	previewSize  = 520
	panelWidth   = windowWidth - previewSize - 30
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Sprite Catalog")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	cat := catalog.Default()
	kinds := cat.Kinds()
	selected := 0
	var zoom float32 = 6
	showRadius := true

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyRight) {
			selected = (selected + 1) % len(kinds)
		}
		if rl.IsKeyPressed(rl.KeyLeft) {
			selected = (selected + len(kinds) - 1) % len(kinds)
		}
		info, _ := cat.Lookup(kinds[selected])

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawPreview(info, zoom, showRadius)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText(info.Kind, int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 80, Height: 24}, "< Prev") {
			selected = (selected + len(kinds) - 1) % len(kinds)
		}
		if gui.Button(rl.Rectangle{X: panelX + 90, Y: panelY, Width: 80, Height: 24}, "Next >") {
			selected = (selected + 1) % len(kinds)
		}
		panelY += 40

		rl.DrawText("Zoom", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		zoom = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "12",
			zoom, 1, 12,
		)
		rl.DrawText(fmt.Sprintf("%.1fx", zoom), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		showRadius = gui.CheckBox(rl.Rectangle{X: panelX, Y: panelY, Width: 16, Height: 16}, "Body radius", showRadius)
		panelY += 35

		lines := []string{
			fmt.Sprintf("Image: %s", info.Img),
			fmt.Sprintf("Size: %.0f x %.0f", info.Width, info.Height),
			fmt.Sprintf("Layers: %d", info.Layers),
			fmt.Sprintf("Center: %.0f, %.0f", info.Center.X, info.Center.Y),
			fmt.Sprintf("Radius: %.1f", info.Radius()),
			fmt.Sprintf("Z: %d", info.Z),
		}
		if info.CollidableOffset != nil {
			lines = append(lines, fmt.Sprintf("Collidable: +-%.0f, +-%.0f", info.CollidableOffset.X, info.CollidableOffset.Y))
		}
		for _, line := range lines {
			rl.DrawText(line, int32(panelX), int32(panelY), 16, rl.DarkGray)
			panelY += 22
		}

		rl.DrawText("Left/Right: cycle kinds", 15, windowHeight-25, 14, rl.Gray)
		rl.EndDrawing()
	}
}

// drawPreview draws the sprite's boxes scaled around the middle of the
// preview area.
func drawPreview(info catalog.Info, zoom float32, showRadius bool) {
	rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

	mid := rl.Vector2{X: 10 + previewSize/2, Y: 10 + previewSize/2}
	pivot := rl.Vector2{X: float32(info.Center.X) * zoom, Y: float32(info.Center.Y) * zoom}

	img := rl.Rectangle{
		X:      mid.X - pivot.X + float32(info.ImageOffset.X)*zoom,
		Y:      mid.Y - pivot.Y + float32(info.ImageOffset.Y)*zoom,
		Width:  float32(info.Width) * zoom,
		Height: float32(info.Height) * zoom,
	}
	rl.DrawRectangleRec(img, rl.Fade(rl.SkyBlue, 0.3))
	rl.DrawRectangleLinesEx(img, 1, rl.Blue)

	if off := info.CollidableOffset; off != nil {
		box := rl.Rectangle{
			X:      mid.X - float32(off.X)*zoom,
			Y:      mid.Y - float32(off.Y)*zoom,
			Width:  float32(2*off.X) * zoom,
			Height: float32(2*off.Y) * zoom,
		}
		rl.DrawRectangleLinesEx(box, 2, rl.Orange)
	}

	if showRadius {
		rl.DrawCircleLinesV(mid, float32(info.Radius())*zoom, rl.Red)
	}

	rl.DrawLineV(rl.Vector2{X: mid.X - 6, Y: mid.Y}, rl.Vector2{X: mid.X + 6, Y: mid.Y}, rl.Black)
	rl.DrawLineV(rl.Vector2{X: mid.X, Y: mid.Y - 6}, rl.Vector2{X: mid.X, Y: mid.Y + 6}, rl.Black)
}
