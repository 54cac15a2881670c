// Package inspector shows the live state of a sprite picked with the mouse.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/collide"
	"github.com/pthm-cable/deadroad/registry"
	"github.com/pthm-cable/deadroad/sprite"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30

	// pickSlop widens bodies so small sprites can still be clicked.
	pickSlop = 5
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
)

// Inspector manages sprite selection and panel rendering. The selection is
// held by ID so a reaped sprite drops out on its own.
type Inspector struct {
	selected    sprite.ID
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector creates an inspector with its panel at the left edge.
func NewInspector(panelX, panelY int32) *Inspector {
	return &Inspector{panelX: panelX, panelY: panelY}
}

// SetPosition moves the panel.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.panelX, ins.panelY = x, y
}

// HandleInput processes clicks. mouseX and mouseY are screen coordinates,
// world is the same point in world space.
func (ins *Inspector) HandleInput(mouseX, mouseY float32, world r2.Vec, reg *registry.Registry) {
	// Right click or Escape to deselect
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}

	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if int32(mouseX) >= closeX && int32(mouseX) <= closeX+20 &&
			int32(mouseY) >= closeY && int32(mouseY) <= closeY+20 {
			ins.Deselect()
			return
		}

		// Clicks on the panel itself select nothing
		if int32(mouseX) >= ins.panelX && int32(mouseX) <= ins.panelX+PanelWidth &&
			int32(mouseY) >= ins.panelY {
			return
		}
	}

	if id, ok := Pick(reg, world); ok {
		ins.Select(id)
	}
}

// Pick returns the live collidable sprite whose body is closest to p, if p
// lies within its radius.
func Pick(reg *registry.Registry, p r2.Vec) (sprite.ID, bool) {
	var closest sprite.ID
	closestDist := 0.0
	found := false

	reg.Each(func(e sprite.Entity) {
		ph, ok := e.(collide.Physical)
		if !ok || e.Base().Reaping() {
			return
		}
		b := ph.Physics()
		dist := r2.Norm2(r2.Sub(p, b.Pos))
		hit := b.Radius + pickSlop
		if dist < hit*hit && (!found || dist < closestDist) {
			closest = b.ID()
			closestDist = dist
			found = true
		}
	})
	return closest, found
}

// Select selects the sprite with the given ID.
func (ins *Inspector) Select(id sprite.ID) {
	ins.selected = id
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the selected sprite if it is still registered.
func (ins *Inspector) Selected(reg *registry.Registry) (sprite.Entity, bool) {
	if !ins.hasSelected {
		return nil, false
	}
	e, ok := reg.Get(ins.selected)
	if !ok {
		ins.Deselect()
		return nil, false
	}
	return e, true
}

// Draw renders the inspector panel if a sprite is selected.
func (ins *Inspector) Draw(reg *registry.Registry) {
	e, ok := ins.Selected(reg)
	if !ok {
		return
	}

	fields := ExtractFields(e)
	panelHeight := ins.calculatePanelHeight(fields)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	// Header
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	kind := "?"
	if k, ok := e.(interface{ Kind() string }); ok {
		kind = k.Kind()
	}
	rl.DrawText(fmt.Sprintf("ID: %d  Kind: %s", e.Base().ID(), kind), x, y, 14, ColorHeaderText)
	y += 22

	if h, ok := e.(interface{ Health() float64 }); ok {
		y += DrawLabel(x, y, "Health", h.Health(), map[string]string{"fmt": "%.1f"})
	}
	if ph, ok := e.(collide.Physical); ok {
		y += DrawLabel(x, y, "Speed", r2.Norm(ph.Physics().Vel), map[string]string{"fmt": "%.1f px/s"})
	}

	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	for _, f := range fields {
		y += DrawField(x, y, f)
	}
}

// calculatePanelHeight computes the dynamic panel height.
func (ins *Inspector) calculatePanelHeight(fields []Field) int32 {
	height := int32(HeaderHeight + PanelPadding)
	height += 22 // ID line
	height += 40 // health and speed
	height += 8  // separator
	for _, f := range fields {
		height += fieldHeight(f)
	}
	return height + PanelPadding
}
