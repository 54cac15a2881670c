package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/deadroad/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	State        string
	Episode      int
	GameTime     string
	Remaining    string
	Miles        float64
	TargetMiles  float64
	Health       float64
	MaxHealth    float64
	Tick         int32
	Speed        int
	FPS          int32
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer

	// Title
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	// Clock and distance
	rl.DrawText(
		fmt.Sprintf("%s | %s left | %.0f / %.0f mi", data.GameTime, data.Remaining, data.Miles, data.TargetMiles),
		10, 35, 16, rl.LightGray,
	)

	// Simulation info
	rl.DrawText(
		fmt.Sprintf("Episode: %d | Tick: %d | Speed: %dx | FPS: %d", data.Episode, data.Tick, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	r.DrawHealthBar(10, 78, "Health", float32(data.Health), float32(data.MaxHealth), 260)

	// Status
	statusText := data.State
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 100, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase tick performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel with phases in tick order.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s | %.0f ticks/s", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range telemetry.Phases {
		avg := stats.PhaseAvg[name]
		pct := stats.PhasePct[name]

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %6s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// GameOverPanel shows the outcome of an episode and offers a restart.
type GameOverPanel struct {
	renderer *Renderer
	width    int32
	height   int32
}

// NewGameOverPanel creates a game over panel.
func NewGameOverPanel() *GameOverPanel {
	return &GameOverPanel{
		renderer: NewRenderer(),
		width:    280,
		height:   120,
	}
}

// Draw renders the panel centered on screen. Returns true when the
// restart button was pressed.
func (g *GameOverPanel) Draw(screenWidth, screenHeight int32, outcome string, miles float64) bool {
	x := (screenWidth - g.width) / 2
	y := (screenHeight - g.height) / 2
	r := g.renderer
	padding := r.Theme.Padding

	r.DrawPanel(x, y, g.width, g.height)

	title := "YOU MADE IT"
	color := rl.Green
	if outcome != "won" {
		title = "YOU DIED"
		color = rl.Red
	}
	rl.DrawText(title, x+padding, y+padding, 24, color)
	rl.DrawText(fmt.Sprintf("%.0f miles from home", miles), x+padding, y+padding+30, 14, r.Theme.LabelColor)

	button := rl.Rectangle{
		X:      float32(x + padding),
		Y:      float32(y + g.height - padding - 30),
		Width:  120,
		Height: 30,
	}
	return gui.Button(button, "Restart")
}

// SpeedSlider draws the steps-per-frame slider and returns the new value.
func SpeedSlider(x, y float32, steps int) int {
	v := gui.SliderBar(
		rl.Rectangle{X: x + 50, Y: y, Width: 140, Height: 16},
		"Speed", fmt.Sprintf("%dx", steps),
		float32(steps), 1, 10,
	)
	return int(v + 0.5)
}
