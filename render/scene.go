package render

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/camera"
	"github.com/pthm-cable/deadroad/collide"
	"github.com/pthm-cable/deadroad/config"
	"github.com/pthm-cable/deadroad/game"
	"github.com/pthm-cable/deadroad/inspector"
	"github.com/pthm-cable/deadroad/sprite"
	"github.com/pthm-cable/deadroad/ui"
	"github.com/pthm-cable/deadroad/world"
)

var (
	groundColor = rl.Color{R: 58, G: 62, B: 58, A: 255}
	gridColor   = color.RGBA{R: 80, G: 86, B: 80, A: 255}
	bodyColor   = color.RGBA{R: 255, G: 255, B: 0, A: 200}
	velColor    = color.RGBA{R: 0, G: 220, B: 255, A: 200}
	sightColor  = color.RGBA{R: 140, G: 220, B: 120, A: 120}
	pickColor   = color.RGBA{R: 255, G: 230, B: 0, A: 255}
)

var decalColors = map[world.DecalKind]color.RGBA{
	world.DecalBlood:  {R: 120, G: 10, B: 10, A: 220},
	world.DecalOil:    {R: 15, G: 15, B: 20, A: 200},
	world.DecalScorch: {R: 25, G: 22, B: 20, A: 230},
}

// Frame carries loop state owned by the caller. Speed is adjustable from
// the scene.
type Frame struct {
	DT     float64
	Speed  int
	Paused bool
}

// Scene draws one frame of a game.
type Scene struct {
	cfg      *config.Config
	cam      *camera.Camera
	canvas   *Canvas
	decals   *world.Map
	overlays *ui.OverlayRegistry

	hud      *ui.HUD
	perf     *ui.PerfPanel
	stats    *ui.SceneStatsPanel
	controls *ui.ControlsPanel
	gameOver *ui.GameOverPanel
	inspect  *inspector.Inspector

	screenWidth, screenHeight int32
}

// NewScene creates a scene for a screen of the configured size. Decals on
// m are drawn through the scene's canvas.
func NewScene(cfg *config.Config, m *world.Map) *Scene {
	w, h := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	cam := camera.New(float64(w), float64(h), r2.Vec{X: cfg.Game.StartX, Y: cfg.Game.StartY})
	s := &Scene{
		cfg:          cfg,
		cam:          cam,
		canvas:       NewCanvas(cam),
		decals:       m,
		overlays:     ui.NewOverlayRegistry(),
		hud:          ui.NewHUD(),
		perf:         ui.NewPerfPanel(w-300, 10),
		stats:        ui.NewSceneStatsPanel(w-210, h-150, 200),
		controls:     ui.NewControlsPanel(10, 130, 220),
		gameOver:     ui.NewGameOverPanel(),
		inspect:      inspector.NewInspector(10, 240),
		screenWidth:  w,
		screenHeight: h,
	}
	if m != nil {
		m.SetDrawer(s.drawDecal)
	}
	return s
}

// Camera returns the scene camera.
func (s *Scene) Camera() *camera.Camera { return s.cam }

// HandleInput processes view controls: overlay toggles, zoom, resizing and
// picking sprites for the inspector.
func (s *Scene) HandleInput(g *game.Game) {
	s.handleResize()

	mouse := rl.GetMousePosition()
	s.inspect.HandleInput(mouse.X, mouse.Y, s.cam.ScreenToWorld(mouse.X, mouse.Y), g.Registry())

	s.overlays.HandleKeys()
	if rl.IsKeyPressed(rl.KeyF1) {
		s.controls.Toggle()
	}

	// Zoom controls: mouse wheel or +/- keys
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		s.cam.ZoomBy(1 + float64(wheel)*0.1)
	}
	if rl.IsKeyDown(rl.KeyEqual) {
		s.cam.ZoomBy(1.02)
	}
	if rl.IsKeyDown(rl.KeyMinus) {
		s.cam.ZoomBy(0.98)
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (s *Scene) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if w == s.screenWidth && h == s.screenHeight {
		return
	}
	s.screenWidth, s.screenHeight = w, h
	s.cam.Resize(float64(w), float64(h))
	s.perf.SetPosition(w-300, 10)
	s.stats.SetPosition(w-210, h-150)
}

// Draw renders the game and its panels. The speed slider writes back to
// f.Speed. Returns true when the player asked for a restart.
func (s *Scene) Draw(g *game.Game, f *Frame) bool {
	if d := g.Dude(); d != nil {
		s.cam.Follow(d.Base().Pos, f.DT)
	}

	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(groundColor)

	if s.overlays.IsEnabled(ui.OverlayTileGrid) {
		s.drawGrid()
	}
	if s.overlays.IsEnabled(ui.OverlayDecals) {
		g.RenderMap(f.DT)
	}
	g.RenderSprites(s.canvas, f.DT)

	if s.overlays.IsEnabled(ui.OverlayBodies) {
		s.drawBodies(g)
	}
	if e, ok := s.inspect.Selected(g.Registry()); ok {
		if p, ok := e.(collide.Physical); ok {
			b := p.Physics()
			s.canvas.CircleLines(b.Pos, b.Radius*1.8, pickColor)
		}
	}
	if s.overlays.IsEnabled(ui.OverlayZombieSight) {
		if d := g.Dude(); d != nil {
			s.canvas.CircleLines(d.Base().Pos, s.cfg.Game.ZombieSightPx, sightColor)
		}
	}

	s.drawPanels(g, f)

	if g.Over() {
		return s.gameOver.Draw(s.screenWidth, s.screenHeight, g.State().String(), g.Distance())
	}
	return false
}

func (s *Scene) drawPanels(g *game.Game, f *Frame) {
	data := ui.HUDData{
		Title:        "Dead Road",
		State:        g.State().String(),
		Episode:      g.Episode(),
		GameTime:     g.Clock().GameTime().String(),
		Remaining:    g.Clock().Remaining().String(),
		Miles:        g.Distance(),
		TargetMiles:  s.cfg.Game.TargetMiles,
		MaxHealth:    s.cfg.Game.DudeHealth,
		Tick:         g.Tick(),
		Speed:        f.Speed,
		FPS:          rl.GetFPS(),
		Paused:       f.Paused,
		ScreenWidth:  s.screenWidth,
		ScreenHeight: s.screenHeight,
	}
	if d := g.Dude(); d != nil {
		data.Health = d.Health()
	}
	s.hud.Draw(data)
	s.hud.DrawControls(s.screenWidth, s.screenHeight,
		"WASD/Arrows: Walk | Space: Pause | </>: Speed | R: Restart | F1: Overlays | Wheel: Zoom")

	f.Speed = ui.SpeedSlider(10, float32(s.screenHeight-50), f.Speed)
	s.controls.Draw(s.overlays)
	s.inspect.Draw(g.Registry())

	if s.overlays.IsEnabled(ui.OverlayPerf) {
		s.perf.Draw(g.Perf().Stats())
	}

	last := g.LastTick()
	stats := ui.SceneStatsData{
		Entities: g.Registry().Len(),
		Contacts: last.Contacts,
		Rigid:    last.Rigid,
	}
	g.Registry().Each(func(e sprite.Entity) {
		if k, ok := e.(game.Kinded); ok && k.Kind() == game.KindZombie {
			stats.Zombies++
		}
	})
	if s.decals != nil {
		stats.Decals = s.decals.Count()
	}
	s.stats.Draw(stats)
}

// drawGrid draws the map tile lines inside the view.
func (s *Scene) drawGrid() {
	tile := s.cfg.Scale.TileSize
	b := s.cam.VisibleBounds()
	x0 := math.Floor(b.Min.X/tile) * tile
	y0 := math.Floor(b.Min.Y/tile) * tile
	for x := x0; x <= b.Max.X; x += tile {
		s.canvas.Line(r2.Vec{X: x, Y: b.Min.Y}, r2.Vec{X: x, Y: b.Max.Y}, 1, gridColor)
	}
	for y := y0; y <= b.Max.Y; y += tile {
		s.canvas.Line(r2.Vec{X: b.Min.X, Y: y}, r2.Vec{X: b.Max.X, Y: y}, 1, gridColor)
	}
}

// drawBodies outlines every collision body and its velocity.
func (s *Scene) drawBodies(g *game.Game) {
	g.Registry().Each(func(e sprite.Entity) {
		p, ok := e.(collide.Physical)
		if !ok || !e.Base().Visible {
			return
		}
		b := p.Physics()
		s.canvas.CircleLines(b.Pos, b.Radius, bodyColor)
		if b.Vel != (r2.Vec{}) {
			s.canvas.Line(b.Pos, r2.Add(b.Pos, r2.Scale(0.25, b.Vel)), 1, velColor)
		}
	})
}

func (s *Scene) drawDecal(pos r2.Vec, d world.Decal) {
	col, ok := decalColors[d.Kind]
	if !ok {
		return
	}
	col.A = uint8(float64(col.A) * d.Alpha())
	size := d.Size
	if d.Kind == world.DecalScorch {
		size *= 2.5
	}
	s.canvas.Rect(pos, size, size*0.7, d.Rot, col)
}
