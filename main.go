package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/deadroad/config"
	"github.com/pthm-cable/deadroad/render"
	"github.com/pthm-cable/deadroad/session"
	"github.com/pthm-cable/deadroad/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Cap each episode at N ticks (0 = unlimited)")
	episodes := flag.Int("episodes", 1, "Episodes to play in headless mode")
	traffic := flag.Bool("traffic", false, "Put cruise control on every car")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per frame")
	snapshotPath := flag.String("snapshot", "", "Replay the scene saved in a snapshot JSON file")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	rngSeed := *seed
	if *snapshotPath != "" {
		snap, err := telemetry.LoadSnapshot(*snapshotPath)
		if err != nil {
			slog.Error("failed to load snapshot", "error", err)
			os.Exit(1)
		}
		cfg = session.Replay(cfg, snap)
		if rngSeed == 0 {
			rngSeed = snap.Seed
		}
		slog.Info("replaying snapshot", "path", *snapshotPath, "tick", snap.Tick, "sprites", len(snap.Sprites))
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var output *telemetry.OutputManager
	if *outputDir != "" {
		var err error
		output, err = telemetry.NewOutputManager(*outputDir)
		if err != nil {
			slog.Error("failed to create output dir", "error", err)
			os.Exit(1)
		}
		defer output.Close()
		if err := output.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
	}

	opts := session.Options{
		Seed:     rngSeed,
		Output:   output,
		LogStats: *logStats,
		Traffic:  *traffic || *headless,
	}

	if *headless {
		if err := runHeadless(cfg, opts, *episodes, *maxTicks); err != nil {
			slog.Error("headless run failed", "error", err)
		}
		return
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Dead Road")
	defer rl.CloseWindow()
	rl.SetExitKey(rl.KeyNull) // Escape clears the inspector selection
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	opts.Input = render.Keyboard{}
	s, err := session.New(cfg, opts)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		return
	}
	scene := render.NewScene(cfg, s.Decals())

	frame := &render.Frame{DT: cfg.Physics.DT, Speed: *stepsPerUpdate}
	for !rl.WindowShouldClose() {
		restart := rl.IsKeyPressed(rl.KeyR)
		if rl.IsKeyPressed(rl.KeySpace) {
			frame.Paused = !frame.Paused
		}
		if rl.IsKeyPressed(rl.KeyPeriod) && frame.Speed < 10 {
			frame.Speed++
		}
		if rl.IsKeyPressed(rl.KeyComma) && frame.Speed > 1 {
			frame.Speed--
		}
		scene.HandleInput(s.Game())

		if !frame.Paused {
			s.Update(frame.Speed)
		}
		if scene.Draw(s.Game(), frame) {
			restart = true
		}
		s.Game().Perf().RecordFrame()

		if restart {
			if err := s.Restart(); err != nil {
				slog.Error("restart failed", "error", err)
				return
			}
		}
		if *maxTicks > 0 && int(s.Game().Tick()) >= *maxTicks {
			break
		}
	}
}

// runHeadless plays episodes back to back without a window.
func runHeadless(cfg *config.Config, opts session.Options, episodes, maxTicks int) error {
	s, err := session.New(cfg, opts)
	if err != nil {
		return err
	}

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"episodes", episodes,
		"max_ticks", maxTicks,
	)

	for i := 0; i < episodes; i++ {
		if i > 0 {
			if err := s.Restart(); err != nil {
				return err
			}
		}
		if s.RunEpisode(maxTicks) == nil {
			slog.Info("max ticks reached", "tick", s.Game().Tick())
			return nil
		}
	}
	return nil
}
