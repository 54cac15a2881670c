package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Derived.PixelsPerMile != 15840 {
		t.Errorf("PixelsPerMile = %v, want 15840", cfg.Derived.PixelsPerMile)
	}
	if math.Abs(cfg.Derived.TargetTime-3330.7) > 1e-9 {
		t.Errorf("TargetTime = %v, want 3330.7", cfg.Derived.TargetTime)
	}
	if cfg.Physics.Restitution != 0.3 {
		t.Errorf("Restitution = %v, want 0.3", cfg.Physics.Restitution)
	}
	if len(cfg.Scenario.Sprites) == 0 {
		t.Error("expected default scenario sprites")
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("game:\n  target_miles: 5\n  seconds_in_a_day: 100\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Game.TargetMiles != 5 {
		t.Errorf("TargetMiles = %v, want 5", cfg.Game.TargetMiles)
	}
	// Fields absent from the overlay keep their defaults
	if cfg.Game.TargetDays != 3 {
		t.Errorf("TargetDays = %v, want 3", cfg.Game.TargetDays)
	}
	if math.Abs(cfg.Derived.TargetTime-300.7) > 1e-9 {
		t.Errorf("TargetTime = %v, want 300.7", cfg.Derived.TargetTime)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero dt", "physics:\n  dt: 0\n"},
		{"negative day", "game:\n  seconds_in_a_day: -1\n"},
		{"zero grid", "physics:\n  grid_cell_size: 0\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Game.TargetMiles = 7

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Game.TargetMiles != 7 {
		t.Errorf("TargetMiles = %v, want 7", loaded.Game.TargetMiles)
	}
}
