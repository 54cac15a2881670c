package catalog

import (
	"testing"
)

func TestDefaultHasAllKinds(t *testing.T) {
	want := []string{
		"Barrel", "Dude", "Explosion", "GasPump1", "GasPump2", "Honda",
		"PoliceCar", "Smoke", "Tree1", "Tree2", "Tree3", "Zombie",
	}
	got := Default().Kinds()
	if len(got) != len(want) {
		t.Fatalf("Kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Kinds[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLookup(t *testing.T) {
	info, ok := Lookup("GasPump2")
	if !ok {
		t.Fatal("GasPump2 missing")
	}
	if info.Kind != "GasPump2" {
		t.Errorf("Kind = %q", info.Kind)
	}
	if info.Width != 32 || info.Height != 17 {
		t.Errorf("size = %vx%v, want 32x17", info.Width, info.Height)
	}
	if info.ImageOffset != (Point{X: 28, Y: 0}) {
		t.Errorf("ImageOffset = %+v", info.ImageOffset)
	}
	if info.Z != 90 {
		t.Errorf("Z = %d, want 90", info.Z)
	}

	if _, ok := Lookup("Unicorn"); ok {
		t.Error("Lookup found an unknown kind")
	}
}

func TestRadius(t *testing.T) {
	tests := []struct {
		kind string
		want float64
	}{
		{"Dude", 8},
		{"Honda", 20},
		{"Barrel", 8},
		{"GasPump1", 10.5},
		{"Tree3", 3},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			info, ok := Lookup(tt.kind)
			if !ok {
				t.Fatalf("%s missing", tt.kind)
			}
			if got := info.Radius(); got != tt.want {
				t.Errorf("Radius = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseRejectsEmptySize(t *testing.T) {
	_, err := Parse([]byte("Ghost:\n  img: ghost\n  width: 0\n  height: 10\n"))
	if err == nil {
		t.Error("expected error for zero width")
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("::not yaml")); err == nil {
		t.Error("expected parse error")
	}
}
