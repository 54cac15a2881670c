package inspector

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/deadroad/collide"
	"github.com/pthm-cable/deadroad/registry"
)

type ball struct {
	collide.Body
	Health float64 `inspect:"bar,max:100"`
	Secret int     `inspect:"skip"`
	note   string
}

func newBall(space *collide.Space, x, y, radius float64) *ball {
	b := &ball{Health: 50}
	b.Init(space, b, radius, 1)
	b.Pos = r2.Vec{X: x, Y: y}
	return b
}

func TestPickClosestBody(t *testing.T) {
	space := collide.NewSpace(60, 0.3)
	reg := registry.New()
	small := newBall(space, 0, 0, 4)
	big := newBall(space, 20, 0, 15)
	reg.Add(small)
	reg.Add(big)

	tests := []struct {
		name   string
		p      r2.Vec
		want   *ball
		wantOK bool
	}{
		{"inside small", r2.Vec{X: 1}, small, true},
		{"slop around small", r2.Vec{X: -8}, small, true},
		{"overlap prefers nearer", r2.Vec{X: 6}, small, true},
		{"inside big", r2.Vec{X: 30, Y: 5}, big, true},
		{"miss", r2.Vec{X: 100, Y: 100}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := Pick(reg, tt.p)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && id != tt.want.ID() {
				t.Errorf("picked %d, want %d", id, tt.want.ID())
			}
		})
	}
}

func TestPickSkipsDying(t *testing.T) {
	space := collide.NewSpace(60, 0.3)
	reg := registry.New()
	b := newBall(space, 0, 0, 10)
	reg.Add(b)
	b.Die()

	if _, ok := Pick(reg, r2.Vec{}); ok {
		t.Error("picked a sprite marked dead")
	}
}

func TestSelectionDropsRemovedSprite(t *testing.T) {
	space := collide.NewSpace(60, 0.3)
	reg := registry.New()
	b := newBall(space, 0, 0, 10)
	id := reg.Add(b)

	ins := NewInspector(10, 10)
	ins.Select(id)
	if e, ok := ins.Selected(reg); !ok || e != b {
		t.Fatalf("Selected = %v, %v", e, ok)
	}

	reg.Remove(id)
	if _, ok := ins.Selected(reg); ok {
		t.Error("selection survived removal")
	}
	if ins.hasSelected {
		t.Error("selection not cleared")
	}
}

func TestExtractFieldsFlattensEmbedded(t *testing.T) {
	b := newBall(collide.NewSpace(60, 0.3), 3, 4, 10)
	b.Vel = r2.Vec{X: 1, Y: 2}

	byName := make(map[string]Field)
	for _, f := range ExtractFields(b) {
		byName[f.Name] = f
	}

	for _, name := range []string{"Pos", "Rot", "Visible", "Vel", "Radius", "Mass", "Health"} {
		if _, ok := byName[name]; !ok {
			t.Errorf("field %s missing", name)
		}
	}
	for _, name := range []string{"Secret", "note", "Body", "Sprite"} {
		if _, ok := byName[name]; ok {
			t.Errorf("field %s should not be listed", name)
		}
	}

	if w := byName["Rot"].Widget; w != WidgetAngle {
		t.Errorf("Rot widget = %v, want angle", w)
	}
	if w := byName["Visible"].Widget; w != WidgetBool {
		t.Errorf("Visible widget = %v, want bool", w)
	}
	health := byName["Health"]
	if health.Widget != WidgetBar || GetMax(health.Options) != 100 {
		t.Errorf("Health = %+v, want a bar out of 100", health)
	}
	if got := FormatValue(byName["Pos"].Value, ""); got != "(3.0, 4.0)" {
		t.Errorf("Pos formats as %q", got)
	}
}

func TestExtractFieldsNonStruct(t *testing.T) {
	if fields := ExtractFields(42); fields != nil {
		t.Errorf("fields = %v, want nil", fields)
	}
	var b *ball
	if fields := ExtractFields(b); fields != nil {
		t.Errorf("nil pointer fields = %v, want nil", fields)
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag     string
		widget  Widget
		options map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"bar,max:200", WidgetBar, map[string]string{"max": "200"}},
		{"label, fmt:%.1f", WidgetLabel, map[string]string{"fmt": "%.1f"}},
		{"angle", WidgetAngle, map[string]string{}},
		{"skip", WidgetSkip, map[string]string{}},
		{"mystery", WidgetAuto, map[string]string{}},
	}
	for _, tt := range tests {
		widget, options := ParseTag(tt.tag)
		if widget != tt.widget {
			t.Errorf("ParseTag(%q) widget = %v, want %v", tt.tag, widget, tt.widget)
		}
		if len(options) != len(tt.options) {
			t.Errorf("ParseTag(%q) options = %v, want %v", tt.tag, options, tt.options)
			continue
		}
		for k, v := range tt.options {
			if options[k] != v {
				t.Errorf("ParseTag(%q)[%s] = %q, want %q", tt.tag, k, options[k], v)
			}
		}
	}
}
