package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/deadroad/sim"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDistribution(t *testing.T) {
	// unsorted on purpose
	values := []float64{1.0, 0.1, 0.9, 0.2, 0.8, 0.3, 0.7, 0.4, 0.6, 0.5}
	mean, p10, p50, p90 := ComputeDistribution(values)

	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	if math.Abs(p10-0.19) > 0.01 {
		t.Errorf("p10 = %v, want ~0.19", p10)
	}
	if math.Abs(p50-0.55) > 0.01 {
		t.Errorf("p50 = %v, want ~0.55", p50)
	}
	if math.Abs(p90-0.91) > 0.01 {
		t.Errorf("p90 = %v, want ~0.91", p90)
	}
	if values[0] != 1.0 {
		t.Error("ComputeDistribution reordered its input")
	}
}

func TestComputeDistributionEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeDistribution(nil)

	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1, 0.25)
	if c.WindowDurationTicks() != 4 {
		t.Fatalf("WindowDurationTicks = %d, want 4", c.WindowDurationTicks())
	}

	for i := 0; i < 4; i++ {
		c.RecordTick(sim.TickStats{Contacts: 3, Soft: 2, Rigid: 1, Reported: 3})
	}
	c.RecordBite()
	c.RecordCrash()
	c.RecordSpawn()
	c.RecordImpact(100)
	c.RecordImpact(300)

	if c.ShouldFlush(3) {
		t.Error("ShouldFlush(3) = true before the window ends")
	}
	if !c.ShouldFlush(4) {
		t.Fatal("ShouldFlush(4) = false at window end")
	}

	stats := c.Flush(4, Sample{
		State:           "running",
		Zombies:         3,
		ZombieDistances: []float64{50, 150, 400},
		SightRange:      200,
	})

	if stats.Contacts != 12 || stats.Soft != 8 || stats.Rigid != 4 || stats.Reported != 12 {
		t.Errorf("pipeline totals = %+v", stats)
	}
	if math.Abs(stats.ContactsPerTick-3) > 1e-9 {
		t.Errorf("ContactsPerTick = %v, want 3", stats.ContactsPerTick)
	}
	if stats.Bites != 1 || stats.Crashes != 1 || stats.Spawned != 1 {
		t.Errorf("events = bites %d crashes %d spawned %d", stats.Bites, stats.Crashes, stats.Spawned)
	}
	if math.Abs(stats.ImpactMean-200) > 1e-9 {
		t.Errorf("ImpactMean = %v, want 200", stats.ImpactMean)
	}
	if stats.ZombiesInSight != 2 {
		t.Errorf("ZombiesInSight = %d, want 2", stats.ZombiesInSight)
	}
	if math.Abs(stats.SimTimeSec-1) > 1e-9 {
		t.Errorf("SimTimeSec = %v, want 1", stats.SimTimeSec)
	}

	// counters reset for the next window
	next := c.Flush(8, Sample{})
	if next.Contacts != 0 || next.Bites != 0 || next.ImpactMean != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStartTick != 4 {
		t.Errorf("WindowStartTick = %d, want 4", next.WindowStartTick)
	}
}
