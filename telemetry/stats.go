package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	GameTime        string  `csv:"game_time"`
	State           string  `csv:"state"`

	// Population at window end
	Entities int `csv:"entities"`
	Zombies  int `csv:"zombies"`
	Cars     int `csv:"cars"`

	// Pipeline totals during window
	Contacts        int     `csv:"contacts"`
	Soft            int     `csv:"soft"`
	Rigid           int     `csv:"rigid"`
	Reported        int     `csv:"reported"`
	Skipped         int     `csv:"skipped"`
	Spawned         int     `csv:"spawned"`
	Reaped          int     `csv:"reaped"`
	ContactsPerTick float64 `csv:"contacts_per_tick"`

	// Damage
	Bites      int     `csv:"bites"`
	Crashes    int     `csv:"crashes"`
	ImpactMean float64 `csv:"impact_mean"` // closing speed of reported collisions, px/s
	ImpactP50  float64 `csv:"impact_p50"`
	ImpactP90  float64 `csv:"impact_p90"`

	// Player
	DudeHealth float64 `csv:"dude_health"`
	Miles      float64 `csv:"miles"`

	// Zombie pressure (sampled at window end)
	ZombiesInSight int     `csv:"zombies_in_sight"`
	ZombieDistMean float64 `csv:"zombie_dist_mean"`
	ZombieDistP10  float64 `csv:"zombie_dist_p10"`
	ZombieDistP50  float64 `csv:"zombie_dist_p50"`
	ZombieDistP90  float64 `csv:"zombie_dist_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean and percentiles of values.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("game_time", s.GameTime),
		slog.String("state", s.State),
		slog.Int("entities", s.Entities),
		slog.Int("zombies", s.Zombies),
		slog.Int("cars", s.Cars),
		slog.Int("contacts", s.Contacts),
		slog.Int("soft", s.Soft),
		slog.Int("rigid", s.Rigid),
		slog.Int("reported", s.Reported),
		slog.Int("skipped", s.Skipped),
		slog.Int("spawned", s.Spawned),
		slog.Int("reaped", s.Reaped),
		slog.Float64("contacts_per_tick", s.ContactsPerTick),
		slog.Int("bites", s.Bites),
		slog.Int("crashes", s.Crashes),
		slog.Float64("impact_mean", s.ImpactMean),
		slog.Float64("impact_p50", s.ImpactP50),
		slog.Float64("impact_p90", s.ImpactP90),
		slog.Float64("dude_health", s.DudeHealth),
		slog.Float64("miles", s.Miles),
		slog.Int("zombies_in_sight", s.ZombiesInSight),
		slog.Float64("zombie_dist_mean", s.ZombieDistMean),
		slog.Float64("zombie_dist_p10", s.ZombieDistP10),
		slog.Float64("zombie_dist_p50", s.ZombieDistP50),
		slog.Float64("zombie_dist_p90", s.ZombieDistP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"game_time", s.GameTime,
		"state", s.State,
		"entities", s.Entities,
		"zombies", s.Zombies,
		"cars", s.Cars,
		"contacts", s.Contacts,
		"soft", s.Soft,
		"rigid", s.Rigid,
		"reported", s.Reported,
		"reaped", s.Reaped,
		"bites", s.Bites,
		"crashes", s.Crashes,
		"impact_p90", s.ImpactP90,
		"dude_health", s.DudeHealth,
		"miles", s.Miles,
		"zombies_in_sight", s.ZombiesInSight,
		"zombie_dist_p50", s.ZombieDistP50,
	)
}
