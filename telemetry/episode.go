package telemetry

import "log/slog"

// Episode summarizes one finished run from start to won or died.
type Episode struct {
	Index      int     `csv:"episode"`
	Outcome    string  `csv:"outcome"`
	EndTick    int32   `csv:"end_tick"`
	SimTimeSec float64 `csv:"sim_time"`
	GameTime   string  `csv:"game_time"`
	Miles      float64 `csv:"miles"`
	DudeHealth float64 `csv:"dude_health"`
	TimedOut   bool    `csv:"timed_out"`
}

// LogEpisode logs the episode using slog.
func (e Episode) LogEpisode() {
	slog.Info("episode",
		"episode", e.Index,
		"outcome", e.Outcome,
		"end_tick", e.EndTick,
		"sim_time", e.SimTimeSec,
		"game_time", e.GameTime,
		"miles", e.Miles,
		"dude_health", e.DudeHealth,
		"timed_out", e.TimedOut,
	)
}
