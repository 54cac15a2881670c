package session

import (
	"github.com/pthm-cable/deadroad/actors"
	"github.com/pthm-cable/deadroad/config"
	"github.com/pthm-cable/deadroad/telemetry"
)

// Replay returns a copy of cfg whose scenario is the scene saved in snap.
// The dude starts where the snapshot left him. Clock and velocities are not
// restored; the replayed episode starts at time zero.
func Replay(cfg *config.Config, snap *telemetry.Snapshot) *config.Config {
	out := *cfg
	out.Scenario.OffsetX, out.Scenario.OffsetY = 0, 0
	out.Scenario.Sprites = make([]string, 0, len(snap.Sprites))

	for _, sp := range snap.Sprites {
		if sp.Kind == actors.KindDude {
			out.Game.StartX, out.Game.StartY = sp.X, sp.Y
			continue
		}
		out.Scenario.Sprites = append(out.Scenario.Sprites, sp.Descriptor())
	}
	return &out
}
