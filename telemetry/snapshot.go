package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the sprites of a running game so a scene can be inspected
// or replayed as a scenario.
type Snapshot struct {
	Version int   `json:"version"`
	Seed    int64 `json:"seed"`

	Tick    int32   `json:"tick"`
	State   string  `json:"state"`
	Elapsed float64 `json:"elapsed"`
	Target  float64 `json:"target"`

	Sprites []SpriteState `json:"sprites"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// SpriteState holds one sprite's state.
type SpriteState struct {
	ID   uint64 `json:"id"`
	Kind string `json:"kind"`

	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Rot  float64 `json:"rot"`
	VelX float64 `json:"vel_x,omitempty"`
	VelY float64 `json:"vel_y,omitempty"`

	Health float64 `json:"health,omitempty"`
}

// Descriptor renders the sprite as a scenario line: "Kind x y rot".
func (s SpriteState) Descriptor() string {
	return strings.Join([]string{
		s.Kind,
		strconv.FormatFloat(s.X, 'f', -1, 64),
		strconv.FormatFloat(s.Y, 'f', -1, 64),
		strconv.FormatFloat(s.Rot, 'f', -1, 64),
	}, " ")
}

// Descriptors renders every sprite in the snapshot as a scenario line.
func (s *Snapshot) Descriptors() []string {
	out := make([]string, 0, len(s.Sprites))
	for _, sp := range s.Sprites {
		out = append(out, sp.Descriptor())
	}
	return out
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
