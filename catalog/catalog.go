// Package catalog holds per-kind sprite metrics loaded from an embedded table.
package catalog

import (
	_ "embed"
	"fmt"
	"math"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed sprites.yaml
var spritesYAML []byte

// Point is an x/y pair in image pixels.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Info describes one kind of sprite.
type Info struct {
	Kind             string  `yaml:"-"`
	Img              string  `yaml:"img"`
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	Layers           int     `yaml:"layers"`
	ImageOffset      Point   `yaml:"image_offset"`
	Center           Point   `yaml:"center"`
	CollidableOffset *Point  `yaml:"collidable_offset"`
	Z                int     `yaml:"z"`
}

// Radius returns the radius of the circle approximating the collision box.
func (i Info) Radius() float64 {
	hx, hy := i.Width/2, i.Height/2
	if i.CollidableOffset != nil {
		hx, hy = i.CollidableOffset.X, i.CollidableOffset.Y
	}
	return math.Max(hx, hy)
}

// Catalog maps kinds to their metrics.
type Catalog struct {
	infos map[string]Info
}

// Parse reads a catalog from YAML keyed by kind.
func Parse(data []byte) (*Catalog, error) {
	raw := make(map[string]Info)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing sprite catalog: %w", err)
	}
	for kind, info := range raw {
		if info.Width <= 0 || info.Height <= 0 {
			return nil, fmt.Errorf("sprite %s: width and height must be positive", kind)
		}
		info.Kind = kind
		raw[kind] = info
	}
	return &Catalog{infos: raw}, nil
}

var builtin *Catalog

func init() {
	c, err := Parse(spritesYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded sprites are invalid: %v", err))
	}
	builtin = c
}

// Default returns the embedded catalog.
func Default() *Catalog { return builtin }

// Lookup returns the metrics for kind.
func (c *Catalog) Lookup(kind string) (Info, bool) {
	info, ok := c.infos[kind]
	return info, ok
}

// Kinds returns every kind in the catalog, sorted.
func (c *Catalog) Kinds() []string {
	kinds := make([]string, 0, len(c.infos))
	for k := range c.infos {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Lookup returns the metrics for kind from the embedded catalog.
func Lookup(kind string) (Info, bool) {
	return builtin.Lookup(kind)
}
