// Package main tunes zombie and crash balance so that an autopilot run
// survives a chosen share of the episode.
package main

import (
	"github.com/pthm-cable/deadroad/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "zombie_speed", Path: "game.zombie_speed", Min: 15, Max: 70, Default: 35},
			{Name: "zombie_sight", Path: "game.zombie_sight", Min: 100, Max: 800, Default: 400},
			{Name: "zombie_bite", Path: "damage.zombie_bite", Min: 2, Max: 40, Default: 10},
			{Name: "crash_damage", Path: "damage.crash_damage", Min: 0.05, Max: 1.0, Default: 0.25},
			{Name: "splat_speed", Path: "damage.splat_speed", Min: 40, Max: 250, Default: 80},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Game.ZombieSpeed = c[0]
	cfg.Game.ZombieSightPx = c[1]
	cfg.Damage.ZombieBite = c[2]
	cfg.Damage.CrashDamage = c[3]
	cfg.Damage.SplatSpeed = c[4]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Game.ZombieSpeed,
		cfg.Game.ZombieSightPx,
		cfg.Damage.ZombieBite,
		cfg.Damage.CrashDamage,
		cfg.Damage.SplatSpeed,
	}
}
