package config

import (
	"time"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// DifficultyManager calculates dynamic run parameters based on distance/time.
// With progression disabled every value stays at its initial level, which
// keeps the scroll speed constant for the whole run.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: core.ClampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on distance/ticks.
func (d *DifficultyManager) Level(distance float64, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "distance":
		progress = distance / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = core.ClampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the scroll speed for the current difficulty level.
func (d *DifficultyManager) Speed(baseSpeed float64, distance float64, ticks int) float64 {
	level := d.Level(distance, ticks)
	// Speed increases from base to base * (1 + speedMultiplier)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// Cooldown returns the obstacle spawn cooldown for the current level.
func (d *DifficultyManager) Cooldown(base time.Duration, distance float64, ticks int) time.Duration {
	level := d.Level(distance, ticks)
	reduction := time.Duration(level*float64(d.cfg.Scaling.CooldownReductionMS)) * time.Millisecond
	result := base - reduction
	if floor := base / 2; result < floor { // Keep obstacles jumpable
		result = floor
	}
	return result
}
