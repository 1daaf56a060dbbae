// Package config provides YAML-based game configuration loading and
// difficulty management for the runner.
package config

import (
	"errors"
	"fmt"
)

// RunnerConfig contains all configuration for the Goal Runner game.
type RunnerConfig struct {
	World      RunnerWorld      `yaml:"world"`
	Physics    RunnerPhysics    `yaml:"physics"`
	Player     RunnerPlayer     `yaml:"player"`
	Spawn      RunnerSpawn      `yaml:"spawn"`
	Items      RunnerItems      `yaml:"items"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerWorld defines the logical playfield.
type RunnerWorld struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundLevel  float64 `yaml:"ground_level"`  // Y of the ground line
	GoalDistance float64 `yaml:"goal_distance"` // Distance needed to win
	ScrollRatio  float64 `yaml:"scroll_ratio"`  // Background parallax factor
}

// RunnerPhysics defines physics parameters.
type RunnerPhysics struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"` // Applied upward (as negative velocity)
	BaseSpeed   float64 `yaml:"base_speed"`   // Scroll speed per tick
}

// RunnerPlayer defines player parameters.
type RunnerPlayer struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RunnerSpawn defines obstacle and item generation.
type RunnerSpawn struct {
	CooldownMS   int     `yaml:"cooldown_ms"`   // Minimum frame time between obstacles
	GroundChance float64 `yaml:"ground_chance"` // Chance an obstacle is a ground variant
	AerialMinY   float64 `yaml:"aerial_min_y"`
	AerialMaxY   float64 `yaml:"aerial_max_y"`
	ItemChance   float64 `yaml:"item_chance"` // Per-tick chance of spawning an item
	StarWeight   float64 `yaml:"star_weight"` // Share of items that are stars
	ItemMinY     float64 `yaml:"item_min_y"`
	ItemMaxY     float64 `yaml:"item_max_y"`
}

// RunnerItems defines pickup effects.
type RunnerItems struct {
	CoinBonus  int `yaml:"coin_bonus"`
	StarFrames int `yaml:"star_frames"` // Invincibility length in ticks
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "distance", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Distance/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier     float64 `yaml:"speed_multiplier"`      // Multiplier added to speed at max difficulty
	CooldownReductionMS int     `yaml:"cooldown_reduction_ms"` // Spawn cooldown reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. The empty string means
// "keep the config as loaded".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	if cfg.Difficulty.Progression.Type == "" || cfg.Difficulty.Progression.Type == "none" {
		cfg.Difficulty.Progression.Type = "distance"
	}

	switch preset {
	case DifficultyEasy:
		cfg.Spawn.GroundChance = 0.85 // birds are harder to read
		cfg.Items.StarFrames += cfg.Items.StarFrames / 2
	case DifficultyHard:
		cfg.Spawn.GroundChance = 0.55
		cfg.Items.StarFrames -= cfg.Items.StarFrames / 3
	}
}

// Validate reports configuration values that would make the simulation
// meaningless.
func (c RunnerConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	probability := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", name, v))
		}
	}

	positive("world.width", c.World.Width)
	positive("world.height", c.World.Height)
	positive("world.ground_level", c.World.GroundLevel)
	positive("world.goal_distance", c.World.GoalDistance)
	positive("physics.gravity", c.Physics.Gravity)
	positive("physics.jump_impulse", c.Physics.JumpImpulse)
	positive("physics.base_speed", c.Physics.BaseSpeed)
	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	probability("spawn.ground_chance", c.Spawn.GroundChance)
	probability("spawn.item_chance", c.Spawn.ItemChance)
	probability("spawn.star_weight", c.Spawn.StarWeight)

	if c.World.GroundLevel > c.World.Height {
		errs = append(errs, fmt.Errorf("world.ground_level %v is below the canvas height %v", c.World.GroundLevel, c.World.Height))
	}
	if c.Player.Height > c.World.GroundLevel {
		errs = append(errs, fmt.Errorf("player.height %v does not fit above the ground", c.Player.Height))
	}
	if c.Spawn.AerialMaxY < c.Spawn.AerialMinY {
		errs = append(errs, errors.New("spawn.aerial_max_y must not be below aerial_min_y"))
	}
	if c.Spawn.ItemMaxY < c.Spawn.ItemMinY {
		errs = append(errs, errors.New("spawn.item_max_y must not be below item_min_y"))
	}
	if c.World.ScrollRatio < 0 {
		errs = append(errs, fmt.Errorf("world.scroll_ratio must not be negative, got %v", c.World.ScrollRatio))
	}
	if c.Spawn.CooldownMS < 0 {
		errs = append(errs, errors.New("spawn.cooldown_ms must not be negative"))
	}
	if c.Items.StarFrames < 0 {
		errs = append(errs, errors.New("items.star_frames must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid runner config: %w", errors.Join(errs...))
	}
	return nil
}
