package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in configuration. It mirrors
// defaults/runner.yaml and is used when the embedded file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: RunnerWorld{
			Width:        400,
			Height:       400,
			GroundLevel:  350,
			GoalDistance: 5000,
			ScrollRatio:  0.5,
		},
		Physics: RunnerPhysics{
			Gravity:     0.6,
			JumpImpulse: 12,
			BaseSpeed:   5,
		},
		Player: RunnerPlayer{
			X:      50,
			Width:  40,
			Height: 40,
		},
		Spawn: RunnerSpawn{
			CooldownMS:   1500,
			GroundChance: 0.7,
			AerialMinY:   250,
			AerialMaxY:   300,
			ItemChance:   0.015,
			StarWeight:   0.1,
			ItemMinY:     200,
			ItemMaxY:     320,
		},
		Items: RunnerItems{
			CoinBonus:  50,
			StarFrames: 300,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "distance",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:     0.6,
				CooldownReductionMS: 500,
			},
		},
	}
}
