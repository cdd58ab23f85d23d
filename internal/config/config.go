// Package config provides YAML-based configuration loading for Tower Run.
package config

import (
	"errors"
	"fmt"
)

// TowerConfig contains all tunable constants of a tower run.
type TowerConfig struct {
	Run        RunConfig        `yaml:"run"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Score      ScoreConfig      `yaml:"score"`
	Risk       RiskConfig       `yaml:"risk"`
	Arena      ArenaConfig      `yaml:"arena"`
	Player     PlayerConfig     `yaml:"player"`
}

// RunConfig defines the shape of a run.
type RunConfig struct {
	Tiers            int `yaml:"tiers"`
	OptionsPerTier   int `yaml:"options_per_tier"`
	CountdownSeconds int `yaml:"countdown_seconds"`
}

// DifficultyConfig holds the base values and per-tier scaling of the
// difficulty model.
type DifficultyConfig struct {
	SpeedBase      float64 `yaml:"speed_base"`
	SpeedScale     float64 `yaml:"speed_scale"` // added per tier
	ObstacleBase   float64 `yaml:"obstacle_base"`
	ObstacleScale  float64 `yaml:"obstacle_scale"`
	SafeZoneBase   float64 `yaml:"safe_zone_base"`
	SafeZoneScale  float64 `yaml:"safe_zone_scale"` // negative: shrinks per tier
	SafeZoneMin    float64 `yaml:"safe_zone_min"`
	TimingBase     float64 `yaml:"timing_base"`  // ms
	TimingScale    float64 `yaml:"timing_scale"` // ms, negative: tighter per tier
	TimingMin      float64 `yaml:"timing_min"`
	BaseFloorTime  float64 `yaml:"base_floor_time"` // seconds
	TierTimeDecay  float64 `yaml:"tier_time_decay"` // seconds removed per tier
}

// ScoreConfig defines floor scoring.
type ScoreConfig struct {
	BasePerTier     int `yaml:"base_per_tier"`
	TimeBonus       int `yaml:"time_bonus"` // per second remaining
	NoDamageBonus   int `yaml:"no_damage_bonus"`
	CollectAllBonus int `yaml:"collect_all_bonus"`
}

// RiskConfig holds the score multiplier of each risk level.
type RiskConfig struct {
	Safe      float64 `yaml:"safe"`
	Moderate  float64 `yaml:"moderate"`
	Dangerous float64 `yaml:"dangerous"`
}

// ArenaConfig defines the floor simulation area in pixels.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// FloorMargin is the band at the bottom of the arena that roaming
	// obstacles never enter.
	FloorMargin float64 `yaml:"floor_margin"`
}

// PlayerConfig defines the player's body and base speed.
type PlayerConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	BaseSpeed   float64 `yaml:"base_speed"` // px/s at difficulty speed 1.0
	StartOffset float64 `yaml:"start_offset"`
}

// Validate reports configuration values the engine cannot run with.
func (c TowerConfig) Validate() error {
	var errs []error
	if c.Run.Tiers < 1 {
		errs = append(errs, fmt.Errorf("run.tiers must be at least 1, got %d", c.Run.Tiers))
	}
	if c.Run.OptionsPerTier < 1 || c.Run.OptionsPerTier > 3 {
		errs = append(errs, fmt.Errorf("run.options_per_tier must be 1..3, got %d", c.Run.OptionsPerTier))
	}
	if c.Run.CountdownSeconds < 0 {
		errs = append(errs, fmt.Errorf("run.countdown_seconds must not be negative"))
	}
	if c.Risk.Safe <= 0 || c.Risk.Moderate <= 0 || c.Risk.Dangerous <= 0 {
		errs = append(errs, errors.New("risk multipliers must be positive"))
	}
	if c.Arena.Width <= c.Player.Width || c.Arena.Height <= c.Player.Height {
		errs = append(errs, errors.New("arena must be larger than the player"))
	}
	if c.Player.BaseSpeed <= 0 {
		errs = append(errs, errors.New("player.base_speed must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid tower config: %w", errors.Join(errs...))
	}
	return nil
}
