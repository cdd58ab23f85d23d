package engine

import (
	"math"

	"github.com/vovakirdan/towerrun/internal/config"
)

// minFloorTime keeps aggressive decay settings from producing floors that
// end before the first frame.
const minFloorTime = 1.0

// DifficultyParams are the numeric knobs of one floor.
type DifficultyParams struct {
	Speed         float64 // multiplier on player and obstacle speed
	ObstacleCount int
	SafeZone      float64 // px, gate gap width
	TimingWindow  float64 // ms
	FloorTime     float64 // seconds
}

// DifficultyModel maps (tier, risk) to DifficultyParams.
type DifficultyModel struct {
	cfg config.DifficultyConfig
}

// NewDifficultyModel creates a model over the given constants.
func NewDifficultyModel(cfg config.DifficultyConfig) DifficultyModel {
	return DifficultyModel{cfg: cfg}
}

// Compute returns the difficulty of a floor at tier with the given risk.
// Tiers below 1 are treated as tier 1.
func (m DifficultyModel) Compute(tier int, risk RiskLevel) DifficultyParams {
	if tier < 1 {
		tier = 1
	}
	mult := risk.Multiplier
	if mult <= 0 {
		mult = 1
	}
	step := float64(tier - 1)
	c := m.cfg

	return DifficultyParams{
		Speed:         (c.SpeedBase + step*c.SpeedScale) * mult,
		ObstacleCount: int(math.Floor((c.ObstacleBase + step*c.ObstacleScale) * mult)),
		SafeZone:      math.Max(c.SafeZoneMin, c.SafeZoneBase+step*c.SafeZoneScale/mult),
		TimingWindow:  math.Max(c.TimingMin, c.TimingBase+step*c.TimingScale/mult),
		FloorTime:     math.Max(minFloorTime, c.BaseFloorTime-step*c.TierTimeDecay),
	}
}

// ComputeDifficulty evaluates the built-in difficulty model.
func ComputeDifficulty(tier int, risk RiskLevel) DifficultyParams {
	return NewDifficultyModel(config.DefaultTowerConfig().Difficulty).Compute(tier, risk)
}
