package config

import (
	_ "embed"
)

//go:embed defaults/towerrun.yaml
var defaultTowerYAML []byte

// DefaultTowerConfig returns the built-in Tower Run configuration.
func DefaultTowerConfig() TowerConfig {
	return TowerConfig{
		Run: RunConfig{
			Tiers:            8,
			OptionsPerTier:   3,
			CountdownSeconds: 3,
		},
		Difficulty: DifficultyConfig{
			SpeedBase:     1.0,
			SpeedScale:    0.2,
			ObstacleBase:  3,
			ObstacleScale: 1.2,
			SafeZoneBase:  80,
			SafeZoneScale: -5,
			SafeZoneMin:   30,
			TimingBase:    1000,
			TimingScale:   -75,
			TimingMin:     300,
			BaseFloorTime: 25,
			TierTimeDecay: 1.5,
		},
		Score: ScoreConfig{
			BasePerTier:     100,
			TimeBonus:       10,
			NoDamageBonus:   50,
			CollectAllBonus: 25,
		},
		Risk: RiskConfig{
			Safe:      1.0,
			Moderate:  1.5,
			Dangerous: 2.0,
		},
		Arena: ArenaConfig{
			Width:       800,
			Height:      500,
			FloorMargin: 100,
		},
		Player: PlayerConfig{
			Width:       40,
			Height:      40,
			BaseSpeed:   300,
			StartOffset: 100,
		},
	}
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultTowerYAML
}
