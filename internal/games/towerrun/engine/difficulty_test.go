package engine

import (
	"math"
	"testing"

	"github.com/vovakirdan/towerrun/internal/config"
)

func TestDifficultyClamps(t *testing.T) {
	risks := RiskLevels(config.DefaultTowerConfig().Risk)
	for tier := 1; tier <= 8; tier++ {
		for _, risk := range risks {
			d := ComputeDifficulty(tier, risk)
			if d.SafeZone < 30 {
				t.Errorf("tier %d %s: SafeZone = %f, expected >= 30", tier, risk.Level, d.SafeZone)
			}
			if d.TimingWindow < 300 {
				t.Errorf("tier %d %s: TimingWindow = %f, expected >= 300", tier, risk.Level, d.TimingWindow)
			}
			if d.FloorTime <= 0 {
				t.Errorf("tier %d %s: FloorTime = %f, expected > 0", tier, risk.Level, d.FloorTime)
			}
		}
	}
}

func TestDifficultyFormulas(t *testing.T) {
	risks := RiskLevels(config.DefaultTowerConfig().Risk)

	tests := []struct {
		name      string
		tier      int
		risk      RiskLevel
		speed     float64
		obstacles int
		safeZone  float64
		timing    float64
		floorTime float64
	}{
		{"tier 1 safe", 1, risks[0], 1.0, 3, 80, 1000, 25},
		{"tier 1 dangerous", 1, risks[2], 2.0, 6, 80, 1000, 25},
		{"tier 3 moderate", 3, risks[1], 2.1, 8, 80 - 10/1.5, 1000 - 150/1.5, 22},
		{"tier 8 dangerous", 8, risks[2], 4.8, 22, 62.5, 737.5, 14.5},
		{"tier 0 treated as 1", 0, risks[0], 1.0, 3, 80, 1000, 25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := ComputeDifficulty(tc.tier, tc.risk)
			if !almostEqual(d.Speed, tc.speed) {
				t.Errorf("Speed = %f, expected %f", d.Speed, tc.speed)
			}
			if d.ObstacleCount != tc.obstacles {
				t.Errorf("ObstacleCount = %d, expected %d", d.ObstacleCount, tc.obstacles)
			}
			if !almostEqual(d.SafeZone, tc.safeZone) {
				t.Errorf("SafeZone = %f, expected %f", d.SafeZone, tc.safeZone)
			}
			if !almostEqual(d.TimingWindow, tc.timing) {
				t.Errorf("TimingWindow = %f, expected %f", d.TimingWindow, tc.timing)
			}
			if !almostEqual(d.FloorTime, tc.floorTime) {
				t.Errorf("FloorTime = %f, expected %f", d.FloorTime, tc.floorTime)
			}
		})
	}
}

func TestDifficultyMinimumsFromConfig(t *testing.T) {
	cfg := config.DefaultTowerConfig().Difficulty
	cfg.SafeZoneScale = -50
	cfg.TimingScale = -500
	cfg.TierTimeDecay = 10

	d := NewDifficultyModel(cfg).Compute(8, RiskLevel{Multiplier: 1})
	if d.SafeZone != cfg.SafeZoneMin {
		t.Errorf("SafeZone = %f, expected clamp to %f", d.SafeZone, cfg.SafeZoneMin)
	}
	if d.TimingWindow != cfg.TimingMin {
		t.Errorf("TimingWindow = %f, expected clamp to %f", d.TimingWindow, cfg.TimingMin)
	}
	if d.FloorTime != minFloorTime {
		t.Errorf("FloorTime = %f, expected clamp to %f", d.FloorTime, minFloorTime)
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
