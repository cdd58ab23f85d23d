package engine

import (
	"testing"

	"github.com/vovakirdan/towerrun/internal/config"
)

func TestScoreFloor(t *testing.T) {
	cfg := config.DefaultTowerConfig().Score

	tests := []struct {
		name    string
		tier    int
		mult    float64
		report  FloorReport
		total   int
		perf    int
		rewards []string
	}{
		{
			name:    "tier 1 safe clean",
			tier:    1,
			mult:    1.0,
			report:  FloorReport{Success: true, TimeRemaining: 10},
			total:   250,
			perf:    50,
			rewards: []string{RewardNoDamage},
		},
		{
			name:    "tier 3 dangerous all collected with damage",
			tier:    3,
			mult:    2.0,
			report:  FloorReport{Success: true, DamageTaken: 2, ItemsCollected: 5, TotalItems: 5},
			total:   650,
			perf:    25,
			rewards: []string{RewardAllCollected},
		},
		{
			name:   "fractional time and multiplier are floored",
			tier:   2,
			mult:   1.5,
			report: FloorReport{Success: true, TimeRemaining: 3.79, DamageTaken: 1, ItemsCollected: 4, TotalItems: 5},
			total:  355, // floor((200 + 37) * 1.5)
		},
		{
			name:    "both badges",
			tier:    1,
			mult:    1.0,
			report:  FloorReport{Success: true, ItemsCollected: 8, TotalItems: 8},
			total:   175,
			perf:    75,
			rewards: []string{RewardNoDamage, RewardAllCollected},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := ScoreFloor(cfg, tc.tier, tc.mult, tc.report)
			if s.Total != tc.total {
				t.Errorf("Total = %d, expected %d (%+v)", s.Total, tc.total, s)
			}
			if s.Performance != tc.perf {
				t.Errorf("Performance = %d, expected %d", s.Performance, tc.perf)
			}
			if len(s.Rewards) != len(tc.rewards) {
				t.Fatalf("Rewards = %v, expected %v", s.Rewards, tc.rewards)
			}
			for i := range tc.rewards {
				if s.Rewards[i] != tc.rewards[i] {
					t.Errorf("Rewards[%d] = %q, expected %q", i, s.Rewards[i], tc.rewards[i])
				}
			}
		})
	}
}
