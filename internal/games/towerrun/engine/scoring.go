package engine

import (
	"math"

	"github.com/vovakirdan/towerrun/internal/config"
)

// Reward badges shown on the result screen.
const (
	RewardNoDamage     = "No Damage!"
	RewardAllCollected = "All Collected!"
)

// FloorScore is the breakdown of a floor's points.
type FloorScore struct {
	Base        int
	TimeBonus   int
	Performance int
	Multiplier  float64
	Total       int
	Rewards     []string
}

// ScoreFloor computes the points of a floor at tier with risk multiplier
// mult. The breakdown is computed for failed floors too; only successful
// floors add it to the run.
func ScoreFloor(cfg config.ScoreConfig, tier int, mult float64, r FloorReport) FloorScore {
	s := FloorScore{
		Base:       cfg.BasePerTier * tier,
		TimeBonus:  int(math.Floor(r.TimeRemaining * float64(cfg.TimeBonus))),
		Multiplier: mult,
	}
	if r.DamageTaken == 0 {
		s.Performance += cfg.NoDamageBonus
		s.Rewards = append(s.Rewards, RewardNoDamage)
	}
	if r.AllCollected() {
		s.Performance += cfg.CollectAllBonus
		s.Rewards = append(s.Rewards, RewardAllCollected)
	}
	s.Total = int(math.Floor(float64(s.Base+s.TimeBonus+s.Performance) * mult))
	return s
}
