package engine

import (
	"math/rand"
)

// FloorOption is one selectable floor of a tier.
type FloorOption struct {
	Template   FloorTemplate
	Risk       RiskLevel
	Tier       int
	Difficulty DifficultyParams
}

// Generator produces the floor options of each tier.
type Generator struct {
	rng     *rand.Rand
	model   DifficultyModel
	risks   [3]RiskLevel
	perTier int
}

// NewGenerator creates a generator drawing from rng. perTier is capped at 3,
// the number of risk levels.
func NewGenerator(rng *rand.Rand, model DifficultyModel, risks [3]RiskLevel, perTier int) *Generator {
	if perTier < 1 || perTier > len(risks) {
		perTier = len(risks)
	}
	return &Generator{rng: rng, model: model, risks: risks, perTier: perTier}
}

// GenerateTierOptions picks distinct templates without replacement and pairs
// each with a distinct risk level.
func (g *Generator) GenerateTierOptions(tier int) []FloorOption {
	tplOrder := g.rng.Perm(len(templates))
	riskOrder := g.rng.Perm(len(g.risks))

	opts := make([]FloorOption, g.perTier)
	for i := range opts {
		risk := g.risks[riskOrder[i]]
		opts[i] = FloorOption{
			Template:   templates[tplOrder[i]],
			Risk:       risk,
			Tier:       tier,
			Difficulty: g.model.Compute(tier, risk),
		}
	}
	return opts
}
