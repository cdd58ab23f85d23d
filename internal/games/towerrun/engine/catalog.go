// Package engine implements the Tower Run core: the difficulty model, floor
// generation, the floor simulation and the run state machine.
// It is pure Go and knows nothing about terminals; everything it shows goes
// out through a Sink.
package engine

import (
	"github.com/vovakirdan/towerrun/internal/config"
)

// Mechanic is the gameplay family a floor template belongs to.
type Mechanic string

const (
	MechanicDodge    Mechanic = "dodge"
	MechanicTiming   Mechanic = "timing"
	MechanicCollect  Mechanic = "collect"
	MechanicControl  Mechanic = "control"
	MechanicDestroy  Mechanic = "destroy"
	MechanicPlatform Mechanic = "platform"
)

// FloorTemplate is an immutable floor descriptor.
type FloorTemplate struct {
	ID          string
	Name        string
	Icon        string
	Description string
	Mechanic    Mechanic
}

var templates = []FloorTemplate{
	{ID: "laser_lattice", Name: "Laser Lattice", Icon: "⚡", Description: "Navigate timed laser patterns", Mechanic: MechanicDodge},
	{ID: "pulse_gates", Name: "Pulse Gates", Icon: "🚪", Description: "Time movement through barriers", Mechanic: MechanicTiming},
	{ID: "drift_drones", Name: "Drift Drones", Icon: "🤖", Description: "Avoid roaming obstacles", Mechanic: MechanicDodge},
	{ID: "gravity_shift", Name: "Gravity Shift", Icon: "🌀", Description: "Adapt to momentum changes", Mechanic: MechanicControl},
	{ID: "arc_mines", Name: "Arc Mines", Icon: "💣", Description: "Evade proximity triggers", Mechanic: MechanicDodge},
	{ID: "data_stream", Name: "Data Stream", Icon: "📡", Description: "Collect data, avoid corruption", Mechanic: MechanicCollect},
	{ID: "shield_matrix", Name: "Shield Matrix", Icon: "🛡", Description: "Destroy barriers quickly", Mechanic: MechanicDestroy},
	{ID: "void_walker", Name: "Void Walker", Icon: "🌑", Description: "Platform on vanishing tiles", Mechanic: MechanicPlatform},
}

// Templates returns a copy of the floor template catalog.
func Templates() []FloorTemplate {
	out := make([]FloorTemplate, len(templates))
	copy(out, templates)
	return out
}

// Risk identifies a risk level.
type Risk int

const (
	RiskSafe Risk = iota
	RiskModerate
	RiskDangerous
)

// String returns the lowercase level name.
func (r Risk) String() string {
	switch r {
	case RiskSafe:
		return "safe"
	case RiskModerate:
		return "moderate"
	case RiskDangerous:
		return "dangerous"
	default:
		return "unknown"
	}
}

// RiskLevel trades difficulty for a score multiplier.
type RiskLevel struct {
	Level      Risk
	Label      string
	Multiplier float64
	Rewards    []string // hints shown on the floor card
}

// RiskLevels returns the three risk levels with multipliers from cfg.
func RiskLevels(cfg config.RiskConfig) [3]RiskLevel {
	return [3]RiskLevel{
		{Level: RiskSafe, Label: "Safe", Multiplier: cfg.Safe, Rewards: []string{"+5 seconds", "Standard score"}},
		{Level: RiskModerate, Label: "Moderate", Multiplier: cfg.Moderate, Rewards: []string{"1.5x multiplier", "+Shield charge"}},
		{Level: RiskDangerous, Label: "Dangerous", Multiplier: cfg.Dangerous, Rewards: []string{"2x multiplier", "+Time freeze"}},
	}
}
