package engine

import (
	"github.com/vovakirdan/towerrun/internal/core"
)

// ObstacleKind selects an obstacle's motion and collision rule.
type ObstacleKind int

const (
	KindMoving   ObstacleKind = iota // roaming bar, damages on contact
	KindGate                         // full-width barrier with a sliding gap
	KindPlatform                     // horizontal platform, non-damaging
	KindBlinking                     // floor tile that vanishes periodically
)

// String returns the kind name.
func (k ObstacleKind) String() string {
	switch k {
	case KindMoving:
		return "moving"
	case KindGate:
		return "gate"
	case KindPlatform:
		return "platform"
	case KindBlinking:
		return "blinking"
	default:
		return "unknown"
	}
}

// Obstacle is one hazard or structure of a floor. Fields beyond Kind and
// Rect are only meaningful for the kinds noted.
type Obstacle struct {
	Kind ObstacleKind
	Rect core.Rect
	Vel  core.Vec // moving, platform (X only)

	GapX      float64 // gate
	GapWidth  float64 // gate
	Phase     float64 // gate, blinking; radians
	Frequency float64 // gate, blinking; radians per ms

	Visible bool // blinking
}

// Segments returns the two solid parts of a gate around its gap.
func (o Obstacle) Segments(arenaW float64) (left, right core.Rect) {
	left = core.NewRect(0, o.Rect.Y, o.GapX, o.Rect.H)
	gapEnd := o.GapX + o.GapWidth
	right = core.NewRect(gapEnd, o.Rect.Y, arenaW-gapEnd, o.Rect.H)
	return left, right
}

// Collectible is a pickup, or a target with hit points on destroy floors.
type Collectible struct {
	Pos       core.Vec // center
	Radius    float64
	Collected bool
	Health    int  // destroy targets only
	Target    bool // true on destroy floors
}

// Arena is the simulation area in pixels.
type Arena struct {
	Width  float64
	Height float64
	// FloorMargin is the bottom band roaming obstacles stay out of.
	FloorMargin float64
}

// Bounds returns the arena rectangle.
func (a Arena) Bounds() core.Rect {
	return core.NewRect(0, 0, a.Width, a.Height)
}

// FloorContent is everything a floor spawns at start.
type FloorContent struct {
	Obstacles    []Obstacle
	Collectibles []Collectible
}

// TotalItems returns the number of collectibles that must be taken.
func (c FloorContent) TotalItems() int {
	return len(c.Collectibles)
}
