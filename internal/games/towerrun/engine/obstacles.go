package engine

import (
	"math"

	"github.com/vovakirdan/towerrun/internal/core"
)

// blinkPush is how far an invisible tile drops the player per tick.
const blinkPush = 5.0

// contact is what touching an obstacle does to the player.
type contact struct {
	damage bool
	push   core.Vec
}

// obstacleRule is the motion and collision strategy of one obstacle kind.
type obstacleRule struct {
	update  func(o *Obstacle, dt float64, arena Arena)
	collide func(o *Obstacle, player core.Rect, arena Arena) contact
}

var obstacleRules = map[ObstacleKind]obstacleRule{
	KindMoving:   {update: updateMoving, collide: collideSolid},
	KindGate:     {update: updateGate, collide: collideGate},
	KindPlatform: {update: updatePlatform, collide: collideNone},
	KindBlinking: {update: updateBlinking, collide: collideBlinking},
}

func ruleFor(k ObstacleKind) obstacleRule {
	if r, ok := obstacleRules[k]; ok {
		return r
	}
	return obstacleRules[KindMoving]
}

func updateMoving(o *Obstacle, dt float64, arena Arena) {
	o.Rect.X += o.Vel.X * dt
	o.Rect.Y += o.Vel.Y * dt

	if o.Rect.X <= 0 || o.Rect.Right() >= arena.Width {
		o.Vel.X = -o.Vel.X
		o.Rect.X = core.ClampF(o.Rect.X, 0, arena.Width-o.Rect.W)
	}
	floor := arena.Height - arena.FloorMargin
	if o.Rect.Y <= 0 || o.Rect.Bottom() >= floor {
		o.Vel.Y = -o.Vel.Y
		o.Rect.Y = core.ClampF(o.Rect.Y, 0, floor-o.Rect.H)
	}
}

// updateGate slides the gap along a sinusoid. dt is in seconds and the
// frequency in radians per millisecond.
func updateGate(o *Obstacle, dt float64, arena Arena) {
	o.Phase += o.Frequency * dt * 1000
	o.GapX = ((math.Sin(o.Phase) + 1) / 2) * (arena.Width - o.GapWidth)
}

// updatePlatform slides a platform sideways. At a wall it is put back inside
// and sent away from that wall, so a long frame cannot leave it stuck outside.
func updatePlatform(o *Obstacle, dt float64, arena Arena) {
	o.Rect.X += o.Vel.X * dt
	switch {
	case o.Rect.X <= 0:
		o.Rect.X = 0
		o.Vel.X = math.Abs(o.Vel.X)
	case o.Rect.Right() >= arena.Width:
		o.Rect.X = arena.Width - o.Rect.W
		o.Vel.X = -math.Abs(o.Vel.X)
	}
}

func updateBlinking(o *Obstacle, dt float64, _ Arena) {
	o.Phase += o.Frequency * dt * 1000
	o.Visible = math.Sin(o.Phase) > 0
}

func collideSolid(o *Obstacle, player core.Rect, _ Arena) contact {
	return contact{damage: player.Intersects(o.Rect)}
}

func collideGate(o *Obstacle, player core.Rect, arena Arena) contact {
	left, right := o.Segments(arena.Width)
	return contact{damage: player.Intersects(left) || player.Intersects(right)}
}

func collideNone(*Obstacle, core.Rect, Arena) contact {
	return contact{}
}

func collideBlinking(o *Obstacle, player core.Rect, _ Arena) contact {
	if !o.Visible && player.Intersects(o.Rect) {
		return contact{push: core.Vec{Y: blinkPush}}
	}
	return contact{}
}
