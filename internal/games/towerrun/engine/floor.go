package engine

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/towerrun/internal/config"
	"github.com/vovakirdan/towerrun/internal/core"
)

// Phase is the lifecycle stage of a floor.
type Phase int

const (
	PhaseCountdown Phase = iota
	PhaseRunning
	PhaseSucceeded
	PhaseFailed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhaseRunning:
		return "running"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the floor has ended.
func (p Phase) Terminal() bool {
	return p == PhaseSucceeded || p == PhaseFailed
}

// Player is the controllable body of a floor.
type Player struct {
	Rect  core.Rect
	Speed float64 // px/s
}

// FloorReport is the outcome of a finished floor.
type FloorReport struct {
	Success        bool
	TimeRemaining  float64 // seconds, never negative
	DamageTaken    int
	ItemsCollected int
	TotalItems     int
}

// AllCollected reports whether the floor had items and all were taken.
func (r FloorReport) AllCollected() bool {
	return r.TotalItems > 0 && r.ItemsCollected >= r.TotalItems
}

// Floor simulates one floor challenge.
type Floor struct {
	option  FloorOption
	arena   Arena
	phase   Phase
	player  Player
	content FloorContent

	timeRemaining float64
	damage        int
	collected     int
	paused        bool

	fpsFrames int
	fpsTime   float64
	fps       int
}

// NewFloor creates a floor in the countdown phase with freshly generated
// content. The player starts centred horizontally above the arena bottom.
func NewFloor(opt FloorOption, arena Arena, pc config.PlayerConfig, rng *rand.Rand) *Floor {
	f := &Floor{
		option:        opt,
		arena:         arena,
		phase:         PhaseCountdown,
		content:       GenerateFloorContent(opt, arena, rng),
		timeRemaining: opt.Difficulty.FloorTime,
	}
	f.player = Player{
		Rect: core.NewRect(
			core.ClampF(arena.Width/2, 0, arena.Width-pc.Width),
			core.ClampF(arena.Height-pc.StartOffset, 0, arena.Height-pc.Height),
			pc.Width, pc.Height,
		),
		Speed: pc.BaseSpeed * opt.Difficulty.Speed,
	}
	return f
}

// Start moves a counting-down floor into the running phase.
func (f *Floor) Start() {
	if f.phase == PhaseCountdown {
		f.phase = PhaseRunning
	}
}

// Pause freezes the floor. Ticks while paused do nothing.
func (f *Floor) Pause() { f.paused = true }

// Resume unfreezes the floor.
func (f *Floor) Resume() { f.paused = false }

// Paused reports whether the floor is frozen.
func (f *Floor) Paused() bool { return f.paused }

// Tick advances the simulation by dt seconds with the player moving along
// dir. It returns true on the tick the floor ends.
func (f *Floor) Tick(dt float64, dir core.Vec) bool {
	if f.phase != PhaseRunning || f.paused || dt < 0 {
		return false
	}

	f.countFrame(dt)

	// Player
	move := dir.Unit().Scale(f.player.Speed * dt)
	f.player.Rect.X += move.X
	f.player.Rect.Y += move.Y
	f.clampPlayer()

	// Obstacles
	for i := range f.content.Obstacles {
		o := &f.content.Obstacles[i]
		ruleFor(o.Kind).update(o, dt, f.arena)
	}

	f.collide()

	f.timeRemaining -= dt

	// A clear on the same tick the timer runs out still counts.
	if f.TotalItems() > 0 && f.collected >= f.TotalItems() {
		f.phase = PhaseSucceeded
		return true
	}
	if f.timeRemaining <= 0 {
		f.timeRemaining = 0
		if f.TotalItems() > 0 {
			f.phase = PhaseFailed
		} else {
			f.phase = PhaseSucceeded
		}
		return true
	}
	return false
}

func (f *Floor) clampPlayer() {
	r := &f.player.Rect
	r.X = core.ClampF(r.X, 0, f.arena.Width-r.W)
	r.Y = core.ClampF(r.Y, 0, f.arena.Height-r.H)
}

func (f *Floor) collide() {
	for i := range f.content.Obstacles {
		o := &f.content.Obstacles[i]
		c := ruleFor(o.Kind).collide(o, f.player.Rect, f.arena)
		if c.damage {
			f.damage++
		}
		f.player.Rect.X += c.push.X
		f.player.Rect.Y += c.push.Y
	}

	center := f.player.Rect.Center()
	reach := f.player.Rect.W / 2
	for i := range f.content.Collectibles {
		c := &f.content.Collectibles[i]
		if c.Collected || !core.CirclesTouch(center, reach, c.Pos, c.Radius) {
			continue
		}
		if c.Target {
			c.Health--
			if c.Health > 0 {
				continue
			}
		}
		c.Collected = true
		f.collected++
	}
}

// countFrame tracks frames per simulated second.
func (f *Floor) countFrame(dt float64) {
	f.fpsFrames++
	f.fpsTime += dt
	if f.fpsTime >= 1 {
		f.fps = f.fpsFrames
		f.fpsFrames = 0
		f.fpsTime = 0
	}
}

// Report returns the floor's outcome so far.
func (f *Floor) Report() FloorReport {
	return FloorReport{
		Success:        f.phase == PhaseSucceeded,
		TimeRemaining:  math.Max(0, f.timeRemaining),
		DamageTaken:    f.damage,
		ItemsCollected: f.collected,
		TotalItems:     f.TotalItems(),
	}
}

// Phase returns the current phase.
func (f *Floor) Phase() Phase { return f.phase }

// Option returns the floor option being played.
func (f *Floor) Option() FloorOption { return f.option }

// Arena returns the simulation area.
func (f *Floor) Arena() Arena { return f.arena }

// Player returns the player body.
func (f *Floor) Player() Player { return f.player }

// TimeRemaining returns the seconds left on the floor timer.
func (f *Floor) TimeRemaining() float64 { return math.Max(0, f.timeRemaining) }

// Damage returns the damage counter.
func (f *Floor) Damage() int { return f.damage }

// TotalItems returns the number of collectibles on the floor.
func (f *Floor) TotalItems() int { return f.content.TotalItems() }

// FPS returns the frames counted during the last full second.
func (f *Floor) FPS() int { return f.fps }

// Obstacles returns a copy of the obstacles.
func (f *Floor) Obstacles() []Obstacle {
	out := make([]Obstacle, len(f.content.Obstacles))
	copy(out, f.content.Obstacles)
	return out
}

// Collectibles returns a copy of the collectibles.
func (f *Floor) Collectibles() []Collectible {
	out := make([]Collectible, len(f.content.Collectibles))
	copy(out, f.content.Collectibles)
	return out
}
