package towerrun

import (
	"github.com/vovakirdan/towerrun/internal/games/towerrun/engine"
)

// damageFlashFrames is how many frames the arena border flashes after a hit.
const damageFlashFrames = 6

// View keeps the latest copy of everything the engine asked to show.
// It implements engine.Sink and is only touched from the game loop.
type View struct {
	State     engine.State
	TowerMap  engine.TowerMapEvent
	HUD       engine.HUDEvent
	Countdown engine.CountdownEvent
	Frame     engine.FrameEvent
	Result    engine.FloorResultEvent
	Summary   engine.RunSummaryEvent
	GameOver  engine.GameOverEvent

	hasFrame bool
	flash    int
}

// NewView creates an empty view on the menu state.
func NewView() *View {
	return &View{State: engine.StateMenu}
}

// Emit records an engine event.
func (v *View) Emit(e engine.Event) {
	switch ev := e.(type) {
	case engine.StateChangedEvent:
		v.State = ev.To
		if ev.To == engine.StateCountdown || ev.To == engine.StateChoosing {
			v.hasFrame = false
			v.flash = 0
		}
	case engine.TowerMapEvent:
		v.TowerMap = ev
	case engine.HUDEvent:
		v.HUD = ev
	case engine.CountdownEvent:
		v.Countdown = ev
	case engine.FrameEvent:
		if v.hasFrame && ev.DamageTaken > v.Frame.DamageTaken {
			v.flash = damageFlashFrames
		} else if v.flash > 0 {
			v.flash--
		}
		v.Frame = ev
		v.hasFrame = true
	case engine.FloorResultEvent:
		v.Result = ev
	case engine.RunSummaryEvent:
		v.Summary = ev
	case engine.GameOverEvent:
		v.GameOver = ev
	}
}

// HasFrame reports whether a floor frame was received since the floor
// began.
func (v *View) HasFrame() bool {
	return v.hasFrame
}

// Flashing reports whether the player was hit in the last few frames.
func (v *View) Flashing() bool {
	return v.flash > 0
}
