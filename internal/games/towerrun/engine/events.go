package engine

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/towerrun/internal/core"
)

// Event is something the engine wants shown. Events are write-only: the
// engine never reads anything back from a sink.
type Event interface {
	towerEvent()
}

// StateChangedEvent is emitted on every run state transition.
type StateChangedEvent struct {
	From State
	To   State
}

func (StateChangedEvent) towerEvent() {}

// TierStatus is how a tier row is shown on the tower map.
type TierStatus int

const (
	TierLocked TierStatus = iota
	TierActive
	TierCompleted
)

// String returns the status name.
func (s TierStatus) String() string {
	switch s {
	case TierActive:
		return "active"
	case TierCompleted:
		return "completed"
	default:
		return "locked"
	}
}

// TierRow is one tier of the tower map.
type TierRow struct {
	Tier     int
	Status   TierStatus
	Options  []FloorOption
	Selected int // index of the chosen option, -1 if none
}

// TowerMapEvent asks for the tower map, top tier first.
type TowerMapEvent struct {
	CurrentTier int
	Rows        []TierRow
	Score       int
	Multiplier  float64
	BestScore   int
}

func (TowerMapEvent) towerEvent() {}

// HUDEvent carries the heads-up display values.
type HUDEvent struct {
	Tier          int
	Floor         string
	Score         int
	TimeRemaining float64
	FPS           int
	ShowFPS       bool
}

func (HUDEvent) towerEvent() {}

// CountdownEvent is emitted for each countdown step; Remaining reaches 0
// when the floor starts.
type CountdownEvent struct {
	Tier      int
	Floor     FloorTemplate
	Risk      RiskLevel
	Remaining int
}

func (CountdownEvent) towerEvent() {}

// FrameEvent carries the draw state of the running floor.
type FrameEvent struct {
	Arena          Arena
	Player         core.Rect
	Obstacles      []Obstacle
	Collectibles   []Collectible
	TimeRemaining  float64
	DamageTaken    int
	ItemsCollected int
	TotalItems     int
	ReduceMotion   bool
}

func (FrameEvent) towerEvent() {}

// FloorResultEvent is emitted when a floor ends.
type FloorResultEvent struct {
	Tier     int
	NextTier int
	Floor    FloorTemplate
	Report   FloorReport
	Score    FloorScore
	RunScore int
}

func (FloorResultEvent) towerEvent() {}

// RunSummaryEvent is emitted when a run is won.
type RunSummaryEvent struct {
	Score             int
	FloorsCleared     int
	Duration          time.Duration
	TotalTime         string // m:ss
	HighestMultiplier float64
	IsNewBest         bool
	IsFastest         bool
}

func (RunSummaryEvent) towerEvent() {}

// GameOverEvent is emitted when a run is lost.
type GameOverEvent struct {
	Score         int
	Tier          int
	FloorsCleared int
	IsNewBest     bool
}

func (GameOverEvent) towerEvent() {}

// Sink consumes engine events.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Emit calls f.
func (f SinkFunc) Emit(e Event) { f(e) }

// MultiSink fans events out to several sinks in order.
type MultiSink []Sink

// Emit sends e to every non-nil sink.
func (m MultiSink) Emit(e Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(e)
		}
	}
}

type nopSink struct{}

func (nopSink) Emit(Event) {}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
