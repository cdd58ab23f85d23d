package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/towerrun/internal/games/towerrun/engine"
)

// hitCueFrames is the minimum number of frames between two hit cues, about a
// quarter second at 60 fps.
const hitCueFrames = 15

// Output receives finished cue streamers.
type Output interface {
	Play(beep.Streamer)
}

// speakerOutput mixes cues into the system speaker.
type speakerOutput struct {
	mixer *beep.Mixer
}

// NewSpeakerOutput opens the default audio device.
func NewSpeakerOutput() (Output, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	out := &speakerOutput{mixer: &beep.Mixer{}}
	speaker.Play(out.mixer)
	return out, nil
}

func (o *speakerOutput) Play(s beep.Streamer) {
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

// Player turns engine events into sound cues. It implements engine.Sink.
// The output is opened on the first cue, so a session that never makes a
// sound never touches the audio device.
type Player struct {
	mu      sync.Mutex
	open    func() (Output, error)
	out     Output
	failed  bool
	enabled func() bool
	log     *log.Logger

	damage      int
	collected   int
	hitCooldown int // frames until the next hit cue may play
}

// NewPlayer creates a player on the system speaker. enabled is consulted
// before every cue; nil means always on.
func NewPlayer(enabled func() bool, logger *log.Logger) *Player {
	return NewPlayerWithOutput(NewSpeakerOutput, enabled, logger)
}

// NewPlayerWithOutput creates a player whose output is made by open.
func NewPlayerWithOutput(open func() (Output, error), enabled func() bool, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{open: open, enabled: enabled, log: logger}
}

// Play sounds a cue unless audio is disabled or unavailable.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.enabled != nil && !p.enabled() {
		return
	}
	if p.out == nil {
		if p.failed {
			return
		}
		out, err := p.open()
		if err != nil {
			p.failed = true
			p.log.Warn("audio unavailable, continuing without sound", "err", err)
			return
		}
		p.out = out
	}
	p.out.Play(Synth(c, SampleRate))
}

// Emit maps an engine event to a cue.
func (p *Player) Emit(e engine.Event) {
	switch ev := e.(type) {
	case engine.CountdownEvent:
		p.damage, p.collected, p.hitCooldown = 0, 0, 0
		if ev.Remaining > 0 {
			p.Play(CueCountdown)
		} else {
			p.Play(CueGo)
		}
	case engine.FrameEvent:
		if p.hitCooldown > 0 {
			p.hitCooldown--
		}
		if ev.DamageTaken > p.damage && p.hitCooldown == 0 {
			p.Play(CueHit)
			p.hitCooldown = hitCueFrames
		}
		if ev.ItemsCollected > p.collected {
			p.Play(CueCollect)
		}
		p.damage, p.collected = ev.DamageTaken, ev.ItemsCollected
	case engine.FloorResultEvent:
		if ev.Report.Success {
			p.Play(CueClear)
		} else {
			p.Play(CueFail)
		}
	case engine.RunSummaryEvent:
		p.Play(CueVictory)
	}
}
