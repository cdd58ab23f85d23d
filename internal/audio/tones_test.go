package audio

import (
	"errors"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/towerrun/internal/games/towerrun/engine"
)

// drain streams s to the end and returns the number of samples and the
// largest absolute value seen.
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for _, v := range buf[i] {
				if v < 0 {
					v = -v
				}
				if v > peak {
					peak = v
				}
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, w := range []Wave{WaveSine, WaveSquare, WaveTriangle} {
		n, peak := drain(Tone(440, 100*time.Millisecond, w, rate))
		if n != rate.N(100*time.Millisecond) {
			t.Errorf("wave %d: streamed %d samples, want %d", w, n, rate.N(100*time.Millisecond))
		}
		if peak > 1.0001 || peak < 0.5 {
			t.Errorf("wave %d: peak = %f, want within (0.5, 1]", w, peak)
		}
	}
}

func TestFadeStartsSilent(t *testing.T) {
	rate := beep.SampleRate(8000)
	d := 100 * time.Millisecond
	s := Fade(Tone(440, d, WaveSquare, rate), d, 20*time.Millisecond, 20*time.Millisecond, rate)

	buf := make([][2]float64, 1)
	s.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, want 0 at the start of the attack", buf[0][0])
	}
}

func TestSynthEveryCue(t *testing.T) {
	for c := CueCountdown; c <= CueVictory; c++ {
		n, peak := drain(Synth(c, SampleRate))
		if n == 0 {
			t.Errorf("cue %v is empty", c)
		}
		if peak == 0 || peak > 1 {
			t.Errorf("cue %v peak = %f, want within (0, 1]", c, peak)
		}
	}
}

type recordingOutput struct {
	played int
}

func (r *recordingOutput) Play(beep.Streamer) { r.played++ }

func TestPlayerCues(t *testing.T) {
	out := &recordingOutput{}
	p := NewPlayerWithOutput(func() (Output, error) { return out, nil }, nil, nil)

	p.Emit(engine.CountdownEvent{Remaining: 3})
	p.Emit(engine.CountdownEvent{Remaining: 0})
	p.Emit(engine.FrameEvent{})
	p.Emit(engine.FrameEvent{DamageTaken: 1})
	p.Emit(engine.FrameEvent{DamageTaken: 1})
	p.Emit(engine.FrameEvent{DamageTaken: 1, ItemsCollected: 1})
	p.Emit(engine.FloorResultEvent{Report: engine.FloorReport{Success: true}})
	p.Emit(engine.HUDEvent{})

	if out.played != 5 {
		t.Errorf("played %d cues, want 5", out.played)
	}
}

func TestPlayerHitCueRateLimited(t *testing.T) {
	out := &recordingOutput{}
	p := NewPlayerWithOutput(func() (Output, error) { return out, nil }, nil, nil)

	// Damage rises on every frame for one second of contact.
	for dmg := 1; dmg <= 60; dmg++ {
		p.Emit(engine.FrameEvent{DamageTaken: dmg})
	}
	if want := 60 / hitCueFrames; out.played != want {
		t.Errorf("played %d hit cues over 60 frames, want %d", out.played, want)
	}

	// A new floor starts with the cue available again.
	out.played = 0
	p.Emit(engine.CountdownEvent{Remaining: 0})
	p.Emit(engine.FrameEvent{DamageTaken: 1})
	if out.played != 2 {
		t.Errorf("played %d cues, want go + hit", out.played)
	}
}

func TestPlayerRespectsSetting(t *testing.T) {
	out := &recordingOutput{}
	on := false
	p := NewPlayerWithOutput(func() (Output, error) { return out, nil }, func() bool { return on }, nil)

	p.Play(CueClear)
	if out.played != 0 {
		t.Fatal("disabled player should stay silent")
	}
	on = true
	p.Play(CueClear)
	if out.played != 1 {
		t.Errorf("played %d cues, want 1", out.played)
	}
}

func TestPlayerOpenFailure(t *testing.T) {
	opens := 0
	p := NewPlayerWithOutput(func() (Output, error) {
		opens++
		return nil, errors.New("no device")
	}, nil, nil)

	p.Play(CueHit)
	p.Play(CueHit)
	if opens != 1 {
		t.Errorf("open called %d times, want 1", opens)
	}
}
