// Package audio plays short synthesized cues for Tower Run events.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the output rate of every cue.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// tone is a fixed-length oscillator.
type tone struct {
	freq  float64
	wave  Wave
	phase float64
	pos   int
	total int
	rate  beep.SampleRate
}

// Tone returns a streamer playing freq for d.
func Tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, wave: wave, total: rate.N(d), rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		var v float64
		switch t.wave {
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveTriangle:
			v = 4*math.Abs(t.phase-0.5) - 1
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// fade applies a linear attack and release to a streamer of known length.
type fade struct {
	s       beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

// Fade shapes s, which lasts d, with a linear attack and release.
func Fade(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fade{s: s, total: rate.N(d), attack: rate.N(attack), release: rate.N(release)}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.s.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if f.attack > 0 && f.pos < f.attack {
			gain = float64(f.pos) / float64(f.attack)
		}
		if left := f.total - f.pos; f.release > 0 && left < f.release {
			gain = math.Max(0, float64(left)/float64(f.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

// withVolume scales s by a linear gain; 0 silences it.
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// note is one step of a cue.
type note struct {
	freq float64
	dur  time.Duration
	wave Wave
}

func melody(rate beep.SampleRate, gain float64, notes ...note) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		release := n.dur / 3
		if n.freq <= 0 {
			parts = append(parts, beep.Silence(rate.N(n.dur)))
			continue
		}
		parts = append(parts, Fade(Tone(n.freq, n.dur, n.wave, rate), n.dur, 5*time.Millisecond, release, rate))
	}
	return withVolume(beep.Seq(parts...), gain)
}

// Cue is a sound played for a game moment.
type Cue int

const (
	CueCountdown Cue = iota
	CueGo
	CueCollect
	CueHit
	CueClear
	CueFail
	CueVictory
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueCountdown:
		return "countdown"
	case CueGo:
		return "go"
	case CueCollect:
		return "collect"
	case CueHit:
		return "hit"
	case CueClear:
		return "clear"
	case CueFail:
		return "fail"
	case CueVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Synth builds the streamer for a cue.
func Synth(c Cue, rate beep.SampleRate) beep.Streamer {
	ms := time.Millisecond
	switch c {
	case CueCountdown:
		return melody(rate, 0.4, note{660, 90 * ms, WaveSine})
	case CueGo:
		return melody(rate, 0.5, note{990, 180 * ms, WaveSine})
	case CueCollect:
		return melody(rate, 0.35, note{1320, 50 * ms, WaveTriangle}, note{1760, 70 * ms, WaveTriangle})
	case CueHit:
		return melody(rate, 0.4, note{110, 140 * ms, WaveSquare})
	case CueClear:
		return melody(rate, 0.45,
			note{523, 90 * ms, WaveTriangle},
			note{659, 90 * ms, WaveTriangle},
			note{784, 160 * ms, WaveTriangle},
		)
	case CueFail:
		return melody(rate, 0.45,
			note{392, 140 * ms, WaveSquare},
			note{311, 140 * ms, WaveSquare},
			note{233, 260 * ms, WaveSquare},
		)
	case CueVictory:
		return melody(rate, 0.5,
			note{523, 110 * ms, WaveTriangle},
			note{659, 110 * ms, WaveTriangle},
			note{784, 110 * ms, WaveTriangle},
			note{0, 40 * ms, WaveSine},
			note{1047, 320 * ms, WaveTriangle},
		)
	default:
		return beep.Silence(0)
	}
}
