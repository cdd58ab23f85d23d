package engine

import (
	"time"
)

// Scheduler runs timer and frame callbacks on the caller's goroutine.
// Nothing fires until Advance is called; the platform decides how often.
type Scheduler struct {
	now    time.Time
	seq    uint64
	timers []*Handle
	frames []*Handle
}

// Handle identifies a scheduled callback.
type Handle struct {
	seq       uint64
	due       time.Time      // timers
	last      time.Time      // frames
	timer     func()         // set for timers
	frame     func(float64)  // set for frames; receives dt in seconds
	cancelled bool
	paused    bool
}

// NewScheduler creates a scheduler whose clock starts at now.
func NewScheduler(now time.Time) *Scheduler {
	return &Scheduler{now: now}
}

// Now returns the scheduler clock. Inside a timer callback it is the timer's
// deadline.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// After schedules fn to run once, d after the scheduler clock.
func (s *Scheduler) After(d time.Duration, fn func()) *Handle {
	s.seq++
	h := &Handle{seq: s.seq, due: s.now.Add(d), timer: fn}
	s.timers = append(s.timers, h)
	return h
}

// OnFrame subscribes fn to every Advance. The first delta is measured from
// the scheduler clock at subscription time.
func (s *Scheduler) OnFrame(fn func(dt float64)) *Handle {
	s.seq++
	h := &Handle{seq: s.seq, last: s.now, frame: fn}
	s.frames = append(s.frames, h)
	return h
}

// Advance moves the clock to now. Due timers fire in deadline order,
// including timers scheduled by callbacks that are already due, then every
// active frame callback fires once.
func (s *Scheduler) Advance(now time.Time) {
	if now.Before(s.now) {
		now = s.now
	}

	for {
		h := s.nextDue(now)
		if h == nil {
			break
		}
		s.now = h.due
		h.cancelled = true // one-shot
		h.timer()
	}
	s.now = now

	frames := make([]*Handle, len(s.frames))
	copy(frames, s.frames)
	for _, h := range frames {
		if h.cancelled {
			continue
		}
		if h.paused {
			h.last = now
			continue
		}
		dt := now.Sub(h.last).Seconds()
		h.last = now
		h.frame(dt)
	}

	s.compact()
}

// nextDue returns the earliest live timer due at or before now.
func (s *Scheduler) nextDue(now time.Time) *Handle {
	var best *Handle
	for _, h := range s.timers {
		if h.cancelled || h.due.After(now) {
			continue
		}
		if best == nil || h.due.Before(best.due) || (h.due.Equal(best.due) && h.seq < best.seq) {
			best = h
		}
	}
	return best
}

func (s *Scheduler) compact() {
	s.timers = live(s.timers)
	s.frames = live(s.frames)
}

func live(hs []*Handle) []*Handle {
	out := hs[:0]
	for _, h := range hs {
		if !h.cancelled {
			out = append(out, h)
		}
	}
	for i := len(out); i < len(hs); i++ {
		hs[i] = nil
	}
	return out
}

// pending returns the number of live timers and frame subscriptions.
func (s *Scheduler) pending() int {
	n := 0
	for _, h := range s.timers {
		if !h.cancelled {
			n++
		}
	}
	for _, h := range s.frames {
		if !h.cancelled {
			n++
		}
	}
	return n
}

// CancelAll cancels every timer and frame subscription.
func (s *Scheduler) CancelAll() {
	for _, h := range s.timers {
		h.Cancel()
	}
	for _, h := range s.frames {
		h.Cancel()
	}
	s.compact()
}

// Cancel stops the callback for good. It is safe on a nil or already
// cancelled handle, and takes effect immediately, even mid-Advance.
func (h *Handle) Cancel() {
	if h != nil {
		h.cancelled = true
	}
}

// Cancelled reports whether the handle will never fire again.
func (h *Handle) Cancelled() bool {
	return h == nil || h.cancelled
}

// Pause suspends a frame subscription. Its timestamp keeps moving with the
// clock so no delta accumulates.
func (h *Handle) Pause() {
	if h != nil {
		h.paused = true
	}
}

// Resume reactivates a paused frame subscription and measures the next delta
// from now.
func (h *Handle) Resume(now time.Time) {
	if h != nil {
		h.paused = false
		h.last = now
	}
}
