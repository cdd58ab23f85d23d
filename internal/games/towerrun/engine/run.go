package engine

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/towerrun/internal/config"
	"github.com/vovakirdan/towerrun/internal/core"
)

// State is the run state machine's current screen.
type State int

const (
	StateMenu State = iota
	StateChoosing
	StateCountdown
	StatePlaying
	StatePaused
	StateResult
	StateSummary
	StateGameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateChoosing:
		return "choosing"
	case StateCountdown:
		return "countdown"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateResult:
		return "result"
	case StateSummary:
		return "summary"
	case StateGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// RunState is the progress of the current run.
type RunState struct {
	CurrentTier       int
	CurrentScore      int
	CurrentMultiplier float64
	HighestMultiplier float64
	CompletedTiers    []int
	TierChoices       map[int][]FloorOption
	SelectedFloor     *FloorOption
	SelectedIndex     int // -1 when no floor is selected
	RunStart          time.Time
	FloorsCleared     int
}

func newRunState(start time.Time) RunState {
	return RunState{
		CurrentTier:       1,
		CurrentMultiplier: 1,
		HighestMultiplier: 1,
		TierChoices:       make(map[int][]FloorOption),
		SelectedIndex:     -1,
		RunStart:          start,
	}
}

// RunRecord is a finished run, as kept in the history.
type RunRecord struct {
	Score             int
	Tier              int
	FloorsCleared     int
	Won               bool
	Duration          time.Duration
	HighestMultiplier float64
	EndedAt           time.Time
}

// RunRecorder stores finished runs.
type RunRecorder interface {
	RecordRun(RunRecord) error
}

// SessionOptions configures a Session.
type SessionOptions struct {
	Config   config.TowerConfig
	Seed     int64
	Progress *Progress  // nil keeps progress in memory
	Recorder RunRecorder // optional
	Sink     Sink        // optional
	Logger   *log.Logger // optional
	Now      time.Time   // scheduler start, zero means time.Now()
}

// Session owns one player's runs. All methods must be called from the
// goroutine that calls Advance.
type Session struct {
	cfg      config.TowerConfig
	log      *log.Logger
	sched    *Scheduler
	rng      *rand.Rand
	gen      *Generator
	arena    Arena
	progress *Progress
	recorder RunRecorder
	sink     Sink

	state     State
	run       RunState
	floor     *Floor
	frame     *Handle
	countdown *Handle
	remaining int // countdown steps left
	dir       core.Vec
	result    *FloorResultEvent
}

// NewSession creates a session on the menu screen.
func NewSession(opts SessionOptions) *Session {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}
	progress := opts.Progress
	if progress == nil {
		progress = NewProgress(nil, logger)
	}
	sink := opts.Sink
	if sink == nil {
		sink = nopSink{}
	}

	cfg := opts.Config
	rng := rand.New(rand.NewSource(opts.Seed))
	s := &Session{
		cfg:      cfg,
		log:      logger,
		sched:    NewScheduler(now),
		rng:      rng,
		arena:    Arena{Width: cfg.Arena.Width, Height: cfg.Arena.Height, FloorMargin: cfg.Arena.FloorMargin},
		progress: progress,
		recorder: opts.Recorder,
		sink:     sink,
		state:    StateMenu,
		run:      newRunState(now),
	}
	s.gen = NewGenerator(rng, NewDifficultyModel(cfg.Difficulty), RiskLevels(cfg.Risk), cfg.Run.OptionsPerTier)
	return s
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Progress returns the persisted progress.
func (s *Session) Progress() *Progress { return s.progress }

// Floor returns the floor being played, or nil.
func (s *Session) Floor() *Floor { return s.floor }

// LastResult returns the most recent floor result, or nil.
func (s *Session) LastResult() *FloorResultEvent { return s.result }

// Config returns the tower configuration.
func (s *Session) Config() config.TowerConfig { return s.cfg }

// Now returns the session clock.
func (s *Session) Now() time.Time { return s.sched.Now() }

// Run returns a copy of the run state.
func (s *Session) Run() RunState {
	r := s.run
	r.CompletedTiers = append([]int(nil), s.run.CompletedTiers...)
	r.TierChoices = make(map[int][]FloorOption, len(s.run.TierChoices))
	for k, v := range s.run.TierChoices {
		r.TierChoices[k] = append([]FloorOption(nil), v...)
	}
	if s.run.SelectedFloor != nil {
		sel := *s.run.SelectedFloor
		r.SelectedFloor = &sel
	}
	return r
}

// Advance moves the session clock to now, firing countdown steps and floor
// frames that are due.
func (s *Session) Advance(now time.Time) {
	s.sched.Advance(now)
}

// SetDirection sets the held movement direction.
func (s *Session) SetDirection(dir core.Vec) {
	s.dir = dir.Unit()
}

func (s *Session) setState(to State) {
	if to == s.state {
		return
	}
	from := s.state
	s.state = to
	s.log.Debug("state", "from", from, "to", to, "tier", s.run.CurrentTier)
	s.sink.Emit(StateChangedEvent{From: from, To: to})
}

// StartRun begins a new run from the menu or an end screen.
func (s *Session) StartRun() {
	switch s.state {
	case StateMenu, StateSummary, StateGameOver:
		s.startRun()
	}
}

func (s *Session) startRun() {
	s.stopFloor()
	s.run = newRunState(s.sched.Now())
	s.result = nil
	s.setState(StateChoosing)
	s.sink.Emit(s.TowerMap())
}

// TierOptions returns the options of tier, generating them on first use.
// Options stay fixed for the rest of the run.
func (s *Session) TierOptions(tier int) []FloorOption {
	if tier < 1 || tier > s.cfg.Run.Tiers {
		return nil
	}
	opts, ok := s.run.TierChoices[tier]
	if !ok {
		opts = s.gen.GenerateTierOptions(tier)
		s.run.TierChoices[tier] = opts
	}
	return opts
}

// TowerMap returns the tower map, top tier first.
func (s *Session) TowerMap() TowerMapEvent {
	ev := TowerMapEvent{
		CurrentTier: s.run.CurrentTier,
		Score:       s.run.CurrentScore,
		Multiplier:  s.run.CurrentMultiplier,
		BestScore:   s.progress.BestScore(),
	}
	for tier := s.cfg.Run.Tiers; tier >= 1; tier-- {
		row := TierRow{Tier: tier, Options: s.TierOptions(tier), Selected: -1}
		switch {
		case tier == s.run.CurrentTier:
			row.Status = TierActive
			row.Selected = s.run.SelectedIndex
		case s.completed(tier):
			row.Status = TierCompleted
		}
		ev.Rows = append(ev.Rows, row)
	}
	return ev
}

func (s *Session) completed(tier int) bool {
	for _, t := range s.run.CompletedTiers {
		if t == tier {
			return true
		}
	}
	return false
}

// SelectFloor picks option index of tier and starts its countdown. It is a
// no-op unless the session is choosing, tier is current and no floor was
// selected yet.
func (s *Session) SelectFloor(tier, index int) bool {
	if s.state != StateChoosing || tier != s.run.CurrentTier || s.run.SelectedFloor != nil {
		return false
	}
	opts := s.TierOptions(tier)
	if index < 0 || index >= len(opts) {
		return false
	}

	opt := opts[index]
	s.run.SelectedFloor = &opt
	s.run.SelectedIndex = index
	s.floor = NewFloor(opt, s.arena, s.cfg.Player, s.rng)
	s.log.Debug("floor selected", "tier", tier, "floor", opt.Template.ID, "risk", opt.Risk.Level)

	s.sink.Emit(s.TowerMap())
	s.setState(StateCountdown)
	s.emitHUD()
	s.remaining = s.cfg.Run.CountdownSeconds
	s.countdownStep()
	return true
}

func (s *Session) countdownStep() {
	opt := s.run.SelectedFloor
	s.sink.Emit(CountdownEvent{
		Tier:      s.run.CurrentTier,
		Floor:     opt.Template,
		Risk:      opt.Risk,
		Remaining: s.remaining,
	})
	if s.remaining <= 0 {
		s.countdown = nil
		s.beginFloor()
		return
	}
	s.countdown = s.sched.After(time.Second, func() {
		s.remaining--
		s.countdownStep()
	})
}

func (s *Session) beginFloor() {
	s.floor.Start()
	s.setState(StatePlaying)
	s.frame = s.sched.OnFrame(s.onFrame)
}

func (s *Session) onFrame(dt float64) {
	if s.floor == nil {
		return
	}
	ended := s.floor.Tick(dt, s.dir)
	s.emitFrame()
	s.emitHUD()
	if ended {
		s.finishFloor()
	}
}

func (s *Session) emitFrame() {
	f := s.floor
	r := f.Report()
	s.sink.Emit(FrameEvent{
		Arena:          f.Arena(),
		Player:         f.Player().Rect,
		Obstacles:      f.Obstacles(),
		Collectibles:   f.Collectibles(),
		TimeRemaining:  r.TimeRemaining,
		DamageTaken:    r.DamageTaken,
		ItemsCollected: r.ItemsCollected,
		TotalItems:     r.TotalItems,
		ReduceMotion:   s.progress.Settings().ReduceMotion,
	})
}

func (s *Session) emitHUD() {
	ev := HUDEvent{
		Tier:    s.run.CurrentTier,
		Score:   s.run.CurrentScore,
		ShowFPS: s.progress.Settings().ShowFPS,
	}
	if s.floor != nil {
		ev.Floor = s.floor.Option().Template.Name
		ev.TimeRemaining = s.floor.TimeRemaining()
		ev.FPS = s.floor.FPS()
	}
	s.sink.Emit(ev)
}

// finishFloor scores the ended floor and shows its result.
func (s *Session) finishFloor() {
	s.frame.Cancel()
	s.frame = nil

	report := s.floor.Report()
	opt := s.floor.Option()
	score := ScoreFloor(s.cfg.Score, s.run.CurrentTier, opt.Risk.Multiplier, report)

	if report.Success {
		s.run.CurrentScore += score.Total
		s.run.CurrentMultiplier = max(s.run.CurrentMultiplier, opt.Risk.Multiplier)
		s.run.HighestMultiplier = max(s.run.HighestMultiplier, opt.Risk.Multiplier)
		s.run.CompletedTiers = append(s.run.CompletedTiers, s.run.CurrentTier)
		s.run.FloorsCleared++
	}

	s.result = &FloorResultEvent{
		Tier:     s.run.CurrentTier,
		NextTier: s.run.CurrentTier + 1,
		Floor:    opt.Template,
		Report:   report,
		Score:    score,
		RunScore: s.run.CurrentScore,
	}
	s.log.Debug("floor finished", "tier", s.run.CurrentTier, "success", report.Success, "points", score.Total)
	s.setState(StateResult)
	s.sink.Emit(*s.result)
}

// Acknowledge leaves the result screen: on to the next tier after a
// success, to the summary after the last tier, to game over after a
// failure.
func (s *Session) Acknowledge() {
	if s.state != StateResult || s.result == nil {
		return
	}
	s.floor = nil
	switch {
	case !s.result.Report.Success:
		s.endRun(false)
	case s.run.CurrentTier >= s.cfg.Run.Tiers:
		s.endRun(true)
	default:
		s.run.CurrentTier++
		s.run.SelectedFloor = nil
		s.run.SelectedIndex = -1
		s.setState(StateChoosing)
		s.sink.Emit(s.TowerMap())
	}
}

func (s *Session) endRun(won bool) {
	s.stopFloor()
	now := s.sched.Now()
	elapsed := now.Sub(s.run.RunStart)
	secs := int(elapsed / time.Second)

	isNewBest := s.progress.RecordBestScore(s.run.CurrentScore)
	isFastest := false
	if won {
		isFastest = s.progress.RecordFastest(secs)
	}

	if s.recorder != nil {
		rec := RunRecord{
			Score:             s.run.CurrentScore,
			Tier:              s.run.CurrentTier,
			FloorsCleared:     s.run.FloorsCleared,
			Won:               won,
			Duration:          elapsed,
			HighestMultiplier: s.run.HighestMultiplier,
			EndedAt:           now,
		}
		if err := s.recorder.RecordRun(rec); err != nil {
			s.log.Warn("cannot record run", "err", err)
		}
	}

	if won {
		s.setState(StateSummary)
		s.sink.Emit(RunSummaryEvent{
			Score:             s.run.CurrentScore,
			FloorsCleared:     s.run.FloorsCleared,
			Duration:          elapsed,
			TotalTime:         FormatDuration(secs),
			HighestMultiplier: s.run.HighestMultiplier,
			IsNewBest:         isNewBest,
			IsFastest:         isFastest,
		})
		return
	}
	s.setState(StateGameOver)
	s.sink.Emit(GameOverEvent{
		Score:         s.run.CurrentScore,
		Tier:          s.run.CurrentTier,
		FloorsCleared: s.run.FloorsCleared,
		IsNewBest:     isNewBest,
	})
}

// Pause freezes a running floor.
func (s *Session) Pause() {
	if s.state != StatePlaying {
		return
	}
	s.floor.Pause()
	s.frame.Pause()
	s.setState(StatePaused)
}

// Resume continues a paused floor. The next frame delta is measured from
// the session clock, so time spent paused never reaches the floor.
func (s *Session) Resume() {
	if s.state != StatePaused {
		return
	}
	s.floor.Resume()
	s.frame.Resume(s.sched.Now())
	s.setState(StatePlaying)
}

// Restart abandons the current run and starts a new one.
func (s *Session) Restart() {
	if s.state == StateMenu {
		return
	}
	s.startRun()
}

// QuitToMenu abandons whatever is running and returns to the menu.
func (s *Session) QuitToMenu() {
	s.stopFloor()
	s.setState(StateMenu)
}

// stopFloor cancels the countdown, the floor loop and anything else the
// session has scheduled.
func (s *Session) stopFloor() {
	s.sched.CancelAll()
	s.countdown = nil
	s.frame = nil
	s.floor = nil
}

// Apply routes one frame of player input to the state machine.
func (s *Session) Apply(in core.InputFrame) {
	s.SetDirection(in.Direction())

	for _, a := range []core.Action{core.ActionSelect1, core.ActionSelect2, core.ActionSelect3} {
		if in.Has(a) && s.state == StateChoosing {
			s.SelectFloor(s.run.CurrentTier, a.SelectIndex())
		}
	}

	if in.Has(core.ActionPause) {
		switch s.state {
		case StatePlaying:
			s.Pause()
		case StatePaused:
			s.Resume()
		}
	}

	if in.Has(core.ActionConfirm) {
		switch s.state {
		case StateMenu, StateSummary, StateGameOver:
			s.StartRun()
		case StateResult:
			s.Acknowledge()
		case StatePaused:
			s.Resume()
		}
	}

	if in.Has(core.ActionRestart) {
		switch s.state {
		case StatePaused, StateSummary, StateGameOver:
			s.Restart()
		}
	}

	if in.Has(core.ActionBack) {
		switch s.state {
		case StateChoosing, StatePaused, StateSummary, StateGameOver:
			s.QuitToMenu()
		}
	}
}

// Settings returns the current settings.
func (s *Session) Settings() Settings {
	return s.progress.Settings()
}

// UpdateSettings persists new settings.
func (s *Session) UpdateSettings(set Settings) {
	s.progress.SaveSettings(set)
	s.log.Debug("settings saved", "sound", set.Sound, "fps", set.ShowFPS, "reduceMotion", set.ReduceMotion)
}
