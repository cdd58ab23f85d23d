// Package towerrun ties the Tower Run engine to a character screen: menus,
// the tower map, the floor arena and the result screens.
package towerrun

import (
	"time"

	"github.com/vovakirdan/towerrun/internal/core"
	"github.com/vovakirdan/towerrun/internal/games/towerrun/engine"
)

// Page is a menu sub-screen shown while the run is on the menu.
type Page int

const (
	PageMain Page = iota
	PageHowTo
	PageSettings
)

var mainItems = []string{"Start Run", "How to Play", "Settings", "Quit"}

// Settings page rows.
const (
	settingReduceMotion = iota
	settingSound
	settingShowFPS
	settingClearData
	settingBack
	settingCount
)

// Game implements the Tower Run game: one session plus the menu pages around
// it.
type Game struct {
	session *engine.Session
	view    *View
	page    Page
	cursor  int
	cleared bool // a clear-all-data was just performed
	quit    bool

	// OnClearData is called after the player clears all data from the
	// settings page, so the platform can wipe its own records too.
	OnClearData func()

	// MenuHint is appended to the main menu footer.
	MenuHint string
}

// New creates a game on the main menu. The game's view is added in front of
// opts.Sink.
func New(opts engine.SessionOptions) *Game {
	v := NewView()
	if opts.Sink != nil {
		opts.Sink = engine.MultiSink{v, opts.Sink}
	} else {
		opts.Sink = v
	}
	return &Game{
		session: engine.NewSession(opts),
		view:    v,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "towerrun"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "AstroTech Tower Run"
}

// Session returns the underlying run session.
func (g *Game) Session() *engine.Session { return g.session }

// View returns the view state fed by the session.
func (g *Game) View() *View { return g.view }

// Page returns the current menu page.
func (g *Game) Page() Page { return g.page }

// Quit reports whether the player chose Quit from the menu.
func (g *Game) Quit() bool { return g.quit }

// Moving reports whether movement keys steer the player, as opposed to
// moving a menu cursor.
func (g *Game) Moving() bool {
	switch g.session.State() {
	case engine.StateCountdown, engine.StatePlaying:
		return true
	}
	return false
}

// OnMainMenu reports whether the main menu page is showing.
func (g *Game) OnMainMenu() bool {
	return g.session.State() == engine.StateMenu && g.page == PageMain
}

// Step applies one frame of input and advances the session clock to now.
func (g *Game) Step(now time.Time, in core.InputFrame) {
	if g.session.State() == engine.StateMenu {
		g.stepMenu(in)
	} else {
		if g.session.State() == engine.StatePaused {
			g.stepPauseSettings(in)
		}
		g.session.Apply(in)
		if g.session.State() == engine.StateMenu {
			g.page = PageMain
			g.cursor = 0
		}
	}
	g.session.Advance(now)
}

func (g *Game) stepMenu(in core.InputFrame) {
	switch g.page {
	case PageMain:
		g.cursor = moveCursor(g.cursor, len(mainItems), in)
		if !in.Has(core.ActionConfirm) {
			return
		}
		switch g.cursor {
		case 0:
			g.session.StartRun()
		case 1:
			g.page = PageHowTo
		case 2:
			g.page = PageSettings
			g.cursor = 0
			g.cleared = false
		case 3:
			g.quit = true
		}

	case PageHowTo:
		if in.Has(core.ActionBack) || in.Has(core.ActionConfirm) {
			g.page = PageMain
			g.cursor = 1
		}

	case PageSettings:
		if in.Has(core.ActionBack) {
			g.page = PageMain
			g.cursor = 2
			return
		}
		g.cursor = moveCursor(g.cursor, settingCount, in)
		if in.Has(core.ActionConfirm) {
			g.applySetting(g.cursor)
		}
	}
}

func (g *Game) applySetting(row int) {
	s := g.session.Settings()
	switch row {
	case settingReduceMotion:
		s.ReduceMotion = !s.ReduceMotion
	case settingSound:
		s.Sound = !s.Sound
	case settingShowFPS:
		s.ShowFPS = !s.ShowFPS
	case settingClearData:
		g.session.Progress().ClearAll()
		if g.OnClearData != nil {
			g.OnClearData()
		}
		g.cleared = true
		return
	case settingBack:
		g.page = PageMain
		g.cursor = 2
		return
	}
	g.session.UpdateSettings(s)
}

// stepPauseSettings lets the number keys toggle settings on the pause
// overlay.
func (g *Game) stepPauseSettings(in core.InputFrame) {
	rows := map[core.Action]int{
		core.ActionSelect1: settingReduceMotion,
		core.ActionSelect2: settingSound,
		core.ActionSelect3: settingShowFPS,
	}
	for a, row := range rows {
		if in.Has(a) {
			g.applySetting(row)
		}
	}
}

func moveCursor(cursor, n int, in core.InputFrame) int {
	if in.Has(core.ActionUp) && cursor > 0 {
		cursor--
	}
	if in.Has(core.ActionDown) && cursor < n-1 {
		cursor++
	}
	return cursor
}
