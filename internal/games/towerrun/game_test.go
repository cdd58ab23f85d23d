package towerrun

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/towerrun/internal/config"
	"github.com/vovakirdan/towerrun/internal/core"
	"github.com/vovakirdan/towerrun/internal/games/towerrun/engine"
)

var start = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type driver struct {
	t    *testing.T
	g    *Game
	now  time.Time
	scr  *core.Screen
	prog *engine.Progress
}

func newDriver(t *testing.T) *driver {
	prog := engine.NewProgress(engine.NewMemoryStore(), nil)
	g := New(engine.SessionOptions{
		Config:   config.DefaultTowerConfig(),
		Seed:     3,
		Progress: prog,
		Now:      start,
	})
	return &driver{t: t, g: g, now: start, scr: core.NewScreen(80, 24), prog: prog}
}

// press sends one frame with the given actions after d of game time.
func (d *driver) press(dt time.Duration, actions ...core.Action) {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	d.now = d.now.Add(dt)
	d.g.Step(d.now, in)
}

func (d *driver) screen() string {
	d.g.Render(d.scr)
	return d.scr.String()
}

func TestGameMetadata(t *testing.T) {
	g := New(engine.SessionOptions{Config: config.DefaultTowerConfig()})
	if g.ID() != "towerrun" {
		t.Errorf("ID() = %q, want towerrun", g.ID())
	}
	if g.Title() == "" {
		t.Error("Title() should not be empty")
	}
	if g.Session().State() != engine.StateMenu {
		t.Errorf("initial state = %v, want menu", g.Session().State())
	}
}

func TestMenuStartsRun(t *testing.T) {
	d := newDriver(t)
	if out := d.screen(); !strings.Contains(out, "Start Run") {
		t.Fatalf("menu should list Start Run:\n%s", out)
	}

	d.press(0, core.ActionConfirm)
	if got := d.g.Session().State(); got != engine.StateChoosing {
		t.Fatalf("state after confirm = %v, want choosing", got)
	}
	out := d.screen()
	for _, want := range []string{"TOWER", "T8", "T1", "1/2/3"} {
		if !strings.Contains(out, want) {
			t.Errorf("tower map missing %q:\n%s", want, out)
		}
	}
}

func TestMenuPages(t *testing.T) {
	d := newDriver(t)

	d.press(0, core.ActionDown)
	d.press(0, core.ActionConfirm)
	if d.g.Page() != PageHowTo {
		t.Fatalf("page = %v, want how to play", d.g.Page())
	}
	out := d.screen()
	if !strings.Contains(out, "HOW TO PLAY") {
		t.Errorf("how to play screen not drawn:\n%s", out)
	}
	for _, tpl := range engine.Templates() {
		if !strings.Contains(out, tpl.Name) {
			t.Errorf("floor %q missing from how to play:\n%s", tpl.Name, out)
		}
	}
	d.press(0, core.ActionBack)
	if d.g.Page() != PageMain {
		t.Fatalf("back should return to main, got %v", d.g.Page())
	}

	// Cursor is left on How to Play; one more down reaches Settings.
	d.press(0, core.ActionDown)
	d.press(0, core.ActionConfirm)
	if d.g.Page() != PageSettings {
		t.Fatalf("page = %v, want settings", d.g.Page())
	}

	// Down past the end stays on the last row.
	for i := 0; i < 10; i++ {
		d.press(0, core.ActionDown)
	}
	d.press(0, core.ActionConfirm)
	if d.g.Page() != PageMain {
		t.Errorf("Back row should return to main, got %v", d.g.Page())
	}
}

func TestSettingsToggles(t *testing.T) {
	d := newDriver(t)
	d.press(0, core.ActionDown)
	d.press(0, core.ActionDown)
	d.press(0, core.ActionConfirm)

	d.press(0, core.ActionConfirm) // reduce motion
	d.press(0, core.ActionDown)
	d.press(0, core.ActionConfirm) // sound
	d.press(0, core.ActionDown)
	d.press(0, core.ActionConfirm) // show fps

	got := d.prog.Settings()
	want := engine.Settings{ReduceMotion: true, Sound: false, ShowFPS: true}
	if got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
	if out := d.screen(); !strings.Contains(out, "[x]") {
		t.Errorf("settings screen should show checked boxes:\n%s", out)
	}
}

func TestSettingsClearData(t *testing.T) {
	d := newDriver(t)
	d.prog.RecordBestScore(900)
	cleared := false
	d.g.OnClearData = func() { cleared = true }

	d.press(0, core.ActionDown)
	d.press(0, core.ActionDown)
	d.press(0, core.ActionConfirm)
	for i := 0; i < settingClearData; i++ {
		d.press(0, core.ActionDown)
	}
	d.press(0, core.ActionConfirm)

	if !cleared {
		t.Error("OnClearData was not called")
	}
	if d.prog.BestScore() != 0 {
		t.Errorf("best score after clear = %d, want 0", d.prog.BestScore())
	}
	if out := d.screen(); !strings.Contains(out, "All data cleared") {
		t.Errorf("clear confirmation not shown:\n%s", out)
	}
}

func TestMenuQuit(t *testing.T) {
	d := newDriver(t)
	for i := 0; i < len(mainItems); i++ {
		d.press(0, core.ActionDown)
	}
	d.press(0, core.ActionConfirm)
	if !d.g.Quit() {
		t.Error("choosing Quit should set Quit()")
	}
}

func TestFloorScreens(t *testing.T) {
	d := newDriver(t)
	d.press(0, core.ActionConfirm)
	opt := d.g.Session().TierOptions(1)[0]

	d.press(0, core.ActionSelect1)
	if got := d.g.Session().State(); got != engine.StateCountdown {
		t.Fatalf("state = %v, want countdown", got)
	}
	out := d.screen()
	if !strings.Contains(out, opt.Template.Name) {
		t.Errorf("countdown should name the floor %q:\n%s", opt.Template.Name, out)
	}
	if d.g.View().Countdown.Remaining != 3 {
		t.Errorf("countdown remaining = %d, want 3", d.g.View().Countdown.Remaining)
	}

	for i := 0; i < 3; i++ {
		d.press(time.Second)
	}
	d.press(16 * time.Millisecond)
	if got := d.g.Session().State(); got != engine.StatePlaying {
		t.Fatalf("state = %v, want playing", got)
	}
	if !d.g.View().HasFrame() {
		t.Fatal("view should hold a frame once the floor runs")
	}
	out = d.screen()
	for _, want := range []string{"T1", "Score", "⏱", "█"} {
		if !strings.Contains(out, want) {
			t.Errorf("floor screen missing %q:\n%s", want, out)
		}
	}

	d.press(16*time.Millisecond, core.ActionPause)
	if out := d.screen(); !strings.Contains(out, "PAUSED") {
		t.Errorf("pause overlay not drawn:\n%s", out)
	}
	d.press(0, core.ActionBack)
	if got := d.g.Session().State(); got != engine.StateMenu {
		t.Fatalf("state = %v, want menu", got)
	}
	if d.g.Page() != PageMain {
		t.Errorf("page = %v, want main after quitting a run", d.g.Page())
	}
}

func TestViewFlashesOnDamage(t *testing.T) {
	v := NewView()
	v.Emit(engine.StateChangedEvent{From: engine.StateCountdown, To: engine.StatePlaying})
	v.Emit(engine.FrameEvent{DamageTaken: 0})
	if v.Flashing() {
		t.Fatal("no damage yet, should not flash")
	}
	v.Emit(engine.FrameEvent{DamageTaken: 1})
	if !v.Flashing() {
		t.Fatal("damage increase should flash")
	}
	for i := 0; i < damageFlashFrames; i++ {
		v.Emit(engine.FrameEvent{DamageTaken: 1})
	}
	if v.Flashing() {
		t.Error("flash should fade after a few frames")
	}

	v.Emit(engine.StateChangedEvent{From: engine.StateResult, To: engine.StateChoosing})
	if v.HasFrame() {
		t.Error("frame should be dropped when a new floor is chosen")
	}
}

func TestTimerColor(t *testing.T) {
	tests := []struct {
		remaining float64
		want      core.Color
	}{
		{30, core.ColorWhite},
		{10.5, core.ColorWhite},
		{10, core.ColorYellow},
		{5.1, core.ColorYellow},
		{5, core.ColorBrightRed},
		{0, core.ColorBrightRed},
	}
	for _, tt := range tests {
		if got := timerColor(tt.remaining); got != tt.want {
			t.Errorf("timerColor(%v) = %v, want %v", tt.remaining, got, tt.want)
		}
	}
}

func TestClip(t *testing.T) {
	tests := []struct {
		text string
		w    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"🚪 Gates", 2, "🚪"},
		{"🚪 Gates", 1, ""},
	}
	for _, tt := range tests {
		if got := clip(tt.text, tt.w); got != tt.want {
			t.Errorf("clip(%q, %d) = %q, want %q", tt.text, tt.w, got, tt.want)
		}
	}
}

func TestProjectorRect(t *testing.T) {
	area := core.Area{X: 1, Y: 2, W: 80, H: 50}
	p := newProjector(area, engine.Arena{Width: 800, Height: 500})

	got := p.rect(core.NewRect(100, 100, 40, 40))
	want := core.Area{X: 11, Y: 12, W: 4, H: 4}
	if got != want {
		t.Errorf("rect = %+v, want %+v", got, want)
	}

	// Tiny rects still cover a cell.
	if got := p.rect(core.NewRect(0, 0, 1, 1)); got.W != 1 || got.H != 1 {
		t.Errorf("tiny rect = %+v, want 1x1", got)
	}

	// Rects outside the arena are clipped away.
	if got := p.rect(core.NewRect(900, 0, 40, 40)); got.W != 0 {
		t.Errorf("outside rect = %+v, want empty", got)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New(engine.SessionOptions{Config: config.DefaultTowerConfig()})
	scr := core.NewScreen(10, 5)
	g.Render(scr)
	if !strings.Contains(scr.String(), "Terminal") {
		t.Errorf("small screen should show a warning, got %q", scr.String())
	}
}

func TestPauseOverlayToggles(t *testing.T) {
	d := newDriver(t)
	d.press(0, core.ActionConfirm)
	d.press(0, core.ActionSelect1)
	for i := 0; i < 3; i++ {
		d.press(time.Second)
	}
	d.press(16*time.Millisecond, core.ActionPause)
	if got := d.g.Session().State(); got != engine.StatePaused {
		t.Fatalf("state = %v, want paused", got)
	}

	d.press(0, core.ActionSelect3)
	if !d.prog.Settings().ShowFPS {
		t.Error("3 on the pause overlay should toggle Show FPS")
	}
	if got := d.g.Session().State(); got != engine.StatePaused {
		t.Errorf("toggling a setting should keep the floor paused, got %v", got)
	}
	if out := d.screen(); !strings.Contains(out, "show fps      [x]") {
		t.Errorf("pause overlay should show the toggled setting:\n%s", out)
	}
}
