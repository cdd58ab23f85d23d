package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/towerrun/internal/config"
	"github.com/vovakirdan/towerrun/internal/core"
	"github.com/vovakirdan/towerrun/internal/games/towerrun"
	"github.com/vovakirdan/towerrun/internal/games/towerrun/engine"
)

func newTestModel(t *testing.T) (Model, time.Time) {
	t.Helper()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	game := towerrun.New(engine.SessionOptions{
		Config: config.DefaultTowerConfig(),
		Seed:   5,
		Now:    start,
	})
	cfg := core.DefaultConfig()
	return NewModel(game, nil, cfg), start
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func TestModelStartsRunFromMenu(t *testing.T) {
	m, now := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := update(t, m, TickMsg(now.Add(16*time.Millisecond)))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	if got := m.Game().Session().State(); got != engine.StateChoosing {
		t.Fatalf("state = %v, want choosing", got)
	}
	if !strings.Contains(m.View(), "TOWER") {
		t.Error("view should show the tower map")
	}

	// Actions are one-shot: another tick does not select anything.
	m, _ = update(t, m, TickMsg(now.Add(32*time.Millisecond)))
	m, _ = update(t, m, runeKey('2'))
	m, _ = update(t, m, TickMsg(now.Add(48*time.Millisecond)))
	if got := m.Game().Session().State(); got != engine.StateCountdown {
		t.Errorf("state = %v, want countdown", got)
	}
	if got := m.Game().Session().Run().SelectedIndex; got != 1 {
		t.Errorf("selected index = %d, want 1", got)
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("q should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelResize(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, want 100x30", m.screen.Width(), m.screen.Height())
	}
}

func TestModelScoresNeedStore(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.board != nil {
		t.Error("scoreboard should not open without a store")
	}
}
