package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/towerrun/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		want   core.Action
		isQuit bool
	}{
		{"w", runeKey('w'), core.ActionUp, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"s", runeKey('s'), core.ActionDown, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"b", runeKey('b'), core.ActionBack, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"1", runeKey('1'), core.ActionSelect1, false},
		{"2", runeKey('2'), core.ActionSelect2, false},
		{"3", runeKey('3'), core.ActionSelect3, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := km.MapKey(tt.msg)
			if got != tt.want || quit != tt.isQuit {
				t.Errorf("MapKey(%s) = %v, %v; want %v, %v", tt.name, got, quit, tt.want, tt.isQuit)
			}
		})
	}
}

func TestHeldKeys(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	h := NewHeldKeys(150 * time.Millisecond)

	h.Press(core.ActionLeft, now)
	frame := core.NewInputFrame()
	h.Apply(&frame, now.Add(100*time.Millisecond))
	if !frame.Has(core.ActionLeft) {
		t.Fatal("left should still be held within the window")
	}

	frame.Clear()
	h.Apply(&frame, now.Add(200*time.Millisecond))
	if frame.Has(core.ActionLeft) {
		t.Fatal("left should be released after the window")
	}

	// Pressing the opposite direction releases the first at once.
	h.Press(core.ActionUp, now)
	h.Press(core.ActionDown, now.Add(10*time.Millisecond))
	frame.Clear()
	h.Apply(&frame, now.Add(20*time.Millisecond))
	if frame.Has(core.ActionUp) || !frame.Has(core.ActionDown) {
		t.Errorf("opposite press: up=%v down=%v, want only down", frame.Has(core.ActionUp), frame.Has(core.ActionDown))
	}

	// Diagonals combine.
	h.Press(core.ActionRight, now.Add(15*time.Millisecond))
	frame.Clear()
	h.Apply(&frame, now.Add(20*time.Millisecond))
	if d := frame.Direction(); d.X <= 0 || d.Y <= 0 {
		t.Errorf("direction = %+v, want down-right", d)
	}

	h.Release()
	frame.Clear()
	h.Apply(&frame, now.Add(20*time.Millisecond))
	if frame.Direction() != (core.Vec{}) {
		t.Error("Release should drop every held key")
	}
}

func TestIsMovement(t *testing.T) {
	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		if !IsMovement(a) {
			t.Errorf("IsMovement(%v) = false", a)
		}
	}
	for _, a := range []core.Action{core.ActionConfirm, core.ActionPause, core.ActionSelect1} {
		if IsMovement(a) {
			t.Errorf("IsMovement(%v) = true", a)
		}
	}
}
