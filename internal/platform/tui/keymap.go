package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/towerrun/internal/core"
)

// holdWindow is how long a movement key counts as held after its last key
// event. Terminals only report presses and auto-repeats, never releases.
const holdWindow = 150 * time.Millisecond

// KeyMap holds the key bindings of the game screen.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Confirm    key.Binding
	Back       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Select1    key.Binding
	Select2    key.Binding
	Select3    key.Binding
	Scores     key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/w", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("↓/s", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "a", "h"), key.WithHelp("←/a", "left")),
		Right:      key.NewBinding(key.WithKeys("right", "d", "l"), key.WithHelp("→/d", "right")),
		Confirm:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "confirm")),
		Back:       key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),
		Pause:      key.NewBinding(key.WithKeys("p", "esc"), key.WithHelp("p/esc", "pause")),
		Restart:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Select1:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "floor 1")),
		Select2:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "floor 2")),
		Select3:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "floor 3")),
		Scores:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Screenshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	keys     KeyMap
	bindings []binding
}

type binding struct {
	key    *key.Binding
	action core.Action
}

// NewKeyMapper creates a key mapper with the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	km := &KeyMapper{keys: keys}
	km.bindings = []binding{
		{&km.keys.Up, core.ActionUp},
		{&km.keys.Down, core.ActionDown},
		{&km.keys.Left, core.ActionLeft},
		{&km.keys.Right, core.ActionRight},
		{&km.keys.Confirm, core.ActionConfirm},
		{&km.keys.Back, core.ActionBack},
		{&km.keys.Pause, core.ActionPause},
		{&km.keys.Restart, core.ActionRestart},
		{&km.keys.Select1, core.ActionSelect1},
		{&km.keys.Select2, core.ActionSelect2},
		{&km.keys.Select3, core.ActionSelect3},
	}
	return km
}

// Keys returns the bindings, for help views.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, km.keys.Quit) {
		return core.ActionQuit, true
	}
	for _, b := range km.bindings {
		if key.Matches(msg, *b.key) {
			return b.action, false
		}
	}
	return core.ActionNone, false
}

// IsMovement reports whether a is one of the four directions.
func IsMovement(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		return true
	}
	return false
}

// HeldKeys approximates key-up events for movement keys: a direction is held
// while its key keeps repeating within holdWindow.
type HeldKeys struct {
	window time.Duration
	last   map[core.Action]time.Time
}

// NewHeldKeys creates an empty tracker.
func NewHeldKeys(window time.Duration) *HeldKeys {
	return &HeldKeys{window: window, last: make(map[core.Action]time.Time)}
}

// Press records a key event for a direction. Pressing a direction releases
// its opposite at once.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	h.last[a] = now
	delete(h.last, opposite(a))
}

// Apply sets every direction still held at now on the frame.
func (h *HeldKeys) Apply(frame *core.InputFrame, now time.Time) {
	for a, t := range h.last {
		if now.Sub(t) <= h.window {
			frame.Set(a)
		} else {
			delete(h.last, a)
		}
	}
}

// Release forgets all held directions.
func (h *HeldKeys) Release() {
	for a := range h.last {
		delete(h.last, a)
	}
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}
