package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionConfirm        // Enter - start run, advance result screen
	ActionBack           // B - back to the previous screen
	ActionPause          // P, Escape - pause/resume a floor
	ActionRestart        // R - restart the run
	ActionQuit           // Q, Ctrl+C
	ActionSelect1        // 1 - pick the first floor option
	ActionSelect2        // 2
	ActionSelect3        // 3
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionSelect1, ActionSelect2, ActionSelect3:
		return "Select"
	default:
		return "Unknown"
	}
}

// SelectIndex returns the floor option index for a select action, or -1.
func (a Action) SelectIndex() int {
	switch a {
	case ActionSelect1:
		return 0
	case ActionSelect2:
		return 1
	case ActionSelect3:
		return 2
	default:
		return -1
	}
}

// InputFrame represents the input state during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they are active this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Direction returns the movement direction encoded by the held directional
// actions. Opposite keys cancel; diagonals are normalised to unit length.
func (f InputFrame) Direction() Vec {
	var d Vec
	if f.Has(ActionLeft) {
		d.X--
	}
	if f.Has(ActionRight) {
		d.X++
	}
	if f.Has(ActionUp) {
		d.Y--
	}
	if f.Has(ActionDown) {
		d.Y++
	}
	return d.Unit()
}
