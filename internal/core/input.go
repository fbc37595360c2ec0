package core

// Action represents a semantic game action, abstracted from physical key
// presses. This allows the engine to work with high-level intents rather
// than raw input, and lets replays store the same values the field consumes.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move the player brick one row up
	ActionDown           // S, Down arrow - move the player brick one row down
	ActionThrow          // Space - throw the player brick
	ActionHelp           // F1, H - play back the stored replay for the level
	ActionSave           // F5 - save the current recording as the level replay
	ActionConfirm        // Enter - advance after a terminal state / menu select
	ActionBack           // Esc - pop the current scene
	ActionQuit           // Q, Ctrl+C - exit
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
	case ActionThrow:
		return "Throw"
	case ActionHelp:
		return "Help"
	case ActionSave:
		return "Save"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single simulation tick.
// Actions are edge-triggered: at most one occurrence per action per tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether the action was triggered this frame.
func (f *InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear removes all triggered actions, readying the frame for the next tick.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
