package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rionnag/unblocked/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case " ": // Space throws the player brick
		return core.ActionThrow, false
	case "f1", "h":
		return core.ActionHelp, false
	case "f5", "ctrl+s":
		return core.ActionSave, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	}

	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionUpFast
	MenuActionDownFast
	MenuActionSelect
	MenuActionDemo
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "right", "pgup", "l":
		return MenuActionUpFast
	case "left", "pgdown", "h":
		return MenuActionDownFast
	case "enter", " ":
		return MenuActionSelect
	case "d", "f1":
		return MenuActionDemo
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
