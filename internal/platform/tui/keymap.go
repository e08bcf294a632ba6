package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/window-arcade/internal/core"
)

// KeyMapper translates Bubble Tea key messages to menu and game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// GameAction is an in-game command derived from a key.
type GameAction int

const (
	GameActionNone GameAction = iota
	GameActionQuit
	GameActionBack
	GameActionRestart
	GameActionPress
	GameActionNudge
)

// Pointer steps for keyboard play. Cells are roughly twice as tall as they
// are wide, so horizontal steps are doubled.
const (
	nudgeX = 2
	nudgeY = 1
)

// MapKeyToGameAction translates a key pressed during play. For
// GameActionNudge the returned vector is the pointer offset in cells.
func (km *KeyMapper) MapKeyToGameAction(msg tea.KeyMsg) (GameAction, core.Vec) {
	switch msg.String() {
	case "ctrl+c", "q":
		return GameActionQuit, core.Vec{}
	case "esc", "b":
		return GameActionBack, core.Vec{}
	case "r":
		return GameActionRestart, core.Vec{}
	case " ", "enter":
		return GameActionPress, core.Vec{}
	case "left", "a", "h":
		return GameActionNudge, core.V(-nudgeX, 0)
	case "right", "d", "l":
		return GameActionNudge, core.V(nudgeX, 0)
	case "up", "w", "k":
		return GameActionNudge, core.V(0, -nudgeY)
	case "down", "s", "j":
		return GameActionNudge, core.V(0, nudgeY)
	}
	return GameActionNone, core.Vec{}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
