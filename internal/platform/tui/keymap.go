package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/beltworks/beltrunner/internal/core"
)

// KeyMapper translates Bubble Tea key messages to flight actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a flight action. Returns the action
// (ActionNone when the key is unbound) and whether it was a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w":
		return core.ActionThrottleUp, false
	case "s":
		return core.ActionThrottleDown, false
	case "x":
		return core.ActionBrake, false
	case "a", "left":
		return core.ActionYawLeft, false
	case "d", "right":
		return core.ActionYawRight, false
	case "up":
		return core.ActionPitchUp, false
	case "down":
		return core.ActionPitchDown, false
	case "g":
		return core.ActionGrab, false
	case " ":
		return core.ActionDrill, false
	case "c":
		return core.ActionLaunchCargo, false
	case "f":
		return core.ActionFireWeapon, false
	case "enter":
		return core.ActionDock, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "b", "esc":
		return core.ActionBack, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame folds a key message into an input frame. Returns true if
// the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents high-level menu navigation actions.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key message to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "up", "k", "w":
		return MenuActionUp
	case "down", "j", "s":
		return MenuActionDown
	case "left", "h", "a":
		return MenuActionLeft
	case "right", "l", "d":
		return MenuActionRight
	case "enter":
		return MenuActionSelect
	case "esc", "b":
		return MenuActionBack
	case "ctrl+c", "q":
		return MenuActionQuit
	}
	return MenuActionNone
}
