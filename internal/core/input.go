package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the simulation to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone         Action = iota
	ActionThrottleUp          // W - bump throttle up one notch (edge-triggered)
	ActionThrottleDown        // S - bump throttle down one notch (edge-triggered)
	ActionBrake               // X - hard brake, zeroes throttle and velocity (held)
	ActionYawLeft             // A, Left arrow - turn left (held)
	ActionYawRight            // D, Right arrow - turn right (held)
	ActionPitchUp             // Up arrow - nose up (held)
	ActionPitchDown           // Down arrow - nose down (held)
	ActionGrab                // G - toggle the grabber (edge-triggered)
	ActionDrill               // Space - run the drill while grabbed (held)
	ActionLaunchCargo         // C - fling one cargo unit at the pirate (edge-triggered)
	ActionFireWeapon          // F - fire the installed weapon (edge-triggered)
	ActionDock                // Enter - dock/undock toggle (edge-triggered)
	ActionBack                // B, Escape - go back to menu
	ActionRestart             // R key - start a fresh run after the outcome screen
	ActionQuit                // Q, Ctrl+C - exit game/session
	ActionPause               // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionThrottleUp:
		return "ThrottleUp"
	case ActionThrottleDown:
		return "ThrottleDown"
	case ActionBrake:
		return "Brake"
	case ActionYawLeft:
		return "YawLeft"
	case ActionYawRight:
		return "YawRight"
	case ActionPitchUp:
		return "PitchUp"
	case ActionPitchDown:
		return "PitchDown"
	case ActionGrab:
		return "Grab"
	case ActionDrill:
		return "Drill"
	case ActionLaunchCargo:
		return "LaunchCargo"
	case ActionFireWeapon:
		return "FireWeapon"
	case ActionDock:
		return "Dock"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were down during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were down this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as down for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was down this frame.
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

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
