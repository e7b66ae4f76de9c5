package core

// Action is a semantic game action, decoupled from physical keys.
type Action int

const (
	ActionNone         Action = iota
	ActionUp                  // move cursor up
	ActionDown                // move cursor down
	ActionLeft                // move cursor left
	ActionRight               // move cursor right
	ActionPlace               // build the selected tower on the cursor cell
	ActionUpgrade             // damage upgrade on the cursor cell
	ActionUpgradeRange        // range upgrade on the cursor cell
	ActionUpgradeRate         // fire-rate upgrade on the cursor cell
	ActionNextTower           // cycle the selected tower type
	ActionSelect1             // select tower type 1..4 directly
	ActionSelect2
	ActionSelect3
	ActionSelect4
	ActionStartWave
	ActionPause
	ActionRestart
	ActionBack
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:         "None",
	ActionUp:           "Up",
	ActionDown:         "Down",
	ActionLeft:         "Left",
	ActionRight:        "Right",
	ActionPlace:        "Place",
	ActionUpgrade:      "Upgrade",
	ActionUpgradeRange: "UpgradeRange",
	ActionUpgradeRate:  "UpgradeRate",
	ActionNextTower:    "NextTower",
	ActionSelect1:      "Select1",
	ActionSelect2:      "Select2",
	ActionSelect3:      "Select3",
	ActionSelect4:      "Select4",
	ActionStartWave:    "StartWave",
	ActionPause:        "Pause",
	ActionRestart:      "Restart",
	ActionBack:         "Back",
	ActionQuit:         "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame holds the actions triggered during one simulation tick.
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
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
