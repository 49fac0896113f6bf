package input

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
)

// Action represents a high-level intent on the map screen.
type Action int

const (
	ActionNone Action = iota

	// Keyboard panning
	ActionPanNorth
	ActionPanSouth
	ActionPanWest
	ActionPanEast

	// Zoom
	ActionZoomIn
	ActionZoomOut
	ActionZoomReset

	// Observer (demo player) controls
	ActionTurnLeft
	ActionTurnRight

	// Meta / UI
	ActionRecenter
	ActionClose
)

// Intent is the high-level description of what the user wants to do.
type Intent struct {
	Action Action
}

// RawInput is an event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "arrow_up", "escape").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// bindings maps raw codes to actions.
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	"arrow_up":    ActionPanNorth,
	"w":           ActionPanNorth,
	"arrow_down":  ActionPanSouth,
	"s":           ActionPanSouth,
	"arrow_left":  ActionPanWest,
	"a":           ActionPanWest,
	"arrow_right": ActionPanEast,
	"d":           ActionPanEast,

	"q": ActionTurnLeft,
	"e": ActionTurnRight,

	// Zoom (fixed bindings, not rebindable)
	"=":               ActionZoomIn,
	"+":               ActionZoomIn,
	"numpad_add":      ActionZoomIn,
	"-":               ActionZoomOut,
	"numpad_subtract": ActionZoomOut,
	"0":               ActionZoomReset,
	"numpad_0":        ActionZoomReset,

	"c":      ActionRecenter,
	"space":  ActionRecenter,
	"escape": ActionClose,
}

// reserved codes cannot be rebound or unbound
func reserved(code string) bool {
	switch code {
	case "escape", "=", "+", "-", "numpad_add", "numpad_subtract":
		return true
	}
	return false
}

// MapToIntent applies the current bindings to a raw input and returns a
// high-level Intent.
func MapToIntent(ev RawInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionPanNorth:
		return "Pan North"
	case ActionPanSouth:
		return "Pan South"
	case ActionPanWest:
		return "Pan West"
	case ActionPanEast:
		return "Pan East"
	case ActionZoomIn:
		return "Zoom In"
	case ActionZoomOut:
		return "Zoom Out"
	case ActionZoomReset:
		return "Reset Zoom"
	case ActionTurnLeft:
		return "Turn Left"
	case ActionTurnRight:
		return "Turn Right"
	case ActionRecenter:
		return "Recenter"
	case ActionClose:
		return "Close"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering of codes within each action
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all bindings for the given action with a single code.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if reserved(c) {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reserved(code) {
		bindings[code] = action
	}
}

// ActionByName looks up an action by its config name, the lower-case
// ActionName with underscores ("pan_north", "zoom_in").
func ActionByName(name string) (Action, bool) {
	for a := ActionPanNorth; a <= ActionClose; a++ {
		if configName(a) == name {
			return a, true
		}
	}
	return ActionNone, false
}

func configName(a Action) string {
	return strings.ReplaceAll(strings.ToLower(ActionName(a)), " ", "_")
}

// ApplyBindings rebinds each named action to its code. Unknown action names
// are reported after the valid ones have been applied.
func ApplyBindings(keys map[string]string) error {
	names := make([]string, 0, len(keys))
	for name := range keys {
		names = append(names, name)
	}
	sort.Strings(names)

	var unknown []string
	for _, name := range names {
		act, ok := ActionByName(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		SetSingleBinding(act, keys[name])
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown actions in key bindings: %s", strings.Join(unknown, ", "))
	}
	return nil
}
