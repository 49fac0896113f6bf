package ebiten

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	engineinput "regionmap/pkg/engine/input"
)

// polledKeys lists every key whose raw code can appear in the bindings
var polledKeys = buildPolledKeys()

func buildPolledKeys() []keyCode {
	keys := []keyCode{
		{ebiten.KeyArrowUp, "arrow_up"},
		{ebiten.KeyArrowDown, "arrow_down"},
		{ebiten.KeyArrowLeft, "arrow_left"},
		{ebiten.KeyArrowRight, "arrow_right"},
		{ebiten.KeyEqual, "="},
		{ebiten.KeyMinus, "-"},
		{ebiten.KeyNumpadAdd, "numpad_add"},
		{ebiten.KeyNumpadSubtract, "numpad_subtract"},
		{ebiten.KeyNumpad0, "numpad_0"},
		{ebiten.KeySpace, "space"},
		{ebiten.KeyEscape, "escape"},
	}
	for k := ebiten.KeyA; k <= ebiten.KeyZ; k++ {
		keys = append(keys, keyCode{k, string(rune('a' + int(k-ebiten.KeyA)))})
	}
	for k := ebiten.Key0; k <= ebiten.Key9; k++ {
		keys = append(keys, keyCode{k, string(rune('0' + int(k-ebiten.Key0)))})
	}
	return keys
}

var pointerButtons = []struct {
	mouse  ebiten.MouseButton
	button engineinput.Button
}{
	{ebiten.MouseButtonLeft, engineinput.ButtonPrimary},
	{ebiten.MouseButtonRight, engineinput.ButtonSecondary},
	{ebiten.MouseButtonMiddle, engineinput.ButtonMiddle},
}

// Update handles input (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		e.log.Info("map window opened", zap.Int("width", w), zap.Int("height", h))
	}

	if e.closed {
		return ebiten.Termination
	}

	e.checkPointerInput()
	if e.checkKeyInput() {
		e.closeView()
		return ebiten.Termination
	}
	return nil
}

// checkPointerInput forwards mouse presses, drags and wheel steps to the session
func (e *EbitenRenderer) checkPointerInput() {
	x, y := ebiten.CursorPosition()
	for _, b := range pointerButtons {
		if inpututil.IsMouseButtonJustPressed(b.mouse) {
			e.lastCursorX, e.lastCursorY = x, y
			e.session.OnPointerDown(float64(x), float64(y), b.button, e.windowWidth, e.windowHeight)
		}
		if inpututil.IsMouseButtonJustReleased(b.mouse) {
			e.session.OnPointerUp(b.button)
		}
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && (x != e.lastCursorX || y != e.lastCursorY) {
		e.session.OnPointerDrag(engineinput.ButtonPrimary, float64(x-e.lastCursorX), float64(y-e.lastCursorY))
	}
	e.lastCursorX, e.lastCursorY = x, y

	if _, wy := ebiten.Wheel(); wy != 0 {
		e.session.OnScroll(wy)
	}
}

// checkKeyInput maps keys through the bindings and applies the intents. It
// reports true when the view should close.
func (e *EbitenRenderer) checkKeyInput() bool {
	now := time.Now()
	for _, kc := range polledKeys {
		intent := engineinput.MapToIntent(engineinput.RawInput{
			Device:    engineinput.DeviceKeyboard,
			Code:      kc.code,
			Timestamp: now,
		})
		if intent.Action == engineinput.ActionNone {
			continue
		}

		key := kc.key
		var fire bool
		if repeatable(intent.Action) {
			fire = e.shouldRepeatKey(func() bool { return ebiten.IsKeyPressed(key) }, kc.code)
		} else {
			fire = inpututil.IsKeyJustPressed(key)
		}
		if !fire {
			continue
		}

		if intent.Action == engineinput.ActionClose {
			return true
		}
		e.session.OnIntent(intent, e.cfg.Map.PanStep)
	}
	return false
}

func repeatable(a engineinput.Action) bool {
	switch a {
	case engineinput.ActionPanNorth, engineinput.ActionPanSouth,
		engineinput.ActionPanWest, engineinput.ActionPanEast,
		engineinput.ActionZoomIn, engineinput.ActionZoomOut,
		engineinput.ActionTurnLeft, engineinput.ActionTurnRight:
		return true
	}
	return false
}

// shouldRepeatKey checks if a key should trigger (initial press or repeat)
func (e *EbitenRenderer) shouldRepeatKey(isPressed func() bool, code string) bool {
	now := time.Now().UnixMilli()
	state, exists := e.keyRepeatState[code]

	if !isPressed() {
		if exists {
			delete(e.keyRepeatState, code)
		}
		return false
	}

	if !exists {
		e.keyRepeatState[code] = keyRepeatInfo{firstPressed: now, lastRepeat: now}
		return true
	}
	if now-state.firstPressed >= keyRepeatInitialDelay && now-state.lastRepeat >= keyRepeatInterval {
		state.lastRepeat = now
		e.keyRepeatState[code] = state
		return true
	}
	return false
}
