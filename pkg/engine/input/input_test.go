package input

import (
	"math"
	"strings"
	"testing"

	"regionmap/pkg/engine/viewport"
)

func newTestController(zoom float64) (*Controller, *viewport.Viewport) {
	v := viewport.New(viewport.WorldPoint{X: 100, Z: 100}, zoom)
	return NewController(v), v
}

func TestPointerDown_PrimaryInsideStartsDrag(t *testing.T) {
	c, _ := newTestController(1)
	if !c.PointerDown(10, 10, ButtonPrimary, 800, 600) {
		t.Error("PointerDown(primary, inside) = false, want true (consumed)")
	}
	if !c.Dragging() {
		t.Error("Dragging() = false after primary press")
	}
}

func TestPointerDown_Ignored(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		button Button
	}{
		{"secondary button", 10, 10, ButtonSecondary},
		{"middle button", 10, 10, ButtonMiddle},
		{"left of screen", -1, 10, ButtonPrimary},
		{"below screen", 10, 600, ButtonPrimary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(1)
			if c.PointerDown(tt.x, tt.y, tt.button, 800, 600) {
				t.Error("PointerDown consumed the event, want forwarded")
			}
			if c.Dragging() {
				t.Error("Dragging() = true, want false")
			}
		})
	}
}

func TestPointerDrag_PansWhileDragging(t *testing.T) {
	c, v := newTestController(2)
	if c.PointerDrag(ButtonPrimary, 10, 10) {
		t.Error("PointerDrag before press consumed the event")
	}
	if v.Center != (viewport.WorldPoint{X: 100, Z: 100}) {
		t.Fatalf("center moved without a drag: %v", v.Center)
	}

	c.PointerDown(5, 5, ButtonPrimary, 800, 600)
	if !c.PointerDrag(ButtonPrimary, 20, -8) {
		t.Error("PointerDrag while dragging = false, want true")
	}
	want := viewport.WorldPoint{X: 90, Z: 104}
	if v.Center != want {
		t.Errorf("center = %v, want %v", v.Center, want)
	}

	if c.PointerDrag(ButtonSecondary, 20, 20) {
		t.Error("secondary drag consumed")
	}
}

func TestPointerUp_EndsDragAndForwards(t *testing.T) {
	c, v := newTestController(1)
	c.PointerDown(5, 5, ButtonPrimary, 800, 600)
	if c.PointerUp(ButtonPrimary) {
		t.Error("PointerUp consumed the event, want forwarded")
	}
	if c.Dragging() {
		t.Error("Dragging() = true after release")
	}
	c.PointerDrag(ButtonPrimary, 50, 50)
	if v.Center != (viewport.WorldPoint{X: 100, Z: 100}) {
		t.Errorf("center moved after release: %v", v.Center)
	}
}

func TestScroll_ZoomFactors(t *testing.T) {
	c, v := newTestController(1)
	if !c.Scroll(1) {
		t.Error("Scroll(1) = false")
	}
	if math.Abs(v.Zoom-1.1) > 1e-12 {
		t.Errorf("zoom after scroll up = %v, want 1.1", v.Zoom)
	}
	c.Scroll(-3)
	if math.Abs(v.Zoom-0.99) > 1e-12 {
		t.Errorf("zoom after scroll down = %v, want 0.99", v.Zoom)
	}
	if c.Scroll(0) {
		t.Error("Scroll(0) consumed")
	}
}

func TestScroll_StaysInRange(t *testing.T) {
	c, v := newTestController(viewport.MaxZoom)
	for i := 0; i < 10; i++ {
		c.Scroll(1)
	}
	if v.Zoom != viewport.MaxZoom {
		t.Errorf("zoom after ten scrolls up from max = %v, want exactly %v", v.Zoom, viewport.MaxZoom)
	}

	seq := []float64{-1, -1, 1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, 1, -1, -1, -1, -1}
	for _, s := range seq {
		c.Scroll(s)
		if v.Zoom < viewport.MinZoom || v.Zoom > viewport.MaxZoom {
			t.Fatalf("zoom %v out of range", v.Zoom)
		}
	}
	for i := 0; i < 50; i++ {
		c.Scroll(-1)
	}
	if v.Zoom != viewport.MinZoom {
		t.Errorf("zoom after many scrolls down = %v, want %v", v.Zoom, viewport.MinZoom)
	}
}

func TestApply_KeyboardIntents(t *testing.T) {
	c, v := newTestController(2)
	if !c.Apply(Intent{Action: ActionPanNorth}, 10, 1) {
		t.Fatal("Apply(PanNorth) = false")
	}
	if v.Center.Z != 95 {
		t.Errorf("center.Z after PanNorth = %v, want 95", v.Center.Z)
	}
	c.Apply(Intent{Action: ActionPanEast}, 10, 1)
	if v.Center.X != 105 {
		t.Errorf("center.X after PanEast = %v, want 105", v.Center.X)
	}
	c.Apply(Intent{Action: ActionZoomReset}, 10, 1.5)
	if v.Zoom != 1.5 {
		t.Errorf("zoom after reset = %v, want 1.5", v.Zoom)
	}
	if c.Apply(Intent{Action: ActionClose}, 10, 1) {
		t.Error("Apply(Close) = true, want false (host handles it)")
	}
}

func TestMapToIntent(t *testing.T) {
	tests := []struct {
		code string
		want Action
	}{
		{"escape", ActionClose},
		{"arrow_up", ActionPanNorth},
		{"=", ActionZoomIn},
		{"numpad_subtract", ActionZoomOut},
		{"c", ActionRecenter},
		{"space", ActionRecenter},
		{"unbound", ActionNone},
	}
	for _, tt := range tests {
		got := MapToIntent(RawInput{Device: DeviceKeyboard, Code: tt.code})
		if got.Action != tt.want {
			t.Errorf("MapToIntent(%q) = %s, want %s", tt.code, ActionName(got.Action), ActionName(tt.want))
		}
	}
}

func TestSetSingleBinding_ReservedCodesKept(t *testing.T) {
	saved := make(map[string]Action, len(bindings))
	for k, v := range bindings {
		saved[k] = v
	}
	t.Cleanup(func() { bindings = saved })

	SetSingleBinding(ActionPanNorth, "i")
	if got := MapToIntent(RawInput{Code: "i"}).Action; got != ActionPanNorth {
		t.Errorf("i -> %s, want Pan North", ActionName(got))
	}
	if got := MapToIntent(RawInput{Code: "w"}).Action; got != ActionNone {
		t.Errorf("w -> %s after rebinding, want None", ActionName(got))
	}

	SetSingleBinding(ActionPanWest, "escape")
	if got := MapToIntent(RawInput{Code: "escape"}).Action; got != ActionClose {
		t.Errorf("escape -> %s, want Close (reserved)", ActionName(got))
	}
	codes := GetBindingsByAction()[ActionZoomIn]
	if len(codes) != 3 {
		t.Errorf("zoom-in codes = %v, want 3 reserved codes", codes)
	}
}

func TestApplyBindings(t *testing.T) {
	saved := make(map[string]Action, len(bindings))
	for k, v := range bindings {
		saved[k] = v
	}
	t.Cleanup(func() { bindings = saved })

	err := ApplyBindings(map[string]string{
		"recenter":   "h",
		"reset_zoom": "r",
		"fly":        "f",
	})
	if err == nil || !strings.Contains(err.Error(), "fly") {
		t.Errorf("err = %v, want unknown action fly", err)
	}
	if got := MapToIntent(RawInput{Code: "h"}).Action; got != ActionRecenter {
		t.Errorf("h -> %s, want Recenter", ActionName(got))
	}
	if got := MapToIntent(RawInput{Code: "c"}).Action; got != ActionNone {
		t.Errorf("c -> %s after rebinding, want None", ActionName(got))
	}
	if got := MapToIntent(RawInput{Code: "r"}).Action; got != ActionZoomReset {
		t.Errorf("r -> %s, want Reset Zoom", ActionName(got))
	}
	if err := ApplyBindings(nil); err != nil {
		t.Errorf("ApplyBindings(nil) = %v", err)
	}
}

func TestActionByName(t *testing.T) {
	for a := ActionPanNorth; a <= ActionClose; a++ {
		got, ok := ActionByName(configName(a))
		if !ok || got != a {
			t.Errorf("ActionByName(%q) = %v, %v", configName(a), got, ok)
		}
	}
	if _, ok := ActionByName("none"); ok {
		t.Error("ActionByName accepted none")
	}
}
