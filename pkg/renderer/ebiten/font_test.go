package ebiten

import "testing"

func TestFontSizeForHeight(t *testing.T) {
	tests := []struct {
		height int
		want   float64
	}{
		{0, uiFontSize},
		{600, uiFontSize},
		{720, 14},
		{800, 15.5},
		{900, 17.5},
		{4000, maxUIFontSize},
	}
	for _, tt := range tests {
		if got := fontSizeForHeight(tt.height); got != tt.want {
			t.Errorf("fontSizeForHeight(%d) = %v, want %v", tt.height, got, tt.want)
		}
	}
}

func TestGetSansFontFace_FollowsWindowHeight(t *testing.T) {
	e := &EbitenRenderer{windowHeight: 720}
	small := e.getSansFontFace()
	if e.getSansFontFace() != small {
		t.Error("face rebuilt although the window height did not change")
	}
	e.windowHeight = 1440
	large := e.getSansFontFace()
	if large == small || large.Size != maxUIFontSize {
		t.Errorf("face after resize: size %v, want %v", large.Size, maxUIFontSize)
	}
}
