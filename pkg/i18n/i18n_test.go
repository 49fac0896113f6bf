package i18n

import (
	"fmt"
	"testing"
)

func TestGet(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"MAP_UNAVAILABLE", "Map unavailable"},
		{"MAP_HELP", "Drag to pan | Scroll to zoom | Esc to close"},
		{"MAP_STATUS", "Center: %d, %d  Zoom: %.2f px/block"},
		{"TILES_LOADING", "Loading %d tiles"},
		{"NOT_A_KEY", "NOT_A_KEY"},
	}
	for _, tt := range tests {
		if got := Get(tt.key); got != tt.want {
			t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestGet_FormatsAtCallSite(t *testing.T) {
	got := fmt.Sprintf(Get("MAP_STATUS"), 12, -40, 1.5)
	if want := "Center: 12, -40  Zoom: 1.50 px/block"; got != want {
		t.Errorf("status = %q, want %q", got, want)
	}
	got = fmt.Sprintf(Get("TILES_LOADING"), 3)
	if want := "Loading 3 tiles"; got != want {
		t.Errorf("loading = %q, want %q", got, want)
	}
}
