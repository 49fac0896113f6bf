// Package waypoints provides the read-only list of named map markers.
package waypoints

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"regionmap/pkg/engine/viewport"
)

// DefaultColor is used for waypoints whose color cannot be parsed (opaque 0xFF5555)
const DefaultColor uint32 = 0xFFFF5555

// Waypoint is a named marker at a world position
type Waypoint struct {
	Position    viewport.WorldPoint
	DisplayName string
	ColorHex    string
}

// Color parses ColorHex ("#RRGGBB" or "RRGGBB") into an opaque canonical
// pixel. Empty or malformed values fall back to DefaultColor.
func (w Waypoint) Color() uint32 {
	return ParseColor(w.ColorHex)
}

// ParseColor converts a hex RGB string into an opaque 0xAARRGGBB color
func ParseColor(s string) uint32 {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if hex == "" {
		return DefaultColor
	}
	rgb, err := strconv.ParseUint(hex, 16, 24)
	if err != nil {
		return DefaultColor
	}
	return 0xFF000000 | uint32(rgb)
}

// fileWaypoint is the on-disk form
type fileWaypoint struct {
	Name  string  `yaml:"name"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Color string  `yaml:"color"`
}

type file struct {
	Waypoints []fileWaypoint `yaml:"waypoints"`
}

// Load reads waypoints from a YAML file. A missing file yields no waypoints.
func Load(path string) ([]Waypoint, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read waypoints %s: %w", path, err)
	}
	wps, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("waypoints %s: %w", path, err)
	}
	return wps, nil
}

// Decode parses a YAML waypoint document
func Decode(r io.Reader) ([]Waypoint, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode: %w", err)
	}
	wps := make([]Waypoint, 0, len(f.Waypoints))
	for i, w := range f.Waypoints {
		if w.Name == "" {
			return nil, fmt.Errorf("waypoint %d has no name", i)
		}
		wps = append(wps, Waypoint{
			Position:    viewport.WorldPoint{X: w.X, Z: w.Z},
			DisplayName: w.Name,
			ColorHex:    w.Color,
		})
	}
	return wps, nil
}
