package mapview

import (
	"fmt"
	"math"

	"regionmap/pkg/engine/viewport"
	"regionmap/pkg/i18n"
)

// Overlay colors (0xAARRGGBB)
const (
	colorBackgroundDim uint32 = 0x88000000
	colorText          uint32 = 0xFFFFFFFF
	colorHelp          uint32 = 0xFFAAAAAA
	colorPlayer        uint32 = 0xFF00FF00
)

// Overlay layout in screen pixels
const (
	overlayMargin      = 10
	helpBottomOffset   = 20
	playerArrowSize    = 6
	waypointHalfSize   = 2
	waypointLabelShift = 4
	loadingLineOffset  = 20
)

func (s *Session) drawOverlay(f *Frame, width, height int) {
	center := s.view.Center
	f.add(Text{
		X:      overlayMargin,
		Y:      overlayMargin,
		Text:   fmt.Sprintf(i18n.Get("MAP_STATUS"), int(center.X), int(center.Z), s.view.Zoom),
		Color:  colorText,
		Shadow: true,
	})

	if s.observer != nil {
		if pos, yaw, ok := s.observer.Observe(); ok {
			p := s.view.WorldToScreen(pos, width, height)
			f.add(Triangle{Points: playerArrow(p, yaw), Color: colorPlayer})
		}
	}

	if s.world != nil {
		for _, wp := range s.world.Waypoints() {
			p := s.view.WorldToScreen(wp.Position, width, height)
			color := wp.Color()
			f.add(FillRect{
				X0:    math.Trunc(p.X - waypointHalfSize),
				Y0:    math.Trunc(p.Y - waypointHalfSize),
				X1:    math.Trunc(p.X + waypointHalfSize),
				Y1:    math.Trunc(p.Y + waypointHalfSize),
				Color: color,
			})
			f.add(Text{
				X:     math.Trunc(p.X + waypointLabelShift),
				Y:     math.Trunc(p.Y - waypointLabelShift),
				Text:  wp.DisplayName,
				Color: color,
			})
		}
	}

	f.add(Text{
		X:      overlayMargin,
		Y:      float64(height - helpBottomOffset),
		Text:   i18n.Get("MAP_HELP"),
		Color:  colorHelp,
		Shadow: true,
	})
}

// playerArrow returns the marker triangle at p, tip first, turned by -yaw degrees
func playerArrow(p viewport.ScreenPoint, yaw float64) [3]viewport.ScreenPoint {
	const size = playerArrowSize
	local := [3]viewport.ScreenPoint{{X: 0, Y: -size}, {X: size, Y: size}, {X: -size, Y: size}}

	rad := -yaw * math.Pi / 180
	sin, cos := math.Sincos(rad)
	var out [3]viewport.ScreenPoint
	for i, v := range local {
		out[i] = viewport.ScreenPoint{
			X: p.X + v.X*cos - v.Y*sin,
			Y: p.Y + v.X*sin + v.Y*cos,
		}
	}
	return out
}
