package tilestore

import (
	"regionmap/pkg/engine/tilecache"
	"regionmap/pkg/waypoints"
)

// World pairs a Store with the waypoints of the loaded world
type World struct {
	store     *Store
	waypoints []waypoints.Waypoint
}

func NewWorld(store *Store, wps []waypoints.Waypoint) *World {
	return &World{store: store, waypoints: wps}
}

func (w *World) Provider() tilecache.Provider    { return w.store }
func (w *World) Waypoints() []waypoints.Waypoint { return w.waypoints }
func (w *World) Store() *Store                   { return w.store }
