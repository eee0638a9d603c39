package render

import "sprout/internal/sims/plant"

// Scene couples a plant with the view state the frontends share: wind sway,
// the panning camera and the layout both are applied to.
type Scene struct {
	plant  *plant.Plant
	wind   *Wind
	camera *Camera
	layout plant.Layout
}

// NewScene wraps p. sway is the wind amplitude in radians; 0 disables it.
func NewScene(p *plant.Plant, sway float64) *Scene {
	s := &Scene{
		plant:  p,
		wind:   NewWind(p.Config().Seed, sway),
		camera: NewCamera(DefaultCameraConfig()),
	}
	s.relayout()
	return s
}

// Plant returns the wrapped plant.
func (s *Scene) Plant() *plant.Plant { return s.plant }

// Camera returns the panning camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Layout returns the layout of the current frame in view coordinates.
func (s *Scene) Layout() plant.Layout { return s.layout }

// Tip returns the active tip's endpoint in the current layout.
func (s *Scene) Tip() (plant.Point, bool) {
	tip, ok := s.plant.Tip()
	if !ok || int(tip) >= len(s.layout.End) {
		return plant.Point{}, false
	}
	return s.layout.End[tip], true
}

// Frame advances wind and camera by dt seconds and refreshes the layout.
func (s *Scene) Frame(dt float64) {
	s.wind.Advance(dt)
	if tip, ok := s.Tip(); ok {
		s.camera.Update(float32(dt), tip.Y, s.plant.Size().H)
	}
	s.relayout()
}

// Step advances the plant one tick, steering the tip toward targetX, and
// returns the tick's events.
func (s *Scene) Step(targetX float64) []plant.Event {
	bearing, ok := s.plant.TipBearing(s.layout, targetX)
	if !ok {
		bearing = 0
	}
	s.plant.Advance(bearing)
	s.relayout()
	return s.plant.Events()
}

// Reset regrows the plant from seed, reseeds the wind and recenters the
// camera. A zero seed reuses the configured one.
func (s *Scene) Reset(seed int64) {
	if seed == 0 {
		seed = s.plant.Config().Seed
	}
	s.plant.Reset(seed)
	s.wind = NewWind(seed, s.wind.amplitude)
	s.camera.Reset()
	s.relayout()
}

func (s *Scene) relayout() {
	anchor := s.camera.Anchor(plant.Anchor(s.plant.Config()))
	s.plant.LayoutInto(&s.layout, anchor, s.wind.Func())
}
