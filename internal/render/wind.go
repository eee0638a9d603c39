package render

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"sprout/internal/sims/plant"
)

// Wind sways rendered segments with a smooth noise field. Deeper segments
// sample the field further along so branches do not move in lockstep.
type Wind struct {
	noise     opensimplex.Noise
	amplitude float64
	depthStep float64
	speed     float64
	t         float64
}

// NewWind returns a wind field with the given maximum angle offset in radians.
func NewWind(seed int64, amplitude float64) *Wind {
	return &Wind{
		noise:     opensimplex.NewNormalized(seed),
		amplitude: amplitude,
		depthStep: 0.35,
		speed:     0.4,
	}
}

// Advance moves the field forward by dt seconds.
func (w *Wind) Advance(dt float64) {
	if w == nil {
		return
	}
	w.t += dt
}

// Sway returns the angle offset for seg at the current time.
func (w *Wind) Sway(seg plant.Segment) float64 {
	n := w.noise.Eval2(float64(seg.Depth)*w.depthStep, w.t*w.speed)
	return (n*2 - 1) * w.amplitude
}

// Func returns the sway function to pass to Plant.Layout, or nil when the
// wind is disabled.
func (w *Wind) Func() plant.SwayFunc {
	if w == nil || w.amplitude == 0 {
		return nil
	}
	return w.Sway
}
