package render

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"sprout/internal/sims/plant"
)

// PanState tracks the camera's pan cycle.
type PanState uint8

const (
	PanFree PanState = iota
	PanMoving
	PanLocked
)

// CameraConfig controls when and how far the view pans to follow the tip.
type CameraConfig struct {
	// TriggerFraction of the view height: a tip above it starts a pan.
	TriggerFraction float64
	// PanDistance is how far the anchor moves down per pan, in pixels.
	PanDistance float64
	// PanDuration and LockDuration are in seconds.
	PanDuration  float32
	LockDuration float32
	Ease         ease.TweenFunc
}

// DefaultCameraConfig pans 225px over 1.5s once the tip reaches the top
// eighth of the view, then holds for a second.
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		TriggerFraction: 1.0 / 8,
		PanDistance:     225,
		PanDuration:     1.5,
		LockDuration:    1,
		Ease:            ease.OutQuad,
	}
}

// Camera scrolls the plant down as it grows past the top of the view.
type Camera struct {
	cfg     CameraConfig
	offsetY float64
	state   PanState
	tween   *gween.Tween
	lock    float32
}

// NewCamera constructs a camera at rest.
func NewCamera(cfg CameraConfig) *Camera {
	if cfg.Ease == nil {
		cfg.Ease = ease.Linear
	}
	return &Camera{cfg: cfg}
}

// OffsetY is the current downward shift applied to the anchor.
func (c *Camera) OffsetY() float64 { return c.offsetY }

// State reports the pan cycle state.
func (c *Camera) State() PanState { return c.state }

// Anchor shifts a view-space anchor by the camera offset.
func (c *Camera) Anchor(base plant.Point) plant.Point {
	return plant.Point{X: base.X, Y: base.Y + c.offsetY}
}

// Reset returns the camera to its initial position.
func (c *Camera) Reset() {
	c.offsetY = 0
	c.state = PanFree
	c.tween = nil
	c.lock = 0
}

// Update advances the pan cycle by dt seconds. tipY is the tip's on-screen Y
// from the previous layout.
func (c *Camera) Update(dt float32, tipY float64, viewHeight int) {
	switch c.state {
	case PanFree:
		if tipY < float64(viewHeight)*c.cfg.TriggerFraction {
			from := float32(c.offsetY)
			c.tween = gween.New(from, from+float32(c.cfg.PanDistance), c.cfg.PanDuration, c.cfg.Ease)
			c.state = PanMoving
		}
	case PanMoving:
		val, done := c.tween.Update(dt)
		c.offsetY = float64(val)
		if done {
			c.tween = nil
			c.state = PanLocked
			c.lock = c.cfg.LockDuration
		}
	case PanLocked:
		c.lock -= dt
		if c.lock <= 0 {
			c.state = PanFree
		}
	}
}
