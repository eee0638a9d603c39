package render

import (
	"math"
	"testing"

	"sprout/internal/sims/plant"
)

func TestCameraPanCycle(t *testing.T) {
	cam := NewCamera(DefaultCameraConfig())

	cam.Update(0.1, 400, 640)
	if cam.State() != PanFree || cam.OffsetY() != 0 {
		t.Fatalf("tip low in the view should not pan, state=%d offset=%f", cam.State(), cam.OffsetY())
	}

	cam.Update(0.1, 50, 640)
	if cam.State() != PanMoving {
		t.Fatalf("tip above the trigger line should start a pan, state=%d", cam.State())
	}

	cam.Update(0.75, 50, 640)
	mid := cam.OffsetY()
	if mid <= 0 || mid >= 225 {
		t.Fatalf("expected a partial pan halfway through, got %f", mid)
	}

	cam.Update(1, 50, 640)
	if cam.State() != PanLocked {
		t.Fatalf("expected lock after pan completes, state=%d", cam.State())
	}
	if math.Abs(cam.OffsetY()-225) > 1e-3 {
		t.Fatalf("expected offset 225 after pan, got %f", cam.OffsetY())
	}

	cam.Update(0.5, 50, 640)
	if cam.State() != PanLocked {
		t.Fatal("camera should stay locked for the full lock duration")
	}
	cam.Update(0.6, 50, 640)
	if cam.State() != PanFree {
		t.Fatalf("expected camera to free after lock, state=%d", cam.State())
	}

	anchor := cam.Anchor(plant.Point{X: 10, Y: 100})
	if anchor.X != 10 || math.Abs(anchor.Y-325) > 1e-3 {
		t.Fatalf("unexpected shifted anchor %+v", anchor)
	}

	cam.Reset()
	if cam.OffsetY() != 0 || cam.State() != PanFree {
		t.Fatal("reset should return the camera to rest")
	}
}

func TestWindDisabled(t *testing.T) {
	w := NewWind(1, 0)
	if w.Func() != nil {
		t.Fatal("zero amplitude should disable sway")
	}
	var nilWind *Wind
	if nilWind.Func() != nil {
		t.Fatal("nil wind should disable sway")
	}
	nilWind.Advance(1)
}

func TestWindBoundedAndDeterministic(t *testing.T) {
	a := NewWind(5, 0.03)
	b := NewWind(5, 0.03)
	for step := 0; step < 200; step++ {
		a.Advance(1.0 / 60)
		b.Advance(1.0 / 60)
		for depth := 0; depth < 12; depth++ {
			seg := plant.Segment{Depth: depth}
			va, vb := a.Sway(seg), b.Sway(seg)
			if va != vb {
				t.Fatalf("same seed diverged at step %d depth %d", step, depth)
			}
			if math.Abs(va) > 0.03 {
				t.Fatalf("sway %f exceeds amplitude", va)
			}
		}
	}
}
