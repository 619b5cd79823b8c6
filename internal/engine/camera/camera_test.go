package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/heightfield/internal/engine/terrain"
)

const eps = 1e-4

func TestPosition(t *testing.T) {
	tests := []struct {
		name       string
		pitch, yaw float32
		want       mgl32.Vec3
	}{
		{"level facing +Z", 0, 0, mgl32.Vec3{0, 0, 10}},
		{"level facing +X", 0, mgl32.DegToRad(90), mgl32.Vec3{10, 0, 0}},
		{"straight down", mgl32.DegToRad(90), 0, mgl32.Vec3{0, 10, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrbitCamera()
			c.Center = mgl32.Vec3{1, 2, 3}
			c.Distance = 10
			c.Pitch = tt.pitch
			c.Yaw = tt.yaw

			got := c.Position().Sub(c.Center)
			if !got.ApproxEqualThreshold(tt.want, eps) {
				t.Errorf("expected offset %v, got %v", tt.want, got)
			}
		})
	}
}

func TestViewProjectionCentersTarget(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = mgl32.Vec3{5, 1, -2}
	c.SetViewport(800, 600)

	clip := c.ViewProjection().Mul4x1(c.Center.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip.W())

	if mgl32.Abs(ndc.X()) > eps || mgl32.Abs(ndc.Y()) > eps {
		t.Errorf("expected center at screen middle, got %v", ndc)
	}
	if ndc.Z() <= -1 || ndc.Z() >= 1 {
		t.Errorf("expected center inside depth range, got %v", ndc.Z())
	}
}

func TestSetViewport(t *testing.T) {
	c := NewOrbitCamera()
	c.SetViewport(1000, 500)
	if c.Aspect != 2 {
		t.Errorf("expected aspect 2, got %v", c.Aspect)
	}
	c.SetViewport(0, 500)
	if c.Aspect != 2 {
		t.Errorf("expected zero width ignored, got %v", c.Aspect)
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	if c.Pitch != c.MaxPitch {
		t.Errorf("expected pitch clamped to %v, got %v", c.MaxPitch, c.Pitch)
	}
	c.HandleDrag(0, -1e6)
	if c.Pitch != c.MinPitch {
		t.Errorf("expected pitch clamped to %v, got %v", c.MinPitch, c.Pitch)
	}

	yaw := c.Yaw
	c.HandleDrag(100, 0)
	if c.Yaw >= yaw {
		t.Error("expected positive drag to decrease yaw")
	}
}

func TestHandleZoom(t *testing.T) {
	c := NewOrbitCamera()
	c.Distance = 100

	c.HandleZoom(1)
	if c.Distance != 90 {
		t.Errorf("expected distance 90, got %v", c.Distance)
	}

	for range 200 {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("expected distance clamped to %v, got %v", c.MinDistance, c.Distance)
	}
}

func TestHandleMovement(t *testing.T) {
	c := NewOrbitCamera()
	c.Yaw = 0
	c.Distance = 100

	// Yaw 0 puts the eye on +Z, so forward is -Z
	c.HandleMovement(1, 0, 0)
	if !c.Center.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, eps) {
		t.Errorf("expected center (0,0,-1), got %v", c.Center)
	}

	c.HandleMovement(0, 1, 1)
	if !c.Center.ApproxEqualThreshold(mgl32.Vec3{1, 1, -1}, eps) {
		t.Errorf("expected center (1,1,-1), got %v", c.Center)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.Far = 10

	c.FitToBounds(terrain.Bounds{
		Min: [3]float32{-50, 0, -25},
		Max: [3]float32{50, 3, 25},
	})

	if !c.Center.ApproxEqualThreshold(mgl32.Vec3{0, 1.5, 0}, eps) {
		t.Errorf("expected center (0,1.5,0), got %v", c.Center)
	}
	if c.Distance != 120 {
		t.Errorf("expected distance 120, got %v", c.Distance)
	}
	if c.Far <= c.Distance {
		t.Errorf("expected far plane past the terrain, got %v", c.Far)
	}
}
