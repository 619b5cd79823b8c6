// Package camera provides an orbit camera for inspecting terrain.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/heightfield/internal/engine/terrain"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center mgl32.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // Radians above the XZ plane
	Yaw      float32 // Radians around +Y

	// Projection
	FOV    float32 // Vertical field of view, radians
	Aspect float32
	Near   float32
	Far    float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        30,
		Pitch:           mgl32.DegToRad(35),
		Yaw:             mgl32.DegToRad(45),
		FOV:             mgl32.DegToRad(60),
		Aspect:          16.0 / 9.0,
		Near:            0.1,
		Far:             500,
		MinDistance:     0.5,
		MaxDistance:     2000,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	cp, sp := cosSin(c.Pitch)
	cy, sy := cosSin(c.Yaw)
	offset := mgl32.Vec3{cp * sy, sp, cp * cy}.Mul(c.Distance)
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection.
func (c *OrbitCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// SetViewport updates the aspect ratio. Zero sizes are ignored.
func (c *OrbitCamera) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = mgl32.Clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center point relative to the current yaw.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := c.Distance * 0.01

	cy, sy := cosSin(c.Yaw)
	fwd := mgl32.Vec3{-sy, 0, -cy}
	side := mgl32.Vec3{cy, 0, -sy}

	move := fwd.Mul(forward).Add(side.Mul(right)).Add(mgl32.Vec3{0, up, 0})
	c.Center = c.Center.Add(move.Mul(speed))
}

// FitToBounds centers the camera on b and backs off far enough to see it.
func (c *OrbitCamera) FitToBounds(b terrain.Bounds) {
	c.Center = mgl32.Vec3(b.Center())

	size := max(b.Extent(), b.Max[1]-b.Min[1])
	if size <= 0 {
		return
	}
	c.Distance = mgl32.Clamp(size*1.2, c.MinDistance, c.MaxDistance)
	if c.Far < c.Distance+size {
		c.Far = (c.Distance + size) * 2
	}
}

func cosSin(a float32) (float32, float32) {
	s, co := math.Sincos(float64(a))
	return float32(co), float32(s)
}
