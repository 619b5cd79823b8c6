// Package lighting provides directional sun lighting for the terrain shader.
package lighting

import (
	"math"

	"github.com/Faultbox/heightfield/internal/engine/gpu"
)

// Uniforms names the shader inputs a Sun writes. Empty names are skipped.
type Uniforms struct {
	Direction string // vec3 towards the sun
	Ambient   string // vec3 grey ambient term
}

// DefaultUniforms returns the names read by the built-in terrain shader.
func DefaultUniforms() Uniforms {
	return Uniforms{Direction: "sunDir", Ambient: "ambient"}
}

// Sun is a directional light.
type Sun struct {
	Longitude float32 // Degrees around +Y, 0 points at +Z
	Latitude  float32 // Degrees above the horizon
	Ambient   float32 // Uniform grey ambient term
}

// SunDirection converts longitude/latitude angles in degrees to a unit
// vector pointing towards the sun.
func SunDirection(longitude, latitude float32) [3]float32 {
	lonRad := float64(longitude) * math.Pi / 180.0
	latRad := float64(latitude) * math.Pi / 180.0

	x := float32(math.Cos(latRad) * math.Sin(lonRad))
	y := float32(math.Sin(latRad))
	z := float32(math.Cos(latRad) * math.Cos(lonRad))

	return [3]float32{x, y, z}
}

// Direction returns the unit vector towards the sun.
func (s Sun) Direction() [3]float32 {
	return SunDirection(s.Longitude, s.Latitude)
}

// Apply writes the sun into program under the names in u. Uniform values
// persist in the program, so this only needs calling when the sun changes.
func (s Sun) Apply(dev gpu.Device, program gpu.Program, u Uniforms) {
	dev.UseProgram(program)
	if u.Direction != "" {
		dev.Uniform3f(dev.UniformLocation(program, u.Direction), s.Direction())
	}
	if u.Ambient != "" {
		a := s.Ambient
		dev.Uniform3f(dev.UniformLocation(program, u.Ambient), [3]float32{a, a, a})
	}
}
