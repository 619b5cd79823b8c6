package heightfield

// Uniforms names the inputs of the paired terrain shader and the values
// bound to them on every draw. Empty names are skipped.
type Uniforms struct {
	HeightField string  // Sampler for the height texture
	HeightUnit  uint32  // Texture unit the height texture is bound to
	Displace    string  // Displacement scale
	Scale       float32 // Value written to Displace

	Diffuse     string // Sampler for the diffuse texture
	DiffuseUnit uint32

	ViewProjection string // Camera view-projection matrix
	Footprint      string // World width of the grid, written from the mesh bounds
}

// DefaultUniforms returns the contract expected by existing height-field shaders:
// "hf" on unit 0 and "displaceNormal" set to 3.
func DefaultUniforms() Uniforms {
	return Uniforms{
		HeightField:    "hf",
		HeightUnit:     0,
		Displace:       "displaceNormal",
		Scale:          3,
		Diffuse:        "diffuseMap",
		DiffuseUnit:    1,
		ViewProjection: "viewProj",
		Footprint:      "footprint",
	}
}
