// Package gputest provides an in-memory gpu.Device for unit tests.
package gputest

import (
	"fmt"

	"github.com/Faultbox/heightfield/internal/engine/gpu"
)

// Draw records the state in effect when DrawTriangles was called.
type Draw struct {
	Program     gpu.Program
	VertexArray gpu.VertexArray
	IndexCount  int32
	Culling     bool
	FrontFace   gpu.FrontFace
	Textures    map[uint32]gpu.Texture // Unit -> texture
}

// Attribute is a vertex attribute upload.
type Attribute struct {
	Buffer     gpu.Buffer
	Components int32
	Data       []float32
}

// Upload is the most recent content of a texture.
type Upload struct {
	Data    gpu.TextureData
	Sampler gpu.Sampler
}

// VertexArrayState is what a vertex array captured while bound.
type VertexArrayState struct {
	Attributes map[uint32]Attribute
	Indices    []uint32
}

// Device is a fake gpu.Device. Handles are allocated from one counter so
// they never collide across object kinds, and are never reused.
type Device struct {
	next uint32

	vertexArrays map[gpu.VertexArray]*VertexArrayState
	buffers      map[gpu.Buffer]bool
	textures     map[gpu.Texture]*Upload

	boundVAO gpu.VertexArray
	program  gpu.Program
	units    map[uint32]gpu.Texture
	culling  bool
	front    gpu.FrontFace

	// Uniforms maps program/name to the last value set through its location.
	Uniforms  map[string]any
	locations map[int32]string

	Draws []Draw

	// Errors collects misuse (double delete, use of dead handles).
	Errors []error

	Created int // Total objects ever created
	Deleted int // Total objects ever deleted
}

var _ gpu.Device = (*Device)(nil)

// New returns an empty fake device.
func New() *Device {
	return &Device{
		vertexArrays: make(map[gpu.VertexArray]*VertexArrayState),
		buffers:      make(map[gpu.Buffer]bool),
		textures:     make(map[gpu.Texture]*Upload),
		units:        make(map[uint32]gpu.Texture),
		Uniforms:     make(map[string]any),
		locations:    make(map[int32]string),
	}
}

func (d *Device) alloc() uint32 {
	d.next++
	d.Created++
	return d.next
}

func (d *Device) fail(format string, args ...any) {
	d.Errors = append(d.Errors, fmt.Errorf(format, args...))
}

// Live returns the number of objects created and not yet deleted.
func (d *Device) Live() int {
	return len(d.vertexArrays) + len(d.buffers) + len(d.textures)
}

// LiveTextures returns the number of live textures.
func (d *Device) LiveTextures() int {
	return len(d.textures)
}

// LiveBuffers returns the number of live buffers.
func (d *Device) LiveBuffers() int {
	return len(d.buffers)
}

// LiveVertexArrays returns the number of live vertex arrays.
func (d *Device) LiveVertexArrays() int {
	return len(d.vertexArrays)
}

// VertexArray returns the recorded state of a live vertex array.
func (d *Device) VertexArray(vao gpu.VertexArray) (*VertexArrayState, bool) {
	s, ok := d.vertexArrays[vao]
	return s, ok
}

// Texture returns the last upload to a live texture.
func (d *Device) Texture(tex gpu.Texture) (*Upload, bool) {
	u, ok := d.textures[tex]
	return u, ok
}

// Culling reports whether face culling is currently enabled.
func (d *Device) Culling() bool {
	return d.culling
}

// BoundVertexArray returns the currently bound vertex array.
func (d *Device) BoundVertexArray() gpu.VertexArray {
	return d.boundVAO
}

func (d *Device) CreateVertexArray() gpu.VertexArray {
	vao := gpu.VertexArray(d.alloc())
	d.vertexArrays[vao] = &VertexArrayState{Attributes: make(map[uint32]Attribute)}
	return vao
}

func (d *Device) BindVertexArray(vao gpu.VertexArray) {
	if vao != 0 {
		if _, ok := d.vertexArrays[vao]; !ok {
			d.fail("bind of unknown vertex array %d", vao)
		}
	}
	d.boundVAO = vao
}

func (d *Device) DeleteVertexArray(vao gpu.VertexArray) {
	if _, ok := d.vertexArrays[vao]; !ok {
		d.fail("delete of unknown vertex array %d", vao)
		return
	}
	delete(d.vertexArrays, vao)
	d.Deleted++
	if d.boundVAO == vao {
		d.boundVAO = 0
	}
}

func (d *Device) CreateBuffer() gpu.Buffer {
	buf := gpu.Buffer(d.alloc())
	d.buffers[buf] = true
	return buf
}

func (d *Device) DeleteBuffer(buf gpu.Buffer) {
	if !d.buffers[buf] {
		d.fail("delete of unknown buffer %d", buf)
		return
	}
	delete(d.buffers, buf)
	d.Deleted++
}

func (d *Device) boundState(op string) *VertexArrayState {
	s, ok := d.vertexArrays[d.boundVAO]
	if !ok {
		d.fail("%s with no vertex array bound", op)
		return nil
	}
	return s
}

func (d *Device) UploadVertices(buf gpu.Buffer, location uint32, components int32, data []float32) {
	if !d.buffers[buf] {
		d.fail("upload to unknown buffer %d", buf)
		return
	}
	if s := d.boundState("vertex upload"); s != nil {
		s.Attributes[location] = Attribute{
			Buffer:     buf,
			Components: components,
			Data:       append([]float32(nil), data...),
		}
	}
}

func (d *Device) UploadIndices(buf gpu.Buffer, indices []uint32) {
	if !d.buffers[buf] {
		d.fail("upload to unknown buffer %d", buf)
		return
	}
	if s := d.boundState("index upload"); s != nil {
		s.Indices = append([]uint32(nil), indices...)
	}
}

func (d *Device) CreateTexture() gpu.Texture {
	tex := gpu.Texture(d.alloc())
	d.textures[tex] = nil
	return tex
}

func (d *Device) DeleteTexture(tex gpu.Texture) {
	if _, ok := d.textures[tex]; !ok {
		d.fail("delete of unknown texture %d", tex)
		return
	}
	delete(d.textures, tex)
	d.Deleted++
	for unit, bound := range d.units {
		if bound == tex {
			delete(d.units, unit)
		}
	}
}

func (d *Device) UploadTexture(tex gpu.Texture, data gpu.TextureData, sampler gpu.Sampler) {
	if _, ok := d.textures[tex]; !ok {
		d.fail("upload to unknown texture %d", tex)
		return
	}
	d.textures[tex] = &Upload{Data: data, Sampler: sampler}
}

func (d *Device) BindTexture(unit uint32, tex gpu.Texture) {
	if tex != 0 {
		if _, ok := d.textures[tex]; !ok {
			d.fail("bind of unknown texture %d", tex)
		}
	}
	d.units[unit] = tex
}

func (d *Device) UseProgram(program gpu.Program) {
	d.program = program
}

// UniformLocation hands out a stable location per program/name pair.
func (d *Device) UniformLocation(program gpu.Program, name string) int32 {
	key := fmt.Sprintf("%d/%s", program, name)
	for loc, k := range d.locations {
		if k == key {
			return loc
		}
	}
	loc := int32(len(d.locations))
	d.locations[loc] = key
	return loc
}

func (d *Device) setUniform(location int32, v any) {
	if location < 0 {
		return
	}
	key, ok := d.locations[location]
	if !ok {
		d.fail("set of unknown uniform location %d", location)
		return
	}
	d.Uniforms[key] = v
}

func (d *Device) Uniform1i(location int32, v int32) {
	d.setUniform(location, v)
}

func (d *Device) Uniform1f(location int32, v float32) {
	d.setUniform(location, v)
}

func (d *Device) Uniform3f(location int32, v [3]float32) {
	d.setUniform(location, v)
}

func (d *Device) UniformMatrix4(location int32, m [16]float32) {
	d.setUniform(location, m)
}

// Uniform returns the last value set on a program's named uniform.
func (d *Device) Uniform(program gpu.Program, name string) (any, bool) {
	v, ok := d.Uniforms[fmt.Sprintf("%d/%s", program, name)]
	return v, ok
}

func (d *Device) EnableCulling(front gpu.FrontFace) {
	d.culling = true
	d.front = front
}

func (d *Device) DisableCulling() {
	d.culling = false
}

func (d *Device) DrawTriangles(indexCount int32) {
	if _, ok := d.vertexArrays[d.boundVAO]; !ok {
		d.fail("draw with no vertex array bound")
	}
	units := make(map[uint32]gpu.Texture, len(d.units))
	for u, t := range d.units {
		units[u] = t
	}
	d.Draws = append(d.Draws, Draw{
		Program:     d.program,
		VertexArray: d.boundVAO,
		IndexCount:  indexCount,
		Culling:     d.culling,
		FrontFace:   d.front,
		Textures:    units,
	})
}
