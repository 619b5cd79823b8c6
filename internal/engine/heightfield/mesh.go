// Package heightfield renders a flat grid displaced by a height texture.
//
// A Mesh owns every GPU object it creates: one vertex array with position,
// texture coordinate and index buffers, plus a height texture and a diffuse
// texture. Failures are logged and returned; nothing panics, so a host render
// loop can keep drawing after an asset fails to load.
//
// All methods must be called on the thread that owns the graphics context.
package heightfield

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/heightfield/internal/engine/gpu"
	"github.com/Faultbox/heightfield/internal/engine/terrain"
	"github.com/Faultbox/heightfield/internal/engine/texture"
	"github.com/Faultbox/heightfield/internal/logger"
)

// ErrNoMesh is returned when drawing before any mesh was generated.
var ErrNoMesh = errors.New("no vertex array generated")

// Vertex attribute locations shared with the terrain vertex shader.
const (
	AttribPosition uint32 = 0
	AttribTexCoord uint32 = 1
)

// Mesh is one terrain instance.
type Mesh struct {
	dev      gpu.Device
	log      *zap.Logger
	program  gpu.Program
	uniforms Uniforms

	viewProj    mgl32.Mat4
	hasViewProj bool

	// Geometry
	vao        gpu.VertexArray
	positions  gpu.Buffer
	texCoords  gpu.Buffer
	indices    gpu.Buffer
	indexCount int32
	gridSize   int
	spacing    float32
	bounds     terrain.Bounds

	// Textures
	heightTex   gpu.Texture
	diffuseTex  gpu.Texture
	heightPath  string
	diffusePath string
	heightField *texture.HeightField
}

// Option configures a Mesh.
type Option func(*Mesh)

// WithLogger sets the logger. Defaults to the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Mesh) {
		if l != nil {
			m.log = l
		}
	}
}

// WithProgram sets the shader program used by SubmitTriangles.
func WithProgram(p gpu.Program) Option {
	return func(m *Mesh) {
		m.program = p
	}
}

// WithUniforms overrides the shader uniform contract.
func WithUniforms(u Uniforms) Option {
	return func(m *Mesh) {
		m.uniforms = u
	}
}

// New creates an empty terrain. No GPU objects exist until a load or
// GenerateMesh call creates them.
func New(dev gpu.Device, opts ...Option) *Mesh {
	m := &Mesh{
		dev:      dev,
		log:      logger.L().Named("heightfield"),
		uniforms: DefaultUniforms(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetProgram sets the shader program used by SubmitTriangles.
func (m *Mesh) SetProgram(p gpu.Program) {
	m.program = p
}

// SetUniforms replaces the shader uniform contract.
func (m *Mesh) SetUniforms(u Uniforms) {
	m.uniforms = u
}

// Uniforms returns the current shader uniform contract.
func (m *Mesh) Uniforms() Uniforms {
	return m.uniforms
}

// SetScale changes the displacement scale written on each draw.
func (m *Mesh) SetScale(scale float32) {
	m.uniforms.Scale = scale
}

// SetViewProjection sets the camera matrix uploaded on each draw.
func (m *Mesh) SetViewProjection(vp mgl32.Mat4) {
	m.viewProj = vp
	m.hasViewProj = true
}

// LoadHeightField decodes path as a single-channel float image and uploads it
// as an R32F texture sampled with linear filtering and no mipmaps.
// The texture object is created on first success and reused afterwards.
// On failure the previous texture and path are left untouched.
func (m *Mesh) LoadHeightField(path string) error {
	hf, err := texture.LoadHeightField(path)
	if err != nil {
		m.log.Error("failed to load height field", zap.String("path", path), zap.Error(err))
		return err
	}

	if m.heightTex == 0 {
		m.heightTex = m.dev.CreateTexture()
	}
	m.dev.UploadTexture(m.heightTex, gpu.TextureData{
		Width:  hf.Width,
		Height: hf.Height,
		Format: gpu.FormatR32F,
		Floats: hf.Data,
	}, gpu.Sampler{
		WrapS:     gpu.WrapClampToEdge,
		WrapT:     gpu.WrapClampToEdge,
		MinFilter: gpu.FilterLinear,
		MagFilter: gpu.FilterLinear,
	})

	m.heightPath = path
	m.heightField = hf
	m.log.Info("loaded height field",
		zap.String("path", path),
		zap.Int("width", hf.Width),
		zap.Int("height", hf.Height),
	)
	return nil
}

// LoadDiffuseTexture decodes path as 8-bit RGB and uploads it with a full
// mipmap chain and trilinear minification.
// Failure handling matches LoadHeightField.
func (m *Mesh) LoadDiffuseTexture(path string) error {
	rgb, err := texture.LoadRGB(path)
	if err != nil {
		m.log.Error("failed to load diffuse texture", zap.String("path", path), zap.Error(err))
		return err
	}

	if m.diffuseTex == 0 {
		m.diffuseTex = m.dev.CreateTexture()
	}
	m.dev.UploadTexture(m.diffuseTex, gpu.TextureData{
		Width:  rgb.Width,
		Height: rgb.Height,
		Format: gpu.FormatRGB8,
		Bytes:  rgb.Pix,
	}, gpu.Sampler{
		WrapS:     gpu.WrapClampToEdge,
		WrapT:     gpu.WrapClampToEdge,
		MinFilter: gpu.FilterLinearMipmapLinear,
		MagFilter: gpu.FilterLinear,
		Mipmaps:   true,
	})

	m.diffusePath = path
	m.log.Info("loaded diffuse texture",
		zap.String("path", path),
		zap.Int("width", rgb.Width),
		zap.Int("height", rgb.Height),
	)
	return nil
}

// GenerateMesh builds a gridSize x gridSize lattice with the given spacing and
// uploads it. Existing geometry is released first. Invalid sizes are logged
// and returned, and leave any existing mesh in place.
func (m *Mesh) GenerateMesh(gridSize int, spacing float32) error {
	grid, err := terrain.BuildGrid(gridSize, spacing)
	if err != nil {
		m.log.Warn("skipping mesh generation",
			zap.Int("grid", gridSize),
			zap.Float32("spacing", spacing),
			zap.Error(err),
		)
		return err
	}

	m.releaseGeometry()

	m.vao = m.dev.CreateVertexArray()
	m.positions = m.dev.CreateBuffer()
	m.texCoords = m.dev.CreateBuffer()
	m.indices = m.dev.CreateBuffer()

	m.dev.BindVertexArray(m.vao)
	m.dev.UploadVertices(m.positions, AttribPosition, 3, grid.Positions())
	m.dev.UploadVertices(m.texCoords, AttribTexCoord, 2, grid.TexCoords())
	m.dev.UploadIndices(m.indices, grid.Indices)
	m.dev.BindVertexArray(0)

	m.indexCount = int32(len(grid.Indices))
	m.gridSize = gridSize
	m.spacing = spacing
	m.bounds = grid.Bounds

	m.log.Debug("generated terrain mesh",
		zap.Int("grid", gridSize),
		zap.Float32("spacing", spacing),
		zap.Int("vertices", len(grid.Vertices)),
		zap.Int32("indices", m.indexCount),
	)
	return nil
}

// SubmitTriangles draws the mesh with back faces culled. The height texture
// is bound whether or not one was loaded; only a missing mesh stops the draw.
func (m *Mesh) SubmitTriangles() error {
	if m.vao == 0 {
		m.log.Error("cannot draw terrain", zap.Error(ErrNoMesh))
		return ErrNoMesh
	}

	u := m.uniforms
	m.dev.UseProgram(m.program)
	m.dev.BindVertexArray(m.vao)

	if u.HeightField != "" {
		m.dev.Uniform1i(m.dev.UniformLocation(m.program, u.HeightField), int32(u.HeightUnit))
	}
	if u.Displace != "" {
		m.dev.Uniform1f(m.dev.UniformLocation(m.program, u.Displace), u.Scale)
	}
	if u.Footprint != "" {
		m.dev.Uniform1f(m.dev.UniformLocation(m.program, u.Footprint), m.bounds.Extent())
	}
	if u.ViewProjection != "" && m.hasViewProj {
		m.dev.UniformMatrix4(m.dev.UniformLocation(m.program, u.ViewProjection), m.viewProj)
	}
	m.dev.BindTexture(u.HeightUnit, m.heightTex)

	if u.Diffuse != "" && m.diffuseTex != 0 {
		m.dev.Uniform1i(m.dev.UniformLocation(m.program, u.Diffuse), int32(u.DiffuseUnit))
		m.dev.BindTexture(u.DiffuseUnit, m.diffuseTex)
	}

	m.dev.EnableCulling(gpu.FrontCCW)
	m.dev.DrawTriangles(m.indexCount)
	m.dev.DisableCulling()

	m.dev.BindVertexArray(0)
	return nil
}

// Destroy releases every GPU object owned by the mesh. Safe to call twice.
func (m *Mesh) Destroy() {
	m.releaseGeometry()
	if m.heightTex != 0 {
		m.dev.DeleteTexture(m.heightTex)
		m.heightTex = 0
	}
	if m.diffuseTex != 0 {
		m.dev.DeleteTexture(m.diffuseTex)
		m.diffuseTex = 0
	}
	m.heightPath = ""
	m.diffusePath = ""
	m.heightField = nil
}

func (m *Mesh) releaseGeometry() {
	if m.vao != 0 {
		m.dev.DeleteVertexArray(m.vao)
		m.vao = 0
	}
	for _, buf := range []*gpu.Buffer{&m.positions, &m.texCoords, &m.indices} {
		if *buf != 0 {
			m.dev.DeleteBuffer(*buf)
			*buf = 0
		}
	}
	m.indexCount = 0
}

// VAO returns the vertex array, or 0 before GenerateMesh.
func (m *Mesh) VAO() gpu.VertexArray { return m.vao }

// IndexCount returns the number of indices drawn per submit.
func (m *Mesh) IndexCount() int32 { return m.indexCount }

// GridSize returns the points per side of the current mesh.
func (m *Mesh) GridSize() int { return m.gridSize }

// Spacing returns the grid spacing of the current mesh.
func (m *Mesh) Spacing() float32 { return m.spacing }

// HeightTexture returns the height texture, or 0 before a successful load.
func (m *Mesh) HeightTexture() gpu.Texture { return m.heightTex }

// DiffuseTexture returns the diffuse texture, or 0 before a successful load.
func (m *Mesh) DiffuseTexture() gpu.Texture { return m.diffuseTex }

// HeightFieldPath returns the path of the loaded height field.
func (m *Mesh) HeightFieldPath() string { return m.heightPath }

// DiffusePath returns the path of the loaded diffuse texture.
func (m *Mesh) DiffusePath() string { return m.diffusePath }

// Bounds returns the flat grid bounds.
func (m *Mesh) Bounds() terrain.Bounds { return m.bounds }

// Heightmap returns a CPU-side height lookup over the current mesh footprint,
// displaced by the current scale. Returns nil until both a mesh and a height
// field exist.
func (m *Mesh) Heightmap() *terrain.Heightmap {
	if m.heightField == nil || m.vao == 0 {
		return nil
	}
	return terrain.BuildHeightmap(m.heightField.Width, m.heightField.Height,
		m.heightField.Data, m.uniforms.Scale, m.bounds)
}

// String describes the mesh for debug output.
func (m *Mesh) String() string {
	return fmt.Sprintf("heightfield.Mesh{grid=%d spacing=%g indices=%d hf=%q diffuse=%q}",
		m.gridSize, m.spacing, m.indexCount, m.heightPath, m.diffusePath)
}
