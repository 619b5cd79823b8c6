// Package gpu defines the small slice of the graphics API that terrain
// rendering needs, so mesh and texture lifecycles can run against a fake.
package gpu

// Handle types. Zero means "not created".
type (
	VertexArray uint32
	Buffer      uint32
	Texture     uint32
	Program     uint32
)

// TextureFormat selects the internal format and client data layout of an upload.
type TextureFormat int

const (
	// FormatR32F is one 32-bit float per texel (RED/FLOAT client data).
	FormatR32F TextureFormat = iota
	// FormatRGB8 is three 8-bit channels per texel (RGB/UNSIGNED_BYTE client data).
	FormatRGB8
)

func (f TextureFormat) String() string {
	switch f {
	case FormatR32F:
		return "R32F"
	case FormatRGB8:
		return "RGB8"
	default:
		return "unknown"
	}
}

// Filter is a texture sampling filter.
type Filter int

const (
	FilterLinear Filter = iota
	FilterLinearMipmapLinear
)

// Wrap is a texture coordinate wrap mode.
type Wrap int

const (
	WrapClampToEdge Wrap = iota
	WrapRepeat
)

// Sampler holds per-texture sampling state applied on upload.
type Sampler struct {
	WrapS     Wrap
	WrapT     Wrap
	MinFilter Filter
	MagFilter Filter
	Mipmaps   bool // Generate the full mip chain after upload
}

// TextureData is a 2D image ready for upload.
// Exactly one of Floats (FormatR32F) or Bytes (FormatRGB8) is used.
type TextureData struct {
	Width  int
	Height int
	Format TextureFormat
	Floats []float32
	Bytes  []byte
}

// FrontFace is the winding treated as front-facing when culling.
type FrontFace int

const (
	FrontCCW FrontFace = iota
	FrontCW
)

// Device creates, binds, uploads and destroys GPU objects and issues draws.
// All calls must happen on the thread that owns the graphics context.
type Device interface {
	CreateVertexArray() VertexArray
	BindVertexArray(vao VertexArray)
	DeleteVertexArray(vao VertexArray)

	CreateBuffer() Buffer
	DeleteBuffer(buf Buffer)
	// UploadVertices fills buf with data and binds it to attribute location
	// with the given component count, on the currently bound vertex array.
	UploadVertices(buf Buffer, location uint32, components int32, data []float32)
	// UploadIndices fills buf as the element buffer of the bound vertex array.
	UploadIndices(buf Buffer, indices []uint32)

	CreateTexture() Texture
	DeleteTexture(tex Texture)
	UploadTexture(tex Texture, data TextureData, sampler Sampler)
	BindTexture(unit uint32, tex Texture)

	UseProgram(program Program)
	UniformLocation(program Program, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, v [3]float32)
	UniformMatrix4(location int32, m [16]float32)

	EnableCulling(front FrontFace)
	DisableCulling()
	DrawTriangles(indexCount int32)
}
