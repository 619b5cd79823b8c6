package gpu

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GL implements Device on OpenGL 4.1 core.
// gl.Init must have succeeded on the calling thread before use.
type GL struct{}

// NewGL returns the OpenGL device.
func NewGL() *GL {
	return &GL{}
}

var _ Device = (*GL)(nil)

func (*GL) CreateVertexArray() VertexArray {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return VertexArray(vao)
}

func (*GL) BindVertexArray(vao VertexArray) {
	gl.BindVertexArray(uint32(vao))
}

func (*GL) DeleteVertexArray(vao VertexArray) {
	id := uint32(vao)
	gl.DeleteVertexArrays(1, &id)
}

func (*GL) CreateBuffer() Buffer {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return Buffer(buf)
}

func (*GL) DeleteBuffer(buf Buffer) {
	id := uint32(buf)
	gl.DeleteBuffers(1, &id)
}

func (*GL) UploadVertices(buf Buffer, location uint32, components int32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(buf))
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, ptr(data), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(location, components, gl.FLOAT, false, components*4, 0)
	gl.EnableVertexAttribArray(location)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (*GL) UploadIndices(buf Buffer, indices []uint32) {
	// Element buffer binding is vertex array state; leave it bound.
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(buf))
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, ptr(indices), gl.STATIC_DRAW)
}

func (*GL) CreateTexture() Texture {
	var tex uint32
	gl.GenTextures(1, &tex)
	return Texture(tex)
}

func (*GL) DeleteTexture(tex Texture) {
	id := uint32(tex)
	gl.DeleteTextures(1, &id)
}

func (*GL) UploadTexture(tex Texture, data TextureData, sampler Sampler) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(sampler.WrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(sampler.WrapT))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(sampler.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(sampler.MinFilter))

	w, h := int32(data.Width), int32(data.Height)
	switch data.Format {
	case FormatR32F:
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R32F, w, h, 0, gl.RED, gl.FLOAT, ptr(data.Floats))
	case FormatRGB8:
		// RGB rows are not 4-byte aligned for most widths
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB8, w, h, 0, gl.RGB, gl.UNSIGNED_BYTE, ptr(data.Bytes))
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	}

	if sampler.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
}

func (*GL) BindTexture(unit uint32, tex Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
}

func (*GL) UseProgram(program Program) {
	gl.UseProgram(uint32(program))
}

func (*GL) UniformLocation(program Program, name string) int32 {
	return gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00"))
}

func (*GL) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (*GL) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (*GL) Uniform3f(location int32, v [3]float32) {
	gl.Uniform3f(location, v[0], v[1], v[2])
}

func (*GL) UniformMatrix4(location int32, m [16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (*GL) EnableCulling(front FrontFace) {
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	if front == FrontCW {
		gl.FrontFace(gl.CW)
	} else {
		gl.FrontFace(gl.CCW)
	}
}

func (*GL) DisableCulling() {
	gl.Disable(gl.CULL_FACE)
}

func (*GL) DrawTriangles(indexCount int32) {
	gl.DrawElements(gl.TRIANGLES, indexCount, gl.UNSIGNED_INT, nil)
}

func glWrap(w Wrap) int32 {
	if w == WrapRepeat {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func glFilter(f Filter) int32 {
	if f == FilterLinearMipmapLinear {
		return gl.LINEAR_MIPMAP_LINEAR
	}
	return gl.LINEAR
}

// ptr returns a pointer to the first element, or nil for empty data.
func ptr[T float32 | uint32 | byte](data []T) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}
