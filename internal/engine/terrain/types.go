// Package terrain provides height-field grid building and height sampling utilities.
package terrain

import "errors"

// MaxGridSize is the largest points-per-side a grid may have. Its index
// count must fit the int32 draw count.
const MaxGridSize = 4096

var (
	// ErrGridTooSmall is returned when a grid has fewer than two points per side.
	ErrGridTooSmall = errors.New("grid size must be at least 2")

	// ErrGridTooLarge is returned when a grid exceeds MaxGridSize points per side.
	ErrGridTooLarge = errors.New("grid size exceeds maximum")

	// ErrInvalidSpacing is returned when grid spacing is not a positive number.
	ErrInvalidSpacing = errors.New("grid spacing must be positive")
)

// Vertex is one lattice point of the terrain grid.
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
}

// Grid holds an indexed, flat terrain lattice ready for GPU upload.
// Height is applied later by the vertex shader, so every Y is zero.
type Grid struct {
	Size     int     // Points per side
	Spacing  float32 // World distance between adjacent grid lines
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the grid.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the bounding box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Extent returns the larger of the X and Z sizes.
func (b Bounds) Extent() float32 {
	sx := b.Max[0] - b.Min[0]
	sz := b.Max[2] - b.Min[2]
	if sz > sx {
		return sz
	}
	return sx
}

// Heightmap provides CPU-side height lookup over the same lattice the
// vertex shader displaces.
type Heightmap struct {
	Width   int       // Samples along X
	Depth   int       // Samples along Z
	Samples []float32 // Row-major, Depth rows of Width samples
	Scale   float32   // Displacement scale applied to every sample
	Bounds  Bounds    // World-space XZ footprint
}
