package terrain

import "fmt"

// BuildGrid creates a flat, indexed size x size lattice on the XZ plane,
// centered at the origin.
//
// Vertex (i, j) lives at index i*size+j, with i running along X and j along Z.
// Each cell emits two triangles that share the (i, j+1)-(i+1, j) diagonal,
// wound counter-clockwise when viewed from +Y.
func BuildGrid(size int, spacing float32) (*Grid, error) {
	if size < 2 {
		return nil, fmt.Errorf("build grid %d: %w", size, ErrGridTooSmall)
	}
	if size > MaxGridSize {
		return nil, fmt.Errorf("build grid %d: %w", size, ErrGridTooLarge)
	}
	if !(spacing > 0) {
		return nil, fmt.Errorf("build grid spacing %g: %w", spacing, ErrInvalidSpacing)
	}

	half := float32(size-1) * spacing / 2
	last := float32(size - 1)

	vertices := make([]Vertex, 0, size*size)
	for i := range size {
		for j := range size {
			vertices = append(vertices, Vertex{
				Position: [3]float32{float32(i)*spacing - half, 0, float32(j)*spacing - half},
				TexCoord: [2]float32{float32(i) / last, float32(j) / last},
			})
		}
	}

	cells := size - 1
	indices := make([]uint32, 0, cells*cells*6)
	for i := range cells {
		for j := range cells {
			v00 := uint32(i*size + j)     // (i, j)
			v01 := uint32(i*size + j + 1) // (i, j+1)
			v10 := uint32((i+1)*size + j) // (i+1, j)
			v11 := v10 + 1                // (i+1, j+1)

			indices = append(indices,
				v00, v01, v10,
				v10, v01, v11,
			)
		}
	}

	return &Grid{
		Size:     size,
		Spacing:  spacing,
		Vertices: vertices,
		Indices:  indices,
		Bounds: Bounds{
			Min: [3]float32{-half, 0, -half},
			Max: [3]float32{half, 0, half},
		},
	}, nil
}

// IndexCount returns the number of indices a grid of the given size needs.
// Sizes below 2 have no triangles.
func IndexCount(size int) int {
	if size < 2 {
		return 0
	}
	return 6 * (size - 1) * (size - 1)
}

// Positions returns vertex positions as a flat x,y,z slice.
func (g *Grid) Positions() []float32 {
	out := make([]float32, 0, len(g.Vertices)*3)
	for _, v := range g.Vertices {
		out = append(out, v.Position[0], v.Position[1], v.Position[2])
	}
	return out
}

// TexCoords returns texture coordinates as a flat s,t slice.
func (g *Grid) TexCoords() []float32 {
	out := make([]float32, 0, len(g.Vertices)*2)
	for _, v := range g.Vertices {
		out = append(out, v.TexCoord[0], v.TexCoord[1])
	}
	return out
}
