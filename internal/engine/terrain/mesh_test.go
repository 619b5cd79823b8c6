package terrain

import (
	"errors"
	"math"
	"testing"
)

func TestBuildGrid_SingleCell(t *testing.T) {
	g, err := BuildGrid(2, 1.0)
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}

	if len(g.Vertices) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(g.Vertices))
	}
	if len(g.Indices) != 6 {
		t.Fatalf("expected 6 indices, got %d", len(g.Indices))
	}

	want := []Vertex{
		{Position: [3]float32{-0.5, 0, -0.5}, TexCoord: [2]float32{0, 0}},
		{Position: [3]float32{-0.5, 0, 0.5}, TexCoord: [2]float32{0, 1}},
		{Position: [3]float32{0.5, 0, -0.5}, TexCoord: [2]float32{1, 0}},
		{Position: [3]float32{0.5, 0, 0.5}, TexCoord: [2]float32{1, 1}},
	}
	for i, v := range want {
		if g.Vertices[i] != v {
			t.Errorf("vertex %d: expected %+v, got %+v", i, v, g.Vertices[i])
		}
	}

	wantIdx := []uint32{0, 1, 2, 2, 1, 3}
	for i, idx := range wantIdx {
		if g.Indices[i] != idx {
			t.Errorf("index %d: expected %d, got %d", i, idx, g.Indices[i])
		}
	}
}

func TestBuildGrid_Counts(t *testing.T) {
	tests := []struct {
		size    int
		spacing float32
	}{
		{2, 1},
		{3, 0.5},
		{16, 2},
		{65, 0.25},
		{128, 10},
	}

	for _, tt := range tests {
		g, err := BuildGrid(tt.size, tt.spacing)
		if err != nil {
			t.Fatalf("BuildGrid(%d, %g) failed: %v", tt.size, tt.spacing, err)
		}

		cells := tt.size - 1
		if len(g.Indices) != 6*cells*cells {
			t.Errorf("size %d: expected %d indices, got %d", tt.size, 6*cells*cells, len(g.Indices))
		}
		if len(g.Indices) != IndexCount(tt.size) {
			t.Errorf("size %d: IndexCount mismatch %d vs %d", tt.size, IndexCount(tt.size), len(g.Indices))
		}
		if len(g.Vertices) != tt.size*tt.size {
			t.Errorf("size %d: expected %d vertices, got %d", tt.size, tt.size*tt.size, len(g.Vertices))
		}

		limit := uint32(tt.size * tt.size)
		for i, idx := range g.Indices {
			if idx >= limit {
				t.Fatalf("size %d: index %d = %d out of range", tt.size, i, idx)
			}
		}
	}
}

func TestBuildGrid_WindingCCWFromAbove(t *testing.T) {
	g, err := BuildGrid(5, 1.5)
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}

	for tri := 0; tri < len(g.Indices)/3; tri++ {
		n := triangleNormal(g, tri)
		if n[1] <= 0 {
			t.Fatalf("triangle %d faces down: normal %v", tri, n)
		}
		if n[0] != 0 || n[2] != 0 {
			t.Errorf("triangle %d not flat: normal %v", tri, n)
		}
	}
}

func TestBuildGrid_Centered(t *testing.T) {
	g, err := BuildGrid(11, 2)
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}

	if g.Bounds.Min != [3]float32{-10, 0, -10} {
		t.Errorf("expected min (-10,0,-10), got %v", g.Bounds.Min)
	}
	if g.Bounds.Max != [3]float32{10, 0, 10} {
		t.Errorf("expected max (10,0,10), got %v", g.Bounds.Max)
	}
	if c := g.Bounds.Center(); c != [3]float32{0, 0, 0} {
		t.Errorf("expected center at origin, got %v", c)
	}
	if e := g.Bounds.Extent(); e != 20 {
		t.Errorf("expected extent 20, got %v", e)
	}

	var sumX, sumZ float32
	for _, v := range g.Vertices {
		if v.Position[1] != 0 {
			t.Fatalf("expected flat grid, got y=%v", v.Position[1])
		}
		if v.TexCoord[0] < 0 || v.TexCoord[0] > 1 || v.TexCoord[1] < 0 || v.TexCoord[1] > 1 {
			t.Fatalf("texcoord out of [0,1]: %v", v.TexCoord)
		}
		sumX += v.Position[0]
		sumZ += v.Position[2]
	}
	if sumX != 0 || sumZ != 0 {
		t.Errorf("expected positions to sum to zero, got (%v, %v)", sumX, sumZ)
	}
}

func TestBuildGrid_Degenerate(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		spacing float32
		want    error
	}{
		{"zero size", 0, 1, ErrGridTooSmall},
		{"one point", 1, 1, ErrGridTooSmall},
		{"negative size", -4, 1, ErrGridTooSmall},
		{"index overflow", MaxGridSize + 1, 1, ErrGridTooLarge},
		{"zero spacing", 4, 0, ErrInvalidSpacing},
		{"negative spacing", 4, -1, ErrInvalidSpacing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := BuildGrid(tt.size, tt.spacing)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if g != nil {
				t.Error("expected nil grid")
			}
		})
	}

	if IndexCount(MaxGridSize) > math.MaxInt32 {
		t.Errorf("largest grid needs %d indices, more than a draw call can take", IndexCount(MaxGridSize))
	}
	if IndexCount(1) != 0 || IndexCount(0) != 0 {
		t.Error("expected zero indices for degenerate sizes")
	}
}

func TestGridFlatten(t *testing.T) {
	g, err := BuildGrid(3, 1)
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}

	pos := g.Positions()
	uv := g.TexCoords()
	if len(pos) != 9*3 {
		t.Errorf("expected 27 position floats, got %d", len(pos))
	}
	if len(uv) != 9*2 {
		t.Errorf("expected 18 texcoord floats, got %d", len(uv))
	}

	// Last vertex is the (+X, +Z) corner
	if pos[24] != 1 || pos[25] != 0 || pos[26] != 1 {
		t.Errorf("expected last position (1,0,1), got %v", pos[24:])
	}
	if uv[16] != 1 || uv[17] != 1 {
		t.Errorf("expected last texcoord (1,1), got %v", uv[16:])
	}
}

// triangleNormal returns the unnormalized face normal of triangle t.
func triangleNormal(g *Grid, t int) [3]float32 {
	a := g.Vertices[g.Indices[t*3]].Position
	b := g.Vertices[g.Indices[t*3+1]].Position
	c := g.Vertices[g.Indices[t*3+2]].Position

	return cross(
		[3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]},
		[3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]},
	)
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
