package terrain

// BuildHeightmap wraps decoded height samples for CPU-side lookup.
// samples is row-major in texture space (row 0 at t=0), as uploaded to the GPU.
// Returns nil when the sample count does not match width*depth.
func BuildHeightmap(width, depth int, samples []float32, scale float32, bounds Bounds) *Heightmap {
	if width <= 0 || depth <= 0 || len(samples) != width*depth {
		return nil
	}

	hm := &Heightmap{
		Width:   width,
		Depth:   depth,
		Samples: samples,
		Scale:   scale,
		Bounds:  bounds,
	}

	lo, hi := hm.Range()
	hm.Bounds.Min[1] = lo
	hm.Bounds.Max[1] = hi
	return hm
}

// Range returns the lowest and highest displaced heights.
func (h *Heightmap) Range() (float32, float32) {
	if h == nil || len(h.Samples) == 0 {
		return 0, 0
	}
	lo, hi := h.Samples[0], h.Samples[0]
	for _, s := range h.Samples[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	return lo * h.Scale, hi * h.Scale
}

// HeightAt returns the displaced terrain height at a world position using
// bilinear interpolation. Positions outside the footprint clamp to the edge,
// matching the clamp-to-edge sampler on the height texture.
func (h *Heightmap) HeightAt(worldX, worldZ float32) float32 {
	if h == nil {
		return 0
	}

	sizeX := h.Bounds.Max[0] - h.Bounds.Min[0]
	sizeZ := h.Bounds.Max[2] - h.Bounds.Min[2]
	if sizeX <= 0 || sizeZ <= 0 {
		return 0
	}

	// World position to texture coordinates, then to sample space
	s := clampf((worldX-h.Bounds.Min[0])/sizeX, 0, 1)
	t := clampf((worldZ-h.Bounds.Min[2])/sizeZ, 0, 1)
	fx := s * float32(h.Width-1)
	fz := t * float32(h.Depth-1)

	x0 := int(fx)
	z0 := int(fz)
	x1 := min(x0+1, h.Width-1)
	z1 := min(z0+1, h.Depth-1)
	fracX := fx - float32(x0)
	fracZ := fz - float32(z0)

	// Lerp along X on both rows, then along Z
	near := h.sample(x0, z0)*(1-fracX) + h.sample(x1, z0)*fracX
	far := h.sample(x0, z1)*(1-fracX) + h.sample(x1, z1)*fracX

	return (near*(1-fracZ) + far*fracZ) * h.Scale
}

func (h *Heightmap) sample(x, z int) float32 {
	return h.Samples[z*h.Width+x]
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
