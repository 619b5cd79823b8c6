// Package hfgen generates height-field and diffuse images from fractal
// OpenSimplex noise.
package hfgen

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Options controls terrain generation.
type Options struct {
	Size        int     // Pixels per side
	Seed        int64
	Frequency   float64 // Noise cycles across the image at the first octave
	Octaves     int
	Persistence float64 // Amplitude multiplier per octave
	Lacunarity  float64 // Frequency multiplier per octave
	WaterLevel  float64 // Normalized height below which the diffuse is water
}

// DefaultOptions returns a 512 pixel, six octave terrain.
func DefaultOptions() Options {
	return Options{
		Size:        512,
		Seed:        1,
		Frequency:   3,
		Octaves:     6,
		Persistence: 0.5,
		Lacunarity:  2,
		WaterLevel:  0.3,
	}
}

// Validate checks the options before any work is done.
func (o Options) Validate() error {
	var errs []error
	if o.Size < 2 {
		errs = append(errs, fmt.Errorf("size %d must be at least 2", o.Size))
	}
	if o.Octaves < 1 {
		errs = append(errs, fmt.Errorf("octaves %d must be at least 1", o.Octaves))
	}
	if !(o.Frequency > 0) {
		errs = append(errs, fmt.Errorf("frequency %g must be positive", o.Frequency))
	}
	return errors.Join(errs...)
}

// Result holds the generated images.
type Result struct {
	Height  *image.Gray16
	Diffuse *image.RGBA
}

// Generate builds both images. progress, when non-nil, is called once per
// finished row of each pass.
func Generate(o Options, progress func()) (*Result, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	field := fractal(o, progress)
	normalize(field)

	res := &Result{
		Height:  image.NewGray16(image.Rect(0, 0, o.Size, o.Size)),
		Diffuse: image.NewRGBA(image.Rect(0, 0, o.Size, o.Size)),
	}
	for y := 0; y < o.Size; y++ {
		for x := 0; x < o.Size; x++ {
			h := field[y*o.Size+x]
			res.Height.SetGray16(x, y, color.Gray16{Y: uint16(math.Round(h * 0xffff))})
			res.Diffuse.SetRGBA(x, y, Colorize(h, o.WaterLevel))
		}
		if progress != nil {
			progress()
		}
	}
	return res, nil
}

// Rows returns how many progress calls Generate makes.
func (o Options) Rows() int {
	return 2 * o.Size
}

func fractal(o Options, progress func()) []float64 {
	noise := opensimplex.New(o.Seed)
	field := make([]float64, o.Size*o.Size)
	inv := 1 / float64(o.Size)

	for y := 0; y < o.Size; y++ {
		for x := 0; x < o.Size; x++ {
			freq, amp := o.Frequency, 1.0
			var sum float64
			for range o.Octaves {
				sum += amp * noise.Eval2(float64(x)*inv*freq, float64(y)*inv*freq)
				freq *= o.Lacunarity
				amp *= o.Persistence
			}
			field[y*o.Size+x] = sum
		}
		if progress != nil {
			progress()
		}
	}
	return field
}

// normalize rescales v in place to [0, 1]. A constant field becomes 0.
func normalize(v []float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, f := range v {
		lo = min(lo, f)
		hi = max(hi, f)
	}
	span := hi - lo
	for i, f := range v {
		if span > 0 {
			v[i] = (f - lo) / span
		} else {
			v[i] = 0
		}
	}
}

type band struct {
	top float64 // Upper normalized height, relative to land
	lo  color.RGBA
	hi  color.RGBA
}

var landBands = []band{
	{0.08, color.RGBA{194, 178, 128, 255}, color.RGBA{176, 168, 110, 255}}, // Sand
	{0.55, color.RGBA{86, 140, 60, 255}, color.RGBA{60, 100, 45, 255}},     // Grass
	{0.85, color.RGBA{110, 100, 90, 255}, color.RGBA{140, 132, 124, 255}},  // Rock
	{1.00, color.RGBA{230, 230, 235, 255}, color.RGBA{255, 255, 255, 255}}, // Snow
}

// Colorize maps a normalized height to a terrain colour.
func Colorize(h, waterLevel float64) color.RGBA {
	if h < waterLevel {
		t := h / max(waterLevel, 1e-9)
		return lerp(color.RGBA{20, 40, 110, 255}, color.RGBA{50, 100, 170, 255}, t)
	}

	land := (h - waterLevel) / max(1-waterLevel, 1e-9)
	bottom := 0.0
	for _, b := range landBands {
		if land <= b.top {
			return lerp(b.lo, b.hi, (land-bottom)/(b.top-bottom))
		}
		bottom = b.top
	}
	last := landBands[len(landBands)-1]
	return last.hi
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	t = max(0, min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 255}
}
