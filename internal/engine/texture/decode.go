package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
)

// HeightField is a single-channel float image.
// Rows are stored bottom-up: Data[0:Width] is the last row of the source image,
// which is texture row 0 in OpenGL.
type HeightField struct {
	Width  int
	Height int
	Data   []float32 // Normalized to [0, 1]
}

// RGB is a 3-channel 8-bit image, rows stored bottom-up like HeightField.
type RGB struct {
	Width  int
	Height int
	Pix    []byte // R, G, B per texel
}

// DecodeFile reads and decodes an image file.
// TGA is selected by extension; other formats are sniffed by image.Decode.
func DecodeFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, path)
}

// Decode decodes image bytes. name is only used to pick the TGA decoder.
func Decode(data []byte, name string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// LoadHeightField decodes path into a single-channel float height field.
func LoadHeightField(path string) (*HeightField, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("decode height field %s: %w", path, err)
	}
	hf := HeightFieldFromImage(img)
	if hf.Width == 0 || hf.Height == 0 {
		return nil, fmt.Errorf("decode height field %s: empty image", path)
	}
	return hf, nil
}

// LoadRGB decodes path into a 3-channel 8-bit image.
func LoadRGB(path string) (*RGB, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("decode diffuse %s: %w", path, err)
	}
	rgb := RGBFromImage(img)
	if rgb.Width == 0 || rgb.Height == 0 {
		return nil, fmt.Errorf("decode diffuse %s: empty image", path)
	}
	return rgb, nil
}

// HeightFieldFromImage converts any image to luminance in [0, 1], flipped
// vertically. 16-bit grayscale keeps its full precision.
func HeightFieldFromImage(img image.Image) *HeightField {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	hf := &HeightField{
		Width:  w,
		Height: h,
		Data:   make([]float32, w*h),
	}

	for y := 0; y < h; y++ {
		row := (h - 1 - y) * w
		for x := 0; x < w; x++ {
			hf.Data[row+x] = luminance(img, b.Min.X+x, b.Min.Y+y)
		}
	}
	return hf
}

func luminance(img image.Image, x, y int) float32 {
	switch src := img.(type) {
	case *image.Gray16:
		return float32(src.Gray16At(x, y).Y) / 0xffff
	case *image.Gray:
		return float32(src.GrayAt(x, y).Y) / 0xff
	default:
		g := color.Gray16Model.Convert(img.At(x, y)).(color.Gray16)
		return float32(g.Y) / 0xffff
	}
}

// RGBFromImage drops alpha and flips vertically.
func RGBFromImage(img image.Image) *RGB {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := &RGB{
		Width:  w,
		Height: h,
		Pix:    make([]byte, w*h*3),
	}

	for y := 0; y < h; y++ {
		row := (h - 1 - y) * w * 3
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := row + x*3
			out.Pix[i] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
		}
	}
	return out
}
