package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
}

func TestLoadHeightField_Gray16Flipped(t *testing.T) {
	// 2x3 image: top row 0, middle row half, bottom row max
	img := image.NewGray16(image.Rect(0, 0, 2, 3))
	for x := 0; x < 2; x++ {
		img.SetGray16(x, 0, color.Gray16{Y: 0})
		img.SetGray16(x, 1, color.Gray16{Y: 0x8000})
		img.SetGray16(x, 2, color.Gray16{Y: 0xffff})
	}

	path := filepath.Join(t.TempDir(), "height.png")
	writePNG(t, path, img)

	hf, err := LoadHeightField(path)
	if err != nil {
		t.Fatalf("LoadHeightField failed: %v", err)
	}

	if hf.Width != 2 || hf.Height != 3 {
		t.Fatalf("expected 2x3, got %dx%d", hf.Width, hf.Height)
	}
	if len(hf.Data) != 6 {
		t.Fatalf("expected 6 samples, got %d", len(hf.Data))
	}

	// Bottom image row becomes texture row 0
	if hf.Data[0] != 1 || hf.Data[1] != 1 {
		t.Errorf("expected first row 1.0, got %v", hf.Data[0:2])
	}
	if hf.Data[4] != 0 || hf.Data[5] != 0 {
		t.Errorf("expected last row 0.0, got %v", hf.Data[4:6])
	}
	mid := hf.Data[2]
	if mid < 0.49 || mid > 0.51 {
		t.Errorf("expected middle row ~0.5, got %v", mid)
	}
}

func TestLoadHeightField_Gray8(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 2))
	img.SetGray(0, 0, color.Gray{Y: 255})
	img.SetGray(0, 1, color.Gray{Y: 51})

	path := filepath.Join(t.TempDir(), "height8.png")
	writePNG(t, path, img)

	hf, err := LoadHeightField(path)
	if err != nil {
		t.Fatalf("LoadHeightField failed: %v", err)
	}
	if hf.Data[0] != 0.2 {
		t.Errorf("expected 0.2, got %v", hf.Data[0])
	}
	if hf.Data[1] != 1 {
		t.Errorf("expected 1.0, got %v", hf.Data[1])
	}
}

func TestLoadHeightField_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.png")
	hf, err := LoadHeightField(path)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if hf != nil {
		t.Error("expected nil height field")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("expected error to mention path, got %v", err)
	}
}

func TestLoadHeightField_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if _, err := LoadHeightField(path); err == nil {
		t.Error("expected decode error")
	}
}

func TestLoadRGB_BMPFlipped(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for x := 0; x < 3; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
		img.Set(x, 1, color.RGBA{B: 255, A: 255})
	}

	path := filepath.Join(t.TempDir(), "diffuse.bmp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create: %v", err)
	}
	if err := bmp.Encode(f, img); err != nil {
		t.Fatalf("failed to encode bmp: %v", err)
	}
	f.Close()

	rgb, err := LoadRGB(path)
	if err != nil {
		t.Fatalf("LoadRGB failed: %v", err)
	}
	if rgb.Width != 3 || rgb.Height != 2 {
		t.Fatalf("expected 3x2, got %dx%d", rgb.Width, rgb.Height)
	}
	if len(rgb.Pix) != 3*2*3 {
		t.Fatalf("expected 18 bytes, got %d", len(rgb.Pix))
	}

	// Row 0 is the bottom (blue) row of the source
	if rgb.Pix[0] != 0 || rgb.Pix[1] != 0 || rgb.Pix[2] != 255 {
		t.Errorf("expected blue first texel, got %v", rgb.Pix[0:3])
	}
	if rgb.Pix[9] != 255 || rgb.Pix[10] != 0 || rgb.Pix[11] != 0 {
		t.Errorf("expected red texel on second row, got %v", rgb.Pix[9:12])
	}
}

func TestLoadRGB_Missing(t *testing.T) {
	if _, err := LoadRGB(filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Error("expected error for missing file")
	}
}
