package texture

import (
	"image/color"
	"testing"
)

// tgaHeader builds an 18-byte TGA header.
func tgaHeader(imageType byte, width, height int, bpp byte, topToBottom bool) []byte {
	h := make([]byte, 18)
	h[2] = imageType
	h[12] = byte(width)
	h[13] = byte(width >> 8)
	h[14] = byte(height)
	h[15] = byte(height >> 8)
	h[16] = bpp
	if topToBottom {
		h[17] = 0x20
	}
	return h
}

func TestDecodeTGA_TrueColorBottomUp(t *testing.T) {
	// 1x2, stored bottom row first: blue then red (BGR order)
	data := tgaHeader(TGATypeTrueColor, 1, 2, 24, false)
	data = append(data,
		255, 0, 0, // bottom: blue
		0, 0, 255, // top: red
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}

	top := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
	bottom := color.NRGBAModel.Convert(img.At(0, 1)).(color.NRGBA)
	if top != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("expected red top pixel, got %+v", top)
	}
	if bottom != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("expected blue bottom pixel, got %+v", bottom)
	}
}

func TestDecodeTGA_GrayRLE(t *testing.T) {
	// 4x1 top-down: run of 3 x 10, then one raw pixel of 200
	data := tgaHeader(TGATypeGrayRLE, 4, 1, 8, true)
	data = append(data,
		0x82, 10, // RLE packet, count 3
		0x00, 200, // raw packet, count 1
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}

	want := []uint8{10, 10, 10, 200}
	for x, w := range want {
		c := color.NRGBAModel.Convert(img.At(x, 0)).(color.NRGBA)
		if c.R != w || c.G != w || c.B != w || c.A != 255 {
			t.Errorf("pixel %d: expected gray %d, got %+v", x, w, c)
		}
	}

	hf := HeightFieldFromImage(img)
	if hf.Data[3] < 0.78 || hf.Data[3] > 0.79 {
		t.Errorf("expected ~0.784 height, got %v", hf.Data[3])
	}
}

func TestDecodeTGA_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"too short", []byte{0, 0, 2}},
		{"color mapped", func() []byte {
			h := tgaHeader(TGATypeTrueColor, 1, 1, 24, false)
			h[1] = 1
			return h
		}()},
		{"unsupported type", tgaHeader(1, 1, 1, 8, false)},
		{"bad true-color depth", tgaHeader(TGATypeTrueColor, 1, 1, 16, false)},
		{"bad gray depth", tgaHeader(TGATypeGray, 1, 1, 24, false)},
		{"empty", tgaHeader(TGATypeGray, 0, 0, 8, false)},
		{"truncated pixels", append(tgaHeader(TGATypeTrueColor, 2, 2, 24, false), 1, 2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDecodeSelectsTGAByExtension(t *testing.T) {
	data := tgaHeader(TGATypeGray, 1, 1, 8, false)
	data = append(data, 128)

	img, err := Decode(data, "terrain/HEIGHT.TGA")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Bounds().Dx() != 1 {
		t.Errorf("expected 1px wide image, got %d", img.Bounds().Dx())
	}

	if _, err := Decode(data, "height.png"); err == nil {
		t.Error("expected TGA bytes to fail PNG sniffing")
	}
}
