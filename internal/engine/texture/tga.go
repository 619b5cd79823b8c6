// Package texture decodes terrain images into texel buffers ready for upload.
package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeTrueColor    = 2  // Uncompressed true-color
	TGATypeGray         = 3  // Uncompressed grayscale
	TGATypeTrueColorRLE = 10 // RLE compressed true-color
	TGATypeGrayRLE      = 11 // RLE compressed grayscale
)

const tgaHeaderSize = 18

// DecodeTGA decodes a TGA image.
// Supports true-color (24/32 bpp) and grayscale (8/16 bpp) images, raw or RLE.
// TGA has no magic number, so callers select this decoder by file extension.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}

	gray := imageType == TGATypeGray || imageType == TGATypeGrayRLE
	rle := imageType == TGATypeTrueColorRLE || imageType == TGATypeGrayRLE
	switch {
	case imageType == TGATypeTrueColor || imageType == TGATypeTrueColorRLE:
		if bpp != 24 && bpp != 32 {
			return nil, fmt.Errorf("unsupported true-color TGA bit depth %d", bpp)
		}
	case gray:
		if bpp != 8 && bpp != 16 {
			return nil, fmt.Errorf("unsupported grayscale TGA bit depth %d", bpp)
		}
	default:
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("TGA has empty dimensions %dx%d", width, height)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	d := &tgaDecoder{
		img:         image.NewNRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		width:       width,
		height:      height,
		bytesPerPix: bpp / 8,
		gray:        gray,
		topToBottom: descriptor&0x20 != 0,
	}

	if rle {
		d.decodeRLE()
	} else if err := d.decodeRaw(); err != nil {
		return nil, err
	}

	return d.img, nil
}

type tgaDecoder struct {
	img         *image.NRGBA
	src         []byte
	pos         int
	width       int
	height      int
	bytesPerPix int
	gray        bool
	topToBottom bool
}

// readPixel consumes one pixel from the source. Returns false at end of data.
func (d *tgaDecoder) readPixel() (color.NRGBA, bool) {
	if d.pos+d.bytesPerPix > len(d.src) {
		return color.NRGBA{}, false
	}
	p := d.src[d.pos : d.pos+d.bytesPerPix]
	d.pos += d.bytesPerPix

	if d.gray {
		a := uint8(255)
		if d.bytesPerPix == 2 {
			a = p[1]
		}
		return color.NRGBA{R: p[0], G: p[0], B: p[0], A: a}, true
	}

	// Stored as BGR(A)
	a := uint8(255)
	if d.bytesPerPix == 4 {
		a = p[3]
	}
	return color.NRGBA{R: p[2], G: p[1], B: p[0], A: a}, true
}

// put stores the n-th pixel in file order, honoring row orientation.
func (d *tgaDecoder) put(n int, c color.NRGBA) {
	x := n % d.width
	y := n / d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetNRGBA(x, y, c)
}

func (d *tgaDecoder) decodeRaw() error {
	total := d.width * d.height
	if len(d.src) < total*d.bytesPerPix {
		return fmt.Errorf("TGA pixel data truncated")
	}
	for n := range total {
		c, _ := d.readPixel()
		d.put(n, c)
	}
	return nil
}

// decodeRLE decodes run-length packets. Truncated data leaves the remaining
// pixels transparent rather than failing the whole image.
func (d *tgaDecoder) decodeRLE() {
	total := d.width * d.height
	n := 0

	for n < total && d.pos < len(d.src) {
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, ok := d.readPixel()
			if !ok {
				return
			}
			for i := 0; i < count && n < total; i++ {
				d.put(n, c)
				n++
			}
			continue
		}

		for i := 0; i < count && n < total; i++ {
			c, ok := d.readPixel()
			if !ok {
				return
			}
			d.put(n, c)
			n++
		}
	}
}
