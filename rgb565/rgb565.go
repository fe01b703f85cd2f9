// Package rgb565 provides the 16-bit RGB565 color format used by the ST7796
// display controller.
//
// RGB565 packs a pixel into two bytes: 5 bits of red, 6 bits of green and
// 5 bits of blue. The controller expects the high byte first on the wire.
// This package provides the Color type, a color.Model for conversions from
// arbitrary colors, and an Image implementation backed by raw RGB565 bytes.
package rgb565

import (
	"image"
	"image/color"
)

// Color is a 16-bit RGB565 color value.
type Color uint16

// Palette of commonly used colors.
const (
	Black     Color = 0x0000
	White     Color = 0xFFFF
	Red       Color = 0xF800
	Green     Color = 0x07E0
	Blue      Color = 0x001F
	Yellow    Color = 0xFFE0
	Cyan      Color = 0x07FF
	Magenta   Color = 0xF81F
	Orange    Color = 0xFD20
	Gray      Color = 0x8410
	DarkGreen Color = 0x0400
)

// New packs 8-bit red, green and blue components into a Color.
func New(r, g, b uint8) Color {
	return Color(uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3)
}

// RGBA implements color.Color.
//
// The 5 and 6 bit components are expanded to 8 bits by replicating the high
// bits, then scaled to the 16-bit range.
func (c Color) RGBA() (r, g, b, a uint32) {
	r5 := uint32(c>>11) & 0x1F
	g6 := uint32(c>>5) & 0x3F
	b5 := uint32(c) & 0x1F
	r = (r5<<3 | r5>>2) * 0x101
	g = (g6<<2 | g6>>4) * 0x101
	b = (b5<<3 | b5>>2) * 0x101
	return r, g, b, 0xFFFF
}

// Bytes returns the big-endian wire encoding of the color, high byte first.
func (c Color) Bytes() (hi, lo byte) {
	return byte(c >> 8), byte(c)
}

// toColor converts any color.Color to Color.
func toColor(c color.Color) color.Color {
	if v, ok := c.(Color); ok {
		return v
	}
	r, g, b, _ := c.RGBA()
	return New(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Model converts colors to Color.
var Model = color.ModelFunc(toColor)

// Image is an in-memory RGB565 image stored in the controller wire format:
// two bytes per pixel, high byte first, row-major.
type Image struct {
	Pix    []byte          // Pixel data, 2 bytes per pixel
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewImage creates a new Image with the specified bounds.
func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &Image{Rect: r}
	}
	stride := w * 2
	return &Image{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return Model
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *Image) At(x, y int) color.Color {
	return p.RGB565At(x, y)
}

// RGB565At returns the Color of the pixel at (x, y).
func (p *Image) RGB565At(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Black
	}
	offset := p.pixOffset(x, y)
	return Color(uint16(p.Pix[offset])<<8 | uint16(p.Pix[offset+1]))
}

// Set sets the color of the pixel at (x, y).
func (p *Image) Set(x, y int, c color.Color) {
	p.SetRGB565(x, y, Model.Convert(c).(Color))
}

// SetRGB565 sets the Color of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *Image) SetRGB565(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset := p.pixOffset(x, y)
	p.Pix[offset] = byte(c >> 8)
	p.Pix[offset+1] = byte(c)
}

// pixOffset returns the byte offset of the pixel at (x, y).
func (p *Image) pixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}
