package st7796

import (
	"image"
	"image/color"

	"periph.io/x/devices/v3/st7796/rgb565"
)

// fillChunkPixels is the number of pixels streamed per bus transaction when
// painting a solid region. Transport call overhead dominates for many tiny
// writes, while unbounded single writes risk exceeding the transport's
// buffer limit; 512 pixels (1024 bytes) amortizes the overhead and stays
// well within common spidev payload limits.
const fillChunkPixels = 512

// FillScreen fills the whole screen with the specified color.
func (d *Dev) FillScreen(c rgb565.Color) error {
	return d.FillRectangle(0, 0, d.width, d.height, c)
}

// FillRectangle fills a rectangle at the given coordinates and dimensions
// with the specified color.
//
// The rectangle is clipped to the visible frame first. A region that is
// empty after clipping is a no-op, not an error, and issues no bus
// transactions.
func (d *Dev) FillRectangle(x, y, w, h int, c rgb565.Color) error {
	if err := d.ready(); err != nil {
		return err
	}
	x, y, w, h = clipRect(x, y, w, h, d.width, d.height)
	if w <= 0 || h <= 0 {
		return nil
	}
	if err := d.setAddressWindow(x, y, x+w-1, y+h-1); err != nil {
		return err
	}
	return d.fill(c, w*h)
}

// SetPixel draws a single pixel with the specified color. Out-of-range
// coordinates are a no-op.
func (d *Dev) SetPixel(x, y int, c rgb565.Color) error {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return nil
	}
	return d.FillRectangle(x, y, 1, 1, c)
}

// DrawHLine draws a horizontal line with the specified color.
func (d *Dev) DrawHLine(x, y, w int, c rgb565.Color) error {
	return d.FillRectangle(x, y, w, 1, c)
}

// DrawVLine draws a vertical line with the specified color.
func (d *Dev) DrawVLine(x, y, h int, c rgb565.Color) error {
	return d.FillRectangle(x, y, 1, h, c)
}

// fill streams n pixels of a single color through the chunk buffer. The
// address window must already be armed: the stream is ceil(n/fillChunkPixels)
// data transactions, full chunks of the repeated color pair followed by one
// final partial chunk sized to the remainder.
func (d *Dev) fill(c rgb565.Color, n int) error {
	hi, lo := c.Bytes()
	chunk := n
	if chunk > fillChunkPixels {
		chunk = fillChunkPixels
	}
	buf := d.pixBuf[:2*chunk]
	for i := 0; i < len(buf); i += 2 {
		buf[i] = hi
		buf[i+1] = lo
	}
	for n > 0 {
		m := n
		if m > fillChunkPixels {
			m = fillChunkPixels
		}
		if err := d.sendData(buf[:2*m]); err != nil {
			return err
		}
		n -= m
	}
	return nil
}

// clipRect clips the rectangle (x,y,w,h) to [0,maxW)x[0,maxH). The returned
// width or height is <= 0 when nothing remains.
func clipRect(x, y, w, h, maxW, maxH int) (int, int, int, int) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > maxW {
		w = maxW - x
	}
	if y+h > maxH {
		h = maxH - y
	}
	return x, y, w, h
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds returns the image bounds of the display, following rotation.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

// Draw streams an image region to the display, implementing display.Drawer.
//
// There is no local frame buffer: pixels are converted to RGB565 and written
// through the chunk buffer in a single pass. The dst rectangle is clipped to
// the display bounds; an empty intersection is a no-op.
func (d *Dev) Draw(dstRect image.Rectangle, src image.Image, sp image.Point) error {
	if err := d.ready(); err != nil {
		return err
	}
	orig := dstRect.Min
	dstRect = dstRect.Intersect(d.Bounds())
	if dstRect.Empty() {
		return nil
	}
	// Clipping moved the destination origin; the source point follows so
	// the dst/src correspondence is preserved.
	sp = sp.Add(dstRect.Min.Sub(orig))
	if err := d.setAddressWindow(dstRect.Min.X, dstRect.Min.Y, dstRect.Max.X-1, dstRect.Max.Y-1); err != nil {
		return err
	}

	// Fast path for images already in the wire format.
	native, _ := src.(*rgb565.Image)

	n := 0
	for y := 0; y < dstRect.Dy(); y++ {
		for x := 0; x < dstRect.Dx(); x++ {
			var c rgb565.Color
			if native != nil {
				c = native.RGB565At(sp.X+x, sp.Y+y)
			} else {
				c = rgb565.Model.Convert(src.At(sp.X+x, sp.Y+y)).(rgb565.Color)
			}
			d.pixBuf[n] = byte(c >> 8)
			d.pixBuf[n+1] = byte(c)
			n += 2
			if n == len(d.pixBuf) {
				if err := d.sendData(d.pixBuf); err != nil {
					return err
				}
				n = 0
			}
		}
	}
	if n > 0 {
		return d.sendData(d.pixBuf[:n])
	}
	return nil
}
