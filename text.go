package st7796

import (
	"math"
	"strings"
	"unicode/utf8"

	"periph.io/x/devices/v3/st7796/rgb565"
)

// GlyphTable provides 8x8 character bitmaps for the text renderer: one byte
// per row from top to bottom, bit 7 being the leftmost pixel. Lookups for
// unsupported characters must return a placeholder glyph rather than fail.
type GlyphTable interface {
	Glyph(ch rune) [8]byte
}

// frequentChars is the subset of characters whose expanded pixel blocks are
// worth caching: digits, separators and uppercase letters, the characters
// that status screens redraw every refresh. Caching arbitrary characters
// would grow without reuse benefit.
const frequentChars = "0123456789:.%ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// glyphCacheLimit bounds the number of cached glyph expansions. The cache
// key space is unbounded in theory (any size and color combination); once
// the limit is reached new entries are simply not retained.
const glyphCacheLimit = 256

type glyphKey struct {
	ch   rune
	size int
	fg   rgb565.Color
	bg   rgb565.Color
}

// foldChar maps lowercase ASCII letters to uppercase, matching the font.
func foldChar(ch rune) rune {
	if ch >= 'a' && ch <= 'z' {
		ch -= 'a' - 'A'
	}
	return ch
}

// DrawChar draws a single character at (x, y) with the given integer size
// multiplier: each glyph bit becomes a size x size block, so the character
// occupies an 8*size square. Characters that would not fit entirely on
// screen are a no-op.
//
// Unknown characters render the placeholder glyph. Frequent characters are
// cached by (char, size, fg, bg); a cache hit sends the stored pixel block
// without consulting the glyph table again.
func (d *Dev) DrawChar(x, y int, ch rune, size int, fg, bg rgb565.Color) error {
	if err := d.ready(); err != nil {
		return err
	}
	if size < 1 {
		size = 1
	}
	w := 8 * size
	if x < 0 || y < 0 || x+w > d.width || y+w > d.height {
		return nil
	}

	ch = foldChar(ch)
	cacheable := strings.ContainsRune(frequentChars, ch)
	key := glyphKey{ch: ch, size: size, fg: fg, bg: bg}
	buf, ok := d.glyphCache[key]
	if !ok {
		buf = expandGlyph(d.glyphs.Glyph(ch), size, fg, bg)
		if cacheable && len(d.glyphCache) < glyphCacheLimit {
			if d.glyphCache == nil {
				d.glyphCache = make(map[glyphKey][]byte)
			}
			d.glyphCache[key] = buf
		}
	}

	if err := d.setAddressWindow(x, y, x+w-1, y+w-1); err != nil {
		return err
	}
	return d.sendData(buf)
}

// expandGlyph scales an 8x8 bitmap into an (8*size)^2 pixel block of RGB565
// byte pairs, row-major.
func expandGlyph(g [8]byte, size int, fg, bg rgb565.Color) []byte {
	fgHi, fgLo := fg.Bytes()
	bgHi, bgLo := bg.Bytes()
	rowBytes := 16 * size
	buf := make([]byte, 0, 8*size*rowBytes)
	for row := 0; row < 8; row++ {
		rowStart := len(buf)
		for col := 0; col < 8; col++ {
			hi, lo := bgHi, bgLo
			if g[row]&(1<<uint(7-col)) != 0 {
				hi, lo = fgHi, fgLo
			}
			for i := 0; i < size; i++ {
				buf = append(buf, hi, lo)
			}
		}
		// Repeat the expanded row to scale vertically.
		for i := 1; i < size; i++ {
			buf = append(buf, buf[rowStart:rowStart+rowBytes]...)
		}
	}
	return buf
}

// DrawText draws text at (x, y), advancing the cursor 8*size pixels per
// character. A newline resets the cursor to x and advances y by one line
// height (8*size); the cursor also soft-wraps the same way when the next
// character's right edge would exceed the display width.
func (d *Dev) DrawText(x, y int, text string, size int, fg, bg rgb565.Color) error {
	if err := d.ready(); err != nil {
		return err
	}
	if size < 1 {
		size = 1
	}
	cw := 8 * size
	cx, cy := x, y
	for _, ch := range text {
		if ch == '\n' {
			cx = x
			cy += cw
			continue
		}
		if err := d.DrawChar(cx, cy, ch, size, fg, bg); err != nil {
			return err
		}
		cx += cw
		if cx > d.width-cw {
			cx = x
			cy += cw
		}
	}
	return nil
}

// DrawCenteredText draws text horizontally centered at row y. The text is
// not clipped or wrapped: a string wider than the display starts at a
// negative x, and the characters that fall off screen are dropped by
// DrawChar's own bounds check.
func (d *Dev) DrawCenteredText(text string, y, size int, fg, bg rgb565.Color) error {
	if size < 1 {
		size = 1
	}
	tw := utf8.RuneCountInString(text) * 8 * size
	return d.DrawText((d.width-tw)/2, y, text, size, fg, bg)
}

// DrawTextScale draws text with a possibly fractional scale factor.
//
// The 8x8 font has no sub-pixel scaling: a fractional scale is rounded up
// to the next whole glyph size, so scale 1.5 renders 16x16 characters. The
// cursor advances by the rounded size, keeping glyphs from overlapping.
func (d *Dev) DrawTextScale(x, y int, text string, scale float64, fg, bg rgb565.Color) error {
	size := int(math.Ceil(scale))
	if size < 1 {
		size = 1
	}
	return d.DrawText(x, y, text, size, fg, bg)
}

// DrawHeader draws a full-width bar across the top of the screen with the
// given text centered in it. The bar is 8*size+8 pixels tall, leaving a
// 4 pixel margin above and below the text.
func (d *Dev) DrawHeader(text string, size int, fg, bg rgb565.Color) error {
	if size < 1 {
		size = 1
	}
	if err := d.FillRectangle(0, 0, d.width, 8*size+8, bg); err != nil {
		return err
	}
	return d.DrawCenteredText(text, 4, size, fg, bg)
}

// DrawFooter draws a full-width bar across the bottom of the screen with the
// given text centered in it, sized like DrawHeader.
func (d *Dev) DrawFooter(text string, size int, fg, bg rgb565.Color) error {
	if size < 1 {
		size = 1
	}
	h := 8*size + 8
	if err := d.FillRectangle(0, d.height-h, d.width, h, bg); err != nil {
		return err
	}
	return d.DrawCenteredText(text, d.height-h+4, size, fg, bg)
}

// DrawSectionTitle draws a size-1 title with an underline two pixels below
// the text, as wide as the text itself.
func (d *Dev) DrawSectionTitle(x, y int, title string, c rgb565.Color) error {
	if err := d.DrawText(x, y, title, 1, c, rgb565.Black); err != nil {
		return err
	}
	return d.DrawHLine(x, y+10, utf8.RuneCountInString(title)*8, c)
}

// ClearGlyphCache drops all cached glyph expansions. Useful for callers
// that cycle through many color combinations and want the memory back.
func (d *Dev) ClearGlyphCache() {
	d.glyphCache = nil
}
