// Package font8x8 provides a fixed 8x8 pixel bitmap font for text rendering
// on small displays.
//
// Each glyph is 8 bytes, one byte per row from top to bottom, with bit 7
// being the leftmost pixel. The font is uppercase only: lowercase letters are
// folded to their uppercase form, and characters without a bitmap fall back
// to the '?' placeholder.
package font8x8

// Font maps characters to their 8x8 bitmaps.
type Font map[rune][8]byte

// Glyph returns the bitmap for ch.
//
// Lowercase ASCII letters are folded to uppercase. Characters not present in
// the font return the '?' placeholder bitmap.
func (f Font) Glyph(ch rune) [8]byte {
	if ch >= 'a' && ch <= 'z' {
		ch -= 'a' - 'A'
	}
	g, ok := f[ch]
	if !ok {
		return f['?']
	}
	return g
}

// Has reports whether f contains a bitmap for ch after case folding.
func (f Font) Has(ch rune) bool {
	if ch >= 'a' && ch <= 'z' {
		ch -= 'a' - 'A'
	}
	_, ok := f[ch]
	return ok
}

// Basic covers the printable ASCII range from space to underscore: digits,
// uppercase letters and common punctuation.
var Basic = Font{
	' ':  {0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	'!':  {0x10, 0x10, 0x10, 0x10, 0x10, 0x00, 0x10, 0x00},
	'"':  {0x28, 0x28, 0x28, 0x00, 0x00, 0x00, 0x00, 0x00},
	'#':  {0x28, 0x28, 0xFE, 0x28, 0xFE, 0x28, 0x28, 0x00},
	'$':  {0x10, 0x3C, 0x50, 0x38, 0x14, 0x78, 0x10, 0x00},
	'%':  {0x62, 0x64, 0x08, 0x10, 0x26, 0x46, 0x00, 0x00},
	'&':  {0x30, 0x48, 0x48, 0x30, 0x4A, 0x44, 0x3A, 0x00},
	'\'': {0x10, 0x10, 0x20, 0x00, 0x00, 0x00, 0x00, 0x00},
	'(':  {0x08, 0x10, 0x20, 0x20, 0x20, 0x10, 0x08, 0x00},
	')':  {0x20, 0x10, 0x08, 0x08, 0x08, 0x10, 0x20, 0x00},
	'*':  {0x10, 0x54, 0x38, 0x10, 0x38, 0x54, 0x10, 0x00},
	'+':  {0x00, 0x10, 0x10, 0x7C, 0x10, 0x10, 0x00, 0x00},
	',':  {0x00, 0x00, 0x00, 0x00, 0x00, 0x18, 0x18, 0x30},
	'-':  {0x00, 0x00, 0x00, 0x7C, 0x00, 0x00, 0x00, 0x00},
	'.':  {0x00, 0x00, 0x00, 0x00, 0x00, 0x18, 0x18, 0x00},
	'/':  {0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x00},
	'0':  {0x38, 0x44, 0x4C, 0x54, 0x64, 0x44, 0x38, 0x00},
	'1':  {0x10, 0x30, 0x10, 0x10, 0x10, 0x10, 0x38, 0x00},
	'2':  {0x38, 0x44, 0x04, 0x18, 0x20, 0x40, 0x7C, 0x00},
	'3':  {0x38, 0x44, 0x04, 0x38, 0x04, 0x44, 0x38, 0x00},
	'4':  {0x08, 0x18, 0x28, 0x48, 0x7C, 0x08, 0x08, 0x00},
	'5':  {0x7C, 0x40, 0x78, 0x04, 0x04, 0x44, 0x38, 0x00},
	'6':  {0x18, 0x20, 0x40, 0x78, 0x44, 0x44, 0x38, 0x00},
	'7':  {0x7C, 0x04, 0x08, 0x10, 0x20, 0x20, 0x20, 0x00},
	'8':  {0x38, 0x44, 0x44, 0x38, 0x44, 0x44, 0x38, 0x00},
	'9':  {0x38, 0x44, 0x44, 0x3C, 0x04, 0x08, 0x30, 0x00},
	':':  {0x00, 0x18, 0x18, 0x00, 0x18, 0x18, 0x00, 0x00},
	';':  {0x00, 0x18, 0x18, 0x00, 0x18, 0x18, 0x30, 0x00},
	'<':  {0x08, 0x10, 0x20, 0x40, 0x20, 0x10, 0x08, 0x00},
	'=':  {0x00, 0x00, 0x7C, 0x00, 0x7C, 0x00, 0x00, 0x00},
	'>':  {0x20, 0x10, 0x08, 0x04, 0x08, 0x10, 0x20, 0x00},
	'?':  {0x38, 0x44, 0x04, 0x08, 0x10, 0x00, 0x10, 0x00},
	'@':  {0x38, 0x44, 0x5C, 0x54, 0x5C, 0x40, 0x38, 0x00},
	'A':  {0x38, 0x44, 0x44, 0x7C, 0x44, 0x44, 0x44, 0x00},
	'B':  {0x78, 0x44, 0x44, 0x78, 0x44, 0x44, 0x78, 0x00},
	'C':  {0x38, 0x44, 0x40, 0x40, 0x40, 0x44, 0x38, 0x00},
	'D':  {0x70, 0x48, 0x44, 0x44, 0x44, 0x48, 0x70, 0x00},
	'E':  {0x7C, 0x40, 0x40, 0x78, 0x40, 0x40, 0x7C, 0x00},
	'F':  {0x7C, 0x40, 0x40, 0x78, 0x40, 0x40, 0x40, 0x00},
	'G':  {0x38, 0x44, 0x40, 0x5C, 0x44, 0x44, 0x3C, 0x00},
	'H':  {0x44, 0x44, 0x44, 0x7C, 0x44, 0x44, 0x44, 0x00},
	'I':  {0x38, 0x10, 0x10, 0x10, 0x10, 0x10, 0x38, 0x00},
	'J':  {0x1C, 0x08, 0x08, 0x08, 0x08, 0x48, 0x30, 0x00},
	'K':  {0x44, 0x48, 0x50, 0x60, 0x50, 0x48, 0x44, 0x00},
	'L':  {0x40, 0x40, 0x40, 0x40, 0x40, 0x40, 0x7C, 0x00},
	'M':  {0x44, 0x6C, 0x54, 0x54, 0x44, 0x44, 0x44, 0x00},
	'N':  {0x44, 0x64, 0x54, 0x4C, 0x44, 0x44, 0x44, 0x00},
	'O':  {0x38, 0x44, 0x44, 0x44, 0x44, 0x44, 0x38, 0x00},
	'P':  {0x78, 0x44, 0x44, 0x78, 0x40, 0x40, 0x40, 0x00},
	'Q':  {0x38, 0x44, 0x44, 0x44, 0x54, 0x48, 0x34, 0x00},
	'R':  {0x78, 0x44, 0x44, 0x78, 0x50, 0x48, 0x44, 0x00},
	'S':  {0x38, 0x44, 0x40, 0x38, 0x04, 0x44, 0x38, 0x00},
	'T':  {0x7C, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x00},
	'U':  {0x44, 0x44, 0x44, 0x44, 0x44, 0x44, 0x38, 0x00},
	'V':  {0x44, 0x44, 0x44, 0x44, 0x44, 0x28, 0x10, 0x00},
	'W':  {0x44, 0x44, 0x44, 0x54, 0x54, 0x6C, 0x44, 0x00},
	'X':  {0x44, 0x44, 0x28, 0x10, 0x28, 0x44, 0x44, 0x00},
	'Y':  {0x44, 0x44, 0x28, 0x10, 0x10, 0x10, 0x10, 0x00},
	'Z':  {0x7C, 0x04, 0x08, 0x10, 0x20, 0x40, 0x7C, 0x00},
	'[':  {0x38, 0x20, 0x20, 0x20, 0x20, 0x20, 0x38, 0x00},
	'\\': {0x80, 0x40, 0x20, 0x10, 0x08, 0x04, 0x02, 0x00},
	']':  {0x38, 0x08, 0x08, 0x08, 0x08, 0x08, 0x38, 0x00},
	'^':  {0x10, 0x28, 0x44, 0x00, 0x00, 0x00, 0x00, 0x00},
	'_':  {0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x7C},
}
