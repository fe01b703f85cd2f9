package st7796

import (
	"testing"

	"periph.io/x/devices/v3/st7796/font8x8"
	"periph.io/x/devices/v3/st7796/rgb565"
)

// countingFont wraps a glyph table and counts lookups, to observe whether
// the glyph cache short-circuits them.
type countingFont struct {
	font8x8.Font
	lookups int
}

func (f *countingFont) Glyph(ch rune) [8]byte {
	f.lookups++
	return f.Font.Glyph(ch)
}

func TestDrawCharWindow(t *testing.T) {
	d, rec := newTestDev()

	if err := d.DrawChar(10, 20, 'A', 1, rgb565.White, rgb565.Black); err != nil {
		t.Fatalf("DrawChar() error = %v", err)
	}

	if !bytesEqual(rec.frames[1].data, []byte{0x00, 0x0A, 0x00, 0x11}) {
		t.Errorf("CASET window = %#v, want 10..17", rec.frames[1].data)
	}
	if !bytesEqual(rec.frames[3].data, []byte{0x00, 0x14, 0x00, 0x1B}) {
		t.Errorf("PASET window = %#v, want 20..27", rec.frames[3].data)
	}
	writes := dataFramesAfterRAMWR(rec.frames)
	if len(writes) != 1 {
		t.Fatalf("got %d data writes, want 1", len(writes))
	}
	if len(writes[0].data) != 128 { // 8x8 pixels, 2 bytes each
		t.Errorf("pixel block size = %d, want 128", len(writes[0].data))
	}
}

func TestDrawCharScaled(t *testing.T) {
	d, rec := newTestDev()

	if err := d.DrawChar(0, 0, '7', 3, rgb565.Green, rgb565.Black); err != nil {
		t.Fatalf("DrawChar() error = %v", err)
	}

	// 24x24 pixel block.
	if !bytesEqual(rec.frames[1].data, []byte{0x00, 0x00, 0x00, 0x17}) {
		t.Errorf("CASET window = %#v, want 0..23", rec.frames[1].data)
	}
	writes := dataFramesAfterRAMWR(rec.frames)
	if len(writes) != 1 || len(writes[0].data) != 2*24*24 {
		t.Errorf("pixel block size wrong for size 3 glyph")
	}
}

func TestDrawCharOffscreenNoop(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		size int
	}{
		{"negative x", -1, 0, 1},
		{"negative y", 0, -1, 1},
		{"right edge overhang", 313, 0, 1},
		{"bottom edge overhang", 0, 473, 1},
		{"scaled overhang", 305, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, rec := newTestDev()
			if err := d.DrawChar(tt.x, tt.y, 'X', tt.size, rgb565.White, rgb565.Black); err != nil {
				t.Fatalf("DrawChar() error = %v", err)
			}
			if len(rec.frames) != 0 {
				t.Errorf("got %d transactions, want 0", len(rec.frames))
			}
		})
	}
}

func TestGlyphCacheHitSkipsLookup(t *testing.T) {
	d, rec := newTestDev()
	font := &countingFont{Font: font8x8.Basic}
	d.glyphs = font

	if err := d.DrawChar(0, 0, 'A', 2, rgb565.White, rgb565.Black); err != nil {
		t.Fatalf("DrawChar() error = %v", err)
	}
	first := dataFramesAfterRAMWR(rec.frames)[0].data

	if err := d.DrawChar(16, 0, 'A', 2, rgb565.White, rgb565.Black); err != nil {
		t.Fatalf("DrawChar() error = %v", err)
	}
	second := dataFramesAfterRAMWR(rec.frames)[0].data

	if font.lookups != 1 {
		t.Errorf("glyph lookups = %d, want 1 (second draw must hit the cache)", font.lookups)
	}
	if !bytesEqual(first, second) {
		t.Error("cached pixel block differs from the freshly expanded one")
	}
}

func TestGlyphCacheKeyedByStyle(t *testing.T) {
	d, _ := newTestDev()
	font := &countingFont{Font: font8x8.Basic}
	d.glyphs = font

	styles := []struct {
		size   int
		fg, bg rgb565.Color
	}{
		{1, rgb565.White, rgb565.Black},
		{2, rgb565.White, rgb565.Black},
		{1, rgb565.Red, rgb565.Black},
		{1, rgb565.White, rgb565.Blue},
	}
	for _, s := range styles {
		if err := d.DrawChar(0, 0, '5', s.size, s.fg, s.bg); err != nil {
			t.Fatalf("DrawChar() error = %v", err)
		}
	}
	if font.lookups != len(styles) {
		t.Errorf("glyph lookups = %d, want %d (each style is a distinct cache entry)", font.lookups, len(styles))
	}
	if len(d.glyphCache) != len(styles) {
		t.Errorf("cache entries = %d, want %d", len(d.glyphCache), len(styles))
	}
}

func TestGlyphCacheSkipsInfrequentChars(t *testing.T) {
	d, _ := newTestDev()
	font := &countingFont{Font: font8x8.Basic}
	d.glyphs = font

	for i := 0; i < 2; i++ {
		if err := d.DrawChar(0, 0, '(', 1, rgb565.White, rgb565.Black); err != nil {
			t.Fatalf("DrawChar() error = %v", err)
		}
	}
	if font.lookups != 2 {
		t.Errorf("glyph lookups = %d, want 2 (parenthesis must not be cached)", font.lookups)
	}
	if len(d.glyphCache) != 0 {
		t.Errorf("cache entries = %d, want 0", len(d.glyphCache))
	}
}

func TestGlyphCacheFoldsLowercase(t *testing.T) {
	d, _ := newTestDev()
	font := &countingFont{Font: font8x8.Basic}
	d.glyphs = font

	if err := d.DrawChar(0, 0, 'a', 1, rgb565.White, rgb565.Black); err != nil {
		t.Fatalf("DrawChar() error = %v", err)
	}
	if err := d.DrawChar(8, 0, 'A', 1, rgb565.White, rgb565.Black); err != nil {
		t.Fatalf("DrawChar() error = %v", err)
	}
	if font.lookups != 1 {
		t.Errorf("glyph lookups = %d, want 1 ('a' and 'A' share a cache entry)", font.lookups)
	}
}

func TestGlyphCacheLimit(t *testing.T) {
	d, _ := newTestDev()

	// Saturate the cache with synthetic entries, then draw a frequent
	// character that is not yet cached.
	d.glyphCache = make(map[glyphKey][]byte)
	for i := 0; i < glyphCacheLimit; i++ {
		d.glyphCache[glyphKey{ch: '0', size: i + 1000, fg: rgb565.White, bg: rgb565.Black}] = nil
	}
	if err := d.DrawChar(0, 0, 'Z', 1, rgb565.White, rgb565.Black); err != nil {
		t.Fatalf("DrawChar() error = %v", err)
	}
	if len(d.glyphCache) != glyphCacheLimit {
		t.Errorf("cache entries = %d, want the limit %d to hold", len(d.glyphCache), glyphCacheLimit)
	}
}

func TestClearGlyphCache(t *testing.T) {
	d, _ := newTestDev()
	if err := d.DrawChar(0, 0, '1', 1, rgb565.White, rgb565.Black); err != nil {
		t.Fatalf("DrawChar() error = %v", err)
	}
	if len(d.glyphCache) == 0 {
		t.Fatal("expected a cache entry after drawing a digit")
	}
	d.ClearGlyphCache()
	if len(d.glyphCache) != 0 {
		t.Error("cache not empty after ClearGlyphCache")
	}
}

func TestUnknownCharUsesPlaceholder(t *testing.T) {
	d, rec := newTestDev()

	if err := d.DrawChar(0, 0, 'é', 1, rgb565.White, rgb565.Black); err != nil {
		t.Fatalf("DrawChar() error = %v", err)
	}
	unknown := dataFramesAfterRAMWR(rec.frames)[0].data

	if err := d.DrawChar(0, 0, '?', 1, rgb565.White, rgb565.Black); err != nil {
		t.Fatalf("DrawChar() error = %v", err)
	}
	placeholder := dataFramesAfterRAMWR(rec.frames)[0].data

	if !bytesEqual(unknown, placeholder) {
		t.Error("unknown character does not render the placeholder glyph")
	}
}

func TestExpandGlyph(t *testing.T) {
	g := [8]byte{0x80} // single set pixel top-left, rest background
	fg, bg := rgb565.Red, rgb565.Blue
	fgHi, fgLo := fg.Bytes()
	bgHi, bgLo := bg.Bytes()

	buf := expandGlyph(g, 2, fg, bg)
	if len(buf) != 2*16*16 {
		t.Fatalf("buffer size = %d, want %d", len(buf), 2*16*16)
	}
	// The set bit becomes a 2x2 foreground block.
	rowBytes := 2 * 16
	for _, off := range []int{0, 2, rowBytes, rowBytes + 2} {
		if buf[off] != fgHi || buf[off+1] != fgLo {
			t.Errorf("offset %d: = %#02x %#02x, want foreground", off, buf[off], buf[off+1])
		}
	}
	// Neighboring pixel and the rows below are background.
	for _, off := range []int{4, 2 * rowBytes} {
		if buf[off] != bgHi || buf[off+1] != bgLo {
			t.Errorf("offset %d: = %#02x %#02x, want background", off, buf[off], buf[off+1])
		}
	}
}

func TestDrawTextCursor(t *testing.T) {
	d, rec := newTestDev()

	if err := d.DrawText(10, 20, "AB", 1, rgb565.White, rgb565.Black); err != nil {
		t.Fatalf("DrawText() error = %v", err)
	}

	caset := commandFrames(rec.frames, cmdCASET)
	if len(caset) != 2 {
		t.Fatalf("got %d characters drawn, want 2", len(caset))
	}
	if !bytesEqual(rec.frames[caset[0]+1].data, []byte{0x00, 0x0A, 0x00, 0x11}) {
		t.Errorf("first char column window = %#v, want 10..17", rec.frames[caset[0]+1].data)
	}
	if !bytesEqual(rec.frames[caset[1]+1].data, []byte{0x00, 0x12, 0x00, 0x19}) {
		t.Errorf("second char column window = %#v, want 18..25", rec.frames[caset[1]+1].data)
	}
}

func TestDrawTextNewline(t *testing.T) {
	d, rec := newTestDev()

	if err := d.DrawText(10, 0, "A\nB", 2, rgb565.White, rgb565.Black); err != nil {
		t.Fatalf("DrawText() error = %v", err)
	}

	caset := commandFrames(rec.frames, cmdCASET)
	paset := commandFrames(rec.frames, cmdPASET)
	if len(caset) != 2 || len(paset) != 2 {
		t.Fatalf("got %d characters drawn, want 2", len(caset))
	}
	// 'B' returns to the start x, one line (16 pixels) down.
	if !bytesEqual(rec.frames[caset[1]+1].data, []byte{0x00, 0x0A, 0x00, 0x19}) {
		t.Errorf("second char column window = %#v, want 10..25", rec.frames[caset[1]+1].data)
	}
	if !bytesEqual(rec.frames[paset[1]+1].data, []byte{0x00, 0x10, 0x00, 0x1F}) {
		t.Errorf("second char row window = %#v, want 16..31", rec.frames[paset[1]+1].data)
	}
}

func TestDrawTextSoftWrap(t *testing.T) {
	d, rec := newTestDev()

	// First char at x=312 fills up to the right edge; the second wraps
	// back to the start x on the next line.
	if err := d.DrawText(312, 0, "AB", 1, rgb565.White, rgb565.Black); err != nil {
		t.Fatalf("DrawText() error = %v", err)
	}

	caset := commandFrames(rec.frames, cmdCASET)
	paset := commandFrames(rec.frames, cmdPASET)
	if len(caset) != 2 {
		t.Fatalf("got %d characters drawn, want 2", len(caset))
	}
	if !bytesEqual(rec.frames[caset[0]+1].data, []byte{0x01, 0x38, 0x01, 0x3F}) {
		t.Errorf("first char column window = %#v, want 312..319", rec.frames[caset[0]+1].data)
	}
	if !bytesEqual(rec.frames[caset[1]+1].data, []byte{0x01, 0x38, 0x01, 0x3F}) {
		t.Errorf("wrapped char column window = %#v, want 312..319", rec.frames[caset[1]+1].data)
	}
	if !bytesEqual(rec.frames[paset[1]+1].data, []byte{0x00, 0x08, 0x00, 0x0F}) {
		t.Errorf("wrapped char row window = %#v, want 8..15", rec.frames[paset[1]+1].data)
	}
}

func TestDrawCenteredText(t *testing.T) {
	d, rec := newTestDev()

	// 2 chars * 8 px = 16 px wide, centered on 320: x = 152.
	if err := d.DrawCenteredText("AB", 0, 1, rgb565.White, rgb565.Black); err != nil {
		t.Fatalf("DrawCenteredText() error = %v", err)
	}

	caset := commandFrames(rec.frames, cmdCASET)
	if len(caset) != 2 {
		t.Fatalf("got %d characters drawn, want 2", len(caset))
	}
	if !bytesEqual(rec.frames[caset[0]+1].data, []byte{0x00, 0x98, 0x00, 0x9F}) {
		t.Errorf("first char column window = %#v, want 152..159", rec.frames[caset[0]+1].data)
	}
}

func TestDrawTextScaleRoundsUp(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		side  int // expected glyph side in pixels
	}{
		{"fractional rounds up", 1.5, 16},
		{"integral unchanged", 2.0, 16},
		{"below one clamps", 0.3, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, rec := newTestDev()
			if err := d.DrawTextScale(0, 0, "A", tt.scale, rgb565.White, rgb565.Black); err != nil {
				t.Fatalf("DrawTextScale() error = %v", err)
			}
			want := []byte{0x00, 0x00, 0x00, byte(tt.side - 1)}
			if !bytesEqual(rec.frames[1].data, want) {
				t.Errorf("column window = %#v, want 0..%d", rec.frames[1].data, tt.side-1)
			}
		})
	}
}

func TestDrawHeader(t *testing.T) {
	d, rec := newTestDev()

	if err := d.DrawHeader("OK", 2, rgb565.Yellow, rgb565.Blue); err != nil {
		t.Fatalf("DrawHeader() error = %v", err)
	}

	// Bar: full width, 24 pixels tall at size 2.
	if !bytesEqual(rec.frames[1].data, []byte{0x00, 0x00, 0x01, 0x3F}) {
		t.Errorf("bar column window = %#v, want 0..319", rec.frames[1].data)
	}
	if !bytesEqual(rec.frames[3].data, []byte{0x00, 0x00, 0x00, 0x17}) {
		t.Errorf("bar row window = %#v, want 0..23", rec.frames[3].data)
	}

	// Centered text: 2 chars * 16 px = 32 px wide, x = 144, y = 4.
	caset := commandFrames(rec.frames, cmdCASET)
	paset := commandFrames(rec.frames, cmdPASET)
	if len(caset) != 3 {
		t.Fatalf("got %d address windows, want 3 (bar plus two characters)", len(caset))
	}
	if !bytesEqual(rec.frames[caset[1]+1].data, []byte{0x00, 0x90, 0x00, 0x9F}) {
		t.Errorf("first char column window = %#v, want 144..159", rec.frames[caset[1]+1].data)
	}
	if !bytesEqual(rec.frames[paset[1]+1].data, []byte{0x00, 0x04, 0x00, 0x13}) {
		t.Errorf("first char row window = %#v, want 4..19", rec.frames[paset[1]+1].data)
	}
}

func TestDrawFooter(t *testing.T) {
	d, rec := newTestDev()

	if err := d.DrawFooter("UP", 1, rgb565.Green, rgb565.Black); err != nil {
		t.Fatalf("DrawFooter() error = %v", err)
	}

	// Bar: full width, 16 pixels tall at the bottom of a 480 row panel.
	if !bytesEqual(rec.frames[3].data, []byte{0x01, 0xD0, 0x01, 0xDF}) {
		t.Errorf("bar row window = %#v, want 464..479", rec.frames[3].data)
	}

	// Text sits 4 pixels below the bar top.
	paset := commandFrames(rec.frames, cmdPASET)
	if len(paset) != 3 {
		t.Fatalf("got %d address windows, want 3 (bar plus two characters)", len(paset))
	}
	if !bytesEqual(rec.frames[paset[1]+1].data, []byte{0x01, 0xD4, 0x01, 0xDB}) {
		t.Errorf("first char row window = %#v, want 468..475", rec.frames[paset[1]+1].data)
	}
}

func TestDrawSectionTitle(t *testing.T) {
	d, rec := newTestDev()

	if err := d.DrawSectionTitle(20, 30, "CPU", rgb565.Yellow); err != nil {
		t.Fatalf("DrawSectionTitle() error = %v", err)
	}

	caset := commandFrames(rec.frames, cmdCASET)
	if len(caset) != 4 { // three characters plus the underline
		t.Fatalf("got %d address windows, want 4", len(caset))
	}
	// Underline: 24 px wide at y+10.
	last := len(caset) - 1
	if !bytesEqual(rec.frames[caset[last]+1].data, []byte{0x00, 0x14, 0x00, 0x2B}) {
		t.Errorf("underline column window = %#v, want 20..43", rec.frames[caset[last]+1].data)
	}
	paset := commandFrames(rec.frames, cmdPASET)
	if !bytesEqual(rec.frames[paset[len(paset)-1]+1].data, []byte{0x00, 0x28, 0x00, 0x28}) {
		t.Errorf("underline row window = %#v, want 40..40", rec.frames[paset[len(paset)-1]+1].data)
	}
}
