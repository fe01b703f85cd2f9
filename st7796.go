// Package st7796 controls an ST7796 TFT display via 4-wire SPI.
//
// The ST7796 is a 16-bit color (RGB565) TFT controller driving panels of up
// to 320x480 pixels, commonly found on Raspberry Pi SPI display hats.
//
// See the examples for how to use this package.
package st7796

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"periph.io/x/devices/v3/st7796/font8x8"
)

// Default panel dimensions at Rotation0.
const (
	DefaultWidth  = 320
	DefaultHeight = 480
)

// ST7796 command set, subset used by this driver.
const (
	cmdNOP     = 0x00
	cmdSWRESET = 0x01 // Software reset
	cmdSLPIN   = 0x10 // Sleep in
	cmdSLPOUT  = 0x11 // Sleep out
	cmdINVON   = 0x21 // Display inversion on
	cmdDISPOFF = 0x28 // Display off
	cmdDISPON  = 0x29 // Display on
	cmdCASET   = 0x2A // Column address set
	cmdPASET   = 0x2B // Row address set
	cmdRAMWR   = 0x2C // Memory write
	cmdMADCTL  = 0x36 // Memory data access control
	cmdCOLMOD  = 0x3A // Interface pixel format
	cmdDIC     = 0xB4 // Display inversion control
	cmdEM      = 0xB7 // Entry mode set
	cmdPWR1    = 0xC0 // Power control 1
	cmdPWR2    = 0xC1 // Power control 2
	cmdPWR3    = 0xC2 // Power control 3
	cmdVCMPCTL = 0xC5 // VCOM control
	cmdPGC     = 0xE0 // Positive gamma control
	cmdNGC     = 0xE1 // Negative gamma control
	cmdDOCA    = 0xE8 // Display output ctrl adjust
	cmdCSCON   = 0xF0 // Command set control
)

// Rotation is the clock-wise display orientation.
type Rotation uint8

const (
	Rotation0   Rotation = iota // portrait, 320x480
	Rotation90                  // landscape, 480x320
	Rotation180                 // portrait flipped
	Rotation270                 // landscape flipped
)

// madctlValues maps each rotation to its memory data access control byte.
var madctlValues = [4]byte{0x48, 0x28, 0x88, 0xE8}

// state tracks the controller lifecycle. The controller ignores commands
// until the reset sequence completed, and pixel writes are only meaningful
// once the initialization sequence ran.
type state uint8

const (
	stateUninitialized state = iota
	stateResetting
	stateConfiguring
	stateReady
	stateFaulted
)

// Opts is the configuration for the ST7796 display.
type Opts struct {
	// Panel dimensions in pixels at Rotation0 (default: 320x480).
	W int
	H int

	// Rotation applied at startup.
	Rotation Rotation

	// Frequency is the SPI clock rate (default: 80MHz).
	Frequency physic.Frequency

	// RST is the hardware reset pin. If nil, a software reset command is
	// used instead.
	RST gpio.PinIO

	// CS is the chip-select pin, for boards where the SPI port does not
	// drive one. Nil when chip-select is handled by the port.
	CS gpio.PinOut

	// Glyphs is the bitmap font used by the text renderer
	// (default: font8x8.Basic).
	Glyphs GlyphTable
}

// Dev is the device handle for the ST7796 display.
type Dev struct {
	// Communication
	c   conn.Conn   // SPI connection
	dc  gpio.PinOut // Data/Command pin
	cs  gpio.PinOut // Chip-select pin (optional)
	rst gpio.PinIO  // Reset pin (optional)

	// Display geometry. width and height follow the current rotation;
	// panelW and panelH are fixed.
	panelW, panelH int
	width, height  int
	rot            Rotation

	// Lifecycle
	state state

	// Transfer buffers
	cmdBuf [1]byte
	winBuf [4]byte
	pixBuf []byte

	// Text renderer
	glyphs     GlyphTable
	glyphCache map[glyphKey][]byte
}

// NewSPI creates a new ST7796 device connected via SPI.
//
// The SPI port is configured for Mode0 (CPOL=0, CPHA=0), 8-bit transfers.
// The dc (Data/Command) GPIO pin must be provided and configured as an
// output.
//
// opts can be nil to use defaults (320x480 panel, 80MHz). The display is
// reset and initialized before NewSPI returns; construction fails outright
// if any control line cannot be claimed or the bus cannot be opened, as
// there is no safe partially-initialized state to resume from.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("st7796: dc pin is required")
	}

	// Apply defaults and validate options
	if opts == nil {
		opts = &Opts{}
	}
	w, h := opts.W, opts.H
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}
	if w < 1 || w > 0xFFFF || h < 1 || h > 0xFFFF {
		return nil, errors.New("st7796: width and height must be between 1 and 65535")
	}
	f := opts.Frequency
	if f == 0 {
		f = 80 * physic.MegaHertz
	}
	glyphs := opts.Glyphs
	if glyphs == nil {
		glyphs = font8x8.Basic
	}

	c, err := p.Connect(f, spi.Mode0, 8)
	if err != nil {
		return nil, &TransportError{Op: "connect", Err: err}
	}

	d := &Dev{
		c:      c,
		dc:     dc,
		cs:     opts.CS,
		rst:    opts.RST,
		panelW: w,
		panelH: h,
		width:  w,
		height: h,
		pixBuf: make([]byte, 2*fillChunkPixels),
		glyphs: glyphs,
	}

	// Claim the control lines by driving their idle levels.
	if err := dc.Out(gpio.High); err != nil {
		return nil, &LineControlError{Line: dc.Name(), Err: err}
	}
	if d.cs != nil {
		if err := d.cs.Out(gpio.High); err != nil {
			// DC is already claimed at this point; release it rather than
			// leak the line from a failed construction.
			d.dc.Halt()
			return nil, &LineControlError{Line: d.cs.Name(), Err: err}
		}
	}

	if err := d.bringUp(opts.Rotation); err != nil {
		// Release the claimed lines; a failed construction must not leak
		// them across process restarts.
		d.Close()
		return nil, err
	}
	return d, nil
}

func (d *Dev) bringUp(r Rotation) error {
	if err := d.Reset(); err != nil {
		return err
	}
	if err := d.Initialize(); err != nil {
		return err
	}
	return d.SetRotation(r)
}

// Reset performs the mandatory controller reset sequence.
//
// With a hardware reset pin the line is driven high for 50ms, low for 100ms
// and high again for 50ms; the controller ignores commands issued before
// this completes. Without one, the software reset command is sent instead.
// Initialize must be called afterwards to bring the display back up.
func (d *Dev) Reset() error {
	d.state = stateResetting
	if d.rst == nil {
		if err := d.sendCommand(cmdSWRESET); err != nil {
			return err
		}
		time.Sleep(150 * time.Millisecond)
	} else {
		seq := []struct {
			level gpio.Level
			hold  time.Duration
		}{
			{gpio.High, 50 * time.Millisecond},
			{gpio.Low, 100 * time.Millisecond},
			{gpio.High, 50 * time.Millisecond},
		}
		for _, s := range seq {
			if err := d.rst.Out(s.level); err != nil {
				return d.fault(&LineControlError{Line: d.rst.Name(), Err: err})
			}
			time.Sleep(s.hold)
		}
	}
	d.state = stateConfiguring
	return nil
}

// Initialize sends the ST7796 initialization sequence and turns the display
// on. Reset must have been called first.
//
// The command and parameter bytes are the vendor calibration values for this
// controller; they are reproduced verbatim rather than derived.
func (d *Dev) Initialize() error {
	if d.state != stateConfiguring {
		if d.state == stateFaulted {
			return errFaulted
		}
		return errors.New("st7796: call Reset before Initialize")
	}

	if err := d.sendCommand(cmdSLPOUT); err != nil {
		return err
	}
	time.Sleep(120 * time.Millisecond)

	seq := [][]byte{
		{cmdMADCTL, madctlValues[Rotation0]},
		{cmdCOLMOD, 0x55}, // 16 bits per pixel, RGB565
		{cmdCSCON, 0xC3},  // enable command part 2
		{cmdCSCON, 0x96},
		{cmdDIC, 0x02},
		{cmdEM, 0xC6},
		{cmdPWR1, 0xC0, 0x00},
		{cmdPWR2, 0x13},
		{cmdPWR3, 0xA7},
		{cmdVCMPCTL, 0x21},
		{cmdDOCA, 0x40, 0x8A, 0x1B, 0x1B, 0x23, 0x0A, 0xAC, 0x33},
		// Positive gamma curve
		{cmdPGC, 0xD2, 0x05, 0x08, 0x06, 0x05, 0x02, 0x2A, 0x44,
			0x46, 0x39, 0x15, 0x15, 0x2D, 0x32},
		// Negative gamma curve
		{cmdNGC, 0x96, 0x08, 0x0C, 0x09, 0x09, 0x25, 0x2E, 0x43,
			0x42, 0x35, 0x11, 0x11, 0x28, 0x2E},
		{cmdCSCON, 0x3C}, // disable command part 2
		{cmdCSCON, 0x69},
	}
	for _, s := range seq {
		if err := d.writeCmd(s[0], s[1:]...); err != nil {
			return err
		}
	}
	time.Sleep(120 * time.Millisecond)

	if err := d.sendCommand(cmdINVON); err != nil {
		return err
	}
	if err := d.sendCommand(cmdDISPON); err != nil {
		return err
	}
	d.state = stateReady
	return nil
}

// Rotation returns the current rotation of the display.
func (d *Dev) Rotation() Rotation {
	return d.rot
}

// SetRotation sets the clock-wise rotation of the display. Values wrap
// modulo 4. Rotations 90 and 270 swap the logical width and height.
func (d *Dev) SetRotation(r Rotation) error {
	if err := d.ready(); err != nil {
		return err
	}
	r %= 4
	if err := d.writeCmd(cmdMADCTL, madctlValues[r]); err != nil {
		return err
	}
	d.rot = r
	if r == Rotation90 || r == Rotation270 {
		d.width, d.height = d.panelH, d.panelW
	} else {
		d.width, d.height = d.panelW, d.panelH
	}
	return nil
}

// Size returns the current logical size of the display, following rotation.
func (d *Dev) Size() (w, h int) {
	return d.width, d.height
}

// setAddressWindow arms the controller to accept a stream of pixel data for
// the inclusive rectangle (x0,y0)-(x1,y1): column address set, row address
// set, then memory write, with each coordinate as a big-endian 16-bit pair.
// The controller auto-increments row-major from the top-left corner.
//
// Out-of-range windows are rejected locally: the controller would silently
// corrupt unrelated framebuffer regions.
func (d *Dev) setAddressWindow(x0, y0, x1, y1 int) error {
	if x0 < 0 || y0 < 0 || x0 > x1 || y0 > y1 || x1 >= d.width || y1 >= d.height {
		return ErrOutOfBounds
	}
	d.winBuf = [4]byte{byte(x0 >> 8), byte(x0), byte(x1 >> 8), byte(x1)}
	if err := d.sendCommand(cmdCASET); err != nil {
		return err
	}
	if err := d.sendData(d.winBuf[:]); err != nil {
		return err
	}
	d.winBuf = [4]byte{byte(y0 >> 8), byte(y0), byte(y1 >> 8), byte(y1)}
	if err := d.sendCommand(cmdPASET); err != nil {
		return err
	}
	if err := d.sendData(d.winBuf[:]); err != nil {
		return err
	}
	return d.sendCommand(cmdRAMWR)
}

// sendCommand sends a single command byte as one complete bus transaction:
// DC low, chip select asserted, one byte, chip select released.
func (d *Dev) sendCommand(cmd byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return d.fault(&LineControlError{Line: d.dc.Name(), Err: err})
	}
	if err := d.csAssert(); err != nil {
		return err
	}
	d.cmdBuf[0] = cmd
	if err := d.c.Tx(d.cmdBuf[:], nil); err != nil {
		d.csRelease()
		return d.fault(&TransportError{Op: "command write", Err: err})
	}
	return d.csRelease()
}

// sendData sends a slice of data bytes as one complete bus transaction:
// DC high, chip select asserted, the whole slice, chip select released.
func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return d.fault(&LineControlError{Line: d.dc.Name(), Err: err})
	}
	if err := d.csAssert(); err != nil {
		return err
	}
	if err := d.c.Tx(data, nil); err != nil {
		d.csRelease()
		return d.fault(&TransportError{Op: "data write", Err: err})
	}
	return d.csRelease()
}

// writeCmd issues a command with optional parameter bytes.
func (d *Dev) writeCmd(cmd byte, args ...byte) error {
	if err := d.sendCommand(cmd); err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	return d.sendData(args)
}

func (d *Dev) csAssert() error {
	if d.cs == nil {
		return nil
	}
	if err := d.cs.Out(gpio.Low); err != nil {
		return d.fault(&LineControlError{Line: d.cs.Name(), Err: err})
	}
	return nil
}

func (d *Dev) csRelease() error {
	if d.cs == nil {
		return nil
	}
	if err := d.cs.Out(gpio.High); err != nil {
		return d.fault(&LineControlError{Line: d.cs.Name(), Err: err})
	}
	return nil
}

// fault marks the device as faulted and passes err through. After a fault
// the controller addressing state is indeterminate and only Reset followed
// by Initialize recovers.
func (d *Dev) fault(err error) error {
	d.state = stateFaulted
	return err
}

// ready gates every drawing operation on the controller lifecycle.
func (d *Dev) ready() error {
	switch d.state {
	case stateReady:
		return nil
	case stateFaulted:
		return errFaulted
	default:
		return errNotInitialized
	}
}

// Halt puts the display to sleep and turns it off. The device must be
// re-initialized with Reset and Initialize before further use.
func (d *Dev) Halt() error {
	var err error
	if d.state == stateReady {
		err = d.sendCommand(cmdDISPOFF)
		if err == nil {
			err = d.sendCommand(cmdSLPIN)
		}
	}
	d.state = stateUninitialized
	return err
}

// Close halts the display and releases the claimed control lines. The SPI
// port itself belongs to the caller and is not closed.
func (d *Dev) Close() error {
	err := d.Halt()
	if hErr := d.dc.Halt(); err == nil {
		err = hErr
	}
	if d.cs != nil {
		if hErr := d.cs.Halt(); err == nil {
			err = hErr
		}
	}
	if d.rst != nil {
		if hErr := d.rst.Halt(); err == nil {
			err = hErr
		}
	}
	return err
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("st7796.Dev{%dx%d}", d.width, d.height)
}

var _ conn.Resource = &Dev{}
var _ display.Drawer = &Dev{}
