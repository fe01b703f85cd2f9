// Package st7796 controls an ST7796 TFT display via 4-wire SPI.
//
// The ST7796 is a 262K-color TFT LCD controller driving panels of up to
// 320x480 pixels. This driver speaks 16-bit RGB565 over SPI with discrete
// GPIO control lines, and implements the display.Drawer interface from
// periph.io.
//
// # Display Characteristics
//
// - 16-bit RGB565 color, two bytes per pixel, high byte first
// - 320x480 native resolution, four clock-wise rotations
// - Hardware address window with automatic row-major increment
// - Bounded transfer chunks: large fills are split into 1KiB transactions
//
// # Hardware Connection
//
// Connect the ST7796 display to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → SPI Chip Select (or a GPIO via Opts.CS)
//	RST         → Optional: GPIO for hardware reset
//
// # Basic Usage
//
// Example of creating and using the display:
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/st7796"
//		"periph.io/x/devices/v3/st7796/rgb565"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open SPI bus
//		spiBus, _ := spireg.Open("")
//
//		// Get Data/Command and Reset GPIO pins
//		dcPin := gpioreg.ByName("GPIO5")
//		rstPin := gpioreg.ByName("GPIO6")
//
//		// Create device
//		dev, _ := st7796.NewSPI(spiBus, dcPin, &st7796.Opts{
//			RST:      rstPin,
//			Rotation: st7796.Rotation90,
//		})
//		defer dev.Close()
//
//		// Paint the screen and draw some text
//		dev.FillScreen(rgb565.Black)
//		dev.DrawCenteredText("HELLO", 20, 2, rgb565.Yellow, rgb565.Black)
//		dev.FillRectangle(20, 70, 90, 60, rgb565.Red)
//	}
//
// # Reset and Initialization
//
// The controller ignores commands until its reset sequence completed. With
// a hardware reset pin (Opts.RST) the driver holds the line high for 50ms,
// low for 100ms and high again for 50ms; without one it falls back to the
// software reset command. NewSPI then sends the vendor initialization
// sequence (sleep out, RGB565 pixel format, power and gamma calibration,
// inversion on, display on) before returning.
//
// After a transport error mid-operation the controller addressing state is
// indeterminate; recover with:
//
//	dev.Reset()
//	dev.Initialize()
//
// # Drawing
//
// Solid fills go through the chunked fill engine:
//
//	dev.FillScreen(rgb565.Black)
//	dev.FillRectangle(10, 10, 100, 50, rgb565.Green)
//	dev.SetPixel(0, 0, rgb565.Blue)
//
// Arbitrary images are streamed with the display.Drawer interface. Use the
// rgb565.Image type to avoid per-pixel color conversion:
//
//	img := rgb565.NewImage(dev.Bounds())
//	// ... set pixels ...
//	dev.Draw(dev.Bounds(), img, image.Point{})
//
// There is no local frame buffer and no differential updates: every call
// writes exactly the pixels it names.
//
// # Text
//
// The built-in renderer expands an 8x8 bitmap font (package font8x8) by an
// integer size factor. Frequently redrawn characters (digits, separators,
// uppercase letters) are cached per (char, size, fg, bg) so status screens
// do not re-expand glyphs on every refresh:
//
//	dev.DrawText(10, 10, "CPU: 42%", 2, rgb565.White, rgb565.Black)
//	dev.DrawCenteredText("TITLE", 0, 3, rgb565.Yellow, rgb565.Black)
//
// # Rotation
//
// Four clock-wise rotations are supported; 90 and 270 swap the logical
// width and height:
//
//	dev.SetRotation(st7796.Rotation90) // 480x320
//
// # Datasheet
//
// For detailed register descriptions and timing information, see:
// https://www.displayfuture.com/Display/datasheet/controller/ST7796s.pdf
//
// # Compatibility with periph.io
//
// This driver implements the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
//
// It can be used with any periph.io tool or library expecting a
// display.Drawer.
package st7796
