package st7796

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is reported when an address window lies outside the visible
// frame. Out-of-range coordinates are never sent to the controller.
var ErrOutOfBounds = errors.New("st7796: coordinates outside display area")

var (
	errNotInitialized = errors.New("st7796: display not initialized")
	errFaulted        = errors.New("st7796: device faulted, recover with Reset and Initialize")
)

// TransportError reports a failed SPI bus transaction.
//
// A transport failure mid-operation leaves the controller addressing state
// indeterminate; the only safe recovery is Reset followed by Initialize.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("st7796: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// LineControlError reports a failed GPIO control line operation, such as a
// pin that cannot be claimed or driven. Fatal during construction: NewSPI
// aborts rather than proceed with undefined pin state.
type LineControlError struct {
	Line string
	Err  error
}

func (e *LineControlError) Error() string {
	return fmt.Sprintf("st7796: line %s: %v", e.Line, e.Err)
}

func (e *LineControlError) Unwrap() error {
	return e.Err
}
