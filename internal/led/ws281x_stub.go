//go:build !ws281x && !tinygo

package led

import (
	"errors"

	"github.com/sweeney/neopixel-cycler/internal/logic"
)

// WS281xAvailable reports whether this binary was built with the rpi_ws281x backend.
const WS281xAvailable = false

// WS281xStrip is not available without the ws281x build tag.
type WS281xStrip struct{}

// OpenWS281xStrip returns an error; rebuild with -tags ws281x.
func OpenWS281xStrip(pin, n int) (*WS281xStrip, error) {
	return nil, errors.New("led: ws281x backend not built (rebuild with -tags ws281x)")
}

// Len is not implemented without the ws281x build tag.
func (s *WS281xStrip) Len() int { return 0 }

// SetPixel is not implemented without the ws281x build tag.
func (s *WS281xStrip) SetPixel(i int, c logic.RGB) error {
	return errors.New("led: ws281x not supported")
}

// Flush is not implemented without the ws281x build tag.
func (s *WS281xStrip) Flush() error {
	return errors.New("led: ws281x not supported")
}

// Close is not implemented without the ws281x build tag.
func (s *WS281xStrip) Close() error {
	return nil
}
