// Package led provides addressable LED strip output with hardware abstraction.
// Pixels are staged with SetPixel and become visible on Flush.
package led

import (
	"fmt"

	"github.com/sweeney/neopixel-cycler/internal/logic"
)

// Strip is a fixed-size addressable LED strip.
type Strip interface {
	// Len returns the number of pixels.
	Len() int

	// SetPixel stages the color of pixel i. Nothing is visible until Flush.
	SetPixel(i int, c logic.RGB) error

	// Flush pushes the staged frame to the hardware.
	Flush() error

	// Close releases the strip. It does not change what is displayed.
	Close() error
}

// Default assignments.
const (
	DefaultPin     = 17
	DefaultNumLEDs = 4
)

// Frame is a staged pixel buffer shared by the strip implementations.
type Frame []logic.RGB

// NewFrame creates a frame of n pixels, all off.
func NewFrame(n int) Frame {
	return make(Frame, n)
}

// Set sets pixel i, checking bounds.
func (f Frame) Set(i int, c logic.RGB) error {
	if i < 0 || i >= len(f) {
		return fmt.Errorf("pixel %d out of range [0,%d)", i, len(f))
	}
	f[i] = c
	return nil
}

// Bytes returns the frame as R, G, B triples.
func (f Frame) Bytes() []uint8 {
	b := make([]uint8, 0, 3*len(f))
	for _, c := range f {
		b = append(b, c.R, c.G, c.B)
	}
	return b
}

// Dark reports whether every pixel is off.
func (f Frame) Dark() bool {
	for _, c := range f {
		if c != logic.Off {
			return false
		}
	}
	return true
}

// Fill stages c on every pixel of s and flushes once.
func Fill(s Strip, c logic.RGB) error {
	for i := 0; i < s.Len(); i++ {
		if err := s.SetPixel(i, c); err != nil {
			return fmt.Errorf("set pixel %d: %w", i, err)
		}
	}
	if err := s.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}
