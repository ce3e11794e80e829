//go:build tinygo

package led

import (
	"image/color"
	"machine"
	"runtime/interrupt"

	"tinygo.org/x/drivers/ws2812"

	"github.com/sweeney/neopixel-cycler/internal/logic"
)

// WS2812Strip bit-bangs a WS2812B strip from a microcontroller pin.
type WS2812Strip struct {
	dev    ws2812.Device
	frame  Frame
	colors []color.RGBA
}

// NewWS2812Strip configures pin as an output and drives n LEDs from it.
func NewWS2812Strip(pin machine.Pin, n int) *WS2812Strip {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &WS2812Strip{
		dev:    ws2812.New(pin),
		frame:  NewFrame(n),
		colors: make([]color.RGBA, n),
	}
}

// Len returns the number of pixels.
func (s *WS2812Strip) Len() int {
	return len(s.frame)
}

// SetPixel stages a pixel.
func (s *WS2812Strip) SetPixel(i int, c logic.RGB) error {
	return s.frame.Set(i, c)
}

// Flush writes the staged frame with interrupts disabled; the protocol is
// timing sensitive.
func (s *WS2812Strip) Flush() error {
	for i, c := range s.frame {
		s.colors[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}

	state := interrupt.Disable()
	err := s.dev.WriteColors(s.colors)
	interrupt.Restore(state)
	return err
}

// Close is a no-op; the pin stays configured.
func (s *WS2812Strip) Close() error {
	return nil
}
