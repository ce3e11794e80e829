//go:build ws281x && !tinygo

package led

import (
	"fmt"

	ws "github.com/rpi-ws281x/rpi-ws281x-go"

	"github.com/sweeney/neopixel-cycler/internal/logic"
)

// WS281xAvailable reports whether this binary was built with the rpi_ws281x backend.
const WS281xAvailable = true

// WS281xStrip drives a WS281x strip from a Raspberry Pi PWM/PCM pin via rpi_ws281x.
type WS281xStrip struct {
	dev   *ws.WS2811
	frame Frame
}

// OpenWS281xStrip initializes a strip of n LEDs on the given BCM pin.
func OpenWS281xStrip(pin, n int) (*WS281xStrip, error) {
	opt := ws.DefaultOptions
	opt.Channels[0].GpioPin = pin
	opt.Channels[0].LedCount = n
	opt.Channels[0].Brightness = 255

	dev, err := ws.MakeWS2811(&opt)
	if err != nil {
		return nil, fmt.Errorf("create ws281x device: %w", err)
	}
	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("init ws281x on pin %d: %w", pin, err)
	}

	return &WS281xStrip{
		dev:   dev,
		frame: NewFrame(n),
	}, nil
}

// Len returns the number of pixels.
func (s *WS281xStrip) Len() int {
	return len(s.frame)
}

// SetPixel stages a pixel.
func (s *WS281xStrip) SetPixel(i int, c logic.RGB) error {
	return s.frame.Set(i, c)
}

// Flush copies the staged frame into the DMA buffer and renders it.
func (s *WS281xStrip) Flush() error {
	leds := s.dev.Leds(0)
	for i, c := range s.frame {
		leds[i] = uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	}
	if err := s.dev.Render(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := s.dev.Wait(); err != nil {
		return fmt.Errorf("wait for render: %w", err)
	}
	return nil
}

// Close releases the DMA channel and PWM.
func (s *WS281xStrip) Close() error {
	s.dev.Fini()
	return nil
}
