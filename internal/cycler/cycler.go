// Package cycler steps an LED strip through a palette.
package cycler

import (
	"github.com/sweeney/neopixel-cycler/internal/led"
	"github.com/sweeney/neopixel-cycler/internal/logic"
)

// Cycler owns the palette position and drives every pixel of the strip.
type Cycler struct {
	palette *logic.Palette
	strip   led.Strip
	index   int
	current string
	shown   logic.RGB
}

// New creates a cycler at index 0. Nothing is written until Start, Advance or Set.
func New(palette *logic.Palette, strip led.Strip) *Cycler {
	return &Cycler{
		palette: palette,
		strip:   strip,
	}
}

// Start shows the first color of the sequence.
func (c *Cycler) Start() error {
	return c.Set(c.palette.At(c.index))
}

// Advance moves to the next color in the sequence, wrapping at the end,
// shows it on every pixel and returns its name.
// The index moves even if the write fails.
func (c *Cycler) Advance() (string, error) {
	c.index = (c.index + 1) % c.palette.Len()
	name := c.palette.At(c.index)
	return name, c.Set(name)
}

// Set shows the named color on every pixel without touching the index.
// An unknown name returns a *logic.ConfigError and leaves the strip as it was.
func (c *Cycler) Set(name string) error {
	rgb, err := c.palette.Lookup(name)
	if err != nil {
		return err
	}
	if err := led.Fill(c.strip, rgb); err != nil {
		return &logic.HardwareError{Op: "write " + name, Err: err}
	}
	c.current = name
	c.shown = rgb
	return nil
}

// Index returns the current position in the sequence.
func (c *Cycler) Index() int {
	return c.index
}

// Current returns the name of the color last shown, or "" before the first write.
func (c *Cycler) Current() string {
	return c.current
}

// Shown returns the RGB value last written to the strip.
func (c *Cycler) Shown() logic.RGB {
	return c.shown
}
