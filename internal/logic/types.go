// Package logic contains the pure button and color logic for the LED cycler.
// This package has NO external dependencies (no GPIO, LED drivers, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "fmt"

// RGB is a single LED color. Each component is in [0,255].
type RGB struct {
	R, G, B uint8
}

// String formats the color as "(r,g,b)".
func (c RGB) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}

// ColorOff is the name of the all-dark color. It is always present in a Palette.
const ColorOff = "OFF"

// Off is the RGB value of ColorOff.
var Off = RGB{}

// Pin level as seen on an active-low input with pull-up enabled.
const (
	LevelHigh = true  // idle (button released)
	LevelLow  = false // active (button pressed)
)

// DefaultColors is the built-in color table.
func DefaultColors() map[string]RGB {
	return map[string]RGB{
		"RED":     {128, 0, 0},
		"GREEN":   {0, 128, 0},
		"BLUE":    {0, 0, 128},
		"YELLOW":  {128, 128, 0},
		"CYAN":    {0, 128, 128},
		"MAGENTA": {128, 0, 128},
		"WHITE":   {128, 128, 128},
		ColorOff:  Off,
	}
}

// DefaultSequence is the built-in order in which presses step through colors.
func DefaultSequence() []string {
	return []string{"RED", "GREEN", "BLUE", "YELLOW", "CYAN", "MAGENTA", "WHITE", ColorOff}
}

// DebounceStats counts what the debouncer has seen since startup.
type DebounceStats struct {
	Presses  int // accepted presses
	Rejected int // falling edges dropped as bounce
}
