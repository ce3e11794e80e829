//go:build tinygo

package gpio

import "machine"

// PinReader reads the button from a microcontroller pin.
type PinReader struct {
	pin machine.Pin
}

// NewPinReader configures pin as an input with pull-up.
func NewPinReader(pin machine.Pin) *PinReader {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &PinReader{pin: pin}
}

// Read returns the raw level of the pin (true = high = released).
func (r *PinReader) Read() (bool, error) {
	return r.pin.Get(), nil
}

// Close leaves the pin configured.
func (r *PinReader) Close() error {
	return nil
}
