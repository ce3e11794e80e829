//go:build !tinygo

package led

import (
	"io"

	"github.com/pkg/errors"
	"go.bug.st/serial"

	"github.com/sweeney/neopixel-cycler/internal/ledserial"
	"github.com/sweeney/neopixel-cycler/internal/logic"
)

// SerialStrip drives a strip attached to a microcontroller that speaks the
// ledserial protocol.
type SerialStrip struct {
	w     io.WriteCloser
	frame Frame
}

// OpenSerialStrip opens the serial device and initializes a strip of n LEDs.
func OpenSerialStrip(device string, baud, n int) (*SerialStrip, error) {
	port, err := serial.Open(device, &serial.Mode{
		BaudRate: baud,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open serial port %s", device)
	}

	s, err := NewSerialStrip(port, n)
	if err != nil {
		port.Close()
		return nil, err
	}
	return s, nil
}

// NewSerialStrip initializes a strip of n LEDs over an already open link.
func NewSerialStrip(w io.WriteCloser, n int) (*SerialStrip, error) {
	if n < 1 || n > 0xffff {
		return nil, errors.Errorf("invalid number of LEDs: %d", n)
	}
	if err := ledserial.WritePacket(w, ledserial.InitializePacket{NumLEDs: uint16(n)}); err != nil {
		return nil, errors.Wrap(err, "failed to initialize LEDs")
	}
	return &SerialStrip{
		w:     w,
		frame: NewFrame(n),
	}, nil
}

// Len returns the number of pixels.
func (s *SerialStrip) Len() int {
	return len(s.frame)
}

// SetPixel stages a pixel.
func (s *SerialStrip) SetPixel(i int, c logic.RGB) error {
	return s.frame.Set(i, c)
}

// Flush sends the staged frame as one set packet, or as a clear packet when
// every pixel is off.
func (s *SerialStrip) Flush() error {
	var p ledserial.Packet = ledserial.SetPacket{Pix: s.frame.Bytes()}
	if s.frame.Dark() {
		p = ledserial.ClearPacket{}
	}
	if err := ledserial.WritePacket(s.w, p); err != nil {
		return errors.Wrap(err, "failed to send frame")
	}
	return nil
}

// Close closes the serial link.
func (s *SerialStrip) Close() error {
	return errors.Wrap(s.w.Close(), "failed to close serial port")
}
