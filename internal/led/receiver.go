package led

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/sweeney/neopixel-cycler/internal/ledserial"
	"github.com/sweeney/neopixel-cycler/internal/logic"
)

// Receiver is the device end of SerialStrip: it applies ledserial packets
// from the host to a local strip.
type Receiver struct {
	strip Strip
	ctx   ledserial.ReadContext
}

// NewReceiver creates a Receiver driving strip. Set packets are rejected until
// the host has sent an initialize packet.
func NewReceiver(strip Strip) *Receiver {
	return &Receiver{strip: strip}
}

// NumLEDs returns the strip length announced by the host, or 0.
func (r *Receiver) NumLEDs() int {
	return int(r.ctx.NumLEDs)
}

// Handle applies one packet to the strip.
func (r *Receiver) Handle(p ledserial.Packet) error {
	switch p := p.(type) {
	case ledserial.InitializePacket:
		if p.NumLEDs < 1 || int(p.NumLEDs) > r.strip.Len() {
			return fmt.Errorf("host announced %d LEDs, strip has %d", p.NumLEDs, r.strip.Len())
		}
		r.ctx.NumLEDs = p.NumLEDs
		return nil

	case ledserial.ClearPacket:
		return Fill(r.strip, logic.Off)

	case ledserial.SetPacket:
		if r.ctx.NumLEDs == 0 {
			return errors.New("set packet before initialize")
		}
		if len(p.Pix) != 3*int(r.ctx.NumLEDs) {
			return fmt.Errorf("set packet has %d bytes, want %d", len(p.Pix), 3*int(r.ctx.NumLEDs))
		}
		for i := 0; i < int(r.ctx.NumLEDs); i++ {
			c := logic.RGB{R: p.Pix[3*i], G: p.Pix[3*i+1], B: p.Pix[3*i+2]}
			if err := r.strip.SetPixel(i, c); err != nil {
				return fmt.Errorf("set pixel %d: %w", i, err)
			}
		}
		return r.strip.Flush()

	default:
		return fmt.Errorf("unhandled packet %T", p)
	}
}

// Serve reads packets from src and applies them until reading fails. Frames
// with a bad checksum and packets that cannot be applied are logged and
// skipped; the read error that ends the stream is returned.
func (r *Receiver) Serve(src io.Reader) error {
	for {
		p, err := ledserial.ReadPacket(src, r.ctx)
		if err != nil {
			if errors.Is(err, ledserial.ErrChecksum) {
				log.Printf("dropped frame: %v", err)
				continue
			}
			return err
		}
		if err := r.Handle(p); err != nil {
			log.Printf("%s packet: %v", p.Type(), err)
		}
	}
}
