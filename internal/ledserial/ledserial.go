// Package ledserial implements the framing used to drive an LED strip attached
// to a microcontroller over a serial link.
//
// A frame is a one-byte packet type, a body whose length follows from the
// type, and a little-endian CRC32 (IEEE) over the type and body.
package ledserial

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

var order = binary.LittleEndian

const checksumLen = 4

// ErrChecksum is returned by ReadPacket when a frame's trailer does not match
// its contents. The whole frame has been consumed, so the stream is still
// aligned on the next packet.
var ErrChecksum = errors.New("ledserial: checksum mismatch")

// PacketType is the type of a host-to-device packet.
type PacketType uint8

const (
	TypeInitializePacket PacketType = iota
	TypeClearPacket
	TypeSetPacket
)

func (t PacketType) String() string {
	switch t {
	case TypeInitializePacket:
		return "initialize"
	case TypeClearPacket:
		return "clear"
	case TypeSetPacket:
		return "set"
	default:
		return fmt.Sprintf("PacketType(%d)", t)
	}
}

// bodyLen is the body size of a packet of type t on a strip of numLEDs.
func (t PacketType) bodyLen(numLEDs uint16) (int, bool) {
	switch t {
	case TypeInitializePacket:
		return 2, true
	case TypeClearPacket:
		return 0, true
	case TypeSetPacket:
		return 3 * int(numLEDs), true
	default:
		return 0, false
	}
}

// Packet is a packet sent from the host to the device.
type Packet interface {
	Type() PacketType
}

// InitializePacket announces the strip length. It must precede any SetPacket.
type InitializePacket struct {
	NumLEDs uint16
}

// ClearPacket turns every LED off.
type ClearPacket struct{}

// SetPacket carries a full frame: three bytes (R, G, B) per LED.
type SetPacket struct {
	Pix []uint8
}

func (InitializePacket) Type() PacketType { return TypeInitializePacket }
func (ClearPacket) Type() PacketType      { return TypeClearPacket }
func (SetPacket) Type() PacketType        { return TypeSetPacket }

// ReadContext is the receiver state needed to size set packets.
type ReadContext struct {
	NumLEDs uint16
}

// AppendPacket appends the frame for p to dst.
func AppendPacket(dst []byte, p Packet) ([]byte, error) {
	start := len(dst)
	switch p := p.(type) {
	case InitializePacket:
		dst = append(dst, byte(TypeInitializePacket))
		dst = order.AppendUint16(dst, p.NumLEDs)
	case ClearPacket:
		dst = append(dst, byte(TypeClearPacket))
	case SetPacket:
		dst = append(dst, byte(TypeSetPacket))
		dst = append(dst, p.Pix...)
	default:
		return dst[:start], fmt.Errorf("ledserial: cannot encode %T", p)
	}
	return order.AppendUint32(dst, crc32.ChecksumIEEE(dst[start:])), nil
}

// WritePacket writes the frame for p with a single Write.
func WritePacket(w io.Writer, p Packet) error {
	frame, err := AppendPacket(nil, p)
	if err != nil {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("write %s packet: %w", p.Type(), err)
	}
	return nil
}

// ReadPacket reads one frame from r. Set packets are sized by ctx.NumLEDs.
func ReadPacket(r io.Reader, ctx ReadContext) (Packet, error) {
	var head [1]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("read packet type: %w", err)
	}

	t := PacketType(head[0])
	n, ok := t.bodyLen(ctx.NumLEDs)
	if !ok {
		return nil, fmt.Errorf("unknown packet type %s", t)
	}

	frame := make([]byte, 1+n+checksumLen)
	frame[0] = head[0]
	if _, err := io.ReadFull(r, frame[1:]); err != nil {
		return nil, fmt.Errorf("read %s packet: %w", t, err)
	}

	body, trailer := frame[1:1+n], frame[1+n:]
	if crc32.ChecksumIEEE(frame[:1+n]) != order.Uint32(trailer) {
		return nil, fmt.Errorf("%s packet: %w", t, ErrChecksum)
	}

	switch t {
	case TypeInitializePacket:
		return InitializePacket{NumLEDs: order.Uint16(body)}, nil
	case TypeClearPacket:
		return ClearPacket{}, nil
	default:
		return SetPacket{Pix: body}, nil
	}
}
