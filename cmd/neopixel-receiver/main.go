//go:build tinygo

// Command neopixel-receiver is the microcontroller end of the serial backend.
// It reads ledserial packets from the USB serial port and shows them on a
// WS2812B strip on GPIO17.
//
//	tinygo flash -target=pico ./cmd/neopixel-receiver
package main

import (
	"log"
	"machine"
	"time"

	"github.com/sweeney/neopixel-cycler/internal/led"
	"github.com/sweeney/neopixel-cycler/internal/logic"
)

const (
	ledPin = machine.GPIO17

	// maxLEDs is the longest strip the host may announce.
	maxLEDs = 150
)

func main() {
	strip := led.NewWS2812Strip(ledPin, maxLEDs)
	if err := led.Fill(strip, logic.Off); err != nil {
		log.Printf("failed to turn LEDs off: %v", err)
	}

	rx := led.NewReceiver(strip)
	err := rx.Serve(serialReader{machine.Serial})

	log.Printf("fatal: %v", err)
	if err := led.Fill(strip, logic.Off); err != nil {
		log.Printf("failed to turn LEDs off: %v", err)
	}
	for {
		time.Sleep(time.Hour)
	}
}

// byteSource is the part of the TinyGo serial API the receiver needs. It is
// satisfied by both machine.UART and machine.USBCDC.
type byteSource interface {
	Buffered() int
	ReadByte() (byte, error)
}

// serialReader turns the non-blocking serial buffer into a blocking
// io.Reader.
type serialReader struct {
	src byteSource
}

func (r serialReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for r.src.Buffered() == 0 {
		time.Sleep(time.Millisecond)
	}

	n := 0
	for n < len(p) && r.src.Buffered() > 0 {
		b, err := r.src.ReadByte()
		if err != nil {
			return n, err
		}
		p[n] = b
		n++
	}
	return n, nil
}
