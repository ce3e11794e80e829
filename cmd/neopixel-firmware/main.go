//go:build tinygo

// Command neopixel-firmware is the microcontroller build of the cycler:
// a WS2812B strip on GPIO17 and a push button to ground on GPIO15.
//
//	tinygo flash -target=pico ./cmd/neopixel-firmware
package main

import (
	"log"
	"machine"
	"time"

	"github.com/sweeney/neopixel-cycler/internal/cycler"
	"github.com/sweeney/neopixel-cycler/internal/gpio"
	"github.com/sweeney/neopixel-cycler/internal/led"
	"github.com/sweeney/neopixel-cycler/internal/logic"
	"github.com/sweeney/neopixel-cycler/internal/loop"
)

const (
	ledPin    = machine.GPIO17
	buttonPin = machine.GPIO15
	numLEDs   = led.DefaultNumLEDs

	debounce = 200 * time.Millisecond
	poll     = 10 * time.Millisecond
)

func main() {
	strip := led.NewWS2812Strip(ledPin, numLEDs)
	button := gpio.NewPinReader(buttonPin)

	debouncer, err := logic.NewDebouncer(debounce)
	if err != nil {
		halt(err)
	}

	ticker := time.NewTicker(poll)

	runner := loop.New(button, debouncer, cycler.New(logic.DefaultPalette(), strip), nil, 0, time.Now)
	halt(runner.Run(ticker.C, nil))
}

// halt parks the MCU; there is no process to exit to.
func halt(err error) {
	if err != nil {
		log.Printf("fatal: %v", err)
	}
	for {
		time.Sleep(time.Hour)
	}
}
