// Command neopixel-cycler steps an addressable LED strip through a color
// sequence each time a push button is pressed.
//
// It takes no arguments. Configuration is read from /etc/neopixel-cycler.toml
// (or $NEOPIXEL_CYCLER_CONFIG) over built-in defaults.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/neopixel-cycler/internal/config"
	"github.com/sweeney/neopixel-cycler/internal/cycler"
	"github.com/sweeney/neopixel-cycler/internal/gpio"
	"github.com/sweeney/neopixel-cycler/internal/led"
	"github.com/sweeney/neopixel-cycler/internal/logic"
	"github.com/sweeney/neopixel-cycler/internal/loop"
	"github.com/sweeney/neopixel-cycler/internal/status"
)

func main() {
	if err := run(config.Path(), openStrip); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// stripOpener opens the LED backend for a configuration.
type stripOpener func(cfg *config.Config) (led.Strip, error)

func run(path string, open stripOpener) error {
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	palette, err := cfg.Palette()
	if err != nil {
		return err
	}
	debouncer, err := logic.NewDebouncer(cfg.Debounce)
	if err != nil {
		return err
	}

	// Initialize LEDs
	strip, err := open(cfg)
	if err != nil {
		return fmt.Errorf("init leds: %w", err)
	}
	defer strip.Close()

	// Initialize GPIO. If the button cannot be claimed the strip is still
	// turned off before exiting.
	gpioReader, err := gpio.NewRealReader(cfg.Chip, cfg.ButtonPin)
	if err != nil {
		if offErr := led.Fill(strip, logic.Off); offErr != nil {
			log.Printf("failed to turn LEDs off: %v", offErr)
		}
		return fmt.Errorf("init gpio: %w", err)
	}
	defer gpioReader.Close()

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:      cfg.Poll.Milliseconds(),
		DebounceMs:  cfg.Debounce.Milliseconds(),
		HeartbeatMs: cfg.Heartbeat.Milliseconds(),
		Backend:     string(cfg.Backend),
		NumLEDs:     cfg.NumLEDs,
	})
	log.Printf("status: %s", status.FormatStatusEvent(tracker.Snapshot(time.Now()), "STARTUP", ""))

	log.Printf("started: poll=%v debounce=%v backend=%s leds=%d button=%s/%d heartbeat=%v",
		cfg.Poll, cfg.Debounce, cfg.Backend, cfg.NumLEDs, cfg.Chip, cfg.ButtonPin, cfg.Heartbeat)

	ticker := time.NewTicker(cfg.Poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	runner := loop.New(gpioReader, debouncer, cycler.New(palette, strip), tracker, cfg.Heartbeat, time.Now)
	return runner.Run(ticker.C, sigCh)
}

// openStrip opens the LED backend selected by cfg.Backend.
func openStrip(cfg *config.Config) (led.Strip, error) {
	switch cfg.Backend {
	case config.BackendSerial:
		return led.OpenSerialStrip(cfg.Serial.Device, cfg.Serial.Baud, cfg.NumLEDs)
	case config.BackendWS281x:
		if !led.WS281xAvailable {
			return nil, &logic.ConfigError{Field: "backend", Reason: "ws281x support not built in (rebuild with -tags ws281x)"}
		}
		return led.OpenWS281xStrip(cfg.LEDPin, cfg.NumLEDs)
	case config.BackendFake:
		return led.NewFakeStrip(cfg.NumLEDs), nil
	default:
		return nil, &logic.ConfigError{Field: "backend", Reason: fmt.Sprintf("unknown backend %q", cfg.Backend)}
	}
}
