// Package config holds the hardware assignments and palette of the cycler.
// Built-in defaults can be overridden at load time from a TOML file.
package config

import (
	"encoding"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/sweeney/neopixel-cycler/internal/gpio"
	"github.com/sweeney/neopixel-cycler/internal/led"
	"github.com/sweeney/neopixel-cycler/internal/logic"
)

// DefaultPath is read when EnvPath is unset.
const DefaultPath = "/etc/neopixel-cycler.toml"

// EnvPath names the environment variable that overrides DefaultPath.
const EnvPath = "NEOPIXEL_CYCLER_CONFIG"

// Backend selects the LED strip implementation.
type Backend string

const (
	// BackendSerial drives a microcontroller over USB serial.
	BackendSerial Backend = "serial"
	// BackendWS281x drives the strip directly from a Raspberry Pi pin.
	BackendWS281x Backend = "ws281x"
	// BackendFake records frames in memory; useful without hardware.
	BackendFake Backend = "fake"
)

// Config is the full configuration of the cycler.
type Config struct {
	Backend   Backend
	Chip      string // GPIO character device for the button
	ButtonPin int
	LEDPin    int // used by the ws281x backend
	NumLEDs   int
	Debounce  time.Duration
	Poll      time.Duration
	Heartbeat time.Duration // 0 disables
	Serial    SerialConfig
	Colors    map[string]logic.RGB
	Sequence  []string
}

// SerialConfig configures the serial backend.
type SerialConfig struct {
	// Device is usually /dev/ttyACM0 or /dev/ttyUSB0.
	Device string
	Baud   int
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend:   BackendSerial,
		Chip:      gpio.DefaultChip,
		ButtonPin: gpio.DefaultPinButton,
		LEDPin:    led.DefaultPin,
		NumLEDs:   led.DefaultNumLEDs,
		Debounce:  200 * time.Millisecond,
		Poll:      10 * time.Millisecond,
		Heartbeat: 15 * time.Minute,
		Serial: SerialConfig{
			Device: "/dev/ttyACM0",
			Baud:   115200,
		},
		Colors:   logic.DefaultColors(),
		Sequence: logic.DefaultSequence(),
	}
}

// Validate checks the configuration. Every failure is a *logic.ConfigError.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSerial:
		if c.Serial.Device == "" {
			return &logic.ConfigError{Field: "serial.device", Reason: "must be set for the serial backend"}
		}
		if c.Serial.Baud <= 0 {
			return &logic.ConfigError{Field: "serial.baud", Reason: fmt.Sprintf("must be positive, got %d", c.Serial.Baud)}
		}
	case BackendWS281x:
		if c.LEDPin < 0 {
			return &logic.ConfigError{Field: "led_pin", Reason: fmt.Sprintf("must not be negative, got %d", c.LEDPin)}
		}
		if c.LEDPin == c.ButtonPin {
			return &logic.ConfigError{Field: "led_pin", Reason: fmt.Sprintf("pin %d is already the button pin", c.LEDPin)}
		}
	case BackendFake:
	default:
		return &logic.ConfigError{Field: "backend", Reason: fmt.Sprintf("unknown backend %q", c.Backend)}
	}

	if c.Chip == "" {
		return &logic.ConfigError{Field: "chip", Reason: "must be set"}
	}
	if c.ButtonPin < 0 {
		return &logic.ConfigError{Field: "button_pin", Reason: fmt.Sprintf("must not be negative, got %d", c.ButtonPin)}
	}
	if c.NumLEDs < 1 || c.NumLEDs > 0xffff {
		return &logic.ConfigError{Field: "num_leds", Reason: fmt.Sprintf("must be in [1,65535], got %d", c.NumLEDs)}
	}
	if c.Debounce <= 0 {
		return &logic.ConfigError{Field: "debounce", Reason: "must be greater than zero"}
	}
	if c.Poll <= 0 || c.Poll >= c.Debounce {
		return &logic.ConfigError{Field: "poll", Reason: fmt.Sprintf("must be in (0, debounce=%v), got %v", c.Debounce, c.Poll)}
	}
	if c.Heartbeat < 0 {
		return &logic.ConfigError{Field: "heartbeat", Reason: "must not be negative"}
	}

	_, err := c.Palette()
	return err
}

// Palette builds the palette from Colors and Sequence.
func (c *Config) Palette() (*logic.Palette, error) {
	return logic.NewPalette(c.Colors, c.Sequence)
}

// Path returns the configuration file location.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults. The result is validated.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			return cfg, cfg.Validate()
		}
		return nil, errors.Wrap(err, "failed to open config file")
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

// fileConfig mirrors the TOML layout. Presence of each key is checked on the
// tree so that absent keys keep their default.
type fileConfig struct {
	Backend   string   `toml:"backend"`
	Chip      string   `toml:"chip"`
	ButtonPin int      `toml:"button_pin"`
	LEDPin    int      `toml:"led_pin"`
	NumLEDs   int      `toml:"num_leds"`
	Sequence  []string `toml:"sequence"`
	Serial    struct {
		Device string `toml:"device"`
		Baud   int    `toml:"baud"`
	} `toml:"serial"`
}

// Parse reads a TOML document over the defaults and validates the result.
// A [colors] table adds to or replaces entries of the default colors.
func Parse(r io.Reader) (*Config, error) {
	tree, err := toml.LoadReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	var file fileConfig
	if err := tree.Unmarshal(&file); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	cfg := Default()
	if tree.Has("backend") {
		cfg.Backend = Backend(file.Backend)
	}
	if tree.Has("chip") {
		cfg.Chip = file.Chip
	}
	if tree.Has("button_pin") {
		cfg.ButtonPin = file.ButtonPin
	}
	if tree.Has("led_pin") {
		cfg.LEDPin = file.LEDPin
	}
	if tree.Has("num_leds") {
		cfg.NumLEDs = file.NumLEDs
	}
	if tree.Has("serial.device") {
		cfg.Serial.Device = file.Serial.Device
	}
	if tree.Has("serial.baud") {
		cfg.Serial.Baud = file.Serial.Baud
	}
	if tree.Has("sequence") {
		cfg.Sequence = file.Sequence
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"debounce", &cfg.Debounce},
		{"poll", &cfg.Poll},
		{"heartbeat", &cfg.Heartbeat},
	}
	for _, d := range durations {
		if !tree.Has(d.key) {
			continue
		}
		text, ok := tree.Get(d.key).(string)
		if !ok {
			return nil, &logic.ConfigError{Field: d.key, Reason: `must be a duration string such as "200ms"`}
		}
		if err := (*TOMLDuration)(d.dst).UnmarshalText([]byte(text)); err != nil {
			return nil, &logic.ConfigError{Field: d.key, Reason: err.Error()}
		}
	}

	if tree.Has("colors") {
		colors, err := parseColors(tree.Get("colors"))
		if err != nil {
			return nil, err
		}
		for name, c := range colors {
			cfg.Colors[name] = c
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TOMLDuration is a duration written as a string, such as "200ms".
type TOMLDuration time.Duration

var _ encoding.TextUnmarshaler = (*TOMLDuration)(nil)

func (d *TOMLDuration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = TOMLDuration(duration)
	return nil
}

// parseColors reads a [colors] table of NAME = [r, g, b].
func parseColors(v interface{}) (map[string]logic.RGB, error) {
	table, ok := v.(*toml.Tree)
	if !ok {
		return nil, &logic.ConfigError{Field: "colors", Reason: "must be a table"}
	}

	names := table.Keys()
	sort.Strings(names)

	colors := make(map[string]logic.RGB, len(names))
	for _, name := range names {
		field := "colors." + name

		var comps []int64
		switch raw := table.Get(name).(type) {
		case []int64:
			comps = raw
		case []interface{}:
			for _, e := range raw {
				n, ok := e.(int64)
				if !ok {
					return nil, &logic.ConfigError{Field: field, Reason: fmt.Sprintf("component %v is not an integer", e)}
				}
				comps = append(comps, n)
			}
		default:
			return nil, &logic.ConfigError{Field: field, Reason: "must be an array [r, g, b]"}
		}

		if len(comps) != 3 {
			return nil, &logic.ConfigError{Field: field, Reason: fmt.Sprintf("must have 3 components, got %d", len(comps))}
		}
		for _, n := range comps {
			if n < 0 || n > 255 {
				return nil, &logic.ConfigError{Field: field, Reason: fmt.Sprintf("component %d out of range [0,255]", n)}
			}
		}
		colors[name] = logic.RGB{R: uint8(comps[0]), G: uint8(comps[1]), B: uint8(comps[2])}
	}
	return colors, nil
}
