package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/neopixel-cycler/internal/logic"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.ButtonPin != 15 {
		t.Errorf("ButtonPin: got %d, want 15", cfg.ButtonPin)
	}
	if cfg.LEDPin != 17 {
		t.Errorf("LEDPin: got %d, want 17", cfg.LEDPin)
	}
	if cfg.NumLEDs != 4 {
		t.Errorf("NumLEDs: got %d, want 4", cfg.NumLEDs)
	}
	if cfg.Debounce != 200*time.Millisecond {
		t.Errorf("Debounce: got %v, want 200ms", cfg.Debounce)
	}
	if cfg.Poll != 10*time.Millisecond {
		t.Errorf("Poll: got %v, want 10ms", cfg.Poll)
	}

	p, err := cfg.Palette()
	if err != nil {
		t.Fatalf("Palette: %v", err)
	}
	if p.Len() != 8 {
		t.Errorf("palette length: got %d, want 8", p.Len())
	}
}

func TestParseOverridesOnlyPresentKeys(t *testing.T) {
	doc := `
backend = "fake"
num_leds = 12
debounce = "150ms"
heartbeat = "0s"

[serial]
baud = 9600
`
	cfg, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Backend != BackendFake {
		t.Errorf("Backend: got %q, want fake", cfg.Backend)
	}
	if cfg.NumLEDs != 12 {
		t.Errorf("NumLEDs: got %d, want 12", cfg.NumLEDs)
	}
	if cfg.Debounce != 150*time.Millisecond {
		t.Errorf("Debounce: got %v, want 150ms", cfg.Debounce)
	}
	if cfg.Heartbeat != 0 {
		t.Errorf("Heartbeat: got %v, want 0 (disabled)", cfg.Heartbeat)
	}
	if cfg.Serial.Baud != 9600 {
		t.Errorf("Serial.Baud: got %d, want 9600", cfg.Serial.Baud)
	}

	// Untouched keys keep their defaults.
	if cfg.ButtonPin != 15 {
		t.Errorf("ButtonPin: got %d, want default 15", cfg.ButtonPin)
	}
	if cfg.Serial.Device != "/dev/ttyACM0" {
		t.Errorf("Serial.Device: got %q, want default", cfg.Serial.Device)
	}
	if cfg.Poll != 10*time.Millisecond {
		t.Errorf("Poll: got %v, want default 10ms", cfg.Poll)
	}
	if len(cfg.Sequence) != 8 {
		t.Errorf("Sequence: got %v, want default", cfg.Sequence)
	}
}

func TestParseButtonPinZero(t *testing.T) {
	cfg, err := Parse(strings.NewReader("button_pin = 0\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.ButtonPin != 0 {
		t.Errorf("ButtonPin: got %d, want 0", cfg.ButtonPin)
	}
}

func TestParseColorsAndSequence(t *testing.T) {
	doc := `
sequence = ["RED", "BLUE", "OFF"]

[colors]
RED = [255, 0, 0]
BLUE = [0, 0, 255]
`
	cfg, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Colors["RED"] != (logic.RGB{R: 255}) {
		t.Errorf("RED: got %v", cfg.Colors["RED"])
	}
	if cfg.Colors["GREEN"] != (logic.RGB{G: 128}) {
		t.Errorf("GREEN should keep its default, got %v", cfg.Colors["GREEN"])
	}

	p, err := cfg.Palette()
	if err != nil {
		t.Fatalf("Palette: %v", err)
	}
	if p.Len() != 3 || p.At(1) != "BLUE" {
		t.Errorf("sequence: got %v", p.Sequence())
	}
}

func TestParseColorsMergeIntoDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader("[colors]\nAMBER = [255, 191, 0]\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Colors["AMBER"] != (logic.RGB{R: 255, G: 191}) {
		t.Errorf("AMBER: got %v", cfg.Colors["AMBER"])
	}
	if len(cfg.Colors) != len(logic.DefaultColors())+1 {
		t.Errorf("Colors: got %d entries, want defaults plus AMBER", len(cfg.Colors))
	}

	p, err := cfg.Palette()
	if err != nil {
		t.Fatalf("Palette: %v", err)
	}
	if p.At(0) != "RED" {
		t.Errorf("default sequence should be kept, got %v", p.Sequence())
	}
}

func TestParseDurations(t *testing.T) {
	cfg, err := Parse(strings.NewReader("debounce = \"1.5s\"\npoll = \"25ms\"\nheartbeat = \"0s\"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Debounce != 1500*time.Millisecond {
		t.Errorf("Debounce: got %v", cfg.Debounce)
	}
	if cfg.Poll != 25*time.Millisecond {
		t.Errorf("Poll: got %v", cfg.Poll)
	}
	if cfg.Heartbeat != 0 {
		t.Errorf("Heartbeat: got %v", cfg.Heartbeat)
	}
}

func TestTOMLDurationUnmarshalText(t *testing.T) {
	var d TOMLDuration
	if err := d.UnmarshalText([]byte("15m")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if time.Duration(d) != 15*time.Minute {
		t.Errorf("got %v, want 15m", time.Duration(d))
	}
	if err := d.UnmarshalText([]byte("soon")); err == nil {
		t.Error("expected error")
	}
	if time.Duration(d) != 15*time.Minute {
		t.Errorf("failed parse changed value to %v", time.Duration(d))
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"unknown backend", `backend = "dmx"`, "backend"},
		{"negative pin", `button_pin = -1`, "button_pin"},
		{"zero leds", `num_leds = 0`, "num_leds"},
		{"zero debounce", `debounce = "0s"`, "debounce"},
		{"poll not below debounce", "debounce = \"50ms\"\npoll = \"50ms\"", "poll"},
		{"bad duration", `poll = "fast"`, "poll"},
		{"bare number duration", `debounce = 200`, "debounce"},
		{"negative heartbeat", `heartbeat = "-1s"`, "heartbeat"},
		{"unknown color in sequence", `sequence = ["RED", "PURPLE"]`, "sequence[1]"},
		{"empty sequence", `sequence = []`, "sequence"},
		{"lit OFF", "[colors]\nOFF = [1, 1, 1]", "colors.OFF"},
		{"component out of range", "[colors]\nRED = [256, 0, 0]", "colors.RED"},
		{"short color", "[colors]\nRED = [1, 2]", "colors.RED"},
		{"pins collide", "backend = \"ws281x\"\nled_pin = 15", "led_pin"},
		{"missing serial device", "[serial]\ndevice = \"\"", "serial.device"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			var cfgErr *logic.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field: got %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	if _, err := Parse(strings.NewReader("num_leds = ")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NumLEDs != 4 {
		t.Errorf("NumLEDs: got %d, want default 4", cfg.NumLEDs)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cycler.toml")
	if err := os.WriteFile(path, []byte("num_leds = 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NumLEDs != 30 {
		t.Errorf("NumLEDs: got %d, want 30", cfg.NumLEDs)
	}
}

func TestLoadInvalidFileKeepsConfigError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cycler.toml")
	if err := os.WriteFile(path, []byte("num_leds = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var cfgErr *logic.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError through wrapping, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv(EnvPath, "/tmp/other.toml")
	if got := Path(); got != "/tmp/other.toml" {
		t.Errorf("Path: got %q", got)
	}

	t.Setenv(EnvPath, "")
	if got := Path(); got != DefaultPath {
		t.Errorf("Path: got %q, want %q", got, DefaultPath)
	}
}
