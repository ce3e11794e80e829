// Package gpio provides button input reading with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Reader reads the raw level of the button input.
type Reader interface {
	// Read returns the raw electrical level of the button line.
	// The line is active-low with pull-up: true = high = released,
	// false = low = pressed.
	Read() (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Default assignments (BCM numbering).
const (
	DefaultChip      = "gpiochip0"
	DefaultPinButton = 15
)
