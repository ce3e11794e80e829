package logic

import "time"

// Debouncer turns raw button levels into discrete press events.
// The input is active-low: a press is a high-to-low transition.
type Debouncer struct {
	window       time.Duration
	lastLevel    bool
	lastAccepted time.Time
	stats        DebounceStats
}

// NewDebouncer creates a debouncer with the given window.
// The initial level is high (released) and no press has been accepted yet,
// so the first falling edge always registers.
func NewDebouncer(window time.Duration) (*Debouncer, error) {
	if window <= 0 {
		return nil, &ConfigError{Field: "debounce", Reason: "must be greater than zero"}
	}
	return &Debouncer{
		window:    window,
		lastLevel: LevelHigh,
	}, nil
}

// Poll takes the current raw level and returns true exactly once per
// qualifying press. A falling edge qualifies only if more than the window
// has passed since the last accepted press; otherwise it is dropped.
// Dropped presses are not queued.
func (d *Debouncer) Poll(level bool, now time.Time) bool {
	if d.lastLevel == LevelHigh && level == LevelLow {
		if d.lastAccepted.IsZero() || now.Sub(d.lastAccepted) > d.window {
			d.lastAccepted = now
			d.lastLevel = LevelLow
			d.stats.Presses++
			return true
		}
		d.stats.Rejected++
	}

	d.lastLevel = level
	return false
}

// Window returns the debounce window.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Stats returns the press counters.
func (d *Debouncer) Stats() DebounceStats {
	return d.stats
}
