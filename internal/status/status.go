// Package status tracks diagnostics for the cycler: what is shown, how many
// presses were seen, and when the next heartbeat is due.
// Not safe for concurrent use; it is owned by the polling loop.
package status

import (
	"time"

	"github.com/sweeney/neopixel-cycler/internal/logic"
)

// State is the state of the polling loop.
type State string

const (
	StateRunning      State = "RUNNING"
	StateShuttingDown State = "SHUTTING_DOWN"
)

// Config contains configuration for display.
type Config struct {
	PollMs      int64
	DebounceMs  int64
	HeartbeatMs int64
	Backend     string
	NumLEDs     int
}

// Snapshot is a point-in-time view of loop state.
type Snapshot struct {
	State     State
	Color     string
	Index     int
	Counts    logic.DebounceStats
	StartTime time.Time
	Now       time.Time
	Config    Config
}

// Uptime returns the duration since the loop started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds the latest loop state.
type Tracker struct {
	snap          Snapshot
	lastHeartbeat time.Time
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			State:     StateRunning,
			StartTime: startTime,
			Config:    cfg,
		},
		lastHeartbeat: startTime,
	}
}

// Update records the color shown and the press counters.
func (t *Tracker) Update(color string, index int, counts logic.DebounceStats) {
	t.snap.Color = color
	t.snap.Index = index
	t.snap.Counts = counts
}

// SetState records a loop state change.
func (t *Tracker) SetState(s State) {
	t.snap.State = s
}

// Snapshot returns a copy of the state as of now.
func (t *Tracker) Snapshot(now time.Time) Snapshot {
	s := t.snap
	s.Now = now
	return s
}

// CheckHeartbeat reports whether interval has elapsed since the last
// heartbeat (or startup) and, if so, restarts the interval at now.
// An interval <= 0 disables heartbeats.
func (t *Tracker) CheckHeartbeat(now time.Time, interval time.Duration) bool {
	if interval <= 0 {
		return false
	}
	if now.Sub(t.lastHeartbeat) < interval {
		return false
	}
	t.lastHeartbeat = now
	return true
}
