package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	State         string     `json:"state"`
	Color         string     `json:"color"`
	Index         int        `json:"index"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	Counts        CountsJSON `json:"counts"`
	Config        ConfigJSON `json:"config"`
}

// CountsJSON is the JSON representation of press counts.
type CountsJSON struct {
	Presses  int `json:"presses"`
	Rejected int `json:"rejected"`
}

// ConfigJSON is the JSON representation of the loop config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	DebounceMs  int64  `json:"debounce_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Backend     string `json:"backend"`
	NumLEDs     int    `json:"num_leds"`
}

func buildInner(snap Snapshot) StatusInner {
	color := snap.Color
	if color == "" {
		color = "UNKNOWN"
	}

	return StatusInner{
		State:         string(snap.State),
		Color:         color,
		Index:         snap.Index,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Counts: CountsJSON{
			Presses:  snap.Counts.Presses,
			Rejected: snap.Counts.Rejected,
		},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			DebounceMs:  snap.Config.DebounceMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Backend:     snap.Config.Backend,
			NumLEDs:     snap.Config.NumLEDs,
		},
	}
}

// FormatStatusEvent returns the one-line JSON status logged at STARTUP,
// HEARTBEAT and SHUTDOWN.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
