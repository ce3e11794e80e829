package status

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeney/neopixel-cycler/internal/logic"
)

func TestNewTracker(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := Config{PollMs: 10, DebounceMs: 200, Backend: "serial", NumLEDs: 4}
	tr := NewTracker(start, cfg)

	snap := tr.Snapshot(start)
	if !snap.StartTime.Equal(start) {
		t.Errorf("StartTime: got %v, want %v", snap.StartTime, start)
	}
	if snap.Config.PollMs != 10 {
		t.Errorf("Config.PollMs: got %d, want 10", snap.Config.PollMs)
	}
	if snap.State != StateRunning {
		t.Errorf("State: got %q, want RUNNING", snap.State)
	}
	if snap.Color != "" {
		t.Errorf("Color: got %q, want empty", snap.Color)
	}
}

func TestUpdateAndSnapshot(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(start, Config{})

	tr.Update("GREEN", 1, logic.DebounceStats{Presses: 1, Rejected: 4})

	snap := tr.Snapshot(start.Add(time.Minute))
	if snap.Color != "GREEN" {
		t.Errorf("Color: got %q, want GREEN", snap.Color)
	}
	if snap.Index != 1 {
		t.Errorf("Index: got %d, want 1", snap.Index)
	}
	if snap.Counts.Rejected != 4 {
		t.Errorf("Counts.Rejected: got %d, want 4", snap.Counts.Rejected)
	}
	if snap.Uptime() != time.Minute {
		t.Errorf("Uptime: got %v, want 1m", snap.Uptime())
	}
}

func TestSetState(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	tr.SetState(StateShuttingDown)
	if got := tr.Snapshot(time.Now()).State; got != StateShuttingDown {
		t.Errorf("State: got %q, want SHUTTING_DOWN", got)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(start, Config{})
	tr.Update("RED", 0, logic.DebounceStats{})

	snap1 := tr.Snapshot(start)

	tr.Update("GREEN", 1, logic.DebounceStats{Presses: 1})

	if snap1.Color != "RED" {
		t.Error("snapshot should be a copy; Color was modified")
	}
}

func TestCheckHeartbeatDisabledWithZeroInterval(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, Config{})

	if tr.CheckHeartbeat(start.Add(24*time.Hour), 0) {
		t.Error("expected no heartbeat with zero interval")
	}
	if tr.CheckHeartbeat(start.Add(24*time.Hour), -time.Second) {
		t.Error("expected no heartbeat with negative interval")
	}
}

func TestCheckHeartbeatBeforeInterval(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, Config{})

	if tr.CheckHeartbeat(start.Add(14*time.Minute), 15*time.Minute) {
		t.Error("expected no heartbeat before interval")
	}
}

func TestCheckHeartbeatAtIntervalRestarts(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, Config{})
	interval := 15 * time.Minute

	if !tr.CheckHeartbeat(start.Add(interval), interval) {
		t.Fatal("expected heartbeat at interval")
	}
	if tr.CheckHeartbeat(start.Add(interval+time.Minute), interval) {
		t.Error("expected interval to restart after heartbeat")
	}
	if !tr.CheckHeartbeat(start.Add(2*interval), interval) {
		t.Error("expected second heartbeat")
	}
}

func TestFormatStatusEvent(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		State:     StateRunning,
		Color:     "BLUE",
		Index:     2,
		Counts:    logic.DebounceStats{Presses: 2, Rejected: 7},
		StartTime: start,
		Now:       start.Add(15 * time.Minute),
		Config:    Config{PollMs: 10, DebounceMs: 200, HeartbeatMs: 900000, Backend: "serial", NumLEDs: 4},
	}

	data := FormatStatusEvent(snap, "HEARTBEAT", "")

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Status.Event != "HEARTBEAT" {
		t.Errorf("Event: got %q, want HEARTBEAT", parsed.Status.Event)
	}
	if parsed.Status.State != "RUNNING" {
		t.Errorf("State: got %q, want RUNNING", parsed.Status.State)
	}
	if parsed.Status.Color != "BLUE" {
		t.Errorf("Color: got %q, want BLUE", parsed.Status.Color)
	}
	if parsed.Status.UptimeSeconds != 900 {
		t.Errorf("UptimeSeconds: got %d, want 900", parsed.Status.UptimeSeconds)
	}
	if parsed.Status.Counts.Rejected != 7 {
		t.Errorf("Counts.Rejected: got %d, want 7", parsed.Status.Counts.Rejected)
	}
	if parsed.Status.Config.Backend != "serial" {
		t.Errorf("Config.Backend: got %q, want serial", parsed.Status.Config.Backend)
	}
}

func TestFormatStatusEventShutdown(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		State:     StateShuttingDown,
		Color:     logic.ColorOff,
		StartTime: start,
		Now:       start.Add(30 * time.Minute),
	}

	data := FormatStatusEvent(snap, "SHUTDOWN", "SIGTERM")

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Status.Reason != "SIGTERM" {
		t.Errorf("Reason: got %q, want SIGTERM", parsed.Status.Reason)
	}
	if parsed.Status.State != "SHUTTING_DOWN" {
		t.Errorf("State: got %q, want SHUTTING_DOWN", parsed.Status.State)
	}
}

func TestFormatStatusEventUnknownColor(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC),
	}

	var parsed StatusJSON
	json.Unmarshal(FormatStatusEvent(snap, "STARTUP", ""), &parsed)

	if parsed.Status.Color != "UNKNOWN" {
		t.Errorf("Color: got %q, want UNKNOWN", parsed.Status.Color)
	}
}

func TestFormatStatusEventOmitsReasonWhenEmpty(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC),
	}

	data := FormatStatusEvent(snap, "STARTUP", "")

	var raw map[string]interface{}
	json.Unmarshal(data, &raw)
	status := raw["status"].(map[string]interface{})
	if _, exists := status["reason"]; exists {
		t.Error("reason should be omitted when empty")
	}
	if status["event"] != "STARTUP" {
		t.Errorf("event: got %v, want STARTUP", status["event"])
	}
}
