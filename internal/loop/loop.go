// Package loop runs the single polling loop that reads the button and steps
// the LED strip through the palette.
package loop

import (
	"errors"
	"log"
	"os"
	"syscall"
	"time"

	"github.com/sweeney/neopixel-cycler/internal/cycler"
	"github.com/sweeney/neopixel-cycler/internal/gpio"
	"github.com/sweeney/neopixel-cycler/internal/logic"
	"github.com/sweeney/neopixel-cycler/internal/status"
)

// Shutdown reasons.
const (
	ReasonSIGINT        = "SIGINT"
	ReasonSIGTERM       = "SIGTERM"
	ReasonHardwareError = "HARDWARE_ERROR"
	ReasonTickerStopped = "TICKER_STOPPED"
	ReasonPanic         = "PANIC"
)

// Runner owns all loop state. Nothing is shared with other goroutines.
type Runner struct {
	reader    gpio.Reader
	debouncer *logic.Debouncer
	cycler    *cycler.Cycler
	tracker   *status.Tracker
	heartbeat time.Duration
	now       func() time.Time

	state  status.State
	reason string
}

// New creates a Runner. tracker may be nil; heartbeat <= 0 disables heartbeats.
func New(reader gpio.Reader, debouncer *logic.Debouncer, cyc *cycler.Cycler, tracker *status.Tracker, heartbeat time.Duration, now func() time.Time) *Runner {
	return &Runner{
		reader:    reader,
		debouncer: debouncer,
		cycler:    cyc,
		tracker:   tracker,
		heartbeat: heartbeat,
		now:       now,
		state:     status.StateRunning,
	}
}

// Run shows the first color, then polls the button on every tick until a
// signal arrives, tick is closed, or the hardware fails. Whatever the exit
// path, the strip is turned off before Run returns (or the panic continues).
// Run returns nil on a signal or closed tick and the *logic.HardwareError
// otherwise.
func (r *Runner) Run(tick <-chan time.Time, sig <-chan os.Signal) error {
	r.reason = ReasonPanic
	defer r.shutdown()

	if err := r.cycler.Start(); err != nil {
		return r.fail(err)
	}
	r.logColor()
	r.update()

	log.Printf("initialized: color=%s", r.cycler.Current())
	log.Printf("press the button to change colors")

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			r.reason = signalName(s)
			return nil

		case _, ok := <-tick:
			if !ok {
				r.reason = ReasonTickerStopped
				return nil
			}
			if err := r.step(); err != nil {
				return r.fail(err)
			}
		}
	}
}

// State returns the loop state.
func (r *Runner) State() status.State {
	return r.state
}

// Reason returns why the loop stopped, or "" while it is running.
func (r *Runner) Reason() string {
	if r.state == status.StateRunning {
		return ""
	}
	return r.reason
}

func (r *Runner) step() error {
	t := r.now()

	level, err := r.reader.Read()
	if err != nil {
		return &logic.HardwareError{Op: "read button", Err: err}
	}

	if r.debouncer.Poll(level, t) {
		name, err := r.cycler.Advance()
		if err != nil {
			return err
		}
		log.Printf("press: color=%s index=%d", name, r.cycler.Index())
		r.logColor()
	}

	r.update()

	if r.tracker != nil && r.tracker.CheckHeartbeat(t, r.heartbeat) {
		snap := r.tracker.Snapshot(t)
		log.Printf("heartbeat: uptime=%v presses=%d rejected=%d color=%s",
			snap.Uptime(), snap.Counts.Presses, snap.Counts.Rejected, snap.Color)
		log.Printf("status: %s", status.FormatStatusEvent(snap, "HEARTBEAT", ""))
	}

	return nil
}

func (r *Runner) fail(err error) error {
	log.Printf("hardware error: %v", err)
	r.reason = ReasonHardwareError

	var hwErr *logic.HardwareError
	if !errors.As(err, &hwErr) {
		err = &logic.HardwareError{Op: "loop", Err: err}
	}
	return err
}

// shutdown turns every pixel off. A failure is logged and not retried.
func (r *Runner) shutdown() {
	r.state = status.StateShuttingDown
	if r.tracker != nil {
		r.tracker.SetState(status.StateShuttingDown)
	}

	if err := r.cycler.Set(logic.ColorOff); err != nil {
		log.Printf("failed to turn LEDs off: %v", err)
	} else {
		log.Printf("all LEDs turned off")
	}

	if r.tracker != nil {
		r.update()
		snap := r.tracker.Snapshot(r.now())
		log.Printf("status: %s", status.FormatStatusEvent(snap, "SHUTDOWN", r.reason))
	}
}

func (r *Runner) update() {
	if r.tracker == nil {
		return
	}
	r.tracker.Update(r.cycler.Current(), r.cycler.Index(), r.debouncer.Stats())
}

func (r *Runner) logColor() {
	log.Printf("color: %s %v", r.cycler.Current(), r.cycler.Shown())
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return ReasonSIGINT
	case syscall.SIGTERM:
		return ReasonSIGTERM
	default:
		return "UNKNOWN"
	}
}
