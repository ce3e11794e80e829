package led

import (
	"github.com/sweeney/neopixel-cycler/internal/logic"
)

// FakeStrip is a test double that records flushed frames.
type FakeStrip struct {
	// Staged is the frame being built by SetPixel.
	Staged Frame

	// Frames contains a copy of every frame that was flushed.
	Frames []Frame

	// SetPixelError, if set, will be returned by SetPixel.
	SetPixelError error

	// FlushError, if set, will be returned by Flush.
	FlushError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeStrip creates a FakeStrip with n pixels.
func NewFakeStrip(n int) *FakeStrip {
	return &FakeStrip{Staged: NewFrame(n)}
}

// Len returns the number of pixels.
func (f *FakeStrip) Len() int {
	return len(f.Staged)
}

// SetPixel stages a pixel.
func (f *FakeStrip) SetPixel(i int, c logic.RGB) error {
	if f.SetPixelError != nil {
		return f.SetPixelError
	}
	return f.Staged.Set(i, c)
}

// Flush records a copy of the staged frame.
func (f *FakeStrip) Flush() error {
	if f.FlushError != nil {
		return f.FlushError
	}
	f.Frames = append(f.Frames, append(Frame(nil), f.Staged...))
	return nil
}

// Close marks the strip as closed.
func (f *FakeStrip) Close() error {
	f.Closed = true
	return nil
}

// Shown returns the last flushed frame, or nil if nothing was flushed.
func (f *FakeStrip) Shown() Frame {
	if len(f.Frames) == 0 {
		return nil
	}
	return f.Frames[len(f.Frames)-1]
}

// Uniform reports whether every pixel of the last flushed frame equals c.
func (f *FakeStrip) Uniform(c logic.RGB) bool {
	shown := f.Shown()
	if shown == nil {
		return false
	}
	for _, p := range shown {
		if p != c {
			return false
		}
	}
	return true
}

// Reset clears recorded frames and injected errors.
func (f *FakeStrip) Reset() {
	f.Staged = NewFrame(len(f.Staged))
	f.Frames = nil
	f.SetPixelError = nil
	f.FlushError = nil
	f.Closed = false
}
