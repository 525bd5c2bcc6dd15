package platform

import (
	"fmt"

	"github.com/resonance/engine/internal/graphics"
	"github.com/resonance/engine/internal/input"
)

// Window is the windowing and input backend the application drives. All
// methods are called from the application goroutine.
type Window interface {
	// Size is the current drawable size in cells.
	Size() (width, height int)
	ShouldClose() bool
	SetShouldClose(bool)
	// PollEvents drains pending platform events, forwarding keys to the
	// input engine and resizes to the OnResize callback.
	PollEvents()
	SetSwapInterval(n int)
	// Time is a monotonic clock in seconds since the window was created.
	Time() float64
	// Surface is the back buffer presented by SwapBuffers.
	Surface() *graphics.Framebuffer
	SwapBuffers()
	OnResize(fn func(width, height int))
	Close() error
}

// Options configure window creation.
type Options struct {
	Backend string // "terminal" or "headless"
	Title   string
	Width   int
	Height  int
	Input   *input.Engine

	// headless only
	FrameTime float64
	MaxFrames int
}

// Open creates the window backend named by opts.Backend.
func Open(opts Options) (Window, error) {
	switch opts.Backend {
	case "terminal", "":
		return NewTerminal(opts)
	case "headless":
		return NewHeadless(opts), nil
	default:
		return nil, fmt.Errorf("unknown window backend %q", opts.Backend)
	}
}
