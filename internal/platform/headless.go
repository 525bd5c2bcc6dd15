package platform

import (
	"github.com/resonance/engine/internal/graphics"
	"github.com/resonance/engine/internal/input"
)

// Headless is a window with no display. Its clock advances a fixed step per
// PollEvents call, and scripted key presses and resizes fire on the frame
// they were scheduled for. Used for tests and batch runs.
type Headless struct {
	width, height int
	input         *input.Engine
	surface       *graphics.Framebuffer

	frameTime   float64
	maxFrames   int
	frame       int
	now         float64
	shouldClose bool
	swapInt     int
	swaps       int

	keys     map[int][]input.Key
	resizes  map[int][2]int
	onResize func(int, int)
}

func NewHeadless(opts Options) *Headless {
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	step := opts.FrameTime
	if step <= 0 {
		step = 1.0 / 60
	}
	in := opts.Input
	if in == nil {
		in = input.NewEngine(0)
	}
	return &Headless{
		width:     w,
		height:    h,
		input:     in,
		surface:   graphics.NewFramebuffer("surface", w, h),
		frameTime: step,
		maxFrames: opts.MaxFrames,
		keys:      make(map[int][]input.Key),
		resizes:   make(map[int][2]int),
	}
}

// PressAt schedules a key press for the given frame (1-based, as counted by
// PollEvents calls).
func (h *Headless) PressAt(frame int, k input.Key) {
	h.keys[frame] = append(h.keys[frame], k)
}

// ResizeAt schedules a resize event for the given frame.
func (h *Headless) ResizeAt(frame, width, height int) {
	h.resizes[frame] = [2]int{width, height}
}

func (h *Headless) Size() (int, int)      { return h.width, h.height }
func (h *Headless) ShouldClose() bool     { return h.shouldClose }
func (h *Headless) SetShouldClose(v bool) { h.shouldClose = v }
func (h *Headless) SetSwapInterval(n int) { h.swapInt = n }
func (h *Headless) SwapInterval() int     { return h.swapInt }
func (h *Headless) Time() float64         { return h.now }
func (h *Headless) Frames() int           { return h.frame }
func (h *Headless) Swaps() int            { return h.swaps }
func (h *Headless) Close() error          { return nil }

func (h *Headless) Surface() *graphics.Framebuffer { return h.surface }

func (h *Headless) OnResize(fn func(int, int)) { h.onResize = fn }

func (h *Headless) PollEvents() {
	h.frame++
	h.now += h.frameTime
	for _, k := range h.keys[h.frame] {
		h.input.Press(k)
	}
	if size, ok := h.resizes[h.frame]; ok {
		h.width, h.height = size[0], size[1]
		h.surface.Resize(size[0], size[1])
		if h.onResize != nil {
			h.onResize(size[0], size[1])
		}
	}
	if h.maxFrames > 0 && h.frame >= h.maxFrames {
		h.shouldClose = true
	}
}

func (h *Headless) SwapBuffers() { h.swaps++ }
