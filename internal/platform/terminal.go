package platform

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/resonance/engine/internal/graphics"
	"github.com/resonance/engine/internal/input"
)

// Terminal renders the surface into a tcell screen. Each surface cell maps
// to one terminal cell. Terminals report key presses only, so releases are
// synthesised by the input engine's hold window.
type Terminal struct {
	screen  tcell.Screen
	input   *input.Engine
	surface *graphics.Framebuffer
	events  chan tcell.Event
	done    chan struct{}
	stopped sync.Once
	closed  sync.Once

	start       time.Time
	lastSwap    time.Time
	frameTime   time.Duration
	swapInt     int
	shouldClose bool
	onResize    func(int, int)
}

// NewTerminal initialises the real terminal.
func NewTerminal(opts Options) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal init: %w", err)
	}
	return NewTerminalWithScreen(screen, opts), nil
}

// NewTerminalWithScreen wraps an already initialised screen, such as a
// tcell simulation screen.
func NewTerminalWithScreen(screen tcell.Screen, opts Options) *Terminal {
	screen.HideCursor()
	w, h := screen.Size()
	in := opts.Input
	if in == nil {
		in = input.NewEngine(0)
	}
	step := time.Duration(opts.FrameTime * float64(time.Second))
	if step <= 0 {
		step = 16 * time.Millisecond
	}
	t := &Terminal{
		screen:    screen,
		input:     in,
		surface:   graphics.NewFramebuffer("surface", w, h),
		events:    make(chan tcell.Event, 128),
		done:      make(chan struct{}),
		start:     time.Now(),
		frameTime: step,
	}
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(t.events)
				return
			}
			if !t.forward(ev) {
				return
			}
		}
	}()
	return t
}

// forward queues ev for PollEvents. It gives up once the terminal is
// closed, since nothing drains the queue after that.
func (t *Terminal) forward(ev tcell.Event) bool {
	select {
	case t.events <- ev:
		return true
	case <-t.done:
		return false
	}
}

func (t *Terminal) stop() { t.stopped.Do(func() { close(t.done) }) }

func (t *Terminal) Size() (int, int) { return t.surface.Width(), t.surface.Height() }

func (t *Terminal) ShouldClose() bool     { return t.shouldClose }
func (t *Terminal) SetShouldClose(v bool) { t.shouldClose = v }
func (t *Terminal) SetSwapInterval(n int) { t.swapInt = n }
func (t *Terminal) Time() float64         { return time.Since(t.start).Seconds() }

func (t *Terminal) Surface() *graphics.Framebuffer { return t.surface }

func (t *Terminal) OnResize(fn func(int, int)) { t.onResize = fn }

// PollEvents drains queued events without blocking.
func (t *Terminal) PollEvents() {
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				t.shouldClose = true
				return
			}
			t.handle(ev)
		default:
			return
		}
	}
}

func (t *Terminal) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			t.shouldClose = true
			return
		}
		if k := translateKey(ev); k != input.KeyUnknown {
			t.input.Press(k)
		}
	case *tcell.EventResize:
		w, h := ev.Size()
		if w == t.surface.Width() && h == t.surface.Height() {
			return
		}
		t.surface.Resize(w, h)
		if t.onResize != nil {
			t.onResize(w, h)
		}
	}
}

func translateKey(ev *tcell.EventKey) input.Key {
	switch ev.Key() {
	case tcell.KeyRune:
		return input.KeyFromRune(ev.Rune())
	case tcell.KeyEscape:
		return input.KeyEscape
	case tcell.KeyEnter:
		return input.KeyEnter
	case tcell.KeyTab:
		return input.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.KeyBackspace
	case tcell.KeyUp:
		return input.KeyUp
	case tcell.KeyDown:
		return input.KeyDown
	case tcell.KeyLeft:
		return input.KeyLeft
	case tcell.KeyRight:
		return input.KeyRight
	}
	if ev.Key() >= tcell.KeyF1 && ev.Key() <= tcell.KeyF12 {
		return input.KeyF1 + input.Key(ev.Key()-tcell.KeyF1)
	}
	return input.KeyUnknown
}

// SwapBuffers copies the surface to the screen and shows it. With a swap
// interval of one or more it sleeps out the remainder of the frame.
func (t *Terminal) SwapBuffers() {
	w, h := t.surface.Width(), t.surface.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := t.surface.At(x, y)
			glyph := c.Glyph
			if glyph == 0 {
				glyph = ' '
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(c.Fg.R), int32(c.Fg.G), int32(c.Fg.B))).
				Background(tcell.NewRGBColor(int32(c.Bg.R), int32(c.Bg.G), int32(c.Bg.B)))
			t.screen.SetContent(x, y, glyph, nil, style)
		}
	}
	t.screen.Show()

	if t.swapInt > 0 {
		next := t.lastSwap.Add(t.frameTime * time.Duration(t.swapInt))
		if d := time.Until(next); d > 0 {
			time.Sleep(d)
		}
	}
	t.lastSwap = time.Now()
}

// Close stops the event pump and restores the terminal. Calling it again is
// a no-op.
func (t *Terminal) Close() error {
	t.stop()
	t.closed.Do(t.screen.Fini)
	return nil
}
