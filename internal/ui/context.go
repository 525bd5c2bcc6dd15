package ui

import (
	"fmt"

	"github.com/resonance/engine/internal/graphics"
)

var (
	PanelBg = graphics.RGB(24, 24, 32)
	TitleFg = graphics.RGB(255, 200, 80)
	TextFg  = graphics.RGB(220, 220, 220)
	LabelFg = graphics.RGB(140, 180, 255)
)

const panelPadX = 1

// Context is an immediate-mode inspector. Panels are laid out top to bottom
// from the window origin; each widget call adds one line.
type Context struct {
	b *Batcher

	cursorY int
	open    bool
	panelX  int
	panelY  int
	lines   int
	widest  int
	bgIndex int
	maxW    int

	panels int
}

func NewContext(b *Batcher) *Context {
	return &Context{b: b, maxW: 48}
}

func (c *Context) Batcher() *Batcher { return c.b }

// SetMaxWidth caps panel width in cells.
func (c *Context) SetMaxWidth(cells int) { c.maxW = max(cells, 8) }

// StartFrame resets layout. Panels submitted before StartFrame are lost.
func (c *Context) StartFrame() {
	c.cursorY = 0
	c.open = false
	c.panels = 0
}

// Begin opens a titled panel. Panels do not nest; a second Begin closes the
// first. It returns false when the window has no room left.
func (c *Context) Begin(title string) bool {
	if c.open {
		c.End()
	}
	_, h := c.b.WindowSize()
	if h > 0 && c.cursorY >= h {
		return false
	}
	c.open = true
	c.panelX, c.panelY = 0, c.cursorY
	c.lines, c.widest = 0, 0
	c.bgIndex = c.b.reserveRect(PanelBg)
	c.line(title, TitleFg)
	return true
}

func (c *Context) line(s string, fg graphics.Color) {
	s = Truncate(s, c.maxW-2*panelPadX)
	c.b.DrawText(c.panelX+panelPadX, c.panelY+c.lines, s, fg)
	c.lines++
	c.widest = max(c.widest, TextWidth(s))
}

// Text adds a formatted line.
func (c *Context) Text(format string, args ...any) {
	if !c.open {
		return
	}
	c.line(fmt.Sprintf(format, args...), TextFg)
}

// Value adds a "label: value" line.
func (c *Context) Value(label string, v any) {
	if !c.open {
		return
	}
	c.line(fmt.Sprintf("%s: %v", label, v), LabelFg)
}

// Checkbox shows a boolean. Terminals have no pointer, so the box is read
// only; it reports whether the value changed, which is always false.
func (c *Context) Checkbox(label string, v *bool) bool {
	if !c.open {
		return false
	}
	mark := ' '
	if v != nil && *v {
		mark = 'x'
	}
	c.line(fmt.Sprintf("[%c] %s", mark, label), TextFg)
	return false
}

func (c *Context) Separator() {
	if !c.open {
		return
	}
	c.lines++
}

// End closes the current panel and sizes its background.
func (c *Context) End() {
	if !c.open {
		return
	}
	c.open = false
	c.b.resizeRect(c.bgIndex, graphics.Rect{
		X: c.panelX,
		Y: c.panelY,
		W: c.widest + 2*panelPadX,
		H: c.lines,
	})
	c.cursorY = c.panelY + c.lines + 1
	c.panels++
}

// Panels counts the panels closed this frame.
func (c *Context) Panels() int { return c.panels }

// EndFrame closes any open panel.
func (c *Context) EndFrame() {
	c.End()
}
