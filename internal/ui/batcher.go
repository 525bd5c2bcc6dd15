package ui

import (
	"github.com/resonance/engine/internal/graphics"
)

type cmdKind uint8

const (
	cmdRect cmdKind = iota
	cmdText
)

type command struct {
	kind  cmdKind
	rect  graphics.Rect
	x, y  int
	text  string
	color graphics.Color
}

// Batcher collects 2D draw commands for one frame and replays them, in
// submission order, over a framebuffer. Coordinates are window cells.
type Batcher struct {
	width, height int
	cmds          []command
	frames        int
}

func NewBatcher() *Batcher {
	return &Batcher{cmds: make([]command, 0, 64)}
}

func (b *Batcher) SetWindowSize(width, height int) { b.width, b.height = width, height }

func (b *Batcher) WindowSize() (int, int) { return b.width, b.height }
func (b *Batcher) Len() int               { return len(b.cmds) }
func (b *Batcher) Frames() int            { return b.frames }

func (b *Batcher) DrawRect(r graphics.Rect, bg graphics.Color) {
	b.cmds = append(b.cmds, command{kind: cmdRect, rect: r, color: bg})
}

func (b *Batcher) DrawText(x, y int, s string, fg graphics.Color) {
	b.cmds = append(b.cmds, command{kind: cmdText, x: x, y: y, text: s, color: fg})
}

// reserveRect appends a rect whose bounds are filled in later; it returns the
// command index for resizeRect.
func (b *Batcher) reserveRect(bg graphics.Color) int {
	b.cmds = append(b.cmds, command{kind: cmdRect, color: bg})
	return len(b.cmds) - 1
}

func (b *Batcher) resizeRect(i int, r graphics.Rect) {
	if i >= 0 && i < len(b.cmds) {
		b.cmds[i].rect = r
	}
}

// Flush draws the queued commands into fb and empties the queue. Text is
// clipped at the framebuffer edge.
func (b *Batcher) Flush(fb *graphics.Framebuffer) {
	for _, c := range b.cmds {
		switch c.kind {
		case cmdRect:
			fb.FillRect(c.rect, c.color)
		case cmdText:
			x := c.x
			for _, r := range c.text {
				fb.DrawString(x, c.y, string(r), c.color)
				x += RuneWidth(r)
			}
		}
	}
	b.cmds = b.cmds[:0]
}

// EndFrame drops anything not flushed this frame.
func (b *Batcher) EndFrame() {
	b.cmds = b.cmds[:0]
	b.frames++
}
