package components

import (
	"github.com/resonance/engine/internal/gameplay"
	"github.com/resonance/engine/internal/graphics"
	"github.com/resonance/engine/internal/ui"
)

// RectTransform places a GUI element in window cells relative to an anchor
// corner (top_left, top_right, bottom_left, bottom_right or center).
type RectTransform struct {
	gameplay.ComponentBase
	Anchor string `json:"anchor"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (*RectTransform) TypeName() string { return "RectTransform" }

// Rect resolves the element's rectangle for a window of the given size.
func (r *RectTransform) Rect(winW, winH int) graphics.Rect {
	x, y := r.X, r.Y
	switch r.Anchor {
	case "top_right":
		x = winW - r.Width - r.X
	case "bottom_left":
		y = winH - r.Height - r.Y
	case "bottom_right":
		x = winW - r.Width - r.X
		y = winH - r.Height - r.Y
	case "center":
		x = (winW-r.Width)/2 + r.X
		y = (winH-r.Height)/2 + r.Y
	}
	return graphics.Rect{X: x, Y: y, W: r.Width, H: r.Height}
}

// GuiPanel fills its RectTransform with a colour.
type GuiPanel struct {
	gameplay.ComponentBase
	Color string `json:"color"`
}

func (*GuiPanel) TypeName() string { return "GuiPanel" }

func (p *GuiPanel) Draw(b *ui.Batcher, r graphics.Rect) {
	c, err := graphics.ParseColor(p.Color)
	if err != nil {
		c = ui.PanelBg
	}
	b.DrawRect(r, c)
}

// GuiText writes a line inside its RectTransform, clipped to the width.
type GuiText struct {
	gameplay.ComponentBase
	Text   string `json:"text"`
	Color  string `json:"color"`
	Center bool   `json:"center"`
}

func (*GuiText) TypeName() string { return "GuiText" }

func (t *GuiText) Draw(b *ui.Batcher, r graphics.Rect) {
	fg, err := graphics.ParseColor(t.Color)
	if err != nil {
		fg = ui.TextFg
	}
	s := t.Text
	if r.W > 0 {
		s = ui.Truncate(s, r.W)
	}
	x := r.X
	if t.Center {
		x += (r.W - ui.TextWidth(s)) / 2
	}
	b.DrawText(x, r.Y+max(r.H-1, 0)/2, s, fg)
}
