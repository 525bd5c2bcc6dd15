package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonance/engine/internal/graphics"
)

func TestTextWidth(t *testing.T) {
	assert.Equal(t, 5, TextWidth("hello"))
	assert.Equal(t, 4, TextWidth("日本"))
	assert.Equal(t, 0, TextWidth("\t"))
	assert.Equal(t, "日", Truncate("日本", 3))
	assert.Equal(t, "abc", Truncate("abc", 10))
}

func TestBatcherFlushDrawsInOrder(t *testing.T) {
	b := NewBatcher()
	b.SetWindowSize(10, 3)
	b.DrawText(0, 0, "ab", graphics.RGB(1, 1, 1))
	b.DrawRect(graphics.Rect{X: 1, Y: 0, W: 1, H: 1}, graphics.RGB(9, 9, 9))
	require.Equal(t, 2, b.Len())

	fb := graphics.NewFramebuffer("ui", 10, 3)
	b.Flush(fb)
	assert.Equal(t, 'a', fb.At(0, 0).Glyph)
	assert.Equal(t, ' ', fb.At(1, 0).Glyph, "rect drawn after text covers it")
	assert.Equal(t, graphics.RGB(9, 9, 9), fb.At(1, 0).Bg)
	assert.Equal(t, 0, b.Len())
}

func TestBatcherEndFrameDropsCommands(t *testing.T) {
	b := NewBatcher()
	b.DrawText(0, 0, "x", graphics.Color{})
	b.EndFrame()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 1, b.Frames())
}

func TestContextPanels(t *testing.T) {
	b := NewBatcher()
	b.SetWindowSize(40, 20)
	c := NewContext(b)
	c.StartFrame()

	require.True(t, c.Begin("Scene"))
	c.Value("objects", 3)
	on := true
	assert.False(t, c.Checkbox("playing", &on))
	c.End()

	require.True(t, c.Begin("Timing"))
	c.Text("fps %d", 60)
	c.EndFrame()
	assert.Equal(t, 2, c.Panels())

	fb := graphics.NewFramebuffer("ui", 40, 20)
	b.Flush(fb)
	assert.Equal(t, 'S', fb.At(1, 0).Glyph)
	assert.Equal(t, 'o', fb.At(1, 1).Glyph)
	assert.Equal(t, '[', fb.At(1, 2).Glyph)
	assert.Equal(t, 'x', fb.At(2, 2).Glyph)
	// second panel starts after a blank row
	assert.Equal(t, 'T', fb.At(1, 4).Glyph)
	assert.Equal(t, PanelBg, fb.At(0, 4).Bg)
	assert.Equal(t, graphics.Color{}, fb.At(0, 3).Bg)
}

func TestWidgetsOutsidePanelAreIgnored(t *testing.T) {
	b := NewBatcher()
	c := NewContext(b)
	c.StartFrame()
	c.Text("stray")
	c.Value("x", 1)
	assert.Equal(t, 0, b.Len())
}
