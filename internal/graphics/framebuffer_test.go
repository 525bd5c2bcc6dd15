package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8001")
	require.NoError(t, err)
	assert.Equal(t, RGB(255, 128, 1), c)
	assert.Equal(t, "#ff8001", c.String())

	_, err = ParseColor("red")
	assert.Error(t, err)
}

func TestBlitRequiresBinding(t *testing.T) {
	src := NewFramebuffer("src", 2, 2)
	dst := NewFramebuffer("dst", 2, 2)
	assert.ErrorContains(t, Blit(src, dst, src.Bounds(), dst.Bounds(), BufferAll, FilterNearest), "read")
	src.Bind(BindRead)
	assert.ErrorContains(t, Blit(src, dst, src.Bounds(), dst.Bounds(), BufferAll, FilterNearest), "write")
}

func TestBlitScalesNearest(t *testing.T) {
	src := NewFramebuffer("src", 2, 1)
	src.Set(0, 0, Cell{Glyph: 'a'})
	src.Set(1, 0, Cell{Glyph: 'b'})
	dst := NewFramebuffer("dst", 4, 2)
	src.Bind(BindRead)
	dst.Bind(BindWrite)

	require.NoError(t, Blit(src, dst, src.Bounds(), dst.Bounds(), BufferColor, FilterNearest))
	var row []rune
	for x := 0; x < 4; x++ {
		row = append(row, dst.At(x, 1).Glyph)
	}
	assert.Equal(t, []rune{'a', 'a', 'b', 'b'}, row)
}

func TestLetterbox(t *testing.T) {
	// wide source into a square viewport: bars top and bottom
	r := Letterbox(40, 10, Rect{0, 0, 20, 20})
	assert.Equal(t, Rect{X: 0, Y: 7, W: 20, H: 5}, r)

	// tall source: bars left and right, offset by viewport origin
	r = Letterbox(10, 20, Rect{5, 5, 20, 10})
	assert.Equal(t, Rect{X: 12, Y: 5, W: 5, H: 10}, r)

	assert.True(t, Letterbox(0, 5, Rect{0, 0, 1, 1}).Empty())
}

func TestDevicePresentLetterboxes(t *testing.T) {
	surface := NewFramebuffer("surface", 8, 8)
	d := NewDevice(surface)
	src := NewFramebuffer("scene", 4, 2)
	src.Clear(RGB(1, 2, 3), BufferAll)

	require.NoError(t, d.PresentToSurface(src))
	assert.Equal(t, RGB(0, 0, 0), surface.At(0, 0).Bg, "letterbox bar")
	assert.Equal(t, RGB(1, 2, 3), surface.At(0, 3).Bg)
	assert.Equal(t, RGB(1, 2, 3), surface.At(7, 4).Bg)
	assert.Equal(t, RGB(0, 0, 0), surface.At(7, 7).Bg)
}

func TestDepthTest(t *testing.T) {
	fb := NewFramebuffer("fb", 1, 1)
	assert.True(t, fb.SetDepthTested(0, 0, 5, Cell{Glyph: 'f'}))
	assert.False(t, fb.SetDepthTested(0, 0, 9, Cell{Glyph: 'b'}), "behind")
	assert.True(t, fb.SetDepthTested(0, 0, 1, Cell{Glyph: 'n'}))
	assert.Equal(t, 'n', fb.At(0, 0).Glyph)

	fb.Clear(Color{}, BufferDepth)
	assert.True(t, fb.SetDepthTested(0, 0, 9, Cell{Glyph: 'b'}))
}
