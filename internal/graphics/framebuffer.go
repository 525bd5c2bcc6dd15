package graphics

import (
	"fmt"
	"math"
	"strconv"
)

// Color is 8-bit RGB.
type Color struct{ R, G, B uint8 }

func RGB(r, g, b uint8) Color { return Color{r, g, b} }

// ParseColor accepts "#rrggbb".
func ParseColor(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

func (c Color) String() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// Cell is one addressable unit of a framebuffer: a glyph on a background.
type Cell struct {
	Glyph rune
	Fg    Color
	Bg    Color
}

// Rect is an x, y, width, height rectangle in cells.
type Rect struct{ X, Y, W, H int }

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Binding is the direction a framebuffer is bound for.
type Binding uint8

const (
	BindNone  Binding = 0
	BindRead  Binding = 1 << 0
	BindWrite Binding = 1 << 1
	BindBoth          = BindRead | BindWrite
)

// BufferFlags select which planes a blit copies.
type BufferFlags uint8

const (
	BufferColor BufferFlags = 1 << iota
	BufferDepth
	BufferAll = BufferColor | BufferDepth
)

// Filter selects the sampling used when a blit scales.
type Filter uint8

const (
	FilterNearest Filter = iota
	FilterLinear
)

// Framebuffer is a CPU cell grid with a depth plane. Rendering layers draw
// into their own framebuffer; the application blits the final one onto the
// window surface.
type Framebuffer struct {
	name          string
	width, height int
	cells         []Cell
	depth         []float32
	bound         Binding
}

func NewFramebuffer(name string, width, height int) *Framebuffer {
	fb := &Framebuffer{name: name}
	fb.Resize(width, height)
	return fb
}

func (fb *Framebuffer) Name() string   { return fb.name }
func (fb *Framebuffer) Width() int     { return fb.width }
func (fb *Framebuffer) Height() int    { return fb.height }
func (fb *Framebuffer) Bounds() Rect   { return Rect{0, 0, fb.width, fb.height} }
func (fb *Framebuffer) Bound() Binding { return fb.bound }
func (fb *Framebuffer) Bind(b Binding) { fb.bound |= b }
func (fb *Framebuffer) Unbind()        { fb.bound = BindNone }
func (fb *Framebuffer) Cells() []Cell  { return fb.cells }

func (fb *Framebuffer) IsBound(b Binding) bool { return fb.bound&b == b }

// Resize reallocates the planes and clears them. Non-positive sizes clamp to 1.
func (fb *Framebuffer) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	fb.width, fb.height = width, height
	fb.cells = make([]Cell, width*height)
	fb.depth = make([]float32, width*height)
	fb.Clear(Color{}, BufferAll)
}

// Clear fills the selected planes; depth resets to +Inf.
func (fb *Framebuffer) Clear(bg Color, flags BufferFlags) {
	if flags&BufferColor != 0 {
		for i := range fb.cells {
			fb.cells[i] = Cell{Glyph: ' ', Bg: bg}
		}
	}
	if flags&BufferDepth != 0 {
		inf := float32(math.Inf(1))
		for i := range fb.depth {
			fb.depth[i] = inf
		}
	}
}

func (fb *Framebuffer) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return 0, false
	}
	return y*fb.width + x, true
}

func (fb *Framebuffer) At(x, y int) Cell {
	if i, ok := fb.index(x, y); ok {
		return fb.cells[i]
	}
	return Cell{}
}

func (fb *Framebuffer) Set(x, y int, c Cell) {
	if i, ok := fb.index(x, y); ok {
		fb.cells[i] = c
	}
}

// SetDepthTested writes c only if z is nearer than the stored depth.
func (fb *Framebuffer) SetDepthTested(x, y int, z float32, c Cell) bool {
	i, ok := fb.index(x, y)
	if !ok || z >= fb.depth[i] {
		return false
	}
	fb.depth[i] = z
	fb.cells[i] = c
	return true
}

// DrawString writes s starting at x, y using fg over the existing background.
func (fb *Framebuffer) DrawString(x, y int, s string, fg Color) {
	for _, r := range s {
		if i, ok := fb.index(x, y); ok {
			fb.cells[i].Glyph = r
			fb.cells[i].Fg = fg
		}
		x++
	}
}

// FillRect paints the background of r and clears its glyphs.
func (fb *Framebuffer) FillRect(r Rect, bg Color) {
	r = r.Intersect(fb.Bounds())
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			fb.cells[y*fb.width+x] = Cell{Glyph: ' ', Bg: bg}
		}
	}
}

// Blit copies srcRect of src into dstRect of dst, scaling with nearest
// sampling. The source must be bound for reading and the destination for
// writing. Cells falling outside either buffer are skipped.
func Blit(src, dst *Framebuffer, srcRect, dstRect Rect, flags BufferFlags, filter Filter) error {
	if !src.IsBound(BindRead) {
		return fmt.Errorf("blit: %s not bound for read", src.name)
	}
	if !dst.IsBound(BindWrite) {
		return fmt.Errorf("blit: %s not bound for write", dst.name)
	}
	if srcRect.Empty() || dstRect.Empty() {
		return nil
	}
	// Terminal cells have no sub-cell detail, so linear falls back to nearest.
	_ = filter
	for dy := 0; dy < dstRect.H; dy++ {
		sy := srcRect.Y + dy*srcRect.H/dstRect.H
		for dx := 0; dx < dstRect.W; dx++ {
			sx := srcRect.X + dx*srcRect.W/dstRect.W
			si, ok := src.index(sx, sy)
			if !ok {
				continue
			}
			di, ok := dst.index(dstRect.X+dx, dstRect.Y+dy)
			if !ok {
				continue
			}
			if flags&BufferColor != 0 {
				dst.cells[di] = src.cells[si]
			}
			if flags&BufferDepth != 0 {
				dst.depth[di] = src.depth[si]
			}
		}
	}
	return nil
}

// Letterbox fits a src-sized image into viewport preserving aspect ratio and
// centres it.
func Letterbox(srcW, srcH int, viewport Rect) Rect {
	if srcW <= 0 || srcH <= 0 || viewport.Empty() {
		return Rect{}
	}
	w := viewport.W
	h := w * srcH / srcW
	if h > viewport.H {
		h = viewport.H
		w = h * srcW / srcH
	}
	w, h = max(w, 1), max(h, 1)
	return Rect{
		X: viewport.X + (viewport.W-w)/2,
		Y: viewport.Y + (viewport.H-h)/2,
		W: w,
		H: h,
	}
}
