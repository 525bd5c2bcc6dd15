package graphics

// Device is the software graphics context bound to one window surface. It
// tracks the viewport and scissor rectangles and which framebuffers are
// bound; nil in a bind call means the default framebuffer (the surface).
type Device struct {
	surface  *Framebuffer
	viewport Rect
	scissor  Rect
	read     *Framebuffer
	write    *Framebuffer
}

func NewDevice(surface *Framebuffer) *Device {
	d := &Device{surface: surface}
	d.viewport = surface.Bounds()
	d.scissor = surface.Bounds()
	d.read, d.write = surface, surface
	surface.Bind(BindBoth)
	return d
}

func (d *Device) Surface() *Framebuffer { return d.surface }
func (d *Device) Viewport() Rect        { return d.viewport }
func (d *Device) Scissor() Rect         { return d.scissor }

func (d *Device) SetViewport(r Rect) { d.viewport = r }
func (d *Device) SetScissor(r Rect)  { d.scissor = r }

// BindFramebuffer binds fb for the given direction; nil selects the surface.
func (d *Device) BindFramebuffer(b Binding, fb *Framebuffer) {
	if fb == nil {
		fb = d.surface
	}
	if b&BindRead != 0 {
		if d.read != nil {
			d.read.bound &^= BindRead
		}
		d.read = fb
		fb.Bind(BindRead)
	}
	if b&BindWrite != 0 {
		if d.write != nil {
			d.write.bound &^= BindWrite
		}
		d.write = fb
		fb.Bind(BindWrite)
	}
}

func (d *Device) ReadFramebuffer() *Framebuffer  { return d.read }
func (d *Device) WriteFramebuffer() *Framebuffer { return d.write }

// Clear clears the scissor region of the bound write framebuffer.
func (d *Device) Clear(bg Color) {
	fb := d.write
	r := d.scissor.Intersect(fb.Bounds())
	fb.FillRect(r, bg)
	if r == fb.Bounds() {
		fb.Clear(bg, BufferDepth)
	}
}

// PresentToSurface blits src into the viewport of the surface, scaled and
// letterboxed. The viewport is cleared first so bars stay black.
func (d *Device) PresentToSurface(src *Framebuffer) error {
	d.BindFramebuffer(BindRead, src)
	d.BindFramebuffer(BindWrite, nil)
	d.surface.FillRect(d.viewport, Color{})
	dst := Letterbox(src.Width(), src.Height(), d.viewport)
	return Blit(src, d.surface, src.Bounds(), dst, BufferColor, FilterNearest)
}

// ResizeSurface follows a window resize; viewport and scissor reset to the
// full surface.
func (d *Device) ResizeSurface(width, height int) {
	d.surface.Resize(width, height)
	d.viewport = d.surface.Bounds()
	d.scissor = d.surface.Bounds()
}
