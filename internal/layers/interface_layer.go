package layers

import (
	"github.com/resonance/engine/internal/app"
	"github.com/resonance/engine/internal/core/layer"
	"github.com/resonance/engine/internal/gameplay"
	"github.com/resonance/engine/internal/gameplay/components"
	"github.com/resonance/engine/internal/graphics"
)

// InterfaceLayer queues the scene's GUI elements during pre-render and
// composites the whole UI batch over the carried output during post-render.
// With nothing carried it presents the UI on its own blank target.
type InterfaceLayer struct {
	app.LayerBase

	fb *graphics.Framebuffer
}

func NewInterfaceLayer() *InterfaceLayer {
	return &InterfaceLayer{
		LayerBase: app.NewLayerBase("interface", layer.OnPreRender|layer.OnPostRender),
	}
}

func (*InterfaceLayer) OnPreRender(a *app.Application) {
	size := a.WindowSize()
	b := a.Batcher()
	for _, g := range a.CurrentScene().Objects() {
		rt, ok := gameplay.Get[*components.RectTransform](g)
		if !ok || !rt.Enabled() {
			continue
		}
		r := rt.Rect(size.Width, size.Height)
		if p, ok := gameplay.Get[*components.GuiPanel](g); ok && p.Enabled() {
			p.Draw(b, r)
		}
		if t, ok := gameplay.Get[*components.GuiText](g); ok && t.Enabled() {
			t.Draw(b, r)
		}
	}
}

func (l *InterfaceLayer) OnPostRender(a *app.Application, carried *graphics.Framebuffer) *graphics.Framebuffer {
	b := a.Batcher()
	if b.Len() == 0 {
		return nil
	}
	target := carried
	if target == nil {
		size := a.WindowSize()
		if l.fb == nil {
			l.fb = graphics.NewFramebuffer("interface", size.Width, size.Height)
		} else if l.fb.Width() != size.Width || l.fb.Height() != size.Height {
			l.fb.Resize(size.Width, size.Height)
		}
		l.fb.Clear(graphics.Color{}, graphics.BufferAll)
		target = l.fb
	}
	b.Flush(target)
	return target
}
