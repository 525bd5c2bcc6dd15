package layers

import (
	"github.com/resonance/engine/internal/app"
	"github.com/resonance/engine/internal/core/layer"
	"github.com/resonance/engine/internal/graphics"
	"github.com/resonance/engine/internal/settings"
)

// PostProcessingLayer darkens the carried output towards the edges and,
// optionally, every other row. It writes into its own target and carries
// that forward. Setting "enabled" to false removes it from dispatch.
type PostProcessingLayer struct {
	app.LayerBase

	fb        *graphics.Framebuffer
	vignette  float64
	scanlines bool
}

func NewPostProcessingLayer() *PostProcessingLayer {
	return &PostProcessingLayer{
		LayerBase: app.NewLayerBase("post_processing", layer.OnAppLoad|layer.OnPostRender),
	}
}

func (*PostProcessingLayer) DefaultConfig() settings.Document {
	return settings.Document{
		"enabled":   true,
		"vignette":  0.35,
		"scanlines": false,
	}
}

func (l *PostProcessingLayer) OnAppLoad(a *app.Application) error {
	doc := a.LayerSettings(l.LayerName())
	l.vignette = settings.GetFloat(doc, "vignette", 0.35)
	l.scanlines = settings.GetBool(doc, "scanlines", false)
	l.SetEnabled(settings.GetBool(doc, "enabled", true))
	return nil
}

func (l *PostProcessingLayer) OnPostRender(_ *app.Application, carried *graphics.Framebuffer) *graphics.Framebuffer {
	if carried == nil {
		return nil
	}
	w, h := carried.Width(), carried.Height()
	if l.fb == nil {
		l.fb = graphics.NewFramebuffer("post", w, h)
	} else if l.fb.Width() != w || l.fb.Height() != h {
		l.fb.Resize(w, h)
	}
	cx, cy := float64(w-1)/2, float64(h-1)/2
	for y := range h {
		for x := range w {
			f := 1.0
			if l.vignette > 0 {
				dx, dy := 0.0, 0.0
				if cx > 0 {
					dx = (float64(x) - cx) / cx
				}
				if cy > 0 {
					dy = (float64(y) - cy) / cy
				}
				f -= l.vignette * (dx*dx + dy*dy) / 2
			}
			if l.scanlines && y%2 == 1 {
				f *= 0.8
			}
			c := carried.At(x, y)
			c.Fg = scale(c.Fg, f)
			c.Bg = scale(c.Bg, f)
			l.fb.Set(x, y, c)
		}
	}
	return l.fb
}

func scale(c graphics.Color, f float64) graphics.Color {
	f = min(max(f, 0), 1)
	return graphics.RGB(uint8(float64(c.R)*f), uint8(float64(c.G)*f), uint8(float64(c.B)*f))
}
