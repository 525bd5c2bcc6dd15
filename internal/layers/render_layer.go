package layers

import (
	"math"

	"go.uber.org/zap"

	"github.com/resonance/engine/internal/app"
	"github.com/resonance/engine/internal/core/layer"
	"github.com/resonance/engine/internal/core/vmath"
	"github.com/resonance/engine/internal/gameplay"
	"github.com/resonance/engine/internal/gameplay/components"
	"github.com/resonance/engine/internal/graphics"
	"github.com/resonance/engine/internal/settings"
)

var groundFg = graphics.RGB(70, 90, 70)

// RenderLayer draws the scene from the first enabled camera into its own
// framebuffer, which becomes the carried render output.
type RenderLayer struct {
	app.LayerBase

	fb         *graphics.Framebuffer
	clear      graphics.Color
	drawGround bool
	groundSize int
}

func NewRenderLayer() *RenderLayer {
	return &RenderLayer{
		LayerBase: app.NewLayerBase("render", layer.OnAppLoad|layer.OnRender|layer.OnWindowResize),
	}
}

func (*RenderLayer) DefaultConfig() settings.Document {
	return settings.Document{
		"clear_color": "#000000",
		"draw_ground": true,
		"ground_size": 12,
	}
}

func (l *RenderLayer) OnAppLoad(a *app.Application) error {
	doc := a.LayerSettings(l.LayerName())
	c, err := graphics.ParseColor(settings.GetString(doc, "clear_color", "#000000"))
	if err != nil {
		a.Log().Warn("render clear_color", zap.Error(err))
	}
	l.clear = c
	l.drawGround = settings.GetBool(doc, "draw_ground", true)
	l.groundSize = settings.GetInt(doc, "ground_size", 12)

	size := a.WindowSize()
	l.fb = graphics.NewFramebuffer("scene", size.Width, size.Height)
	return nil
}

func (l *RenderLayer) OnWindowResize(_ *app.Application, _, newSize app.Size) {
	l.fb.Resize(newSize.Width, newSize.Height)
}

// Framebuffer is the layer's colour target.
func (l *RenderLayer) Framebuffer() *graphics.Framebuffer { return l.fb }

func (l *RenderLayer) OnRender(a *app.Application, _ *graphics.Framebuffer) *graphics.Framebuffer {
	l.fb.Clear(l.clear, graphics.BufferAll)
	s := a.CurrentScene()
	cam := activeCamera(s)
	if cam == nil {
		return l.fb
	}
	w, h := l.fb.Width(), l.fb.Height()
	if l.drawGround {
		l.ground(cam, w, h)
	}
	gameplay.Each(s, func(g *gameplay.GameObject, rc *components.RenderComponent) {
		if !rc.Enabled() {
			return
		}
		x, y, depth, ok := cam.Project(g.Transform.Position, w, h)
		if !ok {
			return
		}
		fg, bg := rc.Style()
		fg = shade(fg, depth, cam.Far)
		rows := rc.Footprint()
		top := y - len(rows)/2
		for ry, row := range rows {
			cells := []rune(row)
			left := x - len(cells)/2
			for rx, ch := range cells {
				if ch == ' ' {
					continue
				}
				l.fb.SetDepthTested(left+rx, top+ry, float32(depth), graphics.Cell{Glyph: ch, Fg: fg, Bg: bg})
			}
		}
	})
	return l.fb
}

// ground dots the y=0 plane on a two-unit grid around the origin.
func (l *RenderLayer) ground(cam *components.Camera, w, h int) {
	for gx := -l.groundSize; gx <= l.groundSize; gx += 2 {
		for gz := -l.groundSize; gz <= l.groundSize; gz += 2 {
			p := vmath.V3(float64(gx), 0, float64(gz))
			x, y, depth, ok := cam.Project(p, w, h)
			if !ok {
				continue
			}
			l.fb.SetDepthTested(x, y, float32(depth), graphics.Cell{Glyph: '.', Fg: shade(groundFg, depth, cam.Far)})
		}
	}
}

func activeCamera(s *gameplay.Scene) *components.Camera {
	var cam *components.Camera
	gameplay.Each(s, func(_ *gameplay.GameObject, c *components.Camera) {
		if cam == nil && c.Enabled() {
			cam = c
		}
	})
	return cam
}

// shade darkens c linearly with depth, down to 40% at the far plane.
func shade(c graphics.Color, depth, far float64) graphics.Color {
	if far <= 0 {
		return c
	}
	return scale(c, 1-0.6*math.Min(depth/far, 1))
}
