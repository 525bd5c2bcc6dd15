package layers

import (
	"go.uber.org/zap"

	"github.com/resonance/engine/internal/app"
	"github.com/resonance/engine/internal/core/layer"
	"github.com/resonance/engine/internal/gameplay"
	"github.com/resonance/engine/internal/settings"
)

// DebugLayer is the editor overlay: engine stats plus one inspector panel
// per object. The play action snapshots the scene and starts it; pressing
// it again stops play and restores the snapshot.
type DebugLayer struct {
	app.LayerBase

	visible bool
}

func NewDebugLayer() *DebugLayer {
	return &DebugLayer{
		LayerBase: app.NewLayerBase("debug", layer.OnAppLoad|layer.OnUpdate|layer.OnPreRender),
	}
}

func (*DebugLayer) DefaultConfig() settings.Document {
	return settings.Document{"visible": true}
}

func (l *DebugLayer) OnAppLoad(a *app.Application) error {
	l.visible = settings.GetBool(a.LayerSettings(l.LayerName()), "visible", true)
	return nil
}

// Visible reports whether the overlay is drawn.
func (l *DebugLayer) Visible() bool { return l.visible }

func (l *DebugLayer) OnUpdate(a *app.Application) {
	in := a.Input()
	if in.ActionPressed("toggle_debug") {
		l.visible = !l.visible
	}
	if in.ActionPressed("toggle_play") {
		l.togglePlay(a)
	}
}

func (*DebugLayer) togglePlay(a *app.Application) {
	s := a.CurrentScene()
	if !s.IsPlaying() {
		if _, err := s.Snapshot(); err != nil {
			a.Log().Error("scene snapshot", zap.Error(err))
			return
		}
		s.SetPlaying(true)
		a.Log().Info("play", zap.String("scene", s.Name))
		return
	}
	backup := s.Backup()
	if backup == nil {
		s.SetPlaying(false)
		return
	}
	restored, err := gameplay.LoadScene(backup, a.Registry())
	if err != nil {
		a.Log().Error("restore scene", zap.Error(err))
		s.SetPlaying(false)
		return
	}
	a.LoadScene(restored)
	a.Log().Info("stop", zap.String("scene", s.Name))
}

func (l *DebugLayer) OnPreRender(a *app.Application) {
	if !l.visible {
		return
	}
	ctx := a.UI()
	s := a.CurrentScene()
	t := a.Timing()
	if ctx.Begin("engine") {
		ctx.Value("frame", t.FrameCount())
		if dt := t.UnscaledDeltaTime(); dt > 0 {
			ctx.Text("fps %.0f", 1/dt)
		}
		ctx.Value("time scale", t.TimeScale())
		ctx.Value("scene", s.Name)
		ctx.Value("objects", s.Len())
		ctx.Value("playing", s.IsPlaying())
		ctx.End()
	}
	s.RenderImGui(ctx)
}
