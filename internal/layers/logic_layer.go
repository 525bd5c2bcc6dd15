package layers

import (
	"go.uber.org/zap"

	"github.com/resonance/engine/internal/app"
	"github.com/resonance/engine/internal/core/layer"
	"github.com/resonance/engine/internal/gameplay"
	"github.com/resonance/engine/internal/gameplay/components"
	"github.com/resonance/engine/internal/settings"
)

// LogicUpdateLayer delivers last frame's events and runs component updates
// while the scene plays. Outside the editor the pause action toggles play
// and the pause screen; the reload action restarts a scene that asked for
// it.
type LogicUpdateLayer struct {
	app.LayerBase

	pauseAction  string
	reloadAction string
}

func NewLogicUpdateLayer() *LogicUpdateLayer {
	return &LogicUpdateLayer{
		LayerBase: app.NewLayerBase("logic", layer.OnAppLoad|layer.OnUpdate|layer.OnLateUpdate|layer.OnSceneLoad),
	}
}

func (*LogicUpdateLayer) DefaultConfig() settings.Document {
	return settings.Document{
		"time_scale":    1.0,
		"pause_action":  "pause",
		"reload_action": "reload_scene",
	}
}

func (l *LogicUpdateLayer) OnAppLoad(a *app.Application) error {
	doc := a.LayerSettings(l.LayerName())
	a.Timing().SetTimeScale(float32(settings.GetFloat(doc, "time_scale", 1)))
	l.pauseAction = settings.GetString(doc, "pause_action", "pause")
	l.reloadAction = settings.GetString(doc, "reload_action", "reload_scene")
	return nil
}

func (*LogicUpdateLayer) OnSceneLoad(_ *app.Application, s *gameplay.Scene) {
	showPauseScreen(s, false)
}

func (l *LogicUpdateLayer) OnUpdate(a *app.Application) {
	s := a.CurrentScene()
	bus := s.Events()
	bus.SwapBuffers()
	bus.DispatchAll()

	in := a.Input()
	if !a.IsEditor() && in.ActionPressed(l.pauseAction) {
		s.SetPlaying(!s.IsPlaying())
		showPauseScreen(s, !s.IsPlaying())
		a.Log().Debug("pause toggled", zap.Bool("playing", s.IsPlaying()))
	}
	if s.ReloadRequested() && in.ActionPressed(l.reloadAction) {
		l.reload(a)
		return
	}
	if s.IsPlaying() {
		s.Update(a.Timing().DeltaTime())
	}
}

func (*LogicUpdateLayer) OnLateUpdate(a *app.Application) {
	if s := a.CurrentScene(); s.IsPlaying() {
		s.LateUpdate(a.Timing().DeltaTime())
	}
}

// reload stages a fresh copy of the current scene for the next frame.
func (*LogicUpdateLayer) reload(a *app.Application) {
	path := a.ScenePath()
	a.Log().Info("reloading scene", zap.String("scene", a.CurrentScene().Name), zap.String("path", path))
	if path != "" {
		if !a.LoadScenePath(path) {
			a.Log().Warn("reload failed, keeping current scene", zap.String("path", path))
		}
		return
	}
	a.LoadScene(BuildDefaultScene(a.Resources()))
}

func showPauseScreen(s *gameplay.Scene, on bool) {
	g := s.FindObjectByName(PauseScreenName)
	if g == nil {
		return
	}
	if p, ok := gameplay.Get[*components.GuiPanel](g); ok {
		p.SetEnabled(on)
	}
	if t, ok := gameplay.Get[*components.GuiText](g); ok {
		t.SetEnabled(on)
	}
}
