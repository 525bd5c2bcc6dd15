package layers

import (
	"go.uber.org/zap"

	"github.com/resonance/engine/internal/app"
	"github.com/resonance/engine/internal/core/layer"
	"github.com/resonance/engine/internal/settings"
)

// AppLayer handles application-wide input and teardown. It has no name, so
// its defaults land in the root of the settings document.
type AppLayer struct {
	app.LayerBase

	quitAction string
	saveOnExit bool
}

func NewAppLayer() *AppLayer {
	return &AppLayer{
		LayerBase: app.NewLayerBase("", layer.OnAppLoad|layer.OnAppUnload|layer.OnUpdate|layer.OnWindowResize),
	}
}

func (*AppLayer) DefaultConfig() settings.Document {
	return settings.Document{
		"quit_action":  "quit",
		"save_on_exit": false,
	}
}

func (l *AppLayer) OnAppLoad(a *app.Application) error {
	doc := a.Settings()
	l.quitAction = settings.GetString(doc, "quit_action", "quit")
	l.saveOnExit = settings.GetBool(doc, "save_on_exit", false)

	size := a.WindowSize()
	a.Log().Info("window ready",
		zap.String("backend", a.Config().Window.Backend),
		zap.String("title", a.Config().Application.Title),
		zap.Int("width", size.Width),
		zap.Int("height", size.Height))
	return nil
}

func (l *AppLayer) OnUpdate(a *app.Application) {
	if a.Input().ActionPressed(l.quitAction) {
		a.Log().Info("quit requested")
		a.Quit()
	}
}

func (l *AppLayer) OnAppUnload(a *app.Application) {
	if !l.saveOnExit {
		return
	}
	if err := a.SaveSettings(); err != nil {
		a.Log().Warn("save settings", zap.Error(err))
	}
}

func (*AppLayer) OnWindowResize(a *app.Application, oldSize, newSize app.Size) {
	a.Log().Info("window resize",
		zap.Int("old_width", oldSize.Width),
		zap.Int("old_height", oldSize.Height),
		zap.Int("width", newSize.Width),
		zap.Int("height", newSize.Height))
}
