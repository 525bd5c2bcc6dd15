package layers

import (
	"go.uber.org/zap"

	"github.com/resonance/engine/internal/app"
	"github.com/resonance/engine/internal/core/layer"
	"github.com/resonance/engine/internal/gameplay"
	"github.com/resonance/engine/internal/settings"
)

// AudioLayer opens the output device and silences voices when the scene
// stops playing or is unloaded. A missing device is not fatal: the mixer
// keeps counting voices without sound.
type AudioLayer struct {
	app.LayerBase

	stopOnPause bool
	wasPlaying  bool
}

func NewAudioLayer() *AudioLayer {
	return &AudioLayer{
		LayerBase: app.NewLayerBase("audio", layer.OnAppLoad|layer.OnUpdate|layer.OnSceneLoad|layer.OnSceneUnload),
	}
}

func (*AudioLayer) DefaultConfig() settings.Document {
	return settings.Document{"stop_on_pause": true}
}

func (l *AudioLayer) OnAppLoad(a *app.Application) error {
	l.stopOnPause = settings.GetBool(a.LayerSettings(l.LayerName()), "stop_on_pause", true)
	if err := a.Audio().Init(); err != nil {
		a.Log().Warn("audio unavailable, running silent", zap.Error(err))
	}
	return nil
}

func (l *AudioLayer) OnSceneLoad(_ *app.Application, s *gameplay.Scene) {
	l.wasPlaying = s.IsPlaying()
}

func (l *AudioLayer) OnUpdate(a *app.Application) {
	playing := a.CurrentScene().IsPlaying()
	if l.stopOnPause && l.wasPlaying && !playing {
		a.Audio().Stop()
	}
	l.wasPlaying = playing
}

func (*AudioLayer) OnSceneUnload(a *app.Application, _ *gameplay.Scene) {
	a.Audio().Stop()
}
