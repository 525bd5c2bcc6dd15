package layers

import (
	"github.com/resonance/engine/internal/app"
	"github.com/resonance/engine/internal/core/layer"
	"github.com/resonance/engine/internal/gameplay"
	"github.com/resonance/engine/internal/gameplay/components"
	"github.com/resonance/engine/internal/settings"
)

// PhysicsLayer steps the scene's physics world after the logic update, in
// fixed substeps of the frame's scaled delta. The scene document owns the
// gravity vector; gravity_scale multiplies it while stepping.
type PhysicsLayer struct {
	app.LayerBase

	gravityScale float64
	substeps     int
	ground       bool
}

func NewPhysicsLayer() *PhysicsLayer {
	return &PhysicsLayer{
		LayerBase: app.NewLayerBase("physics", layer.OnAppLoad|layer.OnUpdate|layer.OnSceneLoad),
	}
}

func (*PhysicsLayer) DefaultConfig() settings.Document {
	return settings.Document{
		"gravity_scale": 1.0,
		"substeps":      2,
		"ground_plane":  true,
	}
}

func (l *PhysicsLayer) OnAppLoad(a *app.Application) error {
	doc := a.LayerSettings(l.LayerName())
	l.gravityScale = settings.GetFloat(doc, "gravity_scale", 1)
	l.substeps = max(settings.GetInt(doc, "substeps", 2), 1)
	l.ground = settings.GetBool(doc, "ground_plane", true)
	return nil
}

func (l *PhysicsLayer) OnSceneLoad(_ *app.Application, s *gameplay.Scene) {
	w := s.Physics()
	w.GravityScale = l.gravityScale
	w.GroundPlane = l.ground
}

func (l *PhysicsLayer) OnUpdate(a *app.Application) {
	s := a.CurrentScene()
	if !s.IsPlaying() {
		return
	}
	gameplay.Each(s, func(_ *gameplay.GameObject, rb *components.RigidBody) { rb.PreStep() })
	dt := float64(a.Timing().DeltaTime()) / float64(l.substeps)
	for range l.substeps {
		s.Physics().Step(dt)
	}
	gameplay.Each(s, func(_ *gameplay.GameObject, rb *components.RigidBody) { rb.PostStep() })
}
