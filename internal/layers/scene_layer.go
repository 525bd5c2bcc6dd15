package layers

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resonance/engine/internal/app"
	"github.com/resonance/engine/internal/core/layer"
	"github.com/resonance/engine/internal/core/vmath"
	"github.com/resonance/engine/internal/gameplay"
	"github.com/resonance/engine/internal/gameplay/components"
	"github.com/resonance/engine/internal/resource"
	"github.com/resonance/engine/internal/settings"
)

// PauseScreenName is the object the logic layer shows while the game is
// paused.
const PauseScreenName = "PauseScreen"

// ChimeSoundID is the built-in scene's chime tone. Rebuilding the scene
// replaces the resource instead of adding another.
var ChimeSoundID = uuid.MustParse("5b1f3c2e-8d4a-4e0b-9c61-2f7a0d3e9b14")

// DefaultSceneLayer stages the first scene: the configured scene document,
// or the built-in demo scene when that cannot be loaded.
type DefaultSceneLayer struct {
	app.LayerBase

	allowReload bool
}

func NewDefaultSceneLayer() *DefaultSceneLayer {
	return &DefaultSceneLayer{
		LayerBase: app.NewLayerBase("default_scene", layer.OnAppLoad|layer.OnSceneLoad),
	}
}

func (*DefaultSceneLayer) DefaultConfig() settings.Document {
	return settings.Document{
		"start_scene":  "",
		"allow_reload": true,
	}
}

func (l *DefaultSceneLayer) OnAppLoad(a *app.Application) error {
	doc := a.LayerSettings(l.LayerName())
	l.allowReload = settings.GetBool(doc, "allow_reload", true)

	path := settings.GetString(doc, "start_scene", "")
	if path == "" {
		path = a.Config().Application.StartScene
	}
	if path != "" && a.LoadScenePath(path) {
		return nil
	}
	if path != "" {
		a.Log().Warn("start scene unavailable, using built-in scene", zap.String("path", path))
	}
	a.LoadScene(BuildDefaultScene(a.Resources()))
	return nil
}

func (l *DefaultSceneLayer) OnSceneLoad(_ *app.Application, s *gameplay.Scene) {
	s.RequestSceneReload(l.allowReload)
}

// BuildDefaultScene assembles the demo level: a first-person player, a
// spinning marker, a key that unlocks a door, a chiming trigger and the HUD.
// The chime tone is added to res.
func BuildDefaultScene(res *resource.Manager) *gameplay.Scene {
	s := gameplay.NewScene("default")

	player := s.MustCreate("Player")
	player.Transform.Position = vmath.V3(0, 0.5, 6)
	player.MustAdd(components.NewCamera())
	player.MustAdd(components.NewSimpleCameraControl())
	player.MustAdd(components.NewRigidBody())
	player.MustAdd(&components.JumpBehaviour{Impulse: 5})
	player.MustAdd(components.NewInventorySystem())

	spinner := s.MustCreate("Spinner")
	spinner.Transform.Position = vmath.V3(0, 1, 0)
	spinner.MustAdd(&components.RenderComponent{Glyph: "@", Color: "#ff8040"})
	spinner.MustAdd(&components.RotatingBehaviour{Speed: vmath.V3(0, 90, 0)})

	key := s.MustCreate("Key")
	key.Transform.Position = vmath.V3(3, 0.5, 2)
	key.MustAdd(&components.RenderComponent{Glyph: "k", Color: "#ffd700"})
	pickup := components.NewInteractSystem()
	pickup.GrantKey = 0
	pickup.Message = "picked up a key"
	key.MustAdd(pickup)

	door := s.MustCreate("Door")
	door.Transform.Position = vmath.V3(-3, 1, -2)
	door.MustAdd(&components.RenderComponent{Glyph: "#", Color: "#8b5a2b"})
	lock := components.NewInteractSystem()
	lock.RequiresKey = true
	lock.RequiredKey = 0
	lock.Message = "door opened"
	door.MustAdd(lock)

	chime := s.MustCreate("Chime")
	chime.Transform.Position = vmath.V3(0, 1, -4)
	chime.MustAdd(&components.TriggerVolume{HalfExtents: vmath.V3(1, 1, 1)})
	chime.MustAdd(&components.TriggerVolumeEnterBehaviour{})
	emitter := &components.SoundEmitter{}
	if res != nil {
		emitter.Sound = res.Add(&resource.Sound{
			Base:       resource.Base{ID: ChimeSoundID},
			Frequency:  660,
			DurationMs: 150,
			Volume:     0.4,
		})
	}
	chime.MustAdd(emitter)

	hud := s.MustCreate("HUD")
	hud.MustAdd(&components.RectTransform{Anchor: "bottom_left", Width: 60, Height: 1})
	hud.MustAdd(&components.GuiText{
		Text:  "wasd move | arrows turn | space jump | e interact | esc pause | q quit",
		Color: "#c0c0c0",
	})

	pause := s.MustCreate(PauseScreenName)
	pause.MustAdd(&components.RectTransform{Anchor: "center", Width: 20, Height: 3})
	panel := &components.GuiPanel{Color: "#202040"}
	panel.SetEnabled(false)
	pause.MustAdd(panel)
	label := &components.GuiText{Text: "PAUSED", Color: "#ffffff", Center: true}
	label.SetEnabled(false)
	pause.MustAdd(label)

	return s
}
