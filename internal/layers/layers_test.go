package layers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/resonance/engine/internal/app"
	"github.com/resonance/engine/internal/config"
	"github.com/resonance/engine/internal/core/layer"
	"github.com/resonance/engine/internal/core/vmath"
	"github.com/resonance/engine/internal/gameplay"
	"github.com/resonance/engine/internal/gameplay/components"
	"github.com/resonance/engine/internal/graphics"
	"github.com/resonance/engine/internal/input"
	"github.com/resonance/engine/internal/platform"
	"github.com/resonance/engine/internal/resource"
)

// hook is a test layer driven by closures.
type hook struct {
	app.LayerBase
	load   func(a *app.Application) error
	update func(a *app.Application)
	unload func(a *app.Application)
	scenes []*gameplay.Scene
}

func newHook() *hook {
	return &hook{LayerBase: app.NewLayerBase("hook", layer.OnAppLoad|layer.OnUpdate|layer.OnAppUnload|layer.OnSceneLoad)}
}

func (h *hook) OnAppLoad(a *app.Application) error {
	if h.load != nil {
		return h.load(a)
	}
	return nil
}

func (h *hook) OnUpdate(a *app.Application) {
	if h.update != nil {
		h.update(a)
	}
}

func (h *hook) OnAppUnload(a *app.Application) {
	if h.unload != nil {
		h.unload(a)
	}
}

func (h *hook) OnSceneLoad(_ *app.Application, s *gameplay.Scene) { h.scenes = append(h.scenes, s) }

type harness struct {
	cfg    *config.Config
	window *platform.Headless
	frames int
	keys   map[int][]input.Key
}

func newHarness(t *testing.T, frames int) *harness {
	t.Helper()
	cfg := config.Defaults()
	cfg.Application.SettingsDir = t.TempDir()
	cfg.Application.StartScene = ""
	cfg.Window.Backend = "headless"
	cfg.Audio.Enabled = false
	cfg.Paths.Scripts = filepath.Join(t.TempDir(), "scripts")
	cfg.Paths.Bindings = filepath.Join(t.TempDir(), "bindings.yaml")
	return &harness{cfg: cfg, frames: frames, keys: make(map[int][]input.Key)}
}

func (h *harness) press(frame int, k input.Key) { h.keys[frame] = append(h.keys[frame], k) }

func (h *harness) open(opts platform.Options) (platform.Window, error) {
	h.window = platform.NewHeadless(platform.Options{
		Width:     40,
		Height:    12,
		Input:     opts.Input,
		FrameTime: 1.0 / 60,
		MaxFrames: h.frames,
	})
	for frame, keys := range h.keys {
		for _, k := range keys {
			h.window.PressAt(frame, k)
		}
	}
	return h.window, nil
}

func (h *harness) run(t *testing.T, layers ...app.Layer) {
	t.Helper()
	a := app.New(app.Options{Config: h.cfg, Layers: layers, Log: zap.NewNop(), OpenWindow: h.open})
	require.NoError(t, a.Run())
	assert.Equal(t, app.Terminated, a.State())
}

func names(ls []app.Layer) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.LayerName()
	}
	return out
}

func TestDefaultLayerOrder(t *testing.T) {
	game := []string{"", "default_scene", "logic", "physics", "audio", "render", "interface", "post_processing"}
	assert.Equal(t, game, names(Default(false)))
	assert.Equal(t, append(game, "debug"), names(Default(true)))
}

func TestBuiltInSceneRunsAndPresents(t *testing.T) {
	h := newHarness(t, 90)
	probe := newHook()
	var (
		name    string
		playerY float64
		output  string
		hud     string
		root    any
	)
	probe.unload = func(a *app.Application) {
		s := a.CurrentScene()
		name = s.Name
		playerY = s.FindObjectByName("Player").Transform.Position.Y
		output = a.RenderOutput().Name()
		root = a.Settings()["quit_action"]
		var row []rune
		for x := range 4 {
			row = append(row, h.window.Surface().At(x, 11).Glyph)
		}
		hud = string(row)
	}
	h.run(t, append(Default(false), probe)...)

	assert.Equal(t, "default", name)
	assert.InDelta(t, 0.5, playerY, 1e-6, "player rests on the ground plane")
	assert.Equal(t, "post", output, "interface composites over the post-processed frame")
	assert.Equal(t, "wasd", hud)
	assert.Equal(t, "quit", root, "unnamed layer settings live in the root")
}

func TestQuitActionStopsLoop(t *testing.T) {
	h := newHarness(t, 100)
	h.press(3, input.KeyFromRune('q'))
	h.run(t, Default(false)...)
	assert.Equal(t, 3, h.window.Frames())
}

func TestPauseTogglesPlayAndPauseScreen(t *testing.T) {
	h := newHarness(t, 6)
	h.press(2, input.KeyEscape)
	probe := newHook()
	var playing, panel, text bool
	probe.unload = func(a *app.Application) {
		s := a.CurrentScene()
		playing = s.IsPlaying()
		g := s.FindObjectByName(PauseScreenName)
		p, _ := gameplay.Get[*components.GuiPanel](g)
		tx, _ := gameplay.Get[*components.GuiText](g)
		panel, text = p.Enabled(), tx.Enabled()
	}
	h.run(t, append(Default(false), probe)...)
	assert.False(t, playing)
	assert.True(t, panel)
	assert.True(t, text)
}

func TestReloadActionRestagesScene(t *testing.T) {
	h := newHarness(t, 5)
	h.press(2, input.KeyFromRune('r'))
	probe := newHook()
	var sounds int
	probe.unload = func(a *app.Application) { sounds = len(resource.All[*resource.Sound](a.Resources())) }
	h.run(t, append(Default(false), probe)...)
	require.Len(t, probe.scenes, 2)
	assert.NotSame(t, probe.scenes[0], probe.scenes[1])
	assert.Equal(t, "default", probe.scenes[1].Name)
	assert.Equal(t, 1, sounds, "the chime is replaced, not duplicated")
}

func TestStartSceneFromDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arena.json")
	scene := `{"name":"arena","objects":[
		{"name":"Eye","transform":{"position":[0,1,0]},"components":[{"type":"Camera","fov":60,"near":0.1,"far":50}]},
		{"name":"Box","transform":{"position":[0,1,-5]},"components":[
			{"type":"RenderComponent","material":"6f1c2d4e-0000-4000-8000-000000000001"}]}]}`
	manifest := `{"Material":[{"guid":"6f1c2d4e-0000-4000-8000-000000000001","glyph":"B","color":"#ff0000"}]}`
	require.NoError(t, os.WriteFile(path, []byte(scene), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "arena-manifest.json"), []byte(manifest), 0o644))

	h := newHarness(t, 3)
	h.cfg.Application.StartScene = path
	probe := newHook()
	var scenePath string
	var glyph rune
	probe.unload = func(a *app.Application) {
		scenePath = a.ScenePath()
		glyph = a.RenderOutput().At(20, 6).Glyph
	}
	h.run(t, append(Default(false), probe)...)
	require.Len(t, probe.scenes, 1)
	assert.Equal(t, "arena", probe.scenes[0].Name)
	assert.Equal(t, path, scenePath)
	assert.Equal(t, 'B', glyph)
}

func TestMissingStartSceneFallsBack(t *testing.T) {
	h := newHarness(t, 2)
	h.cfg.Application.StartScene = filepath.Join(t.TempDir(), "missing.json")
	probe := newHook()
	h.run(t, append(Default(false), probe)...)
	require.Len(t, probe.scenes, 1)
	assert.Equal(t, "default", probe.scenes[0].Name)
}

func TestEditorPlayStopRestoresSnapshot(t *testing.T) {
	h := newHarness(t, 10)
	h.cfg.Application.Editor = true
	// terminal keys stay down for a few frames, so presses are spaced out
	h.press(2, input.KeyFromRune('p'))
	h.press(7, input.KeyFromRune('p'))
	probe := newHook()
	var spunWhilePlaying float64
	probe.update = func(a *app.Application) {
		if a.Window().(*platform.Headless).Frames() == 7 {
			spunWhilePlaying = a.CurrentScene().FindObjectByName("Spinner").Transform.Rotation.Y
		}
	}
	var restored float64
	var playing bool
	probe.unload = func(a *app.Application) {
		s := a.CurrentScene()
		restored = s.FindObjectByName("Spinner").Transform.Rotation.Y
		playing = s.IsPlaying()
	}
	layers := append(Default(false), probe)
	layers = append(layers, NewDebugLayer())
	h.run(t, layers...)

	require.Len(t, probe.scenes, 2)
	assert.Greater(t, spunWhilePlaying, 0.0)
	assert.Zero(t, restored)
	assert.False(t, playing, "editor scenes load paused")
}

func TestDebugOverlayToggles(t *testing.T) {
	h := newHarness(t, 4)
	h.cfg.Application.Editor = true
	h.press(2, input.KeyF1)
	dbg := NewDebugLayer()
	probe := newHook()
	var before bool
	probe.update = func(a *app.Application) {
		if a.Window().(*platform.Headless).Frames() == 1 {
			before = dbg.Visible()
		}
	}
	h.run(t, append(Default(false), probe, dbg)...)
	assert.True(t, before)
	assert.False(t, dbg.Visible())
}

func TestRenderLayerDepthTest(t *testing.T) {
	s := gameplay.NewScene("depth")
	eye := s.MustCreate("Eye")
	eye.Transform.Position = vmath.V3(0, 1, 0)
	eye.MustAdd(components.NewCamera())
	s.MustCreate("Far").Transform.Position = vmath.V3(0, 1, -8)
	s.FindObjectByName("Far").MustAdd(&components.RenderComponent{Glyph: "F"})
	s.MustCreate("Near").Transform.Position = vmath.V3(0, 1, -3)
	s.FindObjectByName("Near").MustAdd(&components.RenderComponent{Glyph: "N"})
	s.MustCreate("Behind").Transform.Position = vmath.V3(0, 1, 4)
	s.FindObjectByName("Behind").MustAdd(&components.RenderComponent{Glyph: "B"})

	h := newHarness(t, 2)
	probe := newHook()
	probe.load = func(a *app.Application) error {
		a.LoadScene(s)
		return nil
	}
	var out *graphics.Framebuffer
	probe.unload = func(a *app.Application) { out = a.RenderOutput() }
	h.run(t, probe, NewRenderLayer())

	require.NotNil(t, out)
	assert.Equal(t, "scene", out.Name())
	assert.Equal(t, 'N', out.At(20, 6).Glyph)
	for _, c := range out.Cells() {
		assert.NotEqual(t, 'B', c.Glyph, "objects behind the camera are culled")
	}
}

func TestRenderLayerWithoutCameraClears(t *testing.T) {
	s := gameplay.NewScene("blind")
	s.MustCreate("Box").MustAdd(&components.RenderComponent{Glyph: "X"})
	h := newHarness(t, 2)
	probe := newHook()
	probe.load = func(a *app.Application) error {
		a.LoadScene(s)
		return nil
	}
	var out *graphics.Framebuffer
	probe.unload = func(a *app.Application) { out = a.RenderOutput() }
	h.run(t, probe, NewRenderLayer())
	require.NotNil(t, out)
	for _, c := range out.Cells() {
		assert.Equal(t, ' ', c.Glyph)
	}
}

func TestInterfaceLayerUsesOwnTargetWhenNothingCarried(t *testing.T) {
	s := gameplay.NewScene("menu")
	title := s.MustCreate("Title")
	title.MustAdd(&components.RectTransform{Anchor: "top_left", Width: 10, Height: 1})
	title.MustAdd(&components.GuiText{Text: "MENU"})
	h := newHarness(t, 2)
	probe := newHook()
	probe.load = func(a *app.Application) error {
		a.LoadScene(s)
		return nil
	}
	var out *graphics.Framebuffer
	probe.unload = func(a *app.Application) { out = a.RenderOutput() }
	h.run(t, probe, NewInterfaceLayer())
	require.NotNil(t, out)
	assert.Equal(t, "interface", out.Name())
	assert.Equal(t, 'M', out.At(0, 0).Glyph)
}

func TestPostProcessingVignette(t *testing.T) {
	l := NewPostProcessingLayer()
	l.vignette = 0.5
	assert.Nil(t, l.OnPostRender(nil, nil))

	white := graphics.RGB(200, 200, 200)
	src := graphics.NewFramebuffer("src", 5, 5)
	for y := range 5 {
		for x := range 5 {
			src.Set(x, y, graphics.Cell{Glyph: '#', Fg: white})
		}
	}
	out := l.OnPostRender(nil, src)
	require.NotNil(t, out)
	assert.NotSame(t, src, out)
	assert.Equal(t, white, out.At(2, 2).Fg)
	assert.Equal(t, '#', out.At(0, 0).Glyph)
	assert.Less(t, out.At(0, 0).Fg.R, white.R)
	assert.Equal(t, white, src.At(0, 0).Fg, "source is not modified")
}

func TestPostProcessingDisabledBySettings(t *testing.T) {
	h := newHarness(t, 2)
	dir := filepath.Join(h.cfg.Application.SettingsDir, h.cfg.Application.Name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	doc := `{"post_processing":{"enabled":false}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app-settings.json"), []byte(doc), 0o644))

	post := NewPostProcessingLayer()
	probe := newHook()
	var output string
	probe.unload = func(a *app.Application) { output = a.RenderOutput().Name() }
	h.run(t, append(Default(false)[:6], post, probe)...)
	assert.False(t, post.IsEnabled())
	assert.Equal(t, "scene", output)
}

func TestPhysicsGravityScale(t *testing.T) {
	h := newHarness(t, 30)
	dir := filepath.Join(h.cfg.Application.SettingsDir, h.cfg.Application.Name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app-settings.json"),
		[]byte(`{"physics":{"gravity_scale":0}}`), 0o644))

	s := gameplay.NewScene("float")
	box := s.MustCreate("Box")
	box.Transform.Position = vmath.V3(0, 3, 0)
	box.MustAdd(components.NewRigidBody())

	probe := newHook()
	probe.load = func(a *app.Application) error {
		a.LoadScene(s)
		return nil
	}
	h.run(t, probe, NewLogicUpdateLayer(), NewPhysicsLayer())
	assert.InDelta(t, 3.0, box.Transform.Position.Y, 1e-9)
}

func TestGravityScaleSurvivesPlayStop(t *testing.T) {
	h := newHarness(t, 14)
	h.cfg.Application.Editor = true
	dir := filepath.Join(h.cfg.Application.SettingsDir, h.cfg.Application.Name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app-settings.json"),
		[]byte(`{"physics":{"gravity_scale":2}}`), 0o644))
	// play, stop (restores the snapshot), play again
	for _, frame := range []int{2, 7, 12} {
		h.press(frame, input.KeyFromRune('p'))
	}

	probe := newHook()
	var (
		gravity  vmath.Vec3
		scale    float64
		playing  bool
		snapshot vmath.Vec3
	)
	probe.unload = func(a *app.Application) {
		s := a.CurrentScene()
		gravity = s.Physics().Gravity
		scale = s.Physics().GravityScale
		playing = s.IsPlaying()
		backup, err := gameplay.LoadScene(s.Backup(), a.Registry())
		require.NoError(t, err)
		snapshot = backup.Physics().Gravity
	}
	layers := append(Default(false), probe)
	layers = append(layers, NewDebugLayer())
	h.run(t, layers...)

	require.Len(t, probe.scenes, 2)
	assert.True(t, playing)
	assert.Equal(t, vmath.Vec3{Y: -9.81}, gravity)
	assert.Equal(t, vmath.Vec3{Y: -9.81}, snapshot, "snapshots keep the document gravity")
	assert.Equal(t, 2.0, scale)
}

func TestShippedLevelLoads(t *testing.T) {
	h := newHarness(t, 30)
	h.cfg.Application.StartScene = filepath.Join("..", "..", "assets", "scenes", "level1.json")
	h.cfg.Paths.Scripts = filepath.Join("..", "..", "scripts")
	h.cfg.Paths.Bindings = filepath.Join("..", "..", "data", "yaml", "input_bindings.yaml")

	probe := newHook()
	var (
		objects   int
		resources int
		guardX    float64
		scripts   []error
		bobName   string
	)
	probe.unload = func(a *app.Application) {
		s := a.CurrentScene()
		objects = s.Len()
		resources = a.Resources().Len()
		guardX = s.FindObjectByName("Guard").Transform.Position.X
		gameplay.Each(s, func(_ *gameplay.GameObject, sb *components.ScriptBehaviour) {
			scripts = append(scripts, sb.Err())
		})
		if sb, ok := gameplay.Get[*components.ScriptBehaviour](s.FindObjectByName("Key")); ok {
			bobName = sb.Behaviour
		}
	}
	h.run(t, append(Default(false), probe)...)

	require.Len(t, probe.scenes, 1)
	assert.Equal(t, "level1", probe.scenes[0].Name)
	assert.Equal(t, 8, objects)
	assert.Equal(t, 8, resources)
	assert.Greater(t, guardX, 4.0, "patrol script moves the guard")
	assert.Equal(t, []error{nil, nil}, scripts)
	assert.Equal(t, "bob", bobName)
}
