package app

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/resonance/engine/internal/audio"
	"github.com/resonance/engine/internal/config"
	"github.com/resonance/engine/internal/core/event"
	"github.com/resonance/engine/internal/core/layer"
	"github.com/resonance/engine/internal/core/timing"
	"github.com/resonance/engine/internal/gameplay"
	"github.com/resonance/engine/internal/gameplay/components"
	"github.com/resonance/engine/internal/graphics"
	"github.com/resonance/engine/internal/input"
	"github.com/resonance/engine/internal/platform"
	"github.com/resonance/engine/internal/resource"
	"github.com/resonance/engine/internal/scripting"
	"github.com/resonance/engine/internal/settings"
	"github.com/resonance/engine/internal/ui"
)

const (
	DefaultWindowWidth  = 1920
	DefaultWindowHeight = 1080
)

// State is the application lifecycle state.
type State int32

const (
	Uninitialized State = iota
	Loading
	Running
	Unloading
	Terminated
)

var stateNames = [...]string{"Uninitialized", "Loading", "Running", "Unloading", "Terminated"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// OpenWindowFunc creates the window during Loading.
type OpenWindowFunc func(platform.Options) (platform.Window, error)

// Options configure an Application. Layers are registered in the given
// order and cannot change afterwards.
type Options struct {
	Config *config.Config
	Layers []Layer
	Log    *zap.Logger

	// OpenWindow defaults to platform.Open.
	OpenWindow OpenWindowFunc
}

var current atomic.Pointer[Application]

// Current returns the running application. Calling it before Run has
// started, or after it returned, is a programming error and panics.
func Current() *Application {
	a := current.Load()
	assert(zap.L(), a != nil, "Current called before the application was started")
	return a
}

func assert(log *zap.Logger, ok bool, msg string) {
	if ok {
		return
	}
	log.Error("assertion failed", zap.String("msg", msg))
	panic(msg)
}

// Application owns the window, the layer stack, the current and target
// scenes, the merged settings document and the primary viewport, and drives
// the frame loop. Everything runs on the goroutine that called Run.
type Application struct {
	cfg    *config.Config
	log    *zap.Logger
	open   OpenWindowFunc
	layers *layer.Stack[Layer]

	state   atomic.Int32
	running bool

	window   platform.Window
	device   *graphics.Device
	size     Size
	viewport graphics.Rect

	settings     settings.Document
	settingsPath string

	timing    *timing.Timing
	input     *input.Engine
	batcher   *ui.Batcher
	imgui     *ui.Context
	resources *resource.Manager
	registry  *gameplay.Registry
	scripts   *scripting.Engine
	audio     *audio.Mixer

	scene      *gameplay.Scene
	target     *gameplay.Scene
	scenePath  string
	targetPath string

	renderOutput *graphics.Framebuffer
}

// New builds an application. Nothing is opened until Run.
func New(opts Options) *Application {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Defaults()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	open := opts.OpenWindow
	if open == nil {
		open = platform.Open
	}
	a := &Application{
		cfg:       cfg,
		log:       log,
		open:      open,
		layers:    layer.NewFrozenStack(opts.Layers...),
		size:      Size{DefaultWindowWidth, DefaultWindowHeight},
		timing:    timing.New(),
		input:     input.NewEngine(input.DefaultHoldFrames),
		batcher:   ui.NewBatcher(),
		resources: resource.NewManager(log),
		registry:  gameplay.NewRegistry(log),
	}
	a.imgui = ui.NewContext(a.batcher)
	a.audio = audio.NewMixer(audio.Options{
		Enabled:    cfg.Audio.Enabled,
		SampleRate: cfg.Audio.SampleRate,
		Buffer:     cfg.Audio.Buffer,
	}, log.Named("audio"))
	return a
}

func (a *Application) Config() *config.Config              { return a.cfg }
func (a *Application) Log() *zap.Logger                    { return a.log }
func (a *Application) State() State                        { return State(a.state.Load()) }
func (a *Application) IsEditor() bool                      { return a.cfg.Application.Editor }
func (a *Application) Window() platform.Window             { return a.window }
func (a *Application) Device() *graphics.Device            { return a.device }
func (a *Application) WindowSize() Size                    { return a.size }
func (a *Application) PrimaryViewport() graphics.Rect      { return a.viewport }
func (a *Application) SetPrimaryViewport(r graphics.Rect)  { a.viewport = r }
func (a *Application) Settings() settings.Document         { return a.settings }
func (a *Application) SettingsPath() string                { return a.settingsPath }
func (a *Application) Timing() *timing.Timing              { return a.timing }
func (a *Application) Input() *input.Engine                { return a.input }
func (a *Application) UI() *ui.Context                     { return a.imgui }
func (a *Application) Batcher() *ui.Batcher                { return a.batcher }
func (a *Application) Resources() *resource.Manager        { return a.resources }
func (a *Application) Registry() *gameplay.Registry        { return a.registry }
func (a *Application) Scripts() *scripting.Engine          { return a.scripts }
func (a *Application) Audio() *audio.Mixer                 { return a.audio }
func (a *Application) CurrentScene() *gameplay.Scene       { return a.scene }
func (a *Application) ScenePath() string                   { return a.scenePath }
func (a *Application) RenderOutput() *graphics.Framebuffer { return a.renderOutput }
func (a *Application) Layers() []Layer                     { return a.layers.Layers() }

// LayerSettings returns the settings section of the named layer.
func (a *Application) LayerSettings(name string) settings.Document {
	return settings.Section(a.settings, name)
}

// Quit stops the loop after the current frame completes.
func (a *Application) Quit() { a.running = false }

func (a *Application) setState(s State) {
	a.state.Store(int32(s))
	a.log.Info("application state", zap.Stringer("state", s))
}

// Run executes the application to completion: Loading, the frame loop while
// running, then Unloading. Only one application may run at a time; a second
// concurrent Run panics.
func (a *Application) Run() error {
	assert(a.log, current.CompareAndSwap(nil, a), "application has already been started")
	defer current.CompareAndSwap(a, nil)
	assert(a.log, a.State() == Uninitialized, "application can only run once")

	a.setState(Loading)
	if err := a.load(); err != nil {
		a.release()
		a.setState(Terminated)
		return err
	}

	a.setState(Running)
	a.running = true
	last := a.window.Time()
	for a.running {
		last = a.frame(last)
	}

	a.setState(Unloading)
	a.layers.Dispatch(layer.OnAppUnload, func(l Layer) { l.OnAppUnload(a) })
	a.imgui.EndFrame()
	a.batcher.EndFrame()
	if a.scene != nil {
		a.scene.Destroy()
		a.scene = nil
	}
	a.release()
	a.setState(Terminated)
	return nil
}

func (a *Application) load() error {
	if err := a.configureSettings(); err != nil {
		return err
	}
	a.size = Size{
		Width:  settings.GetInt(a.settings, "window_width", DefaultWindowWidth),
		Height: settings.GetInt(a.settings, "window_height", DefaultWindowHeight),
	}

	w, err := a.open(platform.Options{
		Backend:   a.cfg.Window.Backend,
		Title:     a.cfg.Application.Title,
		Width:     a.size.Width,
		Height:    a.size.Height,
		Input:     a.input,
		FrameTime: a.cfg.Window.FrameTime.Seconds(),
		MaxFrames: a.cfg.Window.MaxFrames,
	})
	if err != nil {
		return fmt.Errorf("open window: %w", err)
	}
	a.window = w
	// the backend decides the real size (a terminal cannot be resized)
	a.size.Width, a.size.Height = w.Size()
	a.viewport = graphics.Rect{W: a.size.Width, H: a.size.Height}
	a.device = graphics.NewDevice(w.Surface())
	w.OnResize(func(width, height int) { a.ResizeWindow(Size{width, height}) })

	components.RegisterAll(a.registry)

	scripts, err := scripting.NewEngine(a.cfg.Paths.Scripts, a.log.Named("lua"))
	if err != nil {
		return err
	}
	scripts.BindInput(a.input.ActionDown)
	a.scripts = scripts

	if err := a.layers.DispatchErr(layer.OnAppLoad, func(l Layer) error {
		return l.OnAppLoad(a)
	}); err != nil {
		return err
	}

	swap := 0
	if a.cfg.Window.VSync {
		swap = 1
	}
	w.SetSwapInterval(swap)

	bindings, err := input.LoadBindingTable(a.cfg.Paths.Bindings)
	if err != nil {
		return fmt.Errorf("input bindings: %w", err)
	}
	a.input.SetBindings(bindings)
	a.batcher.SetWindowSize(a.size.Width, a.size.Height)

	a.log.Info("application loaded",
		zap.Int("layers", a.layers.Len()),
		zap.Int("components", a.registry.Len()),
		zap.Int("width", a.size.Width),
		zap.Int("height", a.size.Height),
		zap.Bool("editor", a.IsEditor()))
	return nil
}

// release closes what Loading opened, window last.
func (a *Application) release() {
	a.audio.Close()
	if a.scripts != nil {
		a.scripts.Close()
		a.scripts = nil
	}
	if a.window != nil {
		if err := a.window.Close(); err != nil {
			a.log.Warn("close window", zap.Error(err))
		}
	}
}

// frame runs one iteration of the main loop and returns its timestamp.
func (a *Application) frame(last float64) float64 {
	if a.target != nil {
		a.swapScene()
	}

	a.window.PollEvents()
	if a.window.ShouldClose() {
		a.running = false
	}

	now := a.window.Time()
	a.timing.Advance(float32(now - last))

	a.imgui.StartFrame()
	if a.scene != nil {
		a.layers.Dispatch(layer.OnUpdate, func(l Layer) { l.OnUpdate(a) })
		a.layers.Dispatch(layer.OnLateUpdate, func(l Layer) { l.OnLateUpdate(a) })
		a.preRender()
		a.render()
		a.postRender()
	}

	a.input.EndFrame()
	a.imgui.EndFrame()
	a.batcher.EndFrame()
	a.window.SwapBuffers()
	return now
}

func (a *Application) preRender() {
	full := graphics.Rect{W: a.size.Width, H: a.size.Height}
	a.device.BindFramebuffer(graphics.BindBoth, nil)
	a.device.SetViewport(full)
	a.device.SetScissor(full)
	a.device.Clear(graphics.Color{})
	a.layers.Dispatch(layer.OnPreRender, func(l Layer) { l.OnPreRender(a) })
}

// render carries the latest non-nil layer output forward.
func (a *Application) render() {
	var result *graphics.Framebuffer
	a.layers.Dispatch(layer.OnRender, func(l Layer) {
		if out := l.OnRender(a, result); out != nil {
			result = out
		}
	})
	a.renderOutput = result
}

// postRender applies the same carry rule in reverse order, then presents the
// survivor into the primary viewport.
func (a *Application) postRender() {
	a.layers.Dispatch(layer.OnPostRender, func(l Layer) {
		if out := l.OnPostRender(a, a.renderOutput); out != nil {
			a.renderOutput = out
		}
	})
	if a.renderOutput == nil {
		return
	}
	a.device.SetViewport(a.viewport)
	a.device.SetScissor(a.viewport)
	if err := a.device.PresentToSurface(a.renderOutput); err != nil {
		a.log.Error("present frame", zap.Error(err))
	}
}

// ResizeWindow tells every layer about the new size, then resets the primary
// viewport to the whole window.
func (a *Application) ResizeWindow(newSize Size) {
	old := a.size
	a.layers.Dispatch(layer.OnWindowResize, func(l Layer) { l.OnWindowResize(a, old, newSize) })
	a.size = newSize
	a.viewport = graphics.Rect{W: newSize.Width, H: newSize.Height}
	if a.device != nil {
		a.device.ResizeSurface(newSize.Width, newSize.Height)
	}
	a.batcher.SetWindowSize(newSize.Width, newSize.Height)
	if a.scene != nil {
		event.Emit(a.scene.Events(), event.WindowResized{
			OldWidth: old.Width, OldHeight: old.Height,
			NewWidth: newSize.Width, NewHeight: newSize.Height,
		})
	}
	a.log.Debug("window resized", zap.Int("width", newSize.Width), zap.Int("height", newSize.Height))
}

// services is what every scene gets before it wakes.
func (a *Application) services() gameplay.Services {
	return gameplay.Services{
		Log:       a.log.Named("scene"),
		Input:     a.input,
		Timing:    a.timing,
		Scripts:   a.scripts,
		Audio:     a.audio,
		Resources: a.resources,
	}
}
