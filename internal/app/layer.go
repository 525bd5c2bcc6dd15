package app

import (
	"github.com/resonance/engine/internal/core/layer"
	"github.com/resonance/engine/internal/gameplay"
	"github.com/resonance/engine/internal/graphics"
	"github.com/resonance/engine/internal/settings"
)

// Size is a window size in cells.
type Size struct {
	Width, Height int
}

// Layer is an engine subsystem taking part in the main loop. The
// application only calls the hooks whose bits are set in Overrides, and
// never calls any hook on a disabled layer.
type Layer interface {
	layer.Participant

	// DefaultConfig is the layer's section of the settings document. It is
	// stored under LayerName, or merged into the root when the name is empty.
	DefaultConfig() settings.Document

	OnAppLoad(a *Application) error
	OnAppUnload(a *Application)
	OnUpdate(a *Application)
	OnLateUpdate(a *Application)
	OnPreRender(a *Application)
	// OnRender receives the output carried from earlier layers and returns
	// its own output, or nil to pass the carried one through.
	OnRender(a *Application, carried *graphics.Framebuffer) *graphics.Framebuffer
	OnPostRender(a *Application, carried *graphics.Framebuffer) *graphics.Framebuffer
	OnSceneLoad(a *Application, scene *gameplay.Scene)
	OnSceneUnload(a *Application, scene *gameplay.Scene)
	OnWindowResize(a *Application, oldSize, newSize Size)
}

// LayerBase gives a layer its name, enabled flag and overrides, plus no-op
// hooks. Embed it and implement the hooks named in the overrides.
type LayerBase struct {
	name      string
	overrides layer.Functions
	disabled  bool
}

func NewLayerBase(name string, overrides layer.Functions) LayerBase {
	return LayerBase{name: name, overrides: overrides}
}

func (b *LayerBase) LayerName() string          { return b.name }
func (b *LayerBase) Overrides() layer.Functions { return b.overrides }
func (b *LayerBase) IsEnabled() bool            { return !b.disabled }
func (b *LayerBase) SetEnabled(on bool)         { b.disabled = !on }

func (*LayerBase) DefaultConfig() settings.Document { return nil }

func (*LayerBase) OnAppLoad(*Application) error                { return nil }
func (*LayerBase) OnAppUnload(*Application)                    {}
func (*LayerBase) OnUpdate(*Application)                       {}
func (*LayerBase) OnLateUpdate(*Application)                   {}
func (*LayerBase) OnPreRender(*Application)                    {}
func (*LayerBase) OnSceneLoad(*Application, *gameplay.Scene)   {}
func (*LayerBase) OnSceneUnload(*Application, *gameplay.Scene) {}
func (*LayerBase) OnWindowResize(*Application, Size, Size)     {}

func (*LayerBase) OnRender(_ *Application, _ *graphics.Framebuffer) *graphics.Framebuffer {
	return nil
}

func (*LayerBase) OnPostRender(_ *Application, _ *graphics.Framebuffer) *graphics.Framebuffer {
	return nil
}
