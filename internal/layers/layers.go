// Package layers holds the engine's standard layers. Their registration
// order is the dispatch order of every forward hook.
package layers

import (
	"github.com/resonance/engine/internal/app"
)

// Default returns the engine's layer list. The debug layer is only present
// in editor mode.
func Default(editor bool) []app.Layer {
	out := []app.Layer{
		NewAppLayer(),
		NewDefaultSceneLayer(),
		NewLogicUpdateLayer(),
		NewPhysicsLayer(),
		NewAudioLayer(),
		NewRenderLayer(),
		NewInterfaceLayer(),
		NewPostProcessingLayer(),
	}
	if editor {
		out = append(out, NewDebugLayer())
	}
	return out
}
