package app

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/resonance/engine/internal/core/event"
	"github.com/resonance/engine/internal/core/layer"
	"github.com/resonance/engine/internal/gameplay"
)

// LoadScene stages s. The swap happens at the top of the next frame, so no
// layer ever observes a half-swapped state. Staging again before then
// replaces the earlier target.
func (a *Application) LoadScene(s *gameplay.Scene) {
	a.target = s
	a.targetPath = ""
}

// ManifestPath is the optional resource manifest loaded before the scene at
// path: "<dir>/<stem>-manifest.json".
func ManifestPath(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Join(filepath.Dir(path), stem+"-manifest.json")
}

// LoadScenePath loads the manifest sidecar (if any) and the scene document at
// path, and stages the scene. It reports false, leaving the current scene
// untouched, when the document is missing or invalid.
func (a *Application) LoadScenePath(path string) bool {
	manifest := ManifestPath(path)
	n, err := a.resources.LoadManifest(manifest)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		a.log.Debug("no scene manifest", zap.String("path", manifest))
	case err != nil:
		a.log.Error("load scene manifest", zap.String("path", manifest), zap.Error(err))
		return false
	default:
		a.log.Info("scene manifest loaded", zap.String("path", manifest), zap.Int("resources", n))
	}

	s, err := gameplay.Load(path, a.registry)
	if err != nil {
		a.log.Error("load scene", zap.String("path", path), zap.Error(err))
		return false
	}
	a.LoadScene(s)
	a.targetPath = path
	return true
}

// swapScene performs the staged transition: unload the old scene (reverse
// order), replace it, load the new one (forward order), wake it, and start
// playing unless this is an editor build. Restaging the current scene keeps
// its objects and wakes them again.
func (a *Application) swapScene() {
	restage := a.scene == a.target
	if old := a.scene; old != nil {
		a.layers.Dispatch(layer.OnSceneUnload, func(l Layer) { l.OnSceneUnload(a, old) })
		if restage {
			old.Sleep()
		} else {
			old.Destroy()
		}
	}

	a.scene, a.target = a.target, nil
	if !restage || a.targetPath != "" {
		a.scenePath = a.targetPath
	}
	a.targetPath = ""
	a.scene.SetServices(a.services())
	a.timing.ResetSceneTimers()

	a.layers.Dispatch(layer.OnSceneLoad, func(l Layer) { l.OnSceneLoad(a, a.scene) })
	a.scene.Awake()
	a.scene.SetPlaying(!a.IsEditor())
	event.Emit(a.scene.Events(), event.SceneLoaded{Name: a.scene.Name})

	a.log.Info("scene loaded",
		zap.String("scene", a.scene.Name),
		zap.Int("objects", a.scene.Len()),
		zap.Bool("playing", a.scene.IsPlaying()))
}
