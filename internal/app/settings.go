package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/resonance/engine/internal/settings"
)

// DefaultSettings aggregates every layer's default configuration. Named
// layers get their own section; unnamed layers merge into the root, where
// they may silently overwrite each other.
func (a *Application) DefaultSettings() settings.Document {
	doc := settings.Document{}
	for _, l := range a.layers.Layers() {
		cfg := l.DefaultConfig()
		if name := l.LayerName(); name != "" {
			if cfg == nil {
				cfg = settings.Document{}
			}
			doc[name] = cfg
			continue
		}
		if len(cfg) == 0 {
			continue
		}
		a.log.Warn("unnamed layer injects settings into the root namespace",
			zap.Strings("keys", keys(cfg)))
		merged, err := settings.Merge(doc, cfg)
		if err != nil {
			a.log.Warn("merge unnamed layer settings", zap.Error(err))
			continue
		}
		doc = merged
	}
	doc["window_width"] = DefaultWindowWidth
	doc["window_height"] = DefaultWindowHeight
	return doc
}

func keys(d settings.Document) []string {
	out := make([]string, 0, len(d))
	for k := range d {
		out = append(out, k)
	}
	return out
}

func (a *Application) configureSettings() error {
	path, err := settings.Path(a.cfg.Application.SettingsDir, a.cfg.Application.Name)
	if err != nil {
		return err
	}
	doc, err := settings.Resolve(path, a.DefaultSettings(), a.log)
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	a.settingsPath = path
	a.settings = doc
	return nil
}

// SaveSettings writes the current settings document back to disk.
func (a *Application) SaveSettings() error {
	if a.settingsPath == "" {
		return fmt.Errorf("save settings: not loaded")
	}
	return settings.Save(a.settingsPath, a.settings)
}
