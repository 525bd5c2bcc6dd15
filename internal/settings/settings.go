package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"go.uber.org/zap"
)

// FileName is the settings document name inside the per-application directory.
const FileName = "app-settings.json"

// Document is a JSON object. Top-level keys are layer names (each mapping to
// that layer's section) plus window keys.
type Document map[string]any

// Clone returns a deep copy via a JSON round trip.
func (d Document) Clone() Document {
	out := Document{}
	if d == nil {
		return out
	}
	data, err := json.Marshal(d)
	if err != nil {
		return out
	}
	_ = json.Unmarshal(data, &out)
	return out
}

// Merge applies patch over base with JSON merge-patch semantics (RFC 7386):
// keys present in patch override, nested objects merge recursively, keys
// absent from patch keep the base value, a null in patch deletes the key.
func Merge(base, patch Document) (Document, error) {
	baseData, err := json.Marshal(orEmpty(base))
	if err != nil {
		return nil, fmt.Errorf("encode base: %w", err)
	}
	patchData, err := json.Marshal(orEmpty(patch))
	if err != nil {
		return nil, fmt.Errorf("encode patch: %w", err)
	}
	merged, err := jsonpatch.MergePatch(baseData, patchData)
	if err != nil {
		return nil, fmt.Errorf("merge patch: %w", err)
	}
	out := Document{}
	if err := json.Unmarshal(merged, &out); err != nil {
		return nil, fmt.Errorf("decode merged: %w", err)
	}
	return out, nil
}

func orEmpty(d Document) Document {
	if d == nil {
		return Document{}
	}
	return d
}

// Path returns <root>/<appName>/app-settings.json. An empty root resolves to
// the OS user configuration directory.
func Path(root, appName string) (string, error) {
	if root == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("user config dir: %w", err)
		}
		root = dir
	}
	return filepath.Join(root, appName, FileName), nil
}

// Load reads a settings document. A missing file returns fs.ErrNotExist.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := Document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return doc, nil
}

// Save writes doc as tab-indented JSON, creating the directory if needed.
func Save(path string, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := json.MarshalIndent(orEmpty(doc), "", "\t")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}

// Resolve merges the persisted document at path over defaults. When nothing
// is persisted yet the defaults are written out so the file exists next run.
// A corrupt file is an error; it is never silently overwritten.
func Resolve(path string, defaults Document, log *zap.Logger) (Document, error) {
	persisted, err := Load(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Info("no persisted settings, writing defaults", zap.String("path", path))
		doc := defaults.Clone()
		if err := Save(path, doc); err != nil {
			return nil, err
		}
		return doc, nil
	case err != nil:
		return nil, err
	}

	merged, err := Merge(defaults, persisted)
	if err != nil {
		return nil, fmt.Errorf("merge settings %s: %w", path, err)
	}
	log.Info("settings loaded", zap.String("path", path), zap.Int("keys", len(merged)))
	return merged, nil
}
