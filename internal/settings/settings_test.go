package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func defaults() Document {
	return Document{
		"window_width":  1920,
		"window_height": 1080,
		"render": map[string]any{
			"clear_color": "#101018",
			"depth":       true,
		},
	}
}

func TestMergeEmptyPatchKeepsDefaults(t *testing.T) {
	merged, err := Merge(defaults(), Document{})
	require.NoError(t, err)
	assert.Equal(t, defaults().Clone(), merged)

	again, err := Merge(merged, Document{})
	require.NoError(t, err)
	assert.Equal(t, merged, again, "idempotent")
}

func TestMergeOverridesOnlyPresentKeys(t *testing.T) {
	merged, err := Merge(defaults(), Document{"window_width": 800})
	require.NoError(t, err)

	assert.Equal(t, 800, GetInt(merged, "window_width", 0))
	assert.Equal(t, 1080, GetInt(merged, "window_height", 0))
	render := Section(merged, "render")
	assert.Equal(t, "#101018", GetString(render, "clear_color", ""))
	assert.True(t, GetBool(render, "depth", false))
}

func TestMergeNestedSectionPatch(t *testing.T) {
	merged, err := Merge(defaults(), Document{"render": map[string]any{"depth": false}})
	require.NoError(t, err)
	render := Section(merged, "render")
	assert.False(t, GetBool(render, "depth", true))
	assert.Equal(t, "#101018", GetString(render, "clear_color", ""))
}

func TestResolveWritesDefaultsThenPreservesUserEdits(t *testing.T) {
	path, err := Path(t.TempDir(), "Resonance")
	require.NoError(t, err)
	log := zap.NewNop()

	first, err := Resolve(path, defaults(), log)
	require.NoError(t, err)
	assert.Equal(t, 1920, GetInt(first, "window_width", 0))

	written, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, defaults().Clone(), written)

	written["window_width"] = 640
	require.NoError(t, Save(path, written))

	next := defaults()
	next["audio"] = map[string]any{"enabled": true}
	second, err := Resolve(path, next, log)
	require.NoError(t, err)
	assert.Equal(t, 640, GetInt(second, "window_width", 0))
	assert.True(t, GetBool(Section(second, "audio"), "enabled", false))
}

func TestResolveRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app", FileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Resolve(path, defaults(), zap.NewNop())
	assert.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}
