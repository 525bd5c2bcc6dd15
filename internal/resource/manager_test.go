package resource

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/resonance/engine/internal/graphics"
)

const manifest = `{
	"Sound": [
		{"guid": "00000000-0000-0000-0000-000000000003", "name": "beep", "frequency": 440}
	],
	"Material": [
		{"guid": "00000000-0000-0000-0000-000000000002", "name": "red", "glyph": "@", "color": "#ff0000"},
		{"guid": "00000000-0000-0000-0000-000000000001", "name": "plain"}
	]
}`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadManifestRegistersInFileOrder(t *testing.T) {
	m := NewManager(zap.NewNop())
	n, err := m.LoadManifest(writeFile(t, "level-manifest.json", manifest))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, m.Len())

	mats := All[*Material](m)
	require.Len(t, mats, 2)
	assert.Equal(t, "red", mats[0].Name)
	assert.Equal(t, "plain", mats[1].Name)
	assert.Equal(t, '@', mats[0].Rune())
	assert.Equal(t, graphics.RGB(255, 0, 0), mats[0].Fg())
	assert.Equal(t, '#', mats[1].Rune(), "default glyph")

	snd, ok := Get[*Sound](m, uuid.MustParse("00000000-0000-0000-0000-000000000003"))
	require.True(t, ok)
	assert.Equal(t, 100, snd.DurationMs)
	assert.Equal(t, 1.0, snd.Volume)

	_, ok = Get[*Mesh](m, snd.GUID())
	assert.False(t, ok, "wrong type")

	red, ok := FindByName[*Material](m, "red")
	require.True(t, ok)
	assert.Same(t, mats[0], red)
}

func TestLoadManifestUnknownType(t *testing.T) {
	m := NewManager(zap.NewNop())
	_, err := m.LoadManifest(writeFile(t, "m.json", `{"Texture": [{}]}`))
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Equal(t, 0, m.Len())
}

func TestLoadManifestBadEntryRegistersNothing(t *testing.T) {
	m := NewManager(zap.NewNop())
	_, err := m.LoadManifest(writeFile(t, "m.json", `{"Material": [{"name": "ok"}], "Sound": [{"frequency": 0}]}`))
	assert.Error(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestLoadManifestMissingFile(t *testing.T) {
	m := NewManager(zap.NewNop())
	_, err := m.LoadManifest(filepath.Join(t.TempDir(), "nope.json"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestAddAssignsGUID(t *testing.T) {
	m := NewManager(zap.NewNop())
	s := &Script{Behaviour: "spin"}
	id := m.Add(s)
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, id, s.GUID())
}

func TestCustomFactory(t *testing.T) {
	m := NewManager(zap.NewNop())
	m.Register("Alias", func(data json.RawMessage) (Resource, error) {
		return &Script{Behaviour: "alias"}, nil
	})
	r, err := m.Decode("Alias", nil)
	require.NoError(t, err)
	assert.Equal(t, "Script", r.TypeName())

	_, err = m.Decode("Nope", nil)
	assert.ErrorIs(t, err, ErrUnknownType)
}
