package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/resonance/engine/internal/core/vmath"
)

type fakeHost struct {
	name     string
	pos, rot vmath.Vec3
}

func (h *fakeHost) Name() string             { return h.name }
func (h *fakeHost) Position() vmath.Vec3     { return h.pos }
func (h *fakeHost) SetPosition(v vmath.Vec3) { h.pos = v }
func (h *fakeHost) Rotation() vmath.Vec3     { return h.rot }
func (h *fakeHost) SetRotation(v vmath.Vec3) { h.rot = v }

const mover = `
behaviours.mover = {
	awake = function(self)
		self.steps = 0
	end,
	update = function(self, dt)
		local x, y, z = self:get_position()
		self:set_position(x + dt, y, z)
		self.steps = self.steps + 1
		if action_down("jump") then
			self:set_rotation(0, 90, 0)
		end
	end,
}
`

func newEngine(t *testing.T, files map[string]string) *Engine {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "behaviours"), 0o755))
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestCallBehaviourMovesHost(t *testing.T) {
	e := newEngine(t, map[string]string{"behaviours/mover.lua": mover})
	require.True(t, e.HasBehaviour("mover"))
	assert.Equal(t, []string{"mover"}, e.Behaviours())

	h := &fakeHost{name: "box"}
	require.NoError(t, e.CallBehaviour("mover", "awake", h, -1))
	require.NoError(t, e.CallBehaviour("mover", "update", h, 0.5))
	require.NoError(t, e.CallBehaviour("mover", "update", h, 0.5))
	assert.InDelta(t, 1.0, h.pos.X, 1e-9)
	assert.True(t, h.rot.IsZero())

	jump := false
	e.BindInput(func(action string) bool { return action == "jump" && jump })
	jump = true
	require.NoError(t, e.CallBehaviour("mover", "update", h, 0))
	assert.Equal(t, vmath.V3(0, 90, 0), h.rot)

	steps := e.self(h).RawGetString("steps")
	assert.Equal(t, "3", steps.String(), "self state persists between calls")
}

func TestMissingFunctionIsNoop(t *testing.T) {
	e := newEngine(t, map[string]string{"mover.lua": mover})
	assert.NoError(t, e.CallBehaviour("mover", "late_update", &fakeHost{}, 0))
	assert.Error(t, e.CallBehaviour("ghost", "update", &fakeHost{}, 0))
}

func TestScriptErrorIsReturned(t *testing.T) {
	e := newEngine(t, map[string]string{"bad.lua": `behaviours.bad = { update = function(self, dt) error("boom") end }`})
	err := e.CallBehaviour("bad", "update", &fakeHost{}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestMissingDirIsEmptyEngine(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "none"), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	assert.Empty(t, e.Behaviours())
}

func TestSyntaxErrorFailsLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.lua"), []byte("behaviours.x = {"), 0o644))
	_, err := NewEngine(dir, zap.NewNop())
	assert.Error(t, err)
}
