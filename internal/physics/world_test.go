package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonance/engine/internal/core/vmath"
)

func box(typ BodyType, pos vmath.Vec3) *Body {
	return &Body{Type: typ, Position: pos, HalfExtents: vmath.One.Scale(0.5), Mass: 1, Gravity: true}
}

func TestGravityAndGround(t *testing.T) {
	w := NewWorld()
	b := w.Add(box(Dynamic, vmath.V3(0, 5, 0)))
	for i := 0; i < 300; i++ {
		w.Step(1.0 / 60)
	}
	assert.InDelta(t, 0.5, b.Position.Y, 1e-9, "rests on the ground plane")
	assert.Equal(t, 0.0, b.Velocity.Y)
	assert.True(t, b.Grounded())
}

func TestStaticAndKinematicIgnoreGravity(t *testing.T) {
	w := NewWorld()
	s := w.Add(box(Static, vmath.V3(0, 3, 0)))
	k := w.Add(box(Kinematic, vmath.V3(0, 3, 0)))
	k.Velocity = vmath.V3(1, 0, 0)
	w.Step(1)
	assert.Equal(t, vmath.V3(0, 3, 0), s.Position)
	assert.Equal(t, vmath.V3(1, 3, 0), k.Position)
}

func TestImpulseOnlyMovesDynamic(t *testing.T) {
	d := box(Dynamic, vmath.Zero)
	d.Mass = 2
	d.ApplyImpulse(vmath.V3(0, 4, 0))
	assert.Equal(t, vmath.V3(0, 2, 0), d.Velocity)

	s := box(Static, vmath.Zero)
	s.ApplyImpulse(vmath.V3(0, 4, 0))
	assert.True(t, s.Velocity.IsZero())
}

func TestDynamicLandsOnStatic(t *testing.T) {
	w := NewWorld()
	floor := w.Add(&Body{Type: Static, Position: vmath.V3(0, 2, 0), HalfExtents: vmath.V3(5, 0.5, 5)})
	b := w.Add(box(Dynamic, vmath.V3(0, 4, 0)))
	for i := 0; i < 200; i++ {
		w.Step(1.0 / 60)
	}
	assert.InDelta(t, floor.Position.Y+1, b.Position.Y, 1e-6)
	assert.True(t, b.Grounded())
}

func TestTriggerEnterExit(t *testing.T) {
	w := NewWorld()
	w.GroundPlane = false
	trig := w.Add(&Body{Type: Static, Trigger: true, HalfExtents: vmath.One})
	mover := w.Add(&Body{Type: Kinematic, Position: vmath.V3(-3, 0, 0), HalfExtents: vmath.One.Scale(0.5)})
	mover.Velocity = vmath.V3(1, 0, 0)

	var log []bool
	w.OnTrigger(func(tr, other *Body, entered bool) {
		require.Same(t, trig, tr)
		require.Same(t, mover, other)
		log = append(log, entered)
	})
	for i := 0; i < 6; i++ {
		w.Step(1)
	}
	assert.Equal(t, []bool{true, false}, log)
}

func TestRemoveForgetsTriggerOccupant(t *testing.T) {
	w := NewWorld()
	w.GroundPlane = false
	w.Add(&Body{Type: Static, Trigger: true, HalfExtents: vmath.One})
	b := w.Add(&Body{Type: Kinematic, HalfExtents: vmath.One})
	var events int
	w.OnTrigger(func(*Body, *Body, bool) { events++ })

	w.Step(0.1)
	w.Remove(b)
	w.Step(0.1)
	assert.Equal(t, 1, events)
	assert.Equal(t, 1, w.Len())
}

func TestOverlaps(t *testing.T) {
	w := NewWorld()
	a := w.Add(box(Static, vmath.Zero))
	w.Add(box(Static, vmath.V3(10, 0, 0)))
	hits := w.Overlaps(vmath.V3(0.25, 0, 0))
	require.Len(t, hits, 1)
	assert.Same(t, a, hits[0])
	assert.Empty(t, w.Overlaps(vmath.V3(5, 5, 5)))
}

func TestGravityScaleLeavesGravityUntouched(t *testing.T) {
	w := NewWorld()
	w.GroundPlane = false
	w.GravityScale = 2
	b := w.Add(box(Dynamic, vmath.Zero))
	w.Step(1)
	assert.InDelta(t, -19.62, b.Velocity.Y, 1e-9)
	assert.Equal(t, vmath.Vec3{Y: -9.81}, w.Gravity)
}
