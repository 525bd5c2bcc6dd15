package components

import (
	"go.uber.org/zap"

	"github.com/resonance/engine/internal/core/event"
	"github.com/resonance/engine/internal/core/vmath"
	"github.com/resonance/engine/internal/gameplay"
	"github.com/resonance/engine/internal/physics"
	"github.com/resonance/engine/internal/ui"
)

// RigidBody puts its owner in the scene's physics world.
type RigidBody struct {
	gameplay.ComponentBase
	BodyType    string     `json:"body_type"`
	Mass        float64    `json:"mass"`
	HalfExtents vmath.Vec3 `json:"half_extents"`
	Gravity     bool       `json:"gravity"`

	body   *physics.Body
	synced vmath.Vec3
}

func NewRigidBody() *RigidBody {
	return &RigidBody{
		BodyType:    "dynamic",
		Mass:        1,
		HalfExtents: vmath.One.Scale(0.5),
		Gravity:     true,
	}
}

func (*RigidBody) TypeName() string { return "RigidBody" }

func (r *RigidBody) Awake() {
	g := r.GameObject()
	r.body = &physics.Body{
		Owner:       g.ID(),
		Type:        physics.ParseBodyType(r.BodyType),
		Position:    g.Transform.Position,
		HalfExtents: r.HalfExtents,
		Mass:        r.Mass,
		Gravity:     r.Gravity,
	}
	r.synced = g.Transform.Position
	r.Scene().Physics().Add(r.body)
}

func (r *RigidBody) Body() *physics.Body { return r.body }

func (r *RigidBody) ApplyImpulse(v vmath.Vec3) {
	if r.body != nil {
		r.body.ApplyImpulse(v)
	}
}

func (r *RigidBody) Grounded() bool { return r.body != nil && r.body.Grounded() }

// PreStep copies a transform moved outside physics into the body.
func (r *RigidBody) PreStep() {
	g := r.GameObject()
	if r.body == nil || g == nil {
		return
	}
	if g.Transform.Position != r.synced {
		r.body.Position = g.Transform.Position
	}
}

// PostStep writes the simulated position back to the transform.
func (r *RigidBody) PostStep() {
	g := r.GameObject()
	if r.body == nil || g == nil {
		return
	}
	g.Transform.Position = r.body.Position
	r.synced = r.body.Position
}

func (r *RigidBody) OnDestroy() {
	if r.body != nil && r.Scene() != nil {
		r.Scene().Physics().Remove(r.body)
	}
	r.body = nil
}

func (r *RigidBody) RenderImGui(ctx *ui.Context) {
	if r.body == nil {
		return
	}
	ctx.Value("velocity", r.body.Velocity)
	grounded := r.body.Grounded()
	ctx.Checkbox("grounded", &grounded)
}

// TriggerVolume is a static trigger box around its owner. Overlaps are
// reported as TriggerEntered and TriggerExited events on the scene bus.
type TriggerVolume struct {
	gameplay.ComponentBase
	HalfExtents vmath.Vec3 `json:"half_extents"`

	body *physics.Body
}

func (*TriggerVolume) TypeName() string { return "TriggerVolume" }

func (t *TriggerVolume) Awake() {
	g := t.GameObject()
	ext := t.HalfExtents
	if ext.IsZero() {
		ext = vmath.One
	}
	t.body = t.Scene().Physics().Add(&physics.Body{
		Owner:       g.ID(),
		Type:        physics.Static,
		Trigger:     true,
		Position:    g.Transform.Position,
		HalfExtents: ext,
	})
}

func (t *TriggerVolume) OnDestroy() {
	if t.body != nil && t.Scene() != nil {
		t.Scene().Physics().Remove(t.body)
	}
	t.body = nil
}

// TriggerVolumeEnterBehaviour reacts to bodies entering the trigger on the
// same object: it counts entries and plays the object's SoundEmitter.
type TriggerVolumeEnterBehaviour struct {
	gameplay.ComponentBase

	entered   int
	lastOther string
}

func (*TriggerVolumeEnterBehaviour) TypeName() string { return "TriggerVolumeEnterBehaviour" }

func (b *TriggerVolumeEnterBehaviour) Awake() {
	s := b.Scene()
	event.Subscribe(s.Events(), func(ev event.TriggerEntered) {
		g := b.GameObject()
		if g == nil || !b.Enabled() || ev.Trigger != g.ID() {
			return
		}
		b.entered++
		if other := s.Get(ev.Other); other != nil {
			b.lastOther = other.Name()
		}
		s.Services().Log.Info("trigger entered",
			zap.String("trigger", g.Name()),
			zap.String("other", b.lastOther))
		if snd, ok := gameplay.Get[*SoundEmitter](g); ok {
			snd.Play()
		}
	})
}

func (b *TriggerVolumeEnterBehaviour) Entered() int      { return b.entered }
func (b *TriggerVolumeEnterBehaviour) LastOther() string { return b.lastOther }

func (b *TriggerVolumeEnterBehaviour) RenderImGui(ctx *ui.Context) {
	ctx.Value("entered", b.entered)
}
