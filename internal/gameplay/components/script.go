package components

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resonance/engine/internal/gameplay"
	"github.com/resonance/engine/internal/resource"
	"github.com/resonance/engine/internal/ui"
)

// ScriptBehaviour drives its owner with a Lua behaviour. The behaviour is
// named directly or through a Script resource. A failing call logs and
// disables the component.
type ScriptBehaviour struct {
	gameplay.ComponentBase
	Behaviour string    `json:"behaviour"`
	Script    uuid.UUID `json:"script"`

	lastErr error
}

func (*ScriptBehaviour) TypeName() string { return "ScriptBehaviour" }

func (b *ScriptBehaviour) Awake() {
	svc := b.Services()
	if b.Behaviour == "" && b.Script != uuid.Nil && svc.Resources != nil {
		if sc, ok := resource.Get[*resource.Script](svc.Resources, b.Script); ok {
			b.Behaviour = sc.Behaviour
		}
	}
	b.call("awake", -1)
}

func (b *ScriptBehaviour) Update(dt float32)     { b.call("update", float64(dt)) }
func (b *ScriptBehaviour) LateUpdate(dt float32) { b.call("late_update", float64(dt)) }

func (b *ScriptBehaviour) OnDestroy() {
	svc := b.Services()
	if svc == nil || svc.Scripts == nil {
		return
	}
	if g := b.GameObject(); g != nil {
		b.call("destroy", -1)
		svc.Scripts.Release(g)
	}
}

// Err is the error that disabled the behaviour, if any.
func (b *ScriptBehaviour) Err() error { return b.lastErr }

func (b *ScriptBehaviour) call(fn string, dt float64) {
	svc := b.Services()
	g := b.GameObject()
	if svc == nil || svc.Scripts == nil || g == nil || !b.Enabled() {
		return
	}
	if err := svc.Scripts.CallBehaviour(b.Behaviour, fn, g, dt); err != nil {
		b.lastErr = err
		b.SetEnabled(false)
		svc.Log.Error("script behaviour disabled",
			zap.String("object", g.Name()),
			zap.String("behaviour", b.Behaviour),
			zap.Error(err))
	}
}

func (b *ScriptBehaviour) RenderImGui(ctx *ui.Context) {
	ctx.Value("behaviour", b.Behaviour)
	if b.lastErr != nil {
		ctx.Text("error: %v", b.lastErr)
	}
}
