package components

import (
	"github.com/resonance/engine/internal/core/vmath"
	"github.com/resonance/engine/internal/gameplay"
	"github.com/resonance/engine/internal/ui"
)

// RotatingBehaviour spins its owner at a constant rate in degrees per second.
type RotatingBehaviour struct {
	gameplay.ComponentBase
	Speed vmath.Vec3 `json:"speed"`
}

func (*RotatingBehaviour) TypeName() string { return "RotatingBehaviour" }

func (r *RotatingBehaviour) Update(dt float32) {
	g := r.GameObject()
	g.Transform.Rotation = wrapDegrees(g.Transform.Rotation.Add(r.Speed.Scale(float64(dt))))
}

func (r *RotatingBehaviour) RenderImGui(ctx *ui.Context) {
	ctx.Value("speed", r.Speed)
}

func wrapDegrees(v vmath.Vec3) vmath.Vec3 {
	w := func(d float64) float64 {
		for d >= 360 {
			d -= 360
		}
		for d < 0 {
			d += 360
		}
		return d
	}
	return vmath.Vec3{X: w(v.X), Y: w(v.Y), Z: w(v.Z)}
}

// JumpBehaviour applies an upward impulse to the owner's RigidBody when the
// jump action is pressed while grounded.
type JumpBehaviour struct {
	gameplay.ComponentBase
	Impulse float64 `json:"impulse"`

	body *RigidBody
}

func (*JumpBehaviour) TypeName() string { return "JumpBehaviour" }

func (j *JumpBehaviour) Awake() {
	j.body, _ = gameplay.Get[*RigidBody](j.GameObject())
	if j.Impulse == 0 {
		j.Impulse = 5
	}
}

func (j *JumpBehaviour) Update(float32) {
	in := j.Services().Input
	if j.body == nil || in == nil {
		return
	}
	if in.ActionPressed("jump") && j.body.Grounded() {
		j.body.ApplyImpulse(vmath.Up.Scale(j.Impulse))
	}
}

// SimpleCameraControl moves and turns its owner from the movement actions.
// Forward and back follow the owner's facing; left and right strafe, and the
// turn actions change yaw.
type SimpleCameraControl struct {
	gameplay.ComponentBase
	MoveSpeed float64 `json:"move_speed"`
	TurnSpeed float64 `json:"turn_speed"`
}

func NewSimpleCameraControl() *SimpleCameraControl {
	return &SimpleCameraControl{MoveSpeed: 4, TurnSpeed: 90}
}

func (*SimpleCameraControl) TypeName() string { return "SimpleCameraControl" }

func (c *SimpleCameraControl) Update(dt float32) {
	in := c.Services().Input
	if in == nil {
		return
	}
	g := c.GameObject()
	step := float64(dt)

	if in.ActionDown("turn_left") {
		g.Transform.Rotation.Y += c.TurnSpeed * step
	}
	if in.ActionDown("turn_right") {
		g.Transform.Rotation.Y -= c.TurnSpeed * step
	}
	g.Transform.Rotation = wrapDegrees(g.Transform.Rotation)

	fwd := g.Transform.Forward()
	right := fwd.RotateY(-90)
	var move vmath.Vec3
	if in.ActionDown("move_forward") {
		move = move.Add(fwd)
	}
	if in.ActionDown("move_back") {
		move = move.Sub(fwd)
	}
	if in.ActionDown("move_right") {
		move = move.Add(right)
	}
	if in.ActionDown("move_left") {
		move = move.Sub(right)
	}
	if move.IsZero() {
		return
	}
	g.Transform.Position = g.Transform.Position.Add(move.Normalize().Scale(c.MoveSpeed * step))
}

func (c *SimpleCameraControl) RenderImGui(ctx *ui.Context) {
	ctx.Value("move_speed", c.MoveSpeed)
}
