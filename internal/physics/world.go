package physics

import (
	"math"

	"github.com/resonance/engine/internal/core/ecs"
	"github.com/resonance/engine/internal/core/vmath"
)

// BodyType selects how a body is integrated.
type BodyType int

const (
	// Static bodies never move.
	Static BodyType = iota
	// Kinematic bodies move by velocity only and are not pushed.
	Kinematic
	// Dynamic bodies receive gravity, forces and collision response.
	Dynamic
)

func (t BodyType) String() string {
	switch t {
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	case Dynamic:
		return "dynamic"
	}
	return "unknown"
}

// ParseBodyType is the inverse of String; unknown names are dynamic.
func ParseBodyType(s string) BodyType {
	switch s {
	case "static":
		return Static
	case "kinematic":
		return Kinematic
	}
	return Dynamic
}

// Body is an axis aligned box. Owner is the entity the body belongs to.
type Body struct {
	Owner       ecs.EntityID
	Type        BodyType
	Position    vmath.Vec3
	Velocity    vmath.Vec3
	HalfExtents vmath.Vec3
	Mass        float64
	Trigger     bool
	Gravity     bool

	grounded bool
	force    vmath.Vec3
	inside   map[*Body]struct{}
	world    *World
}

func (b *Body) Grounded() bool { return b.grounded }

// ApplyImpulse changes velocity by impulse / mass. Only dynamic bodies respond.
func (b *Body) ApplyImpulse(impulse vmath.Vec3) {
	if b.Type != Dynamic {
		return
	}
	b.Velocity = b.Velocity.Add(impulse.Scale(1 / b.mass()))
}

// ApplyForce accumulates a force applied during the next step.
func (b *Body) ApplyForce(f vmath.Vec3) { b.force = b.force.Add(f) }

func (b *Body) mass() float64 {
	if b.Mass <= 0 {
		return 1
	}
	return b.Mass
}

// Contains reports whether p lies inside the body's box.
func (b *Body) Contains(p vmath.Vec3) bool {
	d := p.Sub(b.Position).Abs()
	return d.X <= b.HalfExtents.X && d.Y <= b.HalfExtents.Y && d.Z <= b.HalfExtents.Z
}

func overlap(a, b *Body) (vmath.Vec3, bool) {
	d := b.Position.Sub(a.Position)
	ext := a.HalfExtents.Add(b.HalfExtents)
	pen := vmath.Vec3{X: ext.X - math.Abs(d.X), Y: ext.Y - math.Abs(d.Y), Z: ext.Z - math.Abs(d.Z)}
	if pen.X <= 0 || pen.Y <= 0 || pen.Z <= 0 {
		return vmath.Vec3{}, false
	}
	// minimum translation vector pushing b out of a
	switch {
	case pen.Y <= pen.X && pen.Y <= pen.Z:
		return vmath.Vec3{Y: math.Copysign(pen.Y, d.Y)}, true
	case pen.X <= pen.Z:
		return vmath.Vec3{X: math.Copysign(pen.X, d.X)}, true
	default:
		return vmath.Vec3{Z: math.Copysign(pen.Z, d.Z)}, true
	}
}

// TriggerFunc is called when a solid body enters or leaves a trigger.
type TriggerFunc func(trigger, other *Body, entered bool)

// World owns the bodies of one scene. It is stepped from the application
// goroutine only.
type World struct {
	Gravity vmath.Vec3
	// GravityScale multiplies Gravity during Step. Gravity itself stays as
	// the scene document declared it.
	GravityScale float64
	// GroundPlane enables the infinite floor at y=0.
	GroundPlane bool

	bodies    []*Body
	onTrigger TriggerFunc
}

func NewWorld() *World {
	return &World{Gravity: vmath.Vec3{Y: -9.81}, GravityScale: 1, GroundPlane: true}
}

// OnTrigger sets the trigger callback. It runs inside Step and must not add
// or remove bodies.
func (w *World) OnTrigger(fn TriggerFunc) { w.onTrigger = fn }

// Add registers b. Adding a body twice is a no-op.
func (w *World) Add(b *Body) *Body {
	if b.world == w {
		return b
	}
	b.world = w
	if b.Trigger {
		b.inside = make(map[*Body]struct{})
	}
	w.bodies = append(w.bodies, b)
	return b
}

// Remove unregisters b. Triggers it was inside forget it without an exit.
func (w *World) Remove(b *Body) {
	if b.world != w {
		return
	}
	b.world = nil
	for i, o := range w.bodies {
		if o == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	for _, o := range w.bodies {
		if o.inside != nil {
			delete(o.inside, b)
		}
	}
}

func (w *World) Bodies() []*Body { return w.bodies }
func (w *World) Len() int        { return len(w.bodies) }

// Step advances the simulation by dt seconds: semi-implicit Euler
// integration, ground clamp, solid contact resolution and trigger detection.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	g := w.Gravity.Scale(w.GravityScale)
	for _, b := range w.bodies {
		switch b.Type {
		case Dynamic:
			acc := b.force.Scale(1 / b.mass())
			if b.Gravity {
				acc = acc.Add(g)
			}
			b.Velocity = b.Velocity.Add(acc.Scale(dt))
			b.Position = b.Position.Add(b.Velocity.Scale(dt))
		case Kinematic:
			b.Position = b.Position.Add(b.Velocity.Scale(dt))
		}
		b.force = vmath.Vec3{}
		b.grounded = false
		if w.GroundPlane && b.Type == Dynamic && !b.Trigger && b.Position.Y-b.HalfExtents.Y <= 0 {
			b.Position.Y = b.HalfExtents.Y
			if b.Velocity.Y < 0 {
				b.Velocity.Y = 0
			}
			b.grounded = true
		}
	}
	w.resolveContacts()
	w.detectTriggers()
}

func (w *World) resolveContacts() {
	for i, a := range w.bodies {
		if a.Trigger {
			continue
		}
		for _, b := range w.bodies[i+1:] {
			if b.Trigger || (a.Type != Dynamic && b.Type != Dynamic) {
				continue
			}
			mtv, ok := overlap(a, b)
			if !ok {
				continue
			}
			switch {
			case a.Type == Dynamic && b.Type == Dynamic:
				half := mtv.Scale(0.5)
				push(a, half.Neg())
				push(b, half)
			case b.Type == Dynamic:
				push(b, mtv)
			default:
				push(a, mtv.Neg())
			}
		}
	}
}

// push moves b by mtv and cancels velocity into the contact.
func push(b *Body, mtv vmath.Vec3) {
	b.Position = b.Position.Add(mtv)
	if mtv.X != 0 && mtv.X*b.Velocity.X < 0 {
		b.Velocity.X = 0
	}
	if mtv.Y != 0 && mtv.Y*b.Velocity.Y < 0 {
		b.Velocity.Y = 0
	}
	if mtv.Z != 0 && mtv.Z*b.Velocity.Z < 0 {
		b.Velocity.Z = 0
	}
	if mtv.Y > 0 {
		b.grounded = true
	}
}

func (w *World) detectTriggers() {
	for _, t := range w.bodies {
		if !t.Trigger {
			continue
		}
		for _, o := range w.bodies {
			if o == t || o.Trigger {
				continue
			}
			_, now := overlap(t, o)
			_, was := t.inside[o]
			switch {
			case now && !was:
				t.inside[o] = struct{}{}
				if w.onTrigger != nil {
					w.onTrigger(t, o, true)
				}
			case !now && was:
				delete(t.inside, o)
				if w.onTrigger != nil {
					w.onTrigger(t, o, false)
				}
			}
		}
	}
}

// Overlaps returns the bodies whose box contains p, in registration order.
func (w *World) Overlaps(p vmath.Vec3) []*Body {
	var out []*Body
	for _, b := range w.bodies {
		if b.Contains(p) {
			out = append(out, b)
		}
	}
	return out
}

// Clear removes every body.
func (w *World) Clear() {
	for _, b := range w.bodies {
		b.world = nil
	}
	w.bodies = nil
}
