package gameplay

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"github.com/resonance/engine/internal/core/ecs"
	"github.com/resonance/engine/internal/core/vmath"
)

// Transform is position, euler rotation in degrees, and scale.
type Transform struct {
	Position vmath.Vec3 `json:"position"`
	Rotation vmath.Vec3 `json:"rotation"`
	Scale    vmath.Vec3 `json:"scale"`
}

func Identity() Transform { return Transform{Scale: vmath.One} }

// Forward is the unit vector the transform faces along -Z, rotated by yaw.
func (t Transform) Forward() vmath.Vec3 {
	return vmath.Vec3{Z: -1}.RotateY(t.Rotation.Y)
}

// GameObject is a named entity in a scene: a transform plus an ordered set
// of components, at most one of each concrete type.
type GameObject struct {
	Transform Transform

	id         ecs.EntityID
	guid       uuid.UUID
	name       string
	scene      *Scene
	components []Component
}

func (g *GameObject) ID() ecs.EntityID { return g.id }
func (g *GameObject) GUID() uuid.UUID  { return g.guid }
func (g *GameObject) Name() string     { return g.name }
func (g *GameObject) Scene() *Scene    { return g.scene }

func (g *GameObject) String() string { return fmt.Sprintf("%s(%s)", g.name, g.id) }

// Position and the accessors below let scripts drive the transform.
func (g *GameObject) Position() vmath.Vec3     { return g.Transform.Position }
func (g *GameObject) SetPosition(p vmath.Vec3) { g.Transform.Position = p }
func (g *GameObject) Rotation() vmath.Vec3     { return g.Transform.Rotation }
func (g *GameObject) SetRotation(r vmath.Vec3) { g.Transform.Rotation = r }

// Add attaches c. When the scene is already awake the component is woken
// immediately so it never sees Update before Awake.
func (g *GameObject) Add(c Component) error {
	t := reflect.TypeOf(c)
	for _, have := range g.components {
		if reflect.TypeOf(have) == t {
			return fmt.Errorf("%w: %s on %s", ErrDuplicateComponent, c.TypeName(), g.name)
		}
	}
	c.base().attach(g.scene, g.id)
	g.components = append(g.components, c)
	if g.scene != nil && g.scene.awoken {
		wake(c)
	}
	return nil
}

// MustAdd is Add for programmatic scene construction; it panics on a
// duplicate component type.
func (g *GameObject) MustAdd(c Component) Component {
	if err := g.Add(c); err != nil {
		panic(err)
	}
	return c
}

// Remove detaches c immediately. It reports false when c is not attached.
func (g *GameObject) Remove(c Component) bool {
	for i, have := range g.components {
		if have == c {
			g.components = append(g.components[:i], g.components[i+1:]...)
			destroyComponent(c)
			return true
		}
	}
	return false
}

// Components returns the attached components in attachment order.
func (g *GameObject) Components() []Component {
	return append([]Component(nil), g.components...)
}

// HasType reports whether a component with the given type tag is attached.
func (g *GameObject) HasType(tag string) bool {
	for _, c := range g.components {
		if c.TypeName() == tag {
			return true
		}
	}
	return false
}

// Destroy queues the object for removal at the end of the current phase.
func (g *GameObject) Destroy() {
	if g.scene != nil {
		g.scene.objects.MarkForDestruction(g.id)
	}
}

// Alive reports whether the object is still in its scene.
func (g *GameObject) Alive() bool {
	return g.scene != nil && g.scene.objects.Has(g.id)
}

// Get returns the component of type T attached to g.
func Get[T Component](g *GameObject) (T, bool) {
	for _, c := range g.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

func Has[T Component](g *GameObject) bool {
	_, ok := Get[T](g)
	return ok
}

func destroyComponent(c Component) {
	if d, ok := c.(Destroyer); ok {
		d.OnDestroy()
	}
	c.base().detach()
}
