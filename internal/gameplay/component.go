package gameplay

import (
	"github.com/resonance/engine/internal/core/ecs"
	"github.com/resonance/engine/internal/ui"
)

// Component is a unit of per-object behaviour. Concrete components embed
// ComponentBase and implement whichever capability interfaces they need.
// Exported fields are the serialized state.
type Component interface {
	TypeName() string
	base() *ComponentBase
}

// Awaker runs once per scene activation, before any Update.
type Awaker interface{ Awake() }

type Updater interface{ Update(dt float32) }

type LateUpdater interface{ LateUpdate(dt float32) }

// ImGuiRenderer draws the component's inspector rows.
type ImGuiRenderer interface{ RenderImGui(ctx *ui.Context) }

// Destroyer is called when the component is removed or its object destroyed.
type Destroyer interface{ OnDestroy() }

// ComponentBase holds the per-component bookkeeping. The owner is a handle
// into the scene's object table, never a pointer, so a component cannot keep
// a destroyed object alive.
type ComponentBase struct {
	owner    ecs.EntityID
	scene    *Scene
	disabled bool
	awake    bool
}

func (c *ComponentBase) base() *ComponentBase { return c }

func (c *ComponentBase) Enabled() bool       { return !c.disabled }
func (c *ComponentBase) SetEnabled(on bool)  { c.disabled = !on }
func (c *ComponentBase) IsAwake() bool       { return c.awake }
func (c *ComponentBase) Owner() ecs.EntityID { return c.owner }
func (c *ComponentBase) Scene() *Scene       { return c.scene }

// GameObject resolves the owner handle. It is nil once the object is gone.
func (c *ComponentBase) GameObject() *GameObject {
	if c.scene == nil {
		return nil
	}
	g, _ := c.scene.objects.Get(c.owner)
	return g
}

// Services is shorthand for Scene().Services(); nil when detached.
func (c *ComponentBase) Services() *Services {
	if c.scene == nil {
		return nil
	}
	return &c.scene.services
}

func (c *ComponentBase) attach(s *Scene, owner ecs.EntityID) {
	c.scene, c.owner, c.awake = s, owner, false
}

func (c *ComponentBase) detach() {
	c.scene, c.owner, c.awake = nil, 0, false
}

// wake runs Awake once; later calls are no-ops until the component is
// detached.
func wake(c Component) {
	b := c.base()
	if b.awake {
		return
	}
	b.awake = true
	if a, ok := c.(Awaker); ok {
		a.Awake()
	}
}
