package gameplay

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resonance/engine/internal/audio"
	"github.com/resonance/engine/internal/core/ecs"
	"github.com/resonance/engine/internal/core/event"
	"github.com/resonance/engine/internal/core/timing"
	"github.com/resonance/engine/internal/input"
	"github.com/resonance/engine/internal/physics"
	"github.com/resonance/engine/internal/resource"
	"github.com/resonance/engine/internal/scripting"
	"github.com/resonance/engine/internal/ui"
)

// Services are the engine subsystems components may use. The application
// fills them in before the scene is woken; any of them may be nil in tests.
type Services struct {
	Log       *zap.Logger
	Input     *input.Engine
	Timing    *timing.Timing
	Scripts   *scripting.Engine
	Audio     *audio.Mixer
	Resources *resource.Manager
}

// Scene owns its objects in insertion order together with the per-scene
// event bus and physics world.
type Scene struct {
	Name string

	objects *ecs.Table[GameObject]
	byName  map[string]ecs.EntityID
	byGUID  map[uuid.UUID]ecs.EntityID

	playing         bool
	reloadRequested bool
	awoken          bool
	backup          []byte

	events   *event.Bus
	physics  *physics.World
	services Services
}

func NewScene(name string) *Scene {
	s := &Scene{
		Name:    name,
		objects: ecs.NewTable[GameObject](),
		byName:  make(map[string]ecs.EntityID),
		byGUID:  make(map[uuid.UUID]ecs.EntityID),
		events:  event.NewBus(),
		physics: physics.NewWorld(),
		services: Services{
			Log: zap.NewNop(),
		},
	}
	s.objects.OnDestroy(s.release)
	s.physics.OnTrigger(func(trigger, other *physics.Body, entered bool) {
		if entered {
			event.Emit(s.events, event.TriggerEntered{Trigger: trigger.Owner, Other: other.Owner})
		} else {
			event.Emit(s.events, event.TriggerExited{Trigger: trigger.Owner, Other: other.Owner})
		}
	})
	return s
}

func (s *Scene) Events() *event.Bus        { return s.events }
func (s *Scene) Physics() *physics.World   { return s.physics }
func (s *Scene) Services() *Services       { return &s.services }
func (s *Scene) Len() int                  { return s.objects.Len() }
func (s *Scene) IsAwake() bool             { return s.awoken }
func (s *Scene) IsPlaying() bool           { return s.playing }
func (s *Scene) SetPlaying(on bool)        { s.playing = on }
func (s *Scene) ReloadRequested() bool     { return s.reloadRequested }
func (s *Scene) RequestSceneReload(v bool) { s.reloadRequested = v }

// SetServices installs the engine subsystems. A nil logger becomes a no-op.
func (s *Scene) SetServices(svc Services) {
	if svc.Log == nil {
		svc.Log = zap.NewNop()
	}
	s.services = svc
}

// CreateGameObject adds an empty object. Names are unique within the scene;
// an empty name is replaced with a generated one.
func (s *Scene) CreateGameObject(name string) (*GameObject, error) {
	return s.createWithGUID(name, uuid.New())
}

func (s *Scene) createWithGUID(name string, guid uuid.UUID) (*GameObject, error) {
	if name == "" {
		name = fmt.Sprintf("GameObject %d", s.objects.Len()+1)
		for s.hasName(name) {
			name += "'"
		}
	}
	if s.hasName(name) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if guid == uuid.Nil {
		guid = uuid.New()
	}
	if _, dup := s.byGUID[guid]; dup {
		return nil, fmt.Errorf("duplicate object guid %s", guid)
	}
	g := &GameObject{
		Transform: Identity(),
		guid:      guid,
		name:      name,
		scene:     s,
	}
	g.id = s.objects.Insert(g)
	s.byName[name] = g.id
	s.byGUID[guid] = g.id
	return g, nil
}

// MustCreate is CreateGameObject for programmatic scene building.
func (s *Scene) MustCreate(name string) *GameObject {
	g, err := s.CreateGameObject(name)
	if err != nil {
		panic(err)
	}
	return g
}

func (s *Scene) hasName(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// release runs when the table drops an object: components are destroyed in
// reverse attachment order and lookups forget the object.
func (s *Scene) release(_ ecs.EntityID, g *GameObject) {
	for i := len(g.components) - 1; i >= 0; i-- {
		destroyComponent(g.components[i])
	}
	g.components = nil
	delete(s.byName, g.name)
	delete(s.byGUID, g.guid)
	g.scene = nil
}

func (s *Scene) Get(id ecs.EntityID) *GameObject {
	g, _ := s.objects.Get(id)
	return g
}

func (s *Scene) FindObjectByName(name string) *GameObject {
	id, ok := s.byName[name]
	if !ok {
		return nil
	}
	return s.Get(id)
}

func (s *Scene) FindObjectByGUID(guid uuid.UUID) *GameObject {
	id, ok := s.byGUID[guid]
	if !ok {
		return nil
	}
	return s.Get(id)
}

// Objects returns the live objects in insertion order.
func (s *Scene) Objects() []*GameObject {
	out := make([]*GameObject, 0, s.objects.Len())
	s.objects.Each(func(_ ecs.EntityID, g *GameObject) {
		out = append(out, g)
	})
	return out
}

// RemoveGameObject destroys g immediately, cascading to its components.
func (s *Scene) RemoveGameObject(g *GameObject) bool {
	if g == nil || g.scene != s {
		return false
	}
	return s.objects.Remove(g.id)
}

// Awake wakes every component once. Components attached afterwards are woken
// as they are added.
func (s *Scene) Awake() {
	s.awoken = true
	s.objects.Each(func(_ ecs.EntityID, g *GameObject) {
		for _, c := range g.Components() {
			if c.base().scene == s {
				wake(c)
			}
		}
	})
	s.services.Log.Debug("scene awake", zap.String("scene", s.Name), zap.Int("objects", s.objects.Len()))
}

// Sleep returns the scene to its pre-Awake state without removing objects:
// component awake flags are cleared and the physics world and event bus are
// emptied, so the next Awake rebuilds them exactly once.
func (s *Scene) Sleep() {
	s.awoken = false
	s.objects.Each(func(_ ecs.EntityID, g *GameObject) {
		for _, c := range g.components {
			c.base().awake = false
		}
	})
	s.physics.Clear()
	s.events.Reset()
}

// Update calls Update on every enabled, awake component in object order,
// then removes objects destroyed during the walk.
func (s *Scene) Update(dt float32) {
	s.walk(func(c Component) {
		if u, ok := c.(Updater); ok {
			u.Update(dt)
		}
	})
	s.objects.FlushDestroyQueue()
}

func (s *Scene) LateUpdate(dt float32) {
	s.walk(func(c Component) {
		if u, ok := c.(LateUpdater); ok {
			u.LateUpdate(dt)
		}
	})
	s.objects.FlushDestroyQueue()
}

func (s *Scene) walk(fn func(Component)) {
	s.objects.Each(func(_ ecs.EntityID, g *GameObject) {
		for _, c := range g.Components() {
			b := c.base()
			if b.scene != s || !b.awake || b.disabled {
				continue
			}
			fn(c)
		}
	})
}

// FlushDestroyed removes objects queued by GameObject.Destroy.
func (s *Scene) FlushDestroyed() int { return s.objects.FlushDestroyQueue() }

// RenderImGui draws one inspector panel per object.
func (s *Scene) RenderImGui(ctx *ui.Context) {
	s.objects.Each(func(_ ecs.EntityID, g *GameObject) {
		if !ctx.Begin(g.name) {
			return
		}
		ctx.Value("position", g.Transform.Position)
		for _, c := range g.components {
			if r, ok := c.(ImGuiRenderer); ok {
				r.RenderImGui(ctx)
			} else {
				on := c.base().Enabled()
				ctx.Checkbox(c.TypeName(), &on)
			}
		}
		ctx.End()
	})
}

// Destroy removes every object in reverse insertion order and empties the
// physics world.
func (s *Scene) Destroy() {
	s.objects.Clear()
	s.physics.Clear()
	s.awoken = false
	s.playing = false
}

// Each visits every component of type T in object order.
func Each[T Component](s *Scene, fn func(*GameObject, T)) {
	s.objects.Each(func(_ ecs.EntityID, g *GameObject) {
		if c, ok := Get[T](g); ok {
			fn(g, c)
		}
	})
}
