package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnknownType is returned for a manifest section with no registered factory.
var ErrUnknownType = errors.New("unknown resource type")

// Factory decodes one manifest entry.
type Factory func(data json.RawMessage) (Resource, error)

type validator interface{ validate() error }

type typeEntry struct {
	tag     string
	factory Factory
}

// Manager holds every loaded resource keyed by GUID, plus the type registry
// used to decode manifests.
type Manager struct {
	log *zap.Logger

	mu        sync.RWMutex
	types     map[uint64]typeEntry
	resources map[uuid.UUID]Resource
	order     []uuid.UUID
}

// NewManager returns a manager with the built-in types registered.
func NewManager(log *zap.Logger) *Manager {
	m := &Manager{
		log:       log,
		types:     make(map[uint64]typeEntry),
		resources: make(map[uuid.UUID]Resource),
	}
	RegisterType[Material](m, "Material")
	RegisterType[Mesh](m, "Mesh")
	RegisterType[Sound](m, "Sound")
	RegisterType[Script](m, "Script")
	return m
}

// TypeID is the registry key for tag.
func TypeID(tag string) uint64 { return xxhash.Sum64String(tag) }

// Register adds or replaces the factory for tag.
func (m *Manager) Register(tag string, f Factory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types[TypeID(tag)] = typeEntry{tag: tag, factory: f}
}

// RegisterType registers a JSON-decoded factory for T.
func RegisterType[T any, PT interface {
	*T
	Resource
}](m *Manager, tag string) {
	m.Register(tag, func(data json.RawMessage) (Resource, error) {
		r := PT(new(T))
		if err := json.Unmarshal(data, r); err != nil {
			return nil, err
		}
		if v, ok := any(r).(validator); ok {
			if err := v.validate(); err != nil {
				return nil, err
			}
		}
		return r, nil
	})
}

func (m *Manager) factory(tag string) (Factory, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.types[TypeID(tag)]
	if !ok || e.tag != tag {
		return nil, false
	}
	return e.factory, true
}

// Decode builds one resource of type tag without registering it.
func (m *Manager) Decode(tag string, data json.RawMessage) (Resource, error) {
	f, ok := m.factory(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, tag)
	}
	r, err := f(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", tag, err)
	}
	return r, nil
}

// Add registers r. Resources with a nil GUID get a fresh one. Adding a GUID
// that already exists replaces the earlier resource in place.
func (m *Manager) Add(r Resource) uuid.UUID {
	id := r.GUID()
	if id == uuid.Nil {
		id = uuid.New()
		if b, ok := r.(interface{ base() *Base }); ok {
			b.base().ID = id
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.resources[id]; !exists {
		m.order = append(m.order, id)
	}
	m.resources[id] = r
	return id
}

func (b *Base) base() *Base { return b }

func (m *Manager) Lookup(id uuid.UUID) (Resource, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.resources[id]
	return r, ok
}

// Get returns the resource with id if it exists and has type T.
func Get[T Resource](m *Manager, id uuid.UUID) (T, bool) {
	var zero T
	r, ok := m.Lookup(id)
	if !ok {
		return zero, false
	}
	t, ok := r.(T)
	return t, ok
}

// All returns every resource of type T in registration order.
func All[T Resource](m *Manager) []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []T
	for _, id := range m.order {
		if t, ok := m.resources[id].(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// FindByName returns the first resource of type T named name.
func FindByName[T Resource](m *Manager, name string) (T, bool) {
	for _, r := range All[T](m) {
		if b, ok := any(r).(interface{ base() *Base }); ok && b.base().Name == name {
			return r, true
		}
	}
	var zero T
	return zero, false
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.resources)
}

// Clear drops every resource; registered types stay.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resources = make(map[uuid.UUID]Resource)
	m.order = nil
}
