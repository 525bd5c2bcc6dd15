package gameplay

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

var (
	ErrDuplicateName      = errors.New("duplicate object name")
	ErrDuplicateComponent = errors.New("component type already attached")
	ErrUnknownComponent   = errors.New("unknown component type")
)

// FactoryFunc returns a zero-valued component ready to be decoded into.
type FactoryFunc func() Component

type factoryEntry struct {
	tag string
	fn  FactoryFunc
}

// Registry maps serialized component type tags to factories.
type Registry struct {
	factories map[uint64]*factoryEntry
	log       *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		factories: make(map[uint64]*factoryEntry),
		log:       log,
	}
}

// Register maps tag to fn. Registering a tag twice replaces the factory.
func (reg *Registry) Register(tag string, fn FactoryFunc) {
	id := xxhash.Sum64String(tag)
	if e, ok := reg.factories[id]; ok && e.tag != tag {
		// 64-bit collision between two distinct tags
		panic(fmt.Sprintf("component tag %q collides with %q", tag, e.tag))
	}
	reg.factories[id] = &factoryEntry{tag: tag, fn: fn}
}

// RegisterType registers T under its TypeName.
func RegisterType[T any, PT interface {
	*T
	Component
}](reg *Registry) {
	tag := PT(new(T)).TypeName()
	reg.Register(tag, func() Component { return PT(new(T)) })
}

func (reg *Registry) Has(tag string) bool {
	e, ok := reg.factories[xxhash.Sum64String(tag)]
	return ok && e.tag == tag
}

func (reg *Registry) Len() int { return len(reg.factories) }

// Tags lists registered tags, sorted.
func (reg *Registry) Tags() []string {
	out := make([]string, 0, len(reg.factories))
	for _, e := range reg.factories {
		out = append(out, e.tag)
	}
	sort.Strings(out)
	return out
}

// New creates an empty component for tag.
func (reg *Registry) New(tag string) (Component, error) {
	e, ok := reg.factories[xxhash.Sum64String(tag)]
	if !ok || e.tag != tag {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, tag)
	}
	return reg.safeCall(e)
}

// Decode creates a component for tag and fills it from data.
func (reg *Registry) Decode(tag string, data json.RawMessage) (Component, error) {
	c, err := reg.New(tag)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("decode %s: %w", tag, err)
		}
	}
	return c, nil
}

// safeCall runs a factory with panic recovery so one broken component type
// fails its scene load instead of the process.
func (reg *Registry) safeCall(e *factoryEntry) (c Component, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			reg.log.Error("component factory panic recovered",
				zap.String("type", e.tag),
				zap.Any("panic", rec),
			)
			err = fmt.Errorf("factory panic for %s: %v", e.tag, rec)
		}
	}()
	c = e.fn()
	if c == nil {
		return nil, fmt.Errorf("factory for %s returned nil", e.tag)
	}
	return c, nil
}
