package layer

import (
	"errors"
	"fmt"
)

// ErrFrozen is returned by Register once the registration order is fixed.
var ErrFrozen = errors.New("layer stack is frozen")

// Participant is what the dispatcher needs to know about a layer.
type Participant interface {
	LayerName() string
	IsEnabled() bool
	Overrides() Functions
}

// Stack holds layers in registration order and dispatches hooks to the
// eligible ones. Register everything up front, then Freeze; the order is
// immutable afterwards.
type Stack[P Participant] struct {
	layers []P
	frozen bool
}

func NewStack[P Participant]() *Stack[P] {
	return &Stack[P]{
		layers: make([]P, 0, 8),
	}
}

// NewFrozenStack returns a stack holding ps in order, already frozen.
func NewFrozenStack[P Participant](ps ...P) *Stack[P] {
	return &Stack[P]{layers: append([]P(nil), ps...), frozen: true}
}

func (s *Stack[P]) Register(p P) error {
	if s.frozen {
		return fmt.Errorf("register %q: %w", p.LayerName(), ErrFrozen)
	}
	s.layers = append(s.layers, p)
	return nil
}

func (s *Stack[P]) Freeze()      { s.frozen = true }
func (s *Stack[P]) Frozen() bool { return s.frozen }
func (s *Stack[P]) Len() int     { return len(s.layers) }
func (s *Stack[P]) At(i int) P   { return s.layers[i] }
func (s *Stack[P]) Layers() []P  { return append([]P(nil), s.layers...) }

func eligible(p Participant, fn Functions) bool {
	return p.IsEnabled() && p.Overrides().Has(fn)
}

// Dispatch calls visit for every enabled layer whose overrides include fn,
// in the hook's direction (see Reversed). It returns the number of visits.
func (s *Stack[P]) Dispatch(fn Functions, visit func(P)) int {
	if Reversed(fn) {
		return s.DispatchReverse(fn, visit)
	}
	return s.DispatchForward(fn, visit)
}

// DispatchForward visits eligible layers in registration order.
func (s *Stack[P]) DispatchForward(fn Functions, visit func(P)) int {
	n := 0
	for _, p := range s.layers {
		if eligible(p, fn) {
			visit(p)
			n++
		}
	}
	return n
}

// DispatchReverse visits eligible layers in reverse registration order.
func (s *Stack[P]) DispatchReverse(fn Functions, visit func(P)) int {
	n := 0
	for i := len(s.layers) - 1; i >= 0; i-- {
		p := s.layers[i]
		if eligible(p, fn) {
			visit(p)
			n++
		}
	}
	return n
}

// DispatchErr is Dispatch for hooks that can fail. It stops at the first error.
func (s *Stack[P]) DispatchErr(fn Functions, visit func(P) error) error {
	var firstErr error
	s.Dispatch(fn, func(p P) {
		if firstErr != nil {
			return
		}
		if err := visit(p); err != nil {
			firstErr = fmt.Errorf("%s %s: %w", p.LayerName(), fn, err)
		}
	})
	return firstErr
}
