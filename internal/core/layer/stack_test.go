package layer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stub struct {
	name      string
	enabled   bool
	overrides Functions
}

func (s *stub) LayerName() string    { return s.name }
func (s *stub) IsEnabled() bool      { return s.enabled }
func (s *stub) Overrides() Functions { return s.overrides }

// Every hook, every enabled/disabled state, every present/absent bit.
func TestDispatchInvokesOnlyEnabledLayersWithHookBit(t *testing.T) {
	for _, fn := range All.Each() {
		for _, enabled := range []bool{true, false} {
			for _, present := range []bool{true, false} {
				name := fmt.Sprintf("%s/enabled=%v/present=%v", fn, enabled, present)
				t.Run(name, func(t *testing.T) {
					mask := All &^ fn
					if present {
						mask = fn
					}
					s := NewStack[*stub]()
					require.NoError(t, s.Register(&stub{name: "l", enabled: enabled, overrides: mask}))

					calls := 0
					n := s.Dispatch(fn, func(*stub) { calls++ })
					want := 0
					if enabled && present {
						want = 1
					}
					assert.Equal(t, want, calls)
					assert.Equal(t, want, n)
				})
			}
		}
	}
}

func TestDispatchOrder(t *testing.T) {
	s := NewStack[*stub]()
	for _, n := range []string{"a", "b", "c"} {
		require.NoError(t, s.Register(&stub{name: n, enabled: true, overrides: All}))
	}

	forward := []Functions{OnAppLoad, OnUpdate, OnLateUpdate, OnPreRender, OnRender, OnSceneLoad, OnWindowResize}
	reverse := []Functions{OnPostRender, OnSceneUnload, OnAppUnload}

	record := func(fn Functions) []string {
		var got []string
		s.Dispatch(fn, func(p *stub) { got = append(got, p.name) })
		return got
	}
	for _, fn := range forward {
		assert.Equal(t, []string{"a", "b", "c"}, record(fn), fn.String())
		assert.False(t, Reversed(fn))
	}
	for _, fn := range reverse {
		assert.Equal(t, []string{"c", "b", "a"}, record(fn), fn.String())
		assert.True(t, Reversed(fn))
	}
}

func TestFrozenStackRejectsRegistration(t *testing.T) {
	s := NewStack[*stub]()
	require.NoError(t, s.Register(&stub{name: "a"}))
	s.Freeze()
	err := s.Register(&stub{name: "b"})
	assert.ErrorIs(t, err, ErrFrozen)
	assert.Equal(t, 1, s.Len())
}

func TestDispatchErrStopsAtFirstFailure(t *testing.T) {
	s := NewStack[*stub]()
	for _, n := range []string{"a", "b", "c"} {
		require.NoError(t, s.Register(&stub{name: n, enabled: true, overrides: OnAppLoad}))
	}
	boom := errors.New("boom")
	var visited []string
	err := s.DispatchErr(OnAppLoad, func(p *stub) error {
		visited = append(visited, p.name)
		if p.name == "b" {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "b OnAppLoad")
	assert.Equal(t, []string{"a", "b"}, visited)
}

func TestFunctionsString(t *testing.T) {
	assert.Equal(t, "None", None.String())
	assert.Equal(t, "OnUpdate|OnRender", (OnUpdate | OnRender).String())
	assert.Len(t, All.Each(), 10)
	assert.False(t, All.Has(None))
}

func TestNewFrozenStackKeepsOrder(t *testing.T) {
	s := NewFrozenStack(&stub{name: "a"}, &stub{name: "b"})
	assert.True(t, s.Frozen())
	require.Equal(t, 2, s.Len())
	assert.Equal(t, "a", s.At(0).name)
	assert.ErrorIs(t, s.Register(&stub{name: "c"}), ErrFrozen)
}
