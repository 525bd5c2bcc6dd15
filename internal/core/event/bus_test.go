package event

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/resonance/engine/internal/core/ecs"
)

func TestEventsDeliverNextFrame(t *testing.T) {
	b := NewBus()
	var got []TriggerEntered
	Subscribe(b, func(ev TriggerEntered) { got = append(got, ev) })

	Emit(b, TriggerEntered{Trigger: ecs.NewEntityID(1, 1), Other: ecs.NewEntityID(2, 1)})
	assert.Equal(t, 0, b.DispatchAll(), "not visible before swap")
	assert.Equal(t, 1, b.Pending())

	b.SwapBuffers()
	assert.Equal(t, 1, b.DispatchAll())
	assert.Len(t, got, 1)
	assert.Equal(t, ecs.NewEntityID(2, 1), got[0].Other)

	b.SwapBuffers()
	assert.Equal(t, 0, b.DispatchAll(), "delivered once")
}

func TestDispatchPreservesEmissionOrderAcrossTypes(t *testing.T) {
	b := NewBus()
	var order []string
	Subscribe(b, func(ev SceneLoaded) { order = append(order, "loaded:"+ev.Name) })
	Subscribe(b, func(TriggerExited) { order = append(order, "exit") })

	Emit(b, TriggerExited{})
	Emit(b, SceneLoaded{Name: "a"})
	Emit(b, TriggerExited{})
	Emit(b, WindowResized{}) // no subscriber

	b.SwapBuffers()
	assert.Equal(t, 3, b.DispatchAll())
	assert.Equal(t, []string{"exit", "loaded:a", "exit"}, order)
}

func TestResetDropsHandlersAndQueue(t *testing.T) {
	b := NewBus()
	Subscribe(b, func(TriggerEntered) {})
	Emit(b, TriggerEntered{})
	b.Reset()
	assert.Equal(t, 0, b.Pending())

	Emit(b, TriggerEntered{})
	b.SwapBuffers()
	assert.Equal(t, 0, b.DispatchAll())
}
