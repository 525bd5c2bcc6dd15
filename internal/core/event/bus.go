package event

import "reflect"

// Bus is a double-buffered event bus owned by a scene. Events emitted during
// frame N are delivered in frame N+1, when the logic layer calls SwapBuffers
// and DispatchAll at the top of its update. Delivery order is emission order.
// Single goroutine only (the application loop).
type Bus struct {
	front    []any
	back     []any
	handlers map[reflect.Type][]func(any)
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]any, 0, 32),
		back:     make([]any, 0, 32),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

// Emit queues an event into the back buffer.
func Emit[T any](b *Bus, event T) {
	b.back = append(b.back, event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// SwapBuffers rotates back to front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front[:0]
}

// DispatchAll delivers every front-buffer event to its subscribers and
// returns the number of handler invocations.
func (b *Bus) DispatchAll() int {
	calls := 0
	for _, ev := range b.front {
		for _, h := range b.handlers[reflect.TypeOf(ev)] {
			h(ev)
			calls++
		}
	}
	return calls
}

// Pending reports events waiting for the next swap.
func (b *Bus) Pending() int { return len(b.back) }

// Reset drops every handler and queued event.
func (b *Bus) Reset() {
	b.front = b.front[:0]
	b.back = b.back[:0]
	clear(b.handlers)
}
