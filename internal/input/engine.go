package input

// DefaultHoldFrames is how long a terminal key press counts as held. Terminals
// report presses and auto-repeats but never releases, so a key stays down until
// no repeat arrives for this many frames.
const DefaultHoldFrames = 4

type keyState struct {
	down     bool
	pressed  bool // went down this frame
	released bool // went up this frame
	holdLeft int
}

// Engine tracks polled key state for one window. The window backend feeds it
// Press/Release while polling events; EndFrame clears the per-frame edges.
type Engine struct {
	keys       map[Key]*keyState
	holdFrames int
	bindings   *BindingTable
}

func NewEngine(holdFrames int) *Engine {
	if holdFrames <= 0 {
		holdFrames = DefaultHoldFrames
	}
	return &Engine{
		keys:       make(map[Key]*keyState, 32),
		holdFrames: holdFrames,
		bindings:   &BindingTable{actions: map[string][]Key{}},
	}
}

func (e *Engine) state(k Key) *keyState {
	s, ok := e.keys[k]
	if !ok {
		s = &keyState{}
		e.keys[k] = s
	}
	return s
}

// Press records a key press or repeat.
func (e *Engine) Press(k Key) {
	s := e.state(k)
	if !s.down {
		s.pressed = true
	}
	s.down = true
	s.holdLeft = e.holdFrames
}

// Release records an explicit key release (backends that know about them).
func (e *Engine) Release(k Key) {
	s := e.state(k)
	if s.down {
		s.released = true
	}
	s.down = false
	s.holdLeft = 0
}

func (e *Engine) KeyDown(k Key) bool {
	s, ok := e.keys[k]
	return ok && s.down
}

func (e *Engine) KeyPressed(k Key) bool {
	s, ok := e.keys[k]
	return ok && s.pressed
}

func (e *Engine) KeyReleased(k Key) bool {
	s, ok := e.keys[k]
	return ok && s.released
}

// SetBindings installs the action table used by ActionDown/ActionPressed.
func (e *Engine) SetBindings(t *BindingTable) {
	if t != nil {
		e.bindings = t
	}
}

func (e *Engine) Bindings() *BindingTable { return e.bindings }

func (e *Engine) ActionDown(action string) bool {
	for _, k := range e.bindings.Keys(action) {
		if e.KeyDown(k) {
			return true
		}
	}
	return false
}

func (e *Engine) ActionPressed(action string) bool {
	for _, k := range e.bindings.Keys(action) {
		if e.KeyPressed(k) {
			return true
		}
	}
	return false
}

// EndFrame resets edge state and ages terminal holds.
func (e *Engine) EndFrame() {
	for _, s := range e.keys {
		s.pressed = false
		s.released = false
		if s.down && s.holdLeft > 0 {
			s.holdLeft--
			if s.holdLeft == 0 {
				s.down = false
				s.released = true
			}
		}
	}
}
