// Package stateset implements composable boolean behavior states for game
// objects. Unlike an exclusive state machine, many states can be active at
// once; each carries its own enter/exit/update callbacks, and a Manager
// owns the set of currently active states.
package stateset

// State is a named, independently activatable unit. It holds three
// callback slots (enter, exit, update) and has no behavior of its own;
// activation is driven by a Manager. The name is host-facing identity
// only — the manager compares states by pointer, never by name.
type State struct {
	name     string
	onEnter  hook[func()]
	onExit   hook[func()]
	onUpdate hook[func(dt float64)]
}

// NewState creates a state with the given name and empty callback slots.
func NewState(name string) *State {
	return &State{name: name}
}

// Name returns the state's immutable name.
func (s *State) Name() string {
	return s.name
}

// AddOnEnter registers fn to run when the state becomes active.
func (s *State) AddOnEnter(fn func()) Handle {
	return s.onEnter.add(fn)
}

// AddOnExit registers fn to run when the state becomes inactive.
func (s *State) AddOnExit(fn func()) Handle {
	return s.onExit.add(fn)
}

// AddOnUpdate registers fn to run every tick while the state is active.
func (s *State) AddOnUpdate(fn func(dt float64)) Handle {
	return s.onUpdate.add(fn)
}

// RemoveOnEnter drops a previously registered enter callback.
// Unknown handles are ignored.
func (s *State) RemoveOnEnter(h Handle) {
	s.onEnter.remove(h)
}

// RemoveOnExit drops a previously registered exit callback.
func (s *State) RemoveOnExit(h Handle) {
	s.onExit.remove(h)
}

// RemoveOnUpdate drops a previously registered update callback.
func (s *State) RemoveOnUpdate(h Handle) {
	s.onUpdate.remove(h)
}

func (s *State) enter() {
	s.onEnter.each(func(fn func()) { fn() })
}

func (s *State) exit() {
	s.onExit.each(func(fn func()) { fn() })
}

func (s *State) update(dt float64) {
	s.onUpdate.each(func(fn func(dt float64)) { fn(dt) })
}
