package stateset

// Activatable is a host resource whose visibility can follow a state.
type Activatable interface {
	// SetActive shows or hides the resource.
	SetActive(active bool)

	// Alive reports whether the resource still exists. Once it returns
	// false the wiring stops touching the resource and detaches itself.
	Alive() bool
}

// SetActive wires target's visibility to s: entering s shows the target,
// exiting s hides it. Current membership is applied to the target
// immediately. A target that reports dead is left alone and the wiring
// removes its own enter/exit callbacks on the next transition.
func (m *Manager) SetActive(s *State, target Activatable) {
	m.bindActive(s, target, true)
}

// SetNotActive wires target's visibility inversely to s: entering s hides
// the target, exiting s shows it.
func (m *Manager) SetNotActive(s *State, target Activatable) {
	m.bindActive(s, target, false)
}

func (m *Manager) bindActive(s *State, target Activatable, shownWhenActive bool) {
	var enterH, exitH Handle
	apply := func(entered bool) {
		if !target.Alive() {
			s.RemoveOnEnter(enterH)
			s.RemoveOnExit(exitH)
			return
		}
		target.SetActive(entered == shownWhenActive)
	}
	enterH = s.AddOnEnter(func() { apply(true) })
	exitH = s.AddOnExit(func() { apply(false) })

	if target.Alive() {
		target.SetActive(m.HasState(s) == shownWhenActive)
	}
}

// Emitter is an external event sink listeners can be registered with.
// The handle returned by AddListener must deregister exactly the listener
// it was issued for.
type Emitter interface {
	AddListener(fn func()) Handle
	RemoveListener(h Handle)
}

// EmitterOf is the single-argument variant of Emitter.
type EmitterOf[T any] interface {
	AddListener(fn func(T)) Handle
	RemoveListener(h Handle)
}

// AddListener keeps fn registered with em exactly while s is active:
// registration happens on enter (or immediately when s is already active)
// and the issued token is deregistered on exit. Repeated enter/exit
// cycles never accumulate duplicate registrations.
func (m *Manager) AddListener(s *State, em Emitter, fn func()) {
	bindListener(m, s, func() Handle { return em.AddListener(fn) }, em.RemoveListener)
}

// AddListeners wires each given listener to s via AddListener.
func (m *Manager) AddListeners(s *State, em Emitter, fns ...func()) {
	for _, fn := range fns {
		m.AddListener(s, em, fn)
	}
}

// AddListenerToStates wires the same listener to every given state. The
// listener is registered while at least one of the states is active, once
// per active state.
func (m *Manager) AddListenerToStates(em Emitter, fn func(), states ...*State) {
	for _, s := range states {
		m.AddListener(s, em, fn)
	}
}

// AddListenerTo keeps a typed listener registered with em while s is
// active, with the same lifecycle as Manager.AddListener.
func AddListenerTo[T any](m *Manager, s *State, em EmitterOf[T], fn func(T)) {
	bindListener(m, s, func() Handle { return em.AddListener(fn) }, em.RemoveListener)
}

func bindListener(m *Manager, s *State, register func() Handle, deregister func(Handle)) {
	var token Handle
	registered := false

	attach := func() {
		if !registered {
			token = register()
			registered = true
		}
	}
	detach := func() {
		if registered {
			deregister(token)
			registered = false
		}
	}

	s.AddOnEnter(attach)
	s.AddOnExit(detach)

	if m.HasState(s) {
		attach()
	}
}
