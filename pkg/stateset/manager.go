package stateset

import (
	"iter"
	"slices"
)

// Manager owns an ordered sequence of currently active states. The
// sequence has list semantics: the same state may appear more than once,
// and removal drops the first occurrence only.
//
// The manager is tick-driven and single-threaded. States added before the
// first Update call accumulate silently: their enter callbacks and the
// added notifications are deferred to that first tick, and membership
// queries report false until then. After the first tick every mutation
// fires its notifications immediately.
type Manager struct {
	active      []*State
	initialized bool

	onStateAdded   hook[func(name string)]
	onStateRemoved hook[func(name string)]
	onStateChanged hook[func()]
}

// NewManager creates an empty, uninitialized manager.
func NewManager() *Manager {
	return &Manager{}
}

// AddState appends s to the active sequence. Duplicates are allowed.
// Enter and added notifications fire only once the manager has ticked;
// the changed notification fires regardless.
func (m *Manager) AddState(s *State) {
	m.active = append(m.active, s)
	if m.initialized {
		s.enter()
		m.fireAdded(s.Name())
	}
	m.fireChanged()
}

// AddStates adds the given states in argument order. Each add fires its
// own notifications; there is no batching.
func (m *Manager) AddStates(states ...*State) {
	for _, s := range states {
		m.AddState(s)
	}
}

// ToggleState removes s when it is an active member, otherwise adds it.
// Membership is false before the first tick, so pre-init toggles always
// add (and can stack duplicates).
func (m *Manager) ToggleState(s *State) {
	if m.HasState(s) {
		m.RemoveState(s)
	} else {
		m.AddState(s)
	}
}

// ToggleStates toggles the given states in argument order. Each toggle
// sees the sequence as mutated by the toggles before it.
func (m *Manager) ToggleStates(states ...*State) {
	for _, s := range states {
		m.ToggleState(s)
	}
}

// RemoveState removes the first occurrence of s from the active sequence
// and reports whether anything was removed. Exit and removed notifications
// fire even when s was never present; a nil s still produces a removed
// notification, with an empty name.
func (m *Manager) RemoveState(s *State) bool {
	removed := false
	for i, a := range m.active {
		if a == s {
			m.active = append(m.active[:i], m.active[i+1:]...)
			removed = true
			break
		}
	}
	var name string
	if s != nil {
		s.exit()
		name = s.Name()
	}
	m.fireRemoved(name)
	m.fireChanged()
	return removed
}

// RemoveStates removes the given states and reports whether every single
// removal actually happened. All removals execute regardless of the
// overall result; there is no short-circuit.
func (m *Manager) RemoveStates(states ...*State) bool {
	all := true
	for _, s := range states {
		if !m.RemoveState(s) {
			all = false
		}
	}
	return all
}

// ReplaceState clears the active sequence, firing exit and removed
// notifications for every active state, then adds s. s exits and
// re-enters like any other state when it was already active.
func (m *Manager) ReplaceState(s *State) {
	m.ReplaceStates(s)
}

// ReplaceStates clears the active sequence and then adds the given states
// in argument order.
func (m *Manager) ReplaceStates(states ...*State) {
	for _, old := range slices.Clone(m.active) {
		m.RemoveState(old)
	}
	m.AddStates(states...)
}

// HasState reports whether s is an active member. Always false before the
// first tick, even when s already sits in the sequence.
func (m *Manager) HasState(s *State) bool {
	return m.initialized && slices.Contains(m.active, s)
}

// HasStates reports whether every given state is an active member.
func (m *Manager) HasStates(states ...*State) bool {
	for _, s := range states {
		if !m.HasState(s) {
			return false
		}
	}
	return true
}

// IsState reports whether s is the only active state. A duplicate of s in
// the sequence counts against singularity.
func (m *Manager) IsState(s *State) bool {
	return m.initialized && len(m.active) == 1 && m.active[0] == s
}

// Len returns the length of the active sequence, duplicates included and
// regardless of initialization.
func (m *Manager) Len() int {
	return len(m.active)
}

// States returns a restartable iterator over a snapshot of the active
// sequence, in insertion order.
func (m *Manager) States() iter.Seq[*State] {
	snap := slices.Clone(m.active)
	return func(yield func(*State) bool) {
		for _, s := range snap {
			if !yield(s) {
				return
			}
		}
	}
}

// Update drives one tick. The first call ever promotes the states added
// so far: each gets its enter callbacks and an added notification, in
// insertion order. Every call then runs the update callbacks of the
// active states.
//
// Both waves iterate a snapshot taken when the wave starts: states added
// from inside a callback are picked up next tick, states removed mid-wave
// still receive the callback already in flight.
func (m *Manager) Update(dt float64) {
	if !m.initialized {
		m.initialized = true
		for _, s := range slices.Clone(m.active) {
			s.enter()
			m.fireAdded(s.Name())
		}
	}
	for _, s := range slices.Clone(m.active) {
		s.update(dt)
	}
}

// AddOnEnter attaches fn to s's enter slot. With forceLateRun set, fn
// additionally runs right away when the manager has already ticked and s
// is currently active, covering callbacks attached after the state went
// live.
func (m *Manager) AddOnEnter(s *State, fn func(), forceLateRun bool) Handle {
	h := s.AddOnEnter(fn)
	if forceLateRun && m.initialized && m.HasState(s) {
		fn()
	}
	return h
}

// AddOnExit attaches fn to s's exit slot.
func (m *Manager) AddOnExit(s *State, fn func()) Handle {
	return s.AddOnExit(fn)
}

// AddOnUpdate attaches fn to s's update slot.
func (m *Manager) AddOnUpdate(s *State, fn func(dt float64)) Handle {
	return s.AddOnUpdate(fn)
}

// RemoveOnEnter drops an enter callback from s.
func (m *Manager) RemoveOnEnter(s *State, h Handle) {
	s.RemoveOnEnter(h)
}

// RemoveOnExit drops an exit callback from s.
func (m *Manager) RemoveOnExit(s *State, h Handle) {
	s.RemoveOnExit(h)
}

// RemoveOnUpdate drops an update callback from s.
func (m *Manager) RemoveOnUpdate(s *State, h Handle) {
	s.RemoveOnUpdate(h)
}

// AddOnStateAdded registers fn to run whenever a state is added to the
// active sequence (or promoted by the first tick).
func (m *Manager) AddOnStateAdded(fn func(name string)) Handle {
	return m.onStateAdded.add(fn)
}

// RemoveOnStateAdded drops a previously registered added notification.
func (m *Manager) RemoveOnStateAdded(h Handle) {
	m.onStateAdded.remove(h)
}

// AddOnStateRemoved registers fn to run on every removal, including
// removals whose target was not a member.
func (m *Manager) AddOnStateRemoved(fn func(name string)) Handle {
	return m.onStateRemoved.add(fn)
}

// RemoveOnStateRemoved drops a previously registered removed notification.
func (m *Manager) RemoveOnStateRemoved(h Handle) {
	m.onStateRemoved.remove(h)
}

// AddOnStateChanged registers fn to run after every mutation of the
// active sequence, before and after initialization alike.
func (m *Manager) AddOnStateChanged(fn func()) Handle {
	return m.onStateChanged.add(fn)
}

// RemoveOnStateChanged drops a previously registered changed notification.
func (m *Manager) RemoveOnStateChanged(h Handle) {
	m.onStateChanged.remove(h)
}

func (m *Manager) fireAdded(name string) {
	m.onStateAdded.each(func(fn func(string)) { fn(name) })
}

func (m *Manager) fireRemoved(name string) {
	m.onStateRemoved.each(func(fn func(string)) { fn(name) })
}

func (m *Manager) fireChanged() {
	m.onStateChanged.each(func(fn func()) { fn() })
}
