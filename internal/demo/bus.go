package demo

import "github.com/Faultbox/stateset/pkg/stateset"

// Signal is an in-process event emitter satisfying stateset.Emitter.
// Listeners fire in registration order.
type Signal struct {
	lastID  stateset.Handle
	entries []signalEntry
}

type signalEntry struct {
	id stateset.Handle
	fn func()
}

// NewSignal creates an empty signal.
func NewSignal() *Signal {
	return &Signal{}
}

// AddListener registers fn and returns its removal token.
func (s *Signal) AddListener(fn func()) stateset.Handle {
	s.lastID++
	s.entries = append(s.entries, signalEntry{id: s.lastID, fn: fn})
	return s.lastID
}

// RemoveListener drops the listener registered under h.
func (s *Signal) RemoveListener(h stateset.Handle) {
	for i, e := range s.entries {
		if e.id == h {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

// Emit invokes every registered listener.
func (s *Signal) Emit() {
	for _, e := range s.entries {
		e.fn()
	}
}

// Len returns the number of registered listeners.
func (s *Signal) Len() int {
	return len(s.entries)
}

// Bus is the typed counterpart of Signal, satisfying stateset.EmitterOf.
type Bus[T any] struct {
	lastID  stateset.Handle
	entries []busEntry[T]
}

type busEntry[T any] struct {
	id stateset.Handle
	fn func(T)
}

// NewBus creates an empty bus.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{}
}

// AddListener registers fn and returns its removal token.
func (b *Bus[T]) AddListener(fn func(T)) stateset.Handle {
	b.lastID++
	b.entries = append(b.entries, busEntry[T]{id: b.lastID, fn: fn})
	return b.lastID
}

// RemoveListener drops the listener registered under h.
func (b *Bus[T]) RemoveListener(h stateset.Handle) {
	for i, e := range b.entries {
		if e.id == h {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			return
		}
	}
}

// Emit delivers v to every registered listener.
func (b *Bus[T]) Emit(v T) {
	for _, e := range b.entries {
		e.fn(v)
	}
}

// Len returns the number of registered listeners.
func (b *Bus[T]) Len() int {
	return len(b.entries)
}
