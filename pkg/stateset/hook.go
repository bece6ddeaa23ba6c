package stateset

import "slices"

// Handle identifies a registered callback within the slot it was added to.
// The zero Handle is never issued.
type Handle uint64

type hookEntry[T any] struct {
	id Handle
	fn T
}

// hook is an ordered multicast callback slot. Callbacks run in
// registration order and are removed by handle. Invocation walks a
// snapshot of the entries, so a callback may remove itself or any other
// entry mid-wave without corrupting the iteration.
type hook[T any] struct {
	lastID  Handle
	entries []hookEntry[T]
}

func (h *hook[T]) add(fn T) Handle {
	h.lastID++
	h.entries = append(h.entries, hookEntry[T]{id: h.lastID, fn: fn})
	return h.lastID
}

// remove drops the entry registered under id. Unknown ids are a no-op.
func (h *hook[T]) remove(id Handle) {
	for i, e := range h.entries {
		if e.id == id {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			return
		}
	}
}

// each invokes call for every registered entry, in registration order.
func (h *hook[T]) each(call func(fn T)) {
	for _, e := range slices.Clone(h.entries) {
		call(e.fn)
	}
}

func (h *hook[T]) len() int {
	return len(h.entries)
}
