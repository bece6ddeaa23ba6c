package stateset

import (
	"slices"
	"testing"
)

// events records every notification firing, in order.
type events struct {
	log []string
}

func (e *events) add(entry string) {
	e.log = append(e.log, entry)
}

func (e *events) reset() {
	e.log = nil
}

// wire subscribes the recorder to the manager's aggregate notifications
// and to each state's enter/exit/update slots.
func (e *events) wire(m *Manager, states ...*State) {
	for _, s := range states {
		name := s.Name()
		s.AddOnEnter(func() { e.add("enter " + name) })
		s.AddOnExit(func() { e.add("exit " + name) })
		s.AddOnUpdate(func(dt float64) { e.add("update " + name) })
	}
	m.AddOnStateAdded(func(name string) { e.add("added " + name) })
	m.AddOnStateRemoved(func(name string) { e.add("removed " + name) })
	m.AddOnStateChanged(func() { e.add("changed") })
}

func expectEvents(t *testing.T, e *events, want ...string) {
	t.Helper()
	if !slices.Equal(e.log, want) {
		t.Errorf("event mismatch\nwant: %v\ngot:  %v", want, e.log)
	}
}

func TestInitializationGating(t *testing.T) {
	m := NewManager()
	a := NewState("A")
	b := NewState("B")

	var e events
	e.wire(m, a, b)

	m.AddStates(a, b)

	// Pre-init: only the changed notifications fire, membership is hidden.
	expectEvents(t, &e, "changed", "changed")
	if m.HasState(a) || m.HasState(b) {
		t.Error("expected membership hidden before the first tick")
	}
	if m.HasStates(a, b) {
		t.Error("expected HasStates false before the first tick")
	}
	if m.IsState(a) {
		t.Error("expected IsState false before the first tick")
	}

	// First tick: enter wave in insertion order, then the update wave.
	e.reset()
	m.Update(0.016)
	expectEvents(t, &e,
		"enter A", "added A",
		"enter B", "added B",
		"update A", "update B",
	)

	if !m.HasState(a) || !m.HasState(b) || !m.HasStates(a, b) {
		t.Error("expected membership visible after the first tick")
	}
}

func TestAddPostInitFiresImmediately(t *testing.T) {
	m := NewManager()
	a := NewState("A")
	b := NewState("B")
	m.Update(0)

	var e events
	e.wire(m, a, b)

	m.AddState(a)
	expectEvents(t, &e, "enter A", "added A", "changed")

	e.reset()
	m.AddState(b)
	expectEvents(t, &e, "enter B", "added B", "changed")
}

func TestUpdatePerTick(t *testing.T) {
	m := NewManager()
	a := NewState("A")
	b := NewState("B")
	m.AddStates(a, b)

	updates := map[string]int{}
	a.AddOnUpdate(func(dt float64) { updates["A"]++ })
	b.AddOnUpdate(func(dt float64) { updates["B"]++ })

	for range 5 {
		m.Update(0.016)
	}

	if updates["A"] != 5 || updates["B"] != 5 {
		t.Errorf("expected 5 updates per state, got A=%d B=%d", updates["A"], updates["B"])
	}
}

func TestToggleSymmetryPostInit(t *testing.T) {
	m := NewManager()
	a := NewState("A")
	b := NewState("B")
	m.AddState(a)
	m.Update(0)

	var e events
	e.wire(m, b)

	m.ToggleState(b)
	if !m.HasState(b) {
		t.Error("expected B active after first toggle")
	}
	m.ToggleState(b)
	if m.HasState(b) {
		t.Error("expected B inactive after second toggle")
	}

	enters, exits := 0, 0
	for _, ev := range e.log {
		switch ev {
		case "enter B":
			enters++
		case "exit B":
			exits++
		}
	}
	if enters != 1 || exits != 1 {
		t.Errorf("expected exactly one enter and one exit, got %d/%d", enters, exits)
	}
	if !m.IsState(a) {
		t.Error("expected original membership restored")
	}
}

func TestTogglePreInitStacksDuplicates(t *testing.T) {
	m := NewManager()
	a := NewState("A")

	// Membership reads false pre-init, so both toggles behave as adds.
	m.ToggleState(a)
	m.ToggleState(a)
	if m.Len() != 2 {
		t.Fatalf("expected 2 occurrences after pre-init double toggle, got %d", m.Len())
	}

	enters := 0
	a.AddOnEnter(func() { enters++ })
	m.Update(0)

	// The init wave promotes each occurrence.
	if enters != 2 {
		t.Errorf("expected one enter per occurrence, got %d", enters)
	}

	// Sequence semantics: removal drops the first occurrence only.
	if !m.RemoveState(a) {
		t.Error("expected removal of the first occurrence to succeed")
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 occurrence left, got %d", m.Len())
	}
	if !m.IsState(a) {
		t.Error("expected IsState true with a single occurrence left")
	}
}

func TestToggleStatesSeesEarlierToggles(t *testing.T) {
	m := NewManager()
	a := NewState("A")
	m.Update(0)

	// The second toggle observes the membership the first one created.
	m.ToggleStates(a, a)
	if m.Len() != 0 {
		t.Errorf("expected empty set after toggling the same state twice, got %d", m.Len())
	}
}

func TestReplaceClearsFirst(t *testing.T) {
	m := NewManager()
	x := NewState("X")
	a := NewState("A")
	b := NewState("B")
	m.AddState(x)
	m.Update(0)

	var e events
	e.wire(m, x, a, b)

	m.ReplaceStates(a, b)
	expectEvents(t, &e,
		"exit X", "removed X", "changed",
		"enter A", "added A", "changed",
		"enter B", "added B", "changed",
	)

	if m.HasState(x) {
		t.Error("expected X gone after replace")
	}
	if !m.HasStates(a, b) {
		t.Error("expected A and B active after replace")
	}
}

func TestReplaceWithItselfReenters(t *testing.T) {
	m := NewManager()
	a := NewState("A")
	m.AddState(a)
	m.Update(0)

	var e events
	e.wire(m, a)

	m.ReplaceState(a)
	expectEvents(t, &e,
		"exit A", "removed A", "changed",
		"enter A", "added A", "changed",
	)
	if !m.IsState(a) {
		t.Error("expected A to be the sole state after replacing with itself")
	}
}

func TestRemoveAbsentStillFires(t *testing.T) {
	m := NewManager()
	ghost := NewState("ghost")
	m.Update(0)

	var e events
	e.wire(m, ghost)

	if m.RemoveState(ghost) {
		t.Error("expected removal of an absent state to report false")
	}
	expectEvents(t, &e, "exit ghost", "removed ghost", "changed")
}

func TestRemoveNilState(t *testing.T) {
	m := NewManager()
	m.Update(0)

	var e events
	e.wire(m)

	if m.RemoveState(nil) {
		t.Error("expected nil removal to report false")
	}
	expectEvents(t, &e, "removed ", "changed")
}

func TestRemoveStatesIsEager(t *testing.T) {
	m := NewManager()
	a := NewState("A")
	ghost := NewState("ghost")
	m.AddState(a)
	m.Update(0)

	exits := map[string]int{}
	a.AddOnExit(func() { exits["A"]++ })
	ghost.AddOnExit(func() { exits["ghost"]++ })

	if m.RemoveStates(a, ghost) {
		t.Error("expected false when any removal misses")
	}
	// Both exits fire even though the overall result is false.
	if exits["A"] != 1 || exits["ghost"] != 1 {
		t.Errorf("expected both exits to fire, got %v", exits)
	}
	if m.HasState(a) {
		t.Error("expected A removed despite the false result")
	}
}

func TestIsStateSingularity(t *testing.T) {
	m := NewManager()
	a := NewState("A")
	b := NewState("B")

	m.AddState(a)
	if m.IsState(a) {
		t.Error("expected false before the first tick")
	}

	m.Update(0)
	if !m.IsState(a) {
		t.Error("expected true with a single active state")
	}
	if m.IsState(b) {
		t.Error("expected false for a different state")
	}

	// Even a duplicate of the same state breaks singularity.
	m.AddState(a)
	if m.IsState(a) {
		t.Error("expected false with a duplicate present")
	}

	m.RemoveState(a)
	if !m.IsState(a) {
		t.Error("expected true again with one occurrence left")
	}
}

func TestStatesIteratorSnapshot(t *testing.T) {
	m := NewManager()
	a := NewState("A")
	b := NewState("B")
	m.AddStates(a, b)

	seq := m.States()

	// Mutations after the snapshot are not observed.
	m.AddState(NewState("C"))

	collect := func() []string {
		var names []string
		for s := range seq {
			names = append(names, s.Name())
		}
		return names
	}

	want := []string{"A", "B"}
	if got := collect(); !slices.Equal(got, want) {
		t.Errorf("expected snapshot %v, got %v", want, got)
	}
	// Restartable: a second pass yields the same sequence.
	if got := collect(); !slices.Equal(got, want) {
		t.Errorf("expected restartable iteration %v, got %v", want, got)
	}

	// Early break must not panic or skip cleanup.
	for range seq {
		break
	}
}

func TestAddOnEnterForceLateRun(t *testing.T) {
	m := NewManager()
	a := NewState("A")
	m.AddState(a)

	calls := 0
	fn := func() { calls++ }

	// Pre-init: never runs immediately, even when forced.
	m.AddOnEnter(a, fn, true)
	if calls != 0 {
		t.Errorf("expected no late run before the first tick, got %d", calls)
	}

	m.Update(0)
	if calls != 1 {
		t.Fatalf("expected the init wave to run the callback once, got %d", calls)
	}

	// Post-init and active: forced registration runs right away.
	m.AddOnEnter(a, fn, true)
	if calls != 2 {
		t.Errorf("expected an immediate late run, got %d calls", calls)
	}

	// Without the force flag nothing runs until the next enter.
	m.AddOnEnter(a, fn, false)
	if calls != 2 {
		t.Errorf("expected no immediate run without forceLateRun, got %d calls", calls)
	}
}

func TestManagerPassThroughRemoval(t *testing.T) {
	m := NewManager()
	a := NewState("A")
	m.AddState(a)
	m.Update(0)

	calls := 0
	h := m.AddOnUpdate(a, func(dt float64) { calls++ })
	m.Update(0)
	if calls != 1 {
		t.Fatalf("expected one update call, got %d", calls)
	}

	m.RemoveOnUpdate(a, h)
	m.Update(0)
	if calls != 1 {
		t.Errorf("expected no further calls after removal, got %d", calls)
	}
}

func TestAggregateCallbackRemoval(t *testing.T) {
	m := NewManager()
	a := NewState("A")
	m.Update(0)

	changed := 0
	h := m.AddOnStateChanged(func() { changed++ })

	m.AddState(a)
	if changed != 1 {
		t.Fatalf("expected one changed notification, got %d", changed)
	}

	m.RemoveOnStateChanged(h)
	m.RemoveState(a)
	if changed != 1 {
		t.Errorf("expected no notifications after removal, got %d", changed)
	}
}

func TestMutationDuringUpdateCallback(t *testing.T) {
	m := NewManager()
	a := NewState("A")
	b := NewState("B")

	bUpdates := 0
	b.AddOnUpdate(func(dt float64) { bUpdates++ })

	addedB := false
	a.AddOnUpdate(func(dt float64) {
		if !addedB {
			addedB = true
			m.AddState(b)
		}
	})

	m.AddState(a)

	// B joins mid-wave: the running tick keeps its snapshot, so B's
	// first update lands on the next tick.
	m.Update(0.016)
	if bUpdates != 0 {
		t.Errorf("expected no update for B on the tick that added it, got %d", bUpdates)
	}

	m.Update(0.016)
	if bUpdates != 1 {
		t.Errorf("expected B updated on the following tick, got %d", bUpdates)
	}
}

func TestRemovalDuringUpdateCallback(t *testing.T) {
	m := NewManager()
	a := NewState("A")
	b := NewState("B")

	bUpdates := 0
	b.AddOnUpdate(func(dt float64) { bUpdates++ })
	a.AddOnUpdate(func(dt float64) { m.RemoveState(b) })

	m.AddStates(a, b)
	m.Update(0.016)

	// B was removed by A's callback but the wave snapshot still holds it.
	if bUpdates != 1 {
		t.Errorf("expected B's in-flight update to run, got %d", bUpdates)
	}

	m.Update(0.016)
	if bUpdates != 1 {
		t.Errorf("expected no updates for B after removal, got %d", bUpdates)
	}
}
