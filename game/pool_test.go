package game

import (
	"sync"
	"testing"
	"time"

	"github.com/pthm-cable/menagerie/components"
	"github.com/pthm-cable/menagerie/telemetry"
)

func poolAnimal(w *World, id uint32) *Animal {
	return newAnimal(telemetry.EntityState{
		ID: id, Species: "Turtle", Size: 50, HorSpeed: 1, VerSpeed: 1, X: 50, Y: 50, Weight: 10,
	}, w.params, w, silentPlayer{})
}

func newTestPool(t *testing.T, capacity int) *Pool {
	t.Helper()
	p := NewPool(capacity)
	t.Cleanup(func() {
		p.Restart()
		p.Wait()
	})
	return p
}

func waitStopped(t *testing.T, a *Animal) {
	t.Helper()
	select {
	case <-a.Stopped():
	case <-time.After(5 * time.Second):
		t.Fatalf("animal %d did not stop", a.ID)
	}
}

func TestPoolQueuesAndPromotes(t *testing.T) {
	w := frozenWorld(t)
	p := newTestPool(t, 1)
	a1, a2 := poolAnimal(w, 1), poolAnimal(w, 2)

	if !p.Submit(a1) {
		t.Fatal("first submit was queued")
	}
	if p.Submit(a2) {
		t.Fatal("second submit started past capacity")
	}
	if p.Running() != 1 || p.Queued() != 1 {
		t.Fatalf("running=%d queued=%d, want 1 and 1", p.Running(), p.Queued())
	}

	p.Cancel(a1)
	if !a1.Dead() {
		t.Error("cancelled animal not interrupted")
	}
	waitStopped(t, a1)
	if p.Running() != 1 || p.Queued() != 0 {
		t.Errorf("after cancel running=%d queued=%d, want 1 and 0", p.Running(), p.Queued())
	}
	if a2.Dead() {
		t.Error("promoted animal is dead")
	}
}

func TestPoolCancelQueued(t *testing.T) {
	w := frozenWorld(t)
	p := newTestPool(t, 1)
	a1, a2 := poolAnimal(w, 1), poolAnimal(w, 2)
	p.Submit(a1)
	p.Submit(a2)

	p.Cancel(a2)
	if !a2.Dead() {
		t.Error("cancelled queued animal not interrupted")
	}
	if p.Running() != 1 || p.Queued() != 0 {
		t.Errorf("running=%d queued=%d, want 1 and 0", p.Running(), p.Queued())
	}
}

// gateHabitat parks the first loop that moves until release is closed.
type gateHabitat struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGateHabitat() *gateHabitat {
	return &gateHabitat{entered: make(chan struct{}), release: make(chan struct{})}
}

func (h *gateHabitat) foodFor(components.Diet) bool { return false }

func (h *gateHabitat) notifyChanged() {
	h.once.Do(func() {
		close(h.entered)
		<-h.release
	})
}

func TestPoolCancelHoldsSlotUntilLoopExits(t *testing.T) {
	w := testWorld(t, time.Millisecond)
	gate := newGateHabitat()
	p := newTestPool(t, 1)

	busy := newAnimal(telemetry.EntityState{
		ID: 1, Species: "Turtle", Size: 50, HorSpeed: 1, VerSpeed: 1, X: 50, Y: 50, Weight: 10,
	}, w.params, gate, silentPlayer{})
	next := poolAnimal(w, 2)
	p.Submit(busy)
	p.Submit(next)

	select {
	case <-gate.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("loop never moved")
	}

	p.Cancel(busy)
	if p.Running() != 1 || p.Queued() != 1 {
		t.Errorf("while draining running=%d queued=%d, want 1 and 1", p.Running(), p.Queued())
	}
	if next.state.Load() != statePending {
		t.Error("queued animal started before the cancelled loop returned")
	}

	close(gate.release)
	waitStopped(t, busy)
	if p.Running() != 1 || p.Queued() != 0 {
		t.Errorf("after drain running=%d queued=%d, want 1 and 0", p.Running(), p.Queued())
	}
}

func TestPoolCancelQueuedClosesStopped(t *testing.T) {
	w := frozenWorld(t)
	p := newTestPool(t, 1)
	a1, a2, a3 := poolAnimal(w, 1), poolAnimal(w, 2), poolAnimal(w, 3)
	p.Submit(a1)
	p.Submit(a2)
	p.Submit(a3)

	p.Cancel(a2)
	waitStopped(t, a2)

	p.Restart()
	waitStopped(t, a3)
	waitStopped(t, a1)
}

func TestPoolRestartIgnoresLateCompletion(t *testing.T) {
	w := frozenWorld(t)
	p := newTestPool(t, 1)
	old, queued := poolAnimal(w, 1), poolAnimal(w, 2)
	p.Submit(old)
	p.Submit(queued)

	p.Restart()
	if !old.Dead() || !queued.Dead() {
		t.Fatal("restart left animals alive")
	}
	if p.Running() != 0 || p.Queued() != 0 {
		t.Fatalf("running=%d queued=%d after restart, want 0 and 0", p.Running(), p.Queued())
	}

	fresh, waiting := poolAnimal(w, 3), poolAnimal(w, 4)
	p.Submit(fresh)
	p.Submit(waiting)

	// The old loop finishing must not free the fresh animal's slot.
	waitStopped(t, old)
	if p.Running() != 1 || p.Queued() != 1 {
		t.Errorf("running=%d queued=%d after late completion, want 1 and 1", p.Running(), p.Queued())
	}
}

func TestPoolWait(t *testing.T) {
	w := testWorld(t, time.Millisecond)
	p := NewPool(4)
	animals := []*Animal{poolAnimal(w, 1), poolAnimal(w, 2), poolAnimal(w, 3)}
	for _, a := range animals {
		p.Submit(a)
	}

	p.Restart()
	done := make(chan struct{})
	go func() {
		p.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return after Restart")
	}
}
