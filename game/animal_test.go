package game

import (
	"testing"
	"time"

	"github.com/pthm-cable/menagerie/components"
)

func TestAnimalMovesAndLosesWeight(t *testing.T) {
	w := testWorld(t, time.Millisecond)
	a := mustAdd(t, w, herbivore(100, 100, 100))
	start := a.Position()

	waitFor(t, "first move", func() bool { return a.Position() != start })

	if got := a.Weight(); got >= 100 || got <= 0 {
		t.Errorf("weight after moving = %v, want in (0, 100)", got)
	}
	waitFor(t, "change flag", w.TakeChanged)
}

func TestAnimalStaysInBounds(t *testing.T) {
	w := testWorld(t, time.Millisecond)
	spec := herbivore(780, 10, 100)
	spec.HorSpeed, spec.VerSpeed = 10, 10
	a := mustAdd(t, w, spec)
	bounds := w.Params().Bounds

	deadline := time.Now().Add(100 * time.Millisecond)
	for time.Now().Before(deadline) {
		p := a.Position()
		if !bounds.Contains(p.X, p.Y) {
			t.Fatalf("animal left the world at %v", p)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSuspendedAnimalStaysPut(t *testing.T) {
	w := testWorld(t, time.Millisecond)
	a := mustAdd(t, w, herbivore(100, 100, 100))
	start := a.Position()
	waitFor(t, "first move", func() bool { return a.Position() != start })

	a.SetSuspended()
	held := a.Position()
	weight := a.Weight()
	time.Sleep(30 * time.Millisecond)

	if got := a.Position(); got != held {
		t.Fatalf("suspended animal moved from %v to %v", held, got)
	}
	if got := a.Weight(); got != weight {
		t.Errorf("suspended animal weight changed from %v to %v", weight, got)
	}

	a.SetResumed()
	waitFor(t, "move after resume", func() bool { return a.Position() != held })
}

func TestSuspendResumeIdempotent(t *testing.T) {
	w := testWorld(t, time.Millisecond)
	a := mustAdd(t, w, herbivore(100, 100, 100))

	a.SetResumed()
	if a.Suspended() {
		t.Fatal("resuming a running animal suspended it")
	}

	a.SetSuspended()
	a.SetSuspended()
	if !a.Suspended() {
		t.Fatal("animal not suspended")
	}
	held := a.Position()

	a.SetResumed()
	if a.Suspended() {
		t.Fatal("single resume did not undo a double suspend")
	}
	waitFor(t, "move after resume", func() bool { return a.Position() != held })
}

func TestInterruptWhileSuspended(t *testing.T) {
	w := testWorld(t, time.Millisecond)
	a := mustAdd(t, w, herbivore(100, 100, 100))
	a.SetSuspended()
	time.Sleep(5 * time.Millisecond)

	w.Pool().Cancel(a)
	select {
	case <-a.Stopped():
	case <-time.After(5 * time.Second):
		t.Fatal("suspended loop did not stop after interrupt")
	}
}

func TestAnimalSteersToFood(t *testing.T) {
	w := testWorld(t, time.Millisecond)
	a := mustAdd(t, w, herbivore(50, 0, 100))
	w.SetFood(components.Lettuce)

	waitFor(t, "plant eaten", func() bool {
		_, ok := w.Arbitrate()
		return ok
	})
	if a.EatCount() != 1 {
		t.Errorf("eat count = %d, want 1", a.EatCount())
	}
}

func TestSetWeightRejectsNonPositive(t *testing.T) {
	w := frozenWorld(t)
	a := mustAdd(t, w, herbivore(100, 100, 10))

	if a.SetWeight(0) || a.SetWeight(-3) {
		t.Error("SetWeight accepted a non-positive weight")
	}
	if a.Weight() != 10 {
		t.Errorf("weight = %v, want 10", a.Weight())
	}
	if a.SetPosition(800, 10) {
		t.Error("SetPosition accepted an out-of-bounds point")
	}
	if a.Position() != (components.Position{X: 100, Y: 100}) {
		t.Errorf("position = %v, want (100,100)", a.Position())
	}
}

func TestEaterDispatchesOnDiet(t *testing.T) {
	w := frozenWorld(t)
	lettuce := NewFood(components.Lettuce, w.params.Center, 10, 10)
	turtle := mustAdd(t, w, herbivore(100, 100, 100))
	lion := mustAdd(t, w, carnivore(200, 200, 100))

	tests := []struct {
		name  string
		eater components.Eater
		food  components.Edible
		want  bool
	}{
		{"herbivore eats plant", turtle, lettuce, true},
		{"herbivore refuses animal", turtle, lion, false},
		{"carnivore eats animal", lion, turtle, true},
		{"carnivore refuses plant", lion, lettuce, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gain, ok := tt.eater.Eat(tt.food)
			if ok != tt.want {
				t.Errorf("Eat ok = %v, want %v", ok, tt.want)
			}
			if ok != (gain > 0) {
				t.Errorf("gain = %v with ok = %v", gain, ok)
			}
		})
	}
}
