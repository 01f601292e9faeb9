package game

import (
	"github.com/pthm-cable/menagerie/components"
	"github.com/pthm-cable/menagerie/systems"
	"github.com/pthm-cable/menagerie/telemetry"
)

// Outcome describes the single action applied by an arbitration pass.
type Outcome struct {
	Type    telemetry.EventType // EventEatPlant, EventEatMeat or EventPrey
	EaterID uint32
	PreyID  uint32
	Gained  float64
}

// Arbitrate resolves at most one feeding or predation event, in priority
// order plant, meat, predation. Within each stage the earliest animal in
// insertion order wins; later animals can lose every contested meal.
// The World lock is held for the whole scan.
func (w *World) Arbitrate() (Outcome, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.plant != nil {
		if id, gained, ok := w.feedLocked(w.plant); ok {
			w.setPlantLocked(nil)
			w.markDirtyLocked()
			return Outcome{Type: telemetry.EventEatPlant, EaterID: id, Gained: gained}, true
		}
	}
	if w.meat != nil {
		if id, gained, ok := w.feedLocked(w.meat); ok {
			w.setMeatLocked(nil)
			w.markDirtyLocked()
			return Outcome{Type: telemetry.EventEatMeat, EaterID: id, Gained: gained}, true
		}
	}
	return w.preyLocked()
}

// feedLocked lets the first diet-compatible animal within reach eat f.
func (w *World) feedLocked(f *Food) (uint32, float64, bool) {
	for _, a := range w.animals {
		if a.Dead() || !systems.CanEat(a.Diet, f.FoodType()) {
			continue
		}
		if a.Position().Distance(f.Pos) > w.params.EatDistance {
			continue
		}
		if gained, ok := a.Eat(f); ok {
			return a.ID, gained, true
		}
	}
	return 0, 0, false
}

// preyLocked applies the first valid predator/prey pair in row-major order.
func (w *World) preyLocked() (Outcome, bool) {
	bodies := make([]systems.Body, len(w.animals))
	for i, a := range w.animals {
		bodies[i] = a.body()
	}

	for i, pred := range w.animals {
		if pred.Dead() {
			continue
		}
		for j, prey := range w.animals {
			if i == j || prey.Dead() {
				continue
			}
			if !systems.CanPrey(bodies[i], bodies[j]) {
				continue
			}
			gained, ok := pred.Eat(prey)
			if !ok {
				continue
			}
			w.removeLocked(j)
			return Outcome{Type: telemetry.EventPrey, EaterID: pred.ID, PreyID: prey.ID, Gained: gained}, true
		}
	}
	return Outcome{}, false
}

// removeLocked terminates the animal at index i and drops it from the world.
func (w *World) removeLocked(i int) {
	a := w.animals[i]
	w.pool.Cancel(a)
	copy(w.animals[i:], w.animals[i+1:])
	w.animals[len(w.animals)-1] = nil
	w.animals = w.animals[:len(w.animals)-1]
	w.markDirtyLocked()
}

var _ components.Edible = (*Animal)(nil)
var _ components.Edible = (*Food)(nil)
