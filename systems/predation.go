package systems

import "github.com/pthm-cable/menagerie/components"

// Body is the read-only view of an animal needed to judge predation.
type Body struct {
	Diet      components.Diet
	FoodType  components.FoodType
	Weight    float64
	Size      int
	Pos       components.Position
	Suspended bool
}

// CanPrey reports whether pred may eat prey right now: the diet must allow
// the prey's food type, the predator must be awake, at least twice as heavy,
// and closer to the prey than the prey's size.
func CanPrey(pred, prey Body) bool {
	if pred.Suspended {
		return false
	}
	if !CanEat(pred.Diet, prey.FoodType) {
		return false
	}
	if pred.Weight <= 2*prey.Weight {
		return false
	}
	return pred.Pos.Distance(prey.Pos) < float64(prey.Size)
}
