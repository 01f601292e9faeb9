// Package systems holds the pure rules of the simulation: diet capability,
// movement and predation. Nothing here touches shared state.
package systems

import "github.com/pthm-cable/menagerie/components"

// CanEat reports whether an animal with diet d may consume food of type f.
func CanEat(d components.Diet, f components.FoodType) bool {
	switch f {
	case components.Vegetable:
		return d == components.Herbivore || d == components.Omnivore
	case components.Meat:
		return d == components.Carnivore || d == components.Omnivore
	default:
		return false
	}
}

// Gains holds the fraction of its own weight an eater gains per meal.
type Gains struct {
	Carnivore float64 // gained from meat
	Herbivore float64 // gained from vegetables
}

// Gain returns the weight an eater of the given diet and weight gains
// from food of type f. Zero means the meal is refused.
// Omnivores gain like a carnivore from meat and like a herbivore from vegetables.
func (g Gains) Gain(d components.Diet, weight float64, f components.FoodType) float64 {
	if !CanEat(d, f) {
		return 0
	}
	switch f {
	case components.Meat:
		return weight * g.Carnivore
	case components.Vegetable:
		return weight * g.Herbivore
	}
	return 0
}
