package game

import (
	"github.com/pthm-cable/menagerie/components"
	"github.com/pthm-cable/menagerie/telemetry"
)

// Food is a plant or meat item lying in the world.
type Food struct {
	Kind   components.FoodKind
	Pos    components.Position
	weight float64
	height float64
}

// NewFood creates a food item at pos. Non-positive dimensions fall back to 1.
func NewFood(kind components.FoodKind, pos components.Position, weight, height float64) *Food {
	f := &Food{Kind: kind, Pos: pos, weight: 1, height: 1}
	f.SetWeight(weight)
	f.SetHeight(height)
	return f
}

// FoodType implements components.Edible.
func (f *Food) FoodType() components.FoodType { return f.Kind.FoodType() }

func (f *Food) Weight() float64 { return f.weight }
func (f *Food) Height() float64 { return f.height }

// SetWeight rejects non-positive weights and leaves the item unchanged.
func (f *Food) SetWeight(w float64) bool {
	if w <= 0 {
		return false
	}
	f.weight = w
	return true
}

// SetHeight rejects non-positive heights and leaves the item unchanged.
func (f *Food) SetHeight(h float64) bool {
	if h <= 0 {
		return false
	}
	f.height = h
	return true
}

func (f *Food) state() *telemetry.FoodState {
	if f == nil {
		return nil
	}
	return &telemetry.FoodState{
		Kind:   f.Kind,
		X:      f.Pos.X,
		Y:      f.Pos.Y,
		Weight: f.weight,
		Height: f.height,
	}
}

func foodFromState(s *telemetry.FoodState) *Food {
	if s == nil {
		return nil
	}
	return NewFood(s.Kind, components.Position{X: s.X, Y: s.Y}, s.Weight, s.Height)
}
