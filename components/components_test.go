package components

import (
	"math"
	"testing"
)

func TestPositionSetRejectsOutOfBounds(t *testing.T) {
	b := Bounds{Width: 800, Height: 600}
	p := Position{X: 10, Y: 20}

	tests := []struct {
		name string
		x, y int
		ok   bool
	}{
		{"inside", 100, 100, true},
		{"origin", 0, 0, true},
		{"last column", 799, 599, true},
		{"x at width", 800, 10, false},
		{"y at height", 10, 600, false},
		{"negative x", -1, 10, false},
		{"negative y", 10, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := p
			got := p.Set(tt.x, tt.y, b)
			if got != tt.ok {
				t.Fatalf("Set(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.ok)
			}
			if !tt.ok && p != before {
				t.Errorf("rejected Set changed position from %v to %v", before, p)
			}
			if tt.ok && (p.X != tt.x || p.Y != tt.y) {
				t.Errorf("position = %v, want (%d, %d)", p, tt.x, tt.y)
			}
		})
	}
}

func TestPositionDistance(t *testing.T) {
	a := Position{X: 0, Y: 0}
	b := Position{X: 3, Y: 4}
	if d := a.Distance(b); math.Abs(d-5) > 1e-9 {
		t.Errorf("Distance = %v, want 5", d)
	}
	if d := b.Distance(a); math.Abs(d-5) > 1e-9 {
		t.Errorf("Distance is not symmetric: %v", d)
	}
}

func TestBoundsCenter(t *testing.T) {
	c := Bounds{Width: 800, Height: 600}.Center()
	if c.X != 400 || c.Y != 300 {
		t.Errorf("Center = %v, want (400, 300)", c)
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, d := range []Diet{Herbivore, Carnivore, Omnivore} {
		got, err := ParseDiet(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDiet(%q) = %v, %v", d.String(), got, err)
		}
	}
	for _, f := range []FoodType{Vegetable, Meat, NotFood} {
		got, err := ParseFoodType(f.String())
		if err != nil || got != f {
			t.Errorf("ParseFoodType(%q) = %v, %v", f.String(), got, err)
		}
	}
	for _, bg := range []Background{BackgroundNone, BackgroundGreen, BackgroundImage} {
		got, err := ParseBackground(bg.String())
		if err != nil || got != bg {
			t.Errorf("ParseBackground(%q) = %v, %v", bg.String(), got, err)
		}
	}
	if _, err := ParseDiet("grass"); err == nil {
		t.Error("ParseDiet accepted an unknown diet")
	}
}

func TestFoodKindCategory(t *testing.T) {
	if Lettuce.FoodType() != Vegetable || Cabbage.FoodType() != Vegetable {
		t.Error("plants should be vegetables")
	}
	if MeatChunk.FoodType() != Meat {
		t.Error("meat chunk should be meat")
	}
}

func TestBackgroundNextCycles(t *testing.T) {
	if BackgroundImage.Next() != BackgroundNone {
		t.Errorf("Image.Next() = %v, want none", BackgroundImage.Next())
	}
}
