package components

import "fmt"

// Diet determines which food categories an animal may consume.
type Diet uint8

const (
	Herbivore Diet = iota
	Carnivore
	Omnivore
)

func (d Diet) String() string {
	switch d {
	case Herbivore:
		return "herbivore"
	case Carnivore:
		return "carnivore"
	case Omnivore:
		return "omnivore"
	default:
		return fmt.Sprintf("diet(%d)", uint8(d))
	}
}

// ParseDiet converts a config name to a Diet.
func ParseDiet(s string) (Diet, error) {
	switch s {
	case "herbivore":
		return Herbivore, nil
	case "carnivore":
		return Carnivore, nil
	case "omnivore":
		return Omnivore, nil
	}
	return 0, fmt.Errorf("unknown diet %q", s)
}

// FoodType is the category an edible thing belongs to.
type FoodType uint8

const (
	Vegetable FoodType = iota
	Meat
	NotFood
)

func (f FoodType) String() string {
	switch f {
	case Vegetable:
		return "vegetable"
	case Meat:
		return "meat"
	case NotFood:
		return "not_food"
	default:
		return fmt.Sprintf("food(%d)", uint8(f))
	}
}

// ParseFoodType converts a config name to a FoodType.
func ParseFoodType(s string) (FoodType, error) {
	switch s {
	case "vegetable":
		return Vegetable, nil
	case "meat":
		return Meat, nil
	case "not_food":
		return NotFood, nil
	}
	return 0, fmt.Errorf("unknown food type %q", s)
}

// Edible is anything that can be offered to an eater.
type Edible interface {
	FoodType() FoodType
}

// Eater consumes edibles its diet allows, reporting the weight gained.
type Eater interface {
	Eat(food Edible) (float64, bool)
}

// FoodKind identifies a food item variant placed by the user.
type FoodKind uint8

const (
	Lettuce FoodKind = iota
	Cabbage
	MeatChunk
)

func (k FoodKind) String() string {
	switch k {
	case Lettuce:
		return "Lettuce"
	case Cabbage:
		return "Cabbage"
	case MeatChunk:
		return "Meat"
	default:
		return fmt.Sprintf("FoodKind(%d)", uint8(k))
	}
}

// FoodType returns the category of the variant.
func (k FoodKind) FoodType() FoodType {
	if k == MeatChunk {
		return Meat
	}
	return Vegetable
}

// ParseFoodKind converts a display name to a FoodKind.
func ParseFoodKind(s string) (FoodKind, error) {
	switch s {
	case "Lettuce", "lettuce":
		return Lettuce, nil
	case "Cabbage", "cabbage":
		return Cabbage, nil
	case "Meat", "meat":
		return MeatChunk, nil
	}
	return 0, fmt.Errorf("unknown food %q", s)
}

// Background is the world backdrop selected by the user.
type Background uint8

const (
	BackgroundNone Background = iota
	BackgroundGreen
	BackgroundImage
)

func (b Background) String() string {
	switch b {
	case BackgroundNone:
		return "none"
	case BackgroundGreen:
		return "green"
	case BackgroundImage:
		return "image"
	default:
		return fmt.Sprintf("background(%d)", uint8(b))
	}
}

// Next cycles through the backgrounds.
func (b Background) Next() Background {
	return (b + 1) % 3
}

// ParseBackground converts a name to a Background.
func ParseBackground(s string) (Background, error) {
	switch s {
	case "", "none":
		return BackgroundNone, nil
	case "green":
		return BackgroundGreen, nil
	case "image":
		return BackgroundImage, nil
	}
	return 0, fmt.Errorf("unknown background %q", s)
}

// Sound is the noise an animal makes after a successful meal.
type Sound uint8

const (
	SoundChew Sound = iota
	SoundRoar
)

func (s Sound) String() string {
	if s == SoundRoar {
		return "roar"
	}
	return "chew"
}

// ParseSound converts a config name to a Sound.
func ParseSound(s string) (Sound, error) {
	switch s {
	case "chew":
		return SoundChew, nil
	case "roar":
		return SoundRoar, nil
	}
	return 0, fmt.Errorf("unknown sound %q", s)
}
