package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/menagerie/config"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator(config.Default())
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	return v
}

func TestValidate(t *testing.T) {
	v := newValidator(t)

	valid := Descriptor{Species: "Elephant", Size: 100, HorSpeed: 3, VerSpeed: 4, Color: "Red"}

	tests := []struct {
		name    string
		mutate  func(d *Descriptor)
		wantErr bool
	}{
		{"valid", func(d *Descriptor) {}, false},
		{"min size", func(d *Descriptor) { d.Size = 50 }, false},
		{"max size", func(d *Descriptor) { d.Size = 300 }, false},
		{"too small", func(d *Descriptor) { d.Size = 49 }, true},
		{"too large", func(d *Descriptor) { d.Size = 301 }, true},
		{"zero speed", func(d *Descriptor) { d.HorSpeed = 0 }, true},
		{"fast", func(d *Descriptor) { d.VerSpeed = 11 }, true},
		{"unknown color", func(d *Descriptor) { d.Color = "Green" }, true},
		{"unknown species", func(d *Descriptor) { d.Species = "Zebra" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			_, err := v.Validate(d)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%+v) error = %v, wantErr %v", d, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidDescriptor) {
				t.Errorf("error %v does not wrap ErrInvalidDescriptor", err)
			}
		})
	}
}

func TestValidateDefaultsColor(t *testing.T) {
	v := newValidator(t)

	d, err := v.Validate(Descriptor{Species: "Lion", Size: 80, HorSpeed: 5, VerSpeed: 5})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if d.Color != "Natural" {
		t.Errorf("Color = %q, want Natural", d.Color)
	}
	if !v.ValidColor("Blue") || v.ValidColor("Purple") {
		t.Error("ValidColor does not match configured colors")
	}
}

func TestLoad(t *testing.T) {
	v := newValidator(t)
	path := filepath.Join(t.TempDir(), "zoo.yaml")
	data := []byte(`background: green
food: [cabbage, meat]
animals:
  - species: Lion
    size: 80
    hor_speed: 6
    ver_speed: 2
  - species: Turtle
    size: 60
    hor_speed: 1
    ver_speed: 1
    color: Blue
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing scenario: %v", err)
	}

	s, err := v.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Background != "green" {
		t.Errorf("Background = %q, want green", s.Background)
	}
	if len(s.Food) != 2 {
		t.Errorf("len(Food) = %d, want 2", len(s.Food))
	}
	if len(s.Animals) != 2 {
		t.Fatalf("len(Animals) = %d, want 2", len(s.Animals))
	}
	if s.Animals[0].Color != "Natural" || s.Animals[1].Color != "Blue" {
		t.Errorf("colors = %q, %q, want Natural, Blue", s.Animals[0].Color, s.Animals[1].Color)
	}
}

func TestParseRejects(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name string
		data string
	}{
		{"unknown field", "weather: rain\n"},
		{"bad food", "food: [pizza]\n"},
		{"bad background", "background: stars\n"},
		{"missing size", "animals:\n  - species: Bear\n    hor_speed: 2\n    ver_speed: 2\n"},
		{"oversized animal", "animals:\n  - species: Bear\n    size: 400\n    hor_speed: 2\n    ver_speed: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Parse([]byte(tt.data))
			if !errors.Is(err, ErrInvalidDescriptor) {
				t.Errorf("Parse error = %v, want ErrInvalidDescriptor", err)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	v := newValidator(t)
	s, err := v.Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if len(s.Animals) != 0 {
		t.Errorf("len(Animals) = %d, want 0", len(s.Animals))
	}
}
