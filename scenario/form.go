package scenario

import "github.com/pthm-cable/menagerie/config"

// Form holds the add-animal selection made in a front-end. Species and color
// cycle through the configured values; size and speeds are clamped to the
// configured limits. The target is the Info row that recoloring applies to.
type Form struct {
	species []string
	colors  []string
	limits  config.LimitsConfig

	speciesIdx int
	colorIdx   int
	target     int
	Size       int
	HorSpeed   int
	VerSpeed   int
}

// NewForm creates a form seeded with the first species and color and
// mid-range numeric values.
func NewForm(cfg *config.Config) *Form {
	names := make([]string, len(cfg.Species))
	for i, sp := range cfg.Species {
		names[i] = sp.Name
	}
	l := cfg.Limits
	return &Form{
		species:  names,
		colors:   l.Colors,
		limits:   l,
		Size:     (l.MinSize + l.MaxSize) / 2,
		HorSpeed: (l.MinSpeed + l.MaxSpeed) / 2,
		VerSpeed: (l.MinSpeed + l.MaxSpeed) / 2,
	}
}

// Species returns the selected species name.
func (f *Form) Species() string {
	if len(f.species) == 0 {
		return ""
	}
	return f.species[f.speciesIdx]
}

// Color returns the selected color name.
func (f *Form) Color() string {
	if len(f.colors) == 0 {
		return ""
	}
	return f.colors[f.colorIdx]
}

// NextSpecies advances the species selection, wrapping at the end.
func (f *Form) NextSpecies() {
	if len(f.species) > 0 {
		f.speciesIdx = (f.speciesIdx + 1) % len(f.species)
	}
}

// NextColor advances the color selection, wrapping at the end.
func (f *Form) NextColor() {
	if len(f.colors) > 0 {
		f.colorIdx = (f.colorIdx + 1) % len(f.colors)
	}
}

// Target returns the selected row among n animals, or -1 when there are none.
func (f *Form) Target(n int) int {
	if n <= 0 {
		return -1
	}
	return f.target % n
}

// NextTarget advances the target row among n animals, wrapping at the end.
func (f *Form) NextTarget(n int) {
	if n <= 0 {
		f.target = 0
		return
	}
	f.target = (f.Target(n) + 1) % n
}

// SetSize clamps and stores the size.
func (f *Form) SetSize(v int) {
	f.Size = clampInt(v, f.limits.MinSize, f.limits.MaxSize)
}

// SetSpeeds clamps and stores both speeds.
func (f *Form) SetSpeeds(hor, ver int) {
	f.HorSpeed = clampInt(hor, f.limits.MinSpeed, f.limits.MaxSpeed)
	f.VerSpeed = clampInt(ver, f.limits.MinSpeed, f.limits.MaxSpeed)
}

// Limits returns the configured descriptor limits.
func (f *Form) Limits() config.LimitsConfig { return f.limits }

// Descriptor returns the current selection as an animal descriptor.
func (f *Form) Descriptor() Descriptor {
	return Descriptor{
		Species:  f.Species(),
		Size:     f.Size,
		HorSpeed: f.HorSpeed,
		VerSpeed: f.VerSpeed,
		Color:    f.Color(),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

