package scenario

import (
	"testing"

	"github.com/pthm-cable/menagerie/config"
)

func TestFormCycles(t *testing.T) {
	cfg := config.Default()
	f := NewForm(cfg)

	if got := f.Species(); got != cfg.Species[0].Name {
		t.Fatalf("Species() = %q, want %q", got, cfg.Species[0].Name)
	}
	for range cfg.Species {
		f.NextSpecies()
	}
	if got := f.Species(); got != cfg.Species[0].Name {
		t.Errorf("Species() after full cycle = %q, want %q", got, cfg.Species[0].Name)
	}

	f.NextColor()
	if got := f.Color(); got != cfg.Limits.Colors[1] {
		t.Errorf("Color() = %q, want %q", got, cfg.Limits.Colors[1])
	}
}

func TestFormClamps(t *testing.T) {
	cfg := config.Default()
	f := NewForm(cfg)

	f.SetSize(10)
	if f.Size != cfg.Limits.MinSize {
		t.Errorf("Size = %d, want %d", f.Size, cfg.Limits.MinSize)
	}
	f.SetSize(1000)
	if f.Size != cfg.Limits.MaxSize {
		t.Errorf("Size = %d, want %d", f.Size, cfg.Limits.MaxSize)
	}
	f.SetSpeeds(0, 99)
	if f.HorSpeed != cfg.Limits.MinSpeed || f.VerSpeed != cfg.Limits.MaxSpeed {
		t.Errorf("speeds = %d/%d, want %d/%d", f.HorSpeed, f.VerSpeed, cfg.Limits.MinSpeed, cfg.Limits.MaxSpeed)
	}

	d := f.Descriptor()
	if d.Species != f.Species() || d.Color != f.Color() || d.Size != f.Size {
		t.Errorf("Descriptor() = %+v does not match form", d)
	}
}

func TestFormTarget(t *testing.T) {
	f := NewForm(config.Default())

	if got := f.Target(0); got != -1 {
		t.Errorf("Target(0) = %d, want -1", got)
	}
	f.NextTarget(3)
	f.NextTarget(3)
	if got := f.Target(3); got != 2 {
		t.Errorf("Target(3) = %d, want 2", got)
	}
	f.NextTarget(3)
	if got := f.Target(3); got != 0 {
		t.Errorf("Target(3) after wrap = %d, want 0", got)
	}

	f.NextTarget(3)
	f.NextTarget(3)
	if got := f.Target(2); got != 0 {
		t.Errorf("Target(2) after shrink = %d, want 0", got)
	}
}
