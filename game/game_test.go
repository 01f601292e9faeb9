package game

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/menagerie/components"
	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/scenario"
	"github.com/pthm-cable/menagerie/telemetry"
)

// newTestGame builds a game whose animals never move unless cycle is set.
func newTestGame(t *testing.T, cycle time.Duration, outputDir string) *Game {
	t.Helper()
	cfg := config.Default()
	cfg.Derived.Cycle = cycle

	out, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	g, err := NewGame(Options{Config: cfg, Output: out})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(func() { g.Close() })
	return g
}

func elephant() scenario.Descriptor {
	return scenario.Descriptor{Species: "Elephant", Size: 100, HorSpeed: 3, VerSpeed: 4}
}

func TestGameAddAnimal(t *testing.T) {
	g := newTestGame(t, time.Hour, "")

	adm, err := g.AddAnimal(elephant())
	if err != nil || adm != Running {
		t.Fatalf("AddAnimal = (%v, %v), want running", adm, err)
	}

	info := g.Info()
	if len(info.Rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(info.Rows))
	}
	row := info.Rows[0]
	if row.Name != "Elephant" || row.Color != "Natural" || row.Weight != 1000 {
		t.Errorf("row = %+v, want Natural Elephant weighing 1000", row)
	}

	a, _ := g.World().Animal(row.ID)
	if got := a.Position(); got != (components.Position{X: 50, Y: 90}) {
		t.Errorf("start position = %v, want (50,90)", got)
	}
}

func TestGameAddAnimalRejections(t *testing.T) {
	g := newTestGame(t, time.Hour, "")

	bad := elephant()
	bad.Size = 20
	if adm, err := g.AddAnimal(bad); !errors.Is(err, scenario.ErrInvalidDescriptor) || adm != Rejected {
		t.Errorf("AddAnimal(invalid) = (%v, %v), want rejected descriptor", adm, err)
	}
	if g.World().Len() != 0 {
		t.Fatal("invalid descriptor added an animal")
	}

	limit := g.Config().World.MaxAnimals
	for i := 0; i < limit; i++ {
		adm, err := g.AddAnimal(elephant())
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		if i >= g.Config().World.PoolCapacity && adm != Queued {
			t.Errorf("add %d admission = %v, want queued", i, adm)
		}
	}
	if adm, err := g.AddAnimal(elephant()); !errors.Is(err, ErrWorldFull) || adm != Rejected {
		t.Errorf("AddAnimal(full) = (%v, %v), want ErrWorldFull", adm, err)
	}
	if g.World().Len() != limit {
		t.Errorf("Len = %d, want %d", g.World().Len(), limit)
	}
}

func TestGameSaveRestore(t *testing.T) {
	g := newTestGame(t, time.Hour, "")

	if err := g.Restore(); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("Restore with no save = %v, want ErrEmptyHistory", err)
	}

	g.AddAnimal(elephant())
	g.SetFood(components.Lettuce)
	if err := g.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	g.Clear()
	if g.World().Len() != 0 {
		t.Fatal("Clear left animals behind")
	}

	if err := g.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if g.World().Len() != 1 || g.World().Plant() == nil {
		t.Errorf("restored world has %d animals, plant %v", g.World().Len(), g.World().Plant())
	}
}

func TestGameRecolor(t *testing.T) {
	g := newTestGame(t, time.Hour, "")
	g.AddAnimal(elephant())
	id := g.Info().Rows[0].ID

	if err := g.Recolor(id, "Blue"); err != nil {
		t.Fatalf("Recolor: %v", err)
	}
	if err := g.Recolor(id, "Purple"); !errors.Is(err, scenario.ErrInvalidDescriptor) {
		t.Errorf("Recolor(Purple) = %v, want ErrInvalidDescriptor", err)
	}
	if err := g.Recolor(id+100, "Red"); !errors.Is(err, ErrUnknownAnimal) {
		t.Errorf("Recolor(unknown) = %v, want ErrUnknownAnimal", err)
	}
	if got := g.Info().Rows[0].Color; got != "Blue" {
		t.Errorf("color = %q, want Blue", got)
	}
}

func TestGameRecolorAt(t *testing.T) {
	g := newTestGame(t, time.Hour, "")
	g.AddAnimal(elephant())
	g.AddAnimal(elephant())

	id, err := g.RecolorAt(1, "Red")
	if err != nil {
		t.Fatalf("RecolorAt: %v", err)
	}
	rows := g.Info().Rows
	if id != rows[1].ID || rows[1].Color != "Red" {
		t.Errorf("row 1 = %+v, want id %d colored Red", rows[1], id)
	}
	if rows[0].Color == "Red" {
		t.Error("RecolorAt changed the wrong row")
	}
	if _, err := g.RecolorAt(2, "Red"); !errors.Is(err, ErrUnknownAnimal) {
		t.Errorf("RecolorAt(2) = %v, want ErrUnknownAnimal", err)
	}
}

func TestGameBackgroundCycles(t *testing.T) {
	g := newTestGame(t, time.Hour, "")
	want := []components.Background{components.BackgroundGreen, components.BackgroundImage, components.BackgroundNone}
	for _, bg := range want {
		if got := g.NextBackground(); got != bg {
			t.Fatalf("NextBackground = %v, want %v", got, bg)
		}
	}
}

func TestGameApplyScenario(t *testing.T) {
	g := newTestGame(t, time.Hour, "")
	err := g.ApplyScenario(&scenario.Scenario{
		Background: "green",
		Food:       []string{"cabbage", "meat"},
		Suspended:  true,
		Animals: []scenario.Descriptor{
			elephant(),
			{Species: "Bear", Size: 120, HorSpeed: 2, VerSpeed: 2, Color: "Blue"},
		},
	})
	if err != nil {
		t.Fatalf("ApplyScenario: %v", err)
	}

	v := g.World().View()
	if v.Background != components.BackgroundGreen {
		t.Errorf("background = %v, want green", v.Background)
	}
	if v.Plant == nil || v.Plant.Kind != components.Cabbage || v.Meat == nil {
		t.Errorf("food = %+v / %+v, want cabbage and meat", v.Plant, v.Meat)
	}
	if len(v.Animals) != 2 {
		t.Fatalf("len(animals) = %d, want 2", len(v.Animals))
	}
	for _, a := range v.Animals {
		if !a.Suspended {
			t.Errorf("animal %d not suspended", a.ID)
		}
	}
}

func TestGameStepWritesTelemetry(t *testing.T) {
	dir := t.TempDir()
	g := newTestGame(t, time.Hour, dir)
	g.AddAnimal(elephant())

	window := g.collector.WindowDurationTicks()
	for i := int64(0); i < 2*window; i++ {
		g.Step()
	}
	if g.Tick() != 2*window {
		t.Errorf("Tick = %d, want %d", g.Tick(), 2*window)
	}

	path, err := g.ExportInfo()
	if err != nil {
		t.Fatalf("ExportInfo: %v", err)
	}
	if path != filepath.Join(dir, "info.csv") {
		t.Errorf("ExportInfo path = %q", path)
	}

	if err := g.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, name := range []string{"telemetry.csv", "perf.csv"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Errorf("%s has %d lines, want 3", name, len(lines))
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not written: %v", err)
	}
}

func TestGameFeedsRunningAnimal(t *testing.T) {
	g := newTestGame(t, time.Millisecond, "")
	if _, err := g.AddAnimal(scenario.Descriptor{Species: "Giraffe", Size: 60, HorSpeed: 8, VerSpeed: 8}); err != nil {
		t.Fatalf("AddAnimal: %v", err)
	}
	g.SetFood(components.Lettuce)

	waitFor(t, "plant eaten", func() bool {
		out, ok := g.Step()
		return ok && out.Type == telemetry.EventEatPlant
	})
	if got := g.Info().TotalEats; got != 1 {
		t.Errorf("TotalEats = %d, want 1", got)
	}
	if g.World().Plant() != nil {
		t.Error("plant still present")
	}
	if life, ok := g.Lifetime(g.Info().Rows[0].ID); !ok || life.Meals != 1 {
		t.Errorf("Lifetime = %+v, %v, want one meal", life, ok)
	}
}

func TestGameLifetimeOnPrey(t *testing.T) {
	g := newTestGame(t, time.Hour, "")
	if _, err := g.AddAnimal(scenario.Descriptor{Species: "Lion", Size: 300, HorSpeed: 1, VerSpeed: 1}); err != nil {
		t.Fatalf("AddAnimal(Lion): %v", err)
	}
	if _, err := g.AddAnimal(scenario.Descriptor{Species: "Turtle", Size: 100, HorSpeed: 1, VerSpeed: 1}); err != nil {
		t.Fatalf("AddAnimal(Turtle): %v", err)
	}
	rows := g.Info().Rows
	lion, turtle := rows[0].ID, rows[1].ID

	out, ok := g.Step()
	if !ok || out.Type != telemetry.EventPrey {
		t.Fatalf("Step() = %+v, %v, want prey", out, ok)
	}
	if out.EaterID != lion || out.PreyID != turtle {
		t.Errorf("eater/prey = %d/%d, want %d/%d", out.EaterID, out.PreyID, lion, turtle)
	}

	life, ok := g.Lifetime(lion)
	if !ok {
		t.Fatal("no lifetime for the lion")
	}
	if life.Kills != 1 || life.Meals != 1 || life.WeightGained != out.Gained {
		t.Errorf("lifetime = %+v, want one kill gaining %v", life, out.Gained)
	}
	if _, ok := g.Lifetime(turtle); ok {
		t.Error("eaten turtle still tracked")
	}
}
