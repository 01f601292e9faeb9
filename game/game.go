// Package game runs the simulation: animal behavior loops, the bounded
// scheduler, the shared world, arbitration and snapshot history.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/pthm-cable/menagerie/components"
	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/scenario"
	"github.com/pthm-cable/menagerie/telemetry"
)

// perfWindow is the number of steps step timings are averaged over.
const perfWindow = 120

// bookmarkHistory is the number of stats windows the bookmark detector keeps.
const bookmarkHistory = 10

// Options configures a Game.
type Options struct {
	Config   *config.Config           // nil uses the embedded defaults
	Output   *telemetry.OutputManager // nil disables CSV output
	Sound    SoundPlayer              // nil is silent
	LogStats bool                     // log window stats via slog
}

// Game is the command surface used by the render collaborators and the
// headless loop. Every command goes through the World lock.
type Game struct {
	cfg       *config.Config
	world     *World
	history   *History
	validator *scenario.Validator
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	bookmarks *telemetry.BookmarkDetector
	lifetimes *telemetry.LifetimeTracker
	output    *telemetry.OutputManager
	logStats  bool

	tick atomic.Int64
}

// NewGame wires a world, its scheduler, snapshot history and telemetry.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	validator, err := scenario.NewValidator(cfg)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:       cfg,
		world:     NewWorld(ParamsFromConfig(cfg), opts.Sound),
		history:   NewHistory(cfg.Snapshots.HistorySize),
		validator: validator,
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.ArbitrationInterval),
		perf:      telemetry.NewPerfCollector(perfWindow),
		bookmarks: telemetry.NewBookmarkDetector(bookmarkHistory),
		lifetimes: telemetry.NewLifetimeTracker(),
		output:    opts.Output,
		logStats:  opts.LogStats,
	}
	if err := g.output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config", "error", err)
	}
	return g, nil
}

// World returns the simulated world.
func (g *Game) World() *World { return g.world }

// History returns the snapshot history.
func (g *Game) History() *History { return g.history }

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config { return g.cfg }

// Lifetime returns the meal and kill record of a living animal.
func (g *Game) Lifetime(id uint32) (telemetry.LifetimeStats, bool) {
	return g.lifetimes.Get(id)
}

// Tick returns the number of completed Steps.
func (g *Game) Tick() int64 { return g.tick.Load() }

func (g *Game) record(e telemetry.Event) {
	e.Tick = g.tick.Load()
	g.collector.Record(e)
}

// AddAnimal validates a descriptor and adds the animal. Invalid descriptors
// and a full world leave the world unchanged.
func (g *Game) AddAnimal(desc scenario.Descriptor) (Admission, error) {
	d, err := g.validator.Validate(desc)
	if err != nil {
		slog.Warn("animal rejected", "species", desc.Species, "error", err)
		g.record(telemetry.Event{Type: telemetry.EventReject})
		return Rejected, err
	}
	spec, err := g.specFor(d)
	if err != nil {
		return Rejected, err
	}

	a, adm, err := g.world.Add(spec)
	if err != nil {
		slog.Warn("animal rejected", "species", d.Species, "error", err)
		g.record(telemetry.Event{Type: telemetry.EventReject})
		return adm, err
	}
	g.record(telemetry.Event{Type: telemetry.EventAdd, EntityID: a.ID})
	g.lifetimes.Register(a.ID, a.Species, g.tick.Load())

	if adm == Queued {
		slog.Info("animal queued", "id", a.ID, "species", a.Species,
			"running", g.world.Pool().Running(), "capacity", g.cfg.World.PoolCapacity)
	} else {
		slog.Info("animal added", "id", a.ID, "species", a.Species, "weight", spec.Weight)
	}
	return adm, nil
}

func (g *Game) specFor(d scenario.Descriptor) (AnimalSpec, error) {
	sp, ok := g.cfg.SpeciesByName(d.Species)
	if !ok {
		return AnimalSpec{}, fmt.Errorf("%w: unknown species %q", scenario.ErrInvalidDescriptor, d.Species)
	}
	diet, err := components.ParseDiet(sp.Diet)
	if err != nil {
		return AnimalSpec{}, fmt.Errorf("species %s: %w", sp.Name, err)
	}
	food, err := components.ParseFoodType(sp.FoodType)
	if err != nil {
		return AnimalSpec{}, fmt.Errorf("species %s: %w", sp.Name, err)
	}
	sound, err := components.ParseSound(sp.Sound)
	if err != nil {
		return AnimalSpec{}, fmt.Errorf("species %s: %w", sp.Name, err)
	}
	return AnimalSpec{
		Species:  sp.Name,
		Diet:     diet,
		Food:     food,
		Sound:    sound,
		Color:    d.Color,
		Size:     d.Size,
		HorSpeed: d.HorSpeed,
		VerSpeed: d.VerSpeed,
		Weight:   float64(d.Size) * sp.WeightFactor,
		X:        sp.StartX,
		Y:        sp.StartY,
	}, nil
}

// SuspendAll pauses every animal.
func (g *Game) SuspendAll() {
	n := g.world.SuspendAll()
	slog.Info("animals suspended", "count", n)
}

// ResumeAll wakes every animal.
func (g *Game) ResumeAll() {
	n := g.world.ResumeAll()
	slog.Info("animals resumed", "count", n)
}

// Clear removes every animal and food item.
func (g *Game) Clear() {
	n := g.world.Clear()
	g.lifetimes.Reset()
	g.record(telemetry.Event{Type: telemetry.EventClear})
	slog.Info("world cleared", "count", n)
}

// SetFood places food of the given kind at the world center.
func (g *Game) SetFood(kind components.FoodKind) {
	g.world.SetFood(kind)
	slog.Info("food placed", "kind", kind.String())
}

// SetBackground replaces the background.
func (g *Game) SetBackground(bg components.Background) {
	g.world.SetBackground(bg)
	slog.Info("background set", "background", bg.String())
}

// NextBackground cycles to the next background.
func (g *Game) NextBackground() components.Background {
	bg := g.world.Background().Next()
	g.SetBackground(bg)
	return bg
}

// Recolor changes an animal's color to one of the configured colors.
func (g *Game) Recolor(id uint32, color string) error {
	if !g.validator.ValidColor(color) {
		return fmt.Errorf("%w: unknown color %q", scenario.ErrInvalidDescriptor, color)
	}
	if err := g.world.Recolor(id, color); err != nil {
		slog.Warn("recolor failed", "id", id, "error", err)
		return err
	}
	slog.Info("animal recolored", "id", id, "color", color)
	return nil
}

// RecolorAt recolors the animal shown in the given Info row and returns its ID.
func (g *Game) RecolorAt(row int, color string) (uint32, error) {
	rows := g.world.Info()
	if row < 0 || row >= len(rows) {
		return 0, fmt.Errorf("recolor row %d: %w", row, ErrUnknownAnimal)
	}
	id := rows[row].ID
	return id, g.Recolor(id, color)
}

// Save captures the world into the snapshot history.
func (g *Game) Save() error {
	s, err := g.history.Capture(g.world)
	if err != nil {
		slog.Error("save failed", "error", err)
		return err
	}
	g.record(telemetry.Event{Type: telemetry.EventSave})
	slog.Info("world saved", "seq", s.Seq, "animals", len(s.Entities), "history", g.history.Len())
	return nil
}

// Restore replaces the world with the most recent snapshot, consuming it.
func (g *Game) Restore() error {
	s, err := g.history.Restore(g.world)
	if err != nil {
		if errors.Is(err, ErrEmptyHistory) {
			slog.Warn("restore failed", "error", err)
		} else {
			slog.Error("restore failed", "error", err)
		}
		return err
	}
	g.record(telemetry.Event{Type: telemetry.EventRestore})
	g.lifetimes.Reset()
	for _, e := range s.Entities {
		g.lifetimes.Register(e.ID, e.Species, g.tick.Load())
	}
	slog.Info("world restored", "seq", s.Seq, "animals", len(s.Entities), "history", g.history.Len())
	return nil
}

// Info returns the animal information table.
func (g *Game) Info() telemetry.InfoTable {
	return telemetry.NewInfoTable(g.world.Info())
}

// ExportInfo writes the information table to info.csv in the output
// directory. It returns an empty path when output is disabled.
func (g *Game) ExportInfo() (string, error) {
	table := g.Info()
	path, err := g.output.WriteInfo(table)
	if err != nil {
		return "", err
	}
	slog.Info("info exported", "path", path, "table", table)
	return path, nil
}

// ApplyScenario sets up the world from a loaded scenario. Animals that do
// not fit are reported but do not stop the rest.
func (g *Game) ApplyScenario(s *scenario.Scenario) error {
	bg, err := components.ParseBackground(s.Background)
	if err != nil {
		return err
	}
	g.SetBackground(bg)
	for _, name := range s.Food {
		kind, err := components.ParseFoodKind(name)
		if err != nil {
			return err
		}
		g.SetFood(kind)
	}

	var errs []error
	for _, d := range s.Animals {
		if _, err := g.AddAnimal(d); err != nil {
			errs = append(errs, err)
		}
	}
	if s.Suspended {
		g.SuspendAll()
	}
	return errors.Join(errs...)
}

// LoadScenario reads, validates and applies a scenario file.
func (g *Game) LoadScenario(path string) error {
	s, err := g.validator.Load(path)
	if err != nil {
		return err
	}
	return g.ApplyScenario(s)
}

// Step runs one arbitration pass and flushes telemetry when a window ends.
// Steps must come from a single goroutine.
func (g *Game) Step() (Outcome, bool) {
	tick := g.tick.Add(1)
	g.perf.StartStep()
	defer g.perf.EndStep()

	g.perf.StartPhase(telemetry.PhaseArbitrate)
	out, ok := g.world.Arbitrate()
	if ok {
		switch out.Type {
		case telemetry.EventPrey:
			g.collector.Record(telemetry.NewPreyEvent(tick, out.EaterID, out.PreyID, out.Gained))
			g.lifetimes.RecordKill(out.EaterID, out.Gained)
			slog.Info("prey", "tick", tick, "id", out.EaterID, "prey", out.PreyID, "gained", out.Gained)
			if life := g.lifetimes.Remove(out.PreyID); life != nil {
				slog.Info("animal eaten", "lifetime", life)
			}
		default:
			g.collector.Record(telemetry.NewEatEvent(tick, out.Type, out.EaterID, out.Gained))
			g.lifetimes.RecordMeal(out.EaterID, out.Gained)
			slog.Info("eat", "tick", tick, "id", out.EaterID, "food", out.Type.String(), "gained", out.Gained)
		}
	}

	g.perf.StartPhase(telemetry.PhaseStats)
	if g.collector.ShouldFlush(tick) {
		g.flushStats(tick)
	}
	return out, ok
}

func (g *Game) flushStats(tick int64) {
	view := g.world.View()
	weights := make([]float64, len(view.Animals))
	suspended := 0
	for i, a := range view.Animals {
		weights[i] = a.Weight
		if a.Suspended {
			suspended++
		}
	}

	stats := g.collector.Flush(tick, len(view.Animals), suspended, weights)
	perf := g.perf.Stats()
	for _, b := range g.bookmarks.Check(stats) {
		b.LogBookmark()
	}
	if g.logStats {
		stats.LogStats()
		slog.Info("perf", "tick", tick, "perf", perf)
	}
	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(perf.ToCSV(tick)); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// Close stops every behavior loop and closes output files.
func (g *Game) Close() error {
	g.world.Shutdown()
	return g.output.Close()
}
