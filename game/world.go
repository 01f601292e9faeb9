package game

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/menagerie/components"
	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/systems"
	"github.com/pthm-cable/menagerie/telemetry"
)

var (
	// ErrWorldFull is returned when an add would exceed the animal cap.
	ErrWorldFull = errors.New("world is full")
	// ErrEmptyHistory is returned by a restore with no saved snapshot.
	ErrEmptyHistory = errors.New("no saved snapshot")
	// ErrUnknownAnimal is returned for commands naming an animal not in the world.
	ErrUnknownAnimal = errors.New("unknown animal")
)

// Admission is the outcome of adding an animal.
type Admission uint8

const (
	Running  Admission = iota // loop started
	Queued                    // waiting for a free pool slot
	Rejected                  // world full, nothing changed
)

func (a Admission) String() string {
	switch a {
	case Running:
		return "running"
	case Queued:
		return "queued"
	default:
		return "rejected"
	}
}

// Params holds the world constants shared by every behavior loop.
type Params struct {
	Bounds       components.Bounds
	Center       components.Position
	Cycle        time.Duration
	WeightLoss   float64
	MaxSpeed     float64
	EatDistance  float64
	MaxAnimals   int
	PoolCapacity int
	Gains        systems.Gains
	Food         config.FoodConfig
}

// ParamsFromConfig extracts world parameters from a loaded config.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Bounds:       components.Bounds{Width: cfg.Screen.Width, Height: cfg.Screen.Height},
		Center:       components.Position{X: cfg.Derived.CenterX, Y: cfg.Derived.CenterY},
		Cycle:        cfg.Derived.Cycle,
		WeightLoss:   cfg.World.WeightLoss,
		MaxSpeed:     cfg.World.MaxSpeed,
		EatDistance:  cfg.World.EatDistance,
		MaxAnimals:   cfg.World.MaxAnimals,
		PoolCapacity: cfg.World.PoolCapacity,
		Gains: systems.Gains{
			Carnivore: cfg.Diet.CarnivoreGain,
			Herbivore: cfg.Diet.HerbivoreGain,
		},
		Food: cfg.Food,
	}
}

// AnimalSpec is a fully resolved request to add an animal.
type AnimalSpec struct {
	Species  string
	Diet     components.Diet
	Food     components.FoodType
	Sound    components.Sound
	Color    string
	Size     int
	HorSpeed int
	VerSpeed int
	Weight   float64
	X, Y     int
}

// AnimalView is the render collaborator's read-only copy of an animal.
type AnimalView struct {
	ID        uint32
	Species   string
	Color     string
	Pos       components.Position
	Size      int
	XDir      int
	Weight    float64
	Suspended bool
}

// FoodView is the render collaborator's read-only copy of a food item.
type FoodView struct {
	Kind   components.FoodKind
	Pos    components.Position
	Height float64
}

// View is one frame's worth of world state.
type View struct {
	Animals    []AnimalView
	Plant      *FoodView
	Meat       *FoodView
	Background components.Background
}

// World is the shared aggregate of animals, food and background. Every
// structural change happens under mu. Lock order is World, then Pool, then
// Animal; behavior loops never take the World lock.
type World struct {
	mu         sync.Mutex
	params     *Params
	pool       *Pool
	sound      SoundPlayer
	animals    []*Animal // insertion order is the arbitration tie-break
	plant      *Food
	meat       *Food
	background components.Background
	nextID     uint32

	// Mirrors of plant/meat presence for behavior loops.
	plantUp atomic.Bool
	meatUp  atomic.Bool

	dirty   atomic.Bool
	changes chan struct{}
}

// NewWorld creates an empty world. A nil sound player is silent.
func NewWorld(params Params, sound SoundPlayer) *World {
	if sound == nil {
		sound = silentPlayer{}
	}
	return &World{
		params:  &params,
		pool:    NewPool(params.PoolCapacity),
		sound:   sound,
		nextID:  1,
		changes: make(chan struct{}, 1),
	}
}

// Params returns the world constants.
func (w *World) Params() Params { return *w.params }

// Pool returns the scheduler running the behavior loops.
func (w *World) Pool() *Pool { return w.pool }

func (w *World) foodFor(d components.Diet) bool {
	return (w.plantUp.Load() && systems.CanEat(d, components.Vegetable)) ||
		(w.meatUp.Load() && systems.CanEat(d, components.Meat))
}

// notifyChanged wakes a waiting render collaborator without blocking.
func (w *World) notifyChanged() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// Changes delivers coalesced change notifications.
func (w *World) Changes() <-chan struct{} { return w.changes }

// TakeChanged reports whether anything moved or the world changed shape
// since the last call, resetting every flag it reads.
func (w *World) TakeChanged() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	changed := w.dirty.Swap(false)
	for _, a := range w.animals {
		if a.TakeChanged() {
			changed = true
		}
	}
	return changed
}

func (w *World) markDirtyLocked() {
	w.dirty.Store(true)
	w.notifyChanged()
}

func (w *World) setPlantLocked(f *Food) {
	w.plant = f
	w.plantUp.Store(f != nil)
}

func (w *World) setMeatLocked(f *Food) {
	w.meat = f
	w.meatUp.Store(f != nil)
}

// Add creates an animal and enrolls it with the scheduler. When the world
// already holds MaxAnimals it returns Rejected with ErrWorldFull.
func (w *World) Add(spec AnimalSpec) (*Animal, Admission, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.animals) >= w.params.MaxAnimals {
		return nil, Rejected, fmt.Errorf("adding %s: %w (%d animals)", spec.Species, ErrWorldFull, len(w.animals))
	}

	pos, ok := components.NewPosition(spec.X, spec.Y, w.params.Bounds)
	if !ok {
		pos = w.params.Center
	}
	a := newAnimal(telemetry.EntityState{
		ID:       w.nextID,
		Species:  spec.Species,
		Diet:     spec.Diet,
		FoodType: spec.Food,
		Sound:    spec.Sound,
		Color:    spec.Color,
		Size:     spec.Size,
		HorSpeed: spec.HorSpeed,
		VerSpeed: spec.VerSpeed,
		X:        pos.X,
		Y:        pos.Y,
		XDir:     1,
		YDir:     1,
		Weight:   spec.Weight,
	}, w.params, w, w.sound)
	w.nextID++

	w.animals = append(w.animals, a)
	w.markDirtyLocked()

	if w.pool.Submit(a) {
		return a, Running, nil
	}
	return a, Queued, nil
}

// Animal returns the live animal with the given id.
func (w *World) Animal(id uint32) (*Animal, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	a := w.findLocked(id)
	return a, a != nil
}

func (w *World) findLocked(id uint32) *Animal {
	for _, a := range w.animals {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Len returns the number of live animals.
func (w *World) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.animals)
}

// SuspendAll pauses every animal.
func (w *World) SuspendAll() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, a := range w.animals {
		a.SetSuspended()
	}
	w.markDirtyLocked()
	return len(w.animals)
}

// ResumeAll wakes every suspended animal.
func (w *World) ResumeAll() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, a := range w.animals {
		a.SetResumed()
	}
	w.markDirtyLocked()
	return len(w.animals)
}

// Clear interrupts every animal and removes all animals and food.
func (w *World) Clear() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := len(w.animals)
	w.resetLocked()
	return n
}

func (w *World) resetLocked() {
	w.pool.Restart()
	for i := range w.animals {
		w.animals[i] = nil
	}
	w.animals = w.animals[:0]
	w.setPlantLocked(nil)
	w.setMeatLocked(nil)
	w.markDirtyLocked()
}

// SetFood places a food item of the given kind at the world center,
// replacing whatever occupied that kind's slot.
func (w *World) SetFood(kind components.FoodKind) *Food {
	w.mu.Lock()
	defer w.mu.Unlock()

	fc := w.params.Food
	if kind.FoodType() == components.Meat {
		f := NewFood(kind, w.params.Center, fc.MeatWeight, fc.MeatHeight)
		w.setMeatLocked(f)
		w.markDirtyLocked()
		return f
	}
	f := NewFood(kind, w.params.Center, fc.PlantWeight, fc.PlantHeight)
	w.setPlantLocked(f)
	w.markDirtyLocked()
	return f
}

// Plant returns the active plant, if any.
func (w *World) Plant() *Food {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.plant
}

// Meat returns the active meat, if any.
func (w *World) Meat() *Food {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.meat
}

// Recolor changes an animal's display color.
func (w *World) Recolor(id uint32, color string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	a := w.findLocked(id)
	if a == nil {
		return fmt.Errorf("recolor %d: %w", id, ErrUnknownAnimal)
	}
	a.setColor(color)
	w.markDirtyLocked()
	return nil
}

// SetBackground replaces the background setting.
func (w *World) SetBackground(bg components.Background) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.background = bg
	w.markDirtyLocked()
}

func (w *World) Background() components.Background {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.background
}

// Info returns one row per live animal in insertion order.
func (w *World) Info() []telemetry.InfoRow {
	w.mu.Lock()
	defer w.mu.Unlock()

	rows := make([]telemetry.InfoRow, len(w.animals))
	for i, a := range w.animals {
		s := a.State()
		rows[i] = telemetry.InfoRow{
			ID:       s.ID,
			Name:     s.Species,
			Color:    s.Color,
			Weight:   s.Weight,
			HorSpeed: s.HorSpeed,
			VerSpeed: s.VerSpeed,
			EatCount: s.EatCount,
		}
	}
	return rows
}

// View copies the state the render collaborator needs for one frame.
func (w *World) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	v := View{
		Animals:    make([]AnimalView, len(w.animals)),
		Background: w.background,
	}
	for i, a := range w.animals {
		s := a.State()
		v.Animals[i] = AnimalView{
			ID:        s.ID,
			Species:   s.Species,
			Color:     s.Color,
			Pos:       components.Position{X: s.X, Y: s.Y},
			Size:      s.Size,
			XDir:      s.XDir,
			Weight:    s.Weight,
			Suspended: s.Suspended,
		}
	}
	if w.plant != nil {
		v.Plant = &FoodView{Kind: w.plant.Kind, Pos: w.plant.Pos, Height: w.plant.Height()}
	}
	if w.meat != nil {
		v.Meat = &FoodView{Kind: w.meat.Kind, Pos: w.meat.Pos, Height: w.meat.Height()}
	}
	return v
}

// Capture copies the whole world into a snapshot.
func (w *World) Capture() *telemetry.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := &telemetry.Snapshot{
		Version:    telemetry.SnapshotVersion,
		CapturedAt: time.Now(),
		Background: w.background,
		Entities:   make([]telemetry.EntityState, len(w.animals)),
		Plant:      w.plant.state(),
		Meat:       w.meat.state(),
	}
	for i, a := range w.animals {
		s.Entities[i] = a.State()
	}
	return s
}

// Replace discards the live world and rebuilds it from a snapshot. Every
// restored animal is a fresh actor enrolled with the scheduler.
func (w *World) Replace(s *telemetry.Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.resetLocked()
	w.background = s.Background
	for _, es := range s.Entities {
		a := newAnimal(es, w.params, w, w.sound)
		if es.ID >= w.nextID {
			w.nextID = es.ID + 1
		}
		w.animals = append(w.animals, a)
		w.pool.Submit(a)
	}
	w.setPlantLocked(foodFromState(s.Plant))
	w.setMeatLocked(foodFromState(s.Meat))
}

// Shutdown interrupts every loop and waits for them to exit.
func (w *World) Shutdown() {
	w.Clear()
	w.pool.Wait()
}
