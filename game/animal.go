package game

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/menagerie/components"
	"github.com/pthm-cable/menagerie/systems"
	"github.com/pthm-cable/menagerie/telemetry"
)

// Lifecycle states of an animal's behavior loop.
const (
	statePending int32 = iota // created, loop not started
	stateAlive                // loop running
	stateDead                 // interrupted; loop exits at the next cycle boundary
)

// habitat is what a behavior loop needs from the world it lives in.
type habitat interface {
	foodFor(d components.Diet) bool
	notifyChanged()
}

// SoundPlayer receives the make-sound side effect of a meal.
type SoundPlayer interface {
	Play(s components.Sound)
}

var (
	_ components.Eater  = (*Animal)(nil)
	_ components.Edible = (*Animal)(nil)
	_ components.Edible = (*Food)(nil)
)

type silentPlayer struct{}

func (silentPlayer) Play(components.Sound) {}

// Animal is an autonomous actor. Identity and speeds are fixed at creation;
// kinematic state is guarded by mu and written by the animal's own loop,
// while eating, suspension and recoloring come from the world.
type Animal struct {
	ID       uint32
	Species  string
	Diet     components.Diet
	Food     components.FoodType // what the animal is when eaten
	Sound    components.Sound
	Size     int
	HorSpeed int
	VerSpeed int

	mu        sync.Mutex
	wake      *sync.Cond
	color     string
	pos       components.Position
	xDir      int
	yDir      int
	weight    float64
	eatCount  int
	suspended bool

	state    atomic.Int32
	changed  atomic.Bool
	quit     chan struct{}
	stopped  chan struct{}
	once     sync.Once
	stopOnce sync.Once

	params *Params
	home   habitat
	sound  SoundPlayer
}

func newAnimal(s telemetry.EntityState, params *Params, home habitat, sound SoundPlayer) *Animal {
	a := &Animal{
		ID:        s.ID,
		Species:   s.Species,
		Diet:      s.Diet,
		Food:      s.FoodType,
		Sound:     s.Sound,
		Size:      s.Size,
		HorSpeed:  s.HorSpeed,
		VerSpeed:  s.VerSpeed,
		color:     s.Color,
		pos:       components.Position{X: s.X, Y: s.Y},
		xDir:      unitDir(s.XDir),
		yDir:      unitDir(s.YDir),
		weight:    s.Weight,
		eatCount:  s.EatCount,
		suspended: s.Suspended,
		quit:      make(chan struct{}),
		stopped:   make(chan struct{}),
		params:    params,
		home:      home,
		sound:     sound,
	}
	a.wake = sync.NewCond(&a.mu)
	if a.weight <= 0 {
		a.weight = 1
	}
	return a
}

func unitDir(d int) int {
	if d < 0 {
		return -1
	}
	return 1
}

// FoodType implements components.Edible.
func (a *Animal) FoodType() components.FoodType { return a.Food }

// run is the behavior loop. It returns once the animal is interrupted.
func (a *Animal) run() {
	if !a.state.CompareAndSwap(statePending, stateAlive) {
		return
	}
	slog.Debug("animal started", "id", a.ID, "species", a.Species)
	defer slog.Debug("animal stopped", "id", a.ID, "species", a.Species)

	timer := time.NewTimer(a.params.Cycle)
	defer timer.Stop()

	for {
		select {
		case <-a.quit:
			return
		case <-timer.C:
		}
		if a.Dead() {
			return
		}
		if !a.cycle() {
			return
		}
		timer.Reset(a.params.Cycle)
	}
}

// cycle blocks while suspended, then moves once. It reports false when the
// animal was interrupted while waiting.
func (a *Animal) cycle() bool {
	a.mu.Lock()
	for a.suspended && !a.Dead() {
		slog.Debug("animal waiting", "id", a.ID)
		a.wake.Wait()
		if a.suspended && !a.Dead() {
			slog.Debug("spurious wake", "id", a.ID)
		}
	}
	if a.Dead() {
		a.mu.Unlock()
		return false
	}

	var next components.Position
	xDir, yDir := a.xDir, a.yDir
	if a.home.foodFor(a.Diet) {
		next, xDir = systems.Steer(a.pos, a.params.Center, a.HorSpeed, a.VerSpeed, a.params.MaxSpeed)
	} else {
		next, xDir, yDir = systems.Bounce(a.pos, a.HorSpeed, a.VerSpeed, a.xDir, a.yDir, a.params.Bounds, a.Size)
	}
	a.xDir, a.yDir = xDir, yDir
	moved := a.moveLocked(next)
	a.mu.Unlock()

	if moved {
		a.changed.Store(true)
		a.home.notifyChanged()
	}
	return true
}

// moveLocked applies the travel cost and the new position together, or
// neither of them.
func (a *Animal) moveLocked(next components.Position) bool {
	d := a.pos.Distance(next)
	if d == 0 {
		return false
	}
	w, ok := systems.WeightAfterMove(a.weight, d, a.params.WeightLoss)
	if !ok {
		return false
	}
	if !a.pos.Set(next.X, next.Y, a.params.Bounds) {
		return false
	}
	a.weight = w
	return true
}

// Eat consumes food if the animal's diet allows it, returning the weight
// gained. A refused meal changes nothing.
func (a *Animal) Eat(food components.Edible) (float64, bool) {
	a.mu.Lock()
	gain := a.params.Gains.Gain(a.Diet, a.weight, food.FoodType())
	if gain <= 0 {
		a.mu.Unlock()
		return 0, false
	}
	a.weight += gain
	a.eatCount++
	a.mu.Unlock()

	a.sound.Play(a.Sound)
	return gain, true
}

// SetSuspended pauses the behavior loop at its next cycle boundary.
func (a *Animal) SetSuspended() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.suspended = true
}

// SetResumed wakes a suspended loop. Resuming a running animal is a no-op.
func (a *Animal) SetResumed() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.suspended {
		return
	}
	a.suspended = false
	a.wake.Signal()
}

// Interrupt marks the animal dead. The loop observes it at its next cycle
// boundary, or immediately if it is asleep or suspended.
func (a *Animal) Interrupt() {
	a.state.Store(stateDead)
	a.once.Do(func() { close(a.quit) })
	a.mu.Lock()
	a.wake.Broadcast()
	a.mu.Unlock()
}

// Stopped is closed once the animal is out of the pool: its loop has
// returned and freed its slot, or it was dropped from the queue.
func (a *Animal) Stopped() <-chan struct{} { return a.stopped }

func (a *Animal) release() { a.stopOnce.Do(func() { close(a.stopped) }) }

// Dead reports whether the animal has been interrupted.
func (a *Animal) Dead() bool { return a.state.Load() == stateDead }

// TakeChanged reports whether the animal moved since the last call.
func (a *Animal) TakeChanged() bool { return a.changed.Swap(false) }

func (a *Animal) Suspended() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.suspended
}

func (a *Animal) Position() components.Position {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pos
}

// SetPosition moves the animal directly. Out-of-bounds positions are rejected.
func (a *Animal) SetPosition(x, y int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pos.Set(x, y, a.params.Bounds)
}

func (a *Animal) Weight() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.weight
}

// SetWeight rejects non-positive weights and leaves the animal unchanged.
func (a *Animal) SetWeight(w float64) bool {
	if w <= 0 {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.weight = w
	return true
}

func (a *Animal) EatCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.eatCount
}

func (a *Animal) Color() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.color
}

func (a *Animal) setColor(c string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.color = c
}

func (a *Animal) body() systems.Body {
	a.mu.Lock()
	defer a.mu.Unlock()
	return systems.Body{
		Diet:      a.Diet,
		FoodType:  a.Food,
		Weight:    a.weight,
		Size:      a.Size,
		Pos:       a.pos,
		Suspended: a.suspended,
	}
}

// State returns a value copy of everything needed to rebuild the animal.
func (a *Animal) State() telemetry.EntityState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return telemetry.EntityState{
		ID:        a.ID,
		Species:   a.Species,
		Diet:      a.Diet,
		FoodType:  a.Food,
		Sound:     a.Sound,
		Color:     a.color,
		Size:      a.Size,
		HorSpeed:  a.HorSpeed,
		VerSpeed:  a.VerSpeed,
		X:         a.pos.X,
		Y:         a.pos.Y,
		XDir:      a.xDir,
		YDir:      a.yDir,
		Weight:    a.weight,
		EatCount:  a.eatCount,
		Suspended: a.suspended,
	}
}
