package telemetry

import (
	"sync"
	"time"
)

// Collector accumulates events within time windows and produces WindowStats.
// It is safe for use from the command and arbitration goroutines at once.
type Collector struct {
	mu sync.Mutex

	windowDurationTicks int64
	tick                time.Duration

	// Current window tracking
	windowStartTick int64

	// Event counters for current window
	adds      int
	rejects   int
	clears    int
	saves     int
	restores  int
	plantEats int
	meatEats  int
	kills     int
	gained    float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in seconds
// tick: wall time per arbitration tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, tick time.Duration) *Collector {
	if tick <= 0 {
		tick = time.Millisecond
	}
	ticksPerWindow := int64(windowDurationSec / tick.Seconds())
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationTicks: ticksPerWindow,
		tick:                tick,
	}
}

// Record counts an event in the current window.
func (c *Collector) Record(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch e.Type {
	case EventAdd:
		c.adds++
	case EventReject:
		c.rejects++
	case EventClear:
		c.clears++
	case EventSave:
		c.saves++
	case EventRestore:
		c.restores++
	case EventEatPlant:
		c.plantEats++
		c.gained += e.Amount
	case EventEatMeat:
		c.meatEats++
		c.gained += e.Amount
	case EventPrey:
		c.kills++
		c.gained += e.Amount
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// weights are the live animal weights at window end.
func (c *Collector) Flush(currentTick int64, population, suspended int, weights []float64) WindowStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	mean, std, p50, max := ComputeWeightStats(weights)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.tick.Seconds(),

		Population: population,
		Suspended:  suspended,

		Adds:     c.adds,
		Rejects:  c.rejects,
		Clears:   c.clears,
		Saves:    c.saves,
		Restores: c.restores,

		PlantEats:    c.plantEats,
		MeatEats:     c.meatEats,
		Kills:        c.kills,
		WeightGained: c.gained,

		WeightMean: mean,
		WeightStd:  std,
		WeightP50:  p50,
		WeightMax:  max,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.adds = 0
	c.rejects = 0
	c.clears = 0
	c.saves = 0
	c.restores = 0
	c.plantEats = 0
	c.meatEats = 0
	c.kills = 0
	c.gained = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
