package telemetry

import (
	"log/slog"
	"sync"
)

// LifetimeStats tracks one animal from admission until it is eaten or removed.
type LifetimeStats struct {
	ID           uint32
	Species      string
	AddedTick    int64
	Meals        int
	Kills        int
	WeightGained float64
}

// LogValue implements slog.LogValuer for structured logging.
func (s *LifetimeStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("id", s.ID),
		slog.String("species", s.Species),
		slog.Int64("added_tick", s.AddedTick),
		slog.Int("meals", s.Meals),
		slog.Int("kills", s.Kills),
		slog.Float64("weight_gained", s.WeightGained),
	)
}

// LifetimeTracker manages per-animal lifetime statistics.
type LifetimeTracker struct {
	mu    sync.Mutex
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register starts tracking an animal.
func (lt *LifetimeTracker) Register(id uint32, species string, tick int64) {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	lt.stats[id] = &LifetimeStats{ID: id, Species: species, AddedTick: tick}
}

// Get returns a copy of the stats for an animal.
func (lt *LifetimeTracker) Get(id uint32) (LifetimeStats, bool) {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	s, ok := lt.stats[id]
	if !ok {
		return LifetimeStats{}, false
	}
	return *s, true
}

// Remove stops tracking an animal and returns its final stats, or nil.
func (lt *LifetimeTracker) Remove(id uint32) *LifetimeStats {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	s := lt.stats[id]
	delete(lt.stats, id)
	return s
}

// Reset drops every tracked animal.
func (lt *LifetimeTracker) Reset() {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	clear(lt.stats)
}

// RecordMeal counts a plant or meat meal.
func (lt *LifetimeTracker) RecordMeal(id uint32, gained float64) {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	if s := lt.stats[id]; s != nil {
		s.Meals++
		s.WeightGained += gained
	}
}

// RecordKill counts a successful predation.
func (lt *LifetimeTracker) RecordKill(id uint32, gained float64) {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	if s := lt.stats[id]; s != nil {
		s.Meals++
		s.Kills++
		s.WeightGained += gained
	}
}

// Count returns the number of tracked animals.
func (lt *LifetimeTracker) Count() int {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	return len(lt.stats)
}
