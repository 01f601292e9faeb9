package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Population int `csv:"population"`
	Suspended  int `csv:"suspended"`

	// Commands during window
	Adds     int `csv:"adds"`
	Rejects  int `csv:"rejects"`
	Clears   int `csv:"clears"`
	Saves    int `csv:"saves"`
	Restores int `csv:"restores"`

	// Feeding during window
	PlantEats    int     `csv:"plant_eats"`
	MeatEats     int     `csv:"meat_eats"`
	Kills        int     `csv:"kills"`
	WeightGained float64 `csv:"weight_gained"`

	// Weight distribution (sampled at window end)
	WeightMean float64 `csv:"weight_mean"`
	WeightStd  float64 `csv:"weight_std"`
	WeightP50  float64 `csv:"weight_p50"`
	WeightMax  float64 `csv:"weight_max"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeWeightStats calculates mean, sample standard deviation, median and
// maximum of a set of weights.
func ComputeWeightStats(values []float64) (mean, std, p50, max float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}
	if n == 1 {
		return values[0], 0, values[0], values[0]
	}

	mean, std = stat.MeanStdDev(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, std, Percentile(sorted, 0.5), sorted[n-1]
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("population", s.Population),
		slog.Int("suspended", s.Suspended),
		slog.Int("adds", s.Adds),
		slog.Int("rejects", s.Rejects),
		slog.Int("clears", s.Clears),
		slog.Int("saves", s.Saves),
		slog.Int("restores", s.Restores),
		slog.Int("plant_eats", s.PlantEats),
		slog.Int("meat_eats", s.MeatEats),
		slog.Int("kills", s.Kills),
		slog.Float64("weight_gained", s.WeightGained),
		slog.Float64("weight_mean", s.WeightMean),
		slog.Float64("weight_std", s.WeightStd),
		slog.Float64("weight_p50", s.WeightP50),
		slog.Float64("weight_max", s.WeightMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"population", s.Population,
		"suspended", s.Suspended,
		"plant_eats", s.PlantEats,
		"meat_eats", s.MeatEats,
		"kills", s.Kills,
		"weight_mean", s.WeightMean,
		"weight_std", s.WeightStd,
	)
}
