package telemetry

import "log/slog"

// InfoRow is one line of the animal information table.
type InfoRow struct {
	ID       uint32  `csv:"id"`
	Name     string  `csv:"name"`
	Color    string  `csv:"color"`
	Weight   float64 `csv:"weight"`
	HorSpeed int     `csv:"hor_speed"`
	VerSpeed int     `csv:"ver_speed"`
	EatCount int     `csv:"eat_count"`
}

// InfoTable lists every live animal plus the total number of meals.
type InfoTable struct {
	Rows      []InfoRow
	TotalEats int
}

// NewInfoTable builds a table and computes its total.
func NewInfoTable(rows []InfoRow) InfoTable {
	t := InfoTable{Rows: rows}
	for _, r := range rows {
		t.TotalEats += r.EatCount
	}
	return t
}

// Weights returns the weight column.
func (t InfoTable) Weights() []float64 {
	w := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		w[i] = r.Weight
	}
	return w
}

// LogValue implements slog.LogValuer for structured logging.
func (t InfoTable) LogValue() slog.Value {
	mean, std, _, _ := ComputeWeightStats(t.Weights())
	return slog.GroupValue(
		slog.Int("animals", len(t.Rows)),
		slog.Int("total_eats", t.TotalEats),
		slog.Float64("weight_mean", mean),
		slog.Float64("weight_std", std),
	)
}
