package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowEndTick int64   `csv:"window_end"`
	SimTimeSec    float64 `csv:"sim_time"`

	// Population at window end
	Live       int `csv:"live"`
	Frozen     int `csv:"frozen"`
	Generation int `csv:"generation"`

	// Events during window
	Spawns  int `csv:"spawns"`
	Culls   int `csv:"culls"`
	Freezes int `csv:"freezes"`

	// Live distance distribution (sampled at window end)
	DistanceBest float64 `csv:"distance_best"`
	DistanceMean float64 `csv:"distance_mean"`
	DistanceP10  float64 `csv:"distance_p10"`
	DistanceP50  float64 `csv:"distance_p50"`
	DistanceP90  float64 `csv:"distance_p90"`
}

// ComputeDistanceStats summarizes a distance sample: mean and the 10th,
// 50th and 90th percentiles. Returns all zeros for an empty sample.
func ComputeDistanceStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}
