package telemetry

import "log/slog"

// Collector accumulates lifecycle events within time windows and produces
// WindowStats on window boundaries.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dtMs                float64

	windowStartTick int64

	spawns  int
	culls   int
	freezes int
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
// dtMs: milliseconds per tick (used for tick-to-time conversion).
func NewCollector(windowDurationSec, dtMs float64) *Collector {
	ticksPerWindow := int64(windowDurationSec * 1000 / dtMs)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dtMs:                dtMs,
	}
}

// RecordSpawn records a creature spawn.
func (c *Collector) RecordSpawn() {
	c.spawns++
}

// RecordCull records a creature removal.
func (c *Collector) RecordCull() {
	c.culls++
}

// RecordFreeze records an old-age freeze.
func (c *Collector) RecordFreeze() {
	c.freezes++
}

// ShouldFlush reports whether the current window has ended at the given tick.
func (c *Collector) ShouldFlush(tick int64) bool {
	return tick-c.windowStartTick >= c.windowDurationTicks
}

// Flush closes the current window and returns its stats. The live distance
// sample is summarized at flush time; event counters reset for the next
// window.
func (c *Collector) Flush(tick int64, live, frozen, generation int, distances []float64) WindowStats {
	mean, p10, p50, p90 := ComputeDistanceStats(distances)
	best := 0.0
	for _, d := range distances {
		if d > best {
			best = d
		}
	}

	stats := WindowStats{
		WindowEndTick: tick,
		SimTimeSec:    float64(tick) * c.dtMs / 1000,
		Live:          live,
		Frozen:        frozen,
		Generation:    generation,
		Spawns:        c.spawns,
		Culls:         c.culls,
		Freezes:       c.freezes,
		DistanceBest:  best,
		DistanceMean:  mean,
		DistanceP10:   p10,
		DistanceP50:   p50,
		DistanceP90:   p90,
	}

	c.spawns = 0
	c.culls = 0
	c.freezes = 0
	c.windowStartTick = tick

	return stats
}

// Log writes the window stats as one structured log record.
func (s WindowStats) Log() {
	slog.Info("window_stats",
		"tick", s.WindowEndTick,
		"sim_time_sec", s.SimTimeSec,
		"live", s.Live,
		"frozen", s.Frozen,
		"generation", s.Generation,
		"spawns", s.Spawns,
		"culls", s.Culls,
		"freezes", s.Freezes,
		"distance_best", s.DistanceBest,
		"distance_mean", s.DistanceMean,
		"distance_p50", s.DistanceP50,
	)
}
