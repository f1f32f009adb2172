package population

import "github.com/pthm-cable/strider/telemetry"

// The query surface is read-only and safe to call from any goroutine; the
// UI layer is expected to poll it on its own cadence.

// Generation returns the current generation counter. Purely observational:
// it drives no selection.
func (ctl *Controller) Generation() int {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.generation
}

// LiveCount returns the number of live creatures, frozen included.
func (ctl *Controller) LiveCount() int {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return len(ctl.live)
}

// SpawnsInGeneration returns the rolling spawn counter within the current
// generation.
func (ctl *Controller) SpawnsInGeneration() int {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.spawnsInGeneration
}

// BestLiveDistance returns the highest MaxX among live creatures, or 0 when
// nothing is live.
func (ctl *Controller) BestLiveDistance() float64 {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	best := 0.0
	for _, c := range ctl.live {
		if c.MaxX() > best {
			best = c.MaxX()
		}
	}
	return best
}

// MillisUntilNextExpiry returns the time until the next non-top-3 live
// creature reaches its lifetime. 0 when nothing is live at all; the full
// lifetime when no expiring candidate exists.
func (ctl *Controller) MillisUntilNextExpiry() float64 {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()

	if len(ctl.live) == 0 {
		return 0
	}

	top := ctl.topNLocked(ctl.leaderboardSize)
	remaining := ctl.lifetimeMs
	found := false
	for _, c := range ctl.live {
		if c.Frozen() || top[c.ID()] {
			continue
		}
		left := ctl.lifetimeMs - (ctl.nowMs - c.BornAt())
		if left < 0 {
			left = 0
		}
		if !found || left < remaining {
			remaining = left
			found = true
		}
	}
	return remaining
}

// TopRanks returns the persistent leaderboard's current ranking.
func (ctl *Controller) TopRanks() []telemetry.Entry {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.leaderboard.Top()
}

// Leaderboard exposes the persistent leaderboard.
func (ctl *Controller) Leaderboard() *telemetry.Leaderboard {
	return ctl.leaderboard
}

// Histogram exposes the distance histogram.
func (ctl *Controller) Histogram() *telemetry.DistanceHistogram {
	return ctl.histogram
}

// Tick returns the current simulation tick.
func (ctl *Controller) Tick() int64 {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.tick
}

// Now returns the simulated clock in milliseconds.
func (ctl *Controller) Now() float64 {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.nowMs
}
