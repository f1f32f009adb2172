package population

import (
	"context"
	"log/slog"
	"time"

	"github.com/pthm-cable/strider/telemetry"
)

// Step advances the simulation by one nominal frame of simulated time:
// creature updates, one physics step, and - on its own cadence - the spawn
// trickle. Deterministic for a fixed seed; wall-clock time never enters.
func (ctl *Controller) Step() {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	if ctl.stopped {
		return
	}

	ctl.nowMs += ctl.dtMs
	ctl.tick++

	ctl.perf.StartStep()
	ctl.perf.StartPhase(telemetry.PhaseSpawn)
	ctl.sinceTrickleMs += ctl.dtMs
	for ctl.sinceTrickleMs >= ctl.spawnIntervalMs {
		ctl.sinceTrickleMs -= ctl.spawnIntervalMs
		ctl.trickleLocked()
	}

	ctl.perf.StartPhase(telemetry.PhaseLifecycle)
	ctl.tickLocked()
	ctl.perf.StartPhase(telemetry.PhasePhysics)
	ctl.engine.Advance(ctl.dtMs)
	ctl.perf.StartPhase(telemetry.PhaseTelemetry)
	ctl.flushWindowLocked()
	ctl.perf.EndStep()
}

// Run drives the simulation in real time: one ticker for frames, one for
// the spawn trickle. Both share the controller mutex, so a trickle can
// never interleave with a frame mid-mutation. Returns when ctx is
// cancelled, after releasing all engine handles.
func (ctl *Controller) Run(ctx context.Context) {
	frame := time.NewTicker(time.Duration(ctl.dtMs * float64(time.Millisecond)))
	defer frame.Stop()
	spawn := time.NewTicker(time.Duration(ctl.spawnIntervalMs * float64(time.Millisecond)))
	defer spawn.Stop()

	for {
		select {
		case <-ctx.Done():
			ctl.Stop()
			return
		case <-spawn.C:
			ctl.mu.Lock()
			ctl.trickleLocked()
			ctl.mu.Unlock()
		case <-frame.C:
			ctl.mu.Lock()
			if !ctl.stopped {
				ctl.nowMs += ctl.dtMs
				ctl.tick++
				ctl.perf.StartStep()
				ctl.perf.StartPhase(telemetry.PhaseLifecycle)
				ctl.tickLocked()
				ctl.perf.StartPhase(telemetry.PhasePhysics)
				ctl.engine.Advance(ctl.dtMs)
				ctl.perf.StartPhase(telemetry.PhaseTelemetry)
				ctl.flushWindowLocked()
				ctl.perf.EndStep()
			}
			ctl.mu.Unlock()
		}
	}
}

// Stop tears the population down: every live creature is released from the
// engine, the final leaderboard is dumped, and output files close. After
// Stop returns no partial state is observable; further Step calls are no-ops.
func (ctl *Controller) Stop() {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	if ctl.stopped {
		return
	}
	ctl.stopped = true

	for _, c := range ctl.live {
		c.RemoveFromWorld(ctl.engine)
	}
	ctl.live = nil

	if err := ctl.output.WriteLeaderboard(ctl.leaderboard); err != nil {
		slog.Warn("leaderboard output failed", "error", err)
	}
	if err := ctl.output.Close(); err != nil {
		slog.Warn("closing output failed", "error", err)
	}
}
