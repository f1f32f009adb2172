// Package population implements the spawn/cull/freeze scheduler that owns
// the live creature set.
package population

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"sync"

	"github.com/pthm-cable/strider/config"
	"github.com/pthm-cable/strider/creature"
	"github.com/pthm-cable/strider/telemetry"
)

// Controller owns the live creature set, the simulated clock, and generation
// counting. All mutation of the live set, leaderboard, and histogram happens
// under one mutex, so the tick loop can never observe a half-removed
// creature even when the spawn timer fires on another goroutine.
type Controller struct {
	mu sync.Mutex

	engine    creature.Engine
	generator *creature.Generator

	capacity        int
	lifetimeMs      float64
	spawnIntervalMs float64
	protectedTopN   int
	generationSize  int
	leaderboardSize int
	dtMs            float64
	contactY        float64 // ground-contact line passed to muscle updates

	live []*creature.Creature // insertion order, which is also spawn order

	nowMs          float64
	tick           int64
	sinceTrickleMs float64

	generation         int
	spawnsInGeneration int

	feed        *telemetry.Feed
	leaderboard *telemetry.Leaderboard
	histogram   *telemetry.DistanceHistogram
	collector   *telemetry.Collector
	perf        *telemetry.PerfCollector
	output      *telemetry.OutputManager

	stopped bool
}

// New creates a controller. The output manager may be nil (output disabled).
func New(cfg *config.Config, engine creature.Engine, rng *rand.Rand, output *telemetry.OutputManager) *Controller {
	leaderboard := telemetry.NewLeaderboard(cfg.Population.LeaderboardSize)
	histogram := telemetry.NewDistanceHistogram(cfg.Telemetry.HistogramBucket)

	return &Controller{
		engine:          engine,
		generator:       creature.NewGenerator(cfg, engine, rng),
		capacity:        cfg.Population.Capacity,
		lifetimeMs:      cfg.Population.LifetimeMs,
		spawnIntervalMs: cfg.Population.SpawnIntervalMs,
		protectedTopN:   cfg.Population.ProtectedTopN,
		generationSize:  cfg.Population.GenerationSize,
		leaderboardSize: cfg.Population.LeaderboardSize,
		dtMs:            cfg.Physics.DTMs,
		contactY:        cfg.World.GroundY - cfg.Creature.BodyRadius,
		feed:            telemetry.NewFeed(leaderboard, histogram),
		leaderboard:     leaderboard,
		histogram:       histogram,
		collector:       telemetry.NewCollector(cfg.Telemetry.StatsWindowSec, cfg.Physics.DTMs),
		perf:            telemetry.NewPerfCollector(int(cfg.Telemetry.StatsWindowSec * 1000 / cfg.Physics.DTMs)),
		output:          output,
	}
}

// trickleLocked runs one spawn step: cull at most one creature when at
// capacity, then spawn exactly one. Callers hold the mutex.
func (ctl *Controller) trickleLocked() {
	if ctl.stopped {
		return
	}

	protected := ctl.topNLocked(ctl.protectedTopN)

	if len(ctl.live) >= ctl.capacity {
		if victim := ctl.oldestUnprotectedLocked(protected); victim != nil {
			ctl.cullLocked(victim.ID())
		}
	}

	spawned := ctl.generator.Generate(ctl.nowMs)
	ctl.live = append(ctl.live, spawned)
	ctl.collector.RecordSpawn()

	ctl.spawnsInGeneration++
	if ctl.spawnsInGeneration >= ctl.generationSize {
		ctl.generation++
		ctl.spawnsInGeneration = 0
	}
}

// tickLocked advances every live creature by the fixed nominal delta, frozen
// creatures excepted, then publishes one distance observation per creature.
func (ctl *Controller) tickLocked() {
	for _, c := range ctl.live {
		if ctl.nowMs-c.BornAt() > ctl.lifetimeMs {
			if !c.Frozen() {
				c.Freeze(ctl.engine)
				ctl.collector.RecordFreeze()
			}
			continue
		}
		c.Update(ctl.dtMs, ctl.contactY, ctl.engine)
	}

	for _, c := range ctl.live {
		ctl.feed.Publish(telemetry.Observation{
			ID:       uint64(c.ID()),
			Distance: c.MaxX(),
			Tick:     ctl.tick,
		})
	}
}

// topNLocked returns the ids of the current top n live creatures by MaxX,
// descending, ties broken by spawn order.
func (ctl *Controller) topNLocked(n int) map[creature.ID]bool {
	ranked := make([]*creature.Creature, len(ctl.live))
	copy(ranked, ctl.live)
	stableSortByMaxX(ranked)

	if n > len(ranked) {
		n = len(ranked)
	}
	top := make(map[creature.ID]bool, n)
	for _, c := range ranked[:n] {
		top[c.ID()] = true
	}
	return top
}

// oldestUnprotectedLocked returns the live creature with the smallest BornAt
// that is not protected, or nil when every live creature is protected.
func (ctl *Controller) oldestUnprotectedLocked(protected map[creature.ID]bool) *creature.Creature {
	var oldest *creature.Creature
	for _, c := range ctl.live {
		if protected[c.ID()] {
			continue
		}
		if oldest == nil || c.BornAt() < oldest.BornAt() {
			oldest = c
		}
	}
	return oldest
}

// cullLocked removes a creature from the engine and the live set. Culling an
// id that is not live is a programmer error and panics.
func (ctl *Controller) cullLocked(id creature.ID) {
	for i, c := range ctl.live {
		if c.ID() == id {
			c.RemoveFromWorld(ctl.engine)
			ctl.live = append(ctl.live[:i], ctl.live[i+1:]...)
			ctl.collector.RecordCull()
			return
		}
	}
	panic(fmt.Sprintf("population: cull of unknown creature %d", id))
}

// flushWindowLocked emits window stats when the current window has ended.
func (ctl *Controller) flushWindowLocked() {
	if !ctl.collector.ShouldFlush(ctl.tick) {
		return
	}

	distances := make([]float64, 0, len(ctl.live))
	frozen := 0
	for _, c := range ctl.live {
		distances = append(distances, c.MaxX())
		if c.Frozen() {
			frozen++
		}
	}

	stats := ctl.collector.Flush(ctl.tick, len(ctl.live), frozen, ctl.generation, distances)
	stats.Log()
	ctl.perf.Stats().Log()
	if err := ctl.output.WriteWindow(stats); err != nil {
		// Output is best-effort; the simulation itself never depends on it.
		slog.Warn("window output failed", "error", err)
	}
}

// stableSortByMaxX sorts descending by MaxX, preserving relative order of
// equal distances.
func stableSortByMaxX(creatures []*creature.Creature) {
	sort.SliceStable(creatures, func(i, j int) bool {
		return creatures[i].MaxX() > creatures[j].MaxX()
	})
}
