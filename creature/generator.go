package creature

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/strider/components"
	"github.com/pthm-cable/strider/config"
)

// Generator builds random creature topologies and materializes them into the
// physics engine. All parameters are captured at construction; generation
// itself never consults global state.
type Generator struct {
	engine Engine
	rng    *rand.Rand

	minBodies, maxBodies   int
	minRadius, maxRadius   float64
	jitter                 float64
	bodyRadius             float64
	category               uint32
	spawnX, spawnY         float64
	ring, crossLink        config.MuscleRangeConfig
}

// NewGenerator creates a generator bound to an engine and RNG.
func NewGenerator(cfg *config.Config, engine Engine, rng *rand.Rand) *Generator {
	return &Generator{
		engine:     engine,
		rng:        rng,
		minBodies:  cfg.Creature.MinBodies,
		maxBodies:  cfg.Creature.MaxBodies,
		minRadius:  cfg.Creature.MinRingRadius,
		maxRadius:  cfg.Creature.MaxRingRadius,
		jitter:     cfg.Creature.PlacementJitter,
		bodyRadius: cfg.Creature.BodyRadius,
		category:   cfg.Physics.CollisionCategory,
		spawnX:     cfg.World.SpawnX,
		spawnY:     cfg.World.SpawnY,
		ring:       cfg.Muscle.Ring,
		crossLink:  cfg.Muscle.CrossLink,
	}
}

// Generate builds one creature: bodies on a jittered ring, ring muscles,
// random cross-links, then connectivity repair so every body ends with
// degree >= 2 when an eligible partner exists.
func (g *Generator) Generate(nowMs float64) *Creature {
	n := g.minBodies + g.rng.Intn(g.maxBodies-g.minBodies+1)
	ringRadius := g.randRange(g.minRadius, g.maxRadius)

	c := &Creature{
		id:         NewID(nowMs, g.rng),
		bornAt:     nowMs,
		bodyRadius: g.bodyRadius,
		category:   g.category,
	}

	// Bodies evenly around a circle, each perturbed independently.
	c.bodies = make([]components.BodyID, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		x := g.spawnX + math.Cos(angle)*ringRadius + g.randRange(-g.jitter, g.jitter)
		y := g.spawnY + math.Sin(angle)*ringRadius + g.randRange(-g.jitter, g.jitter)
		c.bodies[i] = g.engine.AddBody(x, y, g.bodyRadius, g.category)
	}

	degree := make([]int, n)

	// Ring muscles: each body to its cyclic successor.
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		g.link(c, degree, i, j, g.ring)
	}

	// Cross-links between independently-chosen bodies. Self-links are
	// skipped, not retried.
	extra := n/2 + g.rng.Intn(2)
	for k := 0; k < extra; k++ {
		a := g.rng.Intn(n)
		b := g.rng.Intn(n)
		if a == b {
			continue
		}
		g.link(c, degree, a, b, g.crossLink)
	}

	// Connectivity repair: pair up under-connected bodies. An odd degree
	// deficit can leave one body at degree 1; that creature is used as-is.
	for i := 0; i < n; i++ {
		for degree[i] < 2 {
			var candidates []int
			for j := 0; j < n; j++ {
				if j != i && degree[j] < 2 {
					candidates = append(candidates, j)
				}
			}
			if len(candidates) == 0 {
				break
			}
			g.link(c, degree, i, candidates[g.rng.Intn(len(candidates))], g.crossLink)
		}
	}

	return c
}

// link creates one muscle between bodies i and j with parameters drawn from
// the given range. Rest length equals the current distance between the two
// bodies, so the spring starts unstressed.
func (g *Generator) link(c *Creature, degree []int, i, j int, r config.MuscleRangeConfig) {
	ax, ay := g.engine.Position(c.bodies[i])
	bx, by := g.engine.Position(c.bodies[j])
	rest := math.Hypot(bx-ax, by-ay)

	activation := ActivationPeriodic
	if g.rng.Float64() < 0.5 {
		activation = ActivationOnGroundContact
	}

	params := MuscleParams{
		RestLength:      rest,
		Stiffness:       g.randRange(r.MinStiffness, r.MaxStiffness),
		Activation:      activation,
		PeriodMs:        g.randRange(r.MinPeriodMs, r.MaxPeriodMs),
		ExtensionFactor: g.randRange(r.MinExtension, r.MaxExtension),
	}

	constraint := g.engine.AddConstraint(c.bodies[i], c.bodies[j], params.RestLength, params.Stiffness)
	c.muscles = append(c.muscles, NewMuscle(params, constraint, c.bodies[i], c.bodies[j]))
	degree[i]++
	degree[j]++
}

func (g *Generator) randRange(min, max float64) float64 {
	return min + g.rng.Float64()*(max-min)
}
