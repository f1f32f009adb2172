package creature

import (
	"math/rand"

	"github.com/pthm-cable/strider/components"
)

// ID identifies a creature for the whole life of the simulation, including
// after the creature itself is removed. Built from the creation timestamp
// plus random jitter so concurrent spawns cannot collide.
type ID uint64

// NewID derives an identity from a creation time in milliseconds.
func NewID(nowMs float64, rng *rand.Rand) ID {
	return ID(uint64(nowMs)*1000 + uint64(rng.Intn(1000)))
}

// Creature is an aggregate of point-mass bodies and actuated muscles.
// All cross-component references to a creature go through its ID; no other
// component holds the Creature object itself.
type Creature struct {
	id     ID
	bornAt float64 // simulation time in ms

	bodies  []components.BodyID
	muscles []*Muscle

	maxX   float64 // all-time-high horizontal position, never decreases
	frozen bool

	// retained for Clone
	bodyRadius float64
	category   uint32
}

// ID returns the creature's identity.
func (c *Creature) ID() ID { return c.id }

// BornAt returns the creature's creation time in simulation ms.
func (c *Creature) BornAt() float64 { return c.bornAt }

// MaxX returns the creature's all-time-best horizontal position.
func (c *Creature) MaxX() float64 { return c.maxX }

// Frozen reports whether the creature has been frozen by old age.
func (c *Creature) Frozen() bool { return c.frozen }

// Bodies returns the creature's body handles in creation order.
func (c *Creature) Bodies() []components.BodyID { return c.bodies }

// Muscles returns the creature's muscles in creation order.
func (c *Creature) Muscles() []*Muscle { return c.muscles }

// Update advances every muscle by deltaMs and refreshes maxX from the
// current body positions. It cannot fail.
func (c *Creature) Update(deltaMs, groundY float64, engine Engine) {
	for _, m := range c.muscles {
		m.Update(deltaMs, groundY, engine)
	}
	for _, b := range c.bodies {
		x, _ := engine.Position(b)
		if x > c.maxX {
			c.maxX = x
		}
	}
}

// Freeze marks every body immovable and zeroes its velocity. Freezing an
// already-frozen creature is a no-op.
func (c *Creature) Freeze(engine Engine) {
	if c.frozen {
		return
	}
	c.frozen = true
	for _, b := range c.bodies {
		engine.SetStatic(b, true)
		engine.ZeroVelocity(b)
	}
}

// RemoveFromWorld releases every constraint and body handle the creature
// owns. Single-shot: callers must not retain the creature afterwards.
func (c *Creature) RemoveFromWorld(engine Engine) {
	for _, m := range c.muscles {
		engine.RemoveConstraint(m.constraint)
	}
	for _, b := range c.bodies {
		engine.RemoveBody(b)
	}
}

// Clone produces a topological copy centered at (x, y). Each muscle's period
// and extension factor are independently jittered - a cosmetic perturbation,
// not selection. The clone starts with a fresh identity and zero distance.
func (c *Creature) Clone(engine Engine, rng *rand.Rand, x, y, nowMs, periodJitter, extensionJitter float64) *Creature {
	// Centroid of the current body positions, so the copy keeps its shape.
	var cx, cy float64
	positions := make([][2]float64, len(c.bodies))
	for i, b := range c.bodies {
		bx, by := engine.Position(b)
		positions[i] = [2]float64{bx, by}
		cx += bx
		cy += by
	}
	n := float64(len(c.bodies))
	cx /= n
	cy /= n

	clone := &Creature{
		id:         NewID(nowMs, rng),
		bornAt:     nowMs,
		bodyRadius: c.bodyRadius,
		category:   c.category,
	}

	indexOf := make(map[components.BodyID]int, len(c.bodies))
	for i, b := range c.bodies {
		indexOf[b] = i
	}

	clone.bodies = make([]components.BodyID, len(c.bodies))
	for i, p := range positions {
		clone.bodies[i] = engine.AddBody(x+p[0]-cx, y+p[1]-cy, c.bodyRadius, c.category)
	}

	for _, m := range c.muscles {
		params := m.params
		params.PeriodMs *= 1 + (rng.Float64()*2-1)*periodJitter
		params.ExtensionFactor *= 1 + (rng.Float64()*2-1)*extensionJitter
		if params.ExtensionFactor < 1 {
			params.ExtensionFactor = 1
		}

		a := clone.bodies[indexOf[m.bodyA]]
		b := clone.bodies[indexOf[m.bodyB]]
		constraint := engine.AddConstraint(a, b, params.RestLength, params.Stiffness)
		clone.muscles = append(clone.muscles, NewMuscle(params, constraint, a, b))
	}

	return clone
}
