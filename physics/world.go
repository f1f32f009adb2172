// Package physics implements the spring-mass world the population runs in.
//
// The world is intentionally small: point-mass bodies under gravity, distance
// constraints solved by position correction, and a single ground plane.
// Coordinates are y-down; the ground is a horizontal line at GroundY.
package physics

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/strider/components"
)

// Policy selects the environment behavior of a world at construction time.
// One World type serves every environment variant; only the policy differs.
type Policy struct {
	Gravity           float64 // downward acceleration applied per step
	AirDamping        float64 // velocity fraction retained per step
	GroundY           float64 // ground plane position (y-down)
	GroundRestitution float64 // vertical bounce fraction on ground contact
}

// constraint is a distance spring between two bodies.
// Length is the commanded rest length and is mutable while the constraint lives.
type constraint struct {
	a, b      components.BodyID
	length    float64
	stiffness float64
}

// World owns all bodies and constraints. Bodies are stored as ECS entities;
// callers only ever hold numeric handles.
type World struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Velocity, components.Particle]
	filter ecs.Filter3[components.Position, components.Velocity, components.Particle]

	posMap  *ecs.Map1[components.Position]
	velMap  *ecs.Map1[components.Velocity]
	partMap *ecs.Map1[components.Particle]

	bodies      map[components.BodyID]ecs.Entity
	constraints map[components.ConstraintID]*constraint
	// solve order, kept stable so stepping is deterministic for a fixed seed
	order []components.ConstraintID

	nextBody       components.BodyID
	nextConstraint components.ConstraintID

	policy     Policy
	iterations int
}

// NewWorld creates a world governed by the given policy.
func NewWorld(policy Policy, constraintIterations int) *World {
	if constraintIterations < 1 {
		constraintIterations = 1
	}
	world := ecs.NewWorld()
	return &World{
		world:       world,
		mapper:      ecs.NewMap3[components.Position, components.Velocity, components.Particle](world),
		filter:      *ecs.NewFilter3[components.Position, components.Velocity, components.Particle](world),
		posMap:      ecs.NewMap1[components.Position](world),
		velMap:      ecs.NewMap1[components.Velocity](world),
		partMap:     ecs.NewMap1[components.Particle](world),
		bodies:      make(map[components.BodyID]ecs.Entity),
		constraints: make(map[components.ConstraintID]*constraint),
		policy:      policy,
		iterations:  constraintIterations,
	}
}

// AddBody creates a point-mass body and returns its handle.
func (w *World) AddBody(x, y, radius float64, category uint32) components.BodyID {
	w.nextBody++
	id := w.nextBody

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	part := components.Particle{Radius: radius, Category: category}
	entity := w.mapper.NewEntity(&pos, &vel, &part)
	w.bodies[id] = entity
	return id
}

// AddConstraint creates a distance spring between two bodies.
func (w *World) AddConstraint(a, b components.BodyID, restLength, stiffness float64) components.ConstraintID {
	w.entity(a)
	w.entity(b)

	w.nextConstraint++
	id := w.nextConstraint
	w.constraints[id] = &constraint{a: a, b: b, length: restLength, stiffness: stiffness}
	w.order = append(w.order, id)
	return id
}

// SetConstraintLength updates a constraint's commanded rest length.
func (w *World) SetConstraintLength(id components.ConstraintID, length float64) {
	c, ok := w.constraints[id]
	if !ok {
		panic(fmt.Sprintf("physics: unknown constraint %d", id))
	}
	c.length = length
}

// RemoveBody releases a body. Constraints referencing the body must be
// removed first; the caller owns that ordering.
func (w *World) RemoveBody(id components.BodyID) {
	entity := w.entity(id)
	w.mapper.Remove(entity)
	delete(w.bodies, id)
}

// RemoveConstraint releases a constraint.
func (w *World) RemoveConstraint(id components.ConstraintID) {
	if _, ok := w.constraints[id]; !ok {
		panic(fmt.Sprintf("physics: unknown constraint %d", id))
	}
	delete(w.constraints, id)
	for i, cid := range w.order {
		if cid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Position returns a body's current position.
func (w *World) Position(id components.BodyID) (x, y float64) {
	pos := w.posMap.Get(w.entity(id))
	return pos.X, pos.Y
}

// SetStatic marks a body immovable (or movable again).
func (w *World) SetStatic(id components.BodyID, static bool) {
	part := w.partMap.Get(w.entity(id))
	part.Static = static
}

// ZeroVelocity sets a body's velocity to exactly (0, 0).
func (w *World) ZeroVelocity(id components.BodyID) {
	vel := w.velMap.Get(w.entity(id))
	vel.X = 0
	vel.Y = 0
}

// BodyCount returns the number of live bodies.
func (w *World) BodyCount() int {
	return len(w.bodies)
}

// ConstraintCount returns the number of live constraints.
func (w *World) ConstraintCount() int {
	return len(w.constraints)
}

// Advance steps the simulation forward by deltaMs.
func (w *World) Advance(deltaMs float64) {
	w.integrate(deltaMs)
	for i := 0; i < w.iterations; i++ {
		w.solveConstraints()
	}
	w.collideGround()
}

// integrate applies gravity, damping, and velocity to every non-static body.
func (w *World) integrate(deltaMs float64) {
	query := w.filter.Query()
	for query.Next() {
		pos, vel, part := query.Get()
		if part.Static {
			continue
		}
		vel.Y += w.policy.Gravity * deltaMs
		vel.X *= w.policy.AirDamping
		vel.Y *= w.policy.AirDamping
		pos.X += vel.X * deltaMs
		pos.Y += vel.Y * deltaMs
	}
}

// solveConstraints runs one position-correction pass over all constraints.
func (w *World) solveConstraints() {
	for _, id := range w.order {
		c := w.constraints[id]
		ea := w.bodies[c.a]
		eb := w.bodies[c.b]
		pa := w.posMap.Get(ea)
		pb := w.posMap.Get(eb)
		staticA := w.partMap.Get(ea).Static
		staticB := w.partMap.Get(eb).Static
		if staticA && staticB {
			continue
		}

		dx := pb.X - pa.X
		dy := pb.Y - pa.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist == 0 {
			continue
		}

		// Positional correction toward the commanded length, split between
		// endpoints unless one is static.
		diff := (dist - c.length) / dist * c.stiffness
		if staticA {
			pb.X -= dx * diff
			pb.Y -= dy * diff
		} else if staticB {
			pa.X += dx * diff
			pa.Y += dy * diff
		} else {
			half := diff * 0.5
			pa.X += dx * half
			pa.Y += dy * half
			pb.X -= dx * half
			pb.Y -= dy * half
		}
	}
}

// collideGround clamps bodies to the ground plane.
func (w *World) collideGround() {
	query := w.filter.Query()
	for query.Next() {
		pos, vel, part := query.Get()
		if part.Static {
			continue
		}
		bottom := pos.Y + part.Radius
		if bottom > w.policy.GroundY {
			pos.Y = w.policy.GroundY - part.Radius
			if vel.Y > 0 {
				vel.Y = -vel.Y * w.policy.GroundRestitution
			}
		}
	}
}

// entity resolves a body handle, panicking on unknown handles. Missing
// handles are programmer errors, not recoverable conditions.
func (w *World) entity(id components.BodyID) ecs.Entity {
	entity, ok := w.bodies[id]
	if !ok {
		panic(fmt.Sprintf("physics: unknown body %d", id))
	}
	return entity
}
