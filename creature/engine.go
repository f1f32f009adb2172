// Package creature implements articulated spring-mass creatures: their
// muscle activation state machines, per-tick update, and procedural
// topology generation.
package creature

import "github.com/pthm-cable/strider/components"

// Engine is the capability surface the creature layer needs from a physics
// engine. The engine is a black box: integration, collision resolution, and
// spring solving all happen behind these calls.
type Engine interface {
	AddBody(x, y, radius float64, category uint32) components.BodyID
	AddConstraint(a, b components.BodyID, restLength, stiffness float64) components.ConstraintID
	SetConstraintLength(id components.ConstraintID, length float64)
	RemoveBody(id components.BodyID)
	RemoveConstraint(id components.ConstraintID)
	Position(id components.BodyID) (x, y float64)
	SetStatic(id components.BodyID, static bool)
	ZeroVelocity(id components.BodyID)
	Advance(deltaMs float64)
}
