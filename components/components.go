// Package components defines ECS components for the physics world.
package components

// Position represents a body's world position.
type Position struct {
	X, Y float64
}

// Velocity represents a body's velocity.
type Velocity struct {
	X, Y float64
}

// Particle holds the physical properties of a point-mass body.
type Particle struct {
	Radius   float64
	Category uint32 // collision category, fixed at creation
	Static   bool   // static bodies are never integrated
}
