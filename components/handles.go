package components

// BodyID is an opaque handle to a point-mass body owned by the physics world.
type BodyID uint32

// ConstraintID is an opaque handle to a distance constraint between two bodies.
type ConstraintID uint32
