package creature

import "github.com/pthm-cable/strider/components"

// stubEngine is an in-memory Engine for tests: bodies are fixed points the
// test can reposition at will, constraints just record their commanded
// length.
type stubEngine struct {
	positions map[components.BodyID][2]float64
	lengths   map[components.ConstraintID]float64
	ends      map[components.ConstraintID][2]components.BodyID

	static      map[components.BodyID]bool
	staticCalls map[components.BodyID]int
	zeroCalls   map[components.BodyID]int

	removedBodies      []components.BodyID
	removedConstraints []components.ConstraintID

	nextBody       components.BodyID
	nextConstraint components.ConstraintID
}

func newStubEngine() *stubEngine {
	return &stubEngine{
		positions:   make(map[components.BodyID][2]float64),
		lengths:     make(map[components.ConstraintID]float64),
		ends:        make(map[components.ConstraintID][2]components.BodyID),
		static:      make(map[components.BodyID]bool),
		staticCalls: make(map[components.BodyID]int),
		zeroCalls:   make(map[components.BodyID]int),
	}
}

func (e *stubEngine) AddBody(x, y, radius float64, category uint32) components.BodyID {
	e.nextBody++
	e.positions[e.nextBody] = [2]float64{x, y}
	return e.nextBody
}

func (e *stubEngine) AddConstraint(a, b components.BodyID, restLength, stiffness float64) components.ConstraintID {
	e.nextConstraint++
	e.lengths[e.nextConstraint] = restLength
	e.ends[e.nextConstraint] = [2]components.BodyID{a, b}
	return e.nextConstraint
}

func (e *stubEngine) SetConstraintLength(id components.ConstraintID, length float64) {
	e.lengths[id] = length
}

func (e *stubEngine) RemoveBody(id components.BodyID) {
	delete(e.positions, id)
	e.removedBodies = append(e.removedBodies, id)
}

func (e *stubEngine) RemoveConstraint(id components.ConstraintID) {
	delete(e.lengths, id)
	e.removedConstraints = append(e.removedConstraints, id)
}

func (e *stubEngine) Position(id components.BodyID) (x, y float64) {
	p := e.positions[id]
	return p[0], p[1]
}

func (e *stubEngine) SetStatic(id components.BodyID, static bool) {
	e.static[id] = static
	e.staticCalls[id]++
}

func (e *stubEngine) ZeroVelocity(id components.BodyID) {
	e.zeroCalls[id]++
}

func (e *stubEngine) Advance(deltaMs float64) {}

// moveBody repositions a body for the next Update.
func (e *stubEngine) moveBody(id components.BodyID, x, y float64) {
	e.positions[id] = [2]float64{x, y}
}
