package population

import "github.com/pthm-cable/strider/components"

// stubEngine is an in-memory engine: bodies are fixed points tests can
// reposition to dictate creature distances.
type stubEngine struct {
	positions map[components.BodyID][2]float64
	lengths   map[components.ConstraintID]float64

	static      map[components.BodyID]bool
	staticCalls map[components.BodyID]int
	zeroCalls   map[components.BodyID]int

	removedBodies      int
	removedConstraints int

	nextBody       components.BodyID
	nextConstraint components.ConstraintID
}

func newStubEngine() *stubEngine {
	return &stubEngine{
		positions:   make(map[components.BodyID][2]float64),
		lengths:     make(map[components.ConstraintID]float64),
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
	return e.nextConstraint
}

func (e *stubEngine) SetConstraintLength(id components.ConstraintID, length float64) {
	e.lengths[id] = length
}

func (e *stubEngine) RemoveBody(id components.BodyID) {
	delete(e.positions, id)
	e.removedBodies++
}

func (e *stubEngine) RemoveConstraint(id components.ConstraintID) {
	delete(e.lengths, id)
	e.removedConstraints++
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

func (e *stubEngine) moveBody(id components.BodyID, x, y float64) {
	e.positions[id] = [2]float64{x, y}
}
