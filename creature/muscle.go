package creature

import "github.com/pthm-cable/strider/components"

// ActivationType selects how a muscle decides to contract.
type ActivationType uint8

const (
	// ActivationPeriodic toggles on a fixed timer.
	ActivationPeriodic ActivationType = iota
	// ActivationOnGroundContact toggles whenever an endpoint touches the
	// ground line. Level-triggered with no debounce: sustained contact
	// flips state every tick. Preserved deliberately; see DESIGN.md.
	ActivationOnGroundContact
)

// MuscleParams is the full parameter set of a muscle, populated once at
// generation time. No field is optional and none is defaulted at update time.
type MuscleParams struct {
	RestLength      float64 // > 0
	Stiffness       float64 // in (0, 1]
	Activation      ActivationType
	PeriodMs        float64 // > 0, used iff Activation is periodic
	ExtensionFactor float64 // >= 1: an active muscle only lengthens
}

// Muscle is an actuated spring between two bodies of one creature.
type Muscle struct {
	params     MuscleParams
	constraint components.ConstraintID
	bodyA      components.BodyID
	bodyB      components.BodyID

	timer  float64
	active bool
}

// NewMuscle binds a muscle to two bodies and their constraint.
func NewMuscle(params MuscleParams, constraint components.ConstraintID, bodyA, bodyB components.BodyID) *Muscle {
	return &Muscle{
		params:     params,
		constraint: constraint,
		bodyA:      bodyA,
		bodyB:      bodyB,
	}
}

// Params returns the muscle's parameter set.
func (m *Muscle) Params() MuscleParams {
	return m.params
}

// Active reports whether the muscle is currently contracted.
func (m *Muscle) Active() bool {
	return m.active
}

// Update advances the activation state machine by deltaMs and writes the
// commanded rest length to the constraint. It cannot fail.
func (m *Muscle) Update(deltaMs, groundY float64, engine Engine) {
	switch m.params.Activation {
	case ActivationPeriodic:
		m.timer += deltaMs
		if m.timer >= m.params.PeriodMs {
			m.active = !m.active
			m.timer = 0
		}
	case ActivationOnGroundContact:
		_, ay := engine.Position(m.bodyA)
		_, by := engine.Position(m.bodyB)
		if ay >= groundY || by >= groundY {
			m.active = !m.active
		}
	}

	length := m.params.RestLength
	if m.active {
		length = m.params.RestLength * m.params.ExtensionFactor
	}
	engine.SetConstraintLength(m.constraint, length)
}
