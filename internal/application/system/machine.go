package system

import "github.com/younwookim/gravshift/internal/application/state"

// locomotionState is one node of the locomotion state machine. Implementations
// are stateless; everything they need lives in the Context.
type locomotionState interface {
	Tag() state.Locomotion
	Enter(ctx *Context)
	Exit(ctx *Context)
	// Update runs once per logic tick and returns the next state, or nil to stay
	Update(ctx *Context) locomotionState
	FixedUpdate(ctx *Context)
}

// Machine holds the active locomotion state
type Machine struct {
	current locomotionState

	// OnTransition is called after every state change
	OnTransition func(from, to state.Locomotion)
}

// NewMachine creates a machine and enters Idle
func NewMachine(ctx *Context) *Machine {
	m := &Machine{current: idle}
	m.current.Enter(ctx)
	return m
}

// Current returns the active state tag
func (m *Machine) Current() state.Locomotion {
	return m.current.Tag()
}

// Tick runs the active state's update and applies at most one transition
func (m *Machine) Tick(ctx *Context) {
	next := m.current.Update(ctx)
	if next == nil {
		return
	}
	m.switchTo(ctx, next)
}

// FixedTick runs the active state's physics step
func (m *Machine) FixedTick(ctx *Context) {
	m.current.FixedUpdate(ctx)
}

func (m *Machine) switchTo(ctx *Context, next locomotionState) {
	if next.Tag() == m.current.Tag() {
		return
	}
	from := m.current
	from.Exit(ctx)
	m.current = next
	next.Enter(ctx)

	if m.OnTransition != nil {
		m.OnTransition(from.Tag(), next.Tag())
	}
}
