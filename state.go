package undofsm

// State defines a state in the machine
type State struct {
	ID StateID

	// Transitions maps an accepted event to its target state
	Transitions map[EventID]StateID

	OnEnter func(ctx *Context) error
	OnExit  func(ctx *Context) error
}

// StateOption is a functional option for configuring a State
type StateOption func(*State)

// WithOnEnter sets a callback run after the machine settles in the state.
// It runs for replayed (undo/redo) entries too. A returned error is logged at
// Warn; the state change itself stands.
func WithOnEnter(fn func(*Context) error) StateOption {
	return func(s *State) {
		s.OnEnter = fn
	}
}

// WithOnExit sets a callback run after the machine leaves the state
func WithOnExit(fn func(*Context) error) StateOption {
	return func(s *State) {
		s.OnExit = fn
	}
}

// Accepts reports whether the state has a transition for event
func (s *State) Accepts(event EventID) bool {
	_, ok := s.Transitions[event]
	return ok
}
