package undofsm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState matches any *InvalidStateError via errors.Is
	ErrInvalidState = errors.New("invalid state")
	// ErrNoTransition matches any *NoTransitionError via errors.Is
	ErrNoTransition = errors.New("no transition")
)

// InvalidStateError is returned when a state name is not part of the graph
type InvalidStateError struct {
	State StateID
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("unknown state %q", e.State)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// NoTransitionError is returned when the current state does not accept an event
type NoTransitionError struct {
	State StateID
	Event EventID
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("no transition for event %q from state %q", e.Event, e.State)
}

func (e *NoTransitionError) Is(target error) bool {
	return target == ErrNoTransition
}
